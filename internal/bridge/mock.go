package bridge

import "sync"

// MockChannel is a mock implementation of Channel for testing.
// It is safe for concurrent use.
type MockChannel struct {
	mu sync.Mutex

	// Spies for method calls
	PublishFunc func(env Envelope) error

	// Call records
	PublishCalls []Envelope

	handler func(Envelope)
	closed  bool
}

// NewMock creates a new mock Channel.
func NewMock() *MockChannel {
	return &MockChannel{}
}

// Reset clears all call records.
func (m *MockChannel) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
}

// Publish records the call and executes the mock function if provided.
func (m *MockChannel) Publish(env Envelope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, env)
	if m.PublishFunc != nil {
		return m.PublishFunc(env)
	}
	return nil
}

// Subscribe records the handler so tests can deliver envelopes to it.
func (m *MockChannel) Subscribe(handler func(Envelope)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
	return nil
}

// Close marks the channel closed.
func (m *MockChannel) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Closed reports whether Close has been called.
func (m *MockChannel) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Deliver simulates an inbound envelope from another context.
func (m *MockChannel) Deliver(env Envelope) {
	m.mu.Lock()
	handler := m.handler
	m.mu.Unlock()
	if handler != nil {
		handler(env)
	}
}
