package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	operationsApplied   int
	operationsRejected  int
	commandsReceived    map[string]int
	broadcastsPublished int
	notifSent           int
	notifFailed         int
	snapshotsPersisted  int
	operationDurations  []float64
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		commandsReceived:   make(map[string]int),
		operationDurations: make([]float64, 0),
	}
}

func (m *Mock) IncOperationsApplied() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operationsApplied++
}

func (m *Mock) IncOperationsRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operationsRejected++
}

func (m *Mock) IncCommandsReceived(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandsReceived[source]++
}

func (m *Mock) IncBroadcastsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcastsPublished++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) IncSnapshotsPersisted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotsPersisted++
}

func (m *Mock) ObserveOperationDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operationDurations = append(m.operationDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// OperationsApplied returns the recorded number of applied operations.
func (m *Mock) OperationsApplied() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operationsApplied
}

// OperationsRejected returns the recorded number of rejected operations.
func (m *Mock) OperationsRejected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operationsRejected
}

// CommandsReceived returns the recorded number of received commands across
// every source.
func (m *Mock) CommandsReceived() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.commandsReceived {
		total += n
	}
	return total
}

// CommandsReceivedFrom returns the recorded number of commands for a source.
func (m *Mock) CommandsReceivedFrom(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commandsReceived[source]
}

// NotifSent returns the recorded number of sent notifications.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the recorded number of failed notifications.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
