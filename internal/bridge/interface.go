package bridge

// Channel broadcasts envelopes to every other context subscribed to the same
// subject and delivers inbound envelopes to the local subscriber.
type Channel interface {
	Publish(env Envelope) error
	Subscribe(handler func(Envelope)) error
	Close()
}
