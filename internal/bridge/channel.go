package bridge

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"
	"github.com/vmihailenco/msgpack/v5"
)

type channel struct {
	nc      *nats.Conn
	subject string
	sub     *nats.Subscription
}

// New connects to the NATS server at url and returns a Channel bound to the
// given subject. The connection reconnects indefinitely.
func New(url, subject string) (Channel, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &channel{nc: nc, subject: subject}, nil
}

func (c *channel) Publish(env Envelope) error {
	data, err := msgpack.Marshal(env)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	if err := c.nc.Publish(c.subject, data); err != nil {
		log.Error("Failed to publish message", "error", err, "subject", c.subject)
		return err
	}
	return nil
}

func (c *channel) Subscribe(handler func(Envelope)) error {
	sub, err := c.nc.Subscribe(c.subject, func(msg *nats.Msg) {
		var env Envelope
		if err := msgpack.Unmarshal(msg.Data, &env); err != nil {
			log.Error("MessagePack unmarshal error", "error", err)
			return
		}
		handler(env)
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", c.subject, err)
	}
	c.sub = sub
	return nil
}

func (c *channel) Close() {
	if c.sub != nil {
		if err := c.sub.Unsubscribe(); err != nil {
			log.Warn("Failed to unsubscribe", "error", err)
		}
	}
	c.nc.Close()
}
