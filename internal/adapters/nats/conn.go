package natsadapter

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Connect opens a NATS connection. The first attempt fails fast when no
// server is reachable; once connected it keeps reconnecting in the background.
func Connect(url, name string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(2*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}
