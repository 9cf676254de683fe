package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Client calls a remote responder.
type Client struct {
	conn *nats.Conn
}

// NewClient wraps an existing connection.
func NewClient(conn *nats.Conn) *Client {
	return &Client{conn: conn}
}

// Call sends req to subject and decodes the reply's data into resp.
// A responder-side failure is returned as *ReplyError.
func (c *Client) Call(ctx context.Context, subject string, req, resp any) error {
	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	msg, err := c.conn.RequestWithContext(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("nats request %s: %w", subject, err)
	}

	var reply Reply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	if reply.Error != nil {
		return reply.Error
	}
	if resp == nil {
		return nil
	}
	return json.Unmarshal(reply.Data, resp)
}

// Close drains the connection.
func (c *Client) Close() {
	_ = c.conn.Drain()
}
