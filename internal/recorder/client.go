package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DefaultDialRetries is the number of redials before Dial gives up.
const DefaultDialRetries = 5

// Client sends a recording session to a Server.
type Client struct {
	conn net.Conn
	enc  *Encoder
	log  *zap.Logger
}

// ClientOption configures Dial.
type ClientOption func(*dialOptions)

type dialOptions struct {
	retries  uint64
	interval time.Duration
}

// WithRetries sets how often Dial retries a refused connection.
func WithRetries(n uint64) ClientOption {
	return func(o *dialOptions) {
		o.retries = n
	}
}

// WithInitialInterval sets the first backoff interval.
func WithInitialInterval(d time.Duration) ClientOption {
	return func(o *dialOptions) {
		o.interval = d
	}
}

// Dial connects to addr with exponential backoff and sends cfg.
func Dial(ctx context.Context, addr string, cfg SessionConfig, log *zap.Logger, opts ...ClientOption) (*Client, error) {
	o := dialOptions{
		retries:  DefaultDialRetries,
		interval: backoff.DefaultInitialInterval,
	}

	for _, opt := range opts {
		opt(&o)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = o.interval

	var (
		d    net.Dialer
		conn net.Conn
	)

	err := backoff.RetryNotify(func() error {
		var err error

		conn, err = d.DialContext(ctx, "tcp", addr)

		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, o.retries), ctx),
		func(err error, next time.Duration) {
			log.Warn("dial failed, retrying", zap.String("addr", addr), zap.Duration("next", next), zap.Error(err))
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	c := &Client{conn: conn, enc: NewEncoder(conn), log: log}

	if err := c.enc.WriteConfig(cfg); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to send session config: %w", err), conn.Close())
	}

	return c, nil
}

// Send writes ev. Events are buffered until Flush or Close.
func (c *Client) Send(ev Event) error {
	if err := c.enc.WriteEvent(ev); err != nil {
		return fmt.Errorf("failed to send %s: %w", ev.Kind(), err)
	}

	return nil
}

// Flush writes buffered events to the connection.
func (c *Client) Flush() error {
	return c.enc.Flush()
}

// Copy sends every event dec yields until the stream ends and returns the
// number of events sent.
func (c *Client) Copy(dec *Decoder) (int, error) {
	n := 0

	for {
		ev, err := dec.ReadEvent()
		if errors.Is(err, io.EOF) {
			return n, c.Flush()
		}

		if err != nil {
			return n, err
		}

		if err := c.Send(ev); err != nil {
			return n, err
		}

		n++
	}
}

// Close flushes and closes the connection.
func (c *Client) Close() error {
	return multierr.Append(c.enc.Flush(), c.conn.Close())
}
