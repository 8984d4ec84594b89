// Package wsrpc implements the WebSocket JSON-RPC client for the
// appliance middleware. One connection multiplexes request/response
// calls (matched by id) and server-pushed event streams.
package wsrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/shelfmon/shelfmon/internal/errors"
	"github.com/shelfmon/shelfmon/internal/logger"
)

const (
	// handshakeTimeout bounds the initial WebSocket upgrade.
	handshakeTimeout = 10 * time.Second
	// pingInterval keeps NAT/proxy idle timers from dropping the connection.
	pingInterval = 30 * time.Second
	// writeTimeout bounds any single frame write.
	writeTimeout = 10 * time.Second
)

// frame is the wire format for both directions. Outbound frames carry
// method/params; inbound frames carry either a call result keyed by id
// or a pushed event keyed by collection name.
type frame struct {
	ID         string          `json:"id,omitempty"`
	Msg        string          `json:"msg"`
	Method     string          `json:"method,omitempty"`
	Params     any             `json:"params,omitempty"`
	Name       string          `json:"name,omitempty"`
	Collection string          `json:"collection,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	Fields     json.RawMessage `json:"fields,omitempty"`
	Error      *CallError      `json:"error,omitempty"`
}

// CallError is the middleware's error payload for a failed call.
type CallError struct {
	ErrName string `json:"errname"`
	Reason  string `json:"reason"`
}

func (e *CallError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return e.ErrName
}

// Event is a server-pushed record from a subscribed stream.
type Event struct {
	Collection string
	Fields     json.RawMessage
}

// Client is a connected middleware session.
type Client struct {
	conn *websocket.Conn
	log  logger.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan frame
	closed  bool

	events chan Event
	done   chan struct{}
	group  *errgroup.Group
}

// Dial connects to the middleware WebSocket endpoint and starts the
// read and keepalive pumps. The context bounds the handshake only.
func Dial(ctx context.Context, url string, log logger.Logger) (*Client, error) {
	if log == nil {
		log = logger.Noop()
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrAPI,
			fmt.Sprintf("Can't reach the middleware at %s", url),
			"Check the appliance is online and the api_url setting is correct")
	}

	c := &Client{
		conn:    conn,
		log:     log,
		pending: make(map[string]chan frame),
		events:  make(chan Event, 64),
		done:    make(chan struct{}),
	}

	c.group = &errgroup.Group{}
	c.group.Go(c.readPump)
	c.group.Go(c.pingPump)

	log.Debug("connected to %s", url)
	return c, nil
}

// Call issues a method call and decodes the result into out (which may
// be nil when the result is irrelevant).
func (c *Client) Call(ctx context.Context, method string, params any, out any) error {
	id := uuid.New().String()
	ch := make(chan frame, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return errors.New(errors.ErrAPI, "Connection is closed", "Reconnect before issuing calls")
	}
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	req := frame{ID: id, Msg: "method", Method: method, Params: params}
	if err := c.write(req); err != nil {
		return errors.WrapWithCode(err, errors.ErrAPI,
			fmt.Sprintf("Failed to send '%s'", method), "")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return errors.New(errors.ErrAPI, "Connection closed while waiting for "+method, "")
	case resp := <-ch:
		if resp.Error != nil {
			return errors.WrapWithCode(resp.Error, errors.ErrAPI,
				fmt.Sprintf("'%s' failed", method), "")
		}
		if out == nil || len(resp.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Result, out); err != nil {
			return errors.WrapWithCode(err, errors.ErrAPI,
				fmt.Sprintf("Couldn't decode '%s' result", method), "")
		}
		return nil
	}
}

// Subscribe asks the middleware to start pushing the named event
// stream. Pushed records arrive on Events.
func (c *Client) Subscribe(name string) error {
	return c.write(frame{ID: uuid.New().String(), Msg: "sub", Name: name})
}

// Events returns the server-push channel. It is closed when the
// connection shuts down.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Close tears down the connection and both pumps.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.done)
	c.mu.Unlock()

	err := c.conn.Close()
	_ = c.group.Wait()
	close(c.events)
	return err
}

func (c *Client) write(f frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(f)
}

// readPump dispatches inbound frames: call results to their waiting
// caller, pushed events to the events channel.
func (c *Client) readPump() error {
	for {
		var f frame
		if err := c.conn.ReadJSON(&f); err != nil {
			select {
			case <-c.done:
				return nil
			default:
			}
			c.log.Debug("read pump stopped: %v", err)
			return err
		}

		switch {
		case f.ID != "":
			c.mu.Lock()
			ch, ok := c.pending[f.ID]
			c.mu.Unlock()
			if ok {
				ch <- f
			}
		case f.Collection != "":
			select {
			case c.events <- Event{Collection: f.Collection, Fields: f.Fields}:
			case <-c.done:
				return nil
			default:
				// Slow consumer: drop rather than stall the pump.
				c.log.Warn("dropping pushed event for %s", f.Collection)
			}
		}
	}
}

func (c *Client) pingPump() error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return nil
		case <-ticker.C:
			c.writeMu.Lock()
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return err
			}
		}
	}
}
