// Package testing provides a scripted Caller for exercising code that
// talks to the middleware without a live connection.
package testing

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Response is one canned middleware reply.
type Response struct {
	Value any           // marshalled into the caller's out argument
	Err   error         // returned instead of Value when set
	Delay time.Duration // optional artificial latency

	// Release, when set, blocks the call until the channel is closed
	// (or the context ends). Lets tests hold a call in flight.
	Release <-chan struct{}
}

// FakeCaller replays queued responses per method. When a method's queue
// is empty its Default response is used; with no Default the call fails.
type FakeCaller struct {
	mu       sync.Mutex
	queues   map[string][]Response
	defaults map[string]Response
	calls    []string
}

// NewFakeCaller returns an empty fake.
func NewFakeCaller() *FakeCaller {
	return &FakeCaller{
		queues:   make(map[string][]Response),
		defaults: make(map[string]Response),
	}
}

// Enqueue appends a one-shot response for method.
func (f *FakeCaller) Enqueue(method string, r Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queues[method] = append(f.queues[method], r)
}

// SetDefault sets the fallback response for method.
func (f *FakeCaller) SetDefault(method string, r Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaults[method] = r
}

// Calls returns the methods invoked so far, in order.
func (f *FakeCaller) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times method was invoked.
func (f *FakeCaller) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.calls {
		if m == method {
			n++
		}
	}
	return n
}

// Call implements wsrpc.Caller.
func (f *FakeCaller) Call(ctx context.Context, method string, params any, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, method)

	var resp Response
	if q := f.queues[method]; len(q) > 0 {
		resp = q[0]
		f.queues[method] = q[1:]
	} else if d, ok := f.defaults[method]; ok {
		resp = d
	} else {
		f.mu.Unlock()
		return fmt.Errorf("fake caller: no response configured for %q", method)
	}
	f.mu.Unlock()

	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if resp.Release != nil {
		select {
		case <-resp.Release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if resp.Err != nil {
		return resp.Err
	}

	if out != nil && resp.Value != nil {
		raw, err := json.Marshal(resp.Value)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return err
		}
	}
	return nil
}
