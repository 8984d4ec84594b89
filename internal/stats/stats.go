// Package stats adapts the middleware's realtime reporting stream into
// typed samples for the gauge widgets.
package stats

import (
	"context"
	"encoding/json"

	"github.com/shelfmon/shelfmon/internal/logger"
	"github.com/shelfmon/shelfmon/pkg/wsrpc"
)

// StreamRealtime is the middleware event stream carrying live metrics.
const StreamRealtime = "reporting.realtime"

// Sample is one pushed metrics record. Only the fields the dashboard
// consumes are decoded; the rest of the payload is ignored.
type Sample struct {
	CPU CPUStats `json:"cpu"`
}

// CPUStats carries aggregate CPU figures.
type CPUStats struct {
	Average CPUAverage `json:"average"`
}

// CPUAverage is the across-cores average.
type CPUAverage struct {
	Usage float64 `json:"usage"`
}

// Source is the push-event surface of the middleware connection.
type Source interface {
	Subscribe(name string) error
	Events() <-chan wsrpc.Event
}

// Stream subscribes to the realtime reporting stream and returns a
// channel of decoded samples. The channel closes when the context ends
// or the connection shuts down. Undecodable records are skipped.
func Stream(ctx context.Context, src Source, log logger.Logger) (<-chan Sample, error) {
	if log == nil {
		log = logger.Noop()
	}
	if err := src.Subscribe(StreamRealtime); err != nil {
		return nil, err
	}

	out := make(chan Sample, 8)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-src.Events():
				if !ok {
					return
				}
				if ev.Collection != StreamRealtime {
					continue
				}
				var s Sample
				if err := json.Unmarshal(ev.Fields, &s); err != nil {
					log.Debug("skipping undecodable realtime record: %v", err)
					continue
				}
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
