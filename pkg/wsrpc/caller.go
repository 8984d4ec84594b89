package wsrpc

import "context"

// Caller issues a named middleware call and decodes the result into out.
// Implementations must be safe for concurrent use; the enclosure store
// and the stats stream share one connection.
type Caller interface {
	Call(ctx context.Context, method string, params any, out any) error
}
