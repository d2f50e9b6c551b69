package ports

import "context"

// Stores raw backend responses. Entries are addressed by the endpoint and
// the exact request body that produced them.
type RouteCache interface {
	// Return the cached response; ok is false on a miss.
	Get(ctx context.Context, endpoint string, request []byte) (body []byte, ok bool, err error)
	Put(ctx context.Context, endpoint string, request, body []byte) error
}
