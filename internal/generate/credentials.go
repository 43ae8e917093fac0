package generate

import "context"

// Credentials is a request-scoped credential handed to the pipeline by the
// network boundary. It travels on the context, never in package state, so
// concurrent requests in one process cannot leak keys into each other.
type Credentials struct {
	// APIKey is the provider API key supplied with the request.
	APIKey string
	// Provider optionally pins the provider the key belongs to.
	Provider string
}

type ctxKey string

const credentialsContextKey ctxKey = "flowgen.generate.credentials"

// WithCredentials returns a context carrying request-scoped credentials.
func WithCredentials(ctx context.Context, c Credentials) context.Context {
	return context.WithValue(ctx, credentialsContextKey, c)
}

// CredentialsFromContext returns the request-scoped credentials, if any.
// The lookup never blocks; absence is an expected, non-fatal condition and
// the client factory falls back to ambient configuration.
func CredentialsFromContext(ctx context.Context) (Credentials, bool) {
	v := ctx.Value(credentialsContextKey)
	c, ok := v.(Credentials)
	return c, ok
}
