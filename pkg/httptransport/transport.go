// Package httptransport provides composable middleware for outbound
// http.RoundTrippers: request-ID tagging and structured request logging for
// every call the client makes.
package httptransport

import "net/http"

// Middleware wraps an http.RoundTripper with additional behaviour.
type Middleware func(http.RoundTripper) http.RoundTripper

// Wrap applies middlewares to base in order: the first middleware becomes the
// outermost round tripper.
func Wrap(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// Func adapts a function to the http.RoundTripper interface.
type Func func(*http.Request) (*http.Response, error)

func (f Func) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
