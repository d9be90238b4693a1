package httptransport

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID returns a middleware that tags every outbound request with an
// X-Request-ID header so calls can be correlated with server-side logs. A
// request that already carries a valid ID keeps it; otherwise a new UUID v4
// is generated. Existing values are validated: at most 128 bytes of
// printable ASCII (0x20–0x7E).
//
// RoundTrippers must not mutate the caller's request, so the header is set
// on a shallow clone.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return Func(func(req *http.Request) (*http.Response, error) {
			if isValidRequestID(req.Header.Get("X-Request-ID")) {
				return next.RoundTrip(req)
			}
			req = req.Clone(req.Context())
			req.Header.Set("X-Request-ID", uuid.New().String())
			return next.RoundTrip(req)
		})
	}
}

// isValidRequestID checks that id is non-empty, at most 128 bytes, and
// contains only printable ASCII (0x20–0x7E).
func isValidRequestID(id string) bool {
	if len(id) == 0 || len(id) > 128 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x20 || id[i] > 0x7E {
			return false
		}
	}
	return true
}
