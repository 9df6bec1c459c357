package postmarktx

import "net/http"

// Middleware attaches the client and its lazily-initialized per-request
// batch to the request context, so handler code can call Batch, Send and
// RenderEmail without re-resolving configuration.
//
// Wrapping a request that already carries this client's state is a no-op,
// making repeated registration idempotent.
func (c *Client) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if st, ok := stateFromContext(r.Context()); ok && st.client == c {
				next.ServeHTTP(w, r)
				return
			}
			ctx := withState(r.Context(), &requestState{client: c})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
