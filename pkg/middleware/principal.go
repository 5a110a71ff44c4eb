package middleware

import (
	"context"
	"net/http"
	"strings"
)

// PrincipalHeader carries the authenticated caller, set by the gateway in front of the API.
const PrincipalHeader = "X-Principal"

type principalKey struct{}

// Principal rejects requests without a caller with 401 and stores the caller
// in the request context otherwise.
func Principal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := strings.TrimSpace(r.Header.Get(PrincipalHeader))
		if caller == "" {
			http.Error(w, "Missing "+PrincipalHeader+" header", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

// WithCaller returns a copy of ctx carrying caller.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, principalKey{}, caller)
}

// CallerFrom returns the caller stored by Principal, or "" if there is none.
func CallerFrom(ctx context.Context) string {
	caller, _ := ctx.Value(principalKey{}).(string)
	return caller
}
