package middleware

import (
	"net/http"
)

// DemoModeMiddleware turns the API read-only when isDemo is set.
func DemoModeMiddleware(isDemo bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !isDemo {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				http.Error(w, "Demo mode: only GET requests are allowed", http.StatusForbidden)
			}
		})
	}
}
