package middleware

import (
	"net/http"
	"strings"
)

const methodOverrideField = "_method"

// MethodOverride turns a POST with a hidden _method=PUT|DELETE|PATCH field
// into that method. It wraps the router because gin matches the route
// before any gin middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch m := strings.ToUpper(r.PostFormValue(methodOverrideField)); m {
			case http.MethodPut, http.MethodDelete, http.MethodPatch:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
