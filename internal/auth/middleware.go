package auth

import "net/http"

// AdminOnly rejects requests that do not carry a valid admin cookie.
func (s *Service) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(CookieName)
		if err != nil || s.Verify(c.Value) != nil {
			http.Error(w, "admin session required", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
