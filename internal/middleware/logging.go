package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// calculator inputs travel as query params, keep them in the trace
			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path += "?" + r.URL.RawQuery
			}
			log.Tracef(" ====> request [%s] [%s] [UA: %s]", r.Method, path, r.Header.Get("User-Agent"))
			next.ServeHTTP(w, r)
		})
	}
}
