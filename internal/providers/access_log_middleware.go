package providers

import "net/http"

// AccessLogMiddleware writes one line per request to the get or post log
// depending on the request method.
func AccessLogMiddleware(logger Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Infof(GetLogTypeByRequestType(r.Method), "%s %s", r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}
