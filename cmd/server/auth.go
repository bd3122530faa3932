package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type contextKey string

const RequesterKey contextKey = "requester"

const devRequester = "dev-user"

// ExtractRequesterMiddleware takes the requester from the header set by the
// authenticating proxy in front of the service.
func ExtractRequesterMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester := r.Header.Get("X-Auth-User")

			if requester == "" {
				requester = r.Header.Get("X-Forwarded-User")
			}
			if requester == "" {
				requester = r.Header.Get("Remote-User")
			}

			if requester == "" {
				requester = devRequester
				logger.Debug("no auth header, using dev requester", zap.String("path", r.URL.Path))
			}

			ctx := context.WithValue(r.Context(), RequesterKey, requester)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetRequester(r *http.Request) string {
	requester, ok := r.Context().Value(RequesterKey).(string)
	if !ok {
		return ""
	}
	return requester
}
