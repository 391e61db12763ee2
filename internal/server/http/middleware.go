package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/smartdrive/internal/common"
	"github.com/dmitrijs2005/smartdrive/internal/logging"
	"github.com/google/uuid"
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

// RequestID returns the id assigned to the request by the logging middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func addCORSHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (rc *responseRecorder) WriteHeader(code int) {
	rc.status = code
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseRecorder) Write(b []byte) (int, error) {
	if rc.status == 0 {
		rc.status = http.StatusOK
	}
	n, err := rc.ResponseWriter.Write(b)
	rc.size += n
	return n, err
}

func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.New().String()

		ctx := context.WithValue(r.Context(), requestIDKey, reqID)
		w.Header().Set(common.RequestIDHeaderName, reqID)

		rc := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rc, r.WithContext(ctx))

		if rc.status == 0 {
			rc.status = http.StatusOK
		}
		s.logger.Info(ctx, "request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rc.status,
			"duration", time.Since(start),
		)
	})
}

// log returns the server logger tagged with the request id.
func (s *HTTPServer) log(r *http.Request) logging.Logger {
	return s.logger.With("request_id", RequestID(r.Context()))
}

type authedHandler func(w http.ResponseWriter, r *http.Request, owner string)

// requireAuth resolves the bearer credential and passes the username on.
func (s *HTTPServer) requireAuth(h authedHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, err := s.users.Authenticate(r.Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			s.log(r).Warn(r.Context(), "authentication failed", "path", r.URL.Path, "error", err)
			writeMessage(w, http.StatusUnauthorized, err.Error())
			return
		}
		h(w, r, owner)
	})
}
