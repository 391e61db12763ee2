// Package http exposes the JSON HTTP API: health, account registration and
// login, and the authenticated file operations.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/smartdrive/internal/logging"
	"github.com/dmitrijs2005/smartdrive/internal/server/models"
	"github.com/dmitrijs2005/smartdrive/internal/server/services"
	"github.com/gorilla/mux"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Cloud-smart-storage"

const shutdownTimeout = 5 * time.Second

// Authenticator registers users, issues credentials and resolves them.
type Authenticator interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(header string) (string, error)
}

// FileNamespace is the per-owner file API.
type FileNamespace interface {
	Upload(ctx context.Context, owner, fileName string, content io.Reader, size int64, contentType string) (*models.FileRecord, error)
	List(ctx context.Context, owner string) ([]*models.FileRecord, error)
	Delete(ctx context.Context, owner, fileName string) error
	Share(ctx context.Context, owner, fileName string) (*services.ShareLink, error)
}

type HTTPServer struct {
	address       string
	users         Authenticator
	files         FileNamespace
	logger        logging.Logger
	maxUploadSize int64
	metrics       *serverMetrics
}

func NewHTTPServer(a string, l logging.Logger, us Authenticator, fs FileNamespace, maxUploadSize int64) *HTTPServer {
	return &HTTPServer{
		address:       a,
		logger:        l.With("module", "http_server"),
		users:         us,
		files:         fs,
		maxUploadSize: maxUploadSize,
		metrics:       newServerMetrics(),
	}
}

// Handler returns the routed API wrapped in the CORS and request logging
// middleware. Prometheus metrics are served on /metrics.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.SkipClean(true)

	m := s.metrics.instrument

	r.Handle("/", m("health", http.HandlerFunc(s.handleHealth))).Methods(http.MethodGet)
	r.Handle("/register", m("register", http.HandlerFunc(s.handleRegister))).Methods(http.MethodPost)
	r.Handle("/login", m("login", http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost)

	r.Handle("/upload", m("upload", s.requireAuth(s.handleUpload))).Methods(http.MethodPost)
	r.Handle("/files", m("list", s.requireAuth(s.handleList))).Methods(http.MethodGet)
	r.Handle("/delete/{filename:.+}", m("delete", s.requireAuth(s.handleDelete))).Methods(http.MethodDelete)
	r.Handle("/share/{filename:.+}", m("share", s.requireAuth(s.handleShare))).Methods(http.MethodGet)

	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return addCORSHeaders(s.requestLogger(r))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "http shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
