// Package server hosts the webhook handler as a standalone HTTP server built
// on gin.
package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/prognoshealth/webhookproxy/config"
	"github.com/prognoshealth/webhookproxy/webhook"
)

const (
	// HeaderRequestID carries the id assigned to each inbound request.
	HeaderRequestID = "X-Request-ID"

	requestIDKey = "request_id"

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the webhook endpoints over HTTP.
type Server struct {
	addr    string
	handler *webhook.Handler
	engine  *gin.Engine
	log     *slog.Logger
}

// New returns a Server listening on cfg.Addr once Run is called.
func New(cfg config.ServerConfig, h *webhook.Handler, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		addr:    cfg.Addr,
		handler: h,
		log:     log.With("component", "server"),
	}

	s.engine = s.routes()

	return s
}

// Handler exposes the routed engine, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(requestID(), s.accessLog(), gin.Recovery())

	engine.OPTIONS("/*path", func(c *gin.Context) {
		write(c, webhook.Preflight())
	})

	engine.GET("/", func(c *gin.Context) {
		write(c, s.handler.Health())
	})
	engine.GET("/test", func(c *gin.Context) {
		write(c, s.handler.Index())
	})

	engine.GET("/webhook", s.forward)
	engine.POST("/webhook", s.forward)

	engine.GET("/webhook/test", s.probe)
	engine.POST("/webhook/test", s.probe)

	engine.NoRoute(func(c *gin.Context) {
		write(c, s.handler.NotFound(c.Request.Method, c.Request.URL.Path))
	})

	return engine
}

func (s *Server) forward(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		write(c, s.handler.Fail(errors.Wrap(err, "unable to read request body")))
		return
	}

	write(c, s.handler.Handle(c.Request.Context(), webhook.Request{
		Method: c.Request.Method,
		Query:  firstValues(c),
		Body:   body,
	}))
}

func (s *Server) probe(c *gin.Context) {
	write(c, s.handler.Probe(c.Request.Context(), c.Query("message")))
}

// firstValues flattens the query string, keeping the first value of
// repeated keys.
func firstValues(c *gin.Context) map[string]string {
	values := c.Request.URL.Query()

	query := make(map[string]string, len(values))
	for key, v := range values {
		if len(v) > 0 {
			query[key] = v[0]
		}
	}

	return query
}

func write(c *gin.Context, resp webhook.Response) {
	for key, value := range resp.Headers {
		c.Header(key, value)
	}

	if len(resp.Body) == 0 {
		c.Status(resp.StatusCode)
		return
	}

	c.Data(resp.StatusCode, resp.Headers[webhook.HeaderContentType], resp.Body)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.log.Info("Request served",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			requestIDKey, c.GetString(requestIDKey),
		)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.Info("Server started", "address", s.addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "unable to serve on %s", s.addr)
	}

	s.log.Info("Server stopped")
	return nil
}
