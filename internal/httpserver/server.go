package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds a Server with every route registered.
func New(addr string, logger *zap.Logger, deps Deps) (*Server, error) {
	router, err := buildRouter(logger, deps)
	if err != nil {
		return nil, err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func testHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API is working"})
}

// readyHandler gates on the session database when there is one. SMTP is
// reported but does not gate: the wizard works until an order is submitted.
func readyHandler(db Pinger, smtp *smtpProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		checks := gin.H{}
		ready := true
		if db != nil {
			if err := db.Ping(ctx); err != nil {
				checks["db"] = "not reachable"
				ready = false
			} else {
				checks["db"] = "ok"
			}
		}
		if smtp != nil {
			if err := smtp.Check(ctx); err != nil {
				checks["smtp"] = err.Error()
			} else {
				checks["smtp"] = "ok"
			}
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
	}
}

const smtpProbeTTL = time.Minute

// smtpProbe remembers the last relay verification for ttl so readiness
// polling does not dial and authenticate on every request.
type smtpProbe struct {
	mailer Mailer
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	checked time.Time
	last    error
}

func newSMTPProbe(m Mailer, ttl time.Duration) *smtpProbe {
	if m == nil {
		return nil
	}
	return &smtpProbe{mailer: m, ttl: ttl, now: time.Now}
}

func (p *smtpProbe) Check(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.checked.IsZero() && p.now().Sub(p.checked) < p.ttl {
		return p.last
	}
	p.last = p.mailer.Verify(ctx)
	p.checked = p.now()
	return p.last
}
