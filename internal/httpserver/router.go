package httpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/addictedsalas/project-printing-sub000/internal/catalog"
	"github.com/addictedsalas/project-printing-sub000/internal/domain"
	wizardsvc "github.com/addictedsalas/project-printing-sub000/internal/service/wizard"
)

// WizardService runs wizard actions against stored sessions.
type WizardService interface {
	Start(ctx context.Context) (*wizardsvc.Result, error)
	Get(ctx context.Context, id string) (*domain.WizardSession, error)
	UpdateForm(ctx context.Context, id string, item domain.OrderLineItem) (*wizardsvc.Result, error)
	Next(ctx context.Context, id string) (*wizardsvc.Result, error)
	Back(ctx context.Context, id string) (*wizardsvc.Result, error)
	Continue(ctx context.Context, id string) (*wizardsvc.Result, error)
	AddMore(ctx context.Context, id string) (*wizardsvc.Result, error)
	Submit(ctx context.Context, id string) (*wizardsvc.Result, error)
	SetStep(ctx context.Context, id string, step int) (*wizardsvc.Result, error)
	SetModalOpen(ctx context.Context, id string, open bool) (*wizardsvc.Result, error)
	SetSizeCategory(ctx context.Context, id string, cat domain.SizeCategory) (*wizardsvc.Result, error)
}

// Mailer sends orders and contact messages.
type Mailer interface {
	SendOrder(ctx context.Context, o domain.Order) (string, error)
	SendContact(ctx context.Context, m domain.ContactMessage) (string, error)
	Verify(ctx context.Context) error
}

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	WizardSvc WizardService
	Mailer    Mailer
	Catalog   *catalog.Catalog
	// DB is nil when sessions are kept in memory.
	DB Pinger

	AllowedOrigins  []string
	RateLimitPerMin int
	// TrustedProxies may set X-Forwarded-For. Nil trusts none, so the rate
	// limit keys on the socket address.
	TrustedProxies []string
	// MaxBodyBytes caps request bodies. Zero leaves them unbounded.
	MaxBodyBytes int64
}

// buildRouter wires routes for the API.
func buildRouter(logger *zap.Logger, deps Deps) (*gin.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Catalog == nil {
		deps.Catalog = catalog.Default()
	}

	router := gin.New()
	if err := router.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	router.Use(
		recoveryMiddleware(logger),
		requestIDMiddleware(),
		accessLogMiddleware(logger),
		corsMiddleware(deps.AllowedOrigins),
	)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB, newSMTPProbe(deps.Mailer, smtpProbeTTL)))

	api := router.Group("/api")
	if deps.MaxBodyBytes > 0 {
		api.Use(bodyLimitMiddleware(deps.MaxBodyBytes))
	}
	api.GET("/test", testHandler)
	api.GET("/catalog", catalogHandler(deps.Catalog))

	h := &handlers{wizard: deps.WizardSvc, mailer: deps.Mailer, logger: logger}

	// Routes that send email share one per-IP budget.
	var emailLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.RateLimitPerMin > 0 {
		emailLimit = rateLimitMiddleware(deps.RateLimitPerMin, time.Minute)
	}
	api.POST("/send-email", emailLimit, h.sendEmail)
	api.POST("/submit-order", emailLimit, h.submitOrder)

	sessions := api.Group("/wizard/sessions")
	sessions.POST("", h.startSession)
	sessions.GET("/:id", h.getSession)
	sessions.PUT("/:id/form", h.updateForm)
	sessions.PUT("/:id/step", h.setStep)
	sessions.PUT("/:id/modal", h.setModal)
	sessions.PUT("/:id/size-category", h.setSizeCategory)
	sessions.POST("/:id/next", h.action(WizardService.Next))
	sessions.POST("/:id/back", h.action(WizardService.Back))
	sessions.POST("/:id/continue", h.action(WizardService.Continue))
	sessions.POST("/:id/add-more", h.action(WizardService.AddMore))
	sessions.POST("/:id/submit", emailLimit, h.action(WizardService.Submit))

	return router, nil
}
