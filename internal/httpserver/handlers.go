package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/addictedsalas/project-printing-sub000/internal/catalog"
	"github.com/addictedsalas/project-printing-sub000/internal/domain"
	"github.com/addictedsalas/project-printing-sub000/internal/order"
)

type handlers struct {
	wizard WizardService
	mailer Mailer
	logger *zap.Logger
}

func catalogHandler(c *catalog.Catalog) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, c)
	}
}

// sendEmail relays the contact form.
func (h *handlers) sendEmail(c *gin.Context) {
	var msg domain.ContactMessage
	if !bindJSON(c, &msg, "Name, email, subject and message are required") {
		return
	}
	if h.mailer == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	id, err := h.mailer.SendContact(c.Request.Context(), msg)
	if err != nil {
		h.logger.Error("contact email failed", zap.String("request_id", requestID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully", "messageId": id})
}

// submitOrder accepts a fully assembled order from clients that keep the
// wizard state themselves.
func (h *handlers) submitOrder(c *gin.Context) {
	var o domain.Order
	if !bindJSON(c, &o, "Invalid order payload") {
		return
	}
	for i := range o.Items {
		o.Items[i] = order.Freeze(o.Items[i])
	}
	if err := order.ValidateOrder(o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": orderErrorMessage(err)})
		return
	}
	if h.mailer == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit order"})
		return
	}
	id, err := h.mailer.SendOrder(c.Request.Context(), o)
	if err != nil {
		h.logger.Error("order email failed",
			zap.String("request_id", requestID(c)),
			zap.Int("items", len(o.Items)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order submitted successfully", "messageId": id})
}

func orderErrorMessage(err error) string {
	var itemErr *order.ItemError
	switch {
	case errors.Is(err, order.ErrEmptyOrder):
		return "Order must contain at least one item"
	case errors.Is(err, order.ErrMissingContact):
		return "Full name, email and phone are required"
	case errors.Is(err, order.ErrInvalidEmail):
		return "Please provide a valid email address"
	case errors.As(err, &itemErr):
		return itemErr.Error()
	default:
		return "Invalid order"
	}
}

// bindJSON decodes the body into v. Oversized bodies get 413, anything else
// that does not bind gets 400 with msg.
func bindJSON(c *gin.Context, v any, msg string) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	return false
}

// writeError maps service errors to status codes.
func (h *handlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, domain.ErrSessionSubmitted):
		c.JSON(http.StatusConflict, gin.H{"error": "order already submitted"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "session was modified concurrently, reload and retry"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("wizard request failed", zap.String("request_id", requestID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
