package wizard

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
	"github.com/addictedsalas/project-printing-sub000/internal/order"
)

var errNoDispatcher = errors.New("no dispatcher configured")

// HandleSubmit sends the order once the contact step is reached. Called
// earlier, it only advances one step.
func (c *Controller) HandleSubmit(ctx context.Context) bool {
	if c.state.Step < TotalSteps {
		c.state.Step++
		return false
	}

	items := order.Merge(c.state.SavedItems, c.state.Form)
	if len(items) == 0 {
		return c.fail(KindEmptyOrder, "Please add at least one item to your order")
	}
	o := domain.Order{ContactInfo: c.state.Form.ContactInfo, Items: items}
	if err := order.ValidateOrder(o); err != nil {
		return c.failValidation(err)
	}

	id, err := c.send(ctx, o)
	if err != nil {
		c.logger.Error("order submission failed",
			zap.Int("items", len(items)),
			zap.String("email", o.ContactInfo.Email),
			zap.Error(err))
		return c.fail(KindSubmitFailed, "There was an error submitting your order. Please try again.")
	}

	c.logger.Info("order submitted", zap.String("message_id", id), zap.Int("items", len(items)))
	c.state.Submitted = true
	c.succeed(KindSubmitted, "Order submitted successfully!")
	return true
}

func (c *Controller) send(ctx context.Context, o domain.Order) (string, error) {
	if c.dispatch == nil {
		return "", errNoDispatcher
	}
	return c.dispatch.SendOrder(ctx, o)
}

func (c *Controller) failValidation(err error) bool {
	var itemErr *order.ItemError
	switch {
	case errors.Is(err, order.ErrEmptyOrder):
		return c.fail(KindEmptyOrder, "Please add at least one item to your order")
	case errors.Is(err, order.ErrMissingContact):
		return c.fail(KindMissingContact, "Please fill in your name, email, and phone number")
	case errors.Is(err, order.ErrInvalidEmail):
		return c.fail(KindInvalidEmail, "Please enter a valid email address")
	case errors.As(err, &itemErr):
		return c.fail(KindInvalidItem, fmt.Sprintf("Item %d is incomplete: %s", itemErr.Position+1, itemErr.Reason))
	default:
		return c.fail(KindInvalidItem, err.Error())
	}
}
