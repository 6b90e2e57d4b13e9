package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

var (
	ErrEmptyOrder     = errors.New("order has no items")
	ErrMissingContact = errors.New("contact information incomplete")
	ErrInvalidEmail   = errors.New("email address is not valid")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateContact checks the fields required for a final submission.
func ValidateContact(c domain.ContactInfo) error {
	c.FullName = strings.TrimSpace(c.FullName)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return ErrMissingContact
		}
	}
	return ErrInvalidEmail
}

// ItemError points at the line item that failed validation.
type ItemError struct {
	Position int
	Reason   string
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Position+1, e.Reason)
}

// ValidateItem checks what must be known about a garment at submit time.
func ValidateItem(item domain.OrderLineItem) string {
	if strings.TrimSpace(string(item.GarmentType)) == "" {
		return "garment type required"
	}
	if TotalQuantity(item.Sizes) == 0 {
		return "quantity required"
	}
	if item.GarmentType.IsStandard() {
		if strings.TrimSpace(item.MaterialType) == "" {
			return "material type required"
		}
		if strings.TrimSpace(item.CottonType) == "" {
			return "cotton type required"
		}
		if strings.TrimSpace(item.Brand) == "" {
			return "brand required"
		}
	}
	return ""
}

// ValidateOrder applies the submit rules to an assembled order.
func ValidateOrder(o domain.Order) error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}
	if err := ValidateContact(o.ContactInfo); err != nil {
		return err
	}
	for i, item := range o.Items {
		if reason := ValidateItem(item); reason != "" {
			return &ItemError{Position: i, Reason: reason}
		}
	}
	return nil
}
