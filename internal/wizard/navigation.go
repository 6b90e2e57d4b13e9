package wizard

import (
	"strings"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
	"github.com/addictedsalas/project-printing-sub000/internal/order"
)

const (
	msgMissingQuantity = "Please add at least one item before continuing"
	msgMissingLocation = "Please select at least one print location"
)

// HandleNext moves forward from the current step when its gate passes.
// Leaving the product step does not change the step: it opens the
// continue/add-more decision instead.
func (c *Controller) HandleNext() bool {
	form := c.state.Form
	switch c.state.Step {
	case StepProductDetails:
		if order.TotalQuantity(form.Sizes) == 0 {
			return c.fail(KindMissingQuantity, msgMissingQuantity)
		}
		c.state.ModalOpen = true
		return true
	case StepCustomization:
		if len(form.PrintLocations) == 0 {
			return c.fail(KindMissingPrintLocation, msgMissingLocation)
		}
		if missing := order.MissingDesigns(form, c.policy.RequireCustomDesigns); len(missing) > 0 {
			return c.fail(KindMissingDesign, "Please upload a design for: "+joinLabels(missing))
		}
	}
	c.state.Step = clampStep(c.state.Step + 1)
	return true
}

// HandleBack returns to the previous step.
func (c *Controller) HandleBack() bool {
	if c.state.Step <= StepProductDetails {
		return false
	}
	c.state.Step--
	return true
}

func joinLabels(locations []domain.PrintLocation) string {
	labels := make([]string, 0, len(locations))
	for _, loc := range locations {
		labels = append(labels, loc.Label())
	}
	return strings.Join(labels, ", ")
}
