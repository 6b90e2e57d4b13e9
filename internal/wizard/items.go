package wizard

import (
	"github.com/addictedsalas/project-printing-sub000/internal/domain"
	"github.com/addictedsalas/project-printing-sub000/internal/order"
)

// HandleContinue saves the active item and moves on to customization with
// the same item still loaded, so locations and designs can be refined.
// Saving again later replaces the entry instead of duplicating it.
func (c *Controller) HandleContinue() bool {
	item, ok := c.freezeActive()
	if !ok {
		return false
	}
	c.state.SavedItems = order.Upsert(c.state.SavedItems, item)
	c.state.ModalOpen = false
	c.state.Step = StepCustomization
	c.succeed(KindItemSaved, "Item saved. Continue customizing your order")
	return true
}

// HandleAddMore saves the active item and starts a blank one at step 1.
func (c *Controller) HandleAddMore() bool {
	item, ok := c.freezeActive()
	if !ok {
		return false
	}
	c.state.SavedItems = order.Upsert(c.state.SavedItems, item)
	next := order.NextLineItem(c.state.Form)
	next.SizeCategory = c.state.SizeCategory
	c.state.Form = next
	c.state.ModalOpen = false
	c.state.Step = StepProductDetails
	c.succeed(KindItemSaved, "Item added! Configure your next garment")
	return true
}

func (c *Controller) freezeActive() (domain.OrderLineItem, bool) {
	form := c.state.Form
	if order.TotalQuantity(form.Sizes) == 0 {
		return domain.OrderLineItem{}, c.fail(KindMissingQuantity, msgMissingQuantity)
	}
	if len(form.PrintLocations) == 0 {
		return domain.OrderLineItem{}, c.fail(KindMissingPrintLocation, msgMissingLocation)
	}
	if len(order.SanitizeLocations(form.PrintLocations)) == 0 {
		return domain.OrderLineItem{}, c.fail(KindMissingPrintLocation, "Please name your custom print location")
	}
	return order.Freeze(form), true
}
