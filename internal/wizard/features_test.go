package wizard

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
	"github.com/addictedsalas/project-printing-sub000/internal/order"
)

type wizardTestContext struct {
	ctrl     *Controller
	notices  *Collector
	dispatch *stubDispatcher
}

func (w *wizardTestContext) reset() {
	w.notices = &Collector{}
	w.dispatch = &stubDispatcher{}
	w.ctrl = New(nil, WithNotifier(w.notices), WithDispatcher(w.dispatch))
}

func (w *wizardTestContext) edit(fn func(*domain.OrderLineItem)) {
	form := w.ctrl.State().Form
	fn(&form)
	w.ctrl.UpdateForm(form)
}

func (w *wizardTestContext) aNewOrderWizard() error {
	w.reset()
	return nil
}

func (w *wizardTestContext) sizeHas(size string, qty int, color string) error {
	w.edit(func(f *domain.OrderLineItem) {
		f.Sizes[domain.SizeKey(size)] = append(f.Sizes[domain.SizeKey(size)], domain.SizeEntry{Quantity: fmt.Sprint(qty), Color: color})
	})
	return nil
}

func (w *wizardTestContext) printLocationSelected(loc string) error {
	w.edit(func(f *domain.OrderLineItem) {
		f.PrintLocations = append(f.PrintLocations, domain.PrintLocation(loc))
	})
	return nil
}

func (w *wizardTestContext) designUploadedFor(loc string) error {
	w.edit(func(f *domain.OrderLineItem) {
		f.Designs[domain.PrintLocation(loc)] = "data:image/png;base64,iVBORw0KGgo="
	})
	return nil
}

func (w *wizardTestContext) garment(garment, material, cotton, brand string) error {
	w.edit(func(f *domain.OrderLineItem) {
		f.GarmentType = domain.GarmentType(garment)
		f.MaterialType = material
		f.CottonType = cotton
		f.Brand = brand
	})
	return nil
}

func (w *wizardTestContext) myContactIs(name, email, phone string) error {
	w.edit(func(f *domain.OrderLineItem) {
		f.ContactInfo = domain.ContactInfo{FullName: name, Email: email, Phone: phone}
	})
	return nil
}

func (w *wizardTestContext) wizardAtStep(step int) error {
	w.ctrl.SetStep(step)
	return nil
}

func (w *wizardTestContext) iClickNext() error {
	w.ctrl.HandleNext()
	return nil
}

func (w *wizardTestContext) iChooseToAddMore() error {
	w.ctrl.HandleAddMore()
	return nil
}

func (w *wizardTestContext) iSubmitTheOrder() error {
	w.ctrl.HandleSubmit(context.Background())
	return nil
}

func (w *wizardTestContext) lastError() (Notice, error) {
	for i := len(w.notices.Notices) - 1; i >= 0; i-- {
		if n := w.notices.Notices[i]; n.Level == LevelError {
			return n, nil
		}
	}
	return Notice{}, fmt.Errorf("no error notice was raised")
}

func (w *wizardTestContext) iSeeTheError(msg string) error {
	n, err := w.lastError()
	if err != nil {
		return err
	}
	if n.Message != msg {
		return fmt.Errorf("expected error %q, got %q", msg, n.Message)
	}
	return nil
}

func (w *wizardTestContext) iSeeAnErrorOfKind(kind string) error {
	n, err := w.lastError()
	if err != nil {
		return err
	}
	if string(n.Kind) != kind {
		return fmt.Errorf("expected error kind %q, got %q", kind, n.Kind)
	}
	return nil
}

func (w *wizardTestContext) noErrorWasShown() error {
	if n, err := w.lastError(); err == nil {
		return fmt.Errorf("unexpected error %q", n.Message)
	}
	return nil
}

func (w *wizardTestContext) wizardIsOnStep(step int) error {
	if got := w.ctrl.State().Step; got != step {
		return fmt.Errorf("expected step %d, got %d", step, got)
	}
	return nil
}

func (w *wizardTestContext) decisionModalIsOpen() error {
	if !w.ctrl.State().ModalOpen {
		return fmt.Errorf("expected decision modal to be open")
	}
	return nil
}

func (w *wizardTestContext) savedItems(n int) error {
	if got := len(w.ctrl.State().SavedItems); got != n {
		return fmt.Errorf("expected %d saved items, got %d", n, got)
	}
	return nil
}

func (w *wizardTestContext) formHasNoQuantities() error {
	if q := order.TotalQuantity(w.ctrl.State().Form.Sizes); q != 0 {
		return fmt.Errorf("expected empty form, got quantity %d", q)
	}
	return nil
}

func (w *wizardTestContext) formItemIndex(idx int) error {
	if got := w.ctrl.State().Form.ItemIndex; got != idx {
		return fmt.Errorf("expected item index %d, got %d", idx, got)
	}
	return nil
}

func (w *wizardTestContext) contactNameStill(name string) error {
	if got := w.ctrl.State().Form.ContactInfo.FullName; got != name {
		return fmt.Errorf("expected contact %q, got %q", name, got)
	}
	return nil
}

func (w *wizardTestContext) orderSentWith(items int) error {
	if len(w.dispatch.orders) != 1 {
		return fmt.Errorf("expected one order, got %d", len(w.dispatch.orders))
	}
	if got := len(w.dispatch.orders[0].Items); got != items {
		return fmt.Errorf("expected %d items, got %d", items, got)
	}
	return nil
}

func (w *wizardTestContext) thankYouState() error {
	if !w.ctrl.State().Submitted {
		return fmt.Errorf("expected submitted state")
	}
	return nil
}

func (w *wizardTestContext) nothingWasSent() error {
	if len(w.dispatch.orders) != 0 {
		return fmt.Errorf("expected no orders, got %d", len(w.dispatch.orders))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	w := &wizardTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		w.reset()
		return ctx, nil
	})

	ctx.Step(`^a new order wizard$`, w.aNewOrderWizard)
	ctx.Step(`^size "([^"]*)" has (\d+) "([^"]*)"$`, w.sizeHas)
	ctx.Step(`^print location "([^"]*)" is selected$`, w.printLocationSelected)
	ctx.Step(`^a design is uploaded for "([^"]*)"$`, w.designUploadedFor)
	ctx.Step(`^a "([^"]*)" made of "([^"]*)" "([^"]*)" by "([^"]*)"$`, w.garment)
	ctx.Step(`^my contact is "([^"]*)", "([^"]*)", "([^"]*)"$`, w.myContactIs)
	ctx.Step(`^the wizard is at step (\d+)$`, w.wizardAtStep)
	ctx.Step(`^I click next$`, w.iClickNext)
	ctx.Step(`^I choose to add more garments$`, w.iChooseToAddMore)
	ctx.Step(`^I submit the order$`, w.iSubmitTheOrder)
	ctx.Step(`^I see the error "([^"]*)"$`, w.iSeeTheError)
	ctx.Step(`^I see an error of kind "([^"]*)"$`, w.iSeeAnErrorOfKind)
	ctx.Step(`^no error was shown$`, w.noErrorWasShown)
	ctx.Step(`^the wizard is on step (\d+)$`, w.wizardIsOnStep)
	ctx.Step(`^the decision modal is open$`, w.decisionModalIsOpen)
	ctx.Step(`^there are (\d+) saved items$`, w.savedItems)
	ctx.Step(`^the form has no quantities$`, w.formHasNoQuantities)
	ctx.Step(`^the form item index is (\d+)$`, w.formItemIndex)
	ctx.Step(`^the contact name is still "([^"]*)"$`, w.contactNameStill)
	ctx.Step(`^the order was sent with (\d+) items$`, w.orderSentWith)
	ctx.Step(`^the wizard shows the thank-you state$`, w.thankYouState)
	ctx.Step(`^nothing was sent$`, w.nothingWasSent)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/order_wizard.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
