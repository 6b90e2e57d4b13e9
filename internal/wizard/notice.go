package wizard

// Level separates success toasts from validation and failure toasts.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Kind identifies why a notice was raised so clients can react without
// parsing the message.
type Kind string

const (
	KindMissingQuantity      Kind = "missing-quantity"
	KindMissingPrintLocation Kind = "missing-print-location"
	KindMissingDesign        Kind = "missing-design"
	KindMissingContact       Kind = "missing-contact"
	KindInvalidEmail         Kind = "invalid-email"
	KindInvalidItem          Kind = "invalid-item"
	KindEmptyOrder           Kind = "empty-order"
	KindSubmitFailed         Kind = "submit-failed"
	KindItemSaved            Kind = "item-saved"
	KindSubmitted            Kind = "submitted"
)

// Notice is a user-visible message produced by a wizard action.
type Notice struct {
	Level   Level  `json:"level"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Notifier receives notices as they are raised.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// Collector keeps every notice it is given, in order.
type Collector struct {
	Notices []Notice
}

func (c *Collector) Notify(n Notice) {
	c.Notices = append(c.Notices, n)
}

type discard struct{}

func (discard) Notify(Notice) {}
