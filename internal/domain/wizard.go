package domain

import "time"

// WizardState is everything the order wizard owns between requests.
type WizardState struct {
	Step         int             `json:"step"`
	Submitted    bool            `json:"submitted"`
	ModalOpen    bool            `json:"modalOpen"`
	SavedItems   []OrderLineItem `json:"savedItems"`
	SizeCategory SizeCategory    `json:"sizeCategory"`
	Form         OrderLineItem   `json:"form"`
}

// WizardSession persists one customer's wizard between HTTP calls.
type WizardSession struct {
	ID        string      `json:"id"`
	State     WizardState `json:"state"`
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}
