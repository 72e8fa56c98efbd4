package shared

import (
	"time"

	"github.com/google/uuid"
)

type ChangeKind string

const (
	ChangeCheckoutCreated  ChangeKind = "checkout.created"
	ChangeCheckoutReturned ChangeKind = "checkout.returned"
	ChangeBookCreated      ChangeKind = "book.created"
	ChangeBookUpdated      ChangeKind = "book.updated"
	ChangeBookDeleted      ChangeKind = "book.deleted"
	ChangeInventoryAnomaly ChangeKind = "inventory.anomaly"
)

// ChangeEvent is published once per committed transition.
type ChangeEvent struct {
	Kind       ChangeKind `json:"kind"`
	BookID     string     `json:"bookId"`
	CheckoutID *uuid.UUID `json:"checkoutId,omitempty"`
	SubjectID  string     `json:"subjectId,omitempty"`
	Quantity   int        `json:"quantity,omitempty"`
	Available  int        `json:"available"`
	Total      int        `json:"total"`
	OccurredAt time.Time  `json:"occurredAt"`
}

// IsCheckoutEvent reports events that belong to one subject's ledger entries.
func (e ChangeEvent) IsCheckoutEvent() bool {
	return e.CheckoutID != nil
}

type ChangePublisher interface {
	Publish(event ChangeEvent)
}

// NopPublisher discards events. Used by the CLI where nobody subscribes.
type NopPublisher struct{}

func (NopPublisher) Publish(ChangeEvent) {}
