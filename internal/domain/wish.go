package domain

import "time"

// Wish is a gift item with a target price and the amount raised so far.
//
// Invariants, observable outside an in-flight transaction:
//   - 0 <= Raised <= Price
//   - Raised equals the sum of amounts over all offers for the wish
//     (hidden offers count; hidden affects display only).
//
// Price becomes immutable and the wish undeletable once an offer exists.
type Wish struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Link         string    `json:"link"`
	Image        string    `json:"image"`
	Price        Money     `json:"price"`
	Raised       Money     `json:"raised"`
	OwnerID      int64     `json:"ownerId"`
	Description  string    `json:"description,omitempty"`
	Copied       int       `json:"copied"`
	CopiedFromID *int64    `json:"copiedFromId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Owner *User `json:"owner,omitempty"`
}

// Remaining reports how much is left to collect, clamped at zero.
func (w *Wish) Remaining() Money {
	r := w.Price - w.Raised
	if r < 0 {
		return 0
	}
	return r
}

// WishUpdate carries optional changes to a wish. Raised is deliberately
// absent: only the offer transaction writes it.
type WishUpdate struct {
	Name        *string
	Link        *string
	Image       *string
	Price       *Money
	Description *string
}
