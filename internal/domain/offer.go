package domain

import "time"

// Offer is an immutable pledge toward a wish. There is no update or
// delete path: once created it only ever gets read.
type Offer struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"itemId"`
	UserID    int64     `json:"userId"`
	Amount    Money     `json:"amount"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateOfferInput is the request accepted by the offer transaction.
type CreateOfferInput struct {
	ItemID int64
	UserID int64
	Amount Money
	Hidden bool
}

// CreateOfferResult is returned on commit. OwnerEmail is resolved inside
// the transaction so the caller can notify the wish owner afterwards.
type CreateOfferResult struct {
	Offer      Offer
	WishName   string
	OwnerID    int64
	OwnerEmail string
}
