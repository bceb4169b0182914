package domain

import "time"

// Wishlist groups wishes into a named, ordered collection.
type Wishlist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	OwnerID     int64     `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Items []WishlistItem `json:"items"`
	Owner *User          `json:"owner,omitempty"`
}

// WishlistItem links a wish into a wishlist at a position.
type WishlistItem struct {
	ID         int64 `json:"id"`
	WishlistID int64 `json:"wishlistId"`
	WishID     int64 `json:"wishId"`
	Position   int   `json:"position"`

	Wish *Wish `json:"wish,omitempty"`
}

// WishlistUpdate carries optional changes to a wishlist.
type WishlistUpdate struct {
	Name        *string
	Description *string
	Image       *string
}
