package domain

import "context"

// UserRepository defines access methods for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetCredentials returns the user including the password hash.
	GetCredentials(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, id int64, upd UserUpdate) (*User, error)
	Search(ctx context.Context, query string) ([]User, error)
}

// WishRepository handles persistence for wishes, including the copy
// operation with its atomic popularity increment.
type WishRepository interface {
	Create(ctx context.Context, wish *Wish) (*Wish, error)
	GetByID(ctx context.Context, id int64) (*Wish, error)
	List(ctx context.Context) ([]Wish, error)
	ListLast(ctx context.Context, limit int) ([]Wish, error)
	ListTop(ctx context.Context, limit int) ([]Wish, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Wish, error)
	Update(ctx context.Context, id, ownerID int64, upd WishUpdate) (*Wish, error)
	Delete(ctx context.Context, id, ownerID int64) error
	Copy(ctx context.Context, sourceID, newOwnerID int64) (*Wish, error)
}

// OfferRepository owns the funding transaction: Create is the sole writer
// of Wish.Raised and serializes concurrent offers per wish.
type OfferRepository interface {
	Create(ctx context.Context, in CreateOfferInput) (*CreateOfferResult, error)
	GetByID(ctx context.Context, id int64) (*Offer, error)
	List(ctx context.Context) ([]Offer, error)
}

// WishlistRepository handles wishlist persistence.
type WishlistRepository interface {
	Create(ctx context.Context, wl *Wishlist, wishIDs []int64) (*Wishlist, error)
	GetByID(ctx context.Context, id int64) (*Wishlist, error)
	List(ctx context.Context) ([]Wishlist, error)
	Update(ctx context.Context, id, ownerID int64, upd WishlistUpdate) (*Wishlist, error)
	Delete(ctx context.Context, id, ownerID int64) error
	AddItem(ctx context.Context, wishlistID, ownerID, wishID int64, position int) (*WishlistItem, error)
	RemoveItem(ctx context.Context, wishlistID, ownerID, wishID int64) error
}
