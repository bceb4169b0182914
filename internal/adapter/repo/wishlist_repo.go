package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wishshare/internal/domain"
)

const wishlistColumns = `id, name, COALESCE(description, ''), COALESCE(image, ''), owner_id, created_at, updated_at`

// WishlistRepositoryPG implements domain.WishlistRepository backed by PostgreSQL.
type WishlistRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewWishlistRepository creates a new WishlistRepositoryPG.
func NewWishlistRepository(pool *pgxpool.Pool) *WishlistRepositoryPG {
	return &WishlistRepositoryPG{pool: pool}
}

// Create inserts a wishlist and, when wishIDs are given, its items in one
// transaction. Missing wishes map to ErrNotFound, duplicates to ErrConflict.
func (r *WishlistRepositoryPG) Create(ctx context.Context, wl *domain.Wishlist, wishIDs []int64) (*domain.Wishlist, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx, `
		INSERT INTO wishlists (name, description, image, owner_id)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4)
		RETURNING `+wishlistColumns+`
	`, wl.Name, wl.Description, wl.Image, wl.OwnerID)
	created, err := scanWishlist(row)
	if err != nil {
		return nil, mapWriteError(err)
	}

	if len(wishIDs) > 0 {
		var found int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM wishes WHERE id = ANY($1)`, wishIDs).Scan(&found); err != nil {
			return nil, err
		}
		if found != len(dedupe(wishIDs)) {
			return nil, domain.ErrNotFound
		}
		for i, wishID := range wishIDs {
			_, err := tx.Exec(ctx, `
				INSERT INTO wishlist_items (wishlist_id, wish_id, position)
				VALUES ($1, $2, $3)
			`, created.ID, wishID, i)
			if err != nil {
				if isUniqueViolation(err) {
					return nil, domain.ErrConflict
				}
				return nil, mapWriteError(err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapWriteError(err)
	}
	return r.GetByID(ctx, created.ID)
}

// GetByID fetches a wishlist with its items and the referenced wishes.
func (r *WishlistRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Wishlist, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+wishlistColumns+` FROM wishlists WHERE id = $1`, id)
	wl, err := scanWishlist(row)
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, wl.ID)
	if err != nil {
		return nil, err
	}
	wl.Items = items
	return wl, nil
}

// List returns all wishlists newest first, with items loaded.
func (r *WishlistRepositoryPG) List(ctx context.Context) ([]domain.Wishlist, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+wishlistColumns+` FROM wishlists ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []domain.Wishlist
	for rows.Next() {
		wl, err := scanWishlist(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, *wl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		items, err := r.loadItems(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Items = items
	}
	return lists, nil
}

// Update applies owner-guarded changes to a wishlist.
func (r *WishlistRepositoryPG) Update(ctx context.Context, id, ownerID int64, upd domain.WishlistUpdate) (*domain.Wishlist, error) {
	if err := r.assertOwner(ctx, id, ownerID); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE wishlists SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			image = COALESCE($4, image),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+wishlistColumns+`
	`, id, upd.Name, upd.Description, upd.Image)
	wl, err := scanWishlist(row)
	if err != nil {
		return nil, mapWriteError(err)
	}
	items, err := r.loadItems(ctx, wl.ID)
	if err != nil {
		return nil, err
	}
	wl.Items = items
	return wl, nil
}

// Delete removes an owner's wishlist; items go with it via cascade.
func (r *WishlistRepositoryPG) Delete(ctx context.Context, id, ownerID int64) error {
	if err := r.assertOwner(ctx, id, ownerID); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `DELETE FROM wishlists WHERE id = $1`, id)
	return mapWriteError(err)
}

// AddItem links a wish into an owner's wishlist.
func (r *WishlistRepositoryPG) AddItem(ctx context.Context, wishlistID, ownerID, wishID int64, position int) (*domain.WishlistItem, error) {
	if err := r.assertOwner(ctx, wishlistID, ownerID); err != nil {
		return nil, err
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM wishes WHERE id = $1)`, wishID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	var item domain.WishlistItem
	err := r.pool.QueryRow(ctx, `
		INSERT INTO wishlist_items (wishlist_id, wish_id, position)
		VALUES ($1, $2, $3)
		RETURNING id, wishlist_id, wish_id, position
	`, wishlistID, wishID, position).Scan(&item.ID, &item.WishlistID, &item.WishID, &item.Position)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, mapWriteError(err)
	}
	return &item, nil
}

// RemoveItem unlinks a wish from an owner's wishlist.
func (r *WishlistRepositoryPG) RemoveItem(ctx context.Context, wishlistID, ownerID, wishID int64) error {
	if err := r.assertOwner(ctx, wishlistID, ownerID); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM wishlist_items WHERE wishlist_id = $1 AND wish_id = $2
	`, wishlistID, wishID)
	if err != nil {
		return mapWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WishlistRepositoryPG) assertOwner(ctx context.Context, id, ownerID int64) error {
	var dbOwnerID int64
	err := r.pool.QueryRow(ctx, `SELECT owner_id FROM wishlists WHERE id = $1`, id).Scan(&dbOwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

func (r *WishlistRepositoryPG) loadItems(ctx context.Context, wishlistID int64) ([]domain.WishlistItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.wishlist_id, i.wish_id, i.position,
			w.id, w.name, w.link, w.image, w.price_cents, w.raised_cents, w.owner_id,
			COALESCE(w.description, ''), w.copied, w.copied_from_id, w.created_at, w.updated_at
		FROM wishlist_items i
		JOIN wishes w ON w.id = i.wish_id
		WHERE i.wishlist_id = $1
		ORDER BY i.position, i.id
	`, wishlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.WishlistItem{}
	for rows.Next() {
		var (
			item        domain.WishlistItem
			w           domain.Wish
			priceCents  int64
			raisedCents int64
		)
		err := rows.Scan(
			&item.ID, &item.WishlistID, &item.WishID, &item.Position,
			&w.ID, &w.Name, &w.Link, &w.Image, &priceCents, &raisedCents, &w.OwnerID,
			&w.Description, &w.Copied, &w.CopiedFromID, &w.CreatedAt, &w.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		w.Price = domain.Money(priceCents)
		w.Raised = domain.Money(raisedCents)
		item.Wish = &w
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanWishlist(row pgx.Row) (*domain.Wishlist, error) {
	var wl domain.Wishlist
	err := row.Scan(&wl.ID, &wl.Name, &wl.Description, &wl.Image, &wl.OwnerID, &wl.CreatedAt, &wl.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &wl, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
