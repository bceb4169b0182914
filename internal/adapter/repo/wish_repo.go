package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wishshare/internal/domain"
)

const wishColumns = `id, name, link, image, price_cents, raised_cents, owner_id,
	COALESCE(description, ''), copied, copied_from_id, created_at, updated_at`

// WishRepositoryPG implements domain.WishRepository backed by PostgreSQL.
type WishRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewWishRepository creates a new WishRepositoryPG.
func NewWishRepository(pool *pgxpool.Pool) *WishRepositoryPG {
	return &WishRepositoryPG{pool: pool}
}

// Create inserts a new wish with raised and copied starting at zero.
func (r *WishRepositoryPG) Create(ctx context.Context, wish *domain.Wish) (*domain.Wish, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO wishes (name, link, image, price_cents, owner_id, description)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING `+wishColumns+`
	`, wish.Name, wish.Link, wish.Image, int64(wish.Price), wish.OwnerID, wish.Description)
	return scanWish(row)
}

// GetByID fetches a wish together with its owner profile.
func (r *WishRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Wish, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+wishColumns+` FROM wishes WHERE id = $1`, id)
	wish, err := scanWish(row)
	if err != nil {
		return nil, err
	}

	var owner domain.User
	err = r.pool.QueryRow(ctx, `
		SELECT id, username, about, avatar, created_at, updated_at
		FROM users WHERE id = $1
	`, wish.OwnerID).Scan(&owner.ID, &owner.Username, &owner.About, &owner.Avatar, &owner.CreatedAt, &owner.UpdatedAt)
	if err == nil {
		wish.Owner = &owner
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return wish, nil
}

// List returns all wishes, newest first.
func (r *WishRepositoryPG) List(ctx context.Context) ([]domain.Wish, error) {
	return r.queryWishes(ctx, `SELECT `+wishColumns+` FROM wishes ORDER BY created_at DESC`)
}

// ListLast returns the most recently created wishes.
func (r *WishRepositoryPG) ListLast(ctx context.Context, limit int) ([]domain.Wish, error) {
	return r.queryWishes(ctx, `SELECT `+wishColumns+` FROM wishes ORDER BY created_at DESC LIMIT $1`, limit)
}

// ListTop returns the most copied wishes.
func (r *WishRepositoryPG) ListTop(ctx context.Context, limit int) ([]domain.Wish, error) {
	return r.queryWishes(ctx, `SELECT `+wishColumns+` FROM wishes ORDER BY copied DESC, created_at DESC LIMIT $1`, limit)
}

// ListByOwner returns a user's wishes, newest first.
func (r *WishRepositoryPG) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Wish, error) {
	return r.queryWishes(ctx, `SELECT `+wishColumns+` FROM wishes WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

// Update applies owner-guarded changes. The wish row is locked for the
// duration so a price change can never interleave with an in-flight offer
// transaction; a price change is rejected once any offer exists.
func (r *WishRepositoryPG) Update(ctx context.Context, id, ownerID int64, upd domain.WishUpdate) (*domain.Wish, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	dbOwnerID, offerCount, err := lockWish(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if dbOwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	if upd.Price != nil && offerCount > 0 {
		return nil, domain.ErrHasOffers
	}

	var priceCents *int64
	if upd.Price != nil {
		v := int64(*upd.Price)
		priceCents = &v
	}

	row := tx.QueryRow(ctx, `
		UPDATE wishes SET
			name = COALESCE($2, name),
			link = COALESCE($3, link),
			image = COALESCE($4, image),
			price_cents = COALESCE($5, price_cents),
			description = COALESCE($6, description),
			updated_at = NOW()
		WHERE id = $1
		RETURNING `+wishColumns+`
	`, id, upd.Name, upd.Link, upd.Image, priceCents, upd.Description)
	wish, err := scanWish(row)
	if err != nil {
		return nil, mapWriteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapWriteError(err)
	}
	return wish, nil
}

// Delete removes an owner's wish. Rejected once any offer exists;
// wishlist memberships are cleared first.
func (r *WishRepositoryPG) Delete(ctx context.Context, id, ownerID int64) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	dbOwnerID, offerCount, err := lockWish(ctx, tx, id)
	if err != nil {
		return err
	}
	if dbOwnerID != ownerID {
		return domain.ErrForbidden
	}
	if offerCount > 0 {
		return domain.ErrHasOffers
	}

	if _, err := tx.Exec(ctx, `DELETE FROM wishlist_items WHERE wish_id = $1`, id); err != nil {
		return mapWriteError(err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM wishes WHERE id = $1`, id); err != nil {
		return mapWriteError(err)
	}

	return mapWriteError(tx.Commit(ctx))
}

// Copy duplicates the source wish for newOwnerID (raised and copied reset
// to zero, lineage recorded) and bumps the source's copy counter by one.
// The increment is a single atomic update; it takes no row lock and never
// synchronizes with funding transactions on the same wish.
func (r *WishRepositoryPG) Copy(ctx context.Context, sourceID, newOwnerID int64) (*domain.Wish, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx, `
		INSERT INTO wishes (name, link, image, price_cents, owner_id, description, copied_from_id)
		SELECT name, link, image, price_cents, $2, description, id
		FROM wishes
		WHERE id = $1
		RETURNING `+wishColumns+`
	`, sourceID, newOwnerID)
	wish, err := scanWish(row)
	if err != nil {
		return nil, mapWriteError(err)
	}

	if _, err := tx.Exec(ctx, `UPDATE wishes SET copied = copied + 1 WHERE id = $1`, sourceID); err != nil {
		return nil, mapWriteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapWriteError(err)
	}
	return wish, nil
}

func (r *WishRepositoryPG) queryWishes(ctx context.Context, query string, args ...any) ([]domain.Wish, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Wish
	for rows.Next() {
		wish, err := scanWish(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *wish)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func lockWish(ctx context.Context, tx pgx.Tx, id int64) (ownerID int64, offerCount int, err error) {
	err = tx.QueryRow(ctx, `
		SELECT owner_id, (SELECT COUNT(*) FROM offers WHERE item_id = w.id)
		FROM wishes w
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&ownerID, &offerCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, 0, domain.ErrNotFound
	}
	return ownerID, offerCount, err
}

func scanWish(row pgx.Row) (*domain.Wish, error) {
	var (
		w           domain.Wish
		priceCents  int64
		raisedCents int64
	)
	err := row.Scan(
		&w.ID,
		&w.Name,
		&w.Link,
		&w.Image,
		&priceCents,
		&raisedCents,
		&w.OwnerID,
		&w.Description,
		&w.Copied,
		&w.CopiedFromID,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	w.Price = domain.Money(priceCents)
	w.Raised = domain.Money(raisedCents)
	return &w, nil
}
