package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wishshare/internal/domain"
)

// OfferRepositoryPG implements domain.OfferRepository backed by PostgreSQL.
// Create is the transaction coordinator for the funding path: it is the
// only writer of wishes.raised_cents.
type OfferRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewOfferRepository creates a new OfferRepositoryPG.
func NewOfferRepository(pool *pgxpool.Pool) *OfferRepositoryPG {
	return &OfferRepositoryPG{pool: pool}
}

// Create runs the offer transaction: an exclusive row lock on the wish
// serializes concurrent offers per wish, the guard is evaluated against
// the locked snapshot, and the offer insert plus raised update commit
// together. Any guard rejection aborts with zero writes. Offers against
// distinct wishes never block each other.
func (r *OfferRepositoryPG) Create(ctx context.Context, in domain.CreateOfferInput) (*domain.CreateOfferResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// Re-read the latest committed state under the lock. Any earlier
	// unlocked read of the wish is informational only.
	var (
		wish        domain.Wish
		priceCents  int64
		raisedCents int64
	)
	err = tx.QueryRow(ctx, `
		SELECT id, name, owner_id, price_cents, raised_cents
		FROM wishes
		WHERE id = $1
		FOR UPDATE
	`, in.ItemID).Scan(&wish.ID, &wish.Name, &wish.OwnerID, &priceCents, &raisedCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapWriteError(err)
	}
	wish.Price = domain.Money(priceCents)
	wish.Raised = domain.Money(raisedCents)

	newRaised, err := domain.EvaluateOffer(&wish, in.UserID, in.Amount)
	if err != nil {
		return nil, err
	}

	var (
		offer       domain.Offer
		amountCents int64
	)
	err = tx.QueryRow(ctx, `
		INSERT INTO offers (item_id, user_id, amount_cents, hidden)
		VALUES ($1, $2, $3, $4)
		RETURNING id, item_id, user_id, amount_cents, hidden, created_at, updated_at
	`, in.ItemID, in.UserID, int64(in.Amount), in.Hidden).Scan(
		&offer.ID,
		&offer.ItemID,
		&offer.UserID,
		&amountCents,
		&offer.Hidden,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	)
	if err != nil {
		return nil, mapWriteError(err)
	}
	offer.Amount = domain.Money(amountCents)

	_, err = tx.Exec(ctx, `
		UPDATE wishes SET raised_cents = $1, updated_at = NOW() WHERE id = $2
	`, int64(newRaised), in.ItemID)
	if err != nil {
		return nil, mapWriteError(err)
	}

	var ownerEmail string
	err = tx.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, wish.OwnerID).Scan(&ownerEmail)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapWriteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapWriteError(err)
	}

	return &domain.CreateOfferResult{
		Offer:      offer,
		WishName:   wish.Name,
		OwnerID:    wish.OwnerID,
		OwnerEmail: ownerEmail,
	}, nil
}

// GetByID fetches a single offer.
func (r *OfferRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, item_id, user_id, amount_cents, hidden, created_at, updated_at
		FROM offers
		WHERE id = $1
	`, id)
	return scanOffer(row)
}

// List returns all offers, newest first.
func (r *OfferRepositoryPG) List(ctx context.Context) ([]domain.Offer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_id, user_id, amount_cents, hidden, created_at, updated_at
		FROM offers
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *offer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanOffer(row pgx.Row) (*domain.Offer, error) {
	var (
		o           domain.Offer
		amountCents int64
	)
	err := row.Scan(&o.ID, &o.ItemID, &o.UserID, &amountCents, &o.Hidden, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.Amount = domain.Money(amountCents)
	return &o, nil
}
