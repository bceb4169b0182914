package domain

// EvaluateOffer decides whether an offer of amount by proposerID may be
// applied to the given wish snapshot, and returns the new raised total on
// acceptance. The snapshot must be the latest committed state, read under
// the same lock that serializes offer transactions for the wish.
//
// Rules apply in order: missing wish, self-offer, funding closed, amount
// over the remaining gap. Amount arithmetic is exact (cents), so no
// rounding happens here.
func EvaluateOffer(w *Wish, proposerID int64, amount Money) (Money, error) {
	if w == nil {
		return 0, ErrNotFound
	}
	if proposerID == w.OwnerID {
		return 0, ErrSelfOffer
	}
	remaining := w.Price - w.Raised
	if remaining <= 0 {
		return 0, ErrFundingClosed
	}
	if amount > remaining {
		return 0, &ExceedsRemainingError{Remaining: remaining}
	}
	return w.Raised + amount, nil
}
