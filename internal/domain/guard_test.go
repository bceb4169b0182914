package domain

import (
	"errors"
	"testing"
)

func wishSnapshot(price, raised Money, ownerID int64) *Wish {
	return &Wish{ID: 1, Price: price, Raised: raised, OwnerID: ownerID}
}

func TestEvaluateOfferAccept(t *testing.T) {
	w := wishSnapshot(10000, 0, 7)
	newRaised, err := EvaluateOffer(w, 42, 6000)
	if err != nil {
		t.Fatalf("EvaluateOffer returned error: %v", err)
	}
	if newRaised != 6000 {
		t.Fatalf("newRaised = %d, want 6000", newRaised)
	}
}

func TestEvaluateOfferSecondOverflowingOffer(t *testing.T) {
	// Two 60.00 offers against price 100.00: the second one, evaluated
	// against the committed raised of the first, must report the 40.00 gap.
	w := wishSnapshot(10000, 6000, 7)
	_, err := EvaluateOffer(w, 43, 6000)
	var exceeds *ExceedsRemainingError
	if !errors.As(err, &exceeds) {
		t.Fatalf("expected ExceedsRemainingError, got %v", err)
	}
	if exceeds.Remaining != 4000 {
		t.Fatalf("Remaining = %s, want 40.00", exceeds.Remaining)
	}
}

func TestEvaluateOfferClosed(t *testing.T) {
	w := wishSnapshot(5000, 5000, 7)
	for _, amount := range []Money{1, 100, 5000} {
		if _, err := EvaluateOffer(w, 42, amount); !errors.Is(err, ErrFundingClosed) {
			t.Fatalf("amount %s: expected ErrFundingClosed, got %v", amount, err)
		}
	}
}

func TestEvaluateOfferSelf(t *testing.T) {
	w := wishSnapshot(10000, 0, 7)
	if _, err := EvaluateOffer(w, 7, 100); !errors.Is(err, ErrSelfOffer) {
		t.Fatalf("expected ErrSelfOffer, got %v", err)
	}
	if w.Raised != 0 {
		t.Fatalf("snapshot mutated: raised = %d", w.Raised)
	}
}

func TestEvaluateOfferNilWish(t *testing.T) {
	if _, err := EvaluateOffer(nil, 42, 100); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEvaluateOfferExactBoundary(t *testing.T) {
	// 0.01 against a remaining of exactly 0.01 closes the funding with no
	// rounding loss.
	w := wishSnapshot(10000, 9999, 7)
	newRaised, err := EvaluateOffer(w, 42, 1)
	if err != nil {
		t.Fatalf("EvaluateOffer returned error: %v", err)
	}
	if newRaised != w.Price {
		t.Fatalf("newRaised = %d, want price %d", newRaised, w.Price)
	}
}

func TestEvaluateOfferSelfCheckedBeforeClosed(t *testing.T) {
	// Rule order: the owner of a fully funded wish still gets the
	// self-offer rejection, not the closed one.
	w := wishSnapshot(5000, 5000, 7)
	if _, err := EvaluateOffer(w, 7, 100); !errors.Is(err, ErrSelfOffer) {
		t.Fatalf("expected ErrSelfOffer, got %v", err)
	}
}
