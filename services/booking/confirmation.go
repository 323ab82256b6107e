package booking

import (
	"context"
	"time"

	"jetset/models"

	"github.com/google/uuid"
)

// Confirm finalizes a draft. It fails with IncompleteBooking unless the
// draft is ready_to_confirm (a confirmed draft is terminal, so confirming
// twice fails too) and with MissingPrice when no price has been computed.
// Domains with internal price tables attempt one opportunistic compute
// before giving up on a missing price.
func (s *DefaultBookingService) Confirm(ctx context.Context, userID string) (*models.Confirmation, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	draft, err := s.getOrCreateLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft.Status != models.StatusReadyToConfirm {
		return nil, NewIncompleteBookingError()
	}
	if draft.PriceAED == nil {
		if !s.Domain.AttemptComputeOnConfirm {
			return nil, NewMissingPriceError()
		}
		res, err := s.computeLocked(ctx, userID, draft)
		if err != nil {
			return nil, err
		}
		if res.NeedsExternalPricing != "" {
			return nil, NewMissingPriceError()
		}
	}

	draft.Status = models.StatusConfirmed
	draft.UpdatedAt = time.Now()
	if err := s.Store.Put(ctx, userID, draft); err != nil {
		return nil, err
	}
	return &models.Confirmation{
		Confirmed:  true,
		BookingRef: uuid.New().String(),
		Location:   s.Domain.MeetingPoint,
		Draft:      draft,
	}, nil
}
