package booking

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"jetset/models"

	"github.com/shopspring/decimal"
)

// ComputePrice validates every line item and computes the deterministic
// total. Activities without an internal price table yield the
// needs-external-pricing control signal instead of a price; the caller is
// expected to fetch the price from the knowledge source and resubmit it via
// Update. Calling twice without intervening updates yields the same total.
func (s *DefaultBookingService) ComputePrice(ctx context.Context, userID string) (*models.PriceResult, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	draft, err := s.getOrCreateLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.computeLocked(ctx, userID, draft)
}

func (s *DefaultBookingService) computeLocked(ctx context.Context, userID string, draft *models.BookingDraft) (*models.PriceResult, error) {
	if len(draft.Items) == 0 {
		return nil, NewMissingFieldError("activity")
	}

	// Every item is validated before any price arithmetic runs.
	for i := range draft.Items {
		it := &draft.Items[i]
		if it.Activity == "" {
			return nil, NewMissingFieldError("activity")
		}
		if it.Quantity == nil {
			return nil, NewMissingFieldError("quantity")
		}
		iso := draft.ResolveDateTime(i)
		if iso == "" {
			return nil, NewMissingFieldError("date_time_iso")
		}
		start, err := ParseStartTime(iso, s.Domain.Timezone)
		if err != nil {
			return nil, err
		}
		cfg := s.Domain.ActivityConfigFor(it.Activity)
		if !cfg.DurationExempt && it.DurationMin == nil {
			return nil, NewMissingFieldError("duration_min")
		}
		if it.DurationMin != nil {
			if err := ValidateDuration(cfg, *it.DurationMin, it.Package); err != nil {
				return nil, err
			}
			if err := ValidateWindow(start, *it.DurationMin); err != nil {
				return nil, err
			}
		}
	}

	total := decimal.Zero
	for i := range draft.Items {
		it := &draft.Items[i]
		cfg := s.Domain.ActivityConfigFor(it.Activity)
		if cfg.PriceTables == nil {
			return &models.PriceResult{NeedsExternalPricing: it.Activity}, nil
		}
		table := cfg.PriceTables[variantForVehicle(it.VehicleModel)]
		unitPrice, ok := table[*it.DurationMin]
		if !ok {
			return nil, NewInvalidDurationError(fmt.Sprintf(
				"unsupported %s duration: please choose one of %s minutes",
				it.Activity, allowedDurations(table)))
		}
		line := decimal.NewFromInt(unitPrice).Mul(decimal.NewFromInt(int64(*it.Quantity)))
		total = total.Add(line)
	}

	if s.Domain.PickupOffered && draft.PickupRequired != nil && *draft.PickupRequired {
		total = total.Add(decimal.NewFromInt(s.Domain.PickupFeeAED))
	}

	// VAT applies to base plus pickup, and the pre-VAT base is retained so a
	// later payment-method switch recomputes without recalling this path.
	base := total.Round(2)
	final := applyVAT(base, draft.PaymentMethod)
	draft.PriceAED = &final
	draft.PriceAEDBase = &base
	draft.UpdatedAt = time.Now()
	if err := s.Store.Put(ctx, userID, draft); err != nil {
		return nil, err
	}
	return &models.PriceResult{PriceAED: &final}, nil
}

// variantForVehicle picks the price-table variant from the vehicle model
// text; four-seaters price differently from two-seaters.
func variantForVehicle(model string) string {
	m := strings.ToLower(model)
	if strings.Contains(m, "4") && strings.Contains(m, "seat") {
		return "4-seat"
	}
	return "2-seat"
}

func allowedDurations(table map[int]int64) string {
	keys := make([]int, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d", k)
	}
	return strings.Join(parts, "/")
}
