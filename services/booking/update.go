package booking

import (
	"context"
	"strings"
	"time"

	"jetset/models"

	"github.com/shopspring/decimal"
)

var cardVAT = decimal.RequireFromString(cardVATMultiplier)

// Update merges a sparse patch into the user's draft. The merge is staged on
// a copy: if the fail-fast time check rejects the patch, the stored draft is
// left untouched and the error is returned with the unmodified draft state.
func (s *DefaultBookingService) Update(ctx context.Context, userID string, patch models.BookingPatch) (*models.BookingDraft, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	current, err := s.getOrCreateLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	draft := current.Clone()
	s.applyPatch(draft, &patch)

	if patch.TouchesTime() {
		if err := s.checkItemTimes(draft); err != nil {
			return current, err
		}
	}

	if s.ready(draft) {
		draft.Status = models.StatusReadyToConfirm
	} else if draft.Status != models.StatusConfirmed {
		draft.Status = models.StatusCollecting
	}
	draft.UpdatedAt = time.Now()
	if err := s.Store.Put(ctx, userID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *DefaultBookingService) applyPatch(d *models.BookingDraft, p *models.BookingPatch) {
	prevPayment := d.PaymentMethod

	if p.CustomerName != nil {
		d.CustomerName = strings.TrimSpace(*p.CustomerName)
	}
	if p.PaymentMethod != nil {
		d.PaymentMethod = strings.ToLower(strings.TrimSpace(*p.PaymentMethod))
	}
	if p.PickupRequired != nil && p.PickupRequired.Valid && s.Domain.PickupOffered {
		v := p.PickupRequired.Value
		d.PickupRequired = &v
	}
	d.Notes = append(d.Notes, p.Notes...)

	if p.AddItem != nil {
		item := s.normalizeItem(p.AddItem)
		d.Items = append(d.Items, item)
		if item.DateTimeISO != "" && d.DateTimeISO == "" {
			d.DateTimeISO = item.DateTimeISO
		}
	}

	// Bare follow-up fields land on the most recent item, so a reply like
	// "2" updates the item under discussion instead of opening a new one.
	if patchHasItemFields(p) {
		if len(d.Items) == 0 {
			d.Items = append(d.Items, models.LineItem{})
		}
		it := d.LatestItem()
		if p.Activity != nil {
			it.Activity = s.Domain.NormalizeActivity(*p.Activity)
		}
		if p.Package != nil {
			it.Package = strings.TrimSpace(*p.Package)
		}
		if p.VehicleModel != nil {
			it.VehicleModel = strings.ToLower(strings.TrimSpace(*p.VehicleModel))
		}
		if p.Quantity != nil && p.Quantity.Valid {
			q := p.Quantity.Value
			it.Quantity = &q
		}
		if p.DurationMin != nil && p.DurationMin.Valid {
			m := p.DurationMin.Value
			it.DurationMin = &m
		}
		if p.DateTimeISO != nil {
			iso := strings.TrimSpace(*p.DateTimeISO)
			it.DateTimeISO = iso
			if d.DateTimeISO == "" {
				d.DateTimeISO = iso
			}
		}
	}

	if p.TouchesPrice() {
		// The cached base goes too: it was derived for the old quantities,
		// and a later payment switch must not resurrect it.
		d.PriceAED = nil
		d.PriceAEDBase = nil
	}
	if p.PaymentMethod != nil && d.PaymentMethod != prevPayment {
		d.PriceAED = nil
		// Changing the payment method alone re-derives the total from the
		// cached pre-VAT base without recalling the pricing source.
		if d.PriceAEDBase != nil {
			total := applyVAT(*d.PriceAEDBase, d.PaymentMethod)
			d.PriceAED = &total
		}
	}

	// An externally sourced price submitted in this call wins over any
	// invalidation above; the pre-VAT base is retained for later
	// payment-method switches. Last write wins on resubmission.
	if p.PriceAED != nil && p.PriceAED.Valid {
		total := p.PriceAED.Value.Round(2)
		base := total
		if d.PaymentMethod == "card" {
			base = total.Div(cardVAT).Round(2)
		}
		d.PriceAED = &total
		d.PriceAEDBase = &base
	}
}

func (s *DefaultBookingService) normalizeItem(p *models.ItemPatch) models.LineItem {
	var item models.LineItem
	if p.Activity != nil {
		item.Activity = s.Domain.NormalizeActivity(*p.Activity)
	}
	if p.Package != nil {
		item.Package = strings.TrimSpace(*p.Package)
	}
	if p.VehicleModel != nil {
		item.VehicleModel = strings.ToLower(strings.TrimSpace(*p.VehicleModel))
	}
	if p.Quantity != nil && p.Quantity.Valid {
		q := p.Quantity.Value
		item.Quantity = &q
	}
	if p.DurationMin != nil && p.DurationMin.Valid {
		m := p.DurationMin.Value
		item.DurationMin = &m
	}
	if p.DateTimeISO != nil {
		item.DateTimeISO = strings.TrimSpace(*p.DateTimeISO)
	}
	return item
}

func patchHasItemFields(p *models.BookingPatch) bool {
	if p.Activity != nil || p.Package != nil || p.VehicleModel != nil || p.DateTimeISO != nil {
		return true
	}
	if p.Quantity != nil && p.Quantity.Valid {
		return true
	}
	return p.DurationMin != nil && p.DurationMin.Valid
}

// checkItemTimes is the fail-fast validation run whenever an update touches
// a start time or duration. Every item is checked, because a new start time
// can propagate into the draft default and change when earlier date-less
// items resolve to. OutOfHours blocks all forward progress here, before any
// further field collection.
func (s *DefaultBookingService) checkItemTimes(d *models.BookingDraft) error {
	for i := range d.Items {
		it := &d.Items[i]
		iso := d.ResolveDateTime(i)
		var start time.Time
		haveStart := false
		if iso != "" {
			parsed, err := ParseStartTime(iso, s.Domain.Timezone)
			if err != nil {
				return err
			}
			start = parsed
			haveStart = true
		}
		if it.DurationMin != nil {
			cfg := s.Domain.ActivityConfigFor(it.Activity)
			if err := ValidateDuration(cfg, *it.DurationMin, it.Package); err != nil {
				return err
			}
			if haveStart {
				if err := ValidateWindow(start, *it.DurationMin); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ready computes whether every required field for the draft's current shape
// is present. Item requirements branch on the activity's configuration.
func (s *DefaultBookingService) ready(d *models.BookingDraft) bool {
	if len(d.Items) == 0 {
		return false
	}
	for i := range d.Items {
		it := &d.Items[i]
		if it.Activity == "" {
			return false
		}
		if it.Quantity == nil {
			return false
		}
		if d.ResolveDateTime(i) == "" {
			return false
		}
		cfg := s.Domain.ActivityConfigFor(it.Activity)
		if cfg.RequiresPackage && it.Package == "" {
			return false
		}
		if !cfg.DurationExempt && it.DurationMin == nil {
			return false
		}
		if cfg.RequiresVehicle && it.VehicleModel == "" {
			return false
		}
	}
	if d.CustomerName == "" || d.PaymentMethod == "" {
		return false
	}
	if s.Domain.PickupOffered && d.PickupRequired == nil {
		return false
	}
	return true
}

func applyVAT(base decimal.Decimal, paymentMethod string) decimal.Decimal {
	if paymentMethod == "card" {
		return base.Mul(cardVAT).Round(2)
	}
	return base.Round(2)
}
