package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus tracks where a draft sits in its lifecycle.
type BookingStatus string

const (
	StatusCollecting     BookingStatus = "collecting"
	StatusReadyToConfirm BookingStatus = "ready_to_confirm"
	StatusConfirmed      BookingStatus = "confirmed"
)

// LineItem is one bookable activity instance within a draft. A plain single
// booking is a draft whose item list holds exactly one of these.
type LineItem struct {
	Activity     string `json:"activity,omitempty"`
	Package      string `json:"package,omitempty"`
	VehicleModel string `json:"vehicle_model,omitempty"`
	Quantity     *int   `json:"quantity,omitempty"`
	DurationMin  *int   `json:"duration_min,omitempty"`
	DateTimeISO  string `json:"date_time_iso,omitempty"`
}

// BookingDraft is the mutable per-user booking record for one domain.
// DateTimeISO is the shared default start time; items without their own
// date/time resolve against it.
type BookingDraft struct {
	Domain         string           `json:"domain"`
	UserID         string           `json:"user_id"`
	Status         BookingStatus    `json:"status"`
	CustomerName   string           `json:"customer_name,omitempty"`
	PaymentMethod  string           `json:"payment_method,omitempty"`
	PickupRequired *bool            `json:"pickup_required,omitempty"`
	DateTimeISO    string           `json:"date_time_iso,omitempty"`
	Items          []LineItem       `json:"items"`
	PriceAED       *decimal.Decimal `json:"price_aed,omitempty"`
	PriceAEDBase   *decimal.Decimal `json:"price_aed_base,omitempty"`
	Notes          []string         `json:"notes,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ResolveDateTime returns the start time for item i, falling back to the
// draft-level default.
func (d *BookingDraft) ResolveDateTime(i int) string {
	if i >= 0 && i < len(d.Items) && d.Items[i].DateTimeISO != "" {
		return d.Items[i].DateTimeISO
	}
	return d.DateTimeISO
}

// LatestItem returns the most recently added item, or nil if none exist.
func (d *BookingDraft) LatestItem() *LineItem {
	if len(d.Items) == 0 {
		return nil
	}
	return &d.Items[len(d.Items)-1]
}

// Active reports whether the draft is still being worked on.
func (d *BookingDraft) Active() bool {
	return d.Status == StatusCollecting || d.Status == StatusReadyToConfirm
}

// Clone returns a deep copy, so callers can stage a merge and throw it away
// on validation failure without corrupting the stored draft.
func (d *BookingDraft) Clone() *BookingDraft {
	if d == nil {
		return nil
	}
	c := *d
	c.Items = make([]LineItem, len(d.Items))
	for i, it := range d.Items {
		c.Items[i] = it
		if it.Quantity != nil {
			q := *it.Quantity
			c.Items[i].Quantity = &q
		}
		if it.DurationMin != nil {
			m := *it.DurationMin
			c.Items[i].DurationMin = &m
		}
	}
	if d.PickupRequired != nil {
		b := *d.PickupRequired
		c.PickupRequired = &b
	}
	if d.PriceAED != nil {
		p := *d.PriceAED
		c.PriceAED = &p
	}
	if d.PriceAEDBase != nil {
		p := *d.PriceAEDBase
		c.PriceAEDBase = &p
	}
	c.Notes = append([]string(nil), d.Notes...)
	return &c
}

// Confirmation is returned once a draft transitions to confirmed.
type Confirmation struct {
	Confirmed  bool          `json:"confirmed"`
	BookingRef string        `json:"booking_ref"`
	Location   string        `json:"location,omitempty"`
	Draft      *BookingDraft `json:"draft"`
}

// PriceResult is the outcome of a price computation. Exactly one of PriceAED
// and NeedsExternalPricing is set: the latter is a control signal naming the
// activity whose price must be sourced from the knowledge collaborator.
type PriceResult struct {
	PriceAED             *decimal.Decimal `json:"price_aed,omitempty"`
	NeedsExternalPricing string           `json:"needs_external_pricing,omitempty"`
}
