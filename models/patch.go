package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexInt unmarshals from a JSON number or a numeric string. Values that
// cannot be coerced are kept but marked invalid, so a merge can skip them
// instead of failing the whole update.
type FlexInt struct {
	Value int
	Valid bool
}

func NewFlexInt(v int) *FlexInt {
	return &FlexInt{Value: v, Valid: true}
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	if s == "" || s == "null" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		f.Value = n
		f.Valid = true
		return nil
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		f.Value = int(fl)
		f.Valid = true
	}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// FlexBool accepts JSON booleans plus the conversational spellings
// yes/y/true/1 and no/n/false/0, case-insensitive.
type FlexBool struct {
	Value bool
	Valid bool
}

func NewFlexBool(v bool) *FlexBool {
	return &FlexBool{Value: v, Valid: true}
}

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(strings.TrimSpace(strings.Trim(string(bytes.TrimSpace(data)), `"`)))
	switch s {
	case "yes", "y", "true", "1":
		f.Value = true
		f.Valid = true
	case "no", "n", "false", "0":
		f.Value = false
		f.Valid = true
	}
	return nil
}

func (f FlexBool) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// FlexDecimal unmarshals a price from a JSON number or numeric string.
type FlexDecimal struct {
	Value decimal.Decimal
	Valid bool
}

func NewFlexDecimal(v decimal.Decimal) *FlexDecimal {
	return &FlexDecimal{Value: v, Valid: true}
}

func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	if s == "" || s == "null" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	f.Value = d
	f.Valid = true
	return nil
}

func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// ItemPatch is the addItem payload: a sparse line item.
type ItemPatch struct {
	Activity     *string  `json:"activity,omitempty"`
	Package      *string  `json:"package,omitempty"`
	VehicleModel *string  `json:"vehicle_model,omitempty"`
	Quantity     *FlexInt `json:"quantity,omitempty"`
	DurationMin  *FlexInt `json:"duration_min,omitempty"`
	DateTimeISO  *string  `json:"date_time_iso,omitempty"`
}

// BookingPatch is a sparse update to a booking draft. Nil fields are
// untouched; non-nil fields overwrite after normalization.
type BookingPatch struct {
	CustomerName   *string      `json:"customer_name,omitempty"`
	Activity       *string      `json:"activity,omitempty"`
	Package        *string      `json:"package,omitempty"`
	VehicleModel   *string      `json:"vehicle_model,omitempty"`
	Quantity       *FlexInt     `json:"quantity,omitempty"`
	DurationMin    *FlexInt     `json:"duration_min,omitempty"`
	DateTimeISO    *string      `json:"date_time_iso,omitempty"`
	PickupRequired *FlexBool    `json:"pickup_required,omitempty"`
	PaymentMethod  *string      `json:"payment_method,omitempty"`
	PriceAED       *FlexDecimal `json:"price_aed,omitempty"`
	AddItem        *ItemPatch   `json:"add_item,omitempty"`
	Notes          []string     `json:"notes,omitempty"`
}

// TouchesPrice reports whether the patch changes a price-affecting field
// other than the payment method, which forces the draft's computed price to
// be cleared. Payment-method changes are handled separately because they can
// be recomputed from the cached base.
func (p *BookingPatch) TouchesPrice() bool {
	if p.Quantity != nil && p.Quantity.Valid {
		return true
	}
	if p.DurationMin != nil && p.DurationMin.Valid {
		return true
	}
	if p.PickupRequired != nil && p.PickupRequired.Valid {
		return true
	}
	return p.AddItem != nil
}

// TouchesTime reports whether the patch sets a start time or duration,
// which triggers the fail-fast window check.
func (p *BookingPatch) TouchesTime() bool {
	if p.DateTimeISO != nil {
		return true
	}
	if p.DurationMin != nil && p.DurationMin.Valid {
		return true
	}
	if p.AddItem == nil {
		return false
	}
	return p.AddItem.DateTimeISO != nil || (p.AddItem.DurationMin != nil && p.AddItem.DurationMin.Valid)
}
