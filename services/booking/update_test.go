package booking

import (
	"context"
	"testing"

	"jetset/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newDesertService() *DefaultBookingService {
	return NewBookingService(DesertDomain("Asia/Dubai"), NewMemoryDraftStore())
}

func newWaterService() *DefaultBookingService {
	return NewBookingService(WaterDomain("Asia/Dubai"), NewMemoryDraftStore())
}

func strPtr(s string) *string { return &s }

func TestUpdateCreatesDraftAndNormalizes(t *testing.T) {
	svc := newDesertService()
	ctx := context.Background()

	draft, err := svc.Update(ctx, "u1", models.BookingPatch{
		CustomerName:  strPtr("  Omar  "),
		Activity:      strPtr("Dune Buggy"),
		PaymentMethod: strPtr(" CASH "),
		Quantity:      models.NewFlexInt(2),
	})
	require.NoError(t, err)
	require.Equal(t, "Omar", draft.CustomerName)
	require.Equal(t, "cash", draft.PaymentMethod)
	require.Len(t, draft.Items, 1)
	require.Equal(t, "buggy", draft.Items[0].Activity)
	require.Equal(t, 2, *draft.Items[0].Quantity)
	require.Equal(t, models.StatusCollecting, draft.Status)
}

func TestUpdateBareFollowupLandsOnLatestItem(t *testing.T) {
	svc := newDesertService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", models.BookingPatch{Activity: strPtr("buggy")})
	require.NoError(t, err)

	// A bare "2" in conversation arrives as a lone quantity patch.
	draft, err := svc.Update(ctx, "u1", models.BookingPatch{Quantity: models.NewFlexInt(2)})
	require.NoError(t, err)
	require.Len(t, draft.Items, 1)
	require.Equal(t, "buggy", draft.Items[0].Activity)
	require.Equal(t, 2, *draft.Items[0].Quantity)
}

func TestUpdateAddItemAppendsAndSharesDefaultTime(t *testing.T) {
	svc := newWaterService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", models.BookingPatch{
		Activity:    strPtr("jetski"),
		Package:     strPtr("Burj Al Arab"),
		DateTimeISO: strPtr("2030-05-10T10:00"),
		DurationMin: models.NewFlexInt(30),
		Quantity:    models.NewFlexInt(1),
	})
	require.NoError(t, err)

	draft, err := svc.Update(ctx, "u1", models.BookingPatch{
		AddItem: &models.ItemPatch{
			Activity: strPtr("Flyboard"),
			Quantity: models.NewFlexInt(2),
		},
	})
	require.NoError(t, err)
	require.Len(t, draft.Items, 2)
	require.Equal(t, "flyboard", draft.Items[1].Activity)
	// The second item inherits the draft-level default start time.
	require.Equal(t, "2030-05-10T10:00", draft.ResolveDateTime(1))
}

func TestUpdateRejectsOutOfHoursWithoutPartialMerge(t *testing.T) {
	svc := newDesertService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", models.BookingPatch{
		Activity:    strPtr("buggy"),
		DateTimeISO: strPtr("2030-05-10T10:00"),
		DurationMin: models.NewFlexInt(60),
	})
	require.NoError(t, err)

	draft, err := svc.Update(ctx, "u1", models.BookingPatch{
		DateTimeISO: strPtr("2030-05-10T18:50"),
	})
	require.Error(t, err)
	require.Equal(t, CodeOutOfHours, ErrorCode(err))
	// The returned draft and the stored draft both keep the old time.
	require.Equal(t, "2030-05-10T10:00", draft.DateTimeISO)

	stored, err := svc.GetOrCreate(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "2030-05-10T10:00", stored.DateTimeISO)
}

func TestUpdatePropagatedDefaultTimeIsCheckedForAllItems(t *testing.T) {
	svc := newWaterService()
	ctx := context.Background()

	// A date-less flyboard item is fine on its own.
	_, err := svc.Update(ctx, "u1", models.BookingPatch{
		Activity:    strPtr("flyboard"),
		Quantity:    models.NewFlexInt(1),
		DurationMin: models.NewFlexInt(60),
	})
	require.NoError(t, err)

	// The new item's start becomes the draft default, which the flyboard item
	// falls back to; 18:50 plus its 60 minutes runs past closing.
	draft, err := svc.Update(ctx, "u1", models.BookingPatch{
		AddItem: &models.ItemPatch{
			Activity:    strPtr("jetcar"),
			DateTimeISO: strPtr("2030-05-10T18:50"),
		},
	})
	require.Error(t, err)
	require.Equal(t, CodeOutOfHours, ErrorCode(err))
	require.Len(t, draft.Items, 1)
	require.Empty(t, draft.DateTimeISO)
}

func TestUpdateInvalidatesPriceOnQuantityChange(t *testing.T) {
	svc := newWaterService()
	ctx := context.Background()

	draft, err := svc.Update(ctx, "u1", models.BookingPatch{
		Activity: strPtr("flyboard"),
		Quantity: models.NewFlexInt(1),
		PriceAED: models.NewFlexDecimal(decimal.RequireFromString("600")),
	})
	require.NoError(t, err)
	require.NotNil(t, draft.PriceAED)

	draft, err = svc.Update(ctx, "u1", models.BookingPatch{Quantity: models.NewFlexInt(3)})
	require.NoError(t, err)
	require.Nil(t, draft.PriceAED)
}

func TestUpdatePaymentSwitchRecomputesFromCachedBase(t *testing.T) {
	svc := newWaterService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", models.BookingPatch{
		Activity:      strPtr("flyboard"),
		PaymentMethod: strPtr("cash"),
		PriceAED:      models.NewFlexDecimal(decimal.RequireFromString("1000")),
	})
	require.NoError(t, err)

	draft, err := svc.Update(ctx, "u1", models.BookingPatch{PaymentMethod: strPtr("card")})
	require.NoError(t, err)
	require.NotNil(t, draft.PriceAED)
	require.True(t, draft.PriceAED.Equal(decimal.RequireFromString("1050")),
		"card total = base x 1.05, got %s", draft.PriceAED)

	draft, err = svc.Update(ctx, "u1", models.BookingPatch{PaymentMethod: strPtr("cash")})
	require.NoError(t, err)
	require.True(t, draft.PriceAED.Equal(decimal.RequireFromString("1000")),
		"switching back restores the base, got %s", draft.PriceAED)
}

func TestUpdateQuantityChangeAlsoDropsCachedBase(t *testing.T) {
	svc := newWaterService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", models.BookingPatch{
		Activity:      strPtr("jetcar"),
		Quantity:      models.NewFlexInt(1),
		PaymentMethod: strPtr("cash"),
		PriceAED:      models.NewFlexDecimal(decimal.RequireFromString("1000")),
	})
	require.NoError(t, err)

	draft, err := svc.Update(ctx, "u1", models.BookingPatch{Quantity: models.NewFlexInt(3)})
	require.NoError(t, err)
	require.Nil(t, draft.PriceAED)
	require.Nil(t, draft.PriceAEDBase, "base was quoted for quantity 1")

	// A payment switch after the quantity change must not bring back a total
	// derived from the old quantity.
	draft, err = svc.Update(ctx, "u1", models.BookingPatch{PaymentMethod: strPtr("card")})
	require.NoError(t, err)
	require.Nil(t, draft.PriceAED)
	require.Nil(t, draft.PriceAEDBase)
}

func TestUpdateExternalPriceUnderCardRetainsBase(t *testing.T) {
	svc := newWaterService()
	ctx := context.Background()

	draft, err := svc.Update(ctx, "u1", models.BookingPatch{
		Activity:      strPtr("jetcar"),
		PaymentMethod: strPtr("card"),
		PriceAED:      models.NewFlexDecimal(decimal.RequireFromString("1050")),
	})
	require.NoError(t, err)
	require.True(t, draft.PriceAED.Equal(decimal.RequireFromString("1050")))
	require.True(t, draft.PriceAEDBase.Equal(decimal.RequireFromString("1000")))
}

func TestUpdatePickupIgnoredWhereNotOffered(t *testing.T) {
	svc := newWaterService()
	ctx := context.Background()

	draft, err := svc.Update(ctx, "u1", models.BookingPatch{
		PickupRequired: models.NewFlexBool(true),
	})
	require.NoError(t, err)
	require.NotNil(t, draft.PickupRequired)
	require.False(t, *draft.PickupRequired)
}

func TestUpdateReadinessTransition(t *testing.T) {
	svc := newDesertService()
	ctx := context.Background()

	draft, err := svc.Update(ctx, "u1", models.BookingPatch{
		Activity:     strPtr("buggy"),
		VehicleModel: strPtr("2-seat Polaris"),
		Quantity:     models.NewFlexInt(1),
		DurationMin:  models.NewFlexInt(60),
		DateTimeISO:  strPtr("2030-05-10T10:00"),
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusCollecting, draft.Status)

	draft, err = svc.Update(ctx, "u1", models.BookingPatch{
		CustomerName:   strPtr("Omar"),
		PaymentMethod:  strPtr("cash"),
		PickupRequired: models.NewFlexBool(false),
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusReadyToConfirm, draft.Status)
}

func TestUpdateNotesAccumulate(t *testing.T) {
	svc := newDesertService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "u1", models.BookingPatch{Notes: []string{"birthday surprise"}})
	require.NoError(t, err)
	draft, err := svc.Update(ctx, "u1", models.BookingPatch{Notes: []string{"prefers morning"}})
	require.NoError(t, err)
	require.Equal(t, []string{"birthday surprise", "prefers morning"}, draft.Notes)
}
