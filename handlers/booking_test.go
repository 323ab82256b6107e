package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jetset/models"
	"jetset/services/booking"
)

func setupBookingRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	DesertService = booking.NewBookingService(booking.DesertDomain("Asia/Dubai"), booking.NewMemoryDraftStore())
	WaterService = booking.NewBookingService(booking.WaterDomain("Asia/Dubai"), booking.NewMemoryDraftStore())
	SummaryStore = nil
	TaskClient = nil

	r := gin.New()
	api := r.Group("/api/bookings/:domain/:userID")
	api.GET("", GetBookingHandler)
	api.PATCH("", UpdateBookingHandler)
	api.POST("/price", ComputePriceHandler)
	api.POST("/confirm", ConfirmBookingHandler)
	api.GET("/active", HasActiveBookingHandler)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGetBookingCreatesDraft(t *testing.T) {
	r := setupBookingRouter(t)

	resp := doJSON(t, r, http.MethodGet, "/api/bookings/desert/u1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body)
	}
	var draft models.BookingDraft
	if err := json.NewDecoder(resp.Body).Decode(&draft); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if draft.Domain != "desert" || draft.Status != models.StatusCollecting {
		t.Fatalf("unexpected draft: %+v", draft)
	}
}

func TestUnknownDomainIs404(t *testing.T) {
	r := setupBookingRouter(t)

	resp := doJSON(t, r, http.MethodGet, "/api/bookings/space/u1", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestUpdateValidationFailureIs422(t *testing.T) {
	r := setupBookingRouter(t)

	body := `{"activity":"buggy","date_time_iso":"2030-05-10T20:00","duration_min":30}`
	resp := doJSON(t, r, http.MethodPatch, "/api/bookings/desert/u1", body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d: %s", resp.Code, resp.Body)
	}
}

func TestConfirmBeforeReadyIs409(t *testing.T) {
	r := setupBookingRouter(t)

	resp := doJSON(t, r, http.MethodPost, "/api/bookings/water/u1/confirm", "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d: %s", resp.Code, resp.Body)
	}
}

func TestBookingFlowOverHTTP(t *testing.T) {
	r := setupBookingRouter(t)

	patch := `{
		"activity": "dune buggy",
		"vehicle_model": "2-seat",
		"quantity": "2",
		"duration_min": 60,
		"date_time_iso": "2030-05-10T10:00",
		"customer_name": "Omar",
		"payment_method": "cash",
		"pickup_required": "no"
	}`
	resp := doJSON(t, r, http.MethodPatch, "/api/bookings/desert/u1", patch)
	if resp.Code != http.StatusOK {
		t.Fatalf("update: expected 200 got %d: %s", resp.Code, resp.Body)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/bookings/desert/u1/price", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("price: expected 200 got %d: %s", resp.Code, resp.Body)
	}
	var price models.PriceResult
	if err := json.NewDecoder(resp.Body).Decode(&price); err != nil {
		t.Fatalf("decode price: %v", err)
	}
	if price.PriceAED == nil || price.PriceAED.String() != "1500" {
		t.Fatalf("expected 1500 AED, got %+v", price)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/bookings/desert/u1/confirm", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200 got %d: %s", resp.Code, resp.Body)
	}
	var conf models.Confirmation
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		t.Fatalf("decode confirmation: %v", err)
	}
	if !conf.Confirmed || conf.BookingRef == "" {
		t.Fatalf("unexpected confirmation: %+v", conf)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/bookings/desert/u1/active", "")
	var active struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&active); err != nil {
		t.Fatalf("decode active: %v", err)
	}
	if active.Active {
		t.Fatal("confirmed booking should not count as active")
	}
}
