package router

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type stubChecker struct {
	active bool
	err    error
}

func (s *stubChecker) HasActiveBooking(ctx context.Context, userID string) (bool, error) {
	return s.active, s.err
}

type stubClassifier struct {
	answer   string
	err      error
	lastSeed string
}

func (s *stubClassifier) Classify(ctx context.Context, lastDomain, text string) (string, error) {
	s.lastSeed = lastDomain
	return s.answer, s.err
}

func newTestRouter(desert, water *stubChecker, classifier Classifier) *DefaultDomainRouter {
	return &DefaultDomainRouter{
		Desert:     desert,
		Water:      water,
		State:      NewMemoryStateStore(),
		Classifier: classifier,
		Logger:     zap.NewNop(),
	}
}

func route(t *testing.T, r *DefaultDomainRouter, userID, text string) string {
	t.Helper()
	got, err := r.Route(context.Background(), userID, text)
	if err != nil {
		t.Fatalf("route %q: %v", text, err)
	}
	return got
}

func TestRouteKeywords(t *testing.T) {
	r := newTestRouter(&stubChecker{}, &stubChecker{}, &stubClassifier{answer: "general"})

	cases := map[string]string{
		"I want a dune buggy tour":              RouteDesert,
		"do you have jetski near Burj Khalifa":  RouteWater,
		"quad bike in the desert and a jet ski": RouteClarify,
		"flyboard please":                       RouteWater,
	}
	for text, want := range cases {
		if got := route(t, r, "u1", text); got != want {
			t.Fatalf("%q: expected %s, got %s", text, want, got)
		}
	}
}

func TestRouteSingleActiveBookingPins(t *testing.T) {
	r := newTestRouter(&stubChecker{}, &stubChecker{active: true}, &stubClassifier{answer: "general"})

	if got := route(t, r, "u1", "can I change my booking to 5 people please"); got != RouteWater {
		t.Fatalf("active water draft should pin the turn, got %s", got)
	}
}

func TestRouteLastDomainStickiness(t *testing.T) {
	classifier := &stubClassifier{answer: "general"}
	r := newTestRouter(&stubChecker{}, &stubChecker{}, classifier)

	if got := route(t, r, "u1", "dune buggy for two"); got != RouteDesert {
		t.Fatalf("expected desert, got %s", got)
	}
	// Short follow-ups and bare times stay with the previous domain.
	for _, text := range []string{"yes", "tomorrow at 3pm", "two people"} {
		if got := route(t, r, "u1", text); got != RouteDesert {
			t.Fatalf("%q should stick to desert, got %s", text, got)
		}
	}
}

func TestRouteClassifierFallback(t *testing.T) {
	classifier := &stubClassifier{answer: "  Water \n"}
	r := newTestRouter(&stubChecker{}, &stubChecker{}, classifier)

	text := "something fun for the whole family this weekend in the marina area maybe"
	if got := route(t, r, "u1", text); got != RouteWater {
		t.Fatalf("expected classifier answer to win, got %s", got)
	}
}

func TestRouteClassifierErrorFallsBackToGeneral(t *testing.T) {
	classifier := &stubClassifier{err: errors.New("model unavailable")}
	r := newTestRouter(&stubChecker{}, &stubChecker{}, classifier)

	text := "looking for some kind of outdoor adventure activity for my family visit"
	if got := route(t, r, "u1", text); got != RouteGeneral {
		t.Fatalf("expected general on classifier failure, got %s", got)
	}
}

func TestRouteNoClassifierDefaultsToGeneral(t *testing.T) {
	r := newTestRouter(&stubChecker{}, &stubChecker{}, nil)

	text := "tell me about interesting things to do around the city next weekend"
	if got := route(t, r, "u1", text); got != RouteGeneral {
		t.Fatalf("expected general without a classifier, got %s", got)
	}
}
