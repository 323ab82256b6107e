package router

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Resolved domains.
const (
	RouteDesert  = "desert"
	RouteWater   = "water"
	RouteGeneral = "general"
	RouteClarify = "clarify"
)

var (
	desertKeywords = regexp.MustCompile(`(?i)\b(desert|buggy|quad|safari|dune|camp)\b`)
	waterKeywords  = regexp.MustCompile(`(?i)\b(jetski|jet\s*ski|flyboard|jet\s*car|water|water\s*activity|water\s*sport|watersport|burj|atlantis|jbr|royal\s+atlantis)\b`)
	followupRe     = regexp.MustCompile(`(?i)^(yes|yeah|yep|ok|okay|sure|confirm|book|book it|proceed|go ahead|no|not now)\b`)
	timeOrDateRe   = regexp.MustCompile(`(?i)\b(\d{1,2}(:\d{2})?\s*(am|pm)|tomorrow|today|tonight|next\s+\w+|day after tomorrow|\d{1,2}[-/]\d{1,2}[-/]\d{2,4})\b`)
	wordRe         = regexp.MustCompile(`[a-zA-Z0-9']+`)
	routeAnswerRe  = regexp.MustCompile(`(?i)\b(desert|water|general|clarify)\b`)
)

// ActiveChecker reports whether a user has an in-progress draft in a domain.
type ActiveChecker interface {
	HasActiveBooking(ctx context.Context, userID string) (bool, error)
}

// Classifier is the external classification fallback, seeded with the
// previous domain.
type Classifier interface {
	Classify(ctx context.Context, lastDomain, text string) (string, error)
}

// DomainRouter decides which domain continues to own a conversation.
type DomainRouter interface {
	Route(ctx context.Context, userID, text string) (string, error)
}

// DefaultDomainRouter layers keyword detection, active-booking stickiness,
// last-domain stickiness, and a classification fallback, in that order.
type DefaultDomainRouter struct {
	Desert     ActiveChecker
	Water      ActiveChecker
	State      StateStore
	Classifier Classifier
	Logger     *zap.Logger
}

func (r *DefaultDomainRouter) Route(ctx context.Context, userID, text string) (string, error) {
	route := r.resolve(ctx, userID, text)
	if route == RouteDesert || route == RouteWater {
		if err := r.State.SetLastDomain(ctx, userID, route); err != nil {
			r.Logger.Warn("failed to remember last domain", zap.String("userID", userID), zap.Error(err))
		}
	}
	return route, nil
}

func (r *DefaultDomainRouter) resolve(ctx context.Context, userID, text string) string {
	waterHit := waterKeywords.MatchString(text)
	desertHit := desertKeywords.MatchString(text)
	if waterHit && desertHit {
		return RouteClarify
	}
	if waterHit {
		return RouteWater
	}
	if desertHit {
		return RouteDesert
	}

	// A single in-progress booking pins the conversation to its domain.
	waterActive := r.hasActive(ctx, r.Water, userID)
	desertActive := r.hasActive(ctx, r.Desert, userID)
	if waterActive != desertActive {
		if waterActive {
			return RouteWater
		}
		return RouteDesert
	}

	last, err := r.State.LastDomain(ctx, userID)
	if err != nil {
		r.Logger.Warn("failed to load last domain", zap.String("userID", userID), zap.Error(err))
		last = RouteGeneral
	}
	if last == RouteDesert || last == RouteWater {
		if followupRe.MatchString(text) || timeOrDateRe.MatchString(text) || isShortFollowup(text) {
			return last
		}
	}

	if r.Classifier == nil {
		return RouteGeneral
	}
	answer, err := r.Classifier.Classify(ctx, last, text)
	if err != nil {
		r.Logger.Warn("route classification failed", zap.String("userID", userID), zap.Error(err))
		return RouteGeneral
	}
	if m := routeAnswerRe.FindString(answer); m != "" {
		return strings.ToLower(m)
	}
	return RouteGeneral
}

func (r *DefaultDomainRouter) hasActive(ctx context.Context, svc ActiveChecker, userID string) bool {
	active, err := svc.HasActiveBooking(ctx, userID)
	if err != nil {
		r.Logger.Warn("active booking check failed", zap.String("userID", userID), zap.Error(err))
		return false
	}
	return active
}

// isShortFollowup treats a message of at most four words as a continuation
// of the previous turn.
func isShortFollowup(text string) bool {
	words := wordRe.FindAllString(text, -1)
	return len(words) > 0 && len(words) <= 4
}
