package booking

import (
	"context"
	"sync"
	"time"

	"jetset/models"
)

// BookingService is the tool surface the conversational layer calls for one
// domain. Per-user operations are strictly serialized: two concurrent calls
// for the same user never interleave merges.
type BookingService interface {
	GetOrCreate(ctx context.Context, userID string) (*models.BookingDraft, error)
	Update(ctx context.Context, userID string, patch models.BookingPatch) (*models.BookingDraft, error)
	ComputePrice(ctx context.Context, userID string) (*models.PriceResult, error)
	Confirm(ctx context.Context, userID string) (*models.Confirmation, error)
	HasActiveBooking(ctx context.Context, userID string) (bool, error)
}

// DefaultBookingService implements BookingService for a single domain.
type DefaultBookingService struct {
	Domain DomainConfig
	Store  DraftStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewBookingService(domain DomainConfig, store DraftStore) *DefaultBookingService {
	return &DefaultBookingService{
		Domain: domain,
		Store:  store,
		locks:  make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing operations for one user.
func (s *DefaultBookingService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// GetOrCreate returns the user's draft, creating an empty collecting draft on
// first access.
func (s *DefaultBookingService) GetOrCreate(ctx context.Context, userID string) (*models.BookingDraft, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()
	return s.getOrCreateLocked(ctx, userID)
}

func (s *DefaultBookingService) getOrCreateLocked(ctx context.Context, userID string) (*models.BookingDraft, error) {
	draft, err := s.Store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		return draft, nil
	}
	now := time.Now()
	draft = &models.BookingDraft{
		Domain:    s.Domain.Name,
		UserID:    userID,
		Status:    models.StatusCollecting,
		Items:     []models.LineItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !s.Domain.PickupOffered {
		// Pickup is not configurable in this domain.
		pickup := false
		draft.PickupRequired = &pickup
	}
	if err := s.Store.Put(ctx, userID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// HasActiveBooking reports whether the user has an in-progress draft.
func (s *DefaultBookingService) HasActiveBooking(ctx context.Context, userID string) (bool, error) {
	draft, err := s.Store.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return draft != nil && draft.Active(), nil
}
