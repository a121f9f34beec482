// Package memory implements the dev server storage: per-user maps
// guarded by a single mutex. Data lives as long as the process does.
package memory

import (
	"sync"

	"golang.org/x/exp/slog"

	"homekeeper/internal/domain/house"
)

type Store struct {
	log *slog.Logger

	mu       sync.RWMutex
	houses   map[string]map[string]house.House
	payments map[string]map[string]house.Payment
	profiles map[string]house.Profile
}

func NewStore(log *slog.Logger) *Store {
	return &Store{
		log:      log,
		houses:   make(map[string]map[string]house.House),
		payments: make(map[string]map[string]house.Payment),
		profiles: make(map[string]house.Profile),
	}
}

// UpsertHouse creates or replaces a house. Replaying the same upsert
// is a no-op, so retried client mutations stay safe.
func (s *Store) UpsertHouse(userID string, h house.House) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.houses[userID] == nil {
		s.houses[userID] = make(map[string]house.House)
	}
	s.houses[userID][h.ID] = h
}

// DeleteHouse removes a house and all payments referencing it.
// Deleting a missing house is not an error: queued deletes may arrive
// after the house is already gone.
func (s *Store) DeleteHouse(userID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.houses[userID], id)
	for pid, p := range s.payments[userID] {
		if p.HouseID == id {
			delete(s.payments[userID], pid)
		}
	}
}

func (s *Store) Houses(userID string) []house.House {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]house.House, 0, len(s.houses[userID]))
	for _, h := range s.houses[userID] {
		out = append(out, h)
	}
	return out
}

// UpsertPayment creates or replaces a payment. The referenced house
// must exist.
func (s *Store) UpsertPayment(userID string, p house.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.houses[userID][p.HouseID]; !ok {
		return house.ErrUnknownHouse
	}

	if s.payments[userID] == nil {
		s.payments[userID] = make(map[string]house.Payment)
	}
	s.payments[userID][p.ID] = p
	return nil
}

// DeletePayment removes a payment by ID, tolerating replays.
func (s *Store) DeletePayment(userID, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.payments[userID], id)
}

func (s *Store) Payments(userID string) []house.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]house.Payment, 0, len(s.payments[userID]))
	for _, p := range s.payments[userID] {
		out = append(out, p)
	}
	return out
}

func (s *Store) SaveProfile(userID string, p house.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[userID] = p
}

func (s *Store) Profile(userID string) house.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.profiles[userID]
}
