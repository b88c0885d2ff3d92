package service

import (
	"sync"
	"time"

	"github.com/noah-isme/itinerary-planner-api/internal/scheduler"
)

// planProposal is a found schedule kept in memory until it is saved or expires.
type planProposal struct {
	ProposalID string
	OwnerID    string
	CatalogID  string
	Range      scheduler.DateRange
	Options    scheduler.Options
	Days       []scheduler.Day
	Stats      scheduler.Stats
	CreatedAt  time.Time
}

type proposalStore struct {
	ttl   time.Duration
	now   func() time.Time
	mu    sync.RWMutex
	items map[string]planProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	return &proposalStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]planProposal),
	}
}

func (s *proposalStore) Save(proposal planProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.ProposalID] = proposal
}

func (s *proposalStore) Get(id string) (planProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return planProposal{}, false
	}
	if s.now().Sub(proposal.CreatedAt) > s.ttl {
		s.Delete(id)
		return planProposal{}, false
	}
	return proposal, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// Purge drops expired proposals and returns how many were removed.
func (s *proposalStore) Purge() int {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, proposal := range s.items {
		if proposal.CreatedAt.Before(cutoff) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

func (s *proposalStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
