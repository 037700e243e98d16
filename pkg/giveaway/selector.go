package giveaway

import (
	"math/rand"
	"sort"
	"time"

	"github.com/sfirke/meutch/domain"
	"github.com/sfirke/meutch/entities"
)

type (
	// Selector picks one candidate out of a pool of active interests.
	// It reads the pool and decides; it never mutates anything.
	Selector struct {
		rng *rand.Rand
	}

	SelectionInput struct {
		Pool   []*entities.GiveawayInterest
		Method string
		// UserID names the candidate for the manual method.
		UserID string
		// ExcludedUserID removes a user from the pool before any method
		// runs. Set during reassignment to the just-deselected recipient.
		ExcludedUserID string
	}
)

// NewSelector returns a selector using the given random source. Pass nil
// outside of tests to get a time-seeded source.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// Pick returns exactly one candidate from the pool or an error.
func (s *Selector) Pick(in SelectionInput) (*entities.GiveawayInterest, error) {
	pool := orderPool(in.Pool)

	if in.ExcludedUserID != "" {
		filtered := make([]*entities.GiveawayInterest, 0, len(pool))
		for _, interest := range pool {
			if interest.UserID.String() != in.ExcludedUserID {
				filtered = append(filtered, interest)
			}
		}
		pool = filtered
	}

	switch in.Method {
	case domain.SelectionMethodManual:
		for _, interest := range pool {
			if interest.UserID.String() == in.UserID {
				return interest, nil
			}
		}
		return nil, domain.ErrCandidateNotEligible
	case domain.SelectionMethodFirst, domain.SelectionMethodNext:
		if len(pool) == 0 {
			return nil, domain.ErrEmptyPool
		}
		return pool[0], nil
	case domain.SelectionMethodRandom:
		if len(pool) == 0 {
			return nil, domain.ErrEmptyPool
		}
		return pool[s.rng.Intn(len(pool))], nil
	default:
		return nil, domain.ErrCandidateNotEligible
	}
}

// orderPool sorts by created_at ascending. Rows created within the same
// clock tick are ordered by id so the outcome never depends on query-plan
// order.
func orderPool(pool []*entities.GiveawayInterest) []*entities.GiveawayInterest {
	ordered := make([]*entities.GiveawayInterest, len(pool))
	copy(ordered, pool)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID.String() < ordered[j].ID.String()
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})
	return ordered
}
