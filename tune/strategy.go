/*
Package tune composes a learner family, a search space, a resampling
strategy, a measure, a budget and a search strategy into an auto-tuning
learner with the same train/predict surface as a plain one.
*/
package tune

import (
	"math/rand"

	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/tune/space"
)

/*
Strategy proposes up to budget candidate assignments from a space.
Proposals are deterministic for a deterministic-seeded strategy, which
also fixes the tie-break order of the tuner.
*/
type Strategy interface {
	Propose(s *space.Space, budget int) ([]space.Assignment, error)
}

/*
RandomSearch samples the space uniformly with its own seeded generator
*/
type RandomSearch struct {
	Seed int64
}

func (rs RandomSearch) Propose(s *space.Space, budget int) ([]space.Assignment, error) {
	if budget < 1 {
		return nil, zorros.Errorf("search budget %d is below 1", budget)
	}
	rng := rand.New(rand.NewSource(rs.Seed))
	r := make([]space.Assignment, budget)
	for i := range r {
		r[i] = s.Sample(rng)
	}
	return r, nil
}

/*
GridSearch proposes the full grid of the space at the given resolution,
truncated to the budget
*/
type GridSearch struct {
	Resolution int
}

func (gs GridSearch) Propose(s *space.Space, budget int) ([]space.Assignment, error) {
	if budget < 1 {
		return nil, zorros.Errorf("search budget %d is below 1", budget)
	}
	g, err := s.Grid(gs.Resolution)
	if err != nil {
		return nil, err
	}
	if len(g) > budget {
		g = g[:budget]
	}
	return g, nil
}
