package space

import (
	"math/rand"

	"go-ml.dev/pkg/zorros"
)

/*
Sample draws one assignment uniformly from the space using the given
generator. Declarations are materialized left to right so activation
conditions see the values drawn before them; inactive parameters are
materialized as sentinels.
*/
func (s *Space) Sample(rng *rand.Rand) Assignment {
	a := make(Assignment, len(s.params))
	for _, p := range s.params {
		if !s.active(a, p) {
			a[p.Name] = Inactive()
			continue
		}
		switch p.Kind {
		case Integer:
			a[p.Name] = Number(p.Min + float64(rng.Intn(int(p.Max-p.Min)+1)))
		case Real:
			a[p.Name] = Number(p.Min + rng.Float64()*(p.Max-p.Min))
		case Categorical:
			a[p.Name] = Level(p.Levels[rng.Intn(len(p.Levels))])
		}
	}
	return a
}

/*
Grid generates the cross product of per-parameter value sets in
declaration order: up to resolution evenly spaced points per numeric
parameter and every level of a categorical one. A parameter whose
condition is unmet contributes a single inactive branch, so rows keep a
uniform shape and no identical rows are produced.
*/
func (s *Space) Grid(resolution int) ([]Assignment, error) {
	if resolution < 2 {
		for _, p := range s.params {
			if p.Kind != Categorical {
				return nil, zorros.Errorf("grid resolution %d is below 2 with numeric parameter `%v` present", resolution, p.Name)
			}
		}
	}
	rows := []Assignment{{}}
	for _, p := range s.params {
		var next []Assignment
		for _, row := range rows {
			if !s.active(row, p) {
				r := cloneAssignment(row)
				r[p.Name] = Inactive()
				next = append(next, r)
				continue
			}
			for _, v := range gridValues(p, resolution) {
				r := cloneAssignment(row)
				r[p.Name] = v
				next = append(next, r)
			}
		}
		rows = next
	}
	// conditions branch before expansion, but keep the rows unique anyway
	seen := map[string]bool{}
	uniq := rows[:0]
	for _, r := range rows {
		k := s.Key(r)
		if !seen[k] {
			seen[k] = true
			uniq = append(uniq, r)
		}
	}
	return uniq, nil
}

func gridValues(p Param, resolution int) []Value {
	switch p.Kind {
	case Categorical:
		vs := make([]Value, len(p.Levels))
		for i, l := range p.Levels {
			vs[i] = Level(l)
		}
		return vs
	case Integer:
		span := int(p.Max-p.Min) + 1
		if span <= resolution {
			vs := make([]Value, span)
			for i := range vs {
				vs[i] = Number(p.Min + float64(i))
			}
			return vs
		}
		vs := make([]Value, 0, resolution)
		seen := map[int]bool{}
		for i := 0; i < resolution; i++ {
			v := int(p.Min + float64(i)*(p.Max-p.Min)/float64(resolution-1))
			if !seen[v] {
				seen[v] = true
				vs = append(vs, Number(float64(v)))
			}
		}
		return vs
	default:
		vs := make([]Value, resolution)
		for i := range vs {
			vs[i] = Number(p.Min + float64(i)*(p.Max-p.Min)/float64(resolution-1))
		}
		return vs
	}
}

func cloneAssignment(a Assignment) Assignment {
	r := make(Assignment, len(a)+1)
	for k, v := range a {
		r[k] = v
	}
	return r
}
