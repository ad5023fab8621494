/*
Package space declares hyper-parameter search spaces: ordered sets of
typed parameter declarations with bounds, optional value transforms and
optional activation conditions referencing earlier declarations.
*/
package space

import (
	"math"

	"go-ml.dev/pkg/zorros"
)

/*
Kind is a parameter value type
*/
type Kind int

const (
	Integer Kind = iota
	Real
	Categorical
)

/*
Condition activates a parameter only when an earlier categorical
parameter takes one of the given levels. Conditions are evaluated
left to right in declaration order; a parameter with an unmet
condition materializes as an inactive value, never as a missing key.
*/
type Condition struct {
	Key   string
	AnyOf []string
}

/*
Param is a single tunable parameter declaration
*/
type Param struct {
	Name      string
	Kind      Kind
	Min, Max  float64               // numeric bounds, inclusive
	Levels    []string              // categorical levels
	Transform func(float64) float64 // optional, applied to numeric values
	When      *Condition            // optional activation condition
}

/*
Space is an ordered collection of parameter declarations with unique names
*/
type Space struct {
	params []Param
	index  map[string]int
}

func New() *Space {
	return &Space{index: map[string]int{}}
}

// Len returns the declaration count.
func (s *Space) Len() int { return len(s.params) }

// Params returns a copy of the declarations in order.
func (s *Space) Params() []Param {
	return append([]Param(nil), s.params...)
}

/*
Add appends a declaration, validating it against the space built so far.
Malformed bounds, duplicate names and conditions referencing unknown,
later-declared or non-categorical parameters all fail here, at
construction time.
*/
func (s *Space) Add(p Param) error {
	if p.Name == "" {
		return zorros.Errorf("parameter has no name")
	}
	if _, ok := s.index[p.Name]; ok {
		return zorros.Errorf("parameter `%v` is already declared", p.Name)
	}
	switch p.Kind {
	case Integer, Real:
		if p.Min > p.Max {
			return zorros.Errorf("parameter `%v`: lower bound %v is above upper bound %v", p.Name, p.Min, p.Max)
		}
		if p.Kind == Integer && (p.Min != math.Trunc(p.Min) || p.Max != math.Trunc(p.Max)) {
			return zorros.Errorf("parameter `%v`: integer bounds must be whole numbers", p.Name)
		}
		if len(p.Levels) != 0 {
			return zorros.Errorf("parameter `%v`: numeric parameters have no levels", p.Name)
		}
	case Categorical:
		if len(p.Levels) == 0 {
			return zorros.Errorf("parameter `%v` has no levels", p.Name)
		}
		if p.Transform != nil {
			return zorros.Errorf("parameter `%v`: categorical parameters have no transform", p.Name)
		}
		seen := map[string]bool{}
		for _, l := range p.Levels {
			if seen[l] {
				return zorros.Errorf("parameter `%v`: duplicate level `%v`", p.Name, l)
			}
			seen[l] = true
		}
	default:
		return zorros.Errorf("parameter `%v` has unknown kind %d", p.Name, p.Kind)
	}
	if p.When != nil {
		j, ok := s.index[p.When.Key]
		if !ok {
			return zorros.Errorf("parameter `%v` depends on `%v` which is not declared yet", p.Name, p.When.Key)
		}
		parent := s.params[j]
		if parent.Kind != Categorical {
			return zorros.Errorf("parameter `%v` depends on `%v` which is not categorical", p.Name, p.When.Key)
		}
		if len(p.When.AnyOf) == 0 {
			return zorros.Errorf("parameter `%v`: empty condition on `%v`", p.Name, p.When.Key)
		}
		for _, l := range p.When.AnyOf {
			if !contains(parent.Levels, l) {
				return zorros.Errorf("parameter `%v`: condition level `%v` is not a level of `%v`", p.Name, l, p.When.Key)
			}
		}
	}
	s.index[p.Name] = len(s.params)
	s.params = append(s.params, p)
	return nil
}

// AddInt declares an integer parameter on the inclusive range [min,max].
func (s *Space) AddInt(name string, min, max int) error {
	return s.Add(Param{Name: name, Kind: Integer, Min: float64(min), Max: float64(max)})
}

// AddFloat declares a real parameter on the inclusive range [min,max].
func (s *Space) AddFloat(name string, min, max float64) error {
	return s.Add(Param{Name: name, Kind: Real, Min: min, Max: max})
}

// AddChoice declares a categorical parameter.
func (s *Space) AddChoice(name string, levels ...string) error {
	return s.Add(Param{Name: name, Kind: Categorical, Levels: levels})
}

// AddIntWhen declares an integer parameter active only under the condition.
func (s *Space) AddIntWhen(name string, min, max int, when Condition) error {
	return s.Add(Param{Name: name, Kind: Integer, Min: float64(min), Max: float64(max), When: &when})
}

// AddFloatWhen declares a real parameter active only under the condition.
func (s *Space) AddFloatWhen(name string, min, max float64, when Condition) error {
	return s.Add(Param{Name: name, Kind: Real, Min: min, Max: max, When: &when})
}

// AddChoiceWhen declares a categorical parameter active only under the condition.
func (s *Space) AddChoiceWhen(name string, when Condition, levels ...string) error {
	return s.Add(Param{Name: name, Kind: Categorical, Levels: levels, When: &when})
}

/*
Lucky wraps a sequence of Add calls and throws the first error as a panic.
Intended for statically known spaces.
*/
func Lucky(build func(s *Space) error) *Space {
	s := New()
	if err := build(s); err != nil {
		panic(zorros.Panic(err))
	}
	return s
}

func contains(a []string, v string) bool {
	for _, x := range a {
		if x == v {
			return true
		}
	}
	return false
}
