package space

import (
	"fmt"
	"strings"
)

/*
Value is a single materialized parameter value. A Value with Active
false is the sentinel for a parameter whose activation condition was
unmet; it is always present in the assignment so that samples and grid
rows have uniform shape.
*/
type Value struct {
	Active bool
	Num    float64
	Label  string
}

// Inactive returns the not-applicable sentinel value.
func Inactive() Value { return Value{} }

// Number returns an active numeric value.
func Number(v float64) Value { return Value{Active: true, Num: v} }

// Level returns an active categorical value.
func Level(l string) Value { return Value{Active: true, Label: l} }

/*
Assignment maps parameter names to materialized values
*/
type Assignment map[string]Value

/*
Int returns the integer value of the parameter by name if active
and dflt otherwise
*/
func (a Assignment) Int(name string, dflt int) int {
	if v, ok := a[name]; ok && v.Active {
		return int(v.Num)
	}
	return dflt
}

/*
Float returns the value of the parameter by name if active and dflt otherwise
*/
func (a Assignment) Float(name string, dflt float64) float64 {
	if v, ok := a[name]; ok && v.Active {
		return v.Num
	}
	return dflt
}

/*
Choice returns the level of the parameter by name if active and dflt otherwise
*/
func (a Assignment) Choice(name string, dflt string) string {
	if v, ok := a[name]; ok && v.Active {
		return v.Label
	}
	return dflt
}

/*
Transformed applies the declared per-parameter transforms to the active
numeric values of a and returns the result. The input assignment is not
modified; tuning results keep both the raw and the transformed form.
*/
func (s *Space) Transformed(a Assignment) Assignment {
	r := make(Assignment, len(a))
	for k, v := range a {
		r[k] = v
	}
	for _, p := range s.params {
		if p.Transform == nil {
			continue
		}
		if v, ok := r[p.Name]; ok && v.Active {
			r[p.Name] = Number(p.Transform(v.Num))
		}
	}
	return r
}

/*
Key renders an assignment as a canonical string in declaration order,
usable for deduplication and logging
*/
func (s *Space) Key(a Assignment) string {
	parts := make([]string, 0, len(s.params))
	for _, p := range s.params {
		v := a[p.Name]
		switch {
		case !v.Active:
			parts = append(parts, p.Name+"=·")
		case p.Kind == Categorical:
			parts = append(parts, p.Name+"="+v.Label)
		case p.Kind == Integer:
			parts = append(parts, fmt.Sprintf("%s=%d", p.Name, int(v.Num)))
		default:
			parts = append(parts, fmt.Sprintf("%s=%g", p.Name, v.Num))
		}
	}
	return strings.Join(parts, ",")
}

// active reports whether the declaration's condition is met by the
// already-materialized part of the assignment.
func (s *Space) active(a Assignment, p Param) bool {
	if p.When == nil {
		return true
	}
	v, ok := a[p.When.Key]
	return ok && v.Active && contains(p.When.AnyOf, v.Label)
}
