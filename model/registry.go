package model

import (
	"sort"

	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/tune/space"
)

/*
Family binds a learner constructor to the default search space of its
learner family. The default space's bounds are sane for the family:
every assignment the space can generate yields a constructible learner.
*/
type Family struct {
	Factory func(ps space.Assignment) (Learner, error)
	Space   func() *space.Space
}

var families = map[string]Family{}

/*
Register adds a named learner family to the registry. Families register
at init time; a duplicate, unnamed or incomplete registration is a
programming error and panics immediately rather than at first use.
*/
func Register(name string, f Family) {
	if name == "" || f.Factory == nil || f.Space == nil {
		panic(zorros.Panic(zorros.Errorf("incomplete registration of learner family `%v`", name)))
	}
	if _, ok := families[name]; ok {
		panic(zorros.Panic(zorros.Errorf("learner family `%v` is already registered", name)))
	}
	families[name] = f
}

// Lookup resolves a learner family by name.
func Lookup(name string) (Family, error) {
	f, ok := families[name]
	if !ok {
		return Family{}, zorros.Errorf("unknown learner family `%v`", name)
	}
	return f, nil
}

// Names lists the registered family names in sorted order.
func Names() []string {
	r := make([]string, 0, len(families))
	for name := range families {
		r = append(r, name)
	}
	sort.Strings(r)
	return r
}
