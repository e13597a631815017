package agents

import (
	"fmt"

	"github.com/samber/do"
)

// Registry holds the closed set of agent profiles. Profiles are validated at
// construction so template selection never indexes into an empty list.
type Registry struct {
	order    []Type
	profiles map[Type]*Profile
}

func New(_ *do.Injector) (*Registry, error) {
	return NewRegistry(defaultProfiles())
}

func NewRegistry(profiles []*Profile) (*Registry, error) {
	r := &Registry{
		profiles: make(map[Type]*Profile, len(profiles)),
	}

	for _, p := range profiles {
		if len(p.Templates) == 0 {
			return nil, fmt.Errorf("agent %q has no response templates", p.Type)
		}
		if len(p.Vocabulary) == 0 {
			return nil, fmt.Errorf("agent %q has no vocabulary", p.Type)
		}
		if _, ok := r.profiles[p.Type]; ok {
			return nil, fmt.Errorf("agent %q registered twice", p.Type)
		}

		r.order = append(r.order, p.Type)
		r.profiles[p.Type] = p
	}

	if _, ok := r.profiles[General]; !ok {
		return nil, fmt.Errorf("fallback agent %q is missing", General)
	}

	return r, nil
}

func (r *Registry) Get(t Type) (*Profile, bool) {
	p, ok := r.profiles[t]
	return p, ok
}

// MustGet returns the profile for a type known to be registered.
func (r *Registry) MustGet(t Type) *Profile {
	p, ok := r.profiles[t]
	if !ok {
		panic(fmt.Sprintf("unknown agent type %q", t))
	}
	return p
}

func (r *Registry) Valid(t Type) bool {
	_, ok := r.profiles[t]
	return ok
}

// All returns profiles in registration order.
func (r *Registry) All() []*Profile {
	result := make([]*Profile, 0, len(r.order))
	for _, t := range r.order {
		result = append(result, r.profiles[t])
	}
	return result
}
