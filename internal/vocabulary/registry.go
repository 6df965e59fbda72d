package vocabulary

import (
	"context"
	"fmt"
	"slices"
)

// Spec declares a vocabulary the registry should load.
type Spec struct {
	Name   string
	Policy InsertPolicy
}

// Registry is the set of vocabularies for one run. Every reconcile that
// changes a vocabulary saves it before returning, so an update survives a
// later failure in the same run.
type Registry struct {
	store   Store
	vocabs  map[string]*Vocabulary
	order   []string
	changed []string
	// saved is the Version of each vocabulary at its last save.
	saved map[string]int
}

// Open loads every vocabulary in specs. Any missing or malformed store is
// an error; the registry is never built from partial state.
func Open(ctx context.Context, store Store, specs []Spec) (*Registry, error) {
	r := &Registry{
		store:  store,
		vocabs: make(map[string]*Vocabulary, len(specs)),
		saved:  make(map[string]int, len(specs)),
	}
	for _, spec := range specs {
		values, err := store.Load(ctx, spec.Name)
		if err != nil {
			return nil, err
		}
		v, err := New(spec.Name, spec.Policy, values)
		if err != nil {
			return nil, err
		}
		r.vocabs[spec.Name] = v
		r.order = append(r.order, spec.Name)
	}
	return r, nil
}

func (r *Registry) Get(name string) (*Vocabulary, error) {
	v, ok := r.vocabs[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownVocabulary)
	}
	return v, nil
}

// Values returns a copy of the named vocabulary, or nil if unknown.
func (r *Registry) Values(name string) []string {
	if v, ok := r.vocabs[name]; ok {
		return v.Values()
	}
	return nil
}

// Names lists vocabularies in the order they were opened.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Choice runs ReconcileChoice on the named vocabulary.
func (r *Registry) Choice(ctx context.Context, name, selected, other string) (string, error) {
	v, err := r.Get(name)
	if err != nil {
		return "", err
	}
	value, _ := ReconcileChoice(v, selected, other)
	if err := r.persist(ctx, v); err != nil {
		return "", err
	}
	return value, nil
}

// Faults runs ReconcileFaults on the named vocabulary.
func (r *Registry) Faults(ctx context.Context, name string, selected []string, other string, floor int) (FaultResult, error) {
	v, err := r.Get(name)
	if err != nil {
		return FaultResult{}, err
	}
	res := ReconcileFaults(v, selected, other, floor)
	if err := r.persist(ctx, v); err != nil {
		return FaultResult{}, err
	}
	return res, nil
}

// Split runs Vocabulary.Split on the named vocabulary.
func (r *Registry) Split(name, line string) ([]string, error) {
	v, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return v.Split(line), nil
}

// persist saves v if it was modified since its last save.
func (r *Registry) persist(ctx context.Context, v *Vocabulary) error {
	if v.Version() == r.saved[v.Name] {
		return nil
	}
	if err := r.store.Save(ctx, v); err != nil {
		return err
	}
	r.saved[v.Name] = v.Version()
	if !slices.Contains(r.changed, v.Name) {
		r.changed = append(r.changed, v.Name)
	}
	return nil
}

// Changed reports whether any vocabulary was modified this run.
func (r *Registry) Changed() bool {
	return len(r.changed) > 0
}

// ChangedNames lists modified vocabularies in the order they changed.
func (r *Registry) ChangedNames() []string {
	return slices.Clone(r.changed)
}
