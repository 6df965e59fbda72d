// Package vocabulary holds the controlled vocabularies that drive the issue
// form, and reconciles "Other" answers back into them.
//
// A Vocabulary is an ordered list of unique values. New values are only ever
// inserted; nothing is rewritten or removed. Where an insert lands is fixed
// per vocabulary by its InsertPolicy.
package vocabulary

import (
	"fmt"
	"slices"
)

const (
	// OtherOption is the selector that asks for free text in a companion field.
	OtherOption = "Other (please specify below)"
	// NotApplicable is the explicit "no value" option.
	NotApplicable = "NA"
)

// DefaultSentinels are kept at the end of vocabularies that store them.
var DefaultSentinels = []string{OtherOption, NotApplicable}

type InsertPolicy int

const (
	// Append adds new values at the end.
	Append InsertPolicy = iota
	// BeforeSentinels adds new values ahead of the trailing sentinel run.
	BeforeSentinels
)

func (p InsertPolicy) String() string {
	switch p {
	case Append:
		return "append"
	case BeforeSentinels:
		return "before-sentinels"
	default:
		return fmt.Sprintf("InsertPolicy(%d)", int(p))
	}
}

type Vocabulary struct {
	Name      string
	Policy    InsertPolicy
	Sentinels []string

	values  []string
	seen    map[string]struct{}
	version int
}

// New builds a vocabulary from persisted values. Duplicates are rejected
// rather than silently collapsed.
func New(name string, policy InsertPolicy, values []string) (*Vocabulary, error) {
	v := &Vocabulary{
		Name:      name,
		Policy:    policy,
		Sentinels: DefaultSentinels,
		seen:      make(map[string]struct{}, len(values)),
	}
	for _, val := range values {
		if _, dup := v.seen[val]; dup {
			return nil, fmt.Errorf("%s: %q: %w", name, val, ErrDuplicateValue)
		}
		v.seen[val] = struct{}{}
		v.values = append(v.values, val)
	}
	return v, nil
}

// Values returns a copy of the values in order.
func (v *Vocabulary) Values() []string {
	return slices.Clone(v.values)
}

func (v *Vocabulary) Len() int {
	return len(v.values)
}

// Contains is an exact, case-sensitive lookup.
func (v *Vocabulary) Contains(val string) bool {
	_, ok := v.seen[val]
	return ok
}

// Version counts successful inserts since load.
func (v *Vocabulary) Version() int {
	return v.version
}

// Insert adds val according to the policy. It reports whether the
// vocabulary changed; empty and already-present values are no-ops.
func (v *Vocabulary) Insert(val string) bool {
	if val == "" || v.Contains(val) {
		return false
	}

	at := len(v.values)
	if v.Policy == BeforeSentinels {
		for at > 0 && slices.Contains(v.Sentinels, v.values[at-1]) {
			at--
		}
	}

	v.values = slices.Insert(v.values, at, val)
	v.seen[val] = struct{}{}
	v.version++
	return true
}

// IsSentinel reports whether val is one of the vocabulary's sentinels.
func (v *Vocabulary) IsSentinel(val string) bool {
	return slices.Contains(v.Sentinels, val)
}
