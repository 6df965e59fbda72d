package vocabulary

import (
	"regexp"
	"slices"
	"strings"
)

// Separator joins multi-valued selections.
const Separator = ", "

// ReconcileChoice settles a categorical answer against v.
//
// A non-empty other is inserted into v when new. The returned selection has
// every OtherOption replaced by other; an empty selection becomes other.
// With no other text the raw selection is returned unchanged, OtherOption
// included.
func ReconcileChoice(v *Vocabulary, selected, other string) (string, bool) {
	other = strings.TrimSpace(other)
	if other == "" {
		return selected, false
	}

	changed := v.Insert(other)

	switch {
	case selected == "":
		return other, changed
	case strings.Contains(selected, OtherOption):
		replaced := strings.ReplaceAll(selected, OtherOption, other)
		return strings.Join(unique(v.Split(replaced)), Separator), changed
	default:
		return selected, changed
	}
}

// FaultResult is the outcome of ReconcileFaults.
type FaultResult struct {
	// Value is the comma-joined list of codes for the record.
	Value string
	// Minted holds codes created by this call, in order.
	Minted []FaultCode
	// Reused holds other-text terms that matched an existing description
	// or named an existing code.
	Reused []FaultCode
	// Ignored holds other-text terms that were neither a description nor
	// a known code, such as a bare "T9" with no T9 in the vocabulary.
	Ignored []string
	// Degraded is set when OtherOption was selected without free text.
	Degraded bool
}

// Changed reports whether the vocabulary gained values.
func (r FaultResult) Changed() bool {
	return len(r.Minted) > 0
}

// ReconcileFaults settles a coded multi-select answer against v.
//
// Selected vocabulary values are reduced to their T<n> codes. Each distinct
// comma-separated term in other is matched by description; unmatched terms
// get the next code above both the vocabulary's highest code and floor.
// A term that is a sentinel never gets a code, and a bare "T<n>" term
// refers to the existing code.
// floor carries codes seen elsewhere (the ledger) so a number is never
// handed out twice even if its vocabulary value was removed.
func ReconcileFaults(v *Vocabulary, selected []string, other string, floor int) FaultResult {
	var res FaultResult
	var codes []string
	otherSelected := false
	naSelected := false

	for _, s := range selected {
		s = strings.TrimSpace(s)
		switch {
		case s == "":
		case s == OtherOption:
			otherSelected = true
		case s == NotApplicable:
			naSelected = true
		default:
			if n, ok := LeadingCode(s); ok {
				codes = append(codes, FaultCode{N: n}.Code())
			} else {
				codes = append(codes, s)
			}
		}
	}

	accepted := 0
	naTerm := false
	next := max(MaxCode(v.values), floor) + 1
	for _, term := range unique(splitTerms(other)) {
		if v.IsSentinel(term) {
			if term == NotApplicable {
				naSelected, naTerm = true, true
			}
			continue
		}
		if n, ok := bareCode(term); ok {
			c, found := lookupCode(v, n)
			if !found {
				res.Ignored = append(res.Ignored, term)
				continue
			}
			res.Reused = append(res.Reused, c)
			codes = append(codes, c.Code())
			accepted++
			continue
		}
		accepted++
		if c, ok := lookupDescription(v, term); ok {
			res.Reused = append(res.Reused, c)
			codes = append(codes, c.Code())
			continue
		}
		c := FaultCode{N: next, Description: term}
		if v.Insert(c.String()) {
			res.Minted = append(res.Minted, c)
			next++
		}
		codes = append(codes, c.Code())
	}

	if otherSelected && accepted == 0 && !naTerm {
		res.Degraded = true
		codes = append(codes, OtherOption)
	}

	codes = unique(codes)
	if len(codes) == 0 && naSelected {
		codes = []string{NotApplicable}
	}
	res.Value = strings.Join(codes, Separator)
	return res
}

var wordRe = regexp.MustCompile(`\w`)

// ThreatCodes reduces taxonomy phrases such as "S (Spoofing)" to their
// first word character. NotApplicable is kept whole.
func ThreatCodes(selected []string) string {
	var out []string
	for _, s := range selected {
		s = strings.TrimSpace(s)
		if s == NotApplicable {
			out = append(out, s)
			continue
		}
		if c := wordRe.FindString(s); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(unique(out), Separator)
}

// Split breaks a comma-joined multi-select line into its options. Known
// values and sentinels are matched first, longest first, so an option whose
// text contains a comma stays whole. Anything else splits on commas.
func (v *Vocabulary) Split(line string) []string {
	known := append(v.Values(), v.Sentinels...)
	slices.SortStableFunc(known, func(a, b string) int { return len(b) - len(a) })

	var out []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		part := ""
		for _, k := range known {
			if k == "" || !strings.HasPrefix(rest, k) {
				continue
			}
			tail := strings.TrimSpace(rest[len(k):])
			if tail == "" || strings.HasPrefix(tail, ",") {
				part, rest = k, tail
				break
			}
		}
		if part == "" {
			if i := strings.Index(rest, ","); i >= 0 {
				part, rest = strings.TrimSpace(rest[:i]), rest[i:]
			} else {
				part, rest = rest, ""
			}
		}
		if part != "" {
			out = append(out, part)
		}
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ","))
	}
	return out
}

func splitTerms(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func unique(in []string) []string {
	var out []string
	for _, s := range in {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
