package vocabulary

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	codedRe   = regexp.MustCompile(`^T(\d+)\s*\((.*)\)\s*$`)
	leadingRe = regexp.MustCompile(`^T(\d+)(?:\s|$)`)
	anyCodeRe = regexp.MustCompile(`\bT(\d+)\b`)
	bareRe    = regexp.MustCompile(`^T(\d+)$`)
)

// FaultCode binds a T<n> identifier to its description.
type FaultCode struct {
	N           int
	Description string
}

func (c FaultCode) Code() string {
	return "T" + strconv.Itoa(c.N)
}

// String is the persisted vocabulary form, "T<n> (<description>)".
func (c FaultCode) String() string {
	return fmt.Sprintf("T%d (%s)", c.N, c.Description)
}

// ParseFaultCode parses a "T<n> (<description>)" vocabulary value.
func ParseFaultCode(s string) (FaultCode, bool) {
	m := codedRe.FindStringSubmatch(s)
	if m == nil {
		return FaultCode{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return FaultCode{}, false
	}
	return FaultCode{N: n, Description: m[2]}, true
}

// LeadingCode returns n for a value starting with a "T<n>" token.
func LeadingCode(s string) (int, bool) {
	m := leadingRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// MaxCode returns the highest leading T<n> among values, or 0.
func MaxCode(values []string) int {
	highest := 0
	for _, v := range values {
		if n, ok := LeadingCode(v); ok && n > highest {
			highest = n
		}
	}
	return highest
}

// CodesIn returns every T<n> number mentioned anywhere in s.
func CodesIn(s string) []int {
	var out []int
	for _, m := range anyCodeRe.FindAllStringSubmatch(s, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// lookupDescription finds the code already bound to desc.
func lookupDescription(v *Vocabulary, desc string) (FaultCode, bool) {
	for _, val := range v.values {
		if c, ok := ParseFaultCode(val); ok && c.Description == desc {
			return c, true
		}
	}
	return FaultCode{}, false
}

// lookupCode finds the vocabulary value carrying code n.
func lookupCode(v *Vocabulary, n int) (FaultCode, bool) {
	for _, val := range v.values {
		if c, ok := ParseFaultCode(val); ok && c.N == n {
			return c, true
		}
	}
	return FaultCode{}, false
}

// bareCode reports whether s is just a "T<n>" token.
func bareCode(s string) (int, bool) {
	m := bareRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}
