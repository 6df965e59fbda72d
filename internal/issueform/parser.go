// Package issueform parses the markdown body GitHub renders for an issue
// form submission.
//
// The body is a sequence of sections:
//
//	### <Label>
//	<blank line>
//	<scalar line> | <bullet list>
//
// A section runs until the next level-3 (or shallower) heading or the end
// of the text. Text before the first section is ignored.
package issueform

import (
	"regexp"
	"strings"
)

// NoResponse is what GitHub writes for an optional field left empty.
const NoResponse = "No response"

// ListSeparator joins multi-valued answers.
const ListSeparator = ", "

var (
	headingRe = regexp.MustCompile(`^(#{1,6})(?:[ \t]+(.*?))?(?:[ \t]+#+)?[ \t]*$`)
	bulletRe  = regexp.MustCompile(`^[-*+][ \t]+(.*)$`)
	taskRe    = regexp.MustCompile(`^\[([ xX])\][ \t]+(.*)$`)
)

// Section is one labelled answer.
type Section struct {
	Label string
	Line  int
	// Lines holds the non-blank body lines, trimmed.
	Lines []string
	// Items is set when the answer is a bullet list.
	Items  []string
	IsList bool
}

// Submission is a parsed issue body.
type Submission struct {
	Sections []*Section
	byLabel  map[string]*Section
}

// Parse applies the section grammar to text. It fails on the first
// structural problem rather than guessing.
func Parse(text string) (*Submission, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	sub := &Submission{byLabel: map[string]*Section{}}
	var cur *Section
	var body []string

	flush := func() {
		if cur != nil {
			fill(cur, body)
		}
		cur, body = nil, nil
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		lineNo := i + 1

		if m := headingRe.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			level := len(m[1])
			switch {
			case level > 3 && cur != nil:
				return nil, &ParseError{Line: lineNo, Label: cur.Label, Err: ErrNestedHeading}
			case level > 3:
				continue
			case level < 3:
				flush()
				continue
			}

			flush()
			label := strings.TrimSpace(m[2])
			if label == "" {
				return nil, &ParseError{Line: lineNo, Err: ErrEmptyLabel}
			}
			if _, dup := sub.byLabel[label]; dup {
				return nil, &ParseError{Line: lineNo, Label: label, Err: ErrDuplicateLabel}
			}
			if i+1 < len(lines) {
				next := strings.TrimSpace(lines[i+1])
				if next != "" && !headingRe.MatchString(next) {
					return nil, &ParseError{Line: lineNo + 1, Label: label, Err: ErrMissingBlankLine}
				}
			}

			cur = &Section{Label: label, Line: lineNo}
			sub.Sections = append(sub.Sections, cur)
			sub.byLabel[label] = cur
			continue
		}

		if cur != nil {
			body = append(body, line)
		}
	}
	flush()

	return sub, nil
}

// fill classifies the section body as a scalar or a bullet list.
func fill(s *Section, body []string) {
	start := -1
	for i, l := range body {
		t := strings.TrimSpace(l)
		if t == "" {
			continue
		}
		if start < 0 {
			start = i
		}
		s.Lines = append(s.Lines, t)
	}
	if start < 0 || !bulletRe.MatchString(strings.TrimSpace(body[start])) {
		return
	}

	s.IsList = true
	for _, l := range body[start:] {
		t := strings.TrimSpace(l)
		if t == "" {
			break
		}
		m := bulletRe.FindStringSubmatch(t)
		if m == nil {
			break
		}
		item := m[1]
		if tm := taskRe.FindStringSubmatch(item); tm != nil {
			if tm[1] == " " {
				continue
			}
			item = tm[2]
		}
		if item = clean(item); item != "" {
			s.Items = append(s.Items, item)
		}
	}
}

// Section returns the section for label, or nil.
func (s *Submission) Section(label string) *Section {
	return s.byLabel[label]
}

// Value returns the scalar answer for label: the first non-blank line with
// emphasis markup removed. Absent labels and "No response" yield "".
// A list answer is returned joined, as List does.
func (s *Submission) Value(label string) string {
	sec := s.byLabel[label]
	if sec == nil {
		return ""
	}
	if sec.IsList {
		return strings.Join(sec.Items, ListSeparator)
	}
	if len(sec.Lines) == 0 {
		return ""
	}
	return clean(sec.Lines[0])
}

// List returns the bullet items for label joined with ListSeparator, in
// the order they appear. Non-list answers fall back to Value.
func (s *Submission) List(label string) string {
	return s.Value(label)
}

// Values splits a multi-select answer into its options. Bullet items are
// taken as-is; a single line is split on ListSeparator.
func (s *Submission) Values(label string) []string {
	sec := s.byLabel[label]
	if sec == nil {
		return nil
	}
	if sec.IsList {
		return append([]string(nil), sec.Items...)
	}
	return SplitList(s.Value(label))
}

// Has reports whether label has a non-empty answer.
func (s *Submission) Has(label string) bool {
	return s.Value(label) != ""
}

// Extract parses text and returns the scalar answer for label. Text that
// does not parse yields "".
func Extract(text, label string) string {
	sub, err := Parse(text)
	if err != nil {
		return ""
	}
	return sub.Value(label)
}

// ExtractList is Extract for bullet-list answers.
func ExtractList(text, label string) string {
	sub, err := Parse(text)
	if err != nil {
		return ""
	}
	return sub.List(label)
}

// SplitList splits a comma-joined answer, dropping empty and
// "No response" parts.
func SplitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = clean(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var emphasis = []string{"**", "__", "*", "_"}

func clean(v string) string {
	v = strings.TrimSpace(v)
	for changed := true; changed; {
		changed = false
		for _, m := range emphasis {
			if len(v) > 2*len(m) && strings.HasPrefix(v, m) && strings.HasSuffix(v, m) {
				v = strings.TrimSpace(v[len(m) : len(v)-len(m)])
				changed = true
			}
		}
	}
	if strings.EqualFold(v, NoResponse) {
		return ""
	}
	return v
}
