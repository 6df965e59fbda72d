// Package formgen renders the GitHub issue form definition from a static
// schema and the current vocabularies. Output is a pure function of its
// inputs: the same schema and vocabularies always give the same bytes.
package formgen

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingVocabulary is returned when a field names a vocabulary that
	// was not supplied.
	ErrMissingVocabulary = errors.New("form field references unknown vocabulary")
	// ErrNoOptions is returned for a dropdown that would render empty.
	ErrNoOptions = errors.New("dropdown has no options")
)

// Field types understood by GitHub issue forms.
const (
	TypeMarkdown = "markdown"
	TypeInput    = "input"
	TypeTextarea = "textarea"
	TypeDropdown = "dropdown"
)

// Field is one element of the form body.
type Field struct {
	Type        string
	ID          string
	Label       string
	Description string
	Placeholder string
	Multiple    bool
	Required    bool

	// Options is the static option list.
	Options []string
	// Vocabulary names a dynamic option source; its values come first.
	Vocabulary string
	// Sentinels are appended unless the options already contain them.
	Sentinels []string

	// Value is the body of a markdown element.
	Value string
}

// Schema is the static part of the form.
type Schema struct {
	Name        string
	Description string
	Title       string
	Labels      []string
	Fields      []Field
}

type document struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Title       string    `yaml:"title,omitempty"`
	Labels      []string  `yaml:"labels,omitempty"`
	Body        []element `yaml:"body"`
}

type element struct {
	Type        string       `yaml:"type"`
	ID          string       `yaml:"id,omitempty"`
	Attributes  attributes   `yaml:"attributes"`
	Validations *validations `yaml:"validations,omitempty"`
}

type attributes struct {
	Label       string   `yaml:"label,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Placeholder string   `yaml:"placeholder,omitempty"`
	Multiple    bool     `yaml:"multiple,omitempty"`
	Options     []string `yaml:"options,omitempty"`
	Value       string   `yaml:"value,omitempty"`
}

type validations struct {
	Required bool `yaml:"required"`
}

// Generate renders schema with dynamic options taken from vocabs.
func Generate(schema Schema, vocabs map[string][]string) ([]byte, error) {
	doc := document{
		Name:        schema.Name,
		Description: schema.Description,
		Title:       schema.Title,
		Labels:      schema.Labels,
		Body:        make([]element, 0, len(schema.Fields)),
	}

	for _, f := range schema.Fields {
		el, err := buildElement(f, vocabs)
		if err != nil {
			return nil, err
		}
		doc.Body = append(doc.Body, el)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	return buf.Bytes(), nil
}

func buildElement(f Field, vocabs map[string][]string) (element, error) {
	if f.Type == TypeMarkdown {
		return element{Type: f.Type, Attributes: attributes{Value: f.Value}}, nil
	}

	el := element{
		Type: f.Type,
		ID:   f.ID,
		Attributes: attributes{
			Label:       f.Label,
			Description: f.Description,
			Placeholder: f.Placeholder,
			Multiple:    f.Multiple,
		},
		Validations: &validations{Required: f.Required},
	}

	if f.Type != TypeDropdown {
		return el, nil
	}

	var options []string
	if f.Vocabulary != "" {
		values, ok := vocabs[f.Vocabulary]
		if !ok {
			return element{}, fmt.Errorf("%s: %q: %w", f.ID, f.Vocabulary, ErrMissingVocabulary)
		}
		options = appendUnique(options, values...)
	}
	options = appendUnique(options, f.Options...)
	options = appendUnique(options, f.Sentinels...)
	if len(options) == 0 {
		return element{}, fmt.Errorf("%s: %w", f.ID, ErrNoOptions)
	}
	el.Attributes.Options = options
	return el, nil
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
