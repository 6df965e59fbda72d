package vocabulary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"github.com/K0NGR3SS/slrledger/internal/storage"
)

// Store persists vocabularies by name.
type Store interface {
	Load(ctx context.Context, name string) ([]string, error)
	Save(ctx context.Context, v *Vocabulary) error
}

// JSONStore keeps each vocabulary as a JSON string array, <Dir>/<name>.json.
type JSONStore struct {
	Backend storage.Backend
	Dir     string
}

func NewJSONStore(backend storage.Backend, dir string) *JSONStore {
	return &JSONStore{Backend: backend, Dir: dir}
}

func (s *JSONStore) Path(name string) string {
	return path.Join(s.Dir, name+".json")
}

func (s *JSONStore) Load(ctx context.Context, name string) ([]string, error) {
	data, err := s.Backend.Read(ctx, s.Path(name))
	if errors.Is(err, storage.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", s.Path(name), ErrMissingVocabulary)
	}
	if err != nil {
		return nil, err
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", s.Path(name), ErrMalformedVocabulary, err)
	}
	if values == nil {
		return nil, fmt.Errorf("%s: %w: expected a JSON array", s.Path(name), ErrMalformedVocabulary)
	}
	return values, nil
}

func (s *JSONStore) Save(ctx context.Context, v *Vocabulary) error {
	data, err := Marshal(v.Values())
	if err != nil {
		return fmt.Errorf("failed to marshal vocabulary %s: %w", v.Name, err)
	}
	if err := s.Backend.Write(ctx, s.Path(v.Name), data); err != nil {
		return fmt.Errorf("failed to save vocabulary %s: %w", v.Name, err)
	}
	return nil
}

// Marshal renders values as an indented JSON array with a trailing newline.
func Marshal(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
