// Package storage abstracts where the ledger, vocabularies and generated
// artifacts live. Everything the tool persists goes through a Backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotExist is returned by Read when the named object is missing.
var ErrNotExist = errors.New("object does not exist")

type Backend interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, data []byte) error
	Exists(ctx context.Context, name string) (bool, error)
}

// Dir is a Backend rooted at a directory on the local filesystem.
// Names are slash-separated paths relative to Root.
type Dir struct {
	Root string
}

func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

func (d *Dir) path(name string) string {
	return filepath.Join(d.Root, filepath.FromSlash(name))
}

func (d *Dir) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(d.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Write replaces the object atomically: it writes a temp file next to the
// target and renames it over.
func (d *Dir) Write(_ context.Context, name string, data []byte) error {
	target := d.path(name)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (d *Dir) Exists(_ context.Context, name string) (bool, error) {
	_, err := os.Stat(d.path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Memory is an in-process Backend, used for dry runs and tests.
type Memory struct {
	Objects map[string][]byte
	Writes  []string
}

func NewMemory() *Memory {
	return &Memory{Objects: map[string][]byte{}}
}

func (m *Memory) Read(_ context.Context, name string) ([]byte, error) {
	data, ok := m.Objects[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Write(_ context.Context, name string, data []byte) error {
	m.Objects[name] = append([]byte(nil), data...)
	m.Writes = append(m.Writes, name)
	return nil
}

func (m *Memory) Exists(_ context.Context, name string) (bool, error) {
	_, ok := m.Objects[name]
	return ok, nil
}

// Overlay reads through to Base but keeps every write in memory. Dry runs
// use it so the pipeline sees its own writes without touching Base.
type Overlay struct {
	Base  Backend
	Layer *Memory
}

func NewOverlay(base Backend) *Overlay {
	return &Overlay{Base: base, Layer: NewMemory()}
}

func (o *Overlay) Read(ctx context.Context, name string) ([]byte, error) {
	if data, ok := o.Layer.Objects[name]; ok {
		return append([]byte(nil), data...), nil
	}
	return o.Base.Read(ctx, name)
}

func (o *Overlay) Write(ctx context.Context, name string, data []byte) error {
	return o.Layer.Write(ctx, name, data)
}

func (o *Overlay) Exists(ctx context.Context, name string) (bool, error) {
	if _, ok := o.Layer.Objects[name]; ok {
		return true, nil
	}
	return o.Base.Exists(ctx, name)
}
