package vocabulary

import (
	"context"
	"errors"
	"testing"

	"github.com/K0NGR3SS/slrledger/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSpecs = []Spec{
	{Name: "domains", Policy: Append},
	{Name: "fault_injection", Policy: BeforeSentinels},
}

func seed(t *testing.T) *storage.Memory {
	t.Helper()
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Write(ctx, "config/domains.json", []byte(`["IoT", "Automotive"]`)))
	require.NoError(t, mem.Write(ctx, "config/fault_injection.json",
		[]byte(`["T1 (Bit Flip)", "T5 (Voltage Glitch)", "Other (please specify below)", "NA"]`)))
	mem.Writes = nil
	return mem
}

func TestJSONStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is fatal", func(t *testing.T) {
		s := NewJSONStore(storage.NewMemory(), "config")
		_, err := s.Load(ctx, "domains")
		assert.ErrorIs(t, err, ErrMissingVocabulary)
	})

	t.Run("malformed file is fatal", func(t *testing.T) {
		for _, body := range []string{`{"a": 1}`, `null`, `["a",`} {
			mem := storage.NewMemory()
			require.NoError(t, mem.Write(ctx, "config/domains.json", []byte(body)))
			_, err := NewJSONStore(mem, "config").Load(ctx, "domains")
			assert.ErrorIs(t, err, ErrMalformedVocabulary, body)
		}
	})

	t.Run("save is pretty printed without html escaping", func(t *testing.T) {
		mem := storage.NewMemory()
		s := NewJSONStore(mem, "config")
		v, err := New("domains", Append, []string{"IoT", "R&D <lab>"})
		require.NoError(t, err)

		require.NoError(t, s.Save(ctx, v))
		assert.Equal(t, "[\n  \"IoT\",\n  \"R&D <lab>\"\n]\n", string(mem.Objects["config/domains.json"]))
	})

	t.Run("empty vocabulary saves as array", func(t *testing.T) {
		data, err := Marshal(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("open fails on any missing store", func(t *testing.T) {
		mem := seed(t)
		delete(mem.Objects, "config/fault_injection.json")
		_, err := Open(ctx, NewJSONStore(mem, "config"), testSpecs)
		assert.ErrorIs(t, err, ErrMissingVocabulary)
	})

	t.Run("open fails on duplicate persisted values", func(t *testing.T) {
		mem := seed(t)
		mem.Objects["config/domains.json"] = []byte(`["IoT", "IoT"]`)
		_, err := Open(ctx, NewJSONStore(mem, "config"), testSpecs)
		assert.ErrorIs(t, err, ErrDuplicateValue)
	})

	t.Run("choice persists immediately", func(t *testing.T) {
		mem := seed(t)
		r, err := Open(ctx, NewJSONStore(mem, "config"), testSpecs)
		require.NoError(t, err)

		got, err := r.Choice(ctx, "domains", OtherOption, "Quantum Networking")
		require.NoError(t, err)
		assert.Equal(t, "Quantum Networking", got)
		assert.Equal(t, []string{"config/domains.json"}, mem.Writes)
		assert.True(t, r.Changed())
		assert.Equal(t, []string{"domains"}, r.ChangedNames())

		reloaded, err := NewJSONStore(mem, "config").Load(ctx, "domains")
		require.NoError(t, err)
		assert.Equal(t, []string{"IoT", "Automotive", "Quantum Networking"}, reloaded)
	})

	t.Run("repeated other values never duplicate", func(t *testing.T) {
		mem := seed(t)
		store := NewJSONStore(mem, "config")
		for i := 0; i < 3; i++ {
			r, err := Open(ctx, store, testSpecs)
			require.NoError(t, err)
			_, err = r.Choice(ctx, "domains", OtherOption, "Quantum Networking")
			require.NoError(t, err)
			assert.Equal(t, i == 0, r.Changed())
		}

		values, err := store.Load(ctx, "domains")
		require.NoError(t, err)
		assert.Equal(t, []string{"IoT", "Automotive", "Quantum Networking"}, values)
	})

	t.Run("faults persist minted codes", func(t *testing.T) {
		mem := seed(t)
		r, err := Open(ctx, NewJSONStore(mem, "config"), testSpecs)
		require.NoError(t, err)

		res, err := r.Faults(ctx, "fault_injection", []string{"T1 (Bit Flip)", OtherOption}, "Clock Drift, Power Glitch", 0)
		require.NoError(t, err)
		assert.Equal(t, "T1, T6, T7", res.Value)

		assert.Equal(t, []string{
			"T1 (Bit Flip)", "T5 (Voltage Glitch)", "T6 (Clock Drift)", "T7 (Power Glitch)",
			OtherOption, NotApplicable,
		}, r.Values("fault_injection"))
		assert.Equal(t, []string{"config/fault_injection.json"}, mem.Writes)
	})

	t.Run("unchanged reconcile writes nothing", func(t *testing.T) {
		mem := seed(t)
		r, err := Open(ctx, NewJSONStore(mem, "config"), testSpecs)
		require.NoError(t, err)

		_, err = r.Faults(ctx, "fault_injection", []string{"T5 (Voltage Glitch)"}, "", 0)
		require.NoError(t, err)
		_, err = r.Choice(ctx, "domains", "IoT", "")
		require.NoError(t, err)
		assert.Empty(t, mem.Writes)
		assert.False(t, r.Changed())
	})

	t.Run("unknown vocabulary", func(t *testing.T) {
		mem := seed(t)
		r, err := Open(ctx, NewJSONStore(mem, "config"), testSpecs)
		require.NoError(t, err)

		_, err = r.Choice(ctx, "attack_scenarios", OtherOption, "x")
		assert.ErrorIs(t, err, ErrUnknownVocabulary)
		assert.Nil(t, r.Values("attack_scenarios"))
	})

	t.Run("save failure surfaces", func(t *testing.T) {
		mem := seed(t)
		r, err := Open(ctx, failingStore{Store: NewJSONStore(mem, "config")}, testSpecs)
		require.NoError(t, err)

		_, err = r.Choice(ctx, "domains", OtherOption, "Rail")
		assert.ErrorIs(t, err, errDiskFull)
		assert.False(t, r.Changed())
	})

	t.Run("unsaved change is saved by the next reconcile", func(t *testing.T) {
		mem := seed(t)
		store := &flakyStore{Store: NewJSONStore(mem, "config"), failures: 1}
		r, err := Open(ctx, store, testSpecs)
		require.NoError(t, err)

		_, err = r.Choice(ctx, "domains", OtherOption, "Rail")
		require.ErrorIs(t, err, errDiskFull)

		_, err = r.Choice(ctx, "domains", "IoT", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"config/domains.json"}, mem.Writes)
		assert.Equal(t, []string{"domains"}, r.ChangedNames())
	})

	t.Run("split uses the named vocabulary", func(t *testing.T) {
		mem := seed(t)
		mem.Objects["config/domains.json"] = []byte(`["IoT", "Rail, signalling"]`)
		r, err := Open(ctx, NewJSONStore(mem, "config"), testSpecs)
		require.NoError(t, err)

		got, err := r.Split("domains", "IoT, Rail, signalling")
		require.NoError(t, err)
		assert.Equal(t, []string{"IoT", "Rail, signalling"}, got)

		_, err = r.Split("nope", "x")
		assert.ErrorIs(t, err, ErrUnknownVocabulary)
	})
}

type flakyStore struct {
	Store
	failures int
}

func (s *flakyStore) Save(ctx context.Context, v *Vocabulary) error {
	if s.failures > 0 {
		s.failures--
		return errDiskFull
	}
	return s.Store.Save(ctx, v)
}

var errDiskFull = errors.New("disk full")

type failingStore struct {
	Store
}

func (failingStore) Save(context.Context, *Vocabulary) error {
	return errDiskFull
}
