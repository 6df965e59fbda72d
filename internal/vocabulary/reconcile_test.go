package vocabulary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func faults(t *testing.T, n int) *Vocabulary {
	t.Helper()
	var values []string
	for i := 1; i <= n; i++ {
		values = append(values, FaultCode{N: i, Description: fmt.Sprintf("Fault %d", i)}.String())
	}
	values = append(values, OtherOption, NotApplicable)
	v, err := New("fault_injection", BeforeSentinels, values)
	require.NoError(t, err)
	return v
}

func TestReconcileChoiceKeepsCommaValues(t *testing.T) {
	v, err := New("attack_scenarios", Append, []string{"Replay"})
	require.NoError(t, err)

	got, changed := ReconcileChoice(v, "Replay, "+OtherOption, "Glitch, then dump")
	assert.True(t, changed)
	assert.Equal(t, "Replay, Glitch, then dump", got)
	assert.Equal(t, []string{"Replay", "Glitch, then dump"}, v.Values())
}

func TestReconcileChoice(t *testing.T) {
	tests := []struct {
		name        string
		selected    string
		other       string
		want        string
		wantChanged bool
		wantVocab   []string
	}{
		{
			name:        "other replaces selector",
			selected:    OtherOption,
			other:       "Quantum Networking",
			want:        "Quantum Networking",
			wantChanged: true,
			wantVocab:   []string{"IoT", "Automotive", "Quantum Networking"},
		},
		{
			name:        "existing other value reused",
			selected:    OtherOption,
			other:       "Automotive",
			want:        "Automotive",
			wantChanged: false,
			wantVocab:   []string{"IoT", "Automotive"},
		},
		{
			name:        "multi select replaces in place",
			selected:    "IoT, Other (please specify below)",
			other:       "Rail",
			want:        "IoT, Rail",
			wantChanged: true,
			wantVocab:   []string{"IoT", "Automotive", "Rail"},
		},
		{
			name:        "multi select collapses repeats",
			selected:    "IoT, Other (please specify below)",
			other:       "IoT",
			want:        "IoT",
			wantChanged: false,
			wantVocab:   []string{"IoT", "Automotive"},
		},
		{
			name:        "no other text keeps raw selection",
			selected:    OtherOption,
			other:       "",
			want:        OtherOption,
			wantChanged: false,
			wantVocab:   []string{"IoT", "Automotive"},
		},
		{
			name:        "empty selection takes other",
			selected:    "",
			other:       " Rail ",
			want:        "Rail",
			wantChanged: true,
			wantVocab:   []string{"IoT", "Automotive", "Rail"},
		},
		{
			name:        "explicit selection kept, other still recorded",
			selected:    "IoT",
			other:       "Rail",
			want:        "IoT",
			wantChanged: true,
			wantVocab:   []string{"IoT", "Automotive", "Rail"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New("domains", Append, []string{"IoT", "Automotive"})
			require.NoError(t, err)

			got, changed := ReconcileChoice(v, tt.selected, tt.other)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantVocab, v.Values())
		})
	}
}

func TestReconcileFaults(t *testing.T) {
	t.Run("new terms get consecutive codes", func(t *testing.T) {
		v := faults(t, 5)
		res := ReconcileFaults(v, []string{"T2 (Fault 2)", OtherOption}, "Clock Drift, Power Glitch", 0)

		assert.Equal(t, "T2, T6, T7", res.Value)
		assert.Equal(t, []FaultCode{{6, "Clock Drift"}, {7, "Power Glitch"}}, res.Minted)
		assert.True(t, res.Changed())
		assert.False(t, res.Degraded)

		vals := v.Values()
		assert.Equal(t, "T6 (Clock Drift)", vals[5])
		assert.Equal(t, "T7 (Power Glitch)", vals[6])
		assert.Equal(t, []string{OtherOption, NotApplicable}, vals[7:])
	})

	t.Run("existing description reuses its code", func(t *testing.T) {
		v := faults(t, 5)
		res := ReconcileFaults(v, []string{OtherOption}, "Fault 3, Fault 3", 0)

		assert.Equal(t, "T3", res.Value)
		assert.Empty(t, res.Minted)
		assert.Equal(t, []FaultCode{{3, "Fault 3"}}, res.Reused)
		assert.Equal(t, 7, v.Len())
	})

	t.Run("floor from ledger history prevents reuse", func(t *testing.T) {
		v := faults(t, 2)
		res := ReconcileFaults(v, []string{OtherOption}, "Clock Drift", 8)

		assert.Equal(t, "T9", res.Value)
		assert.Equal(t, []FaultCode{{9, "Clock Drift"}}, res.Minted)
	})

	t.Run("repeated runs stay monotonic", func(t *testing.T) {
		v := faults(t, 5)
		first := ReconcileFaults(v, []string{OtherOption}, "Clock Drift", 0)
		second := ReconcileFaults(v, []string{OtherOption}, "Power Glitch, Clock Drift", 0)

		assert.Equal(t, "T6", first.Value)
		assert.Equal(t, "T7, T6", second.Value)
		assert.Equal(t, []FaultCode{{7, "Power Glitch"}}, second.Minted)
		assert.Equal(t, 9, v.Len())
	})

	t.Run("other without text is degraded", func(t *testing.T) {
		v := faults(t, 5)
		res := ReconcileFaults(v, []string{"T1 (Fault 1)", OtherOption}, "", 0)

		assert.True(t, res.Degraded)
		assert.Equal(t, "T1, "+OtherOption, res.Value)
		assert.False(t, res.Changed())
	})

	t.Run("NA alone", func(t *testing.T) {
		v := faults(t, 5)
		res := ReconcileFaults(v, []string{NotApplicable}, "", 0)
		assert.Equal(t, NotApplicable, res.Value)
	})

	t.Run("NA dropped beside real codes", func(t *testing.T) {
		v := faults(t, 5)
		res := ReconcileFaults(v, []string{"T4 (Fault 4)", NotApplicable}, "", 0)
		assert.Equal(t, "T4", res.Value)
	})

	t.Run("nothing selected", func(t *testing.T) {
		v := faults(t, 5)
		res := ReconcileFaults(v, nil, "", 0)
		assert.Equal(t, "", res.Value)
	})

	t.Run("sentinel terms never get codes", func(t *testing.T) {
		v := faults(t, 5)
		res := ReconcileFaults(v, []string{OtherOption}, "NA, "+OtherOption, 0)

		assert.Equal(t, NotApplicable, res.Value)
		assert.Empty(t, res.Minted)
		assert.False(t, res.Degraded)
		assert.Equal(t, 7, v.Len())
	})

	t.Run("bare code refers to the existing value", func(t *testing.T) {
		v := faults(t, 5)
		res := ReconcileFaults(v, []string{OtherOption}, "T3, Clock Drift", 0)

		assert.Equal(t, "T3, T6", res.Value)
		assert.Equal(t, []FaultCode{{3, "Fault 3"}}, res.Reused)
		assert.Equal(t, []FaultCode{{6, "Clock Drift"}}, res.Minted)
	})

	t.Run("unknown bare code is ignored", func(t *testing.T) {
		v := faults(t, 5)
		res := ReconcileFaults(v, []string{OtherOption}, "T42", 0)

		assert.Equal(t, []string{"T42"}, res.Ignored)
		assert.Empty(t, res.Minted)
		assert.True(t, res.Degraded)
		assert.Equal(t, OtherOption, res.Value)
	})

	t.Run("selection with commas inside a description", func(t *testing.T) {
		v, err := New("fault_injection", BeforeSentinels, []string{
			"T1 (Bit Flip)", "T6 (Voltage, clock glitch)", OtherOption, NotApplicable,
		})
		require.NoError(t, err)

		selected := v.Split("T1 (Bit Flip), T6 (Voltage, clock glitch)")
		res := ReconcileFaults(v, selected, "", 0)
		assert.Equal(t, "T1, T6", res.Value)
	})
}

func TestSplit(t *testing.T) {
	v, err := New("attack_scenarios", Append, []string{"Replay", "Glitch, then dump", "Glitch"})
	require.NoError(t, err)

	tests := []struct {
		line string
		want []string
	}{
		{"Replay, Glitch, then dump", []string{"Replay", "Glitch, then dump"}},
		{"Glitch, Replay", []string{"Glitch", "Replay"}},
		{"Glitch, then dump", []string{"Glitch, then dump"}},
		{"Unknown, Other (please specify below)", []string{"Unknown", OtherOption}},
		{"  Replay ,, Side channel ", []string{"Replay", "Side channel"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Split(tt.line))
		})
	}
}

func TestThreatCodes(t *testing.T) {
	tests := []struct {
		selected []string
		want     string
	}{
		{[]string{"S (Spoofing)", "T (Tampering)"}, "S, T"},
		{[]string{"E (Elevation of Privilege)"}, "E"},
		{[]string{NotApplicable}, "NA"},
		{[]string{"  I (Information Disclosure)", "I (Information Disclosure)"}, "I"},
		{nil, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ThreatCodes(tt.selected))
	}
}
