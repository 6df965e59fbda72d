package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New("domains", Append, []string{"IoT", "Automotive", "IoT"})
	assert.ErrorIs(t, err, ErrDuplicateValue)
}

func TestInsert(t *testing.T) {
	t.Run("append policy", func(t *testing.T) {
		v, err := New("domains", Append, []string{"IoT", "Automotive"})
		require.NoError(t, err)

		assert.True(t, v.Insert("Avionics"))
		assert.Equal(t, []string{"IoT", "Automotive", "Avionics"}, v.Values())
		assert.Equal(t, 1, v.Version())
	})

	t.Run("before sentinels policy", func(t *testing.T) {
		v, err := New("fault_injection", BeforeSentinels, []string{"T1 (Bit Flip)", OtherOption, NotApplicable})
		require.NoError(t, err)

		assert.True(t, v.Insert("T2 (Stuck-at)"))
		assert.Equal(t, []string{"T1 (Bit Flip)", "T2 (Stuck-at)", OtherOption, NotApplicable}, v.Values())
	})

	t.Run("before sentinels without sentinels appends", func(t *testing.T) {
		v, err := New("fault_injection", BeforeSentinels, []string{"T1 (Bit Flip)"})
		require.NoError(t, err)

		v.Insert("T2 (Stuck-at)")
		assert.Equal(t, []string{"T1 (Bit Flip)", "T2 (Stuck-at)"}, v.Values())
	})

	t.Run("duplicates and empty are no-ops", func(t *testing.T) {
		v, err := New("domains", Append, []string{"IoT"})
		require.NoError(t, err)

		assert.False(t, v.Insert("IoT"))
		assert.False(t, v.Insert(""))
		assert.Equal(t, 0, v.Version())
		assert.Equal(t, 1, v.Len())
	})

	t.Run("contains is case sensitive", func(t *testing.T) {
		v, err := New("domains", Append, []string{"IoT"})
		require.NoError(t, err)

		assert.False(t, v.Contains("iot"))
		assert.True(t, v.Insert("iot"))
	})

	t.Run("values is a copy", func(t *testing.T) {
		v, err := New("domains", Append, []string{"IoT"})
		require.NoError(t, err)

		vals := v.Values()
		vals[0] = "mutated"
		assert.True(t, v.Contains("IoT"))
		assert.Equal(t, "IoT", v.Values()[0])
	})
}

func TestFaultCodes(t *testing.T) {
	c, ok := ParseFaultCode("T12 (Clock Drift)")
	require.True(t, ok)
	assert.Equal(t, FaultCode{N: 12, Description: "Clock Drift"}, c)
	assert.Equal(t, "T12", c.Code())
	assert.Equal(t, "T12 (Clock Drift)", c.String())

	_, ok = ParseFaultCode("Clock Drift")
	assert.False(t, ok)

	n, ok := LeadingCode("T3")
	assert.True(t, ok)
	assert.Equal(t, 3, n)
	_, ok = LeadingCode("T3x (weird)")
	assert.False(t, ok)

	assert.Equal(t, 9, MaxCode([]string{"T2 (A)", "T9 (B)", "T4 (C)", OtherOption, NotApplicable}))
	assert.Equal(t, 0, MaxCode([]string{OtherOption}))

	assert.Equal(t, []int{1, 6, 7}, CodesIn("T1, T6, T7"))
	assert.Empty(t, CodesIn("NA"))
}
