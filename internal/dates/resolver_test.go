package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed IST offset so tests do not depend on the system tzdata.
var ist = time.FixedZone("IST", 5*3600+30*60)

func TestResolveISODate(t *testing.T) {
	r := NewResolverIn(ist)

	got, ok := r.Resolve("2025-01-10")
	require.True(t, ok)
	assert.Equal(t, "2025-01-09T18:30:00Z", FormatUTC(got))

	// Interpreted back in the source zone the calendar date must survive.
	local := got.In(ist)
	assert.Equal(t, 2025, local.Year())
	assert.Equal(t, time.January, local.Month())
	assert.Equal(t, 10, local.Day())
	assert.Equal(t, 0, local.Hour())
	assert.Equal(t, 0, local.Minute())
}

func TestResolveLongAndShortMonthNames(t *testing.T) {
	r := NewResolverIn(ist)

	long, ok := r.Resolve("10 October 2025")
	require.True(t, ok)
	short, ok := r.Resolve("10 Oct 2025")
	require.True(t, ok)
	assert.Equal(t, long, short)
}

func TestResolveEmbeddedClock(t *testing.T) {
	r := NewResolverIn(ist)

	got, ok := r.Resolve("10 October 2025, Friday (1:20PM)")
	require.True(t, ok)

	local := got.In(ist)
	assert.Equal(t, 13, local.Hour())
	assert.Equal(t, 20, local.Minute())
	assert.Equal(t, "2025-10-10T07:50:00Z", FormatUTC(got))
}

func TestResolveClockVariants(t *testing.T) {
	r := NewResolverIn(time.UTC)

	cases := map[string]string{
		"2025-03-01, 12:00PM":   "2025-03-01T12:00:00Z",
		"2025-03-01, 12:05 AM":  "2025-03-01T00:05:00Z",
		"2025-03-01, 11:59pm":   "2025-03-01T23:59:00Z",
		"2025-03-01, 3rd Hour":  "2025-03-01T03:00:00Z",
		"2025-03-01, 10th hour": "2025-03-01T10:00:00Z",
	}
	for raw, want := range cases {
		got, ok := r.Resolve(raw)
		require.True(t, ok, "input %q", raw)
		assert.Equal(t, want, FormatUTC(got), "input %q", raw)
	}
}

func TestResolveMalformedClockFallsBackToMidnight(t *testing.T) {
	r := NewResolverIn(time.UTC)

	got, ok := r.Resolve("2025-03-01, 99:99PM")
	require.True(t, ok)
	assert.Equal(t, "2025-03-01T00:00:00Z", FormatUTC(got))
}

func TestResolveUnknown(t *testing.T) {
	r := NewResolverIn(ist)

	for _, raw := range []string{"", "   ", "TBA", "tba", "Tba", "next week", "32 October 2025"} {
		_, ok := r.Resolve(raw)
		assert.False(t, ok, "input %q", raw)
	}
}

func TestResolveDiscardsTrailingDescriptor(t *testing.T) {
	r := NewResolverIn(time.UTC)

	got, ok := r.Resolve("10 October 2025, Friday")
	require.True(t, ok)
	assert.Equal(t, "2025-10-10T00:00:00Z", FormatUTC(got))
}

func TestNewResolverInNilMeansUTC(t *testing.T) {
	r := NewResolverIn(nil)

	got, ok := r.Resolve("2025-01-10")
	require.True(t, ok)
	assert.Equal(t, "2025-01-10T00:00:00Z", FormatUTC(got))
}
