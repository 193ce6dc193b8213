package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubsite/internal/model"
)

var from = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestExpandWeeklyRule(t *testing.T) {
	meetings := []model.Meeting{{
		Name:     "Weekly Sync",
		Location: "Lab 2",
		Start:    "2025-05-02 16:00", // a Friday
		RRule:    "FREQ=WEEKLY;BYDAY=FR",
	}}

	occs := Expand(meetings, time.UTC, from)
	require.NotEmpty(t, occs)

	until := from.Add(horizon)
	for _, occ := range occs {
		assert.Equal(t, "Weekly Sync", occ.Name)
		assert.Equal(t, time.Friday, occ.Start.Weekday())
		assert.Equal(t, occ.Start.Add(time.Hour), occ.End)
		assert.False(t, occ.Start.Before(from))
		assert.False(t, occ.Start.After(until))
	}

	// Fridays at 16:00 between 2025-06-01 and 2025-08-30.
	assert.Len(t, occs, 13)
}

func TestExpandDuration(t *testing.T) {
	meetings := []model.Meeting{{
		Name:     "Long Session",
		Start:    "2025-06-06 16:00",
		Duration: "1h30m",
		RRule:    "FREQ=WEEKLY;BYDAY=FR;COUNT=2",
	}}

	occs := Expand(meetings, time.UTC, from)
	require.Len(t, occs, 2)
	assert.Equal(t, 90*time.Minute, occs[0].End.Sub(occs[0].Start))
}

func TestExpandOneOff(t *testing.T) {
	meetings := []model.Meeting{
		{Name: "Upcoming", Start: "2025-06-10 18:00"},
		{Name: "Already Held", Start: "2025-05-10 18:00"},
		{Name: "Too Far Out", Start: "2026-06-10 18:00"},
	}

	occs := Expand(meetings, time.UTC, from)
	require.Len(t, occs, 1)
	assert.Equal(t, "Upcoming", occs[0].Name)
	assert.Equal(t, time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC), occs[0].Start)
}

func TestExpandSkipsBrokenMeetings(t *testing.T) {
	meetings := []model.Meeting{
		{Name: "Bad Start", Start: "whenever"},
		{Name: "Bad Rule", Start: "2025-06-06 16:00", RRule: "FREQ=SOMETIMES"},
		{Start: "2025-06-06 16:00"}, // no name
		{Name: "Good", Start: "2025-06-06 16:00"},
	}

	occs := Expand(meetings, time.UTC, from)
	require.Len(t, occs, 1)
	assert.Equal(t, "Good", occs[0].Name)
}

func TestExpandUsesAssumedZone(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	meetings := []model.Meeting{{Name: "Evening", Start: "2025-06-10 18:00"}}

	occs := Expand(meetings, ist, from)
	require.Len(t, occs, 1)
	assert.Equal(t, "2025-06-10T12:30:00Z", occs[0].Start.UTC().Format("2006-01-02T15:04:05Z"))
}
