package schedule

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	appLog "clubsite/internal/log"
	"clubsite/internal/model"
)

const (
	// startLayout is the wall-clock form of Meeting.Start, read in the
	// assumed source timezone.
	startLayout = "2006-01-02 15:04"

	// horizon is how far forward recurring meetings are expanded.
	horizon = 90 * 24 * time.Hour

	// maxOccurrencesPerRule caps expansion so a runaway RRULE cannot blow
	// up the calendar.
	maxOccurrencesPerRule = 500

	defaultDuration = time.Hour
)

// Expand turns the declared meetings into concrete occurrences within
// [from, from+90d), sorted by start time per rule as rrule emits them.
//
// A meeting that fails to parse (bad start, bad rrule) is logged and skipped;
// it never fails the build.
func Expand(meetings []model.Meeting, loc *time.Location, from time.Time) []model.Occurrence {
	if loc == nil {
		loc = time.UTC
	}
	until := from.Add(horizon)

	out := make([]model.Occurrence, 0, len(meetings))
	for _, m := range meetings {
		occs, err := expandMeeting(m, loc, from, until)
		if err != nil {
			appLog.Error("schedule: skipping meeting", err, "name", m.Name)
			continue
		}
		out = append(out, occs...)
	}
	return out
}

func expandMeeting(m model.Meeting, loc *time.Location, from, until time.Time) ([]model.Occurrence, error) {
	if m.Name == "" {
		return nil, errors.New("meeting has no name")
	}

	start, err := time.ParseInLocation(startLayout, m.Start, loc)
	if err != nil {
		return nil, err
	}

	dur := defaultDuration
	if m.Duration != "" {
		if d, derr := time.ParseDuration(m.Duration); derr == nil && d > 0 {
			dur = d
		}
	}

	// One-off meeting: include it only while it is still upcoming.
	if m.RRule == "" {
		if start.Before(from) || !start.Before(until) {
			return nil, nil
		}
		return []model.Occurrence{occurrence(m, start, dur)}, nil
	}

	r, err := rrule.StrToRRule(m.RRule)
	if err != nil {
		return nil, err
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)

	starts := set.Between(from.In(loc), until.In(loc), true)
	if len(starts) > maxOccurrencesPerRule {
		appLog.Error("schedule: truncated occurrences", errors.New("cap reached"),
			"name", m.Name, "cap", maxOccurrencesPerRule)
		starts = starts[:maxOccurrencesPerRule]
	}

	occs := make([]model.Occurrence, 0, len(starts))
	for _, s := range starts {
		occs = append(occs, occurrence(m, s.In(loc), dur))
	}
	return occs, nil
}

func occurrence(m model.Meeting, start time.Time, dur time.Duration) model.Occurrence {
	return model.Occurrence{
		Name:     m.Name,
		Location: m.Location,
		Start:    start,
		End:      start.Add(dur),
	}
}
