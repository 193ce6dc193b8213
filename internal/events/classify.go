package events

import (
	"sort"
	"time"

	"clubsite/internal/dates"
	"clubsite/internal/model"
)

// ResolveDates attaches DateUTC/Resolved to every event in place. Events are
// independent; resolution order does not matter.
func ResolveDates(r *dates.Resolver, evs []*model.Event) {
	for _, ev := range evs {
		t, ok := r.Resolve(ev.Date)
		if !ok {
			ev.DateUTC = nil
			ev.Resolved = nil
			continue
		}
		utc := dates.FormatUTC(t)
		inst := t
		ev.DateUTC = &utc
		ev.Resolved = &inst
	}
}

// Partition splits events into current and past around the single reference
// instant ref, then sorts each side.
//
// An event with no resolved date is always current: unknown and TBA dates
// never expire. A resolved date strictly before ref is past; anything else
// (ongoing or future) stays current. Every event lands in exactly one side.
//
// Current events sort ascending by date with undated events last; past events
// sort descending (most recent first), undated last as well so the order is
// total even though undated events cannot normally reach the past side.
func Partition(all []*model.Event, ref time.Time) (current, past []*model.Event) {
	current = make([]*model.Event, 0, len(all))
	past = make([]*model.Event, 0)

	for _, ev := range all {
		if ev.Resolved != nil && ev.Resolved.Before(ref) {
			past = append(past, ev)
		} else {
			current = append(current, ev)
		}
	}

	sort.SliceStable(current, func(i, j int) bool {
		ti, tj := current[i].Resolved, current[j].Resolved
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.Before(*tj)
	})

	sort.SliceStable(past, func(i, j int) bool {
		ti, tj := past[i].Resolved, past[j].Resolved
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return tj.Before(*ti)
	})

	return current, past
}
