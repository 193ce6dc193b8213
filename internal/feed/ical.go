package feed

import (
	"fmt"
	"net/url"
	"time"

	ics "github.com/arran4/golang-ical"

	"clubsite/internal/model"
)

// defaultEventDuration is assumed when an event's free-text duration does not
// parse as a Go duration.
const defaultEventDuration = 2 * time.Hour

// RenderCalendar produces the iCalendar export: one VEVENT per dated event in
// the given set (undated/TBA events have no instant to anchor to and are
// omitted) plus one VEVENT per expanded meeting occurrence.
func RenderCalendar(siteURL string, evs []*model.Event, occs []model.Occurrence, now time.Time) []byte {
	cal := ics.NewCalendar()
	cal.SetProductId("-//NeoTech Club//clubsite//EN")
	cal.SetMethod(ics.MethodPublish)

	host := uidHost(siteURL)

	for _, ev := range evs {
		if ev.Resolved == nil {
			continue
		}
		title := ev.Title
		if title == "" {
			title = "Untitled Event"
		}

		uid := Slug(title) + "-" + *ev.DateUTC + "@" + host
		e := cal.AddEvent(uid)
		e.SetDtStampTime(now.UTC())
		e.SetSummary(title)
		if ev.Description != "" {
			e.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			e.SetLocation(ev.Location)
		}
		e.SetStartAt(ev.Resolved.UTC())
		e.SetEndAt(ev.Resolved.UTC().Add(eventDuration(ev)))
	}

	for _, occ := range occs {
		uid := fmt.Sprintf("%s-%d@%s", Slug(occ.Name), occ.Start.Unix(), host)
		e := cal.AddEvent(uid)
		e.SetDtStampTime(now.UTC())
		e.SetSummary(occ.Name)
		if occ.Location != "" {
			e.SetLocation(occ.Location)
		}
		e.SetStartAt(occ.Start.UTC())
		e.SetEndAt(occ.End.UTC())
	}

	return []byte(cal.Serialize())
}

func eventDuration(ev *model.Event) time.Duration {
	if ev.Duration != "" {
		if d, err := time.ParseDuration(ev.Duration); err == nil && d > 0 {
			return d
		}
	}
	return defaultEventDuration
}

func uidHost(siteURL string) string {
	if u, err := url.Parse(siteURL); err == nil && u.Host != "" {
		return u.Host
	}
	return siteURL
}
