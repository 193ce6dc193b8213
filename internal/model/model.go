package model

import "time"

// Event is one scheduled activity record from the events document.
//
// The Date field holds whatever the author typed ("2025-01-10",
// "10 October 2025, Friday (1:20PM)", "TBA", ...). DateUTC is derived from it
// by the date resolver and is null in the JSON output whenever the raw string
// could not be resolved to an instant.
type Event struct {
	Title           string `yaml:"title,omitempty" json:"title,omitempty"`
	Description     string `yaml:"description,omitempty" json:"description,omitempty"`
	Location        string `yaml:"location,omitempty" json:"location,omitempty"`
	Duration        string `yaml:"duration,omitempty" json:"duration,omitempty"`
	Date            string `yaml:"date,omitempty" json:"date,omitempty"`
	SignupURL       string `yaml:"signup_url,omitempty" json:"signup_url,omitempty"`
	InstructionsURL string `yaml:"instructions_url,omitempty" json:"instructions_url,omitempty"`

	// DateUTC is the resolved ISO-8601 UTC timestamp ("...Z"), or null.
	DateUTC *string `yaml:"date_utc,omitempty" json:"date_utc"`

	// Resolved is the parsed instant behind DateUTC. It exists so that
	// classification and sorting do not re-parse the string; it is never
	// serialized.
	Resolved *time.Time `yaml:"-" json:"-"`
}

// EventsDoc is the typed view of the events document. Additional top-level
// keys of the source document are carried through the build untouched; only
// these two lists are re-classified.
type EventsDoc struct {
	CurrentEvents []*Event `yaml:"current_events" json:"current_events"`
	PastEvents    []*Event `yaml:"past_events" json:"past_events"`
}

// Meeting is a recurring club meeting declared in the schedule document.
type Meeting struct {
	Name     string `yaml:"name" json:"name"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`

	// Start is the first occurrence, "2006-01-02 15:04" in the assumed
	// source timezone.
	Start string `yaml:"start" json:"start"`

	// Duration is a Go duration string ("1h30m"). Empty means one hour.
	Duration string `yaml:"duration,omitempty" json:"duration,omitempty"`

	// RRule is an iCalendar recurrence rule ("FREQ=WEEKLY;BYDAY=FR").
	// Empty means the meeting happens exactly once, at Start.
	RRule string `yaml:"rrule,omitempty" json:"rrule,omitempty"`
}

// Occurrence is a single concrete instance of a Meeting after recurrence
// expansion, in the assumed source timezone.
type Occurrence struct {
	Name     string
	Location string
	Start    time.Time
	End      time.Time
}
