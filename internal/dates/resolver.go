package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultZone is the IANA zone human-entered event dates are assumed to
	// be in when the build config does not pin one. Event authors write
	// wall-clock times for this zone; the resolver converts them to UTC.
	DefaultZone = "Asia/Kolkata"

	// UTCLayout is the ISO-8601 form emitted for resolved instants.
	UTCLayout = "2006-01-02T15:04:05Z"

	// unknownToken marks an intentionally undated event.
	unknownToken = "TBA"
)

// dateLayouts are tried in order against the part of the string before the
// first comma; first match wins.
var dateLayouts = []string{
	"2006-01-02",
	"2 January 2006",
	"2 Jan 2006",
}

var (
	// "1:20PM", "11:05 am"
	clockRe = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s?(AM|PM)`)
	// "3rd Hour", "10 hour"
	periodRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+Hour\b`)
)

// Resolver turns free-form event date strings into UTC instants.
type Resolver struct {
	loc *time.Location
}

// NewResolverIn builds a resolver with an explicit assumed zone.
func NewResolverIn(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{loc: loc}
}

// Resolve parses a raw date string into a UTC instant.
//
// The second return is false when the date is unknown: empty input, the "TBA"
// token (any case), or a string that matches none of the supported calendar
// formats. Unknown is a normal outcome, never an error.
//
// The calendar date is read from the prefix before the first comma; the whole
// string is then scanned for an embedded time of day ("1:20PM" or "3rd
// Hour"). A malformed time token falls back to midnight without failing the
// date.
func (r *Resolver) Resolve(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, unknownToken) {
		return time.Time{}, false
	}

	datePart := s
	if i := strings.IndexByte(s, ','); i >= 0 {
		datePart = strings.TrimSpace(s[:i])
	}

	var day time.Time
	matched := false
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, datePart); err == nil {
			day = t
			matched = true
			break
		}
	}
	if !matched {
		return time.Time{}, false
	}

	hour, minute := extractClock(s)
	local := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, r.loc)
	return local.UTC(), true
}

// Location returns the assumed source zone.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// FormatUTC renders an instant in the ISO-8601 "Z" form used for date_utc.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(UTCLayout)
}

// extractClock finds an embedded time of day in the raw string. It is best
// effort: anything that does not parse cleanly means midnight.
func extractClock(s string) (hour, minute int) {
	if m := clockRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if h >= 1 && h <= 12 && min <= 59 {
			if strings.EqualFold(m[3], "PM") {
				if h != 12 {
					h += 12
				}
			} else if h == 12 {
				h = 0
			}
			return h, min
		}
	}

	if m := periodRe.FindStringSubmatch(s); m != nil {
		if h, err := strconv.Atoi(m[1]); err == nil && h <= 23 {
			return h, 0
		}
	}

	return 0, 0
}
