package feed

import (
	"encoding/xml"
	"strings"
	"time"

	"clubsite/internal/model"
)

// rfc822 is the RSS pubDate/lastBuildDate layout. All instants are UTC, so
// the numeric zone always renders as +0000.
const rfc822 = "Mon, 02 Jan 2006 15:04:05 +0000"

// Meta is the channel-level metadata for one feed.
type Meta struct {
	Title       string
	Description string
	Link        string // site base URL, no trailing slash
	SelfPath    string // absolute path of this feed on the site, e.g. "/events/index.xml"
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Description   string    `xml:"description"`
	Link          string    `xml:"link"`
	AtomLink      atomLink  `xml:"atom:link"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Description cdata   `xml:"description"`
	PubDate     string  `xml:"pubDate"`
	Link        string  `xml:"link"`
	GUID        rssGUID `xml:"guid"`
}

// cdata wraps the assembled HTML description body so embedded markup
// survives verbatim instead of being entity-escaped a second time.
type cdata struct {
	Body string `xml:",cdata"`
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// htmlEscaper escapes free text injected into the assembled HTML body.
// Elements outside the CDATA block are escaped by encoding/xml itself.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Render produces a complete RSS 2.0 document for the given events, in the
// order given (classification already sorted them). now is the feed
// generation instant: it becomes lastBuildDate and the pubDate fallback for
// events without a resolved date.
func Render(meta Meta, evs []*model.Event, now time.Time) ([]byte, error) {
	items := make([]rssItem, 0, len(evs))
	for _, ev := range evs {
		items = append(items, renderItem(meta, ev, now))
	}

	doc := rssDoc{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:       meta.Title,
			Description: meta.Description,
			Link:        meta.Link,
			AtomLink: atomLink{
				Href: meta.Link + meta.SelfPath,
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Language:      "en-us",
			LastBuildDate: now.UTC().Format(rfc822),
			Items:         items,
		},
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}

func renderItem(meta Meta, ev *model.Event, now time.Time) rssItem {
	title := ev.Title
	if title == "" {
		title = "Untitled Event"
	}
	location := ev.Location
	if location == "" {
		location = "TBD"
	}
	dateStr := ev.Date
	if dateStr == "" {
		dateStr = "TBD"
	}

	// Event description goes in verbatim (it may carry markup); everything
	// appended after it is escaped free text.
	var b strings.Builder
	b.WriteString(ev.Description)
	b.WriteString("<br/><br/><strong>Location:</strong> " + htmlEscaper.Replace(location))
	if ev.Duration != "" {
		b.WriteString("<br/><strong>Duration:</strong> " + htmlEscaper.Replace(ev.Duration))
	}
	b.WriteString("<br/><strong>Date:</strong> " + htmlEscaper.Replace(dateStr))
	if ev.SignupURL != "" {
		b.WriteString(`<br/><br/><a href="` + htmlEscaper.Replace(ev.SignupURL) + `">Sign Up Here</a>`)
	}
	if ev.InstructionsURL != "" {
		b.WriteString(`<br/><a href="` + htmlEscaper.Replace(ev.InstructionsURL) + `">View Instructions</a>`)
	}

	pubDate := now.UTC().Format(rfc822)
	if ev.Resolved != nil {
		pubDate = ev.Resolved.UTC().Format(rfc822)
	}

	return rssItem{
		Title:       title,
		Description: cdata{Body: b.String()},
		PubDate:     pubDate,
		Link:        meta.Link,
		GUID: rssGUID{
			IsPermaLink: "false",
			Value:       GUID(meta.Link, ev),
		},
	}
}

// GUID synthesizes the item identifier: site link plus a slug of the title
// and the resolved date (raw date string when unresolved). Two events with
// the same title and date collide; the feed accepts that.
func GUID(link string, ev *model.Event) string {
	title := ev.Title
	if title == "" {
		title = "Untitled Event"
	}
	datePart := ev.Date
	if ev.DateUTC != nil {
		datePart = *ev.DateUTC
	}
	return link + "/#" + Slug(title) + "-" + datePart
}

// Slug lower-cases a title and replaces spaces with hyphens.
func Slug(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "-"))
}
