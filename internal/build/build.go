package build

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"clubsite/internal/config"
	"clubsite/internal/dates"
	"clubsite/internal/events"
	"clubsite/internal/feed"
	appLog "clubsite/internal/log"
	"clubsite/internal/minify"
	"clubsite/internal/model"
	"clubsite/internal/schedule"
)

// Builder runs one full site build: convert content documents to JSON,
// re-classify events and emit their feeds, then minify/copy the rest of the
// tree into the output directory.
type Builder struct {
	cfg      *config.Config
	minifier *minify.Minifier
	resolver *dates.Resolver

	// mu serializes runs: a build is one sequential pass, and two passes
	// must never interleave on the same output directory.
	mu sync.Mutex
}

// docState collects what the content documents contribute to feed
// generation within a single run.
type docState struct {
	haveEvents bool
	current    []*model.Event
	past       []*model.Event
	meetings   []model.Meeting
}

func New(cfg *config.Config) *Builder {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		appLog.Error("timezone lookup failed, treating event times as UTC", err, "zone", cfg.Timezone)
		loc = time.UTC
	}
	return &Builder{
		cfg:      cfg,
		minifier: minify.New(),
		resolver: dates.NewResolverIn(loc),
	}
}

// Run executes a full build of srcDir with the current time as the
// current/past cut line.
func (b *Builder) Run(srcDir string) error {
	return b.RunAt(srcDir, time.Now().UTC())
}

// RunAt executes a full build with an explicit reference instant. The
// instant is captured once here and threaded through classification and feed
// rendering, so one run has a single consistent cut line.
func (b *Builder) RunAt(srcDir string, ref time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	appLog.Info("build starting", "src", srcDir, "out", b.cfg.OutputDir)

	outDir := filepath.Join(srcDir, b.cfg.OutputDir)
	if err := os.RemoveAll(outDir); err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	// Content documents first: their converted JSON and feeds land in the
	// output before the tree walk.
	state := &docState{}
	for _, name := range b.cfg.ContentFiles {
		path := filepath.Join(srcDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := b.convertDocument(path, outDir, ref, state); err != nil {
			appLog.Error("document conversion failed", err, "file", name)
			appLog.Fail("Failed to convert %s: %v", name, err)
		}
	}

	if state.haveEvents {
		b.writeFeeds(outDir, ref, state)
	}

	processed, err := b.processTree(srcDir, outDir)
	if err != nil {
		return err
	}

	appLog.Step("Build complete! Processed %d files", processed)
	return nil
}

// convertDocument converts one YAML content document to JSON. The events
// document is re-classified and date_utc-augmented on the way; the schedule
// document contributes meetings to the calendar export. Unknown top-level
// keys pass through untouched.
func (b *Builder) convertDocument(path, outDir string, ref time.Time, state *docState) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc == nil {
		doc = map[string]any{}
	}

	_, hasCurrent := doc["current_events"]
	_, hasPast := doc["past_events"]
	if hasCurrent || hasPast {
		var ed model.EventsDoc
		if err := yaml.Unmarshal(data, &ed); err != nil {
			return err
		}

		// Pair each typed event with the raw mapping it was decoded from,
		// so per-event keys outside the known schema survive the conversion.
		raw := make(map[*model.Event]map[string]any)
		collectRaw(doc["current_events"], ed.CurrentEvents, raw)
		collectRaw(doc["past_events"], ed.PastEvents, raw)

		all := make([]*model.Event, 0, len(ed.CurrentEvents)+len(ed.PastEvents))
		all = append(all, ed.CurrentEvents...)
		all = append(all, ed.PastEvents...)

		events.ResolveDates(b.resolver, all)
		current, past := events.Partition(all, ref)

		doc["current_events"] = passthrough(current, raw)
		doc["past_events"] = passthrough(past, raw)

		state.haveEvents = true
		state.current = current
		state.past = past
	}

	if _, ok := doc["meetings"]; ok {
		var sd struct {
			Meetings []model.Meeting `yaml:"meetings"`
		}
		if err := yaml.Unmarshal(data, &sd); err != nil {
			return err
		}
		state.meetings = append(state.meetings, sd.Meetings...)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	base := filepath.Base(path)
	jsonName := strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	outPath := filepath.Join(outDir, jsonName)
	if err := os.WriteFile(outPath, append(out, '\n'), 0o644); err != nil {
		return err
	}

	appLog.Step("Converted: %s → %s", base, jsonName)
	return nil
}

// collectRaw walks the untyped event list in step with its typed decode and
// records the source mapping of each event. Both views come from the same
// YAML sequence, so indexes line up; anything that is not a mapping is left
// without a raw counterpart.
func collectRaw(list any, evs []*model.Event, out map[*model.Event]map[string]any) {
	items, ok := list.([]any)
	if !ok {
		return
	}
	for i, item := range items {
		if i >= len(evs) {
			break
		}
		if m, ok := item.(map[string]any); ok {
			out[evs[i]] = m
		}
	}
}

// passthrough renders classified events as their original mappings with
// date_utc attached (null when unresolved). An event without a raw mapping
// falls back to its typed form.
func passthrough(evs []*model.Event, raw map[*model.Event]map[string]any) []any {
	out := make([]any, 0, len(evs))
	for _, ev := range evs {
		m, ok := raw[ev]
		if !ok {
			out = append(out, ev)
			continue
		}
		if ev.DateUTC != nil {
			m["date_utc"] = *ev.DateUTC
		} else {
			m["date_utc"] = nil
		}
		out = append(out, m)
	}
	return out
}

// writeFeeds emits the three RSS documents and the calendar export. Failures
// are reported per feed; a broken feed does not stop the rest of the build.
func (b *Builder) writeFeeds(outDir string, ref time.Time, state *docState) {
	currentMeta := feed.Meta{
		Title:       "NeoTech Club - Current Events",
		Description: "Upcoming events and activities at NeoTech Club @ GCC",
		Link:        b.cfg.SiteURL,
		SelfPath:    "/events/index.xml",
	}
	pastMeta := feed.Meta{
		Title:       "NeoTech Club - Past Events",
		Description: "Archive of past events and activities at NeoTech Club @ GCC",
		Link:        b.cfg.SiteURL,
		SelfPath:    "/events/past/index.xml",
	}

	if body, err := feed.Render(currentMeta, state.current, ref); err != nil {
		appLog.Error("rss render failed", err, "feed", "current")
		appLog.Fail("Failed to generate RSS: events/index.xml: %v", err)
	} else {
		// The primary feed and its /current/ alias are the same bytes.
		b.writeOutput(outDir, filepath.Join("events", "index.xml"), body, "Generated RSS")
		b.writeOutput(outDir, filepath.Join("events", "current", "index.xml"), body, "Copied RSS")
	}

	if body, err := feed.Render(pastMeta, state.past, ref); err != nil {
		appLog.Error("rss render failed", err, "feed", "past")
		appLog.Fail("Failed to generate RSS: events/past/index.xml: %v", err)
	} else {
		b.writeOutput(outDir, filepath.Join("events", "past", "index.xml"), body, "Generated RSS")
	}

	occs := schedule.Expand(state.meetings, b.resolver.Location(), ref)
	cal := feed.RenderCalendar(b.cfg.SiteURL, state.current, occs, ref)
	b.writeOutput(outDir, filepath.Join("events", "calendar.ics"), cal, "Generated calendar")
}

func (b *Builder) writeOutput(outDir, rel string, body []byte, verb string) {
	path := filepath.Join(outDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		appLog.Error("output mkdir failed", err, "path", path)
		appLog.Fail("Failed to write %s: %v", rel, err)
		return
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		appLog.Error("output write failed", err, "path", path)
		appLog.Fail("Failed to write %s: %v", rel, err)
		return
	}
	appLog.Step("%s: %s", verb, rel)
}

// processTree walks the source tree, skipping dotted directories and the
// output directory, and minifies or copies every non-excluded file.
func (b *Builder) processTree(srcDir, outDir string) (int, error) {
	processed := 0

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == srcDir {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || path == outDir {
				return filepath.SkipDir
			}
			return nil
		}

		rel, rerr := filepath.Rel(srcDir, path)
		if rerr != nil {
			return rerr
		}
		rel = filepath.ToSlash(rel)
		if ShouldExclude(rel, b.cfg.Exclude) {
			appLog.Debug("excluded", "file", rel)
			return nil
		}

		if perr := b.processFile(path, rel, outDir); perr != nil {
			appLog.Error("file processing failed", perr, "file", rel)
			appLog.Fail("Failed to process %s: %v", rel, perr)
			return nil
		}
		processed++
		return nil
	})

	return processed, err
}

// processFile minifies HTML/CSS/JS and copies anything else byte-for-byte.
// Minification failure falls back to the original content.
func (b *Builder) processFile(path, rel, outDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	outPath := filepath.Join(outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	verb := "Copied"
	switch {
	case strings.HasSuffix(rel, ".html"):
		data = b.minifyOrKeep(data, rel, b.minifier.HTML)
		verb = "Minified HTML"
	case strings.HasSuffix(rel, ".css"):
		data = b.minifyOrKeep(data, rel, b.minifier.CSS)
		verb = "Minified CSS"
	case strings.HasSuffix(rel, ".js") && !strings.Contains(rel, "node_modules"):
		data = b.minifyOrKeep(data, rel, b.minifier.JS)
		verb = "Minified JS"
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	appLog.Step("%s: %s", verb, rel)
	return nil
}

func (b *Builder) minifyOrKeep(data []byte, rel string, fn func([]byte) ([]byte, error)) []byte {
	out, err := fn(data)
	if err != nil {
		appLog.Error("minification failed, using original", err, "file", rel)
		return data
	}
	return out
}
