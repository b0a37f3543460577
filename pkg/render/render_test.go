package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upenn-libraries/libhours/internal/utils/ptr"
	"github.com/upenn-libraries/libhours/pkg/document/htmldoc"
	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/hours"
	"github.com/upenn-libraries/libhours/pkg/logging"
	"github.com/upenn-libraries/libhours/pkg/reconciler"
	"github.com/upenn-libraries/libhours/pkg/registry"
)

var today = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.Local)

func clock() time.Time { return today }

func mustRegistry(t *testing.T, locs ...registry.LocationConfig) *registry.Registry {
	t.Helper()
	reg, err := registry.New(locs)
	require.NoError(t, err)
	return reg
}

func loc(key string, lid int, cal string) registry.LocationConfig {
	return registry.LocationConfig{Key: key, LID: ptr.Int(lid), CalendarURL: cal}
}

func renderString(t *testing.T, r *Renderer, src string) (string, *Report) {
	t.Helper()
	doc, err := htmldoc.ParseString(src)
	require.NoError(t, err)
	report, err := r.Render(context.Background(), doc)
	require.NoError(t, err)
	return doc.String(), report
}

func TestSingleLocationFilled(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "u1"))
	reconciler.Reconcile(context.Background(), reg, []hours.Record{
		{RemoteID: 1, Name: "Lib A", Rendered: "9am-5pm", URL: "u2"},
	})

	out, report := renderString(t, New(reg, WithClock(clock)), `<div class="libhours-a"></div>`)

	assert.Equal(t, `<div class="libhours-a-filled"><a href="u1">Hours</a>, Oct. 19: 9am-5pm</div>`, out)
	require.Len(t, report.Placeholders, 1)
	assert.Equal(t, OutcomeFilled, report.Placeholders[0].Outcome)
	assert.Equal(t, "Oct. 19", report.Date)
	assert.Empty(t, report.Diagnostics)
}

func TestSingleLocationKeepsExistingContent(t *testing.T) {
	reg := mustRegistry(t, loc("dental", 5, "https://cal/dental"))
	reconciler.Reconcile(context.Background(), reg, []hours.Record{
		{RemoteID: 5, Name: "Dental", Rendered: "8am - 12am"},
	})

	out, _ := renderString(t, New(reg, WithClock(clock)), `<p class="libhours-dental">Dental Library </p>`)

	assert.Equal(t, `<p class="libhours-dental-filled">Dental Library <a href="https://cal/dental">Hours</a>, Oct. 19: 8am - 12am</p>`, out)
}

func TestUnknownKey(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "u1"))
	testLogger := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), testLogger.Logger)

	doc, err := htmldoc.ParseString(`<span class="libhours-nowhere"></span>`)
	require.NoError(t, err)
	report, err := New(reg, WithClock(clock)).Render(ctx, doc)
	require.NoError(t, err)

	assert.Equal(t, `<span class="libhours-nowhere-filled">ERROR: Unknown library name &#39;nowhere&#39;.</span>`, doc.String())
	require.Len(t, report.Placeholders, 1)
	assert.Equal(t, OutcomeUnknownKey, report.Placeholders[0].Outcome)
	assert.True(t, errors.IsNotFound(report.Placeholders[0].Err))
	assert.Equal(t, 1, report.Count(UnknownKey))
	testLogger.AssertContains(t, "Unknown library name 'nowhere'")
}

func TestUnresolvedFallback(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "u1"))

	out, report := renderString(t, New(reg, WithClock(clock)), `<div class="libhours-a"></div>`)

	assert.Equal(t, `<div class="libhours-a-filled"><a href="u1">Hours</a>, Oct. 19: hours unavailable</div>`, out)
	assert.Equal(t, OutcomeUnresolved, report.Placeholders[0].Outcome)
	assert.True(t, errors.IsUnresolved(report.Placeholders[0].Err))
	assert.Equal(t, 1, report.Count(UnresolvedEntry))
}

func TestManualEntry(t *testing.T) {
	reg := mustRegistry(t, registry.LocationConfig{
		Key:         "law",
		CalendarURL: "https://law/hours",
		Manual:      &registry.ManualHours{Name: "Biddle Law", Hours: "8am - 11pm"},
	})

	out, _ := renderString(t, New(reg, WithClock(clock)), `<div class="libhours-law"></div>`)
	assert.Equal(t, `<div class="libhours-law-filled"><a href="https://law/hours">Hours</a>, Oct. 19: 8am - 11pm</div>`, out)
}

func TestRemoteHoursMarkupIsKept(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "u1"), loc("b", 2, "u2"))
	reconciler.Reconcile(context.Background(), reg, []hours.Record{
		{RemoteID: 1, Name: "A", Rendered: "9am &ndash; <b>5pm</b>"},
		{RemoteID: 2, Name: "<i>B</i>", Rendered: "Closed"},
	})

	doc, err := htmldoc.ParseString(`<div class="libhours-a"></div><div class="libhours-chart"></div>`)
	require.NoError(t, err)
	_, err = New(reg, WithClock(clock), WithChart([]int{2})).Render(context.Background(), doc)
	require.NoError(t, err)

	el := doc.Query("libhours-a-filled")
	require.Len(t, el, 1)
	assert.Equal(t, "Hours, Oct. 19: 9am \u2013 5pm", el[0].Text())
	require.Len(t, el[0].Children(), 2)
	assert.Equal(t, "5pm", el[0].Children()[1].Text())

	out := doc.String()
	assert.Contains(t, out, `>&lt;i&gt;B&lt;/i&gt;</a>`)
}

func TestChartDefinitionOrder(t *testing.T) {
	reg := mustRegistry(t,
		loc("d", 4, "cal-d"),
		loc("c", 3, "cal-c"),
		loc("b", 2, "cal-b"),
		loc("a", 1, "cal-a"),
	)
	reconciler.Reconcile(context.Background(), reg, []hours.Record{
		{RemoteID: 1, Name: "A", Rendered: "1", URL: "detail-a"},
		{RemoteID: 2, Name: "B", Rendered: "2", URL: "detail-b"},
		{RemoteID: 3, Name: "C", Rendered: "3", URL: "detail-c"},
		{RemoteID: 4, Name: "D", Rendered: "4", URL: "detail-d"},
	})
	r := New(reg, WithClock(clock), WithChart([]int{1, 2, 3}), WithMoreInfoURL("http://more"))

	doc, err := htmldoc.ParseString(`<div class="libhours-chart"></div>`)
	require.NoError(t, err)
	report, err := r.Render(context.Background(), doc)
	require.NoError(t, err)

	require.Len(t, report.Placeholders, 1)
	assert.Equal(t, OutcomeChart, report.Placeholders[0].Outcome)
	assert.Equal(t, 3, report.Placeholders[0].Entries)

	container, ok := doc.ByID(ContainerID)
	require.True(t, ok)
	assert.True(t, container.Visible())
	assert.Empty(t, container.Attr("style"))

	cols := container.Children()
	require.Len(t, cols, 2)
	assert.Equal(t, "homeul left", cols[0].Class())
	assert.Equal(t, "homeul right", cols[1].Class())

	left := cols[0].Children()
	right := cols[1].Children()
	require.Len(t, left, 2)
	require.Len(t, right, 2)

	assert.Equal(t, "even", left[0].Class())
	assert.Equal(t, "odd", left[1].Class())
	assert.Equal(t, "even", right[0].Class())
	assert.Equal(t, "morehoursinfo odd", right[1].Class())

	assert.Equal(t, "C\u00a0|\u00a0hours: 3", left[0].Text())
	assert.Equal(t, "B\u00a0|\u00a0hours: 2", left[1].Text())
	assert.Equal(t, "A\u00a0|\u00a0hours: 1", right[0].Text())
	assert.Equal(t, "more info...", right[1].Text())

	links := left[0].Children()
	require.Len(t, links, 3)
	assert.Equal(t, "detail-c", links[0].Attr("href"))
	assert.Equal(t, "libhours-vertical-bar", links[1].Class())
	assert.Equal(t, "hours", links[2].Class())
	assert.Equal(t, "cal-c", links[2].Attr("href"))
	assert.Equal(t, "http://more", right[1].Children()[0].Attr("href"))

	assert.NotContains(t, doc.String(), "libhours-chart")
}

func TestChartDisplayNameOverride(t *testing.T) {
	cfg := loc("a", 1, "cal-a")
	cfg.DisplayName = "Main Library"
	reg := mustRegistry(t, cfg)
	reconciler.Reconcile(context.Background(), reg, []hours.Record{{RemoteID: 1, Name: "Remote", Rendered: "x", URL: "d"}})

	entries := New(reg, WithChart([]int{1})).ChartEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Main Library", entries[0].DisplayName)
	assert.Equal(t, "d", entries[0].DetailURL)
	assert.True(t, entries[0].Resolved)
}

func TestChartEmptyMembership(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "cal-a"))

	out, report := renderString(t, New(reg, WithClock(clock)), `<div class="libhours-chart"></div>`)

	assert.Equal(t, `<div id="homepagehours"><ul class="homeul left"></ul></div>`, out)
	assert.Equal(t, 0, report.Placeholders[0].Entries)
}

func TestFetchFailureScenario(t *testing.T) {
	reg := mustRegistry(t,
		loc("a", 1, "cal-a"),
		loc("b", 2, "cal-b"),
	)
	// Nothing reconciled: every entry is unresolved.
	out, report := renderString(t, New(reg, WithClock(clock), WithChart([]int{1, 2})),
		`<div class="libhours-a"></div><div class="libhours-chart"></div><div class="libhours-b"></div>`)

	assert.Contains(t, out, `<div class="libhours-a-filled"><a href="cal-a">Hours</a>, Oct. 19: hours unavailable</div>`)
	assert.Contains(t, out, `<div class="libhours-b-filled"><a href="cal-b">Hours</a>, Oct. 19: hours unavailable</div>`)

	doc, err := htmldoc.ParseString(out)
	require.NoError(t, err)
	rows := doc.Query("even")
	require.Len(t, rows, 2)
	assert.Equal(t, "a\u00a0|\u00a0hours: hours unavailable", rows[0].Text())
	assert.Equal(t, "cal-a", rows[0].Children()[0].Attr("href"))

	outcomes := report.Outcomes()
	assert.Equal(t, 2, outcomes[OutcomeUnresolved])
	assert.Equal(t, 1, outcomes[OutcomeChart])
	assert.Equal(t, 4, report.Count(UnresolvedEntry))
}

func TestRenderIsIdempotent(t *testing.T) {
	reg := mustRegistry(t,
		loc("a", 1, "cal-a"),
		loc("b", 2, "cal-b"),
		loc("c", 3, "cal-c"),
	)
	reconciler.Reconcile(context.Background(), reg, []hours.Record{
		{RemoteID: 1, Name: "A", Rendered: "9-5", URL: "da"},
		{RemoteID: 3, Name: "C", Rendered: "10-4", URL: "dc"},
	})
	r := New(reg, WithClock(clock), WithChart([]int{1, 2, 3}))

	src := `<div class="libhours-chart"></div>
<p class="intro libhours-a">A: </p>
<span class="libhours-a"></span>
<span class="libhours-zzz"></span>
<span class="libhours-b"></span>
<span class="libhours-c-filled">done</span>`

	once, _ := renderString(t, r, src)
	twice, second := renderString(t, r, once)
	assert.Equal(t, once, twice)

	for _, p := range second.Placeholders {
		assert.Equal(t, OutcomeSkipped, p.Outcome, p.Marker)
	}
	assert.Equal(t, 1, strings.Count(once, `id="homepagehours"`))
}

func TestMultipleCharts(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "cal-a"))
	out, report := renderString(t, New(reg, WithChart([]int{1})),
		`<div class="libhours-chart"></div><div class="libhours-chart"></div>`)

	assert.Equal(t, 2, strings.Count(out, `id="homepagehours"`))
	assert.Equal(t, 1, report.Count(DuplicateChart))

	again, _ := renderString(t, New(reg, WithChart([]int{1})), out)
	assert.Equal(t, out, again)
}

func TestInvalidMarker(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "cal-a"))
	out, report := renderString(t, New(reg), `<div class="libhours-"></div><div class="libhours--x"></div>`)

	assert.Equal(t, `<div class="libhours-"></div><div class="libhours--x"></div>`, out)
	assert.Equal(t, 2, report.Outcomes()[OutcomeInvalid])
	assert.Equal(t, 2, report.Count(InvalidMarker))
}

func TestCustomNamespace(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "cal-a"))
	out, _ := renderString(t, New(reg, WithClock(clock), WithNamespace("hrs")),
		`<div class="hrs-a"></div><div class="libhours-a"></div>`)

	assert.Equal(t, `<div class="hrs-a-filled"><a href="cal-a">Hours</a>, Oct. 19: hours unavailable</div><div class="libhours-a"></div>`, out)
}

func TestRenderRequiresDocument(t *testing.T) {
	_, err := New(mustRegistry(t, loc("a", 1, "u"))).Render(context.Background(), nil)
	assert.True(t, errors.IsValidationError(err))

	_, err = New(nil).Render(context.Background(), &fakeDoc{})
	assert.True(t, errors.IsValidationError(err))
}

func TestElementFailuresAreIsolated(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "cal-a"), loc("b", 2, "cal-b"))

	broken := newFakeElement("libhours-a")
	broken.failAppend = errors.New("read-only")
	chart := newFakeElement("libhours-chart")
	chart.failReplace = errors.New("detached")
	ok := newFakeElement("libhours-b")

	doc := &fakeDoc{elements: []*fakeElement{broken, chart, ok}}
	report, err := New(reg, WithClock(clock)).Render(context.Background(), doc)
	require.NoError(t, err)

	require.Len(t, report.Placeholders, 3)
	assert.Equal(t, OutcomeFailed, report.Placeholders[0].Outcome)
	assert.Equal(t, OutcomeFailed, report.Placeholders[1].Outcome)
	assert.Equal(t, OutcomeUnresolved, report.Placeholders[2].Outcome)
	assert.True(t, report.Failed())
	assert.Equal(t, 2, report.Count(ElementFailure))

	assert.Equal(t, []string{"libhours-a"}, broken.classes)
	assert.Equal(t, []string{"libhours-b-filled"}, ok.classes)
	require.Len(t, ok.content, 1)
	assert.Equal(t, HoursLine("cal-b", "Oct. 19", UnavailableHours), ok.content[0])
}

func TestFailedMarkLeavesElementEmpty(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "cal-a"))
	el := newFakeElement("libhours-a")
	el.failMark = errors.New("class is read-only")

	r := New(reg, WithClock(clock))
	for i := 0; i < 2; i++ {
		report, err := r.Render(context.Background(), &fakeDoc{elements: []*fakeElement{el}})
		require.NoError(t, err)
		require.Len(t, report.Placeholders, 1)
		assert.Equal(t, OutcomeFailed, report.Placeholders[0].Outcome)
	}

	assert.Empty(t, el.content)
	assert.Equal(t, []string{"libhours-a"}, el.classes)
}

func TestChartHiddenWhileBuilding(t *testing.T) {
	reg := mustRegistry(t, loc("a", 1, "cal-a"))
	chart := newFakeElement("libhours-chart")
	doc := &fakeDoc{elements: []*fakeElement{chart}}

	_, err := New(reg, WithChart([]int{1})).Render(context.Background(), doc)
	require.NoError(t, err)

	require.Equal(t, []string{Container}, chart.replaced)
	container := chart.children[0]
	assert.Equal(t, []bool{false, true}, container.visible)

	list := container.children[0]
	require.Len(t, list.replaced, 1)
	assert.True(t, strings.HasPrefix(list.replaced[0], `<ul class="homeul left"><li class="even">`))
}
