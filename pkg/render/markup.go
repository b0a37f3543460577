package render

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/upenn-libraries/libhours/pkg/registry"
)

// Literal markup shared with existing stylesheets.
const (
	// Container replaces a chart placeholder.
	Container = `<div id="homepagehours"><ul class="homeul left"></ul></div>`

	// ContainerID is the id of the chart container.
	ContainerID = "homepagehours"

	separatorMarkup = `<span class="libhours-vertical-bar">&#160;|&#160;</span>`

	moreInfoClass = "morehoursinfo"
	moreInfoLabel = "more info..."
)

// UnavailableHours is shown in place of hours a location has no data for.
const UnavailableHours = registry.HoursPrefix + "hours unavailable"

// HoursLine renders a filled single-location line:
// <a href="calendarURL">Hours</a>, <date><hoursText>.
// hoursText is markup as LibCal renders it and is not escaped.
func HoursLine(calendarURL, date, hoursText string) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(calendarURL))
	b.WriteString(`">Hours</a>, `)
	b.WriteString(html.EscapeString(date))
	b.WriteString(hoursText)
	return b.String()
}

// UnknownKeyText is the visible error for a placeholder whose key is not registered.
func UnknownKeyText(key string) string {
	return "ERROR: Unknown library name '" + key + "'."
}

// ChartItem renders one chart row. An empty class leaves the row unstyled.
// Names and URLs are escaped, the hours text is kept as markup.
func ChartItem(e ChartEntry, class string) string {
	var b strings.Builder
	writeItemOpen(&b, class)
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(e.DetailURL))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(e.DisplayName))
	b.WriteString(`</a>`)
	b.WriteString(separatorMarkup)
	b.WriteString(`<a class="hours" href="`)
	b.WriteString(html.EscapeString(e.CalendarURL))
	b.WriteString(`">hours</a>`)
	b.WriteString(e.HoursText)
	b.WriteString(`</li>`)
	return b.String()
}

// ColumnsMarkup renders the final two-column chart with the trailing
// "more info" row in the right column.
func ColumnsMarkup(cols Columns[ChartEntry], moreInfoURL string) string {
	var b strings.Builder
	b.WriteString(`<ul class="homeul left">`)
	for i, e := range cols.Left {
		b.WriteString(ChartItem(e, RowClass(i+1)))
	}
	b.WriteString(`</ul><ul class="homeul right">`)
	for i, e := range cols.Right {
		b.WriteString(ChartItem(e, RowClass(i+1)))
	}
	writeItemOpen(&b, moreInfoClass+" "+RowClass(len(cols.Right)+1))
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(moreInfoURL))
	b.WriteString(`">`)
	b.WriteString(moreInfoLabel)
	b.WriteString(`</a></li></ul>`)
	return b.String()
}

func writeItemOpen(b *strings.Builder, class string) {
	if class == "" {
		b.WriteString(`<li>`)
		return
	}
	b.WriteString(`<li class="`)
	b.WriteString(class)
	b.WriteString(`">`)
}
