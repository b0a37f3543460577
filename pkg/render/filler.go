package render

import (
	"context"

	"golang.org/x/net/html"

	"github.com/upenn-libraries/libhours/pkg/errors"
	"github.com/upenn-libraries/libhours/pkg/logging"
)

// fill appends the hours line for a single-location placeholder and marks
// it filled. Unknown keys get a visible error and are marked as well so a
// later pass leaves them alone.
func (p *pass) fill(ctx context.Context, ph Placeholder) Result {
	key := ph.Marker.Token
	ctx = logging.WithLocation(ctx, key)
	logger := logging.FromContext(ctx)

	var (
		markup  string
		outcome = OutcomeFilled
		resErr  error
	)

	entry, ok := p.registry.Lookup(key)
	switch {
	case !ok:
		text := UnknownKeyText(key)
		resErr = errors.NewNotFoundError("location", key)
		logger.Error().Msg(text)
		p.report.Add(Diagnostic{Kind: UnknownKey, Key: key, Message: text})
		markup = html.EscapeString(text)
		outcome = OutcomeUnknownKey
	default:
		hoursText := UnavailableHours
		if res, resolved := entry.Resolved(); resolved {
			hoursText = res.HoursText
		} else {
			resErr = &errors.UnresolvedError{Key: key, RemoteID: entry.LID()}
			logger.Warn().Err(resErr).Msg("Rendering unavailable hours")
			p.report.Add(Diagnostic{Kind: UnresolvedEntry, Key: key, RemoteID: entry.LID(), Message: resErr.Error()})
			outcome = OutcomeUnresolved
		}
		markup = HoursLine(entry.CalendarURL, p.date, hoursText)
	}

	// Mark before appending: an element must never hold hours while its
	// marker still asks for a fill.
	filled := ph.Marker.MarkFilled().String()
	if err := ph.Element.SetMarker(ph.Class, filled); err != nil {
		return p.failed(ctx, ph, "mark", err)
	}
	if err := ph.Element.Append(markup); err != nil {
		if undo := ph.Element.SetMarker(filled, ph.Class); undo != nil {
			logger.Warn().Err(undo).Str("marker", filled).Msg("Could not restore marker")
		}
		return p.failed(ctx, ph, "append", err)
	}

	return Result{Marker: ph.Class, Token: key, Outcome: outcome, Err: resErr}
}
