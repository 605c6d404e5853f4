package htmlview_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/adapters/http/htmlview"
	"github.com/okian/pitchlog/internal/domain/capture"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/domain/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderMarkers(t *testing.T) {
	r := htmlview.New(view.LabelsFor(view.Spanish))
	r.RenderMarkers([]view.Marker{
		{Role: view.RoleStart, X: 10, Y: 12.5},
		{Role: view.RoleEnd, X: 90, Y: 80},
	})
	require.NoError(t, r.Err())

	doc := parse(t, r.Markers())
	spans := doc.Find("#markers-layer span.marker")
	require.Equal(t, 2, spans.Length())

	assert.True(t, spans.Eq(0).HasClass("marker-start"))
	style, _ := spans.Eq(0).Attr("style")
	assert.Equal(t, "left: 10%; top: 12.5%;", style)
	assert.True(t, spans.Eq(1).HasClass("marker-end"))

	r.RenderMarkers(nil)
	assert.Equal(t, 0, parse(t, r.Markers()).Find("span.marker").Length())
}

func TestRenderEvents(t *testing.T) {
	labels := view.LabelsFor(view.Spanish)
	events := []model.Event{
		{Direction: model.DirectionFor, Minute: 3, PlayType: model.PlayOther, Start: model.Point{X: 1, Y: 2}},
		{Direction: model.DirectionAgainst, Minute: 40, PlayType: model.PlayOther, Start: model.Point{X: 5, Y: 6}},
	}
	r := htmlview.New(labels)
	r.RenderEvents(view.BuildRows(events, labels))

	doc := parse(t, r.Events())
	items := doc.Find("#events-list li.event-item")
	require.Equal(t, 2, items.Length())
	assert.Equal(t, "A favor · Min 3 · Otro · inicio (1.0, 2.0)", items.Eq(0).Find("span").Text())

	idx, ok := items.Eq(1).Find("button").Attr("data-index")
	require.True(t, ok)
	assert.Equal(t, "1", idx)
	assert.Equal(t, "Borrar", items.Eq(1).Find("button").Text())
}

func TestRenderControls(t *testing.T) {
	r := htmlview.New(view.LabelsFor(view.English))

	r.RenderControls(view.Controls{Mode: capture.TwoClick, State: capture.StartSet, Help: "Transition: click to set the end."})
	doc := parse(t, r.Controls())
	assert.Equal(t, "Transition: click to set the end.", doc.Find("#pitch-help").Text())
	mode, _ := doc.Find("#pitch-help").Attr("data-mode")
	assert.Equal(t, "two_click", mode)
	_, disabled := doc.Find("#add-event-btn").Attr("disabled")
	assert.True(t, disabled)
	assert.True(t, doc.Find("#abp_subtype_wrap").HasClass("hidden"))

	r.RenderControls(view.Controls{CommitEnabled: true, SubtypeVisible: true})
	doc = parse(t, r.Controls())
	_, disabled = doc.Find("#add-event-btn").Attr("disabled")
	assert.False(t, disabled)
	assert.False(t, doc.Find("#abp_subtype_wrap").HasClass("hidden"))
	assert.Equal(t, len(model.SetPieceSubtypes())+1, doc.Find("#abp_subtype option").Length())
}

func TestHiddenFieldEscaping(t *testing.T) {
	r := htmlview.New(view.LabelsFor(view.Spanish))
	value := `[{"for_or_against":"for","play_type":"<script>"}]`
	r.SetValue(value)

	assert.NotContains(t, r.Hidden(), "<script>")
	got, err := htmlview.ExtractHidden(strings.NewReader(r.Hidden()))
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestRenderView(t *testing.T) {
	labels := view.LabelsFor(view.Spanish)
	start := model.Point{X: 30, Y: 30}
	v := view.View{
		Markers:  view.BuildMarkers(capture.Pending{Start: &start}),
		Controls: view.Controls{Help: labels.HelpSingle, CommitEnabled: true},
		Hidden:   "[]",
	}

	page, err := htmlview.RenderView(v, labels)
	require.NoError(t, err)

	doc := parse(t, page)
	assert.Equal(t, 1, doc.Find("#pitch #markers-layer span.marker-start").Length())
	assert.Equal(t, labels.HelpSingle, doc.Find("#pitch-help").Text())
	assert.Equal(t, 0, doc.Find("li.event-item").Length())

	hidden, err := htmlview.ExtractHidden(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, "[]", hidden)
}

func TestExtractHiddenMissing(t *testing.T) {
	_, err := htmlview.ExtractHidden(strings.NewReader(`<html><body><form></form></body></html>`))
	assert.True(t, errors.Is(err, htmlview.ErrNoHiddenField))
}
