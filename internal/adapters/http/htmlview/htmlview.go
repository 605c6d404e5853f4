// Package htmlview renders the widget as HTML fragments for a host page.
//
// The fragments use the element ids and classes the host page's stylesheet
// targets: #markers-layer with span.marker, #events-list with li.event-item,
// #pitch-help, #add-event-btn and the hidden input#goal_events.
package htmlview

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/adapters/formfield"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/domain/view"
)

var funcs = template.FuncMap{
	"markerStyle": func(m view.Marker) template.CSS {
		return template.CSS(fmt.Sprintf("left: %g%%; top: %g%%;", m.X, m.Y))
	},
	"fieldID": func() string { return formfield.FieldID },
}

var templates = template.Must(template.New("htmlview").Funcs(funcs).Parse(`
{{- define "markers" -}}
<div id="markers-layer">{{range .}}<span class="marker marker-{{.Role}}" style="{{markerStyle .}}"></span>{{end}}</div>
{{- end -}}

{{- define "events" -}}
<ul id="events-list">
{{- range .Rows}}
<li class="event-item"><span>{{.Text}}</span> <button type="button" data-index="{{.Index}}" class="btn danger">{{$.Delete}}</button></li>
{{- end}}
</ul>
{{- end -}}

{{- define "controls" -}}
<p id="pitch-help" data-mode="{{.Controls.Mode}}" data-state="{{.Controls.State}}">{{.Controls.Help}}</p>
<div id="abp_subtype_wrap"{{if not .Controls.SubtypeVisible}} class="hidden"{{end}}>
<label for="abp_subtype">{{.SubtypeField}}</label>
<select id="abp_subtype" name="abp_subtype"><option value=""></option>{{range .Subtypes}}<option value="{{.}}">{{.}}</option>{{end}}</select>
</div>
<button type="button" id="add-event-btn" class="btn"{{if not .Controls.CommitEnabled}} disabled{{end}}>{{.Commit}}</button>
{{- end -}}

{{- define "hidden" -}}
<input type="hidden" id="{{fieldID}}" name="{{fieldID}}" value="{{.}}">
{{- end -}}

{{- define "page" -}}
<div class="pitch-widget">
<div id="pitch" class="pitch">{{template "markers" .Markers}}</div>
{{template "controls" .}}
{{template "events" .}}
{{template "hidden" .Hidden}}
</div>
{{- end -}}
`))

type eventsData struct {
	Rows   []view.Row
	Delete string
}

type controlsData struct {
	Controls     view.Controls
	SubtypeField string
	Subtypes     []string
	Commit       string
}

type pageData struct {
	controlsData
	Markers []view.Marker
	Rows    []view.Row
	Delete  string
	Hidden  string
}

// Renderer keeps the latest HTML of each target. It implements the widget's
// Renderer and FieldWriter so it can be plugged in directly.
type Renderer struct {
	labels view.Labels

	markers  []view.Marker
	rows     []view.Row
	controls view.Controls
	hidden   string

	markersHTML  string
	eventsHTML   string
	controlsHTML string
	hiddenHTML   string
	err          error
}

// New returns a renderer for the given labels. Every target starts empty.
func New(labels view.Labels) *Renderer {
	r := &Renderer{labels: labels}
	r.RenderMarkers(nil)
	r.RenderEvents(nil)
	r.RenderControls(view.Controls{})
	r.SetValue("[]")
	return r
}

func (r *Renderer) exec(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		r.err = errors.Wrapf(err, "render %s", name)
		return ""
	}
	return buf.String()
}

// RenderMarkers replaces the markers layer.
func (r *Renderer) RenderMarkers(markers []view.Marker) {
	r.markers = markers
	r.markersHTML = r.exec("markers", markers)
}

// RenderEvents replaces the event list.
func (r *Renderer) RenderEvents(rows []view.Row) {
	r.rows = rows
	r.eventsHTML = r.exec("events", eventsData{Rows: rows, Delete: r.labels.Delete})
}

// RenderControls replaces the help text, subtype selector and commit button.
func (r *Renderer) RenderControls(c view.Controls) {
	r.controls = c
	r.controlsHTML = r.exec("controls", r.controlsData())
}

// SetValue replaces the hidden input.
func (r *Renderer) SetValue(value string) {
	r.hidden = value
	r.hiddenHTML = r.exec("hidden", value)
}

func (r *Renderer) controlsData() controlsData {
	return controlsData{
		Controls:     r.controls,
		SubtypeField: r.labels.SubtypeField,
		Subtypes:     model.SetPieceSubtypes(),
		Commit:       r.labels.Commit,
	}
}

// Markers returns the markers layer HTML.
func (r *Renderer) Markers() string { return r.markersHTML }

// Events returns the event list HTML.
func (r *Renderer) Events() string { return r.eventsHTML }

// Controls returns the controls HTML.
func (r *Renderer) Controls() string { return r.controlsHTML }

// Hidden returns the hidden input HTML.
func (r *Renderer) Hidden() string { return r.hiddenHTML }

// Err returns the first template error, if any.
func (r *Renderer) Err() error { return r.err }

// Page renders every target into one widget fragment.
func (r *Renderer) Page() (string, error) {
	if r.err != nil {
		return "", r.err
	}
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "page", pageData{
		controlsData: r.controlsData(),
		Markers:      r.markers,
		Rows:         r.rows,
		Delete:       r.labels.Delete,
		Hidden:       r.hidden,
	})
	if err != nil {
		return "", errors.Wrap(err, "render page")
	}
	return buf.String(), nil
}

// RenderView renders a complete view snapshot as a page fragment.
func RenderView(v view.View, labels view.Labels) (string, error) {
	r := New(labels)
	r.RenderMarkers(v.Markers)
	r.RenderEvents(v.Rows)
	r.RenderControls(v.Controls)
	r.SetValue(v.Hidden)
	return r.Page()
}
