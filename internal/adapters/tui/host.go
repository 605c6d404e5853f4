// Package tui hosts the widget in a terminal. The pitch is drawn in character
// cells and mouse clicks on it are the pointer events; the side panel holds
// the form controls, the help line and the committed event list.
package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	service "github.com/okian/pitchlog/internal/app"
	"github.com/okian/pitchlog/internal/domain/capture"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/domain/view"
	"github.com/okian/pitchlog/pkg/logger"
)

const (
	defaultPitchWidth  = 60
	defaultPitchHeight = 21
	minPitchWidth      = 10
	minPitchHeight     = 4
	maxMinuteDigits    = 5
	panelGap           = 3
	deleteControl      = "[x] "
)

type focusField int

const (
	focusDirection focusField = iota
	focusMinute
	focusPlayType
	focusSubtype
	focusCommit
	focusList
	focusCount
)

var (
	styleDefault  = tcell.StyleDefault
	stylePitch    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStart    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true)
	styleEnd      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
	styleFocus    = tcell.StyleDefault.Reverse(true)
	styleDisabled = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHelp     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleDelete   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleAlert    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorMaroon)
	styleMuted    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Host draws the widget on a tcell screen and translates terminal input
// into widget operations. It implements the widget's Renderer and
// FieldWriter.
type Host struct {
	screen tcell.Screen
	widget *service.Widget
	logger logger.Logger

	pitchWidth  int
	pitchHeight int

	// Last state pushed by the widget
	markers  []view.Marker
	rows     []view.Row
	controls view.Controls
	hidden   string

	focus      focusField
	selected   int
	alert      string
	buttonDown bool
}

// Option applies a configuration option to the Host.
type Option func(*Host)

// WithLogger sets a custom logger for the host.
func WithLogger(l logger.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithPitchSize sets the preferred pitch interior size in cells. The pitch
// shrinks to fit smaller terminals.
func WithPitchSize(width, height int) Option {
	return func(h *Host) {
		if width >= minPitchWidth {
			h.pitchWidth = width
		}
		if height >= minPitchHeight {
			h.pitchHeight = height
		}
	}
}

// New creates a host on an initialized screen. Bind a widget before Run.
func New(screen tcell.Screen, opts ...Option) *Host {
	h := &Host{
		screen:      screen,
		logger:      logger.Nop(),
		pitchWidth:  defaultPitchWidth,
		pitchHeight: defaultPitchHeight,
		hidden:      "[]",
		focus:       focusMinute,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Bind attaches the widget the host drives.
func (h *Host) Bind(w *service.Widget) {
	h.widget = w
}

// RenderMarkers implements service.Renderer.
func (h *Host) RenderMarkers(markers []view.Marker) { h.markers = markers }

// RenderEvents implements service.Renderer.
func (h *Host) RenderEvents(rows []view.Row) {
	h.rows = rows
	if h.selected >= len(rows) {
		h.selected = len(rows) - 1
	}
	if h.selected < 0 {
		h.selected = 0
	}
}

// RenderControls implements service.Renderer.
func (h *Host) RenderControls(c view.Controls) {
	h.controls = c
	if !c.SubtypeVisible && h.focus == focusSubtype {
		h.focus = focusPlayType
	}
}

// SetValue implements service.FieldWriter.
func (h *Host) SetValue(value string) { h.hidden = value }

// Alert returns the message of the open alert, or "" when none is open.
func (h *Host) Alert() string { return h.alert }

// Run draws the widget and processes terminal events until the user quits or
// ctx is cancelled. The caller owns screen.Init and screen.Fini.
func (h *Host) Run(ctx context.Context) error {
	if h.widget == nil {
		return ErrNotBound
	}
	h.screen.EnableMouse()
	h.Draw(ctx)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.HandleEvent(ctx, ev) {
				return nil
			}
			h.Draw(ctx)
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user quits.
func (h *Host) HandleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventMouse:
		h.handleMouse(ctx, ev)
	case *tcell.EventKey:
		return h.handleKey(ctx, ev)
	}
	return true
}

func (h *Host) handleMouse(ctx context.Context, ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	edge := pressed && !h.buttonDown
	h.buttonDown = pressed
	if !edge || h.alert != "" {
		return
	}

	x, y := ev.Position()
	lay := h.layout()
	switch {
	case lay.inPitchBox(x, y):
		// Cell centres, so border cells clamp to exactly 0 or 100.
		_, err := h.widget.Click(ctx, float64(x)+0.5, float64(y)+0.5, lay.pitch)
		if err != nil {
			h.logger.Warn(ctx, "pitch click ignored", logger.Error(err))
		}
	case x >= lay.panelX:
		h.clickPanel(ctx, lay, x, y)
	}
}

func (h *Host) clickPanel(ctx context.Context, lay layout, x, y int) {
	switch y {
	case lay.rowDirection:
		h.focus = focusDirection
		h.cycle(ctx, 1)
	case lay.rowMinute:
		h.focus = focusMinute
	case lay.rowPlayType:
		h.focus = focusPlayType
		h.cycle(ctx, 1)
	case lay.rowSubtype:
		if h.controls.SubtypeVisible {
			h.focus = focusSubtype
			h.cycle(ctx, 1)
		}
	case lay.rowCommit:
		if h.controls.CommitEnabled {
			h.focus = focusCommit
			h.commit(ctx)
		}
	default:
		i := y - lay.rowList
		if i < 0 || i >= len(h.rows) {
			return
		}
		h.focus = focusList
		h.selected = i
		if x < lay.panelX+len(deleteControl)-1 {
			h.delete(ctx, i)
		}
	}
}

func (h *Host) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if h.alert != "" {
		// The alert is modal: only dismissal gets through.
		if ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyEscape {
			h.alert = ""
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyTab:
		h.moveFocus(1)
	case tcell.KeyBacktab:
		h.moveFocus(-1)
	case tcell.KeyLeft:
		h.cycle(ctx, -1)
	case tcell.KeyRight:
		h.cycle(ctx, 1)
	case tcell.KeyUp:
		if h.focus == focusList && h.selected > 0 {
			h.selected--
		}
	case tcell.KeyDown:
		if h.focus == focusList && h.selected < len(h.rows)-1 {
			h.selected++
		}
	case tcell.KeyEnter:
		// Enter presses the commit button, which is inert while disabled.
		if h.controls.CommitEnabled {
			h.commit(ctx)
		}
	case tcell.KeyDelete:
		if h.focus == focusList {
			h.delete(ctx, h.selected)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if h.focus == focusMinute {
			m := []rune(h.widget.Form().Minute)
			if len(m) > 0 {
				h.widget.SetMinute(string(m[:len(m)-1]))
			}
		}
	case tcell.KeyRune:
		return h.handleRune(ctx, ev.Rune())
	}
	return true
}

func (h *Host) handleRune(ctx context.Context, r rune) bool {
	if h.focus == focusMinute && (unicode.IsDigit(r) || r == '.' || r == '-') {
		if m := h.widget.Form().Minute; len(m) < maxMinuteDigits {
			h.widget.SetMinute(m + string(r))
		}
		return true
	}
	switch r {
	case 'q':
		return false
	case 'x':
		if h.focus == focusList {
			h.delete(ctx, h.selected)
		}
	case 'r':
		h.widget.Reset()
	}
	return true
}

func (h *Host) moveFocus(step int) {
	next := h.focus
	for {
		next = (next + focusField(step) + focusCount) % focusCount
		if next == focusSubtype && !h.controls.SubtypeVisible {
			continue
		}
		break
	}
	h.focus = next
}

// cycle steps the focused selector through its options.
func (h *Host) cycle(ctx context.Context, step int) {
	form := h.widget.Form()
	switch h.focus {
	case focusDirection:
		dirs := model.Directions()
		next := dirs[(indexOf(dirs, form.Direction)+step+len(dirs))%len(dirs)]
		h.report(ctx, h.widget.SetDirection(next))
	case focusPlayType:
		types := h.widget.Variant().PlayTypes()
		next := types[(indexOf(types, form.PlayType)+step+len(types))%len(types)]
		h.report(ctx, h.widget.SetPlayType(ctx, next))
	case focusSubtype:
		options := append([]string{""}, model.SetPieceSubtypes()...)
		next := options[(indexOf(options, form.Subtype)+step+len(options))%len(options)]
		h.report(ctx, h.widget.SetSubtype(next))
	}
}

func (h *Host) commit(ctx context.Context) {
	if _, err := h.widget.Commit(ctx); err != nil {
		h.alert = service.AlertMessage(err, h.widget.Labels())
		return
	}
	h.focus = focusMinute
}

func (h *Host) delete(ctx context.Context, i int) {
	h.report(ctx, h.widget.Delete(ctx, i))
}

func (h *Host) report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	h.logger.Warn(ctx, "widget rejected input", logger.Error(err))
	h.alert = service.AlertMessage(err, h.widget.Labels())
}

func indexOf[T comparable](items []T, v T) int {
	for i, it := range items {
		if it == v {
			return i
		}
	}
	return 0
}

// layout is the cell geometry for the current screen size.
type layout struct {
	// pitch is the interior of the pitch box in cell coordinates.
	pitch capture.Rect
	inner struct{ w, h int }

	panelX       int
	rowDirection int
	rowMinute    int
	rowPlayType  int
	rowSubtype   int
	rowCommit    int
	rowHelp      int
	rowList      int
	rowSummary   int
	rowHidden    int
}

func (h *Host) layout() layout {
	sw, sh := h.screen.Size()
	var lay layout
	lay.inner.w = clampInt(h.pitchWidth, minPitchWidth, sw-2)
	lay.inner.h = clampInt(h.pitchHeight, minPitchHeight, sh-6)
	lay.pitch = capture.Rect{Left: 1, Top: 1, Width: float64(lay.inner.w), Height: float64(lay.inner.h)}

	lay.panelX = lay.inner.w + 2 + panelGap
	lay.rowDirection = 1
	lay.rowMinute = 2
	lay.rowPlayType = 3
	lay.rowSubtype = 4
	lay.rowCommit = 6
	lay.rowHelp = 8
	lay.rowList = 10
	lay.rowSummary = lay.inner.h + 3
	lay.rowHidden = sh - 1
	return lay
}

// inPitchBox includes the border, so clicks on it clamp to the edge.
func (l layout) inPitchBox(x, y int) bool {
	return x >= 0 && x <= l.inner.w+1 && y >= 0 && y <= l.inner.h+1
}

func clampInt(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Draw repaints the whole screen from the last rendered state.
func (h *Host) Draw(ctx context.Context) {
	h.screen.Clear()
	lay := h.layout()

	h.drawPitch(lay)
	h.drawMarkers(lay)
	if h.widget != nil {
		h.drawForm(lay)
		h.drawSummary(ctx, lay)
	}
	h.drawList(lay)
	h.drawText(0, lay.rowHidden, styleMuted, "goal_events="+h.hidden)
	if h.alert != "" {
		h.drawAlert()
	}
	h.screen.Show()
}

func (h *Host) drawPitch(lay layout) {
	w, ht := lay.inner.w, lay.inner.h
	for x := 1; x <= w; x++ {
		h.screen.SetContent(x, 0, '─', nil, stylePitch)
		h.screen.SetContent(x, ht+1, '─', nil, stylePitch)
	}
	for y := 1; y <= ht; y++ {
		h.screen.SetContent(0, y, '│', nil, stylePitch)
		h.screen.SetContent(w+1, y, '│', nil, stylePitch)
	}
	h.screen.SetContent(0, 0, '┌', nil, stylePitch)
	h.screen.SetContent(w+1, 0, '┐', nil, stylePitch)
	h.screen.SetContent(0, ht+1, '└', nil, stylePitch)
	h.screen.SetContent(w+1, ht+1, '┘', nil, stylePitch)

	mid := 1 + w/2
	for y := 1; y <= ht; y++ {
		h.screen.SetContent(mid, y, '┆', nil, stylePitch)
	}
	h.screen.SetContent(mid, 1+ht/2, '○', nil, stylePitch)
}

// markerCell maps a percentage back to the interior cell it falls in.
func markerCell(pct float64, origin, size int) int {
	c := origin + int(pct/100*float64(size))
	if c > origin+size-1 {
		c = origin + size - 1
	}
	return c
}

func (h *Host) drawMarkers(lay layout) {
	for _, m := range h.markers {
		x := markerCell(m.X, 1, lay.inner.w)
		y := markerCell(m.Y, 1, lay.inner.h)
		if m.Role == view.RoleEnd {
			h.screen.SetContent(x, y, 'F', nil, styleEnd)
			continue
		}
		h.screen.SetContent(x, y, 'I', nil, styleStart)
	}
}

func (h *Host) drawForm(lay layout) {
	l := h.widget.Labels()
	form := h.widget.Form()
	x := lay.panelX

	h.drawField(x, lay.rowDirection, focusDirection, l.DirectionField, "< "+l.DirectionLabel(form.Direction)+" >")
	h.drawField(x, lay.rowMinute, focusMinute, l.MinuteField, "["+form.Minute+"]")
	h.drawField(x, lay.rowPlayType, focusPlayType, l.PlayTypeField, "< "+string(form.PlayType)+" >")
	if h.controls.SubtypeVisible {
		h.drawField(x, lay.rowSubtype, focusSubtype, l.SubtypeField, "< "+form.Subtype+" >")
	}

	style := styleDisabled
	if h.controls.CommitEnabled {
		style = styleDefault
		if h.focus == focusCommit {
			style = styleFocus
		}
	}
	h.drawText(x, lay.rowCommit, style, "[ "+l.Commit+" ]")
	h.drawText(x, lay.rowHelp, styleHelp, h.controls.Help)
}

func (h *Host) drawField(x, y int, f focusField, label, value string) {
	x = h.drawText(x, y, styleDefault, label+": ")
	style := styleDefault
	if h.focus == f {
		style = styleFocus
	}
	h.drawText(x, y, style, value)
}

func (h *Host) drawList(lay layout) {
	for i, row := range h.rows {
		y := lay.rowList + i
		x := h.drawText(lay.panelX, y, styleDelete, deleteControl)
		style := styleDefault
		if h.focus == focusList && i == h.selected {
			style = styleFocus
		}
		h.drawText(x, y, style, row.Text)
	}
}

func (h *Host) drawSummary(ctx context.Context, lay layout) {
	l := h.widget.Labels()
	s := h.widget.Summary(ctx)
	h.drawText(0, lay.rowSummary, styleMuted, fmt.Sprintf("Total %d · %s %d · %s %d",
		s.Total, l.For, s.For.Count, l.Against, s.Against.Count))
	for i, band := range []string{"0-30", "31-60", "61-90", "91-120"} {
		line := fmt.Sprintf("%s %-6s %s %d · %s %d", l.Minute, band,
			l.For, s.For.MinuteBands[band], l.Against, s.Against.MinuteBands[band])
		h.drawText(0, lay.rowSummary+1+i, styleMuted, line)
	}
}

func (h *Host) drawAlert() {
	sw, sh := h.screen.Size()
	text := " " + h.alert + " "
	width := len([]rune(text))
	x := (sw - width) / 2
	if x < 0 {
		x = 0
	}
	y := sh / 2
	h.drawText(x, y-1, styleAlert, strings.Repeat(" ", width))
	h.drawText(x, y, styleAlert, text)
	h.drawText(x, y+1, styleAlert, centre("[ OK ]", width))
}

func centre(s string, width int) string {
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

// drawText writes s from (x, y) and returns the column after it.
func (h *Host) drawText(x, y int, style tcell.Style, s string) int {
	for _, r := range s {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
