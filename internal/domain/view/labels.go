package view

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/domain/model"
)

// Locale selects the label catalog.
type Locale string

const (
	Spanish Locale = "es"
	English Locale = "en"
)

// ErrUnknownLocale is returned by ParseLocale for unsupported locales.
var ErrUnknownLocale = errors.New("unknown locale")

// ParseLocale maps a config value to a Locale. Empty means Spanish.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case "", Spanish:
		return Spanish, nil
	case English:
		return English, nil
	default:
		return "", errors.Wrapf(ErrUnknownLocale, "%q", s)
	}
}

// Labels are the user-facing strings of the widget.
type Labels struct {
	For     string
	Against string
	Minute  string
	Start   string
	End     string
	Delete  string
	Commit  string

	DirectionField string
	MinuteField    string
	PlayTypeField  string
	SubtypeField   string

	HelpSingle string
	HelpStart  string
	HelpEnd    string
	HelpReady  string

	InvalidMinute    string
	SubtypeRequired  string
	LocationRequired string
	EndRequired      string
	IndexOutOfRange  string
	StoreFull        string
	UnknownPlayType  string
	InvalidInput     string
}

// LabelsFor returns the catalog for locale, falling back to Spanish.
func LabelsFor(locale Locale) Labels {
	if locale == English {
		return Labels{
			For:              "For",
			Against:          "Against",
			Minute:           "Min",
			Start:            "start",
			End:              "end",
			Delete:           "Delete",
			Commit:           "Add event",
			DirectionField:   "Direction",
			MinuteField:      "Minute",
			PlayTypeField:    "Play type",
			SubtypeField:     "Set-piece type",
			HelpSingle:       "Click once to place the event.",
			HelpStart:        "Transition: click to set the start.",
			HelpEnd:          "Transition: click to set the end.",
			HelpReady:        "Transition ready: add the event or click again to restart.",
			InvalidMinute:    "Invalid minute (0-120).",
			SubtypeRequired:  "Select a set-piece type.",
			LocationRequired: "Mark a location on the pitch.",
			EndRequired:      "A transition needs a start and an end (2 clicks).",
			IndexOutOfRange:  "That event is no longer in the list.",
			StoreFull:        "The event list is full.",
			UnknownPlayType:  "That play type is not available.",
			InvalidInput:     "Invalid input.",
		}
	}
	return Labels{
		For:              "A favor",
		Against:          "En contra",
		Minute:           "Min",
		Start:            "inicio",
		End:              "fin",
		Delete:           "Borrar",
		Commit:           "Añadir evento",
		DirectionField:   "Tipo",
		MinuteField:      "Minuto",
		PlayTypeField:    "Jugada",
		SubtypeField:     "Subtipo ABP",
		HelpSingle:       "Haz 1 clic para fijar la ubicación del evento.",
		HelpStart:        "Transición: marca el 1º clic (inicio).",
		HelpEnd:          "Transición: marca el 2º clic (fin).",
		HelpReady:        "Transición lista: añade el evento o haz clic para empezar de nuevo.",
		InvalidMinute:    "Minuto inválido (0-120).",
		SubtypeRequired:  "Debes seleccionar un subtipo ABP.",
		LocationRequired: "Debes marcar una ubicación en el campo.",
		EndRequired:      "En Transición debes marcar inicio y fin (2 clics).",
		IndexOutOfRange:  "Ese evento ya no está en la lista.",
		StoreFull:        "La lista de eventos está llena.",
		UnknownPlayType:  "Esa jugada no está disponible.",
		InvalidInput:     "Entrada no válida.",
	}
}

// DirectionLabel returns the display name of d.
func (l Labels) DirectionLabel(d model.Direction) string {
	if d == model.DirectionFor {
		return l.For
	}
	return l.Against
}
