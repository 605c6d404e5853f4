package htmlview

import (
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/adapters/formfield"
)

// ErrNoHiddenField is returned when a page has no hidden events input.
var ErrNoHiddenField = errors.New("hidden events field not found")

// ExtractHidden reads the hidden events value out of a saved host page.
func ExtractHidden(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", errors.Wrap(err, "parse page")
	}
	sel := doc.Find("input#" + formfield.FieldID).First()
	if sel.Length() == 0 {
		return "", ErrNoHiddenField
	}
	value, _ := sel.Attr("value")
	return value, nil
}
