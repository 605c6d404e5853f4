// Package replay runs scripted widget sessions headlessly: form edits,
// pitch clicks, commits and deletes read from a YAML scenario.
package replay

import (
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/okian/pitchlog/internal/domain/capture"
)

// Step actions.
const (
	ActionSet    = "set"
	ActionClick  = "click"
	ActionCommit = "commit"
	ActionDelete = "delete"
	ActionReset  = "reset"
)

// Step is one scripted user action. Only the fields its action uses are read:
// set takes the form fields, click takes x and y, delete takes index.
type Step struct {
	Action string `koanf:"action" validate:"required,oneof=set click commit delete reset"`

	Direction string  `koanf:"direction" validate:"omitempty,oneof=for against"`
	Minute    *string `koanf:"minute"`
	PlayType  string  `koanf:"play_type"`
	Subtype   *string `koanf:"subtype"`

	X float64 `koanf:"x"`
	Y float64 `koanf:"y"`

	Index int `koanf:"index" validate:"gte=0"`

	// ExpectError is the error label the step must fail with; empty means it must succeed.
	ExpectError string `koanf:"expect_error"`
}

// Pitch is the click coordinate frame. The default 100x100 frame at the
// origin makes click coordinates percentages.
type Pitch struct {
	Left   float64 `koanf:"left"`
	Top    float64 `koanf:"top"`
	Width  float64 `koanf:"width" validate:"gt=0"`
	Height float64 `koanf:"height" validate:"gt=0"`
}

// Scenario is a complete scripted session.
type Scenario struct {
	Variant   string `koanf:"variant" validate:"omitempty,oneof=enhanced legacy"`
	Locale    string `koanf:"locale" validate:"omitempty,oneof=es en"`
	SessionID string `koanf:"session_id"`
	MaxEvents int    `koanf:"max_events" validate:"gte=0"`
	Pitch     Pitch  `koanf:"pitch"`
	Steps     []Step `koanf:"steps" validate:"required,min=1,dive"`
}

// Rect returns the pitch frame for clicks.
func (s Scenario) Rect() capture.Rect {
	return capture.Rect{Left: s.Pitch.Left, Top: s.Pitch.Top, Width: s.Pitch.Width, Height: s.Pitch.Height}
}

var validate = validator.New()

func defaultScenario() Scenario {
	return Scenario{Pitch: Pitch{Width: 100, Height: 100}}
}

// Validate checks the scenario structure.
func (s Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.Mark(errors.Wrap(err, "scenario"), ErrInvalidScenario)
	}
	return nil
}

// bytesProvider feeds an in-memory document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("bytesProvider does not support Read")
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "scenario file %s", path), ErrInvalidScenario)
	}
	return unmarshal(k)
}

// ParseScenario reads and validates a YAML scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	k := koanf.New(".")
	if err := k.Load(bytesProvider(data), yaml.Parser()); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse scenario"), ErrInvalidScenario)
	}
	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Scenario, error) {
	sc := defaultScenario()
	if err := k.UnmarshalWithConf("", &sc, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshal scenario"), ErrInvalidScenario)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}
