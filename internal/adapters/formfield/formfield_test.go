package formfield_test

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/adapters/formfield"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleEvents() []model.Event {
	return []model.Event{
		{
			Direction: model.DirectionFor,
			Minute:    34,
			PlayType:  model.PlayTransition,
			Start:     model.Point{X: 10, Y: 10},
			End:       &model.Point{X: 90, Y: 80},
		},
		{
			Direction: model.DirectionAgainst,
			Minute:    71,
			PlayType:  model.PlaySetPiece,
			Subtype:   strPtr("Córner"),
			Start:     model.Point{X: 99.5, Y: 0.25},
		},
	}
}

func TestEncodeEmptyList(t *testing.T) {
	out, err := formfield.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)

	out, err = formfield.Encode([]model.Event{})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestEncodeWireShape(t *testing.T) {
	out, err := formfield.Encode(sampleEvents())
	require.NoError(t, err)

	var generic []map[string]any
	require.NoError(t, sonic.UnmarshalString(out, &generic))
	require.Len(t, generic, 2)

	first := generic[0]
	assert.Equal(t, "for", first["for_or_against"])
	assert.EqualValues(t, 34, first["minute"])
	assert.Equal(t, "Transición", first["play_type"])
	assert.Nil(t, first["abp_subtype"])
	assert.Contains(t, first, "abp_subtype")
	assert.EqualValues(t, 10, first["x_start"])
	assert.EqualValues(t, 80, first["y_end"])

	second := generic[1]
	assert.Equal(t, "against", second["for_or_against"])
	assert.Equal(t, "Córner", second["abp_subtype"])
	assert.Contains(t, second, "x_end")
	assert.Nil(t, second["x_end"])
	assert.Nil(t, second["y_end"])
}

func TestDecodeRoundTripsOrder(t *testing.T) {
	events := sampleEvents()
	out, err := formfield.Encode(events)
	require.NoError(t, err)

	got, err := formfield.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestDecodeEmpty(t *testing.T) {
	for _, raw := range []string{"", "  ", "[]"} {
		got, err := formfield.Decode(raw)
		require.NoError(t, err, raw)
		assert.Empty(t, got, raw)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	_, err := formfield.Decode(`{"not":"a list"}`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, formfield.ErrMalformed))

	_, err = formfield.Decode(`[{"for_or_against":"for","minute":3,"play_type":"Transición","x_start":1,"y_start":1,"x_end":5}]`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, formfield.ErrMalformed))
}

func TestDecodeRejectsInvalidEvents(t *testing.T) {
	cases := map[string]string{
		"minute out of range":    `[{"for_or_against":"for","minute":121,"play_type":"Otro","x_start":1,"y_start":1}]`,
		"unknown direction":      `[{"for_or_against":"home","minute":1,"play_type":"Otro","x_start":1,"y_start":1}]`,
		"transition without end": `[{"for_or_against":"for","minute":1,"play_type":"Transición","x_start":1,"y_start":1}]`,
		"set piece no subtype":   `[{"for_or_against":"for","minute":1,"play_type":"ABP","abp_subtype":null,"x_start":1,"y_start":1}]`,
		"coordinate too large":   `[{"for_or_against":"for","minute":1,"play_type":"Otro","x_start":101,"y_start":1}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := formfield.Decode(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidEvent))
		})
	}
}
