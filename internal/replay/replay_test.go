package replay_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/adapters/formfield"
	"github.com/okian/pitchlog/internal/domain/model"
	"github.com/okian/pitchlog/internal/replay"
	"github.com/smartystreets/goconvey/convey"
)

func TestLoadScenario(t *testing.T) {
	convey.Convey("Given the transition scenario file", t, func() {
		sc, err := replay.LoadScenario("testdata/transition.yaml")

		convey.Convey("Then it should load with defaults filled in", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(sc.Variant, convey.ShouldEqual, "enhanced")
			convey.So(sc.SessionID, convey.ShouldEqual, "replay-test")
			convey.So(sc.Steps, convey.ShouldHaveLength, 10)
			convey.So(*sc.Steps[0].Minute, convey.ShouldEqual, "34")
			convey.So(sc.Steps[0].PlayType, convey.ShouldEqual, "Transición")
			convey.So(sc.Steps[2].ExpectError, convey.ShouldEqual, "end_required")
			convey.So(sc.Pitch.Width, convey.ShouldEqual, 100)
		})
	})

	convey.Convey("Given a missing file", t, func() {
		_, err := replay.LoadScenario("testdata/nope.yaml")

		convey.Convey("Then it should return an invalid-scenario error", func() {
			convey.So(errors.Is(err, replay.ErrInvalidScenario), convey.ShouldBeTrue)
		})
	})
}

func TestParseScenario_Invalid(t *testing.T) {
	convey.Convey("Given invalid scenarios", t, func() {
		cases := map[string]string{
			"no steps":       "variant: enhanced\n",
			"unknown action": "steps:\n  - action: dance\n",
			"bad direction":  "steps:\n  - action: set\n    direction: home\n",
			"bad variant":    "variant: deluxe\nsteps:\n  - action: reset\n",
			"negative index": "steps:\n  - action: delete\n    index: -1\n",
			"empty pitch":    "pitch:\n  width: 0\nsteps:\n  - action: reset\n",
			"broken yaml":    "steps: [",
		}
		for name, doc := range cases {
			convey.Convey("Then "+name+" is rejected", func() {
				_, err := replay.ParseScenario([]byte(doc))
				convey.So(errors.Is(err, replay.ErrInvalidScenario), convey.ShouldBeTrue)
			})
		}
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given the transition scenario", t, func() {
		ctx := context.Background()
		sc, err := replay.LoadScenario("testdata/transition.yaml")
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When it is replayed", func() {
			report, err := replay.Run(ctx, sc)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then both events are recorded in order", func() {
				events, err := formfield.Decode(report.Hidden)
				convey.So(err, convey.ShouldBeNil)
				convey.So(events, convey.ShouldHaveLength, 2)
				convey.So(events[0].PlayType, convey.ShouldEqual, model.PlayTransition)
				convey.So(*events[0].End, convey.ShouldResemble, model.Point{X: 90, Y: 80})
				convey.So(*events[1].Subtype, convey.ShouldEqual, "Córner")
				convey.So(report.SessionID, convey.ShouldEqual, "replay-test")
			})

			convey.Convey("Then the expected rejections are reported", func() {
				convey.So(report.Rejections, convey.ShouldHaveLength, 2)
				convey.So(report.Rejections[0].Reason, convey.ShouldEqual, "end_required")
				convey.So(report.Rejections[1].Message, convey.ShouldEqual, "Debes seleccionar un subtipo ABP.")
			})

			convey.Convey("Then rows and summary match", func() {
				convey.So(report.Rows[0], convey.ShouldEqual,
					"A favor · Min 34 · Transición · inicio (10.0, 10.0) · fin (90.0, 80.0)")
				convey.So(report.Summary.Total, convey.ShouldEqual, 2)
				convey.So(report.Summary.Against.PlayTypes["ABP"], convey.ShouldEqual, 1)
			})

			convey.Convey("Then the HTML fragment carries the hidden field", func() {
				doc, err := goquery.NewDocumentFromReader(strings.NewReader(report.HTML))
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.Find("li.event-item").Length(), convey.ShouldEqual, 2)
				value, _ := doc.Find("input#goal_events").Attr("value")
				convey.So(value, convey.ShouldEqual, report.Hidden)
			})

			convey.Convey("Then it matches the expected file", func() {
				expected, err := os.ReadFile("testdata/transition.expected.json")
				convey.So(err, convey.ShouldBeNil)
				convey.So(replay.MatchHidden(report, string(expected)), convey.ShouldBeNil)
				convey.So(errors.Is(replay.MatchHidden(report, "[]"), replay.ErrHiddenMismatch), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a seeded run that deletes", t, func() {
		ctx := context.Background()
		seed, err := formfield.Decode(`[{"for_or_against":"for","minute":1,"play_type":"Otro","abp_subtype":null,"x_start":1,"y_start":1,"x_end":null,"y_end":null},` +
			`{"for_or_against":"for","minute":2,"play_type":"Otro","abp_subtype":null,"x_start":2,"y_start":2,"x_end":null,"y_end":null}]`)
		convey.So(err, convey.ShouldBeNil)
		sc, err := replay.ParseScenario([]byte("steps:\n  - action: delete\n    index: 0\n  - action: delete\n    index: 5\n    expect_error: index_out_of_range\n"))
		convey.So(err, convey.ShouldBeNil)

		report, err := replay.Run(ctx, sc, replay.WithSeed(seed))

		convey.Convey("Then the seed is edited", func() {
			convey.So(err, convey.ShouldBeNil)
			events, err := formfield.Decode(report.Hidden)
			convey.So(err, convey.ShouldBeNil)
			convey.So(events, convey.ShouldHaveLength, 1)
			convey.So(events[0].Minute, convey.ShouldEqual, 2)
		})
	})

	convey.Convey("Given steps whose outcome differs from the script", t, func() {
		ctx := context.Background()

		convey.Convey("Then an unexpected failure fails the run", func() {
			sc, err := replay.ParseScenario([]byte("steps:\n  - action: commit\n"))
			convey.So(err, convey.ShouldBeNil)
			_, err = replay.Run(ctx, sc)
			convey.So(errors.Is(err, replay.ErrStepFailed), convey.ShouldBeTrue)
		})

		convey.Convey("Then a missing failure fails the run", func() {
			sc, err := replay.ParseScenario([]byte("steps:\n  - action: reset\n    expect_error: end_required\n"))
			convey.So(err, convey.ShouldBeNil)
			_, err = replay.Run(ctx, sc)
			convey.So(errors.Is(err, replay.ErrExpectationFailed), convey.ShouldBeTrue)
		})

		convey.Convey("Then a different failure fails the run", func() {
			sc, err := replay.ParseScenario([]byte("steps:\n  - action: commit\n    expect_error: end_required\n"))
			convey.So(err, convey.ShouldBeNil)
			_, err = replay.Run(ctx, sc)
			convey.So(errors.Is(err, replay.ErrExpectationFailed), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a legacy scenario that asks for a transition", t, func() {
		sc, err := replay.ParseScenario([]byte("variant: legacy\nsteps:\n  - action: set\n    play_type: Transición\n    expect_error: unknown_play_type\n"))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then the rejection is expected", func() {
			report, err := replay.Run(context.Background(), sc)
			convey.So(err, convey.ShouldBeNil)
			convey.So(report.Rejections, convey.ShouldHaveLength, 1)
			convey.So(report.Hidden, convey.ShouldEqual, "[]")
		})
	})
}
