package history

import (
	"testing"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/source"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an entry", t, func() {
		// Each leaf re-runs this block, so start every pass from an
		// empty history or the play counters accumulate across passes.
		filesystem.SetMemMapFs()
		So(cacher.Set(nil), ShouldBeNil)

		entry := &source.Entry{
			Ident:      "abba-sos",
			SourceName: "youtube",
			Title:      "SOS",
			Artist:     "ABBA",
			Performer:  "Alice",
		}

		Convey("When it is saved", func() {
			So(Save(entry), ShouldBeNil)

			Convey("Then it appears in the history", func() {
				saved, err := Get()
				So(err, ShouldBeNil)

				record, ok := saved["abba-sos (youtube)"]
				So(ok, ShouldBeTrue)
				So(record.Title, ShouldEqual, "SOS")
				So(record.Performer, ShouldEqual, "Alice")
				So(record.TimesPlayed, ShouldEqual, 1)
				So(record.LastPlayedAt.IsZero(), ShouldBeFalse)

				Convey("Saving again counts the repeat performance", func() {
					So(Save(entry), ShouldBeNil)

					saved, err := Get()
					So(err, ShouldBeNil)
					So(saved["abba-sos (youtube)"].TimesPlayed, ShouldEqual, 2)
				})

				Convey("It converts back to a playable entry", func() {
					restored := record.Entry()
					So(restored.Ident, ShouldEqual, entry.Ident)
					So(restored.SourceName, ShouldEqual, entry.SourceName)
				})

				Convey("And it can be removed", func() {
					So(Remove(record), ShouldBeNil)

					saved, err := Get()
					So(err, ShouldBeNil)
					So(saved, ShouldNotContainKey, "abba-sos (youtube)")
				})
			})
		})
	})
}
