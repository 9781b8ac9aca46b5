package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestResultFromFilename(t *testing.T) {
	Convey("Given a well-formed filename", t, func() {
		result := ResultFromFilename("/srv/karaoke/Queen - Bohemian Rhapsody - A Night at the Opera.cdg", "files")

		Convey("All fields are parsed", func() {
			So(result.Artist, ShouldEqual, "Queen")
			So(result.Title, ShouldEqual, "Bohemian Rhapsody")
			So(result.Album, ShouldEqual, "A Night at the Opera")
			So(result.SourceName, ShouldEqual, "files")
			So(result.Ident, ShouldEqual, "/srv/karaoke/Queen - Bohemian Rhapsody - A Night at the Opera.cdg")
		})

		Convey("String renders artist and title", func() {
			So(result.String(), ShouldEqual, "Queen - Bohemian Rhapsody")
		})
	})

	Convey("Given a filename with extra separators", t, func() {
		result := ResultFromFilename("ABBA - SOS - Gold - Greatest Hits.mp4", "files")

		Convey("The trailing parts fold into the album", func() {
			So(result.Artist, ShouldEqual, "ABBA")
			So(result.Title, ShouldEqual, "SOS")
			So(result.Album, ShouldEqual, "Gold - Greatest Hits")
		})
	})

	Convey("Given an unparseable filename", t, func() {
		result := ResultFromFilename("/srv/karaoke/track01.mp4", "files")

		Convey("The stem becomes the title and the rest is Unknown", func() {
			So(result.Title, ShouldEqual, "track01")
			So(result.Artist, ShouldEqual, "Unknown")
			So(result.Album, ShouldEqual, "Unknown")
		})

		Convey("String falls back to the title alone", func() {
			So(result.String(), ShouldEqual, "track01")
		})
	})
}

func TestEntryString(t *testing.T) {
	Convey("Given entries with varying metadata", t, func() {
		So((&Entry{Artist: "Queen", Title: "SOS"}).String(), ShouldEqual, "Queen - SOS")
		So((&Entry{Title: "SOS"}).String(), ShouldEqual, "SOS")
		So((&Entry{Ident: "xyz"}).String(), ShouldEqual, "xyz")
	})
}
