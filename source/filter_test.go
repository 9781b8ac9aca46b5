package source

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFilterByQuery(t *testing.T) {
	Convey("Given a set of file paths", t, func() {
		paths := []string{
			"/srv/karaoke/Queen - Bohemian Rhapsody - Opera.cdg",
			"/srv/karaoke/Queen - Somebody to Love - A Day at the Races.mp4",
			"/srv/karaoke/ABBA - SOS - Gold.mp4",
		}

		Convey("Every query word must match the basename", func() {
			So(FilterByQuery("queen love", paths), ShouldResemble, []string{
				"/srv/karaoke/Queen - Somebody to Love - A Day at the Races.mp4",
			})
		})

		Convey("Matching is case insensitive", func() {
			So(FilterByQuery("BOHEMIAN", paths), ShouldHaveLength, 1)
		})

		Convey("Quoted segments match as a whole", func() {
			So(FilterByQuery(`"somebody to love"`, paths), ShouldHaveLength, 1)
			So(FilterByQuery(`"love somebody"`, paths), ShouldBeEmpty)
		})

		Convey("Directory names never match", func() {
			So(FilterByQuery("srv", paths), ShouldBeEmpty)
		})

		Convey("An empty query matches everything", func() {
			So(FilterByQuery("", paths), ShouldHaveLength, 3)
		})
	})
}
