package query

import (
	"testing"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		Convey("When remembering queries", func() {
			So(Remember("bohemian rhapsody", 1), ShouldBeNil)
			So(Remember("bohemian like you", 10), ShouldBeNil)

			Convey("Then suggestions are sorted by rank", func() {
				suggestionCache = make(map[string][]*queryRecord)

				s := SuggestMany("bohem")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
				So(s[0], ShouldEqual, "bohemian like you")
			})

			Convey("Suggest returns the top match", func() {
				suggestionCache = make(map[string][]*queryRecord)

				So(Suggest("bohem").MustGet(), ShouldEqual, "bohemian like you")
				So(Suggest("zzzzz").IsAbsent(), ShouldBeTrue)
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  Bohemian  "), ShouldEqual, "bohemian")
			})
		})
	})
}
