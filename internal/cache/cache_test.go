package cache

import (
	"testing"

	"github.com/kyoku-cli/kyoku/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCache(t *testing.T) {
	Convey("Given a cached value", t, func() {
		key := GenerateKey("bohemian rhapsody", "youtube")
		So(Write(key, []string{"a", "b"}), ShouldBeNil)

		Convey("Read restores it", func() {
			var got []string
			So(Read(key, &got), ShouldBeTrue)
			So(got, ShouldResemble, []string{"a", "b"})
		})

		Convey("Reads under a different key miss", func() {
			var got []string
			So(Read(GenerateKey("bohemian rhapsody", "files"), &got), ShouldBeFalse)
		})
	})

	Convey("Key generation ignores case and spacing", t, func() {
		So(GenerateKey("Bohemian Rhapsody", "youtube"),
			ShouldEqual, GenerateKey("bohemianrhapsody", "youtube"))
	})
}
