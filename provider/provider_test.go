package provider

import (
	"testing"

	"github.com/kyoku-cli/kyoku/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid backend", t, func() {
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("When getting a built-in backend", t, func() {
		p, ok := Get("youtube")
		Convey("Then it resolves", func() {
			So(ok, ShouldBeTrue)
			So(p.IsCustom, ShouldBeFalse)
		})
	})
}

func TestBuiltins(t *testing.T) {
	Convey("Built-in backends are registered", t, func() {
		names := make([]string, 0)
		for _, p := range Builtins() {
			names = append(names, p.Name)
		}

		So(names, ShouldContain, "youtube")
		So(names, ShouldContain, "files")
	})
}
