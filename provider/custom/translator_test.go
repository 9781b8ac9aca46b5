package custom

import (
	"testing"

	"github.com/kyoku-cli/kyoku/source"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

func TestResultFromTable(t *testing.T) {
	Convey("resultFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract a search hit from a valid Lua table", func() {
			tbl := L.NewTable()
			tbl.RawSetString("ident", lua.LString("https://example.com/sos"))
			tbl.RawSetString("title", lua.LString("SOS"))
			tbl.RawSetString("artist", lua.LString("ABBA"))

			result, err := resultFromTable(tbl, "myscript")
			So(err, ShouldBeNil)
			So(result.Ident, ShouldEqual, "https://example.com/sos")
			So(result.Title, ShouldEqual, "SOS")
			So(result.Artist, ShouldEqual, "ABBA")
			So(result.SourceName, ShouldEqual, "myscript")
		})

		Convey("Should fail when required field 'ident' is missing", func() {
			tbl := L.NewTable()
			tbl.RawSetString("title", lua.LString("SOS"))

			_, err := resultFromTable(tbl, "myscript")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEntryFromTable(t *testing.T) {
	Convey("entryFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract an entry with performer and ident attached", func() {
			tbl := L.NewTable()
			tbl.RawSetString("title", lua.LString("SOS"))
			tbl.RawSetString("artist", lua.LString("ABBA"))
			tbl.RawSetString("duration", lua.LNumber(202))

			entry, err := entryFromTable(tbl, "myscript", "Alice", "sos-1")
			So(err, ShouldBeNil)
			So(entry.Title, ShouldEqual, "SOS")
			So(entry.Duration, ShouldEqual, 202)
			So(entry.Performer, ShouldEqual, "Alice")
			So(entry.Ident, ShouldEqual, "sos-1")
			So(entry.IncompleteData, ShouldBeFalse)
		})

		Convey("Should honor the incomplete marker", func() {
			tbl := L.NewTable()
			tbl.RawSetString("title", lua.LString("SOS"))
			tbl.RawSetString("incomplete", lua.LTrue)

			entry, err := entryFromTable(tbl, "myscript", "", "sos-1")
			So(err, ShouldBeNil)
			So(entry.IncompleteData, ShouldBeTrue)
		})

		Convey("Should fail without a title", func() {
			tbl := L.NewTable()

			_, err := entryFromTable(tbl, "myscript", "", "sos-1")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMediaFromTable(t *testing.T) {
	Convey("mediaFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract video and optional audio", func() {
			tbl := L.NewTable()
			tbl.RawSetString("video", lua.LString("/tmp/sos.cdg"))
			tbl.RawSetString("audio", lua.LString("/tmp/sos.mp3"))

			media, err := mediaFromTable(tbl)
			So(err, ShouldBeNil)
			So(media.Video, ShouldEqual, "/tmp/sos.cdg")
			So(media.Audio.MustGet(), ShouldEqual, "/tmp/sos.mp3")
		})

		Convey("Should leave audio absent when not given", func() {
			tbl := L.NewTable()
			tbl.RawSetString("video", lua.LString("/tmp/sos.mp4"))

			media, err := mediaFromTable(tbl)
			So(err, ShouldBeNil)
			So(media.Audio.IsAbsent(), ShouldBeTrue)
		})

		Convey("Should fail without a video location", func() {
			tbl := L.NewTable()

			_, err := mediaFromTable(tbl)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEntryToTable(t *testing.T) {
	Convey("entryToTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		entry := &source.Entry{
			Ident:     "sos-1",
			Performer: "Alice",
			Title:     "SOS",
			Artist:    "ABBA",
			Duration:  202,
		}

		tbl := entryToTable(L, entry)

		So(getString(tbl, "ident"), ShouldEqual, "sos-1")
		So(getString(tbl, "performer"), ShouldEqual, "Alice")
		So(getInt(tbl, "duration"), ShouldEqual, 202)
	})
}
