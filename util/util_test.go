package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "song", "songs"), ShouldEqual, "1 song")
		So(Quantify(2, "song", "songs"), ShouldEqual, "2 songs")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("path/to/file.txt"), ShouldEqual, "file")
		So(FileStem("file"), ShouldEqual, "file")
	})
}

func TestSplitWords(t *testing.T) {
	Convey("SplitWords", t, func() {
		Convey("Plain words", func() {
			So(SplitWords("never gonna give"), ShouldResemble, []string{"never", "gonna", "give"})
		})
		Convey("Quoted phrases count as one word", func() {
			So(SplitWords(`rick "never gonna" up`), ShouldResemble, []string{"rick", "never gonna", "up"})
			So(SplitWords("'a b' c"), ShouldResemble, []string{"a b", "c"})
		})
		Convey("Unterminated quote consumes the rest", func() {
			So(SplitWords(`a "b c`), ShouldResemble, []string{"a", "b c"})
		})
		Convey("Empty input", func() {
			So(SplitWords(""), ShouldBeNil)
		})
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		item := s.Pop()
		So(item, ShouldEqual, 2)
		item = s.Pop()
		So(item, ShouldEqual, 1)
		item = s.Pop()
		So(item, ShouldEqual, 0)
	})
}
