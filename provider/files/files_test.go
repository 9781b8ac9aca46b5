package files

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestFiles(t *testing.T) {
	Convey("Given a directory of karaoke files", t, func() {
		dir := "/srv/karaoke"
		viper.Set(key.FilesDir, dir)

		for _, name := range []string{
			"Queen - Bohemian Rhapsody - Opera.cdg",
			"Queen - Bohemian Rhapsody - Opera.mp3",
			"ABBA - SOS - Gold.mp4",
			"notes.txt",
			"sub/Europe - The Final Countdown - The Final Countdown.mp4",
		} {
			path := filepath.Join(dir, name)
			So(filesystem.API().MkdirAll(filepath.Dir(path), 0755), ShouldBeNil)
			f, err := filesystem.API().Create(path)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
		}

		src, err := New()
		So(err, ShouldBeNil)

		Convey("Search matches by filename words", func() {
			results, err := src.Search("bohemian")

			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 1)
			So(results[0].Artist, ShouldEqual, "Queen")
			So(results[0].Title, ShouldEqual, "Bohemian Rhapsody")
		})

		Convey("Search descends into subdirectories and skips non-media files", func() {
			results, err := src.Search("")

			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 3)
		})

		Convey("Resolve parses metadata from the filename", func() {
			entry, err := src.Resolve("Alice", "ABBA - SOS - Gold.mp4")

			So(err, ShouldBeNil)
			So(entry.Artist, ShouldEqual, "ABBA")
			So(entry.Title, ShouldEqual, "SOS")
			So(entry.Album, ShouldEqual, "Gold")
			So(entry.Performer, ShouldEqual, "Alice")
			So(entry.IncompleteData, ShouldBeFalse)
		})

		Convey("Fetching a plain video returns it without separate audio", func() {
			entry, _ := src.Resolve("", "ABBA - SOS - Gold.mp4")
			media, err := src.Fetch(context.Background(), entry)

			So(err, ShouldBeNil)
			So(media.Video, ShouldEqual, filepath.Join(dir, "ABBA - SOS - Gold.mp4"))
			So(media.Audio.IsAbsent(), ShouldBeTrue)
		})

		Convey("Fetching a CD+G file pairs it with its audio sibling", func() {
			entry, _ := src.Resolve("", "Queen - Bohemian Rhapsody - Opera.cdg")
			media, err := src.Fetch(context.Background(), entry)

			So(err, ShouldBeNil)
			So(media.Video, ShouldEndWith, ".cdg")
			So(media.Audio.MustGet(), ShouldEndWith, ".mp3")

			Convey("And playback is oversampled", func() {
				So(src.PlayerArgs(entry), ShouldResemble, []string{"--scale=oversample"})
			})
		})

		Convey("Fetching a missing file fails", func() {
			entry, _ := src.Resolve("", "nope.mp4")
			_, err := src.Fetch(context.Background(), entry)

			So(err, ShouldNotBeNil)
		})

		Convey("The server config carries the whole catalog in chunks", func() {
			chunked, ok := src.(source.ChunkedConfigurer)
			So(ok, ShouldBeTrue)

			chunks, err := chunked.ServerConfigChunks()

			So(err, ShouldBeNil)
			So(chunks, ShouldHaveLength, 1)
			So(chunks[0]["index"], ShouldHaveLength, 3)
		})

		Convey("A CD+G file without audio fails to fetch", func() {
			path := filepath.Join(dir, "Lonely - Graphics - Only.cdg")
			f, err := filesystem.API().Create(path)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			entry, _ := src.Resolve("", "Lonely - Graphics - Only.cdg")
			_, err = src.Fetch(context.Background(), entry)

			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given no configured directory", t, func() {
		viper.Set(key.FilesDir, "")

		_, err := New()

		So(err, ShouldNotBeNil)
	})
}

func TestChunkIndex(t *testing.T) {
	Convey("Chunking a catalog", t, func() {
		index := []string{"a", "b", "c", "d", "e"}

		Convey("Splits into bounded, numbered pieces", func() {
			chunks := chunkIndex(index, 2)

			So(chunks, ShouldHaveLength, 3)
			So(chunks[0]["index"], ShouldResemble, []string{"a", "b"})
			So(chunks[1]["index"], ShouldResemble, []string{"c", "d"})
			So(chunks[2]["index"], ShouldResemble, []string{"e"})
		})

		Convey("A catalog within the bound is a single chunk", func() {
			chunks := chunkIndex(index, 100)

			So(chunks, ShouldHaveLength, 1)
			So(chunks[0]["index"], ShouldResemble, index)
		})

		Convey("An empty catalog still announces itself", func() {
			chunks := chunkIndex(nil, 2)

			So(chunks, ShouldHaveLength, 1)
			So(chunks[0]["index"], ShouldResemble, []string{})
		})
	})
}
