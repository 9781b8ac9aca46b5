package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type testSource struct {
	results []*source.Result
}

func (s *testSource) Name() string { return "test" }

func (s *testSource) Search(string) ([]*source.Result, error) {
	return s.results, nil
}

func (s *testSource) Resolve(performer, ident string) (*source.Entry, error) {
	return &source.Entry{Ident: ident, SourceName: "test", Performer: performer, Title: "resolved"}, nil
}

func (s *testSource) Fetch(_ context.Context, entry *source.Entry) (source.Media, error) {
	return source.Media{Video: "/tmp/" + entry.Ident}, nil
}

func (s *testSource) MissingMetadata(*source.Entry) (source.Metadata, error) {
	return source.Metadata{}, nil
}

func (s *testSource) PlayerArgs(*source.Entry) []string { return nil }

func TestRun(t *testing.T) {
	Convey("Given a backend with hits", t, func() {
		src := &testSource{results: []*source.Result{
			{Ident: "a", SourceName: "test", Title: "Song A"},
			{Ident: "b", SourceName: "test", Title: "Song B"},
		}}

		Convey("Plain output lists all identifiers", func() {
			var buf bytes.Buffer
			err := Run(&Options{
				Out:     &buf,
				Sources: []source.Source{src},
				Query:   "song",
			})

			So(err, ShouldBeNil)
			So(buf.String(), ShouldEqual, "a\nb\n")
		})

		Convey("A picker narrows the output", func() {
			picker, err := ParseResultPicker("last", "")
			So(err, ShouldBeNil)

			var buf bytes.Buffer
			err = Run(&Options{
				Out:          &buf,
				Sources:      []source.Source{src},
				Query:        "song",
				ResultPicker: mo.Some(picker),
			})

			So(err, ShouldBeNil)
			So(buf.String(), ShouldEqual, "b\n")
		})

		Convey("Json output resolves entries on request", func() {
			var buf bytes.Buffer
			err := Run(&Options{
				Out:       &buf,
				Sources:   []source.Source{src},
				Query:     "song",
				Performer: "Alice",
				Json:      true,
				Resolve:   true,
			})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "song")
			So(output.Result, ShouldHaveLength, 2)
			So(output.Result[0].Entry.Performer, ShouldEqual, "Alice")
		})

		Convey("Downloading reports media locations", func() {
			var buf bytes.Buffer
			err := Run(&Options{
				Out:      &buf,
				Sources:  []source.Source{src},
				Query:    "song",
				Download: true,
			})

			So(err, ShouldBeNil)
			So(buf.String(), ShouldEqual, "/tmp/a\n/tmp/b\n")
		})
	})

	Convey("Given no hits", t, func() {
		src := &testSource{}

		Convey("Json output stays valid", func() {
			var buf bytes.Buffer
			err := Run(&Options{
				Out:     &buf,
				Sources: []source.Source{src},
				Query:   "nope",
				Json:    true,
			})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Result, ShouldHaveLength, 0)
		})
	})
}

func TestParseResultPicker(t *testing.T) {
	Convey("Given pickers of each kind", t, func() {
		results := []*source.Result{
			{Title: "A"}, {Title: "B"}, {Title: "C"},
		}

		first, _ := ParseResultPicker("first", "")
		last, _ := ParseResultPicker("last", "")
		exact, _ := ParseResultPicker("exact", "B")
		index, _ := ParseResultPicker("index", "2")

		So(first(results).Title, ShouldEqual, "A")
		So(last(results).Title, ShouldEqual, "C")
		So(exact(results).Title, ShouldEqual, "B")
		So(index(results).Title, ShouldEqual, "C")
		So(first(nil), ShouldBeNil)
	})

	Convey("Given an unknown kind", t, func() {
		_, err := ParseResultPicker("median", "")
		So(err, ShouldNotBeNil)
	})
}

func TestSchema(t *testing.T) {
	Convey("The output schema is valid JSON", t, func() {
		schema, err := Schema()

		So(err, ShouldBeNil)
		So(json.Valid(schema), ShouldBeTrue)
	})
}
