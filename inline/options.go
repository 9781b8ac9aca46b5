// Package inline implements the non-interactive, scriptable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/kyoku-cli/kyoku/source"
	"github.com/samber/mo"
)

// ResultPicker chooses one search hit out of many, nil meaning no choice.
type ResultPicker func([]*source.Result) *source.Result

type Options struct {
	Out     io.Writer
	Sources []source.Source

	Query     string
	Performer string
	Json      bool

	ResultPicker mo.Option[ResultPicker]

	// Resolve builds playable entries for the picked results.
	Resolve bool
	// Download buffers the media and reports its location. Implies Resolve.
	Download bool
	// Play plays the first picked entry. Implies Resolve.
	Play bool
}

// ParseResultPicker builds a picker from its CLI description.
func ParseResultPicker(kind, value string) (ResultPicker, error) {
	switch kind {
	case "first":
		return func(results []*source.Result) *source.Result {
			if len(results) == 0 {
				return nil
			}
			return results[0]
		}, nil
	case "last":
		return func(results []*source.Result) *source.Result {
			if len(results) == 0 {
				return nil
			}
			return results[len(results)-1]
		}, nil
	case "exact":
		return func(results []*source.Result) *source.Result {
			for _, r := range results {
				if r.Title == value {
					return r
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(results []*source.Result) *source.Result {
			if uint64(len(results)) <= idx {
				return nil
			}
			return results[idx]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}
