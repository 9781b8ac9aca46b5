// Package inline implements the non-interactive, scriptable execution mode.
package inline

import (
	"encoding/json"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/kyoku-cli/kyoku/source"
)

// Item is one search hit with whatever was derived from it.
type Item struct {
	// Source is the name of the backend.
	Source string `json:"source"`
	// Result is the raw search hit.
	Result *source.Result `json:"result"`
	// Entry is the resolved entry, when resolving was requested.
	Entry *source.Entry `json:"entry,omitempty"`
	// Media is the buffered media location, when downloading was requested.
	Media *source.Media `json:"media,omitempty"`
}

type Output struct {
	Query  string  `json:"query"`
	Result []*Item `json:"result"`
}

func writeJson(out io.Writer, items []*Item, options *Options) error {
	if items == nil {
		items = []*Item{}
	}

	data, err := json.Marshal(&Output{
		Query:  options.Query,
		Result: items,
	})
	if err != nil {
		return err
	}

	_, err = out.Write(data)
	return err
}

// Schema returns the JSON schema of the inline output format, for consumers
// that want to validate or generate bindings.
func Schema() ([]byte, error) {
	return json.MarshalIndent(jsonschema.Reflect(&Output{}), "", "  ")
}
