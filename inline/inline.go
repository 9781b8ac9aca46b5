// Package inline implements the non-interactive, scriptable execution mode.
package inline

import (
	"context"
	"fmt"
	"os"

	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/source"
)

func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	// Search all requested backends sequentially; inline mode favors
	// deterministic output order over latency.
	var results []*source.Result
	for _, src := range options.Sources {
		hits, err := src.Search(options.Query)
		if err != nil {
			return fmt.Errorf("search failed for %s: %w", src.Name(), err)
		}
		results = append(results, hits...)
	}

	var selected []*source.Result
	if picker, ok := options.ResultPicker.Get(); ok {
		if choice := picker(results); choice != nil {
			selected = []*source.Result{choice}
		}
	} else {
		selected = results
	}

	if len(selected) == 0 {
		if options.Json {
			return writeJson(options.Out, nil, options)
		}
		return nil
	}

	items, err := prepareItems(selected, options)
	if err != nil {
		return err
	}

	if options.Play {
		if err = playFirst(items, options); err != nil {
			return err
		}
	}

	if options.Json {
		return writeJson(options.Out, items, options)
	}

	for _, item := range items {
		switch {
		case item.Media != nil:
			fmt.Fprintln(options.Out, item.Media.Video)
		default:
			fmt.Fprintln(options.Out, item.Result.Ident)
		}
	}

	return nil
}

// prepareItems resolves entries and buffers media as requested.
func prepareItems(selected []*source.Result, options *Options) ([]*Item, error) {
	items := make([]*Item, 0, len(selected))

	for _, result := range selected {
		item := &Item{Source: result.SourceName, Result: result}
		items = append(items, item)

		if !options.Resolve && !options.Download && !options.Play {
			continue
		}

		src, ok := sourceFor(options, result.SourceName)
		if !ok {
			return nil, fmt.Errorf("no backend named %q", result.SourceName)
		}

		entry, err := src.Resolve(options.Performer, result.Ident)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", result.Ident, err)
		}

		if entry.IncompleteData {
			if meta, err := src.MissingMetadata(entry); err == nil {
				entry.ApplyMetadata(meta)
			} else {
				log.Warnf("metadata lookup for %s: %v", entry.Ident, err)
			}
		}
		item.Entry = entry

		if options.Download {
			media, err := src.Fetch(context.Background(), entry)
			if err != nil {
				return nil, fmt.Errorf("fetch %s: %w", entry.Ident, err)
			}
			item.Media = &media
		}
	}

	return items, nil
}

func playFirst(items []*Item, options *Options) error {
	for _, item := range items {
		if item.Entry == nil {
			continue
		}

		src, _ := sourceFor(options, item.Source)
		coordinator := source.NewCoordinator(src)
		coordinator.Play(item.Entry)
		return nil
	}

	return fmt.Errorf("nothing to play")
}

func sourceFor(options *Options, name string) (source.Source, bool) {
	for _, src := range options.Sources {
		if src.Name() == name {
			return src, true
		}
	}
	return nil, false
}
