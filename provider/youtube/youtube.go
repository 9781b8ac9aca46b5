// Package youtube implements the YouTube backend on top of the yt-dlp
// command line tool.
package youtube

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/kyoku-cli/kyoku/source"
	"github.com/kyoku-cli/kyoku/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Name is the registry identifier of the backend.
const Name = "youtube"

// placeholderDuration is used until the second metadata lookup runs.
// Video durations are not part of flat search output.
const placeholderDuration = 180

// YouTube searches and downloads karaoke videos via yt-dlp.
type YouTube struct {
	run runner
}

// New creates the backend with the real yt-dlp runner.
func New() (source.Source, error) {
	return &YouTube{run: execRunner{}}, nil
}

func (y *YouTube) Name() string {
	return Name
}

// Search queries the configured channels and the global YouTube search
// concurrently and merges the hits, best matches first. The global search
// gets "karaoke" appended since it is not scoped to karaoke channels.
func (y *YouTube) Search(query string) ([]*source.Result, error) {
	limit := viper.GetInt(key.SearchLimit)
	channels := viper.GetStringSlice(key.YouTubeChannels)

	targets := lo.Map(channels, func(channel string, _ int) string {
		return channelSearchURL(channel, query)
	})
	targets = append(targets, fmt.Sprintf("ytsearch%d:%s karaoke", limit, query))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		merged  []*video
		lastErr error
	)

	for _, target := range targets {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()

			hits, err := y.run.search(target, limit)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warnf("youtube search %q failed: %v", target, err)
				lastErr = err
				return
			}
			merged = append(merged, hits...)
		}(target)
	}
	wg.Wait()

	if len(merged) == 0 && lastErr != nil {
		return nil, lastErr
	}

	results := lo.Map(merged, func(v *video, _ int) *source.Result {
		return &source.Result{
			Ident:      v.location(),
			SourceName: Name,
			Title:      v.Title,
			Artist:     v.channelName(),
		}
	})

	rankByQuery(query, results)
	return results, nil
}

// Resolve builds an entry without touching the network. The duration is a
// placeholder and the entry is marked for a second metadata lookup.
func (y *YouTube) Resolve(performer, ident string) (*source.Entry, error) {
	return &source.Entry{
		Ident:          ident,
		SourceName:     Name,
		Performer:      performer,
		Title:          ident,
		Duration:       placeholderDuration,
		IncompleteData: true,
	}, nil
}

// MissingMetadata probes the video for its real title, uploader and duration.
func (y *YouTube) MissingMetadata(entry *source.Entry) (source.Metadata, error) {
	video, err := y.run.probe(entry.Ident)
	if err != nil {
		return source.Metadata{}, err
	}

	return source.Metadata{
		Title:    video.Title,
		Artist:   video.Channel,
		Duration: int(video.Duration),
	}, nil
}

// Fetch downloads the video into the configured download directory and
// returns its final path. Audio is muxed into the container, so no separate
// audio file is produced.
func (y *YouTube) Fetch(ctx context.Context, entry *source.Entry) (source.Media, error) {
	path, err := y.run.download(ctx, entry.Ident, downloadDir())
	if err != nil {
		return source.Media{}, err
	}

	return source.Media{Video: path, Audio: mo.None[string]()}, nil
}

// StreamMedia hands the raw video URL to the player when streaming before
// the download completes is enabled.
func (y *YouTube) StreamMedia(entry *source.Entry) (source.Media, []string, bool) {
	if !viper.GetBool(key.YouTubeStartStreaming) {
		return source.Media{}, nil, false
	}

	options := []string{"--ytdl-format=" + FormatSelector()}
	return source.Media{Video: entry.Ident}, options, true
}

func (y *YouTube) PlayerArgs(*source.Entry) []string {
	return nil
}

// ServerConfig publishes the channel list so a queue server scopes guest
// searches the same way this client does.
func (y *YouTube) ServerConfig() (map[string]any, error) {
	return map[string]any{
		"channels": viper.GetStringSlice(key.YouTubeChannels),
	}, nil
}

// FormatSelector returns the yt-dlp format expression capped at the
// configured resolution.
func FormatSelector() string {
	res := viper.GetInt(key.YouTubeMaxRes)
	return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", res, res)
}

// channelSearchURL builds the in-channel search address. Channels may be
// configured as "/c/Name", "@handle" or a bare name.
func channelSearchURL(channel, query string) string {
	channel = strings.Trim(channel, "/")
	return fmt.Sprintf("https://www.youtube.com/%s/search?query=%s", channel, url.QueryEscape(query))
}

func downloadDir() string {
	if dir := viper.GetString(key.YouTubeDownloadDir); dir != "" {
		return filepath.Clean(dir)
	}
	return where.Downloads()
}
