package youtube

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kyoku-cli/kyoku/log"
)

// Executable is the yt-dlp binary resolved from PATH.
const Executable = "yt-dlp"

// video is the subset of yt-dlp's JSON output the backend cares about.
type video struct {
	ID       string  `json:"id"`
	URL      string  `json:"url"`
	PageURL  string  `json:"webpage_url"`
	Title    string  `json:"title"`
	Channel  string  `json:"channel"`
	Uploader string  `json:"uploader"`
	Duration float64 `json:"duration"`
}

// location returns the best available address of the video.
func (v *video) location() string {
	switch {
	case v.URL != "":
		return v.URL
	case v.PageURL != "":
		return v.PageURL
	default:
		return "https://www.youtube.com/watch?v=" + v.ID
	}
}

// channelName returns the channel, falling back to the uploader field that
// older yt-dlp versions emit.
func (v *video) channelName() string {
	if v.Channel != "" {
		return v.Channel
	}
	return v.Uploader
}

// runner abstracts the yt-dlp invocations so tests can fake them.
type runner interface {
	search(target string, limit int) ([]*video, error)
	probe(url string) (*video, error)
	download(ctx context.Context, url, dir string) (string, error)
}

type execRunner struct{}

// search runs a flat-playlist dump against a search target (an in-channel
// search URL or a ytsearchN expression) and parses the NDJSON output.
func (execRunner) search(target string, limit int) ([]*video, error) {
	args := []string{
		"--flat-playlist",
		"--dump-json",
		"--playlist-items", fmt.Sprintf("1:%d", limit),
		target,
	}

	out, err := exec.Command(Executable, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", Executable, err)
	}

	return parseVideos(out)
}

// probe fetches full metadata for a single video.
func (execRunner) probe(url string) (*video, error) {
	out, err := exec.Command(Executable, "--dump-json", "--no-playlist", url).Output()
	if err != nil {
		return nil, fmt.Errorf("%s probe: %w", Executable, err)
	}

	var v video
	if err = json.Unmarshal(out, &v); err != nil {
		return nil, fmt.Errorf("%s probe: %w", Executable, err)
	}
	return &v, nil
}

// download fetches the video into dir and returns the final file path as
// printed by yt-dlp after all post-processing moves.
func (execRunner) download(ctx context.Context, url, dir string) (string, error) {
	args := []string{
		"--format", FormatSelector(),
		"--paths", dir,
		"--output", "%(title)s [%(id)s].%(ext)s",
		"--no-simulate",
		"--print", "after_move:filepath",
		url,
	}

	log.Debugf("downloading %s into %s", url, dir)

	out, err := exec.CommandContext(ctx, Executable, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s download: %w", Executable, err)
	}

	path := lastLine(out)
	if path == "" {
		return "", fmt.Errorf("%s download: no file path reported", Executable)
	}
	return path, nil
}

// parseVideos decodes newline-delimited JSON objects.
func parseVideos(out []byte) ([]*video, error) {
	var videos []*video

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var v video
		if err := json.Unmarshal(line, &v); err != nil {
			return nil, fmt.Errorf("parse %s output: %w", Executable, err)
		}
		videos = append(videos, &v)
	}

	return videos, scanner.Err()
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
