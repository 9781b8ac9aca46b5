// Package player manages the external media player process used for playback.
package player

import (
	"fmt"
	"net/url"
	"strings"
)

// allowedSchemes lists the URL schemes mpv plays back, directly or through
// its ffmpeg and ytdl hooks. Anything else is refused so an untrusted
// backend script cannot smuggle in an arbitrary protocol handler.
var allowedSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"file":  true,
	"ytdl":  true,
	"rtmp":  true,
	"rtmps": true,
	"rtsp":  true,
	"rtp":   true,
	"srt":   true,
	"mms":   true,
	"udp":   true,
	"tcp":   true,
	"ftp":   true,
	"ftps":  true,
	"sftp":  true,
}

// sanitizeMediaTarget validates that a location is safe to pass to the player.
// Prevents flag injection from untrusted backend scripts.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty media location")
	}

	// Reject control characters
	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in media location")
	}

	// Prevent flag injection: locations must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("media location must not start with '-' (looks like a flag)")
	}

	// If it contains "://", validate as URL
	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		if !allowedSchemes[strings.ToLower(u.Scheme)] {
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
		return l, nil
	}

	// Anything else is a local file path, handed over as-is.
	return l, nil
}
