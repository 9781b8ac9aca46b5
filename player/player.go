// Package player manages the external media player process used for playback.
// The primary implementation targets 'mpv'; the binary is configurable.
package player

import (
	"fmt"
	"os/exec"

	"github.com/kyoku-cli/kyoku/key"
	"github.com/kyoku-cli/kyoku/log"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

// Handle is a reference to a running player process.
// It can be awaited for natural exit or forcibly terminated.
type Handle interface {
	// Wait blocks until the player process exits and returns its exit error, if any.
	Wait() error

	// Kill forcibly terminates the player process. The pending Wait call observes the exit.
	Kill() error
}

// LaunchFunc is the signature of the player launcher. It exists so the
// coordinator and tests can substitute the process-spawning implementation.
type LaunchFunc func(video string, audio mo.Option[string], options ...string) (Handle, error)

// Launch starts the configured player against a video location and an
// optional separate audio location. Extra options are forwarded verbatim.
func Launch(video string, audio mo.Option[string], options ...string) (Handle, error) {
	safeVideo, err := sanitizeMediaTarget(video)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	args := BuildArgs(safeVideo, audio, options...)
	bin := viper.GetString(key.Player)
	if bin == "" {
		bin = "mpv"
	}

	cmd := exec.Command(bin, args...)

	// Detach from the parent process group so a kill does not cascade to the shell.
	cmd.SysProcAttr = sysProcAttr()

	// No pipes: the player owns the display, we only track the process.
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", bin, err)
	}

	log.Debugf("launched %s for %s", bin, safeVideo)

	p := &process{cmd: cmd, exited: make(chan error, 1)}
	// Reap on a background goroutine to avoid zombies even if nobody waits.
	go func() {
		p.exited <- cmd.Wait()
	}()
	return p, nil
}

// BuildArgs assembles the player argument list: fullscreen toggle, user
// options, the video location, and an --audio-file argument when the audio
// track lives in a separate file.
func BuildArgs(video string, audio mo.Option[string], options ...string) []string {
	var args []string
	if viper.GetBool(key.PlayerFullscreen) {
		args = append(args, "--fullscreen")
	}
	args = append(args, viper.GetStringSlice(key.PlayerExtraArgs)...)
	args = append(args, options...)
	args = append(args, video)
	if a, ok := audio.Get(); ok {
		args = append(args, "--audio-file="+a)
	}
	return args
}

type process struct {
	cmd    *exec.Cmd
	exited chan error
}

func (p *process) Wait() error {
	return <-p.exited
}

func (p *process) Kill() error {
	return killProcess(p.cmd)
}
