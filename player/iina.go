package player

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/streamplay-cli/streamplay/playback"
)

// IINA launches macOS-native IINA through LaunchServices. IINA exposes no
// IPC socket, so transport commands and event reporting are unavailable;
// playback is fire-and-forget.
type IINA struct {
	title  string
	cmd    *exec.Cmd
	exited chan struct{}
}

func NewIINA(title string) *IINA {
	return &IINA{
		title:  sanitizeTitle(title),
		exited: make(chan struct{}),
	}
}

func (i *IINA) Load(source playback.Source) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("IINA is only supported on macOS")
	}

	safeURL, err := sanitizeMediaTarget(source.URI)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	// IINA forwards mpv options behind the '--args' separator.
	args := []string{"-a", "IINA", "--args", fmt.Sprintf("--force-media-title=%s", i.title)}

	if fields := headerFields(source.Headers); fields != "" {
		args = append(args, fmt.Sprintf("--http-header-fields=%s", fields))
	}

	args = append(args, safeURL)

	i.cmd = exec.Command("open", args...)

	if err := i.cmd.Start(); err != nil {
		return fmt.Errorf("LaunchServices failed to invoke IINA: %w", err)
	}

	go func() {
		_ = i.cmd.Wait()
		close(i.exited)
	}()

	return nil
}

// Transport commands have no IPC channel to travel over.
func (i *IINA) Seek(seconds float64) error  { return nil }
func (i *IINA) SetPaused(paused bool) error { return nil }

func (i *IINA) Wait() <-chan struct{} {
	return i.exited
}

func (i *IINA) Running() bool {
	select {
	case <-i.exited:
		return false
	default:
		return i.cmd != nil
	}
}

func (i *IINA) Close() error {
	if i.cmd != nil && i.cmd.Process != nil {
		_ = i.cmd.Process.Kill()
	}
	return nil
}
