package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/streamplay-cli/streamplay/constant"
	"github.com/streamplay-cli/streamplay/key"
	"github.com/streamplay-cli/streamplay/log"
	"github.com/streamplay-cli/streamplay/playback"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV drives an mpv process through its JSON-IPC socket.
type MPV struct {
	title      string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the mpv process exits
	mu         sync.Mutex    // protects socket writes and process state
	started    bool
}

// NewMPV creates an MPV backend for the given media title. The process is
// spawned lazily on the first Load.
func NewMPV(title string) *MPV {
	exited := make(chan struct{})
	close(exited) // nothing running yet

	return &MPV{
		title:  sanitizeTitle(title),
		exited: exited,
	}
}

// Load opens the source. The first call spawns mpv with the source and its
// HTTP headers on the command line; later calls replace the playing file over
// IPC so the window survives.
func (m *MPV) Load(source playback.Source) error {
	safeURL, err := sanitizeMediaTarget(source.URI)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	m.mu.Lock()
	started := m.started
	m.mu.Unlock()

	if started && m.Running() {
		return m.replaceFile(safeURL, source.Headers)
	}

	return m.spawn(safeURL, source.Headers)
}

// spawn starts a fresh mpv process playing the given target.
func (m *MPV) spawn(target string, headers map[string]string) error {
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		// os.TempDir over /tmp: macOS puts sockets under /var/folders
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Streamplay, randomBytes))
	}

	// Pass only the socket, title, headers and URL. User mpv.conf settings
	// like --vo and --hwdec stay untouched.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", m.title),
		fmt.Sprintf("--title=%s", m.title),
		"--force-window=yes",
		"--idle=yes",
	}

	if viper.GetBool(key.PlayerFullscreen) {
		args = append(args, "--fullscreen")
	}

	if fields := headerFields(headers); fields != "" {
		args = append(args, fmt.Sprintf("--http-header-fields=%s", fields))
	}

	args = append(args, target)

	m.cmd = exec.Command("mpv", args...)

	// Detach from the parent process group so a dying shell doesn't take
	// the player with it.
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.mu.Lock()
	m.started = true
	m.mu.Unlock()

	return nil
}

// replaceFile loads a new target into the running instance.
func (m *MPV) replaceFile(target string, headers map[string]string) error {
	if err := m.Set("http-header-fields", headerList(headers)); err != nil {
		return err
	}

	_, err := m.sendCommand([]interface{}{"loadfile", target, "replace"})
	return err
}

// waitForSocket polls until the IPC socket accepts connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// SetPaused suspends or resumes playback.
func (m *MPV) SetPaused(paused bool) error {
	return m.Set("pause", paused)
}

// SetFullscreen switches the window display mode.
func (m *MPV) SetFullscreen(enabled bool) error {
	return m.Set("fullscreen", enabled)
}

// Set writes an mpv property.
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// Running reports whether mpv responds to IPC commands.
func (m *MPV) Running() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Wait returns a channel closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// Close quits mpv, killing it if the graceful path stalls, and removes
// the socket file.
func (m *MPV) Close() error {
	if m.socketPath == "" {
		return nil
	}

	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// headerFields renders headers as mpv's comma-separated option value.
func headerFields(headers map[string]string) string {
	fields := headerList(headers)
	return strings.Join(fields, ",")
}

// headerList renders headers as "Name: value" entries, sorted for stable
// command lines. Commas in values would split the option, so they are
// escaped.
func headerList(headers map[string]string) []string {
	if len(headers) == 0 {
		return nil
	}

	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]string, 0, len(names))
	for _, name := range names {
		value := strings.ReplaceAll(headers[name], ",", "%2C")
		fields = append(fields, fmt.Sprintf("%s: %s", name, value))
	}
	return fields
}

// sanitizeMediaTarget validates that a target is safe to hand to mpv.
// Targets must not look like flags.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Local file path
	return filepath.Clean(l), nil
}

// sanitizeTitle strips characters that would break the mpv command line.
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
