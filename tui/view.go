// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/streamplay-cli/streamplay/color"
	"github.com/streamplay-cli/streamplay/icon"
	"github.com/streamplay-cli/streamplay/playback"
	"github.com/streamplay-cli/streamplay/style"
	"github.com/streamplay-cli/streamplay/util"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case searchState:
		output = b.viewSearch()
	case watchState:
		output = b.viewWatch()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title("Play a Stream"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint(fmt.Sprintf("tab ↳ %s", suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewWatch() string {
	session := b.session

	stateIcon := icon.Get(icon.Play)
	switch session.State {
	case playback.Paused:
		stateIcon = icon.Get(icon.Pause)
	case playback.Ended:
		stateIcon = icon.Get(icon.Stop)
	}

	status := util.Capitalize(session.State.String())
	if session.Buffering {
		status = b.spinnerC.View() + " Buffering"
	}

	var ratio float64
	if session.Duration > 0 {
		ratio = session.CurrentTime / session.Duration
	}

	clock := fmt.Sprintf(
		"%s / %s",
		util.FormatClock(session.CurrentTime),
		util.FormatClock(session.Duration),
	)

	lines := []string{
		style.Title("Now Playing"),
		"",
		style.Truncate(b.width)(fmt.Sprintf("%s %s", stateIcon, style.Fg(color.Purple)(session.Title))),
		"",
		b.progressC.ViewAs(ratio),
		style.Faint(clock),
		"",
		status,
	}

	if session.Err != "" {
		lines = append(lines, "", style.Fg(color.Red)(session.Err))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Critical Failure: %v", b.lastError.Error()))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
