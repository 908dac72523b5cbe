package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephgoksu/tasktracker/models"
)

// Snapshot is one reading of the tracker state shown by the watch view.
type Snapshot struct {
	Progress models.Progress
	Pending  []models.Task
	Err      error
}

// SnapshotFunc loads the current state.
type SnapshotFunc func() Snapshot

type snapshotMsg Snapshot

type changedMsg struct{}

type changesClosedMsg struct{}

// WatchModel is a bubbletea model that shows live progress. It reloads
// whenever a value arrives on the changes channel.
type WatchModel struct {
	load           SnapshotFunc
	changes        <-chan struct{}
	exitOnComplete bool
	source         string

	bar      progress.Model
	snapshot Snapshot
	loaded   bool
	quitting bool
}

// NewWatchModel creates the watch view. source is shown in the header.
func NewWatchModel(load SnapshotFunc, changes <-chan struct{}, source string, exitOnComplete bool) WatchModel {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = separatorWidth
	return WatchModel{
		load:           load,
		changes:        changes,
		exitOnComplete: exitOnComplete,
		source:         source,
		bar:            bar,
	}
}

// Snapshot returns the last state the view loaded.
func (m WatchModel) Snapshot() Snapshot {
	return m.snapshot
}

func (m WatchModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(m.load())
	}
}

func (m WatchModel) waitForChange() tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-m.changes; !ok {
			return changesClosedMsg{}
		}
		return changedMsg{}
	}
}

// Init loads the first snapshot and starts listening for changes.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitForChange())
}

// Update handles key presses, window resizes, reloads and change notifications.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			return m, m.loadCmd()
		}
	case tea.WindowSizeMsg:
		width := msg.Width - 4
		if width > separatorWidth {
			width = separatorWidth
		}
		if width > 10 {
			m.bar.Width = width
		}
	case snapshotMsg:
		m.snapshot = Snapshot(msg)
		m.loaded = true
		if m.exitOnComplete && m.snapshot.Err == nil && m.snapshot.Progress.IsComplete {
			m.quitting = true
			return m, tea.Quit
		}
	case changedMsg:
		return m, tea.Batch(m.loadCmd(), m.waitForChange())
	case changesClosedMsg:
		// Watcher stopped; keep showing the last state.
	}
	return m, nil
}

// View renders the current snapshot.
func (m WatchModel) View() string {
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render("Task progress") + " " + StyleSubtle.Render(m.source) + "\n\n")

	if !m.loaded {
		sb.WriteString(StyleSubtle.Render("Loading...") + "\n")
		return sb.String()
	}

	if m.snapshot.Err != nil {
		sb.WriteString(StyleError.Render(fmt.Sprintf("Error: %v", m.snapshot.Err)) + "\n")
	} else {
		p := m.snapshot.Progress
		sb.WriteString(m.bar.ViewAs(p.Percentage/100) + "\n")
		sb.WriteString(fmt.Sprintf("%d/%d completed (%s%%), %d remaining\n\n", p.Completed, p.Total, FormatPercentage(p), p.Remaining))

		if len(m.snapshot.Pending) == 0 {
			sb.WriteString(StyleSuccess.Render(CompletionBanner) + "\n")
		} else {
			sb.WriteString(StyleSectionTitle.Render("Pending tasks:") + "\n")
			for _, t := range m.snapshot.Pending {
				sb.WriteString(fmt.Sprintf("  %s %s: %s\n", StylePriority.Render("["+t.Priority+"]"), StyleTaskID.Render(t.ID), t.Description))
			}
		}
	}

	if !m.quitting {
		sb.WriteString("\n" + StyleSubtle.Render("r: reload • q: quit") + "\n")
	}
	return sb.String()
}
