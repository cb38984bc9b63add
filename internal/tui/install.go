package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const tickInterval = 150 * time.Millisecond

// InstallStep indexes one stage of a binary install.
type InstallStep int

const (
	StepResolve InstallStep = iota
	StepDownload
	StepVerify
	StepInstall
	stepCount
)

var stepNames = [stepCount]string{
	StepResolve:  "resolve release",
	StepDownload: "download artifact",
	StepVerify:   "verify artifact",
	StepInstall:  "install to cache",
}

// Step status vocabulary; rendered through StatusStyle.
const (
	StepPending = "pending"
	StepRunning = "running"
	StepDone    = "done"
	StepSkipped = "skipped"
	StepFailed  = "failed"
)

// tickMsg drives the spinner.
type tickMsg time.Time

// StepUpdateMsg moves one step to a new status with optional detail.
type StepUpdateMsg struct {
	Step   InstallStep
	Status string
	Detail string
}

// ByteProgressMsg updates the download step's byte counter.
type ByteProgressMsg struct {
	Written int64
	Total   int64
}

// WorkDoneMsg signals that all background work has completed.
type WorkDoneMsg struct{}

// ErrorMsg signals a fatal error; the TUI should quit.
type ErrorMsg struct {
	Err error
}

type stepState struct {
	status string
	detail string
}

// InstallModel is a bubbletea model rendering the fixed stages of a
// binary install as they progress.
type InstallModel struct {
	title   string
	steps   [stepCount]stepState
	bar     progress.Model
	written int64
	total   int64
	tick    int
	done    bool
	err     error
}

// NewInstallModel creates an install model titled for the requested
// version. All steps start pending.
func NewInstallModel(title string) InstallModel {
	m := InstallModel{title: title, bar: progress.New(progress.WithDefaultGradient())}
	m.bar.Width = 30
	for i := range m.steps {
		m.steps[i] = stepState{status: StepPending}
	}
	return m
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init satisfies the tea.Model interface.
func (m InstallModel) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies the tea.Model interface.
func (m InstallModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick++
		if m.done {
			return m, nil
		}
		return m, scheduleTick()

	case StepUpdateMsg:
		if msg.Step >= 0 && msg.Step < stepCount {
			m.steps[msg.Step].status = msg.Status
			m.steps[msg.Step].detail = msg.Detail
		}
		return m, nil

	case ByteProgressMsg:
		m.written, m.total = msg.Written, msg.Total
		detail := FormatBytes(msg.Written)
		if msg.Total > 0 {
			detail = fmt.Sprintf("%s / %s", FormatBytes(msg.Written), FormatBytes(msg.Total))
		}
		m.steps[StepDownload].detail = detail
		return m, nil

	case WorkDoneMsg:
		m.done = true
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View satisfies the tea.Model interface.
func (m InstallModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.title))
	b.WriteByte('\n')

	for i := InstallStep(0); i < stepCount; i++ {
		st := m.steps[i]
		detail := st.detail
		if i == StepDownload && st.status == StepRunning && m.total > 0 {
			detail = m.bar.ViewAs(float64(m.written)/float64(m.total)) + "  " + st.detail
		}
		fmt.Fprintf(&b, "  %s %-18s %s\n",
			m.marker(st.status),
			stepNames[i],
			detail,
		)
	}

	if m.done && m.err != nil {
		fmt.Fprintf(&b, "\nError: %v\n", m.err)
	}
	return b.String()
}

func (m InstallModel) marker(status string) string {
	switch status {
	case StepRunning:
		return StatusStyle(status).Render(spinnerFrames[m.tick%len(spinnerFrames)])
	case StepDone:
		return StatusStyle(status).Render("✓")
	case StepFailed:
		return StatusStyle(status).Render("✗")
	case StepSkipped:
		return StatusStyle(status).Render("-")
	default:
		return StatusStyle(StepPending).Render("·")
	}
}

// Done returns whether the model has finished (work done or error).
func (m InstallModel) Done() bool {
	return m.done
}

// Err returns any fatal error that occurred.
func (m InstallModel) Err() error {
	return m.err
}

// FormatBytes renders a byte count for humans.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for n := n / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
