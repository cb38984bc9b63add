package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestStepUpdateMsg(t *testing.T) {
	m := NewInstallModel("tailwindcss v4.1.6")

	updated, _ := m.Update(StepUpdateMsg{Step: StepResolve, Status: StepDone, Detail: "v4.1.6"})
	m = updated.(InstallModel)

	if m.steps[StepResolve].status != StepDone {
		t.Errorf("expected resolve step done, got %q", m.steps[StepResolve].status)
	}
	if m.steps[StepResolve].detail != "v4.1.6" {
		t.Errorf("expected detail v4.1.6, got %q", m.steps[StepResolve].detail)
	}
	// Later steps unchanged.
	if m.steps[StepDownload].status != StepPending {
		t.Errorf("expected download step pending, got %q", m.steps[StepDownload].status)
	}
}

func TestByteProgressMsg(t *testing.T) {
	m := NewInstallModel("tailwindcss")

	updated, _ := m.Update(ByteProgressMsg{Written: 2 * 1024 * 1024, Total: 8 * 1024 * 1024})
	m = updated.(InstallModel)

	if got := m.steps[StepDownload].detail; got != "2.0 MB / 8.0 MB" {
		t.Errorf("expected byte counter, got %q", got)
	}

	updated, _ = m.Update(ByteProgressMsg{Written: 512})
	m = updated.(InstallModel)
	if got := m.steps[StepDownload].detail; got != "512 B" {
		t.Errorf("expected bare counter without total, got %q", got)
	}
}

func TestViewShowsProgressBarWhileDownloading(t *testing.T) {
	m := NewInstallModel("tailwindcss")

	updated, _ := m.Update(StepUpdateMsg{Step: StepDownload, Status: StepRunning})
	m = updated.(InstallModel)
	updated, _ = m.Update(ByteProgressMsg{Written: 1 * 1024 * 1024, Total: 4 * 1024 * 1024})
	m = updated.(InstallModel)

	view := m.View()
	if !strings.Contains(view, "25%") {
		t.Errorf("expected a percentage in the download row:\n%s", view)
	}
	if !strings.Contains(view, "1.0 MB / 4.0 MB") {
		t.Errorf("expected the byte counter next to the bar:\n%s", view)
	}
}

func TestWorkDoneMsg(t *testing.T) {
	m := NewInstallModel("tailwindcss")

	updated, cmd := m.Update(WorkDoneMsg{})
	m = updated.(InstallModel)

	if !m.Done() {
		t.Error("expected Done() to be true after WorkDoneMsg")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestErrorMsg(t *testing.T) {
	m := NewInstallModel("tailwindcss")

	updated, cmd := m.Update(ErrorMsg{Err: errors.New("boom")})
	m = updated.(InstallModel)

	if !m.Done() {
		t.Error("expected Done() to be true after ErrorMsg")
	}
	if m.Err() == nil {
		t.Error("expected Err() to be non-nil")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestTickStopsAfterDone(t *testing.T) {
	m := NewInstallModel("tailwindcss")

	updated, _ := m.Update(WorkDoneMsg{})
	m = updated.(InstallModel)

	updated, cmd := m.Update(tickMsg(time.Now()))
	m = updated.(InstallModel)
	if cmd != nil {
		t.Error("expected no tick command after done")
	}
	if m.tick != 1 {
		t.Errorf("expected tick=1, got %d", m.tick)
	}
}

func TestCtrlC(t *testing.T) {
	m := NewInstallModel("tailwindcss")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(InstallModel)

	if !m.Done() {
		t.Error("expected Done() to be true after ctrl+c")
	}
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestViewListsSteps(t *testing.T) {
	m := NewInstallModel("tailwindcss v4.1.6")
	updated, _ := m.Update(StepUpdateMsg{Step: StepDownload, Status: StepRunning})
	m = updated.(InstallModel)

	view := m.View()
	if !strings.Contains(view, "tailwindcss v4.1.6") {
		t.Error("expected view to contain the title")
	}
	for _, name := range stepNames {
		if !strings.Contains(view, name) {
			t.Errorf("expected view to contain step %q", name)
		}
	}
}

func TestViewShowsError(t *testing.T) {
	m := NewInstallModel("tailwindcss")
	updated, _ := m.Update(ErrorMsg{Err: errors.New("checksum mismatch")})
	m = updated.(InstallModel)

	if !strings.Contains(m.View(), "checksum mismatch") {
		t.Error("expected view to contain the error")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
		{int64(1.5 * 1024 * 1024 * 1024), "1.5 GB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.n); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
