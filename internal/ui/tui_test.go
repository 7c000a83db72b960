package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/checklist-go/internal/checklist"
	"github.com/nibzard/checklist-go/internal/store"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T) (*tuiModel, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	view := checklist.NewView(mem)
	view.Initialize()
	return newTUIModel("BE DISCIPLINED", view, nil), mem
}

func TestModelToggleUnderCursor(t *testing.T) {
	m, mem := newTestModel(t)

	m.Update(runeKey('x'))
	state := m.view.State()
	if !state.Rows[0].Selected || state.Rows[1].Selected {
		t.Fatalf("expected only row 0 selected, got %+v", state.Rows)
	}
	if state.Progress != 50 {
		t.Errorf("progress = %v, want 50", state.Progress)
	}
	if got, _, _ := mem.Get(checklist.KeyProgress); got != "50" {
		t.Errorf("stored progress = %q, want 50", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.view.State().Progress; got != 100 {
		t.Errorf("progress = %v, want 100", got)
	}

	m.Update(runeKey('x'))
	if got := m.view.State().Progress; got != 50 {
		t.Errorf("progress after untoggle = %v, want 50", got)
	}
}

func TestModelCursorBounds(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runeKey('k'))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after moving up at top", m.cursor)
	}
	for i := 0; i < 5; i++ {
		m.Update(runeKey('j'))
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1 at bottom", m.cursor)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestModelWebpageIsNoop(t *testing.T) {
	mem := store.NewMemory()
	view := checklist.NewView(mem)
	view.Initialize()

	var logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.DebugLevel)
	m := newTUIModel("t", view, logger)

	before := view.State()
	_, cmd := m.Update(runeKey('w'))
	if cmd != nil {
		t.Error("webpage key should not return a command")
	}
	if after := view.State(); after.Progress != before.Progress {
		t.Errorf("state changed: %+v -> %+v", before, after)
	}
	if _, found, _ := mem.Get(checklist.KeyRows); found {
		t.Error("webpage key should not write to the store")
	}
	if !strings.Contains(logs.String(), "webpage") {
		t.Errorf("expected debug log, got %q", logs.String())
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", msg)
		}
	}
}

func TestModelHelpAndResize(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runeKey('?'))
	if !m.help.ShowAll {
		t.Error("expected full help after ?")
	}
	m.Update(runeKey('?'))
	if m.help.ShowAll {
		t.Error("expected short help after second ?")
	}

	m.Update(tea.WindowSizeMsg{Width: 200, Height: 40})
	if m.progress.Width != maxBarWidth {
		t.Errorf("bar width = %d, want %d", m.progress.Width, maxBarWidth)
	}
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 40})
	if m.progress.Width != 26 {
		t.Errorf("bar width = %d, want 26", m.progress.Width)
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runeKey('x'))

	out := m.View()
	for _, want := range []string{"BE DISCIPLINED", "Homework 3", "To Kill a Mocking Bird", "2020-09-10", "50%", "Webpage"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestWriteChecklist(t *testing.T) {
	state := checklist.State{
		Rows: []checklist.Row{
			{Category: "Math", Description: "Homework 3", Date: "2020-09-10", Selected: true},
			{Category: "Reading", Description: "To Kill a Mocking Bird", Date: "2020-05-21"},
		},
		Progress: 50,
	}

	var buf bytes.Buffer
	if err := WriteChecklist(&buf, "BE DISCIPLINED", state); err != nil {
		t.Fatalf("WriteChecklist() error = %v", err)
	}

	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "BE DISCIPLINED" || lines[1] != strings.Repeat("=", 14) {
		t.Errorf("unexpected header: %q", lines[:2])
	}
	out := buf.String()
	if !strings.Contains(out, "[x]") || !strings.Contains(out, "[ ]") {
		t.Errorf("expected both checkbox states:\n%s", out)
	}
	if !strings.Contains(out, "Progress: 50% (1/2)") {
		t.Errorf("expected progress line:\n%s", out)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("bytes.Buffer should not be a TTY")
	}
}
