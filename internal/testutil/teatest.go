// Package testutil drives bubbletea programs from tests.
package testutil

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TestProgram wraps a Bubble Tea program for testing
type TestProgram struct {
	program *tea.Program
	output  *safeBuffer
	done    chan tea.Model
	t       *testing.T
}

// safeBuffer lets the renderer write while the test reads
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewTestProgram starts model in the background. Input only comes from
// Send, Type and SendKey.
func NewTestProgram(t *testing.T, model tea.Model) *TestProgram {
	t.Helper()

	tp := &TestProgram{
		output: &safeBuffer{},
		done:   make(chan tea.Model, 1),
		t:      t,
	}
	tp.program = tea.NewProgram(
		model,
		tea.WithInput(nil),
		tea.WithOutput(tp.output),
	)

	go func() {
		final, err := tp.program.Run()
		if err != nil {
			t.Logf("Program error: %v", err)
		}
		tp.done <- final
	}()
	t.Cleanup(func() { tp.program.Kill() })

	return tp
}

// Send sends a message to the program
func (tp *TestProgram) Send(msg tea.Msg) {
	tp.program.Send(msg)
}

// Type simulates typing a string
func (tp *TestProgram) Type(s string) {
	for _, r := range s {
		tp.Send(tea.KeyMsg{
			Type:  tea.KeyRunes,
			Runes: []rune{r},
		})
	}
}

// SendKey sends a specific key press
func (tp *TestProgram) SendKey(key tea.KeyType) {
	tp.Send(tea.KeyMsg{Type: key})
}

// Output returns everything rendered so far
func (tp *TestProgram) Output() string {
	return tp.output.String()
}

// WaitForOutput waits for specific text to appear in output
func (tp *TestProgram) WaitForOutput(needle string, timeout time.Duration) bool {
	tp.t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(tp.Output(), needle) {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// FinalModel waits for the program to exit and returns its last model
func (tp *TestProgram) FinalModel(timeout time.Duration) tea.Model {
	tp.t.Helper()

	select {
	case final := <-tp.done:
		return final
	case <-time.After(timeout):
		tp.t.Fatalf("program did not exit within %v", timeout)
		return nil
	}
}
