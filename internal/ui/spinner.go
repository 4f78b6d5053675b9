package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type workDoneMsg struct{}

// spinnerModel shows a spinner until the work goroutine reports back.
type spinnerModel struct {
	spinner spinner.Model
	label   string
	cancel  context.CancelFunc
	done    bool
}

func newSpinnerModel(label string, cancel context.CancelFunc) spinnerModel {
	return spinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(SpinnerStyle),
		),
		label:  label,
		cancel: cancel,
	}
}

// Init implements tea.Model
func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model
func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("  %s %s\n", m.spinner.View(), m.label)
}

// RunWithSpinner runs work while a spinner is drawn on stderr. Ctrl+C
// cancels the context handed to work.
func RunWithSpinner[T any](ctx context.Context, label string, work func(ctx context.Context) (T, error)) (T, error) {
	return runWithSpinner(ctx, label, work, tea.WithOutput(os.Stderr))
}

// runWithSpinner never returns while work is still running.
func runWithSpinner[T any](ctx context.Context, label string, work func(ctx context.Context) (T, error), opts ...tea.ProgramOption) (T, error) {
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append(opts, tea.WithContext(ctx))
	p := tea.NewProgram(newSpinnerModel(label, cancel), opts...)

	var (
		result  T
		workErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, workErr = work(workCtx)
		p.Send(workDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		var zero T
		return zero, fmt.Errorf("spinner failed: %w", err)
	}
	<-done
	return result, workErr
}
