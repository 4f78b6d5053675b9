package ui

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRunWithSpinner_ReturnsWorkResult(t *testing.T) {
	got, err := runWithSpinner(context.Background(), "Working", func(context.Context) (int, error) {
		return 42, nil
	}, tea.WithInput(nil), tea.WithOutput(io.Discard))
	if err != nil {
		t.Fatalf("runWithSpinner() error = %v", err)
	}
	if got != 42 {
		t.Errorf("runWithSpinner() = %d, want 42", got)
	}
}

func TestRunWithSpinner_WorkErrorPassedThrough(t *testing.T) {
	wantErr := errors.New("lpstat not found")
	_, err := runWithSpinner(context.Background(), "Working", func(context.Context) (int, error) {
		return 0, wantErr
	}, tea.WithInput(nil), tea.WithOutput(io.Discard))
	if !errors.Is(err, wantErr) {
		t.Errorf("runWithSpinner() error = %v, want %v", err, wantErr)
	}
}

func TestRunWithSpinner_WaitsForWorkWhenProgramStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var finished atomic.Bool
	_, err := runWithSpinner(ctx, "Working", func(ctx context.Context) (int, error) {
		<-ctx.Done()
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
		return 0, ctx.Err()
	}, tea.WithInput(nil), tea.WithOutput(io.Discard))

	if err == nil {
		t.Fatal("runWithSpinner() expected error from a killed program")
	}
	if !finished.Load() {
		t.Error("runWithSpinner() returned while work was still running")
	}
}
