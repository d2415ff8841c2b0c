package blur

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestNewWatcherInline(t *testing.T) {
	r := newRig(t)
	if _, err := NewWatcher(r.fx); !errors.Is(err, ErrNotFileBacked) {
		t.Errorf("NewWatcher() = %v, want ErrNotFileBacked", err)
	}
}

func TestWatcherApply(t *testing.T) {
	fs := writeShaderFiles(t, t.TempDir())
	r := newRig(t, WithSource(fs))
	r.ready(t)

	w, err := NewWatcher(r.fx)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if ok, err := w.Apply(); ok || err != nil {
		t.Fatalf("Apply() with nothing pending = %v, %v", ok, err)
	}

	built := len(r.dev.programs)
	w.pending.Store(true)
	ok, err := w.Apply()
	if !ok || err != nil {
		t.Fatalf("Apply() = %v, %v", ok, err)
	}
	if len(r.dev.programs) != built+2 {
		t.Errorf("Apply rebuilt %d programs, want 2", len(r.dev.programs)-built)
	}
	if w.Pending() {
		t.Error("Apply left the reload pending")
	}
}

func TestWatcherRun(t *testing.T) {
	fs := writeShaderFiles(t, t.TempDir())
	r := newRig(t, WithSource(fs))
	r.ready(t)

	w, err := NewWatcher(r.fx)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	data, err := os.ReadFile(fs.Fragment)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fs.Fragment, append(data, '\n'), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !w.Pending() {
		if time.Now().After(deadline) {
			t.Fatal("write to a shader file not detected")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}

	if ok, err := w.Apply(); !ok || err != nil {
		t.Errorf("Apply() = %v, %v", ok, err)
	}
}
