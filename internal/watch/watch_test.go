package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWaitFor_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "erp_group_signal.parquet")
	if err := os.WriteFile(want, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := WaitFor(ctx, dir, "*_signal.parquet", nil)
	if err != nil {
		t.Fatalf("WaitFor: %v", err)
	}
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestWaitFor_FileArrivesLater(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "eda_group_signal.parquet")
	go func() {
		time.Sleep(100 * time.Millisecond)
		os.WriteFile(want, []byte("x"), 0o644)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := WaitFor(ctx, dir, "*_signal.parquet", nil)
	if err != nil {
		t.Fatalf("WaitFor: %v", err)
	}
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestWaitFor_Timeout(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := WaitFor(ctx, dir, "*_signal.parquet", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestWaitFor_IgnoresNonMatching(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "erp_group_signal.parquet")
	go func() {
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0o644)
		time.Sleep(50 * time.Millisecond)
		os.WriteFile(want, []byte("x"), 0o644)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got, err := WaitFor(ctx, dir, "*_signal.parquet", nil)
	if err != nil {
		t.Fatalf("WaitFor: %v", err)
	}
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
