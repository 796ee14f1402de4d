package address

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"emotiview/internal/artifact"
)

func testSignal() *artifact.Signal {
	return &artifact.Signal{
		Source:      "preprocess",
		Conditions:  3,
		StreamTypes: []string{"EEG", "EDA"},
		StreamNames: []string{"BioSemi ActiveTwo", "BrainAmp GSR"},
	}
}

func TestRewrite_TypeQualified(t *testing.T) {
	got, err := Rewrite("type:EEG*.fif", testSignal())
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != "*xdf1*.fif" {
		t.Errorf("got %q, want *xdf1*.fif", got)
	}
}

func TestRewrite_TypeCaseInsensitive(t *testing.T) {
	got, err := Rewrite("type:eda*.fif", testSignal())
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != "*xdf2*.fif" {
		t.Errorf("got %q, want *xdf2*.fif", got)
	}
}

func TestRewrite_NameSubstring(t *testing.T) {
	got, err := Rewrite("name:BrainAmp*.fif", testSignal())
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != "*xdf2*.fif" {
		t.Errorf("got %q, want *xdf2*.fif", got)
	}
}

func TestRewrite_UnknownTypeEnumeratesAvailable(t *testing.T) {
	_, err := Rewrite("type:ECG*.fif", testSignal())
	cat, ok := artifact.CategoryOf(err)
	if !ok || cat != artifact.AddressingFailure {
		t.Fatalf("err = %v, want addressing-failure", err)
	}
	if !strings.Contains(err.Error(), "EEG") || !strings.Contains(err.Error(), "EDA") {
		t.Errorf("error should enumerate available types: %v", err)
	}
}

func TestRewrite_NoStreamMetadata(t *testing.T) {
	_, err := Rewrite("type:EEG*.fif", &artifact.Signal{Source: "x"})
	cat, ok := artifact.CategoryOf(err)
	if !ok || cat != artifact.AddressingFailure {
		t.Fatalf("err = %v, want addressing-failure", err)
	}
}

func TestRewrite_PlainGlobPassesThrough(t *testing.T) {
	got, err := Rewrite("*.parquet", nil)
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != "*.parquet" {
		t.Errorf("got %q, want *.parquet", got)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"sub01_xdf1_raw.fif", "sub01_xdf2_raw.fif", "sub01_xdf1_raw.json", "notes.txt",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := Resolve(dir, "type:EEG*.fif", testSignal())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{filepath.Join(dir, "sub01_xdf1_raw.fif")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_SortedAndAbsolute(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.parquet", "a.parquet", "c.parquet"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := Resolve(dir, "*.parquet", nil)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.parquet"),
		filepath.Join(dir, "b.parquet"),
		filepath.Join(dir, "c.parquet"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
	for _, p := range got {
		if !filepath.IsAbs(p) {
			t.Errorf("match %q is not absolute", p)
		}
	}
}

func TestResolve_ZeroMatchesFails(t *testing.T) {
	_, err := Resolve(t.TempDir(), "*.fif", nil)
	cat, ok := artifact.CategoryOf(err)
	if !ok || cat != artifact.AddressingFailure {
		t.Fatalf("err = %v, want addressing-failure", err)
	}
}

func TestResolve_MissingFolder(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "absent"), "*.fif", nil)
	cat, ok := artifact.CategoryOf(err)
	if !ok || cat != artifact.InputNotFound {
		t.Fatalf("err = %v, want input-not-found", err)
	}
}
