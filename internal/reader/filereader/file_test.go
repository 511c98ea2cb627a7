package filereader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/piot/chunk-reader/internal/chunk"
)

const assetsDir = "testdata/assets/"

var (
	pngHeader  = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d}
	pngTrailer = []byte{0x42, 0x60, 0x82}
)

func checkLadderTop(t *testing.T, found []byte) {
	t.Helper()
	if len(found) != 699 {
		t.Fatalf("len = %d, want 699", len(found))
	}
	if !bytes.Equal(found[:5], pngHeader) {
		t.Errorf("header = % x, want % x", found[:5], pngHeader)
	}
	if !bytes.Equal(found[696:699], pngTrailer) {
		t.Errorf("trailer = % x, want % x", found[696:699], pngTrailer)
	}
}

func TestReader_LoadSmallPNG(t *testing.T) {
	r := New(assetsDir)

	found, err := r.FetchOctets(context.Background(), chunk.NewResourceID("ladder_top.png"))
	if err != nil {
		t.Fatalf("FetchOctets() error = %v", err)
	}
	checkLadderTop(t, found)
}

func TestDebugReader_LoadSmallPNG(t *testing.T) {
	r := NewDebug(assetsDir, 100*time.Millisecond)

	start := time.Now()
	found, err := r.FetchOctets(context.Background(), chunk.NewResourceID("ladder_top.png"))
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("FetchOctets() error = %v", err)
	}
	checkLadderTop(t, found)

	if elapsed < 100*time.Millisecond {
		t.Errorf("FetchOctets() took %v, want at least 100ms", elapsed)
	}
}

func TestReader_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}

	data := []byte("chunk data\x00\x01\x02")
	if err := os.WriteFile(filepath.Join(dir, "nested", "a.bin"), data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	readers := map[string]chunk.Reader{
		"file":  New(dir),
		"debug": NewDebug(dir, time.Millisecond),
	}

	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			id := chunk.NewResourceID("nested/a.bin")
			for i := 0; i < 3; i++ {
				got, err := r.FetchOctets(context.Background(), id)
				if err != nil {
					t.Fatalf("FetchOctets() error = %v", err)
				}
				if !bytes.Equal(got, data) {
					t.Errorf("FetchOctets() = %q, want %q", got, data)
				}
			}
		})
	}
}

func TestReader_MissingIsIOError(t *testing.T) {
	r := New(t.TempDir())
	id := chunk.NewResourceID("missing.png")

	_, err := r.FetchOctets(context.Background(), id)

	var ioErr *chunk.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("FetchOctets() error = %v, want *chunk.IOError", err)
	}
	if ioErr.Resource != id {
		t.Errorf("Resource = %q, want %q", ioErr.Resource, id)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("IOError should carry the underlying not-exist cause")
	}
	if errors.Is(err, chunk.ErrNotFound) {
		t.Error("Reader should not report a missing file as ErrNotFound")
	}
}

func TestDebugReader_MissingIsNotFound(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewDebug(t.TempDir(), time.Hour, WithLogger(zap.New(core)))
	id := chunk.NewResourceID("missing.png")

	start := time.Now()
	_, err := r.FetchOctets(context.Background(), id)

	var nf *chunk.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("FetchOctets() error = %v, want *chunk.NotFoundError", err)
	}
	if nf.Resource != id {
		t.Errorf("Resource = %q, want %q", nf.Resource, id)
	}
	if time.Since(start) > time.Minute {
		t.Error("missing resource should not wait for the delay")
	}
	if logs.FilterMessage("path does not exist").Len() != 1 {
		t.Errorf("expected one warning, got %v", logs.All())
	}
}

func TestDebugReader_DirectoryIsIOError(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}
	r := NewDebug(dir, 0)

	_, err := r.FetchOctets(context.Background(), chunk.NewResourceID("sub"))
	if !errors.Is(err, chunk.ErrIO) {
		t.Errorf("FetchOctets() error = %v, want ErrIO", err)
	}
}

func TestReader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	readers := []chunk.Reader{New(assetsDir), NewDebug(assetsDir, time.Hour)}
	for _, r := range readers {
		if _, err := r.FetchOctets(ctx, chunk.NewResourceID("ladder_top.png")); !errors.Is(err, context.Canceled) {
			t.Errorf("FetchOctets() error = %v, want context.Canceled", err)
		}
	}
}

func TestReader_AbsoluteIDReplacesPrefix(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "abs.bin")
	want := []byte{0x01, 0x02, 0x03}
	if err := os.WriteFile(abs, want, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	ctx := context.Background()
	id := chunk.NewResourceID(abs)
	readers := []chunk.Reader{New(assetsDir), NewDebug(assetsDir, 0)}
	for _, r := range readers {
		got, err := r.FetchOctets(ctx, id)
		if err != nil {
			t.Fatalf("%T.FetchOctets() error = %v", r, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%T.FetchOctets() = %v, want %v", r, got, want)
		}
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		prefix string
		id     string
		want   string
	}{
		{"assets/", "ladder_top.png", filepath.Join("assets", "ladder_top.png")},
		{"assets", "sub/a.bin", filepath.Join("assets", "sub", "a.bin")},
		{"", "a.bin", "a.bin"},
		{"assets/", "/abs/a.bin", "/abs/a.bin"},
	}
	for _, tt := range tests {
		if got := resolve(tt.prefix, chunk.NewResourceID(tt.id)); got != tt.want {
			t.Errorf("resolve(%q, %q) = %q, want %q", tt.prefix, tt.id, got, tt.want)
		}
	}
}

func TestAccessors(t *testing.T) {
	if got := New("assets").Prefix(); got != "assets" {
		t.Errorf("Prefix() = %q, want %q", got, "assets")
	}
	if got := NewDebug("assets", 5*time.Millisecond).Delay(); got != 5*time.Millisecond {
		t.Errorf("Delay() = %v, want 5ms", got)
	}
}
