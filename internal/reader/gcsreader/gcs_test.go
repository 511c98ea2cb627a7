package gcsreader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"cloud.google.com/go/storage"

	"github.com/piot/chunk-reader/internal/chunk"
	"github.com/piot/chunk-reader/internal/codec"
)

// newFakeReader returns a Reader whose objects are served from a map.
func newFakeReader(objects map[string][]byte, opts ...Option) *Reader {
	r := &Reader{
		open: func(ctx context.Context, key string) (io.ReadCloser, error) {
			data, ok := objects[key]
			if !ok {
				return nil, storage.ErrObjectNotExist
			}
			return io.NopCloser(bytes.NewReader(data)), nil
		},
		codec: codec.Identity{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"prefix", "prefix/"},
		{"prefix/", "prefix/"},
		{"a/b/c", "a/b/c/"},
		{"a/b/c/", "a/b/c/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r := &Reader{}
			WithPrefix(tt.input)(r)
			if r.prefix != tt.want {
				t.Errorf("prefix = %q, want %q", r.prefix, tt.want)
			}
		})
	}
}

func TestReader_key(t *testing.T) {
	r := &Reader{prefix: "assets/v1/"}
	if got := r.key(chunk.NewResourceID("ladder_top.png")); got != "assets/v1/ladder_top.png" {
		t.Errorf("key() = %q, want %q", got, "assets/v1/ladder_top.png")
	}
}

func TestReader_FetchOctets(t *testing.T) {
	r := newFakeReader(map[string][]byte{"assets/a.bin": []byte("object data")}, WithPrefix("assets"))

	got, err := r.FetchOctets(context.Background(), chunk.NewResourceID("a.bin"))
	if err != nil {
		t.Fatalf("FetchOctets() error = %v", err)
	}
	if string(got) != "object data" {
		t.Errorf("FetchOctets() = %q, want %q", got, "object data")
	}
}

func TestReader_FetchOctets_Zstd(t *testing.T) {
	original := []byte("compressed object data")
	var buf bytes.Buffer
	w, err := codec.Zstd{}.Writer(&buf)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	w.Write(original)
	w.Close()

	r := newFakeReader(map[string][]byte{"a.bin": buf.Bytes()}, WithCodec(codec.Zstd{}))

	got, err := r.FetchOctets(context.Background(), chunk.NewResourceID("a.bin"))
	if err != nil {
		t.Fatalf("FetchOctets() error = %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Errorf("FetchOctets() = %q, want %q", got, original)
	}
}

func TestReader_NotFound(t *testing.T) {
	r := newFakeReader(map[string][]byte{})

	_, err := r.FetchOctets(context.Background(), chunk.NewResourceID("missing"))
	if !errors.Is(err, chunk.ErrNotFound) {
		t.Errorf("FetchOctets() error = %v, want ErrNotFound", err)
	}
}

func TestReader_CorruptObject(t *testing.T) {
	r := newFakeReader(map[string][]byte{"a.bin": []byte("not gzip")}, WithCodec(codec.Gzip{}))

	_, err := r.FetchOctets(context.Background(), chunk.NewResourceID("a.bin"))
	if !errors.Is(err, chunk.ErrIO) {
		t.Errorf("FetchOctets() error = %v, want ErrIO", err)
	}
}

func TestReader_Close_NoClient(t *testing.T) {
	if err := newFakeReader(nil).Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
