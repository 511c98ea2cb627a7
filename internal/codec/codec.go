// Package codec decodes chunks that object stores keep compressed.
package codec

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Codec compresses and decompresses chunk payloads.
type Codec interface {
	// Reader wraps r to decompress data read from it.
	Reader(r io.Reader) (io.ReadCloser, error)
	// Writer wraps w to compress data written to it.
	Writer(w io.Writer) (io.WriteCloser, error)
	// Name returns the codec name used in configuration ("identity", "gzip", "zstd").
	Name() string
}

// ByName returns the codec registered under name.
// An empty name selects Identity.
func ByName(name string) (Codec, error) {
	switch name {
	case "", "identity", "none":
		return Identity{}, nil
	case "gzip", "gz":
		return Gzip{}, nil
	case "zstd", "zst":
		return Zstd{}, nil
	default:
		return nil, fmt.Errorf("unknown codec: %s", name)
	}
}

// Decode reads all of r through c.
func Decode(c Codec, r io.Reader) ([]byte, error) {
	dec, err := c.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return data, nil
}

// Identity passes bytes through unchanged.
type Identity struct{}

// Reader returns r unchanged. Closing the result does not close r.
func (Identity) Reader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func (Identity) Writer(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

func (Identity) Name() string { return "identity" }

// Gzip is the gzip codec.
type Gzip struct{}

func (Gzip) Reader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

func (Gzip) Writer(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

func (Gzip) Name() string { return "gzip" }

// Zstd is the zstd codec.
type Zstd struct{}

func (Zstd) Reader(r io.Reader) (io.ReadCloser, error) {
	decoder, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return decoder.IOReadCloser(), nil
}

func (Zstd) Writer(w io.Writer) (io.WriteCloser, error) {
	return zstd.NewWriter(w)
}

func (Zstd) Name() string { return "zstd" }

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
