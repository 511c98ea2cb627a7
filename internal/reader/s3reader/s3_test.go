package s3reader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/piot/chunk-reader/internal/chunk"
	"github.com/piot/chunk-reader/internal/codec"
)

type fakeS3 struct {
	objects map[string][]byte
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Key)
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func settingsFrom(opts ...Option) settings {
	s := settings{codec: codec.Identity{}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
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
			if got := settingsFrom(WithPrefix(tt.input)).prefix; got != tt.want {
				t.Errorf("prefix = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	s := settingsFrom(WithRegion("eu-north-1"), WithEndpoint("http://localhost:9000"), WithCodec(codec.Zstd{}))
	if s.region != "eu-north-1" {
		t.Errorf("region = %q, want %q", s.region, "eu-north-1")
	}
	if s.endpoint != "http://localhost:9000" {
		t.Errorf("endpoint = %q, want %q", s.endpoint, "http://localhost:9000")
	}
	if s.codec.Name() != "zstd" {
		t.Errorf("codec = %q, want zstd", s.codec.Name())
	}
}

func TestReader_FetchOctets(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{"assets/ladder_top.png": []byte("png bytes")}}
	r := newReader(fake, "bucket", settingsFrom(WithPrefix("assets/")))

	got, err := r.FetchOctets(context.Background(), chunk.NewResourceID("ladder_top.png"))
	if err != nil {
		t.Fatalf("FetchOctets() error = %v", err)
	}
	if string(got) != "png bytes" {
		t.Errorf("FetchOctets() = %q, want %q", got, "png bytes")
	}
	if len(fake.keys) != 1 || fake.keys[0] != "assets/ladder_top.png" {
		t.Errorf("requested keys = %v, want [assets/ladder_top.png]", fake.keys)
	}
}

func TestReader_NotFound(t *testing.T) {
	r := newReader(&fakeS3{}, "bucket", settingsFrom())

	_, err := r.FetchOctets(context.Background(), chunk.NewResourceID("missing"))
	var nf *chunk.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("FetchOctets() error = %v, want *chunk.NotFoundError", err)
	}
	if nf.Resource.String() != "missing" {
		t.Errorf("Resource = %q, want %q", nf.Resource, "missing")
	}
}

func TestReader_OtherError(t *testing.T) {
	cause := errors.New("access denied")
	r := newReader(&fakeS3{err: cause}, "bucket", settingsFrom())

	_, err := r.FetchOctets(context.Background(), chunk.NewResourceID("a"))
	if !errors.Is(err, chunk.ErrIO) {
		t.Errorf("FetchOctets() error = %v, want ErrIO", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("FetchOctets() error = %v, want cause preserved", err)
	}
}

func TestReader_Close(t *testing.T) {
	r := newReader(&fakeS3{}, "bucket", settingsFrom())
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
