package compression_test

import (
	"bytes"
	"testing"

	"github.com/joeydtaylor/pulsescope/pkg/internal/compression"
)

var allAlgorithms = []compression.Algorithm{
	compression.None,
	compression.Deflate,
	compression.Snappy,
	compression.Zstd,
	compression.Brotli,
	compression.LZ4,
}

func body() []byte {
	b := make([]byte, 4096)
	for i := range b {
		b[i] = byte(i % 7)
	}
	return b
}

func TestCompressDecompress(t *testing.T) {
	in := body()
	for _, a := range allAlgorithms {
		packed, err := compression.Compress(in, a)
		if err != nil {
			t.Fatalf("%s: Compress error: %v", a, err)
		}
		if a.Enabled() && len(packed) >= len(in) {
			t.Errorf("%s: %d bytes did not shrink (%d)", a, len(in), len(packed))
		}
		out, err := compression.Decompress(packed, a, 0)
		if err != nil {
			t.Fatalf("%s: Decompress error: %v", a, err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("%s: body changed in transit", a)
		}
	}
}

func TestDecompressEnforcesLimit(t *testing.T) {
	packed, err := compression.Compress(body(), compression.Zstd)
	if err != nil {
		t.Fatalf("Compress error: %v", err)
	}
	if _, err := compression.Decompress(packed, compression.Zstd, 1024); err == nil {
		t.Fatalf("expected an error for a body over the limit")
	}
	if _, err := compression.Decompress(packed, compression.Zstd, 4096); err != nil {
		t.Fatalf("body at the limit should pass, got %v", err)
	}
}

func TestDecompressRejectsGarbage(t *testing.T) {
	garbage := []byte("definitely not compressed")
	for _, a := range []compression.Algorithm{compression.Deflate, compression.Snappy, compression.Zstd, compression.LZ4} {
		if _, err := compression.Decompress(garbage, a, 0); err == nil {
			t.Errorf("%s: expected an error for garbage input", a)
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]compression.Algorithm{
		"":       compression.None,
		"none":   compression.None,
		" ZSTD ": compression.Zstd,
		"lz4":    compression.LZ4,
		"Brotli": compression.Brotli,
	}
	for in, want := range cases {
		got, err := compression.ParseAlgorithm(in)
		if err != nil || got != want {
			t.Errorf("ParseAlgorithm(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := compression.ParseAlgorithm("rar"); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
}
