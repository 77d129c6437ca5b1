// Package compression packs pulse message bodies for brokers whose message format
// this module defines. The algorithm travels in a message header so receivers need
// no configuration to unpack it.
package compression

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

// Algorithm names a compression scheme. The empty value and None leave data as is.
type Algorithm string

const (
	None    Algorithm = "none"
	Deflate Algorithm = "deflate"
	Snappy  Algorithm = "snappy"
	Zstd    Algorithm = "zstd"
	Brotli  Algorithm = "brotli"
	LZ4     Algorithm = "lz4"
)

// HeaderKey is the message header that carries the algorithm name.
const HeaderKey = "Pulse-Encoding"

// DefaultMaxSize bounds a decompressed body. The largest u64 record a producer
// can describe is far beyond anything a monitor should buffer.
const DefaultMaxSize = 64 << 20

// ParseAlgorithm accepts an algorithm name, case-insensitively. "" maps to None.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(strings.TrimSpace(s))); a {
	case "", None:
		return None, nil
	case Deflate, Snappy, Zstd, Brotli, LZ4:
		return a, nil
	default:
		return None, fmt.Errorf("unknown compression %q", s)
	}
}

// Enabled reports whether a actually transforms data.
func (a Algorithm) Enabled() bool {
	return a != "" && a != None
}

// Compress packs data with a. None returns data unchanged.
func Compress(data []byte, a Algorithm) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch a {
	case "", None:
		return data, nil
	case Deflate:
		w = gzip.NewWriter(&b)
	case Snappy:
		w = snappy.NewBufferedWriter(&b)
	case Zstd:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case Brotli:
		w = brotli.NewWriterLevel(&b, brotli.DefaultCompression)
	case LZ4:
		w = lz4.NewWriter(&b)
	default:
		return nil, fmt.Errorf("unknown compression %q", a)
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// Decompress unpacks data produced by Compress. Output larger than maxSize is an
// error; maxSize <= 0 means DefaultMaxSize.
func Decompress(data []byte, a Algorithm, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	var r io.Reader

	switch a {
	case "", None:
		return data, nil
	case Deflate:
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case Snappy:
		r = snappy.NewReader(bytes.NewReader(data))
	case Zstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case Brotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case LZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unknown compression %q", a)
	}

	var b bytes.Buffer
	n, err := io.Copy(&b, io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if n > maxSize {
		return nil, fmt.Errorf("decompressed body exceeds %d bytes", maxSize)
	}
	return b.Bytes(), nil
}
