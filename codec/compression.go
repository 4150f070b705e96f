package codec

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the stream compression of an export.
type Compression uint8

const (
	// CompressionNone writes the encoded bytes as they are.
	CompressionNone Compression = iota
	// CompressionLZ4 uses the LZ4 frame format (fast).
	CompressionLZ4
	// CompressionZSTD uses zstd (better ratio).
	CompressionZSTD
)

// ErrUnknownCompression is returned for unsupported compression names.
var ErrUnknownCompression = errors.New("codec: unknown compression")

// ParseCompression maps "none", "lz4" and "zstd" to a Compression.
// The empty string means none.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// Extension returns the conventional file suffix, empty for none.
func (c Compression) Extension() string {
	switch c {
	case CompressionLZ4:
		return ".lz4"
	case CompressionZSTD:
		return ".zst"
	default:
		return ""
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter wraps w with compression c. Close flushes the compressor but
// does not close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionZSTD:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("codec: zstd writer: %w", err)
		}
		return enc, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

// NewReader wraps r with decompression c.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("codec: zstd reader: %w", err)
		}
		return dec.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}

// Encode marshals v with c and writes it to w through compression comp.
func Encode(w io.Writer, c Codec, comp Compression, v any) error {
	if c == nil {
		c = Default
	}
	data, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("codec %s: marshal: %w", c.Name(), err)
	}
	cw, err := NewWriter(w, comp)
	if err != nil {
		return err
	}
	if _, err := cw.Write(data); err != nil {
		_ = cw.Close()
		return fmt.Errorf("codec: write: %w", err)
	}
	return cw.Close()
}

// Decode reads a value written by Encode.
func Decode(r io.Reader, c Codec, comp Compression, v any) error {
	if c == nil {
		c = Default
	}
	cr, err := NewReader(r, comp)
	if err != nil {
		return err
	}
	defer cr.Close()
	data, err := io.ReadAll(cr)
	if err != nil {
		return fmt.Errorf("codec: read: %w", err)
	}
	if err := c.Unmarshal(data, v); err != nil {
		return fmt.Errorf("codec %s: unmarshal: %w", c.Name(), err)
	}
	return nil
}
