package legacy

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the framing of an encoded dump.
type Compression uint8

const (
	// CompressionNone writes the plain text.
	CompressionNone Compression = iota
	// CompressionZstd frames the text in zstd blocks (better ratio).
	CompressionZstd
	// CompressionLZ4 frames the text in lz4 blocks (faster).
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// Extension returns the file name suffix for the framing.
func (c Compression) Extension() string {
	switch c {
	case CompressionZstd:
		return ".vtk.zst"
	case CompressionLZ4:
		return ".vtk.lz4"
	default:
		return ".vtk"
	}
}

// ParseCompression parses "none", "zstd" or "lz4".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return CompressionNone, fmt.Errorf("legacy: unknown compression %q", s)
	}
}

var (
	// ErrCorruptBlock is returned when a framed block cannot be decoded.
	ErrCorruptBlock = errors.New("legacy: corrupt block")

	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Block layout: [raw size uint32][stored size uint32][payload]. A stored
// size of zero means the payload is raw.
const (
	blockHeaderSize  = 8
	defaultBlockSize = 256 * 1024
)

// NewWriter returns a writer that frames everything written to it with c.
// Close flushes the final block; it does not close w.
func NewWriter(w io.Writer, c Compression) io.WriteCloser {
	if c == CompressionNone {
		return nopCloser{w}
	}
	return &blockWriter{w: w, c: c, buf: make([]byte, 0, defaultBlockSize)}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

type blockWriter struct {
	w   io.Writer
	c   Compression
	buf []byte
}

func (b *blockWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		space := cap(b.buf) - len(b.buf)
		if space == 0 {
			if err := b.flush(); err != nil {
				return total, err
			}
			space = cap(b.buf)
		}
		n := min(space, len(p))
		b.buf = append(b.buf, p[:n]...)
		total += n
		p = p[n:]
	}
	return total, nil
}

func (b *blockWriter) Close() error {
	return b.flush()
}

func (b *blockWriter) flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	block, err := compressBlock(b.buf, b.c)
	if err != nil {
		return err
	}
	if _, err := b.w.Write(block); err != nil {
		return err
	}
	b.buf = b.buf[:0]
	return nil
}

func compressBlock(data []byte, c Compression) ([]byte, error) {
	var stored []byte
	switch c {
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, err
		}
		stored = dst[:n]
	case CompressionZstd:
		enc := getZstdEncoder()
		stored = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	}

	// Incompressible blocks are kept raw.
	raw := len(stored) == 0 || len(stored) >= len(data)
	if raw {
		stored = data
	}

	out := make([]byte, blockHeaderSize+len(stored))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	if !raw {
		binary.LittleEndian.PutUint32(out[4:], uint32(len(stored)))
	}
	copy(out[blockHeaderSize:], stored)
	return out, nil
}

// NewReader undoes the framing applied by NewWriter with the same c.
func NewReader(r io.Reader, c Compression) io.Reader {
	if c == CompressionNone {
		return r
	}
	return &blockReader{r: bufio.NewReader(r), c: c}
}

type blockReader struct {
	r    *bufio.Reader
	c    Compression
	cur  []byte
	done bool
}

func (b *blockReader) Read(p []byte) (int, error) {
	for len(b.cur) == 0 {
		if b.done {
			return 0, io.EOF
		}
		if err := b.next(); err != nil {
			if errors.Is(err, io.EOF) {
				b.done = true
				continue
			}
			return 0, err
		}
	}
	n := copy(p, b.cur)
	b.cur = b.cur[n:]
	return n, nil
}

func (b *blockReader) next() error {
	var hdr [blockHeaderSize]byte
	if _, err := io.ReadFull(b.r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: truncated header", ErrCorruptBlock)
		}
		return err
	}
	rawSize := binary.LittleEndian.Uint32(hdr[0:])
	storedSize := binary.LittleEndian.Uint32(hdr[4:])

	if storedSize == 0 {
		raw := make([]byte, rawSize)
		if _, err := io.ReadFull(b.r, raw); err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}
		b.cur = raw
		return nil
	}

	stored := make([]byte, storedSize)
	if _, err := io.ReadFull(b.r, stored); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptBlock, err)
	}

	out := make([]byte, rawSize)
	switch b.c {
	case CompressionZstd:
		dec := getZstdDecoder()
		decoded, err := dec.DecodeAll(stored, out[:0])
		zstdDecoderPool.Put(dec)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}
		out = decoded
	default:
		n, err := lz4.UncompressBlock(stored, out)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}
		out = out[:n]
	}
	if uint32(len(out)) != rawSize {
		return fmt.Errorf("%w: size mismatch", ErrCorruptBlock)
	}
	b.cur = out
	return nil
}
