// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package status

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ManuGH/kpai/internal/log"
	"github.com/ManuGH/kpai/internal/metrics"
	"github.com/google/renameio/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
)

// CompressedExt is appended to the status path when compression is on.
const CompressedExt = ".zst"

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ErrClosed is returned by Write after Close.
var ErrClosed = errors.New("status sink closed")

// Probe initialises the status compressor. A failure means status files
// are written uncompressed.
func Probe() (*zstd.Encoder, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedFastest),
	)
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	return enc, nil
}

// Sink writes status reports to a single file, replacing it atomically.
type Sink struct {
	path   string
	enc    *zstd.Encoder
	closed bool
	logger zerolog.Logger
}

// NewSink returns a sink writing to path. When compress is set the
// compressor is probed; if that fails a warning is logged and the sink
// writes plain text.
func NewSink(path string, compress bool) *Sink {
	s := &Sink{
		path:   path,
		logger: log.WithComponent("status"),
	}
	if compress {
		enc, err := Probe()
		if err != nil {
			s.logger.Warn().Err(err).Msg("status compression unavailable, writing plain text")
		} else {
			s.enc = enc
		}
	}
	metrics.SetCompressionAvailable(s.enc != nil)
	return s
}

// Path returns the file the sink writes to.
func (s *Sink) Path() string {
	if s.enc != nil {
		return s.path + CompressedExt
	}
	return s.path
}

// Compressed reports whether the sink compresses its output.
func (s *Sink) Compressed() bool { return s.enc != nil }

// Write renders r and replaces the status file with it.
func (s *Sink) Write(r Report) (err error) {
	defer func() { metrics.RecordStatusDump(err) }()

	if s.closed {
		return ErrClosed
	}
	var buf bytes.Buffer
	if err := Write(&buf, r); err != nil {
		return fmt.Errorf("render status: %w", err)
	}
	data := buf.Bytes()
	if s.enc != nil {
		data = s.enc.EncodeAll(data, nil)
	}

	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("mkdir status dir: %w", err)
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	s.logger.Debug().Str(log.FieldPath, path).Int(log.FieldFrame, r.Frame).Int("bytes", len(data)).Msg("status written")
	return nil
}

// Close releases the compressor. Path and Compressed keep reporting the
// sink's settings afterwards.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.enc == nil {
		return nil
	}
	return s.enc.Close()
}

// ReadFile parses a status file, decompressing it if needed.
func ReadFile(path string) (Report, error) {
	// #nosec G304 -- status path comes from the operator
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Report{}, fmt.Errorf("read status: %w", err)
	}
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return Report{}, fmt.Errorf("zstd decoder: %w", err)
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return Report{}, fmt.Errorf("decompress status: %w", err)
		}
	}
	return Parse(bytes.NewReader(data))
}
