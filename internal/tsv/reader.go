package tsv

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/imdbload/internal/checksum"
	"github.com/vvka-141/imdbload/pkg/imdbload"
)

// readBufferSize keeps disk and decompression reads large enough that the
// COPY transport is never starved on multi-gigabyte dataset files.
const readBufferSize = 4 << 20

// File is an open dataset source. It implements io.Reader over the bytes
// that follow whatever ReadLine has already consumed, so the header can be
// inspected and the rest of the stream handed wholesale to COPY. Everything
// read passes through a SHA-256 digest of the decompressed content.
type File struct {
	raw    io.Closer
	gz     *gzip.Reader
	br     *bufio.Reader
	digest *checksum.Digest
}

// Open opens path for streaming. A .gz suffix selects transparent
// decompression; any other name is read as plain TSV regardless of content.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	file := &File{raw: f, digest: checksum.New()}
	var src io.Reader = f
	if strings.HasSuffix(path, imdbload.GzipSuffix) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		file.gz = gz
		src = gz
	}
	file.br = bufio.NewReaderSize(io.TeeReader(src, file.digest), readBufferSize)

	return file, nil
}

// ReadLine consumes and returns the next line with trailing line-ending
// characters trimmed. At end of input it returns what remains (possibly
// empty) and no error, so an empty file yields an empty header rather
// than a failure.
func (f *File) ReadLine() (string, error) {
	line, err := f.br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Read returns bytes starting where the last ReadLine left off. Nothing
// already buffered is lost.
func (f *File) Read(p []byte) (int, error) {
	return f.br.Read(p)
}

// SHA256 returns the hex digest of the decompressed content read so far.
// Once the stream has been consumed to EOF this is the fingerprint of the
// whole file, header line included.
func (f *File) SHA256() string {
	return f.digest.Sum()
}

// Close closes the gzip layer (when present) and then the underlying file.
func (f *File) Close() error {
	var errs []error
	if f.gz != nil {
		if err := f.gz.Close(); err != nil {
			errs = append(errs, err)
		}
		f.gz = nil
	}
	if f.raw != nil {
		if err := f.raw.Close(); err != nil {
			errs = append(errs, err)
		}
		f.raw = nil
	}
	return errors.Join(errs...)
}
