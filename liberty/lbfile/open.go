package lbfile

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Open opens path for reading, transparently decompressing it through
// klauspost/compress/gzip when the name ends in .gz or the file's first two
// bytes are the gzip magic number, mirroring Caddy's use of the same
// library for on-the-fly HTTP compression.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") && !looksGzipped(f) {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipReadCloser{gz: gz, file: f}, nil
}

func looksGzipped(f *os.File) bool {
	var magic [2]byte
	n, err := f.Read(magic[:])
	f.Seek(0, io.SeekStart)
	return err == nil && n == 2 && magic[0] == 0x1f && magic[1] == 0x8b
}

type gzipReadCloser struct {
	gz   *gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	fileErr := g.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}
