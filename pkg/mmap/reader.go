// Package mmap reads files through read-only memory mappings
package mmap

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// Reader provides zero-copy access to the contents of a mapped file
type Reader struct {
	file *os.File
	data []byte
	size int64

	mu sync.RWMutex
}

// NewReader maps filename into memory. An empty file yields a Reader with
// no data and no mapping.
func NewReader(filename string) (*Reader, error) {
	file, err := os.Open(filename) //nolint:gosec // G304: path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		_ = file.Close()
		return &Reader{}, nil
	}
	if int64(int(size)) != size {
		_ = file.Close()
		return nil, fmt.Errorf("file of %d bytes is too large to map", size)
	}

	data, err := mapFile(file, int(size))
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to mmap file: %w", err)
	}
	// advice failures only cost read-ahead
	_ = adviseSequential(data)

	return &Reader{file: file, data: data, size: size}, nil
}

// Bytes returns the mapped contents. The slice is invalid after Close.
func (r *Reader) Bytes() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

// Size returns the file size in bytes
func (r *Reader) Size() int64 {
	return r.size
}

// Close unmaps the file and closes it
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.data != nil {
		err = unmap(r.data)
		r.data = nil
	}
	if r.file != nil {
		if closeErr := r.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.file = nil
	}
	return err
}

// LineReader splits a mapped file into lines
type LineReader struct {
	reader *Reader
	data   []byte
	offset int
}

// NewLineReader maps filename and positions a line reader at its start
func NewLineReader(filename string) (*LineReader, error) {
	reader, err := NewReader(filename)
	if err != nil {
		return nil, err
	}
	return &LineReader{reader: reader, data: reader.Bytes()}, nil
}

// Next returns the next line without its "\n" or "\r\n" terminator. A final
// line without a terminator is returned too. The slice aliases the mapping
// and must be copied before Close.
func (lr *LineReader) Next() ([]byte, bool) {
	if lr.offset >= len(lr.data) {
		return nil, false
	}

	rest := lr.data[lr.offset:]
	line := rest
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		line = rest[:i]
		lr.offset += i + 1
	} else {
		lr.offset = len(lr.data)
	}
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line, true
}

// Offset returns the number of bytes consumed so far
func (lr *LineReader) Offset() int {
	return lr.offset
}

// Close releases the mapping
func (lr *LineReader) Close() error {
	lr.data = nil
	return lr.reader.Close()
}
