//go:build linux || darwin

package mmap

import (
	"os"
	"syscall"
)

// mapFile maps the first size bytes of f read-only
func mapFile(f *os.File, size int) ([]byte, error) {
	return syscall.Mmap(int(f.Fd()), 0, size, syscall.PROT_READ, syscall.MAP_SHARED)
}

// unmap releases a mapping made by mapFile
func unmap(b []byte) error {
	return syscall.Munmap(b)
}
