//go:build linux

package mmap

import "syscall"

// adviseSequential tells the kernel the mapping is read front to back
func adviseSequential(b []byte) error {
	return syscall.Madvise(b, syscall.MADV_SEQUENTIAL)
}
