//go:build darwin

package mmap

// adviseSequential is a no-op: the darwin syscall package has no madvise
func adviseSequential([]byte) error {
	return nil
}
