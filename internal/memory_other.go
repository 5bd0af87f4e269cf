//go:build !linux && !darwin && !freebsd

package internal

// platformMemoryLimit returns zero, meaning no limit. Only platforms with an
// address space rlimit have a default.
func platformMemoryLimit() int64 {
	return 0
}
