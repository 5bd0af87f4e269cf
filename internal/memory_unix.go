//go:build linux || darwin || freebsd

package internal

import (
	"math"

	"golang.org/x/sys/unix"
)

// platformMemoryLimit returns the soft address space limit of the process, or
// zero if it is unlimited or unavailable.
func platformMemoryLimit() int64 {
	var lim unix.Rlimit
	if unix.Getrlimit(unix.RLIMIT_AS, &lim) != nil {
		return 0
	}
	cur := uint64(lim.Cur)
	if cur >= math.MaxInt64 {
		return 0
	}
	return int64(cur)
}
