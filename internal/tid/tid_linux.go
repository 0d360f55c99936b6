//go:build linux

// Package tid resolves a per-thread identifier for the [tid] field of a
// formatted log record, mirroring the original implementation's use of the
// gettid() syscall.
package tid

import "golang.org/x/sys/unix"

// Get returns the calling OS thread's id. On Linux this is the real thread
// id as seen by tools like ps -eLf, which is what operators expect to find
// in the [tid] field when correlating log lines with a running process.
func Get() int {
	return unix.Gettid()
}
