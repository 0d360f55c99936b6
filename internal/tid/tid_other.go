//go:build !linux

package tid

import "runtime"

// Get returns a stand-in identifier on platforms without a gettid()
// equivalent: the program counter of the immediate caller, which is at
// least stable for the life of a goroutine that never migrates frames.
func Get() int {
	pc, _, _, _ := runtime.Caller(1)
	return int(pc)
}
