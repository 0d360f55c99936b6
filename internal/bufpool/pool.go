// Package bufpool provides a sync.Pool-backed byte buffer pool used by the
// record formatter to avoid an allocation on every logged line.
package bufpool

import (
	"bytes"
	"sync"
)

const defaultCapacity = 512

// maxPooledCap is the largest buffer capacity this pool will hold onto;
// anything bigger is let go to avoid bloating the pool with one-off large
// records.
const maxPooledCap = 8192

var pool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, defaultCapacity))
	},
}

// Get returns a reset, ready-to-use buffer.
func Get() *bytes.Buffer {
	buf := pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// Put returns buf to the pool. Oversized buffers are dropped instead of
// pooled so one large record doesn't pin megabytes of capacity forever.
func Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledCap {
		return
	}
	buf.Reset()
	pool.Put(buf)
}
