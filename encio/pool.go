package encio

import (
	"math/bits"
	"sync"
)

func init() {
	for i := range buffers {
		size := 1 << i
		buffers[i].New = func() interface{} {
			return make([]byte, 0, size)
		}
	}
}

// buffers[i] holds buffers with a capacity of at least 1<<i.
var buffers [32]sync.Pool

// GetBuffer returns a buffer with a len of 0 and a cap of at least n from the pool.
func GetBuffer(n int) []byte {
	i := 0
	if n > 1 {
		i = bits.Len(uint(n - 1))
	}
	if i >= len(buffers) {
		return make([]byte, 0, n)
	}
	return buffers[i].Get().([]byte)[:0]
}

// PutBuffer places a buffer in the pool. The caller must not use it afterwards.
func PutBuffer(buff []byte) {
	if cap(buff) == 0 {
		return
	}
	i := bits.Len(uint(cap(buff))) - 1
	if i >= len(buffers) {
		return
	}
	buffers[i].Put(buff[:0])
}
