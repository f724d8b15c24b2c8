//go:build (amd64 || arm64 || ppc64le || riscv64) && !nounsafe && !purego && !appengine

package le

import (
	"unsafe"
)

// Load16 loads 2 bytes from b at index i.
func Load16[I Indexer](b []byte, i I) uint16 {
	return *(*uint16)(unsafe.Pointer(uintptr(unsafe.Pointer(&b[0])) + uintptr(i)*unsafe.Sizeof(b[0])))
}

// Load64 loads 8 bytes from b at index i.
func Load64[I Indexer](b []byte, i I) uint64 {
	return *(*uint64)(unsafe.Pointer(uintptr(unsafe.Pointer(&b[0])) + uintptr(i)*unsafe.Sizeof(b[0])))
}

// Store16 stores v at the start of b.
func Store16(b []byte, v uint16) {
	*(*uint16)(unsafe.Pointer(&b[0])) = v
}

// Store64 stores v at the start of b.
func Store64(b []byte, v uint64) {
	*(*uint64)(unsafe.Pointer(&b[0])) = v
}
