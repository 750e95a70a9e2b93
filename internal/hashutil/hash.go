// Package hashutil contains internal helpers for key hashing and shard
// routing.
package hashutil

import (
	"encoding/binary"
	"fmt"

	"github.com/spaolacci/murmur3"
)

// Sum64 hashes common key types with 64-bit murmur3.
// Supported: string, [16|32|64]byte, all int/uint widths, uintptr, and
// fmt.Stringer as a fallback. For other key types supply a custom hasher
// upstream (sharded.WithHasher). Panicking on unsupported types is
// deliberate to avoid silently poor shard distribution.
func Sum64[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return murmur3.Sum64([]byte(v))
	case [16]byte:
		return murmur3.Sum64(v[:])
	case [32]byte:
		return murmur3.Sum64(v[:])
	case [64]byte:
		return murmur3.Sum64(v[:])

	// Integer-like keys: hash the 8 little-endian bytes of the value.
	case uint8:
		return sum64Uint(uint64(v))
	case uint16:
		return sum64Uint(uint64(v))
	case uint32:
		return sum64Uint(uint64(v))
	case uint64:
		return sum64Uint(v)
	case uint:
		return sum64Uint(uint64(v))
	case uintptr:
		return sum64Uint(uint64(v))
	case int8:
		return sum64Uint(uint64(uint8(v)))
	case int16:
		return sum64Uint(uint64(uint16(v)))
	case int32:
		return sum64Uint(uint64(uint32(v)))
	case int64:
		return sum64Uint(uint64(v))
	case int:
		return sum64Uint(uint64(v))

	// Fallback for pseudo-keys via String() (avoid if you can).
	case fmt.Stringer:
		return murmur3.Sum64([]byte(v.String()))
	default:
		panic(fmt.Sprintf("hashutil.Sum64: unsupported key type %T; convert the key to string or provide a custom hasher", k))
	}
}

func sum64Uint(u uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], u)
	return murmur3.Sum64(b[:])
}
