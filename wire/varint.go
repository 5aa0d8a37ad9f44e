package wire

// ZigZagEncode32/64 map a signed integer to an unsigned one so that small
// magnitude values (positive or negative) varint-encode to few bytes —
// the sint32/sint64 proto encoding. ZigZagDecode32/64 invert the mapping.
func ZigZagEncode32(v int32) uint32 { return uint32((v << 1) ^ (v >> 31)) }
func ZigZagDecode32(v uint32) int32 { return int32((v >> 1)) ^ -int32(v&1) }

func ZigZagEncode64(v int64) uint64 { return uint64((v << 1) ^ (v >> 63)) }
func ZigZagDecode64(v uint64) int64 { return int64(v>>1) ^ -int64(v&1) }
