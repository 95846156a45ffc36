// Package codec implements the canonical binary encoding chainsaw uses for
// the keys and structured values it stores in bbolt: fixed-width uint64s,
// raw label text, and length-prefixed uint64 lists (plus a length-prefixed
// byte-slice form). Blob payloads are stored as the raw bytes given, not
// encoded. The encoding is
// deterministic and round-trips byte-for-byte, which is what lets equal
// values compare equal as bbolt keys and what keeps list order stable
// across a write/read cycle.
package codec

import (
	"encoding/binary"
	"fmt"
)

// EncodeUint64 encodes v as 8 big-endian bytes.
func EncodeUint64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

// DecodeUint64 decodes 8 big-endian bytes produced by EncodeUint64.
func DecodeUint64(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("codec: decode uint64: want 8 bytes, got %d", len(b))
	}
	return binary.BigEndian.Uint64(b), nil
}

// EncodeText returns the raw bytes of s with no length prefix. Label text
// is stored this way (never length-prefixed) so that lexicographic byte
// order on the stored key matches lexicographic order on the text itself,
// which is what makes ordered prefix scans over labels_inverse correct.
func EncodeText(s string) []byte {
	return []byte(s)
}

// DecodeText is the inverse of EncodeText.
func DecodeText(b []byte) string {
	return string(b)
}

// EncodeBytes length-prefixes an arbitrary byte slice: a 4-byte big-endian
// length followed by the bytes. The namespace trees do not use it: blob
// payloads and stored label text values are written raw.
func EncodeBytes(b []byte) []byte {
	out := make([]byte, 4+len(b))
	binary.BigEndian.PutUint32(out, uint32(len(b)))
	copy(out[4:], b)
	return out
}

// DecodeBytes is the inverse of EncodeBytes.
func DecodeBytes(b []byte) ([]byte, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("codec: decode bytes: truncated length prefix")
	}
	n := binary.BigEndian.Uint32(b)
	if uint64(len(b)) != 4+uint64(n) {
		return nil, fmt.Errorf("codec: decode bytes: want %d bytes, got %d", 4+n, len(b))
	}
	out := make([]byte, n)
	copy(out, b[4:])
	return out, nil
}

// EncodeUint64List encodes a slice of uint64 in insertion order: a 4-byte
// count followed by that many 8-byte big-endian values. Order is preserved
// exactly as given — callers that need set semantics dedup before encoding.
func EncodeUint64List(vs []uint64) []byte {
	out := make([]byte, 4+8*len(vs))
	binary.BigEndian.PutUint32(out[0:4], uint32(len(vs)))
	for i, v := range vs {
		binary.BigEndian.PutUint64(out[4+8*i:4+8*i+8], v)
	}
	return out
}

// DecodeUint64List is the inverse of EncodeUint64List.
func DecodeUint64List(b []byte) ([]uint64, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("codec: decode uint64 list: truncated count")
	}
	n := binary.BigEndian.Uint32(b[0:4])
	want := 4 + 8*int(n)
	if len(b) != want {
		return nil, fmt.Errorf("codec: decode uint64 list: want %d bytes, got %d", want, len(b))
	}
	out := make([]uint64, n)
	for i := range out {
		out[i] = binary.BigEndian.Uint64(b[4+8*i : 4+8*i+8])
	}
	return out, nil
}
