package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64RoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 42, 1 << 63} {
		got, err := DecodeUint64(EncodeUint64(v))
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestUint64ListRoundTripPreservesOrder(t *testing.T) {
	in := []uint64{5, 1, 3, 1, 5}
	got, err := DecodeUint64List(EncodeUint64List(in))
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestUint64ListEmpty(t *testing.T) {
	got, err := DecodeUint64List(EncodeUint64List(nil))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestBytesRoundTrip(t *testing.T) {
	in := []byte("hello world")
	got, err := DecodeBytes(EncodeBytes(in))
	require.NoError(t, err)
	require.Equal(t, in, got)
}

func TestTextRoundTripIsIdentity(t *testing.T) {
	require.Equal(t, "content_type\x1fcode", DecodeText(EncodeText("content_type\x1fcode")))
}

func TestDecodeUint64WrongLength(t *testing.T) {
	_, err := DecodeUint64([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestDecodeUint64ListTruncated(t *testing.T) {
	_, err := DecodeUint64List([]byte{0, 0, 0, 2, 1, 2})
	require.Error(t, err)
}
