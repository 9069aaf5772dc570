package recordio

import (
	"encoding/binary"
	"testing"

	"github.com/adfharrison1/go-recordio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstants(t *testing.T) {
	// Magic value shared with the MXNet RecordIO format
	assert.Equal(t, uint32(0xced7230a), Magic)
	assert.Equal(t, Magic, binary.LittleEndian.Uint32(magicBytes[:]))

	assert.Equal(t, 24, HeaderSize)
	assert.Equal(t, 1<<29-1, MaxRecordSize)
}

func TestEncodeDecodeLength(t *testing.T) {
	cflag, length := decodeLength(encodeLength(0, 0))
	assert.Equal(t, uint32(0), cflag)
	assert.Equal(t, uint32(0), length)

	cflag, length = decodeLength(encodeLength(flagEnd, 1234))
	assert.Equal(t, uint32(flagEnd), cflag)
	assert.Equal(t, uint32(1234), length)

	// The length field saturates at the record size limit
	cflag, length = decodeLength(encodeLength(flagStart, MaxRecordSize))
	assert.Equal(t, uint32(flagStart), cflag)
	assert.Equal(t, uint32(MaxRecordSize), length)
}

func TestPack_HeaderLayout(t *testing.T) {
	packed, err := Pack(domain.Header{ID: 7, Label: []float32{1.5}}, []byte("abcd"))
	require.NoError(t, err)
	require.Len(t, packed, HeaderSize+4+4)

	// flag holds the label vector length
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(packed[0:4]))
	// scalar-label slot stays zero
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(packed[4:8]))
	assert.Equal(t, uint64(7), binary.LittleEndian.Uint64(packed[8:16]))
	assert.Equal(t, uint64(0), binary.LittleEndian.Uint64(packed[16:24]))

	// 1.5 as little-endian float32
	assert.Equal(t, []byte{0x00, 0x00, 0xc0, 0x3f}, packed[24:28])
	assert.Equal(t, []byte("abcd"), packed[28:])
}

func TestPack_EmptyLabel(t *testing.T) {
	packed, err := Pack(domain.Header{ID: 3}, []byte("payload"))
	require.NoError(t, err)
	require.Len(t, packed, HeaderSize+7)

	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(packed[0:4]))
	assert.Equal(t, uint64(3), binary.LittleEndian.Uint64(packed[8:16]))
	assert.Equal(t, []byte("payload"), packed[HeaderSize:])
}

func TestUnpack_RoundTrip(t *testing.T) {
	header := domain.Header{
		ID:    5,
		ID2:   9,
		Label: []float32{1, 10, 20, 1, 1, 2, 3, 4},
	}
	payload := []byte("image bytes")

	packed, err := Pack(header, payload)
	require.NoError(t, err)

	got, gotPayload, err := Unpack(packed)
	require.NoError(t, err)
	assert.Equal(t, header.ID, got.ID)
	assert.Equal(t, header.ID2, got.ID2)
	assert.Equal(t, header.Label, got.Label)
	assert.Equal(t, payload, gotPayload)
}

func TestUnpack_TooShort(t *testing.T) {
	_, _, err := Unpack(make([]byte, 10))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "record too short")
}

func TestUnpack_TruncatedLabelVector(t *testing.T) {
	packed, err := Pack(domain.Header{ID: 1, Label: []float32{1, 2, 3}}, nil)
	require.NoError(t, err)

	// Cut off the last label value
	_, _, err = Unpack(packed[:HeaderSize+8])
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "label vector truncated")
}
