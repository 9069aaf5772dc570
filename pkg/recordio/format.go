package recordio

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/adfharrison1/go-recordio/pkg/domain"
)

const (
	// Magic marks the start of every record frame
	Magic uint32 = 0xced7230a
	// HeaderSize is the fixed size of the packed record header
	HeaderSize = 24
	// MaxRecordSize is the largest packed record a frame can carry;
	// the upper 3 bits of the length word hold the continuation flag
	MaxRecordSize = 1<<29 - 1
)

// Continuation flags stored in the top bits of a frame's length word.
const (
	flagComplete = 0
	flagStart    = 1
	flagMiddle   = 2
	flagEnd      = 3
)

// magicBytes is Magic in its on-disk little-endian order
var magicBytes = [4]byte{0x0a, 0x23, 0xd7, 0xce}

func encodeLength(cflag uint32, length uint32) uint32 {
	return cflag<<29 | length
}

func decodeLength(word uint32) (cflag uint32, length uint32) {
	return word >> 29, word & MaxRecordSize
}

// irHeader is the on-disk layout of the packed record header. Flag holds
// the label vector length; Value is the scalar-label slot and stays zero
// when a vector is present.
type irHeader struct {
	Flag  uint32
	Value float32
	ID    uint64
	ID2   uint64
}

// Pack serializes a header and payload into a single record: the 24-byte
// fixed header, the label vector as float32 values, then the raw payload.
func Pack(header domain.Header, payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize + 4*len(header.Label) + len(payload))

	raw := irHeader{
		Flag: uint32(len(header.Label)),
		ID:   header.ID,
		ID2:  header.ID2,
	}
	if err := binary.Write(&buf, binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("failed to write record header: %w", err)
	}
	if len(header.Label) > 0 {
		if err := binary.Write(&buf, binary.LittleEndian, header.Label); err != nil {
			return nil, fmt.Errorf("failed to write label vector: %w", err)
		}
	}
	buf.Write(payload)

	return buf.Bytes(), nil
}

// Unpack splits a packed record back into its header and payload.
func Unpack(data []byte) (domain.Header, []byte, error) {
	if len(data) < HeaderSize {
		return domain.Header{}, nil, fmt.Errorf("record too short: %d bytes", len(data))
	}

	var raw irHeader
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &raw); err != nil {
		return domain.Header{}, nil, fmt.Errorf("failed to read record header: %w", err)
	}

	header := domain.Header{ID: raw.ID, ID2: raw.ID2}
	rest := data[HeaderSize:]

	if raw.Flag > 0 {
		need := 4 * int(raw.Flag)
		if len(rest) < need {
			return domain.Header{}, nil, fmt.Errorf("label vector truncated: need %d bytes, have %d", need, len(rest))
		}
		header.Label = make([]float32, raw.Flag)
		if err := binary.Read(bytes.NewReader(rest[:need]), binary.LittleEndian, header.Label); err != nil {
			return domain.Header{}, nil, fmt.Errorf("failed to read label vector: %w", err)
		}
		rest = rest[need:]
	}

	return header, rest, nil
}
