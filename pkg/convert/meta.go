package convert

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
)

// SaveMeta writes the sidecar: file header, raw payload size, then the
// msgpack-encoded metadata, lz4 block-compressed when that gains anything.
func SaveMeta(filename string, meta *Meta) error {
	msgpackData, err := msgpack.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	flags := uint8(FlagCompressed)
	payload := make([]byte, lz4.CompressBlockBound(len(msgpackData)))
	var hashTable [1 << 16]int
	n, err := lz4.CompressBlock(msgpackData, payload, hashTable[:])
	if err != nil {
		return fmt.Errorf("failed to compress metadata: %w", err)
	}
	if n == 0 {
		// Incompressible payload; store the msgpack bytes as-is.
		flags = 0
		payload = msgpackData
	} else {
		payload = payload[:n]
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := WriteHeader(file, flags); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(file, binary.LittleEndian, uint32(len(msgpackData))); err != nil {
		return fmt.Errorf("failed to write payload size: %w", err)
	}
	if _, err := file.Write(payload); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}

// LoadMeta reads a sidecar written by SaveMeta.
func LoadMeta(filename string) (*Meta, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	header, err := ReadHeader(file)
	if err != nil {
		return nil, fmt.Errorf("invalid file header: %w", err)
	}

	var rawSize uint32
	if err := binary.Read(file, binary.LittleEndian, &rawSize); err != nil {
		return nil, fmt.Errorf("failed to read payload size: %w", err)
	}

	payload, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	msgpackData := payload
	if header.Flags&FlagCompressed != 0 {
		msgpackData = make([]byte, rawSize)
		n, err := lz4.UncompressBlock(payload, msgpackData)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress metadata: %w", err)
		}
		msgpackData = msgpackData[:n]
	}
	if len(msgpackData) != int(rawSize) {
		return nil, fmt.Errorf("metadata size mismatch: expected %d bytes, got %d", rawSize, len(msgpackData))
	}

	var meta Meta
	if err := msgpack.Unmarshal(msgpackData, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	return &meta, nil
}
