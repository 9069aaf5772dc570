package convert

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// Magic bytes to identify the metadata sidecar format
	MagicBytes = "RECM"
	// Current version
	FormatVersion = 1
	// File extension for the sidecar
	FileExtension = ".meta"
	// FlagCompressed marks an lz4 block-compressed payload
	FlagCompressed = 1 << 0
)

// FileHeader represents the header of the metadata sidecar
type FileHeader struct {
	Magic    [4]byte // "RECM"
	Version  uint8   // Format version
	Flags    uint8   // Payload flags
	Reserved [2]byte // Reserved for future use
}

// WriteHeader writes the sidecar header to the given writer
func WriteHeader(w io.Writer, flags uint8) error {
	header := FileHeader{
		Magic:    [4]byte{'R', 'E', 'C', 'M'},
		Version:  FormatVersion,
		Flags:    flags,
		Reserved: [2]byte{0, 0},
	}

	return binary.Write(w, binary.LittleEndian, header)
}

// ReadHeader reads and validates the sidecar header
func ReadHeader(r io.Reader) (*FileHeader, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Validate magic bytes
	if string(header.Magic[:]) != MagicBytes {
		return nil, fmt.Errorf("invalid file format: expected %s, got %s", MagicBytes, string(header.Magic[:]))
	}

	// Validate version
	if header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported file version: %d", header.Version)
	}

	return &header, nil
}

// CategoryLabel records one row of the category remap: the original
// category id, its name and the dense label the converter assigned.
type CategoryLabel struct {
	ID    int64  `msgpack:"id"`
	Name  string `msgpack:"name"`
	Label int    `msgpack:"label"`
}

// Meta describes a completed conversion run. It is written next to the
// container so consumers can interpret record labels without the original
// annotation file.
type Meta struct {
	Images     int             `msgpack:"images"`
	Records    int             `msgpack:"records"`
	Shuffled   bool            `msgpack:"shuffled"`
	Categories []CategoryLabel `msgpack:"categories"`
}
