package recordio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Reader walks a record file sequentially.
type Reader struct {
	file *os.File
	buf  *bufio.Reader
}

// OpenReader opens a record file for sequential reads.
func OpenReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	return &Reader{file: file, buf: bufio.NewReader(file)}, nil
}

// Next returns the next record's packed bytes, or io.EOF at the end of the
// file. A file ending mid-record is reported as a read failure, not EOF.
func (r *Reader) Next() ([]byte, error) {
	return readRecord(r.buf)
}

// Close closes the record file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// readRecord reads one framed record, reassembling continuation frames by
// re-inserting the magic bytes the writer dropped at each split, then skips
// the trailing padding.
func readRecord(r io.Reader) ([]byte, error) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read frame header: %w", err)
	}

	var data []byte
	size := 0
	for {
		if got := binary.LittleEndian.Uint32(header[0:4]); got != Magic {
			return nil, fmt.Errorf("invalid frame magic: %#x", got)
		}
		cflag, length := decodeLength(binary.LittleEndian.Uint32(header[4:8]))

		part := make([]byte, length)
		if _, err := io.ReadFull(r, part); err != nil {
			return nil, fmt.Errorf("failed to read frame body: %w", err)
		}
		data = append(data, part...)
		size += int(length)

		if cflag == flagComplete || cflag == flagEnd {
			break
		}

		data = append(data, magicBytes[:]...)
		size += len(magicBytes)

		if _, err := io.ReadFull(r, header[:]); err != nil {
			return nil, fmt.Errorf("failed to read frame header: %w", err)
		}
	}

	if pad := size % 4; pad != 0 {
		var zeros [4]byte
		if _, err := io.ReadFull(r, zeros[:4-pad]); err != nil {
			return nil, fmt.Errorf("failed to read record padding: %w", err)
		}
	}

	return data, nil
}

// IndexedReader reads records by key through the offset index.
type IndexedReader struct {
	file    *os.File
	keys    []int64
	offsets map[int64]int64
}

// OpenIndexedReader loads the index file and opens the record file for
// keyed reads.
func OpenIndexedReader(recPath, idxPath string) (*IndexedReader, error) {
	keys, offsets, err := loadIndex(idxPath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(recPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	return &IndexedReader{file: file, keys: keys, offsets: offsets}, nil
}

// loadIndex parses the key -> offset lines of an index file.
func loadIndex(path string) ([]int64, map[int64]int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer file.Close()

	var keys []int64
	offsets := make(map[int64]int64)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		keyField, offsetField, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, nil, fmt.Errorf("malformed index line: %q", line)
		}
		key, err := strconv.ParseInt(keyField, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("malformed index key %q: %w", keyField, err)
		}
		offset, err := strconv.ParseInt(offsetField, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("malformed index offset %q: %w", offsetField, err)
		}
		keys = append(keys, key)
		offsets[key] = offset
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read index file: %w", err)
	}

	return keys, offsets, nil
}

// Keys returns the record keys in index-file order.
func (r *IndexedReader) Keys() []int64 {
	return r.keys
}

// ReadKey seeks to the record stored under key and returns its packed
// bytes.
func (r *IndexedReader) ReadKey(key int64) ([]byte, error) {
	offset, ok := r.offsets[key]
	if !ok {
		return nil, fmt.Errorf("no record for key %d", key)
	}
	if _, err := r.file.Seek(offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to record %d: %w", key, err)
	}
	return readRecord(r.file)
}

// Close closes the record file.
func (r *IndexedReader) Close() error {
	return r.file.Close()
}
