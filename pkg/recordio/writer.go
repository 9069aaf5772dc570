package recordio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/adfharrison1/go-recordio/pkg/domain"
)

// Writer appends framed records to a single file. Records containing the
// magic byte sequence are split into continuation frames at each occurrence
// so a reader can resynchronize on magic boundaries; every record is padded
// to a 4-byte boundary.
type Writer struct {
	file   *os.File
	buf    *bufio.Writer
	offset int64
}

// NewWriter creates or truncates the record file at path.
func NewWriter(path string) (*Writer, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create record file: %w", err)
	}
	return &Writer{file: file, buf: bufio.NewWriter(file)}, nil
}

// WriteRecord appends one record and returns the byte offset it starts at.
func (w *Writer) WriteRecord(data []byte) (int64, error) {
	if len(data) > MaxRecordSize {
		return 0, fmt.Errorf("record too large: %d bytes", len(data))
	}

	start := w.offset

	// Locate non-overlapping magic occurrences inside the record.
	var splits []int
	for i := 0; i+4 <= len(data); i++ {
		if data[i] == magicBytes[0] && data[i+1] == magicBytes[1] &&
			data[i+2] == magicBytes[2] && data[i+3] == magicBytes[3] {
			splits = append(splits, i)
			i += 3
		}
	}

	if len(splits) == 0 {
		if err := w.writeFrame(flagComplete, data); err != nil {
			return 0, err
		}
	} else {
		begin := 0
		for n, i := range splits {
			cflag := uint32(flagMiddle)
			if n == 0 {
				cflag = flagStart
			}
			if err := w.writeFrame(cflag, data[begin:i]); err != nil {
				return 0, err
			}
			begin = i + 4
		}
		if err := w.writeFrame(flagEnd, data[begin:]); err != nil {
			return 0, err
		}
	}

	// Pad to a 4-byte boundary based on the original record size.
	if pad := len(data) % 4; pad != 0 {
		var zeros [4]byte
		if _, err := w.buf.Write(zeros[:4-pad]); err != nil {
			return 0, fmt.Errorf("failed to write record padding: %w", err)
		}
		w.offset += int64(4 - pad)
	}

	return start, nil
}

func (w *Writer) writeFrame(cflag uint32, part []byte) error {
	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], Magic)
	binary.LittleEndian.PutUint32(header[4:8], encodeLength(cflag, uint32(len(part))))

	if _, err := w.buf.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write frame header: %w", err)
	}
	if _, err := w.buf.Write(part); err != nil {
		return fmt.Errorf("failed to write frame body: %w", err)
	}
	w.offset += int64(len(header) + len(part))
	return nil
}

// Tell returns the number of bytes written so far, which is the offset the
// next record will start at.
func (w *Writer) Tell() int64 {
	return w.offset
}

// Close flushes buffered frames and closes the record file.
func (w *Writer) Close() error {
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to flush record file: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close record file: %w", closeErr)
	}
	return nil
}

// IndexedWriter pairs a record file with a text index mapping each record
// key to its byte offset. It implements domain.RecordSink.
type IndexedWriter struct {
	rec     *Writer
	idxFile *os.File
	idx     *bufio.Writer
}

// NewIndexedWriter creates or truncates the record and index files.
func NewIndexedWriter(recPath, idxPath string) (*IndexedWriter, error) {
	rec, err := NewWriter(recPath)
	if err != nil {
		return nil, err
	}
	idxFile, err := os.Create(idxPath)
	if err != nil {
		rec.Close()
		return nil, fmt.Errorf("failed to create index file: %w", err)
	}
	return &IndexedWriter{rec: rec, idxFile: idxFile, idx: bufio.NewWriter(idxFile)}, nil
}

// Append packs the header and payload, writes the record, then records its
// offset under key in the index. A failed record write leaves no index
// entry behind.
func (w *IndexedWriter) Append(key int64, header domain.Header, payload []byte) (int64, error) {
	packed, err := Pack(header, payload)
	if err != nil {
		return 0, err
	}
	offset, err := w.rec.WriteRecord(packed)
	if err != nil {
		return 0, err
	}
	if _, err := fmt.Fprintf(w.idx, "%d\t%d\n", key, offset); err != nil {
		return 0, fmt.Errorf("failed to write index entry: %w", err)
	}
	return offset, nil
}

// Close flushes and closes both files. Records appended before a mid-run
// failure stay readable once Close has run.
func (w *IndexedWriter) Close() error {
	recErr := w.rec.Close()
	idxErr := w.idx.Flush()
	closeErr := w.idxFile.Close()
	if recErr != nil {
		return recErr
	}
	if idxErr != nil {
		return fmt.Errorf("failed to flush index file: %w", idxErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close index file: %w", closeErr)
	}
	return nil
}
