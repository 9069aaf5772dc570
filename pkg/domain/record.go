package domain

// Header is the packed metadata stored in front of each record payload.
// The conversion pipeline sets ID to the 0-based output index, leaves ID2
// zero and puts the flat numeric record into Label.
type Header struct {
	ID    uint64
	ID2   uint64
	Label []float32
}

// RecordSink defines the interface for appending records to an indexed
// container. Implementations pack the header and payload, write them under
// the given key and return the byte offset the record starts at.
// This is the interface the conversion pipeline writes through, so the
// on-disk layout is swappable.
type RecordSink interface {
	Append(key int64, header Header, payload []byte) (int64, error)
	Close() error
}
