package convert

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/adfharrison1/go-recordio/pkg/coco"
	"github.com/adfharrison1/go-recordio/pkg/domain"
	"github.com/adfharrison1/go-recordio/pkg/recordio"
)

// Output file names within the output directory.
const (
	RecFileName  = "coco.rec"
	IdxFileName  = "coco.idx"
	MetaFileName = "coco" + FileExtension
)

// Converter drives a single dataset-to-container conversion run.
type Converter struct {
	shuffle          bool
	shuffleSeed      int64
	progressInterval int
}

// New creates a converter. The shuffle seed defaults to the current time;
// fix it with WithShuffleSeed for a reproducible permutation.
func New(options ...Option) *Converter {
	converter := &Converter{
		shuffleSeed:      time.Now().UnixNano(),
		progressInterval: 100,
	}

	// Apply options
	for _, option := range options {
		option(converter)
	}

	return converter
}

// Result summarizes a completed conversion.
type Result struct {
	Records    int
	Categories int
	Shuffled   bool
	RecPath    string
	IdxPath    string
	MetaPath   string
}

// Run converts the annotation file plus image directory into the indexed
// container under outDir. The writer is closed on every path, so records
// appended before a mid-run failure stay readable; the meta sidecar is only
// written after a fully successful pass.
func (c *Converter) Run(annotationsPath, imageDir, outDir string) (*Result, error) {
	dataset, err := coco.LoadDataset(annotationsPath)
	if err != nil {
		return nil, err
	}
	index := coco.NewIndex(dataset)
	groups := coco.GroupByImage(dataset.Annotations)

	images := dataset.Images
	if c.shuffle {
		images = make([]domain.Image, len(dataset.Images))
		copy(images, dataset.Images)
		rng := rand.New(rand.NewSource(c.shuffleSeed))
		rng.Shuffle(len(images), func(i, j int) {
			images[i], images[j] = images[j], images[i]
		})
	}

	recPath := filepath.Join(outDir, RecFileName)
	idxPath := filepath.Join(outDir, IdxFileName)
	sink, err := recordio.NewIndexedWriter(recPath, idxPath)
	if err != nil {
		return nil, err
	}

	written, writeErr := c.WriteRecords(images, groups, index, imageDir, sink)
	closeErr := sink.Close()
	if writeErr != nil {
		return nil, writeErr
	}
	if closeErr != nil {
		return nil, closeErr
	}

	metaPath := filepath.Join(outDir, MetaFileName)
	if err := SaveMeta(metaPath, buildMeta(dataset, index, written, c.shuffle)); err != nil {
		return nil, err
	}

	return &Result{
		Records:    written,
		Categories: index.NumCategories(),
		Shuffled:   c.shuffle,
		RecPath:    recPath,
		IdxPath:    idxPath,
		MetaPath:   metaPath,
	}, nil
}

// WriteRecords runs the record loop over the given image order: read the
// image's bytes, build its numeric record, append both to the sink under
// the next sequential key. The maps are owned by the caller. Returns the
// number of records appended, which on failure is also the position of the
// image that failed.
func (c *Converter) WriteRecords(images []domain.Image, groups map[int64][]domain.Annotation, index *coco.Index, imageDir string, sink domain.RecordSink) (int, error) {
	for i, img := range images {
		payload, err := os.ReadFile(filepath.Join(imageDir, img.FileName))
		if err != nil {
			return i, fmt.Errorf("failed to read image file: %w", err)
		}

		record, err := BuildRecord(img, groups[img.ID], index)
		if err != nil {
			return i, fmt.Errorf("image %d: %w", img.ID, err)
		}

		header := domain.Header{ID: uint64(i), Label: record}
		if _, err := sink.Append(int64(i), header, payload); err != nil {
			return i, fmt.Errorf("failed to append record %d: %w", i, err)
		}

		if c.progressInterval > 0 && i%c.progressInterval == 0 {
			log.Printf("INFO: processed %d of %d images", i, len(images))
		}
	}

	return len(images), nil
}

// BuildRecord flattens an image and its annotations into the numeric
// record: image id, width, height, one label per annotation, then the
// bounding boxes flattened in the same annotation order.
func BuildRecord(img domain.Image, annotations []domain.Annotation, index *coco.Index) ([]float32, error) {
	record := make([]float32, 0, 3+5*len(annotations))
	record = append(record, float32(img.ID), float32(img.Width), float32(img.Height))

	for _, ann := range annotations {
		label, err := index.Label(ann.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", ann.ID, err)
		}
		record = append(record, float32(label))
	}
	for _, ann := range annotations {
		for _, v := range ann.BBox {
			record = append(record, float32(v))
		}
	}

	return record, nil
}

func buildMeta(dataset *domain.Dataset, index *coco.Index, records int, shuffled bool) *Meta {
	labels := index.Labels()
	meta := &Meta{
		Images:     len(dataset.Images),
		Records:    records,
		Shuffled:   shuffled,
		Categories: make([]CategoryLabel, 0, index.NumCategories()),
	}

	seen := make(map[int64]bool, len(dataset.Categories))
	for _, cat := range dataset.Categories {
		if seen[cat.ID] {
			continue
		}
		seen[cat.ID] = true
		meta.Categories = append(meta.Categories, CategoryLabel{
			ID:    cat.ID,
			Name:  cat.Name,
			Label: labels[cat.ID],
		})
	}

	return meta
}
