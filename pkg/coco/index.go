package coco

import (
	"errors"
	"fmt"

	"github.com/adfharrison1/go-recordio/pkg/domain"
)

// ErrUnknownCategory is returned when an annotation references a
// category_id that does not appear in the dataset's category list.
var ErrUnknownCategory = errors.New("unknown category")

// Index holds the per-run lookup maps built from a dataset: annotations by
// id, images by id, and the category remap. The remap assigns each distinct
// category id a dense 1-based label in first-seen order.
type Index struct {
	annotations map[int64]domain.Annotation
	images      map[int64]domain.Image
	labels      map[int64]int
}

// NewIndex builds the lookup maps for a dataset. Duplicate image or
// annotation ids keep the last entry; duplicate category ids keep the
// first, so labels stay a bijection onto 1..K.
func NewIndex(dataset *domain.Dataset) *Index {
	idx := &Index{
		annotations: make(map[int64]domain.Annotation, len(dataset.Annotations)),
		images:      make(map[int64]domain.Image, len(dataset.Images)),
		labels:      make(map[int64]int, len(dataset.Categories)),
	}

	for _, ann := range dataset.Annotations {
		idx.annotations[ann.ID] = ann
	}

	for _, img := range dataset.Images {
		idx.images[img.ID] = img
	}

	for _, cat := range dataset.Categories {
		if _, exists := idx.labels[cat.ID]; exists {
			continue
		}
		idx.labels[cat.ID] = len(idx.labels) + 1
	}

	return idx
}

// Annotation looks up an annotation by id.
func (idx *Index) Annotation(id int64) (domain.Annotation, bool) {
	ann, ok := idx.annotations[id]
	return ann, ok
}

// Image looks up an image by id.
func (idx *Index) Image(id int64) (domain.Image, bool) {
	img, ok := idx.images[id]
	return img, ok
}

// Label returns the dense label for a category id.
func (idx *Index) Label(categoryID int64) (int, error) {
	label, ok := idx.labels[categoryID]
	if !ok {
		return 0, fmt.Errorf("category %d: %w", categoryID, ErrUnknownCategory)
	}
	return label, nil
}

// NumCategories returns the number of distinct categories in the remap.
func (idx *Index) NumCategories() int {
	return len(idx.labels)
}

// Labels returns a copy of the category remap.
func (idx *Index) Labels() map[int64]int {
	labels := make(map[int64]int, len(idx.labels))
	for id, label := range idx.labels {
		labels[id] = label
	}
	return labels
}

// GroupByImage maps each image id to its annotations, preserving the order
// of the annotation list within each group. Images without annotations have
// no entry.
func GroupByImage(annotations []domain.Annotation) map[int64][]domain.Annotation {
	groups := make(map[int64][]domain.Annotation)
	for _, ann := range annotations {
		groups[ann.ImageID] = append(groups[ann.ImageID], ann)
	}
	return groups
}
