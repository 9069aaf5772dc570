package coco

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adfharrison1/go-recordio/pkg/domain"
)

// LoadDataset reads and decodes a COCO-style annotation file. Top-level
// sections missing from the JSON decode to empty lists. Referential
// integrity between sections is not checked here; a dangling category_id
// surfaces later as ErrUnknownCategory.
func LoadDataset(path string) (*domain.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation file: %w", err)
	}

	var dataset domain.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("failed to parse annotation file: %w", err)
	}

	return &dataset, nil
}
