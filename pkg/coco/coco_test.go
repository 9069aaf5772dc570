package coco_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adfharrison1/go-recordio/pkg/coco"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAnnotationFile(t *testing.T, content string) string {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "go-recordio-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	path := filepath.Join(tempDir, "annotations.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDataset_AllSections(t *testing.T) {
	path := writeAnnotationFile(t, `{
		"images": [
			{"id": 1, "file_name": "a.jpg", "width": 640, "height": 480},
			{"id": 2, "file_name": "b.jpg", "width": 800, "height": 600}
		],
		"annotations": [
			{"id": 10, "image_id": 1, "category_id": 5, "bbox": [1.5, 2, 3, 4]},
			{"id": 11, "image_id": 2, "category_id": 7, "bbox": [10, 20, 30, 40]}
		],
		"categories": [
			{"id": 5, "name": "cat"},
			{"id": 7, "name": "dog"}
		]
	}`)

	dataset, err := coco.LoadDataset(path)
	require.NoError(t, err)

	require.Len(t, dataset.Images, 2)
	assert.Equal(t, int64(1), dataset.Images[0].ID)
	assert.Equal(t, "a.jpg", dataset.Images[0].FileName)
	assert.Equal(t, 640, dataset.Images[0].Width)
	assert.Equal(t, 480, dataset.Images[0].Height)

	require.Len(t, dataset.Annotations, 2)
	assert.Equal(t, int64(10), dataset.Annotations[0].ID)
	assert.Equal(t, int64(1), dataset.Annotations[0].ImageID)
	assert.Equal(t, int64(5), dataset.Annotations[0].CategoryID)
	assert.Equal(t, [4]float64{1.5, 2, 3, 4}, dataset.Annotations[0].BBox)

	require.Len(t, dataset.Categories, 2)
	assert.Equal(t, int64(7), dataset.Categories[1].ID)
	assert.Equal(t, "dog", dataset.Categories[1].Name)
}

func TestLoadDataset_MissingSections(t *testing.T) {
	path := writeAnnotationFile(t, `{}`)

	dataset, err := coco.LoadDataset(path)
	require.NoError(t, err)
	assert.Empty(t, dataset.Images)
	assert.Empty(t, dataset.Annotations)
	assert.Empty(t, dataset.Categories)

	path = writeAnnotationFile(t, `{"images": [{"id": 1, "file_name": "a.jpg", "width": 5, "height": 6}]}`)

	dataset, err = coco.LoadDataset(path)
	require.NoError(t, err)
	assert.Len(t, dataset.Images, 1)
	assert.Empty(t, dataset.Annotations)
	assert.Empty(t, dataset.Categories)
}

func TestLoadDataset_MalformedJSON(t *testing.T) {
	path := writeAnnotationFile(t, `{"images": [`)

	_, err := coco.LoadDataset(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse annotation file")
}

func TestLoadDataset_MissingFile(t *testing.T) {
	_, err := coco.LoadDataset("/nonexistent/annotations.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read annotation file")
}
