package coco_test

import (
	"testing"

	"github.com/adfharrison1/go-recordio/pkg/coco"
	"github.com/adfharrison1/go-recordio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndex_CategoryRemap_FirstSeenOrder(t *testing.T) {
	dataset := &domain.Dataset{
		Categories: []domain.Category{
			{ID: 7, Name: "person"},
			{ID: 3, Name: "car"},
			{ID: 9, Name: "dog"},
		},
	}

	index := coco.NewIndex(dataset)
	assert.Equal(t, 3, index.NumCategories())
	assert.Equal(t, map[int64]int{7: 1, 3: 2, 9: 3}, index.Labels())

	label, err := index.Label(3)
	require.NoError(t, err)
	assert.Equal(t, 2, label)
}

func TestNewIndex_DuplicateCategoryIDs_KeepFirst(t *testing.T) {
	dataset := &domain.Dataset{
		Categories: []domain.Category{
			{ID: 5, Name: "first"},
			{ID: 5, Name: "second"},
			{ID: 2, Name: "other"},
		},
	}

	index := coco.NewIndex(dataset)
	assert.Equal(t, 2, index.NumCategories())
	assert.Equal(t, map[int64]int{5: 1, 2: 2}, index.Labels())
}

func TestIndex_Label_UnknownCategory(t *testing.T) {
	index := coco.NewIndex(&domain.Dataset{
		Categories: []domain.Category{{ID: 5, Name: "cat"}},
	})

	_, err := index.Label(99)
	assert.Error(t, err)
	assert.ErrorIs(t, err, coco.ErrUnknownCategory)
	assert.Contains(t, err.Error(), "category 99")
}

func TestIndex_LookupByID(t *testing.T) {
	dataset := &domain.Dataset{
		Images: []domain.Image{
			{ID: 1, FileName: "a.jpg"},
			{ID: 2, FileName: "b.jpg"},
			{ID: 1, FileName: "c.jpg"},
		},
		Annotations: []domain.Annotation{
			{ID: 10, ImageID: 1, CategoryID: 5},
		},
	}

	index := coco.NewIndex(dataset)

	// Duplicate ids keep the last entry
	img, ok := index.Image(1)
	assert.True(t, ok)
	assert.Equal(t, "c.jpg", img.FileName)

	ann, ok := index.Annotation(10)
	assert.True(t, ok)
	assert.Equal(t, int64(1), ann.ImageID)

	_, ok = index.Image(42)
	assert.False(t, ok)
	_, ok = index.Annotation(42)
	assert.False(t, ok)
}

func TestGroupByImage_PreservesOrder(t *testing.T) {
	annotations := []domain.Annotation{
		{ID: 1, ImageID: 1},
		{ID: 2, ImageID: 2},
		{ID: 3, ImageID: 1},
		{ID: 4, ImageID: 1},
	}

	groups := coco.GroupByImage(annotations)
	require.Len(t, groups, 2)

	var got []int64
	for _, ann := range groups[1] {
		got = append(got, ann.ID)
	}
	assert.Equal(t, []int64{1, 3, 4}, got)

	require.Len(t, groups[2], 1)
	assert.Equal(t, int64(2), groups[2][0].ID)

	_, ok := groups[3]
	assert.False(t, ok)
}

func TestGroupByImage_Empty(t *testing.T) {
	groups := coco.GroupByImage(nil)
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}
