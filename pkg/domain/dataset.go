package domain

// Image describes one entry of the annotation file's "images" list
type Image struct {
	ID       int64  `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Annotation describes one object instance within an image. The bounding
// box is [x, y, width, height] in pixel coordinates.
type Annotation struct {
	ID         int64      `json:"id"`
	ImageID    int64      `json:"image_id"`
	CategoryID int64      `json:"category_id"`
	BBox       [4]float64 `json:"bbox"`
}

// Category describes one entry of the "categories" list
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Dataset is a COCO-style annotation file. Any of the three sections may
// be absent from the JSON, in which case its slice is empty.
type Dataset struct {
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
	Categories  []Category   `json:"categories"`
}
