package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adfharrison1/go-recordio/pkg/convert"
	"github.com/adfharrison1/go-recordio/pkg/domain"
)

const numCategories = 10

// generateCategoryName generates a random 6-letter category name
func generateCategoryName(rng *rand.Rand) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	name := make([]byte, 6)
	for i := range name {
		name[i] = letters[rng.Intn(len(letters))]
	}
	return string(name)
}

// generateImageFile writes a fake image payload of 4-64KB and returns its size
func generateImageFile(rng *rand.Rand, path string) (int, error) {
	size := 4*1024 + rng.Intn(60*1024)
	payload := make([]byte, size)
	rng.Read(payload)
	return size, os.WriteFile(path, payload, 0644)
}

func main() {
	// Check command line arguments
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run test_scripts/generate_dataset_load.go <number_of_images> [work_dir]")
		fmt.Println("Example: go run test_scripts/generate_dataset_load.go 1000")
		fmt.Println("Example: go run test_scripts/generate_dataset_load.go 1000 /tmp/recordio-load")
		os.Exit(1)
	}

	// Parse number of images to generate
	numImages, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fmt.Printf("Error: Invalid number of images '%s'. Please provide a valid integer.\n", os.Args[1])
		os.Exit(1)
	}

	if numImages <= 0 {
		fmt.Println("Error: Number of images must be greater than 0")
		os.Exit(1)
	}

	// Set work directory (default to a fresh temp dir)
	var workDir string
	if len(os.Args) >= 3 {
		workDir = os.Args[2]
		if err := os.MkdirAll(workDir, 0755); err != nil {
			fmt.Printf("Error: Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
	} else {
		workDir, err = os.MkdirTemp("", "go-recordio-load-*")
		if err != nil {
			fmt.Printf("Error: Failed to create work dir: %v\n", err)
			os.Exit(1)
		}
	}

	imageDir := filepath.Join(workDir, "images")
	outDir := filepath.Join(workDir, "out")
	for _, dir := range []string{imageDir, outDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("Error: Failed to create %s: %v\n", dir, err)
			os.Exit(1)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	fmt.Printf("Generating %d images under %s\n", numImages, workDir)

	// Fixed category set shared by all annotations
	dataset := &domain.Dataset{}
	for i := 0; i < numCategories; i++ {
		dataset.Categories = append(dataset.Categories, domain.Category{
			ID:   int64(i + 1),
			Name: generateCategoryName(rng),
		})
	}

	// Track timing and statistics
	genStart := time.Now()
	totalBytes := 0
	annotationID := int64(1)

	// Progress reporting
	reportInterval := max(1, numImages/10) // Report every 10% or at least every image

	for i := 0; i < numImages; i++ {
		fileName := fmt.Sprintf("img-%06d.jpg", i+1)
		size, err := generateImageFile(rng, filepath.Join(imageDir, fileName))
		if err != nil {
			fmt.Printf("Error: Failed to write image %d: %v\n", i+1, err)
			os.Exit(1)
		}
		totalBytes += size

		width := 320 + rng.Intn(1600)
		height := 240 + rng.Intn(1200)
		imageID := int64(i + 1)
		dataset.Images = append(dataset.Images, domain.Image{
			ID:       imageID,
			FileName: fileName,
			Width:    width,
			Height:   height,
		})

		// 0-8 annotations per image with boxes inside the image bounds
		for j := 0; j < rng.Intn(9); j++ {
			x := rng.Float64() * float64(width) * 0.8
			y := rng.Float64() * float64(height) * 0.8
			dataset.Annotations = append(dataset.Annotations, domain.Annotation{
				ID:         annotationID,
				ImageID:    imageID,
				CategoryID: int64(rng.Intn(numCategories) + 1),
				BBox:       [4]float64{x, y, rng.Float64() * (float64(width) - x), rng.Float64() * (float64(height) - y)},
			})
			annotationID++
		}

		// Report progress
		if (i+1)%reportInterval == 0 || i == numImages-1 {
			elapsed := time.Since(genStart)
			rate := float64(i+1) / elapsed.Seconds()
			fmt.Printf("Generated: %d/%d images (%.1f%%) - Rate: %.1f images/sec\n",
				i+1, numImages, float64(i+1)/float64(numImages)*100, rate)
		}
	}

	annPath := filepath.Join(workDir, "annotations.json")
	annJSON, err := json.Marshal(dataset)
	if err != nil {
		fmt.Printf("Error: Failed to marshal annotations: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(annPath, annJSON, 0644); err != nil {
		fmt.Printf("Error: Failed to write annotations: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d annotations (%.2f MB of image data) in %v\n",
		len(dataset.Annotations), float64(totalBytes)/(1024*1024), time.Since(genStart))

	// Run the conversion against the generated dataset
	fmt.Printf("Converting to %s\n", outDir)
	convStart := time.Now()
	result, err := convert.New(convert.WithShuffle(true)).Run(annPath, imageDir, outDir)
	if err != nil {
		fmt.Printf("Error: Conversion failed: %v\n", err)
		os.Exit(1)
	}
	totalTime := time.Since(convStart)

	recInfo, err := os.Stat(result.RecPath)
	if err != nil {
		fmt.Printf("Error: Failed to stat container: %v\n", err)
		os.Exit(1)
	}

	// Final statistics
	averageRate := float64(result.Records) / totalTime.Seconds()

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("CONVERSION LOAD TEST COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Images converted:       %d\n", result.Records)
	fmt.Printf("Annotations:            %d\n", len(dataset.Annotations))
	fmt.Printf("Categories:             %d\n", result.Categories)
	fmt.Printf("Container size:         %.2f MB\n", float64(recInfo.Size())/(1024*1024))
	fmt.Printf("Total time:             %v\n", totalTime)
	fmt.Printf("Average rate:           %.2f images/sec\n", averageRate)
	fmt.Printf("Average time per image: %v\n", totalTime/time.Duration(result.Records))
	fmt.Printf("Output:                 %s, %s, %s\n", result.RecPath, result.IdxPath, result.MetaPath)
}
