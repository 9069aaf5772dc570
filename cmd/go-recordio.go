package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/adfharrison1/go-recordio/pkg/convert"
)

func main() {
	// Positional arguments only; flag supplies the usage plumbing
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <annotations_json> <images_dir> <output_dir> [shuffle]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ngo-recordio packs a COCO-style detection dataset into an indexed RecordIO container.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  annotations_json   annotation file with images, annotations and categories\n")
		fmt.Fprintf(os.Stderr, "  images_dir         directory holding the files named by file_name\n")
		fmt.Fprintf(os.Stderr, "  output_dir         directory receiving coco.rec, coco.idx and coco.meta\n")
		fmt.Fprintf(os.Stderr, "  shuffle            any fourth argument shuffles the image order\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s instances_train.json images/ out/\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s instances_train.json images/ out/ shuffle\n", os.Args[0])
	}

	flag.Parse()

	args := flag.Args()
	if len(args) < 3 {
		flag.Usage()
		os.Exit(1)
	}

	annotationsPath := args[0]
	imageDir := args[1]
	outDir := args[2]
	shuffle := len(args) > 3

	log.Printf("INFO: annotations file: %s", annotationsPath)
	log.Printf("INFO: image directory: %s", imageDir)
	log.Printf("INFO: output directory: %s", outDir)
	log.Printf("INFO: shuffle: %v", shuffle)

	converter := convert.New(convert.WithShuffle(shuffle))
	result, err := converter.Run(annotationsPath, imageDir, outDir)
	if err != nil {
		log.Fatalf("Conversion failed: %v", err)
	}

	log.Printf("INFO: wrote %d records (%d categories) to %s", result.Records, result.Categories, outDir)
}
