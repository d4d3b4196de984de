// Command bginspect analyzes a background texture sample and reports the
// statistics that drive strictness and sentinel-colour tuning: distinct
// colour count, per-direction neighbour variability, dominant colours, and
// a k-means colour-cluster summary.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"

	"sprite-extractor/internal/imaging"
	"sprite-extractor/internal/matcher"
	"sprite-extractor/pkg/colorutil"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

func main() {
	bgPath := flag.String("bg", "", "Background texture image to inspect")
	topColours := flag.Int("top", 8, "Number of dominant colours to report")
	numClusters := flag.Int("clusters", 4, "Number of k-means colour clusters")
	flag.Parse()

	if *bgPath == "" {
		fmt.Println("Usage: bginspect -bg <image> [-top 8] [-clusters 4]")
		os.Exit(1)
	}

	img, err := imaging.Load(*bgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded image: %dx%d pixels\n", img.Width, img.Height)

	model := matcher.BuildModel(img)
	fmt.Printf("\nPattern contains %d colours\n", model.Colours())
	if model.Colours() == 0 {
		fmt.Println("Image has no interior pixels; nothing to analyze")
		return
	}

	fmt.Println("\nObserved neighbour-set sizes per direction:")
	fmt.Printf("%-4s %8s %8s %6s %6s\n", "Dir", "Mean", "StdDev", "Min", "Max")
	for _, s := range model.Stats() {
		stddev := s.StdDev
		if math.IsNaN(stddev) {
			stddev = 0
		}
		fmt.Printf("%-4s %8.2f %8.2f %6d %6d\n", s.Direction, s.Mean, stddev, s.Min, s.Max)
	}
	fmt.Println("\nHigh means indicate a noisy sample; raise strictness accordingly.")

	reportDominantColours(img, *topColours)
	reportClusters(img, *numClusters)
}

// reportDominantColours prints the most dominant colours of the sample.
// Useful for picking a sentinel colour that cannot collide with sprite art.
func reportDominantColours(img *imaging.Image, n int) {
	found := dominantcolor.FindWeight(img.ToNRGBA(), n)
	if len(found) == 0 {
		return
	}

	fmt.Printf("\nDominant colours:\n")
	for _, c := range found {
		argb := colorutil.ARGB(0xff, c.RGBA.R, c.RGBA.G, c.RGBA.B)
		fmt.Printf("  %s  weight %.3f\n", colorutil.Hex(argb), c.Weight)
	}
}

// reportClusters prints a k-means summary of the sample's colour space,
// subsampled to stay tractable on large images.
func reportClusters(img *imaging.Image, k int) {
	if k <= 0 {
		return
	}

	const maxSamples = 12000
	step := 1
	if img.Width*img.Height > maxSamples {
		step = int(math.Sqrt(float64(img.Width*img.Height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, maxSamples)
	for y := 0; y < img.Height; y += step {
		for x := 0; x < img.Width; x += step {
			c := colorutil.ToNRGBA(img.ARGB(x, y))
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255.0,
				float64(c.G) / 255.0,
				float64(c.B) / 255.0,
			})
		}
	}
	if len(dataset) < k {
		return
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil || len(cc) == 0 {
		fmt.Fprintf(os.Stderr, "k-means clustering failed: %v\n", err)
		return
	}

	sort.Slice(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	fmt.Printf("\nColour clusters (k=%d, %d samples):\n", k, len(dataset))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		share := float64(len(c.Observations)) / float64(len(dataset))
		fmt.Printf("  %s  %5.1f%%\n", col.Hex(), share*100)
	}
}
