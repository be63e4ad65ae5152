package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ign-packo/ShadowT/internal/compare"
	"github.com/ign-packo/ShadowT/internal/imaging"
	"github.com/ign-packo/ShadowT/internal/logger"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("maskdiff %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("maskdiff - compare a shadow mask against a reference mask")
			fmt.Println()
			fmt.Println("Usage: maskdiff <reference> <test>")
			fmt.Println()
			fmt.Println("Masks hold 0 for shadow and 255 elsewhere. Shadow is the positive class.")
			return
		}
	}

	log := logger.FromEnv()
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: maskdiff <reference> <test>")
		os.Exit(2)
	}

	report, err := diff(imaging.NewImageCache(), os.Args[1], os.Args[2])
	if err != nil {
		log.Error("main", err, map[string]interface{}{"reference": os.Args[1], "test": os.Args[2]})
		os.Exit(1)
	}
	writeReport(os.Stdout, report)
}

func diff(cache *imaging.ImageCache, refPath, testPath string) (compare.Report, error) {
	ref, err := imaging.LoadMask(cache, refPath)
	if err != nil {
		return compare.Report{}, fmt.Errorf("reference mask: %w", err)
	}
	test, err := imaging.LoadMask(cache, testPath)
	if err != nil {
		return compare.Report{}, fmt.Errorf("test mask: %w", err)
	}
	return compare.Masks(ref, test)
}

func writeReport(w io.Writer, r compare.Report) {
	fmt.Fprintln(w, "PIXEL COUNTS:")
	fmt.Fprintf(w, "  Reference positive (shadow):  %d\n", r.P)
	fmt.Fprintf(w, "  Reference negative:           %d\n", r.N)
	fmt.Fprintf(w, "  Predicted positive:           %d\n", r.PP)
	fmt.Fprintf(w, "  Predicted negative:           %d\n", r.PN)
	fmt.Fprintf(w, "  True positive:                %d\n", r.TP)
	fmt.Fprintf(w, "  False positive:               %d\n", r.FP)
	fmt.Fprintf(w, "  True negative:                %d\n", r.TN)
	fmt.Fprintf(w, "  False negative:               %d\n", r.FN)
	fmt.Fprintf(w, "  Correct (TP + TN):            %d\n", r.Correct())
	fmt.Fprintln(w, "RATES:")
	fmt.Fprintf(w, "  Accuracy positive, ACCP = %.3f%%\n", r.ACCP*100)
	fmt.Fprintf(w, "  Accuracy negative, ACCN = %.3f%%\n", r.ACCN*100)
	fmt.Fprintf(w, "  Miss rate, FNR = %.3f%%\n", r.FNR*100)
}
