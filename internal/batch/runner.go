package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ign-packo/ShadowT/internal/config"
	"github.com/ign-packo/ShadowT/internal/imaging"
	"github.com/ign-packo/ShadowT/internal/logger"
	"github.com/ign-packo/ShadowT/internal/raster"
	"github.com/ign-packo/ShadowT/internal/shadow"
	"github.com/ign-packo/ShadowT/internal/stretch"
)

const component = "batch"

// Result describes the products written for one image.
type Result struct {
	Name         string `json:"name"`
	MaskPath     string `json:"mask_path"`
	OverlayPath  string `json:"overlay_path,omitempty"`
	ShadowPixels int    `json:"shadow_pixels"`
	Pixels       int    `json:"pixels"`
}

// Summary is the outcome of a run.
type Summary struct {
	Threshold shadow.Threshold `json:"threshold"`
	Corpus    []Source         `json:"corpus"`
	Results   []Result         `json:"results,omitempty"`
	Elapsed   time.Duration    `json:"elapsed"`
}

// Runner executes batch runs. It is not safe for concurrent use.
type Runner struct {
	cfg    *config.Config
	engine shadow.Config
	depth  raster.ColorDepth
	paint  colorful.Color
	log    logger.Logger
	cache  *imaging.ImageCache
}

// New validates cfg and prepares a runner.
func New(cfg *config.Config, log logger.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine, err := cfg.Engine()
	if err != nil {
		return nil, err
	}
	depth, err := cfg.Depth()
	if err != nil {
		return nil, err
	}
	paint, err := imaging.ParseColor(cfg.OverlayColor)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:    cfg,
		engine: engine,
		depth:  depth,
		paint:  paint,
		log:    log,
		cache:  imaging.NewImageCache(),
	}, nil
}

// Run estimates the global threshold, then writes masks when an output
// directory is configured.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	r.log.Info(component, "run started", map[string]interface{}{
		"input":           r.cfg.Input,
		"threshold_input": r.cfg.ThresholdDir(),
		"output":          r.cfg.Output,
		"bits":            r.depth.Bits,
		"jump":            r.cfg.Jump,
		"sub":             r.cfg.Sub,
		"method":          r.engine.Strategy.String(),
		"hsteq":           r.engine.Equalize,
		"nir":             r.cfg.NIR,
	})

	th, corpus, err := r.Threshold(ctx)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Threshold: th, Corpus: corpus}

	if r.cfg.Output != "" {
		results, err := r.Masks(ctx, th)
		if err != nil {
			return nil, err
		}
		summary.Results = results
	}

	summary.Elapsed = time.Since(start)
	r.log.Info(component, "run finished", map[string]interface{}{
		"masks":   len(summary.Results),
		"elapsed": summary.Elapsed,
	})
	return summary, nil
}

// Threshold estimates the global threshold over the threshold corpus and
// returns it with the images used.
func (r *Runner) Threshold(ctx context.Context) (shadow.Threshold, []Source, error) {
	start := time.Now()
	sources, err := r.discover(r.cfg.ThresholdDir(), "")
	if err != nil {
		return shadow.Threshold{}, nil, fmt.Errorf("threshold corpus: %w", err)
	}
	sources = Decimate(sources, r.cfg.Jump)
	r.log.Info(component, "global thresholding started", map[string]interface{}{"images": len(sources)})

	corpus := make([]*raster.Raster, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return shadow.Threshold{}, nil, err
		}
		img, err := r.load(src)
		if err != nil {
			return shadow.Threshold{}, nil, err
		}
		corpus = append(corpus, img.Subsample(r.cfg.Sub))
		r.log.Debug(component, "corpus image", map[string]interface{}{"rgb": src.RGB, "nir": src.NIR})
	}

	// The corpus is already subsampled.
	est := r.engine
	est.SampleStep = 1
	th, err := shadow.ComputeGlobalThreshold(corpus, r.depth, est)
	if err != nil {
		return shadow.Threshold{}, nil, fmt.Errorf("threshold corpus %s: %w", r.cfg.ThresholdDir(), err)
	}

	r.log.Info(component, "global thresholding finished", map[string]interface{}{
		"threshold": th.Values(),
		"elapsed":   time.Since(start),
	})
	return th, sources, nil
}

// Masks applies th to every input image and writes the products.
func (r *Runner) Masks(ctx context.Context, th shadow.Threshold) ([]Result, error) {
	start := time.Now()
	sources, err := r.discover(r.cfg.Input, r.cfg.Prefix)
	if err != nil {
		return nil, fmt.Errorf("input images: %w", err)
	}
	if err := os.MkdirAll(r.cfg.Output, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make([]Result, 0, len(sources))
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := r.mask(src, th)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
		r.log.Info(component, "mask written", map[string]interface{}{
			"name":   res.Name,
			"shadow": float64(res.ShadowPixels) / float64(res.Pixels),
		})
	}

	r.log.Info(component, "masking finished", map[string]interface{}{
		"images":  len(results),
		"elapsed": time.Since(start),
	})
	return results, nil
}

func (r *Runner) mask(src Source, th shadow.Threshold) (Result, error) {
	img, err := r.load(src)
	if err != nil {
		return Result{}, err
	}

	m, err := shadow.ComputeMask(img, th, r.depth, r.engine)
	if err != nil {
		return Result{}, fmt.Errorf("image %s: %w", src.RGB, err)
	}

	res := Result{
		Name:         src.Name,
		MaskPath:     filepath.Join(r.cfg.Output, "mask_"+src.Name+".tif"),
		ShadowPixels: m.Count(),
		Pixels:       img.Len(),
	}
	if err := imaging.SaveMask(res.MaskPath, m); err != nil {
		return Result{}, fmt.Errorf("image %s: %w", src.RGB, err)
	}

	if r.cfg.Overlay {
		res.OverlayPath = filepath.Join(r.cfg.Output, "masked_"+src.Name+".jpg")
		if err := r.overlay(res.OverlayPath, img, m); err != nil {
			return Result{}, fmt.Errorf("image %s: %w", src.RGB, err)
		}
	}
	return res, nil
}

func (r *Runner) overlay(path string, img *raster.Raster, m *raster.Mask) error {
	bgr := &raster.Raster{Width: img.Width, Height: img.Height, Bands: img.Bands[:3]}
	if r.depth.Bits > 8 {
		var err error
		bgr, err = stretch.ToUint8(bgr, r.depth, r.cfg.Window())
		if err != nil {
			return fmt.Errorf("stretch to 8 bits: %w", err)
		}
	}
	out, err := imaging.Overlay(bgr, m, r.paint, 1)
	if err != nil {
		return err
	}
	return imaging.SaveImage(path, out)
}

// load reads one source and checks its depth. Decoded images are not kept
// in the cache.
func (r *Runner) load(src Source) (*raster.Raster, error) {
	defer r.cache.Evict(src.RGB)
	var (
		img  *raster.Raster
		bits int
		err  error
	)
	if r.cfg.NIR {
		defer r.cache.Evict(src.NIR)
		img, bits, err = imaging.LoadBGRN(r.cache, src.RGB, src.NIR)
	} else {
		img, bits, err = imaging.LoadRaster(r.cache, src.RGB)
	}
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", src.RGB, err)
	}
	if bits != r.depth.Bits {
		return nil, fmt.Errorf("image %s: %w: file is %d-bit, run is configured for %d-bit",
			src.RGB, raster.ErrInvalidColorDepth, bits, r.depth.Bits)
	}
	return img, nil
}

func (r *Runner) discover(dir, prefix string) ([]Source, error) {
	if r.cfg.NIR {
		return DiscoverPairs(dir, prefix, r.cfg.ExtRGB, r.cfg.ExtNIR)
	}
	return Discover(dir, prefix, r.cfg.ExtRGB)
}
