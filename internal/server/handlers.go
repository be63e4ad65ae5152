package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ign-packo/ShadowT/internal/compare"
	"github.com/ign-packo/ShadowT/internal/imaging"
	"github.com/ign-packo/ShadowT/internal/raster"
	"github.com/ign-packo/ShadowT/internal/shadow"
	"github.com/ign-packo/ShadowT/internal/stretch"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "shadow_mask").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warning(component, "tool failed", map[string]interface{}{"tool": params.Name, "error": err.Error()})
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads rasters and masks through the image cache
//  4. Calls the shadow, stretch or compare package
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_stretch":
		return s.handleImageStretch(args)

	// Shadow detection
	case "shadow_threshold":
		return s.handleShadowThreshold(args)
	case "shadow_index_thresholds":
		return s.handleShadowIndexThresholds(args)
	case "shadow_mask":
		return s.handleShadowMask(args)
	case "shadow_compare":
		return s.handleShadowCompare(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON marshals v to a JSON string, returning an error object on failure.
func mustMarshalJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "failed to marshal result: %s"}`, err.Error())
	}
	return string(data)
}

// === Shared Helpers ===

// engineConfig builds and validates the engine configuration of a call.
// An empty method selects the weighted strategy when a near-infrared band
// is available and the ratio strategy otherwise.
func engineConfig(method string, nir, hsteq, exclude bool, sub int) (shadow.Config, error) {
	if method == "" {
		method = "ratio"
		if nir {
			method = "weighted"
		}
	}
	strategy, err := shadow.ParseStrategy(method)
	if err != nil {
		return shadow.Config{}, err
	}
	cfg := shadow.Config{
		Strategy:               strategy,
		Equalize:               hsteq,
		ExcludeWaterVegetation: exclude,
		SampleStep:             sub,
	}
	if err := cfg.Validate(); err != nil {
		return shadow.Config{}, err
	}
	return cfg, nil
}

// loadInput loads a colour image, stacked with its near-infrared band when
// nirPath is set. A bits value of 0 accepts the depth found in the file;
// any other value must match it.
func (s *Server) loadInput(path, nirPath string, bits int) (*raster.Raster, raster.ColorDepth, error) {
	if path == "" {
		return nil, raster.ColorDepth{}, errors.New("path is required")
	}

	var (
		img   *raster.Raster
		found int
		err   error
	)
	if nirPath != "" {
		img, found, err = imaging.LoadBGRN(s.cache, path, nirPath)
	} else {
		img, found, err = imaging.LoadRaster(s.cache, path)
	}
	if err != nil {
		return nil, raster.ColorDepth{}, err
	}
	if bits != 0 && bits != found {
		return nil, raster.ColorDepth{}, fmt.Errorf("%w: %s is %d-bit, expected %d-bit",
			raster.ErrInvalidColorDepth, path, found, bits)
	}
	depth, err := raster.NewColorDepth(found)
	if err != nil {
		return nil, raster.ColorDepth{}, err
	}
	return img, depth, nil
}

// loadCorpus loads every image of a corpus. nirPaths is either empty or
// pairs one near-infrared file with each colour file. All images must
// share a sample depth.
func (s *Server) loadCorpus(paths, nirPaths []string, bits int) ([]*raster.Raster, raster.ColorDepth, error) {
	if len(paths) == 0 {
		return nil, raster.ColorDepth{}, errors.New("paths must name at least one image")
	}
	if len(nirPaths) != 0 && len(nirPaths) != len(paths) {
		return nil, raster.ColorDepth{}, fmt.Errorf("got %d nir_paths for %d paths", len(nirPaths), len(paths))
	}

	corpus := make([]*raster.Raster, 0, len(paths))
	var depth raster.ColorDepth
	for i, path := range paths {
		nir := ""
		if len(nirPaths) != 0 {
			nir = nirPaths[i]
		}
		img, d, err := s.loadInput(path, nir, bits)
		if err != nil {
			return nil, raster.ColorDepth{}, err
		}
		// The first image fixes the depth of the remaining ones.
		bits = d.Bits
		depth = d
		corpus = append(corpus, img)
	}
	return corpus, depth, nil
}

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageStretchArgs struct {
	Path        string   `json:"path"`
	Bits        int      `json:"bits"`
	Low         *float64 `json:"low"`
	High        *float64 `json:"high"`
	Output      string   `json:"output"`
	PreviewSize int      `json:"preview_size"`
}

// BandBounds is the stretch window of one band.
type BandBounds struct {
	Band string  `json:"band"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// StretchResult describes an 8-bit rendition of a colour image.
type StretchResult struct {
	Width   int                    `json:"width"`
	Height  int                    `json:"height"`
	Bits    int                    `json:"bits"`
	Bounds  []BandBounds           `json:"bounds"`
	Output  string                 `json:"output,omitempty"`
	Preview *imaging.PreviewResult `json:"preview,omitempty"`
}

var bandNames = []string{"blue", "green", "red"}

func (s *Server) handleImageStretch(args json.RawMessage) (interface{}, error) {
	var a imageStretchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	w := stretch.DefaultWindow
	if a.Low != nil {
		w.Low = *a.Low
	}
	if a.High != nil {
		w.High = *a.High
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	img, depth, err := s.loadInput(a.Path, "", a.Bits)
	if err != nil {
		return nil, err
	}
	bgr := &raster.Raster{Width: img.Width, Height: img.Height, Bands: img.Bands[:3]}

	result := &StretchResult{Width: img.Width, Height: img.Height, Bits: depth.Bits}
	for b, band := range bgr.Bands {
		lo, hi, err := stretch.Bounds(band, depth, w)
		if err != nil {
			return nil, fmt.Errorf("%s band: %w", bandNames[b], err)
		}
		result.Bounds = append(result.Bounds, BandBounds{Band: bandNames[b], Low: lo, High: hi})
	}

	out, err := stretch.ToUint8(bgr, depth, w)
	if err != nil {
		return nil, err
	}
	rendered, err := imaging.RasterImage(out)
	if err != nil {
		return nil, err
	}

	if a.Output != "" {
		if err := imaging.SaveImage(a.Output, rendered); err != nil {
			return nil, err
		}
		s.cache.Evict(a.Output)
		result.Output = a.Output
	}
	if a.PreviewSize > 0 {
		if result.Preview, err = imaging.Preview(rendered, a.PreviewSize); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// === Shadow Handlers ===

type shadowThresholdArgs struct {
	Paths    []string `json:"paths"`
	NIRPaths []string `json:"nir_paths"`
	Bits     int      `json:"bits"`
	Method   string   `json:"method"`
	HistEq   bool     `json:"hsteq"`
	Exclude  bool     `json:"exclude"`
	Sub      int      `json:"sub"`
}

// ThresholdResult is the global threshold of a corpus.
type ThresholdResult struct {
	Method    string           `json:"method"`
	Bits      int              `json:"bits"`
	Images    int              `json:"images"`
	Threshold shadow.Threshold `json:"threshold"`
}

func (s *Server) handleShadowThreshold(args json.RawMessage) (interface{}, error) {
	var a shadowThresholdArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Sub == 0 {
		a.Sub = 10
	}

	cfg, err := engineConfig(a.Method, len(a.NIRPaths) != 0, a.HistEq, a.Exclude, a.Sub)
	if err != nil {
		return nil, err
	}
	corpus, depth, err := s.loadCorpus(a.Paths, a.NIRPaths, a.Bits)
	if err != nil {
		return nil, err
	}

	th, err := shadow.ComputeGlobalThreshold(corpus, depth, cfg)
	if err != nil {
		return nil, err
	}
	return &ThresholdResult{
		Method:    cfg.Strategy.String(),
		Bits:      depth.Bits,
		Images:    len(corpus),
		Threshold: th,
	}, nil
}

type shadowIndexArgs struct {
	Paths    []string `json:"paths"`
	NIRPaths []string `json:"nir_paths"`
	Bits     int      `json:"bits"`
	Sub      int      `json:"sub"`
}

// IndexResult holds the NDWI water and NDVI vegetation thresholds.
type IndexResult struct {
	Water      float64 `json:"water"`
	Vegetation float64 `json:"vegetation"`
}

func (s *Server) handleShadowIndexThresholds(args json.RawMessage) (interface{}, error) {
	var a shadowIndexArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.NIRPaths) == 0 {
		return nil, errors.New("nir_paths is required")
	}
	if a.Sub == 0 {
		a.Sub = 10
	}

	corpus, depth, err := s.loadCorpus(a.Paths, a.NIRPaths, a.Bits)
	if err != nil {
		return nil, err
	}
	for i, img := range corpus {
		corpus[i] = img.Subsample(a.Sub)
	}

	water, vegetation, err := shadow.ComputeVegetationWaterThresholds(corpus, depth)
	if err != nil {
		return nil, err
	}
	return &IndexResult{Water: water, Vegetation: vegetation}, nil
}

type shadowMaskArgs struct {
	Path         string   `json:"path"`
	NIRPath      string   `json:"nir_path"`
	Bits         int      `json:"bits"`
	Method       string   `json:"method"`
	HistEq       bool     `json:"hsteq"`
	Threshold    *float64 `json:"threshold"`
	Water        *float64 `json:"water"`
	Vegetation   *float64 `json:"vegetation"`
	Output       string   `json:"output"`
	Overlay      string   `json:"overlay"`
	OverlayColor string   `json:"overlay_color"`
	PreviewSize  int      `json:"preview_size"`
}

// MaskResult summarizes the shadow mask of one image.
type MaskResult struct {
	Width          int                    `json:"width"`
	Height         int                    `json:"height"`
	Method         string                 `json:"method"`
	Threshold      shadow.Threshold       `json:"threshold"`
	ShadowPixels   int                    `json:"shadow_pixels"`
	ShadowFraction float64                `json:"shadow_fraction"`
	MaskPath       string                 `json:"mask_path,omitempty"`
	OverlayPath    string                 `json:"overlay_path,omitempty"`
	Preview        *imaging.PreviewResult `json:"preview,omitempty"`
}

func (s *Server) handleShadowMask(args json.RawMessage) (interface{}, error) {
	var a shadowMaskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Threshold == nil {
		return nil, errors.New("threshold is required")
	}
	if (a.Water == nil) != (a.Vegetation == nil) {
		return nil, errors.New("water and vegetation must be given together")
	}
	exclude := a.Water != nil
	if exclude && a.NIRPath == "" {
		return nil, errors.New("water and vegetation exclusion requires nir_path")
	}

	th := shadow.ScalarThreshold(*a.Threshold)
	if exclude {
		th = shadow.TripleThreshold(*a.Threshold, *a.Water, *a.Vegetation)
	}
	cfg, err := engineConfig(a.Method, a.NIRPath != "", a.HistEq, exclude, 1)
	if err != nil {
		return nil, err
	}
	img, depth, err := s.loadInput(a.Path, a.NIRPath, a.Bits)
	if err != nil {
		return nil, err
	}

	m, err := shadow.ComputeMask(img, th, depth, cfg)
	if err != nil {
		return nil, err
	}

	count := m.Count()
	result := &MaskResult{
		Width:          m.Width,
		Height:         m.Height,
		Method:         cfg.Strategy.String(),
		Threshold:      th,
		ShadowPixels:   count,
		ShadowFraction: float64(count) / float64(len(m.Bits)),
	}

	if a.Output != "" {
		if err := imaging.SaveMask(a.Output, m); err != nil {
			return nil, err
		}
		s.cache.Evict(a.Output)
		result.MaskPath = a.Output
	}
	if a.Overlay != "" {
		if err := s.saveOverlay(a.Overlay, a.OverlayColor, img, depth, m); err != nil {
			return nil, err
		}
		result.OverlayPath = a.Overlay
	}
	if a.PreviewSize > 0 {
		if result.Preview, err = imaging.Preview(imaging.MaskImage(m), a.PreviewSize); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// saveOverlay paints the shadow pixels of m over the colour bands of img.
// Images deeper than 8 bits are stretched first.
func (s *Server) saveOverlay(path, hex string, img *raster.Raster, depth raster.ColorDepth, m *raster.Mask) error {
	if hex == "" {
		hex = imaging.DefaultOverlayColor
	}
	paint, err := imaging.ParseColor(hex)
	if err != nil {
		return err
	}

	bgr := &raster.Raster{Width: img.Width, Height: img.Height, Bands: img.Bands[:3]}
	if depth.Bits > 8 {
		if bgr, err = stretch.ToUint8(bgr, depth, stretch.DefaultWindow); err != nil {
			return fmt.Errorf("stretch to 8 bits: %w", err)
		}
	}
	out, err := imaging.Overlay(bgr, m, paint, 1)
	if err != nil {
		return err
	}
	if err := imaging.SaveImage(path, out); err != nil {
		return err
	}
	s.cache.Evict(path)
	return nil
}

type shadowCompareArgs struct {
	Reference string `json:"reference"`
	Test      string `json:"test"`
}

func (s *Server) handleShadowCompare(args json.RawMessage) (interface{}, error) {
	var a shadowCompareArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Reference == "" || a.Test == "" {
		return nil, errors.New("reference and test are required")
	}

	ref, err := imaging.LoadMask(s.cache, a.Reference)
	if err != nil {
		return nil, fmt.Errorf("reference mask: %w", err)
	}
	test, err := imaging.LoadMask(s.cache, a.Test)
	if err != nil {
		return nil, fmt.Errorf("test mask: %w", err)
	}
	return compare.Masks(ref, test)
}
