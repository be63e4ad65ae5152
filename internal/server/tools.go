package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func pathListProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": description,
	}
}

var (
	bitsProperty = map[string]interface{}{
		"type":        "integer",
		"enum":        []int{0, 8, 16},
		"description": "Expected sample depth. 0 accepts the depth of the file (default: 0)",
	}
	methodProperty = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"ratio", "weighted", "tsai", "nagao"},
		"description": "Shadow strategy: ratio (hue/intensity, RGB) or weighted (weighted intensity, needs NIR). Default: weighted with NIR, ratio otherwise",
	}
	hsteqProperty = map[string]interface{}{
		"type":        "boolean",
		"description": "Equalize the intensity before the hue/intensity ratio (default: false)",
	}
	subProperty = map[string]interface{}{
		"type":        "integer",
		"minimum":     1,
		"description": "Keep every sub-th pixel along both axes while estimating (default: 10)",
	}
	previewProperty = map[string]interface{}{
		"type":        "integer",
		"minimum":     0,
		"description": "Return a base64 PNG preview fitted inside this many pixels. 0 returns no preview (default: 0)",
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, bit depth and band count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_stretch",
			Description: "Stretch each colour band to 8 bits between histogram quantiles. Returns the per-band bounds and optionally writes or previews the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the colour image"),
					"bits": bitsProperty,
					"low": map[string]interface{}{
						"type":        "number",
						"minimum":     0,
						"maximum":     1,
						"description": "Lower cumulative quantile (default: 0)",
					},
					"high": map[string]interface{}{
						"type":        "number",
						"minimum":     0,
						"maximum":     1,
						"description": "Upper cumulative quantile (default: 0.98)",
					},
					"output":       pathProperty("Optional path to write the 8-bit image to"),
					"preview_size": previewProperty,
				},
				"required": []string{"path"},
			},
		},

		// Shadow Detection
		{
			Name:        "shadow_threshold",
			Description: "Estimate a global shadow threshold over a corpus of images. With exclude, also estimates the NDWI water and NDVI vegetation thresholds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths":     pathListProperty("Absolute paths to the colour images of the corpus"),
					"nir_paths": pathListProperty("Near-infrared images, one per colour image, in the same order"),
					"bits":      bitsProperty,
					"method":    methodProperty,
					"hsteq":     hsteqProperty,
					"exclude": map[string]interface{}{
						"type":        "boolean",
						"description": "Also estimate water and vegetation thresholds (needs nir_paths, default: false)",
					},
					"sub": subProperty,
				},
				"required": []string{"paths"},
			},
		},
		{
			Name:        "shadow_index_thresholds",
			Description: "Estimate the NDWI water and NDVI vegetation thresholds of a corpus of colour and near-infrared images.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths":     pathListProperty("Absolute paths to the colour images of the corpus"),
					"nir_paths": pathListProperty("Near-infrared images, one per colour image, in the same order"),
					"bits":      bitsProperty,
					"sub":       subProperty,
				},
				"required": []string{"paths", "nir_paths"},
			},
		},
		{
			Name:        "shadow_mask",
			Description: "Compute the shadow mask of one image from a global threshold. Give water and vegetation to remove water and vegetation from the mask. Mask files hold 0 for shadow and 255 elsewhere.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty("Absolute path to the colour image"),
					"nir_path": pathProperty("Absolute path to the near-infrared image"),
					"bits":     bitsProperty,
					"method":   methodProperty,
					"hsteq":    hsteqProperty,
					"threshold": map[string]interface{}{
						"type":        "number",
						"description": "Shadow threshold returned by shadow_threshold",
					},
					"water": map[string]interface{}{
						"type":        "number",
						"description": "NDWI water threshold (requires vegetation and nir_path)",
					},
					"vegetation": map[string]interface{}{
						"type":        "number",
						"description": "NDVI vegetation threshold (requires water and nir_path)",
					},
					"output":  pathProperty("Optional path to write the mask to; .tif masks are deflate-compressed"),
					"overlay": pathProperty("Optional path to write the image with shadow painted over it"),
					"overlay_color": map[string]interface{}{
						"type":        "string",
						"description": "Overlay paint as a hex colour (default: #ff0000)",
					},
					"preview_size": previewProperty,
				},
				"required": []string{"path", "threshold"},
			},
		},
		{
			Name:        "shadow_compare",
			Description: "Compare a test mask against a reference mask. Returns the confusion matrix with shadow as the positive class and the shadow, non-shadow and false-negative rates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"reference": pathProperty("Absolute path to the reference mask"),
					"test":      pathProperty("Absolute path to the mask under test"),
				},
				"required": []string{"reference", "test"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
