package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// strokeSchema describes a single stroke argument shared by the add tools.
func strokeSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id": map[string]interface{}{
				"type":        "string",
				"description": "Optional stroke identifier. Generated when omitted.",
			},
			"points": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"x":         map[string]interface{}{"type": "number"},
						"y":         map[string]interface{}{"type": "number"},
						"pressure":  map[string]interface{}{"type": "number", "description": "Optional pen pressure (0-1)"},
						"timestamp": map[string]interface{}{"type": "integer", "description": "Capture time in milliseconds"},
					},
					"required": []string{"x", "y"},
				},
				"description": "Ordered pen samples from pen-down to pen-up",
			},
			"color": map[string]interface{}{
				"type":        "string",
				"description": "Stroke color as hex (default #000000)",
				"default":     "#000000",
			},
			"width": map[string]interface{}{
				"type":        "number",
				"description": "Pen width in pixels (default 2)",
				"default":     2.0,
			},
			"tool": map[string]interface{}{
				"type":        "string",
				"description": "Input tool name (pen, marker, highlighter)",
				"default":     "pen",
			},
		},
		"required": []string{"points"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Canvas Operations
		{
			Name:        "sketch_add_stroke",
			Description: "Add a single freehand stroke to the canvas. Returns the stroke id and the new stroke count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"stroke": strokeSchema(),
				},
				"required": []string{"stroke"},
			},
		},
		{
			Name:        "sketch_add_strokes",
			Description: "Add multiple strokes to the canvas in one call (e.g. a whole captured drawing session).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"strokes": map[string]interface{}{
						"type":        "array",
						"items":       strokeSchema(),
						"description": "Strokes in drawing order",
					},
				},
				"required": []string{"strokes"},
			},
		},
		{
			Name:        "sketch_list_strokes",
			Description: "List the strokes currently on the canvas with their ids, bounds, and point counts.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "sketch_clear",
			Description: "Remove all strokes from the canvas and discard the last analysis result.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Detection
		{
			Name:        "sketch_analyze",
			Description: "Run shape detection over the canvas: group strokes, classify shapes (rectangle, circle, diamond, triangle, line, arrow), and build the connector graph. Returns typed shapes with confidence scores and a suggested diagram type.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text_regions": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"id":   map[string]interface{}{"type": "string"},
								"text": map[string]interface{}{"type": "string"},
								"bounds": map[string]interface{}{
									"type": "object",
									"properties": map[string]interface{}{
										"x":      map[string]interface{}{"type": "number"},
										"y":      map[string]interface{}{"type": "number"},
										"width":  map[string]interface{}{"type": "number"},
										"height": map[string]interface{}{"type": "number"},
									},
									"required": []string{"x", "y", "width", "height"},
								},
								"confidence": map[string]interface{}{"type": "number"},
							},
							"required": []string{"text", "bounds"},
						},
						"description": "Optional recognized text regions to carry through into the result and use as labels on export",
					},
				},
			},
		},

		// Export
		{
			Name:        "sketch_export_drawio",
			Description: "Export the last analysis result as draw.io (mxGraph) XML. Requires a prior sketch_analyze call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"filename": map[string]interface{}{
						"type":        "string",
						"description": "Diagram name embedded in the file (default 'sketch')",
						"default":     "sketch",
					},
					"include_grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether the editor grid is enabled in the exported document",
						"default":     true,
					},
					"page_width": map[string]interface{}{
						"type":        "number",
						"description": "Page width in points (default 850)",
						"default":     850,
					},
					"page_height": map[string]interface{}{
						"type":        "number",
						"description": "Page height in points (default 1100)",
						"default":     1100,
					},
					"theme": map[string]interface{}{
						"type":        "string",
						"description": "Color theme hint (light or dark)",
						"default":     "light",
					},
				},
			},
		},

		// Rendering
		{
			Name:        "sketch_render_preview",
			Description: "Rasterize the canvas strokes to a base64-encoded PNG preview.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Longest-edge limit for the thumbnail (0 keeps full canvas size)",
						"default":     800,
					},
					"smooth": map[string]interface{}{
						"type":        "boolean",
						"description": "Apply light Gaussian smoothing to soften stair-stepping",
						"default":     true,
					},
					"show_grid": map[string]interface{}{
						"type":        "boolean",
						"description": "Draw the background grid",
						"default":     false,
					},
				},
			},
		},

		// Persistence
		{
			Name:        "sketch_save_backup",
			Description: "Save the current canvas strokes to a gzip-compressed JSON backup file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path for the backup file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "sketch_load_backup",
			Description: "Replace the canvas contents with strokes from a backup file written by sketch_save_backup.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the backup file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Configuration
		{
			Name:        "sketch_params",
			Description: "Return the detection parameters the engine is running with (thresholds for grouping, corner detection, and classification).",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
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
