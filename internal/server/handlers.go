package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ironsheep/sketch-tools-mcp/internal/export"
	"github.com/ironsheep/sketch-tools-mcp/internal/render"
	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "sketch_add_stroke", "sketch_analyze").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the named tool.
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
//  3. Reads or mutates the canvas
//  4. Calls the appropriate detect/render/export function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Canvas Operations
	case "sketch_add_stroke":
		return s.handleAddStroke(args)
	case "sketch_add_strokes":
		return s.handleAddStrokes(args)
	case "sketch_list_strokes":
		return s.handleListStrokes(args)
	case "sketch_clear":
		return s.handleClear(args)

	// Detection
	case "sketch_analyze":
		return s.handleAnalyze(args)

	// Export
	case "sketch_export_drawio":
		return s.handleExportDrawio(args)

	// Rendering
	case "sketch_render_preview":
		return s.handleRenderPreview(args)

	// Persistence
	case "sketch_save_backup":
		return s.handleSaveBackup(args)
	case "sketch_load_backup":
		return s.handleLoadBackup(args)

	// Configuration
	case "sketch_params":
		return s.handleParams(args)

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

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Canvas Operation Handlers ===

type addStrokeArgs struct {
	Stroke sketch.Stroke `json:"stroke"`
}

func (s *Server) handleAddStroke(args json.RawMessage) (interface{}, error) {
	var a addStrokeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Stroke.Points) == 0 {
		return nil, errors.New("stroke has no points")
	}
	prepareStroke(&a.Stroke)
	s.canvas.Add(a.Stroke)
	return map[string]interface{}{
		"stroke_id":    a.Stroke.ID,
		"stroke_count": s.canvas.Len(),
	}, nil
}

type addStrokesArgs struct {
	Strokes []sketch.Stroke `json:"strokes"`
}

func (s *Server) handleAddStrokes(args json.RawMessage) (interface{}, error) {
	var a addStrokesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ids := make([]string, len(a.Strokes))
	for i := range a.Strokes {
		if len(a.Strokes[i].Points) == 0 {
			return nil, fmt.Errorf("stroke %d has no points", i)
		}
		prepareStroke(&a.Strokes[i])
		ids[i] = a.Strokes[i].ID
	}
	s.canvas.AddAll(a.Strokes)
	return map[string]interface{}{
		"stroke_ids":   ids,
		"stroke_count": s.canvas.Len(),
	}, nil
}

// prepareStroke fills in defaults the client is allowed to omit.
func prepareStroke(st *sketch.Stroke) {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if st.Color == "" {
		st.Color = "#000000"
	}
	if st.Width <= 0 {
		st.Width = 2
	}
	if st.Tool == "" {
		st.Tool = "pen"
	}
}

// strokeSummary is the per-stroke listing entry.
type strokeSummary struct {
	ID         string             `json:"id"`
	PointCount int                `json:"point_count"`
	Bounds     sketch.BoundingBox `json:"bounds"`
	Color      string             `json:"color"`
	Width      float64            `json:"width"`
	Tool       string             `json:"tool"`
}

func (s *Server) handleListStrokes(json.RawMessage) (interface{}, error) {
	strokes := s.canvas.Snapshot()
	summaries := make([]strokeSummary, len(strokes))
	for i, st := range strokes {
		summaries[i] = strokeSummary{
			ID:         st.ID,
			PointCount: len(st.Points),
			Bounds:     sketch.BoundsOf(st.Points),
			Color:      st.Color,
			Width:      st.Width,
			Tool:       st.Tool,
		}
	}
	return map[string]interface{}{
		"stroke_count": len(strokes),
		"strokes":      summaries,
	}, nil
}

func (s *Server) handleClear(json.RawMessage) (interface{}, error) {
	s.canvas.Clear()

	s.mu.Lock()
	s.lastResult = nil
	s.textRegions = nil
	s.mu.Unlock()

	return map[string]interface{}{
		"stroke_count": 0,
	}, nil
}

// === Detection Handlers ===

type analyzeArgs struct {
	TextRegions []sketch.TextRegion `json:"text_regions"`
}

func (s *Server) handleAnalyze(args json.RawMessage) (interface{}, error) {
	var a analyzeArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	result, err := s.engine.Analyze(s.canvas.Snapshot(), a.TextRegions)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.lastResult = result
	s.textRegions = a.TextRegions
	s.mu.Unlock()

	return result, nil
}

// === Export Handlers ===

type exportDrawioArgs struct {
	Filename    string  `json:"filename"`
	IncludeGrid *bool   `json:"include_grid"`
	PageWidth   float64 `json:"page_width"`
	PageHeight  float64 `json:"page_height"`
	Theme       string  `json:"theme"`
}

func (s *Server) handleExportDrawio(args json.RawMessage) (interface{}, error) {
	var a exportDrawioArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	result := s.lastResult
	s.mu.Unlock()
	if result == nil {
		return nil, errors.New("no analysis result available: call sketch_analyze first")
	}

	opts := export.DefaultExportOptions()
	if a.Filename != "" {
		opts.Filename = a.Filename
	}
	if a.IncludeGrid != nil {
		opts.IncludeGrid = *a.IncludeGrid
	}
	if a.PageWidth > 0 {
		opts.PageWidth = a.PageWidth
	}
	if a.PageHeight > 0 {
		opts.PageHeight = a.PageHeight
	}
	if a.Theme != "" {
		opts.Theme = a.Theme
	}

	xml, err := export.GenerateXML(result, opts)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"filename": opts.Filename,
		"xml":      xml,
	}, nil
}

// === Rendering Handlers ===

type renderPreviewArgs struct {
	MaxWidth int   `json:"max_width"`
	Smooth   *bool `json:"smooth"`
	ShowGrid bool  `json:"show_grid"`
}

func (s *Server) handleRenderPreview(args json.RawMessage) (interface{}, error) {
	var a renderPreviewArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	if a.MaxWidth == 0 {
		a.MaxWidth = 800
	}
	smooth := true
	if a.Smooth != nil {
		smooth = *a.Smooth
	}

	return render.RenderPreview(s.canvas.Snapshot(), render.PreviewOptions{
		MaxWidth: a.MaxWidth,
		Smooth:   smooth,
		ShowGrid: a.ShowGrid,
	})
}

// === Persistence Handlers ===

type backupArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleSaveBackup(args json.RawMessage) (interface{}, error) {
	var a backupArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	strokes := s.canvas.Snapshot()
	if err := sketch.SaveBackup(a.Path, strokes); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"path":         a.Path,
		"stroke_count": len(strokes),
	}, nil
}

func (s *Server) handleLoadBackup(args json.RawMessage) (interface{}, error) {
	var a backupArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, errors.New("path is required")
	}

	strokes, err := sketch.LoadBackup(a.Path)
	if err != nil {
		return nil, err
	}
	s.canvas.Replace(strokes)

	s.mu.Lock()
	s.lastResult = nil
	s.textRegions = nil
	s.mu.Unlock()

	return map[string]interface{}{
		"path":         a.Path,
		"stroke_count": len(strokes),
	}, nil
}

// === Configuration Handlers ===

func (s *Server) handleParams(json.RawMessage) (interface{}, error) {
	return s.engine.Params(), nil
}
