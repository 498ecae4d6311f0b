package server

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/sketch-tools-mcp/internal/detect"
	"github.com/ironsheep/sketch-tools-mcp/internal/render"
	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// squareStroke draws an open square outline starting at the top-left corner,
// leaving the small hand-drawn gap before the closing vertex.
func squareStroke(id string, start uint64, x, y, size float64) sketch.Stroke {
	verts := []sketch.Point{
		{X: x, Y: y},
		{X: x + size, Y: y},
		{X: x + size, Y: y + size},
		{X: x, Y: y + size},
	}
	const perEdge = 20
	var pts []sketch.Point
	for i := 0; i < len(verts); i++ {
		a := verts[i]
		b := verts[(i+1)%len(verts)]
		for j := 0; j < perEdge; j++ {
			f := float64(j) / perEdge
			pts = append(pts, sketch.Point{
				X:         a.X + (b.X-a.X)*f,
				Y:         a.Y + (b.Y-a.Y)*f,
				Timestamp: start + uint64(len(pts))*10,
			})
		}
	}
	return sketch.Stroke{ID: id, Points: pts, Color: "#000000", Width: 2, Tool: "pen"}
}

// arrowStroke draws a horizontal shaft at height y ending in a short barb.
func arrowStroke(id string, start uint64, x1, y, x2 float64) sketch.Stroke {
	var pts []sketch.Point
	for i := 0; i <= 10; i++ {
		pts = append(pts, sketch.Point{
			X:         x1 + (x2-x1)*float64(i)/10,
			Y:         y,
			Timestamp: start + uint64(i)*10,
		})
	}
	pts = append(pts,
		sketch.Point{X: x2 - 4, Y: y + 3, Timestamp: start + 110},
		sketch.Point{X: x2 - 7, Y: y + 6, Timestamp: start + 120},
	)
	return sketch.Stroke{ID: id, Points: pts, Color: "#000000", Width: 2, Tool: "pen"}
}

// addFlowchart loads two boxes joined by an arrow onto the server's canvas.
func addFlowchart(t *testing.T, s *Server) {
	t.Helper()
	s.canvas.AddAll([]sketch.Stroke{
		squareStroke("box1", 0, 0, 0, 100),
		squareStroke("box2", 100_000, 262, 0, 100),
		arrowStroke("arrow", 200_000, 125, 50, 240),
	})
}

func mustArgs(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}
	return b
}

func TestExecuteTool_UnknownTool(t *testing.T) {
	s := newTestServer(t)

	_, err := s.executeTool("bogus_tool", nil)
	if err == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if !strings.Contains(err.Error(), "unknown tool") {
		t.Errorf("Error: got %v, want mention of unknown tool", err)
	}
}

func TestHandleAddStroke(t *testing.T) {
	s := newTestServer(t)

	args := mustArgs(t, map[string]interface{}{
		"stroke": map[string]interface{}{
			"points": []map[string]float64{{"x": 0, "y": 0}, {"x": 10, "y": 10}},
		},
	})
	result, err := s.executeTool("sketch_add_stroke", args)
	if err != nil {
		t.Fatalf("sketch_add_stroke failed: %v", err)
	}

	m := result.(map[string]interface{})
	if m["stroke_count"] != 1 {
		t.Errorf("stroke_count: got %v, want 1", m["stroke_count"])
	}
	if m["stroke_id"] == "" {
		t.Error("omitted stroke id should be generated")
	}

	// Defaults must be filled before the stroke reaches the canvas.
	st := s.canvas.Snapshot()[0]
	if st.Color != "#000000" || st.Width != 2 || st.Tool != "pen" {
		t.Errorf("defaults not applied: %+v", st)
	}
}

func TestHandleAddStroke_NoPoints(t *testing.T) {
	s := newTestServer(t)

	args := mustArgs(t, map[string]interface{}{
		"stroke": map[string]interface{}{"id": "empty"},
	})
	if _, err := s.executeTool("sketch_add_stroke", args); err == nil {
		t.Fatal("Expected error for stroke with no points")
	}
	if s.canvas.Len() != 0 {
		t.Error("Rejected stroke must not reach the canvas")
	}
}

func TestHandleAddStrokes(t *testing.T) {
	s := newTestServer(t)

	args := mustArgs(t, addStrokesArgs{Strokes: []sketch.Stroke{
		squareStroke("a", 0, 0, 0, 50),
		squareStroke("b", 1000, 200, 0, 50),
	}})
	result, err := s.executeTool("sketch_add_strokes", args)
	if err != nil {
		t.Fatalf("sketch_add_strokes failed: %v", err)
	}

	m := result.(map[string]interface{})
	if m["stroke_count"] != 2 {
		t.Errorf("stroke_count: got %v, want 2", m["stroke_count"])
	}
	ids := m["stroke_ids"].([]string)
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("stroke_ids: got %v", ids)
	}
}

func TestHandleListStrokes(t *testing.T) {
	s := newTestServer(t)
	addFlowchart(t, s)

	result, err := s.executeTool("sketch_list_strokes", nil)
	if err != nil {
		t.Fatalf("sketch_list_strokes failed: %v", err)
	}

	m := result.(map[string]interface{})
	if m["stroke_count"] != 3 {
		t.Errorf("stroke_count: got %v, want 3", m["stroke_count"])
	}
	summaries := m["strokes"].([]strokeSummary)
	if summaries[0].ID != "box1" {
		t.Errorf("first stroke id: got %s, want box1", summaries[0].ID)
	}
	if summaries[0].PointCount != 80 {
		t.Errorf("box1 point count: got %d, want 80", summaries[0].PointCount)
	}
	if summaries[0].Bounds.Width == 0 {
		t.Error("stroke bounds not computed")
	}
}

func TestHandleClear(t *testing.T) {
	s := newTestServer(t)
	addFlowchart(t, s)
	s.lastResult = &detect.ProcessingResult{}

	result, err := s.executeTool("sketch_clear", nil)
	if err != nil {
		t.Fatalf("sketch_clear failed: %v", err)
	}

	m := result.(map[string]interface{})
	if m["stroke_count"] != 0 {
		t.Errorf("stroke_count: got %v, want 0", m["stroke_count"])
	}
	if s.canvas.Len() != 0 {
		t.Error("Canvas not cleared")
	}
	if s.lastResult != nil {
		t.Error("Cached analysis result not discarded")
	}
}

func TestHandleAnalyze(t *testing.T) {
	s := newTestServer(t)
	addFlowchart(t, s)

	result, err := s.executeTool("sketch_analyze", nil)
	if err != nil {
		t.Fatalf("sketch_analyze failed: %v", err)
	}

	pr, ok := result.(*detect.ProcessingResult)
	if !ok {
		t.Fatalf("Result type: got %T, want *detect.ProcessingResult", result)
	}
	if len(pr.Shapes) != 3 {
		t.Fatalf("Shapes: got %d, want 3", len(pr.Shapes))
	}
	if len(pr.Connectors) != 1 {
		t.Errorf("Connectors: got %d, want 1", len(pr.Connectors))
	}
	if s.lastResult != pr {
		t.Error("Result not cached for export")
	}
}

func TestHandleAnalyze_TextRegions(t *testing.T) {
	s := newTestServer(t)
	addFlowchart(t, s)

	args := mustArgs(t, analyzeArgs{TextRegions: []sketch.TextRegion{
		{ID: "t1", Text: "Start", Bounds: sketch.BoundingBox{X: 30, Y: 40, Width: 40, Height: 20}},
	}})
	result, err := s.executeTool("sketch_analyze", args)
	if err != nil {
		t.Fatalf("sketch_analyze failed: %v", err)
	}

	pr := result.(*detect.ProcessingResult)
	if len(pr.TextRegions) != 1 || pr.TextRegions[0].Text != "Start" {
		t.Errorf("Text regions not carried through: %+v", pr.TextRegions)
	}
}

func TestHandleExportDrawio(t *testing.T) {
	s := newTestServer(t)
	addFlowchart(t, s)

	if _, err := s.executeTool("sketch_analyze", nil); err != nil {
		t.Fatalf("sketch_analyze failed: %v", err)
	}

	result, err := s.executeTool("sketch_export_drawio", mustArgs(t, map[string]interface{}{
		"filename": "flow",
	}))
	if err != nil {
		t.Fatalf("sketch_export_drawio failed: %v", err)
	}

	m := result.(map[string]interface{})
	if m["filename"] != "flow" {
		t.Errorf("filename: got %v, want flow", m["filename"])
	}
	xml := m["xml"].(string)
	if !strings.Contains(xml, "<mxfile") || !strings.Contains(xml, "<mxGraphModel") {
		t.Errorf("Export missing draw.io structure:\n%s", xml)
	}
	if !strings.Contains(xml, `edge="1"`) {
		t.Error("Arrow should export as an edge cell")
	}
}

func TestHandleExportDrawio_NoAnalysis(t *testing.T) {
	s := newTestServer(t)
	addFlowchart(t, s)

	_, err := s.executeTool("sketch_export_drawio", nil)
	if err == nil {
		t.Fatal("Expected error when exporting before analysis")
	}
	if !strings.Contains(err.Error(), "sketch_analyze") {
		t.Errorf("Error should point at sketch_analyze: %v", err)
	}
}

func TestHandleRenderPreview(t *testing.T) {
	s := newTestServer(t)
	addFlowchart(t, s)

	result, err := s.executeTool("sketch_render_preview", mustArgs(t, map[string]interface{}{
		"max_width": 320,
	}))
	if err != nil {
		t.Fatalf("sketch_render_preview failed: %v", err)
	}

	pr, ok := result.(*render.PreviewResult)
	if !ok {
		t.Fatalf("Result type: got %T, want *render.PreviewResult", result)
	}
	if pr.Width > 320 {
		t.Errorf("Width: got %d, want <= 320", pr.Width)
	}
	if pr.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", pr.MimeType)
	}
	if pr.ImageBase64 == "" {
		t.Error("Preview image is empty")
	}
	if pr.StrokeCount != 3 {
		t.Errorf("StrokeCount: got %d, want 3", pr.StrokeCount)
	}
}

func TestHandleBackup_Roundtrip(t *testing.T) {
	s := newTestServer(t)
	addFlowchart(t, s)
	path := filepath.Join(t.TempDir(), "canvas.json.gz")

	saved, err := s.executeTool("sketch_save_backup", mustArgs(t, backupArgs{Path: path}))
	if err != nil {
		t.Fatalf("sketch_save_backup failed: %v", err)
	}
	if saved.(map[string]interface{})["stroke_count"] != 3 {
		t.Errorf("saved stroke_count: got %v, want 3", saved.(map[string]interface{})["stroke_count"])
	}

	if _, err := s.executeTool("sketch_clear", nil); err != nil {
		t.Fatalf("sketch_clear failed: %v", err)
	}
	if s.canvas.Len() != 0 {
		t.Fatal("Canvas not empty after clear")
	}

	loaded, err := s.executeTool("sketch_load_backup", mustArgs(t, backupArgs{Path: path}))
	if err != nil {
		t.Fatalf("sketch_load_backup failed: %v", err)
	}
	if loaded.(map[string]interface{})["stroke_count"] != 3 {
		t.Errorf("loaded stroke_count: got %v, want 3", loaded.(map[string]interface{})["stroke_count"])
	}
	if s.canvas.Len() != 3 {
		t.Errorf("Canvas strokes after load: got %d, want 3", s.canvas.Len())
	}
}

func TestHandleBackup_MissingPath(t *testing.T) {
	s := newTestServer(t)

	if _, err := s.executeTool("sketch_save_backup", mustArgs(t, backupArgs{})); err == nil {
		t.Error("save without path should error")
	}
	if _, err := s.executeTool("sketch_load_backup", mustArgs(t, backupArgs{})); err == nil {
		t.Error("load without path should error")
	}
}

func TestHandleLoadBackup_DiscardsCachedResult(t *testing.T) {
	s := newTestServer(t)
	addFlowchart(t, s)
	path := filepath.Join(t.TempDir(), "canvas.json.gz")

	if _, err := s.executeTool("sketch_save_backup", mustArgs(t, backupArgs{Path: path})); err != nil {
		t.Fatalf("sketch_save_backup failed: %v", err)
	}
	if _, err := s.executeTool("sketch_analyze", nil); err != nil {
		t.Fatalf("sketch_analyze failed: %v", err)
	}
	if _, err := s.executeTool("sketch_load_backup", mustArgs(t, backupArgs{Path: path})); err != nil {
		t.Fatalf("sketch_load_backup failed: %v", err)
	}

	if s.lastResult != nil {
		t.Error("Loading a backup must discard the cached analysis result")
	}
}

func TestHandleParams(t *testing.T) {
	s := newTestServer(t)

	result, err := s.executeTool("sketch_params", nil)
	if err != nil {
		t.Fatalf("sketch_params failed: %v", err)
	}

	params, ok := result.(sketch.DetectionParams)
	if !ok {
		t.Fatalf("Result type: got %T, want sketch.DetectionParams", result)
	}
	if params.CircularityThreshold != 0.85 {
		t.Errorf("CircularityThreshold: got %v, want 0.85", params.CircularityThreshold)
	}
}

func TestHandleToolsCall(t *testing.T) {
	s := newTestServer(t)

	params := mustArgs(t, ToolCallParams{
		Name: "sketch_add_stroke",
		Arguments: mustArgs(t, map[string]interface{}{
			"stroke": map[string]interface{}{
				"points": []map[string]float64{{"x": 0, "y": 0}, {"x": 5, "y": 5}},
			},
		}),
	})
	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 7, Params: params})

	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}
	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("Malformed content: %v", content)
	}
	if !strings.Contains(content[0]["text"].(string), "stroke_count") {
		t.Error("Tool result not embedded in content text")
	}
}

func TestHandleToolsCall_InvalidParams(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 1, Params: json.RawMessage(`{`)})

	if resp.Error == nil {
		t.Fatal("Expected error for malformed params")
	}
	if resp.Error.Code != -32602 {
		t.Errorf("Error code: got %d, want -32602", resp.Error.Code)
	}
}

func TestHandleToolsCall_ToolFailure(t *testing.T) {
	s := newTestServer(t)

	params := mustArgs(t, ToolCallParams{Name: "sketch_export_drawio"})
	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 1, Params: params})

	if resp.Error == nil {
		t.Fatal("Expected error for export without analysis")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("Error code: got %d, want -32000", resp.Error.Code)
	}
}
