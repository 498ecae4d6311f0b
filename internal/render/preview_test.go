package render

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"testing"

	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

func TestRenderPreview(t *testing.T) {
	strokes := []sketch.Stroke{
		testStroke([]sketch.Point{{X: 0, Y: 0}, {X: 500, Y: 300}}, "#0000ff", 4),
	}

	result, err := RenderPreview(strokes, PreviewOptions{MaxWidth: 320, Smooth: true})
	if err != nil {
		t.Fatalf("RenderPreview failed: %v", err)
	}

	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %q, want image/png", result.MimeType)
	}
	if result.StrokeCount != 1 {
		t.Errorf("StrokeCount: got %d, want 1", result.StrokeCount)
	}
	if result.Width > 320 {
		t.Errorf("Width: got %d, want <= 320", result.Width)
	}

	// The payload must be a decodable PNG of the reported size.
	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("base64 decode failed: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("png decode failed: %v", err)
	}
	if img.Bounds().Dx() != result.Width || img.Bounds().Dy() != result.Height {
		t.Errorf("decoded size %dx%d, reported %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), result.Width, result.Height)
	}
}

func TestRenderPreview_FullSize(t *testing.T) {
	strokes := []sketch.Stroke{
		testStroke([]sketch.Point{{X: 0, Y: 0}, {X: 100, Y: 100}}, "#000000", 2),
	}

	result, err := RenderPreview(strokes, PreviewOptions{MaxWidth: 0, Smooth: false})
	if err != nil {
		t.Fatalf("RenderPreview failed: %v", err)
	}

	def := DefaultCanvasConfig()
	if result.Width != def.Width || result.Height != def.Height {
		t.Errorf("got %dx%d, want full canvas %dx%d", result.Width, result.Height, def.Width, def.Height)
	}
}

func TestRenderPreview_EmptyCanvas(t *testing.T) {
	result, err := RenderPreview(nil, PreviewOptions{MaxWidth: 200})
	if err != nil {
		t.Fatalf("RenderPreview failed: %v", err)
	}
	if result.StrokeCount != 0 {
		t.Errorf("StrokeCount: got %d, want 0", result.StrokeCount)
	}
	if result.ImageBase64 == "" {
		t.Error("empty canvas still renders an image")
	}
}
