package render

import (
	"bytes"
	"encoding/base64"
	"image/png"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
	"github.com/mdobak/go-xerrors"

	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// PreviewOptions control how a rasterized preview is produced.
type PreviewOptions struct {
	MaxWidth  int     `json:"max_width"`  // longest-edge limit for the thumbnail, 0 keeps full size
	Smooth    bool    `json:"smooth"`     // apply a light Gaussian blur to soften stair-stepping
	ShowGrid  bool    `json:"show_grid"`  // draw the background grid
	GridSize  int     `json:"grid_size"`  // grid spacing in pixels, 0 uses the default
	Canvas    string  `json:"canvas"`     // background color as hex, empty uses white
	BlurSigma float64 `json:"blur_sigma"` // smoothing radius, 0 uses a default of 0.8
}

// PreviewResult contains the rendered preview image data
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	StrokeCount int    `json:"stroke_count"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// RenderPreview rasterizes the strokes into a PNG thumbnail. The strokes are
// normalized into the canvas viewport first so the drawing always fills the
// frame regardless of where it was sketched.
func RenderPreview(strokes []sketch.Stroke, opts PreviewOptions) (*PreviewResult, error) {
	cfg := DefaultCanvasConfig()
	if opts.Canvas != "" {
		cfg.BackgroundColor = opts.Canvas
	}
	if opts.ShowGrid {
		if opts.GridSize > 0 {
			cfg.GridSize = opts.GridSize
		}
	} else {
		cfg.GridSize = 0
	}

	fitted := Normalize(strokes, float64(cfg.Width), float64(cfg.Height), 40)

	img, err := Render(fitted, cfg)
	if err != nil {
		return nil, err
	}

	result := imaging.Clone(img)
	if opts.Smooth {
		sigma := opts.BlurSigma
		if sigma <= 0 {
			sigma = 0.8
		}
		result = imaging.Clone(blur.Gaussian(result, sigma))
	}
	if opts.MaxWidth > 0 && result.Bounds().Dx() > opts.MaxWidth {
		result = imaging.Resize(result, opts.MaxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return nil, xerrors.New("failed to encode preview image", err)
	}

	return &PreviewResult{
		Width:       result.Bounds().Dx(),
		Height:      result.Bounds().Dy(),
		StrokeCount: len(strokes),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
