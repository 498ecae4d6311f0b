package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
	"github.com/lucasb-eyer/go-colorful"
)

// CanvasConfig describes the raster surface strokes are drawn onto.
type CanvasConfig struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	BackgroundColor string `json:"background_color"`
	GridSize        int    `json:"grid_size,omitempty"`
}

// DefaultCanvasConfig returns a white 1920x1080 canvas with a light 20px grid.
func DefaultCanvasConfig() CanvasConfig {
	return CanvasConfig{
		Width:           1920,
		Height:          1080,
		BackgroundColor: "#ffffff",
		GridSize:        20,
	}
}

// Render draws the strokes onto a fresh RGBA image.
//
// Stroke and background colors are #RRGGBB hex strings; unparsable colors
// fall back to black ink on white. Strokes with fewer than 2 points draw
// nothing. The optional grid is drawn beneath the ink.
func Render(strokes []sketch.Stroke, cfg CanvasConfig) (*image.RGBA, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", cfg.Width, cfg.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	bg := parseHexColor(cfg.BackgroundColor, color.RGBA{255, 255, 255, 255})
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			img.SetRGBA(x, y, bg)
		}
	}

	if cfg.GridSize > 0 {
		drawGrid(img, cfg.GridSize)
	}

	for _, s := range strokes {
		drawStroke(img, s)
	}
	return img, nil
}

// parseHexColor parses a #RRGGBB string via go-colorful, returning fallback
// on failure.
func parseHexColor(hex string, fallback color.RGBA) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func drawGrid(img *image.RGBA, spacing int) {
	grid := color.RGBA{232, 232, 232, 255}
	bounds := img.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x += spacing {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			img.SetRGBA(x, y, grid)
		}
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y += spacing {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, grid)
		}
	}
}

// drawStroke renders one stroke as thick line segments between consecutive
// points.
func drawStroke(img *image.RGBA, s sketch.Stroke) {
	if len(s.Points) < 2 {
		return
	}
	ink := parseHexColor(s.Color, color.RGBA{0, 0, 0, 255})
	width := int(s.Width)
	if width < 1 {
		width = 1
	}
	for i := 1; i < len(s.Points); i++ {
		p1 := s.Points[i-1]
		p2 := s.Points[i]
		drawThickLine(img, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), width, ink)
	}
}

// drawThickLine walks a Bresenham line stamping a filled disc of the pen
// radius at every step.
func drawThickLine(img *image.RGBA, x1, y1, x2, y2, width int, c color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	x, y := x1, y1
	for {
		stampDisc(img, x, y, width/2, c)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func stampDisc(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	bounds := img.Bounds()
	rsq := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > rsq {
				continue
			}
			px, py := cx+dx, cy+dy
			if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
