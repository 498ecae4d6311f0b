package export

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"

	"github.com/ironsheep/sketch-tools-mcp/internal/detect"
	"github.com/ironsheep/sketch-tools-mcp/internal/sketch"
)

// Minimum exported node dimensions and the label attachment margin.
const (
	minNodeWidth  = 80.0
	minNodeHeight = 40.0
	labelMargin   = 20.0
)

// ExportOptions control the generated document.
type ExportOptions struct {
	Filename    string  `json:"filename"`
	IncludeGrid bool    `json:"include_grid"`
	PageWidth   float64 `json:"page_width"`
	PageHeight  float64 `json:"page_height"`
	Theme       string  `json:"theme"`
}

// DefaultExportOptions returns sensible defaults for an A4-ish landscape page.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		Filename:    "sketch",
		IncludeGrid: true,
		PageWidth:   850,
		PageHeight:  1100,
		Theme:       "light",
	}
}

type mxFile struct {
	XMLName  xml.Name  `xml:"mxfile"`
	Host     string    `xml:"host,attr"`
	Modified string    `xml:"modified,attr"`
	Agent    string    `xml:"agent,attr"`
	Version  string    `xml:"version,attr"`
	Type     string    `xml:"type,attr"`
	Diagram  mxDiagram `xml:"diagram"`
}

type mxDiagram struct {
	ID    string       `xml:"id,attr"`
	Name  string       `xml:"name,attr"`
	Model mxGraphModel `xml:"mxGraphModel"`
}

type mxGraphModel struct {
	Dx         string `xml:"dx,attr"`
	Dy         string `xml:"dy,attr"`
	Grid       string `xml:"grid,attr"`
	GridSize   string `xml:"gridSize,attr"`
	Guides     string `xml:"guides,attr"`
	Tooltips   string `xml:"tooltips,attr"`
	Connect    string `xml:"connect,attr"`
	Arrows     string `xml:"arrows,attr"`
	Fold       string `xml:"fold,attr"`
	Page       string `xml:"page,attr"`
	PageScale  string `xml:"pageScale,attr"`
	PageWidth  string `xml:"pageWidth,attr"`
	PageHeight string `xml:"pageHeight,attr"`
	Math       string `xml:"math,attr"`
	Shadow     string `xml:"shadow,attr"`
	Root       mxRoot `xml:"root"`
}

type mxRoot struct {
	Cells []mxCell `xml:"mxCell"`
}

type mxCell struct {
	ID       string      `xml:"id,attr"`
	Value    string      `xml:"value,attr,omitempty"`
	Style    string      `xml:"style,attr,omitempty"`
	Vertex   string      `xml:"vertex,attr,omitempty"`
	Edge     string      `xml:"edge,attr,omitempty"`
	Parent   string      `xml:"parent,attr,omitempty"`
	Source   string      `xml:"source,attr,omitempty"`
	Target   string      `xml:"target,attr,omitempty"`
	Geometry *mxGeometry `xml:"mxGeometry,omitempty"`
}

type mxGeometry struct {
	X        string `xml:"x,attr,omitempty"`
	Y        string `xml:"y,attr,omitempty"`
	Width    string `xml:"width,attr,omitempty"`
	Height   string `xml:"height,attr,omitempty"`
	Relative string `xml:"relative,attr,omitempty"`
	As       string `xml:"as,attr"`
}

// GenerateXML converts a detection result into a draw.io document. Node
// shapes become vertex cells, connector shapes become edge cells wired to the
// node cells their endpoints were matched against, and text regions become
// node labels.
func GenerateXML(result *detect.ProcessingResult, opts ExportOptions) (string, error) {
	if result == nil {
		return "", xerrors.New("nil detection result")
	}
	if opts.Filename == "" {
		opts.Filename = "sketch"
	}
	if opts.PageWidth <= 0 || opts.PageHeight <= 0 {
		def := DefaultExportOptions()
		opts.PageWidth = def.PageWidth
		opts.PageHeight = def.PageHeight
	}

	grid := "0"
	if opts.IncludeGrid {
		grid = "1"
	}

	// Mandatory parent cells.
	cells := []mxCell{
		{ID: "0"},
		{ID: "1", Parent: "0"},
	}

	// Node cells first so edges can reference them.
	cellID := 2
	nodeCells := make(map[string]string, len(result.Shapes))
	for _, shape := range result.Shapes {
		if shape.Type.IsEdge() {
			continue
		}
		id := strconv.Itoa(cellID)
		cellID++
		nodeCells[shape.ID] = id

		w := shape.Bounds.Width
		if w < minNodeWidth {
			w = minNodeWidth
		}
		h := shape.Bounds.Height
		if h < minNodeHeight {
			h = minNodeHeight
		}

		cells = append(cells, mxCell{
			ID:     id,
			Value:  labelFor(shape, result.TextRegions),
			Style:  nodeStyle(shape.Type),
			Vertex: "1",
			Parent: "1",
			Geometry: &mxGeometry{
				X:      formatCoord(shape.Bounds.X),
				Y:      formatCoord(shape.Bounds.Y),
				Width:  formatCoord(w),
				Height: formatCoord(h),
				As:     "geometry",
			},
		})
	}

	// Edge cells, wired via the connector graph.
	connByShape := make(map[string]detect.Connector, len(result.Connectors))
	for _, c := range result.Connectors {
		connByShape[c.ShapeID] = c
	}
	for _, shape := range result.Shapes {
		if !shape.Type.IsEdge() {
			continue
		}
		id := strconv.Itoa(cellID)
		cellID++

		conn, hasConn := connByShape[shape.ID]
		cell := mxCell{
			ID:     id,
			Style:  edgeStyle(shape.Type, hasConn && conn.Directed),
			Edge:   "1",
			Parent: "1",
			Geometry: &mxGeometry{
				Relative: "1",
				As:       "geometry",
			},
		}
		if hasConn {
			cell.Source = nodeCells[conn.SourceID]
			cell.Target = nodeCells[conn.TargetID]
		}
		cells = append(cells, cell)
	}

	doc := mxFile{
		Host:     "SketchTools",
		Modified: strconv.FormatInt(time.Now().Unix(), 10),
		Agent:    "sketch-tools-mcp/1.0.0",
		Version:  "24.0.0",
		Type:     "device",
		Diagram: mxDiagram{
			ID:   uuid.NewString(),
			Name: opts.Filename,
			Model: mxGraphModel{
				Dx:         "0",
				Dy:         "0",
				Grid:       grid,
				GridSize:   "10",
				Guides:     "1",
				Tooltips:   "1",
				Connect:    "1",
				Arrows:     "1",
				Fold:       "1",
				Page:       "1",
				PageScale:  "1",
				PageWidth:  formatCoord(opts.PageWidth),
				PageHeight: formatCoord(opts.PageHeight),
				Math:       "0",
				Shadow:     "0",
				Root:       mxRoot{Cells: cells},
			},
		},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", xerrors.New("failed to marshal diagram", err)
	}
	return xml.Header + string(out), nil
}

// labelFor joins the text of every region whose center falls within the
// shape's bounds expanded by the label margin.
func labelFor(shape detect.DetectedShape, regions []sketch.TextRegion) string {
	var labels []string
	expanded := shape.Bounds.Expanded(labelMargin)
	for _, r := range regions {
		if expanded.Contains(r.Bounds.Center()) {
			labels = append(labels, r.Text)
		}
	}
	return strings.Join(labels, "\n")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
