package export

import "github.com/ironsheep/sketch-tools-mcp/internal/detect"

// Style presets matching the default draw.io palette.
const (
	StyleRectangle        = "rounded=0;whiteSpace=wrap;html=1;fillColor=#dae8fc;strokeColor=#6c8ebf;"
	StyleRoundedRectangle = "rounded=1;whiteSpace=wrap;html=1;fillColor=#dae8fc;strokeColor=#6c8ebf;"
	StyleDiamond          = "rhombus;whiteSpace=wrap;html=1;fillColor=#fff2cc;strokeColor=#d6b656;"
	StyleCircle           = "ellipse;whiteSpace=wrap;html=1;aspect=fixed;fillColor=#d5e8d4;strokeColor=#82b366;"
	StyleEllipse          = "ellipse;whiteSpace=wrap;html=1;fillColor=#d5e8d4;strokeColor=#82b366;"
	StyleTriangle         = "triangle;whiteSpace=wrap;html=1;fillColor=#ffe6cc;strokeColor=#d79b00;"
	StyleTerminator       = "ellipse;whiteSpace=wrap;html=1;fillColor=#f8cecc;strokeColor=#b85450;"
	StyleArrow            = "edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;jettySize=auto;html=1;endArrow=classic;endFill=1;"
	StyleLine             = "edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;jettySize=auto;html=1;endArrow=none;"
	StyleDashedArrow      = "edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;jettySize=auto;html=1;endArrow=classic;endFill=1;dashed=1;"
)

// nodeStyle returns the vertex style for a detected shape type.
func nodeStyle(t detect.ShapeType) string {
	switch t {
	case detect.ShapeRectangle:
		return StyleRoundedRectangle
	case detect.ShapeDiamond:
		return StyleDiamond
	case detect.ShapeCircle:
		return StyleCircle
	case detect.ShapeTriangle:
		return StyleTriangle
	default:
		return StyleRectangle
	}
}

// edgeStyle returns the edge style for a detected connector shape. Undirected
// connectors render as plain lines, directed ones carry a classic arrowhead.
func edgeStyle(t detect.ShapeType, directed bool) string {
	if t == detect.ShapeLine || (t == detect.ShapeConnector && !directed) {
		return StyleLine
	}
	return StyleArrow
}
