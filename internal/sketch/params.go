package sketch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// DetectionParams holds every threshold used by the detection engine.
//
// The struct is treated as immutable once validated: it is supplied at engine
// construction, validated there, and never changed afterwards. Invalid values
// are rejected up front so the analysis path never has to re-check them.
type DetectionParams struct {
	// ProximityThreshold is the distance in canvas units by which stroke
	// bounding boxes are expanded when testing whether two strokes belong
	// to the same shape group. Both boxes are expanded, so strokes merge
	// at up to twice this distance; it must stay below ConnectorMargin or
	// connector strokes would group with the shapes they attach to.
	ProximityThreshold float64 `yaml:"proximity_threshold"`

	// MergeWindowMillis merges strokes drawn within this many milliseconds
	// of each other into one group regardless of spatial distance.
	MergeWindowMillis uint64 `yaml:"merge_window_millis"`

	// CornerAngleThreshold is the minimum local turning angle, in degrees,
	// for a polyline vertex to count as a corner.
	CornerAngleThreshold float64 `yaml:"corner_angle_threshold"`

	// CircularityThreshold is the minimum isoperimetric ratio for a closed
	// path to classify as a circle. Ratio, (0, 1].
	CircularityThreshold float64 `yaml:"circularity_threshold"`

	// StraightnessThreshold is the minimum straight-line-to-path-length
	// ratio for an open path to classify as a line. Ratio, (0, 1].
	StraightnessThreshold float64 `yaml:"straightness_threshold"`

	// ClosednessThreshold is the maximum end-gap-to-perimeter ratio for a
	// path to count as closed. Ratio, (0, 1].
	ClosednessThreshold float64 `yaml:"closedness_threshold"`

	// AxisAlignTolerance is the angular tolerance in degrees used to decide
	// whether a quadrilateral's edges are axis-aligned (rectangle) or
	// rotated to roughly 45 degrees (diamond). (0, 45].
	AxisAlignTolerance float64 `yaml:"axis_align_tolerance"`

	// ConnectorMargin is the distance in canvas units by which shape
	// bounding boxes are expanded when matching line endpoints to shapes.
	ConnectorMargin float64 `yaml:"connector_margin"`

	// MinStrokePoints is the minimum number of points for a stroke to take
	// part in detection. Strokes below it are silently dropped. At least 2.
	MinStrokePoints int `yaml:"min_stroke_points"`
}

// DefaultParams returns the parameter set tuned for typical freehand input at
// screen resolution.
func DefaultParams() DetectionParams {
	return DetectionParams{
		ProximityThreshold:    10.0,
		MergeWindowMillis:     600,
		CornerAngleThreshold:  45.0,
		CircularityThreshold:  0.85,
		StraightnessThreshold: 0.95,
		ClosednessThreshold:   0.10,
		AxisAlignTolerance:    20.0,
		ConnectorMargin:       30.0,
		MinStrokePoints:       2,
	}
}

// Validate checks the parameter set and returns a descriptive error for the
// first invalid field. Ratios must lie in (0, 1], distances must be
// non-negative, and angles must be meaningful.
func (p DetectionParams) Validate() error {
	if p.ProximityThreshold < 0 {
		return fmt.Errorf("proximity_threshold must be >= 0, got %g", p.ProximityThreshold)
	}
	if p.CornerAngleThreshold <= 0 || p.CornerAngleThreshold >= 180 {
		return fmt.Errorf("corner_angle_threshold must be in (0, 180) degrees, got %g", p.CornerAngleThreshold)
	}
	if err := validRatio("circularity_threshold", p.CircularityThreshold); err != nil {
		return err
	}
	if err := validRatio("straightness_threshold", p.StraightnessThreshold); err != nil {
		return err
	}
	if err := validRatio("closedness_threshold", p.ClosednessThreshold); err != nil {
		return err
	}
	if p.AxisAlignTolerance <= 0 || p.AxisAlignTolerance > 45 {
		return fmt.Errorf("axis_align_tolerance must be in (0, 45] degrees, got %g", p.AxisAlignTolerance)
	}
	if p.ConnectorMargin < 0 {
		return fmt.Errorf("connector_margin must be >= 0, got %g", p.ConnectorMargin)
	}
	if p.MinStrokePoints < 2 {
		return fmt.Errorf("min_stroke_points must be >= 2, got %d", p.MinStrokePoints)
	}
	return nil
}

func validRatio(name string, v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("%s must be a ratio in (0, 1], got %g", name, v)
	}
	return nil
}

// LoadParamsFile reads a YAML file and merges it onto DefaultParams, so a
// params file only needs to name the thresholds it changes. The merged set is
// validated before being returned.
func LoadParamsFile(path string) (DetectionParams, error) {
	params := DefaultParams()

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("failed to read params file: %w", err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("failed to parse params file %s: %w", path, err)
	}
	if err := params.Validate(); err != nil {
		return params, fmt.Errorf("invalid params in %s: %w", path, err)
	}
	return params, nil
}
