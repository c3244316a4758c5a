package pagectx

// Rect is an element bounding box in page coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size is the viewport size in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Quadrant names used in element placement.
const (
	TopLeft     = "top-left"
	TopRight    = "top-right"
	BottomLeft  = "bottom-left"
	BottomRight = "bottom-right"
)

// Quadrant classifies an element into one of four screen quadrants by
// comparing its bounding-box center against half the viewport. The
// function is deterministic and stateless: same geometry, same answer.
func Quadrant(box Rect, viewport Size) string {
	centerX := box.X + box.Width/2
	centerY := box.Y + box.Height/2

	left := centerX < viewport.Width/2
	top := centerY < viewport.Height/2

	switch {
	case top && left:
		return TopLeft
	case top:
		return TopRight
	case left:
		return BottomLeft
	default:
		return BottomRight
	}
}
