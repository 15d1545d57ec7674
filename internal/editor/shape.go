package editor

// Shape represents the visual form of the cursor outline.
type Shape uint8

const (
	// ShapeBlock fills the whole cell (like vim normal mode).
	ShapeBlock Shape = iota
	// ShapeVertical is a left-aligned bar (like vim insert mode).
	ShapeVertical
	// ShapeHorizontal is a bottom-aligned bar (like vim replace mode).
	ShapeHorizontal
)

// ShapeFromString converts a string name to a cursor shape.
func ShapeFromString(s string) Shape {
	switch s {
	case "block":
		return ShapeBlock
	case "vertical", "bar", "line":
		return ShapeVertical
	case "horizontal", "underline", "underscore":
		return ShapeHorizontal
	default:
		return ShapeBlock
	}
}

// String returns the string representation of a cursor shape.
func (s Shape) String() string {
	switch s {
	case ShapeBlock:
		return "block"
	case ShapeVertical:
		return "vertical"
	case ShapeHorizontal:
		return "horizontal"
	default:
		return "block"
	}
}
