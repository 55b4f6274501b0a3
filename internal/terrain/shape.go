package terrain

//go:generate go run ../../cmd/gentiletypes -o shape_table.go

// ShapeKey packs four corner offsets as trinary digits: left*27 + bottom*9 +
// right*3 + top. Every at-rest tile maps to one of the 81 keys.
type ShapeKey uint8

// NumShapeKeys is the size of the shape key space.
const NumShapeKeys = 81

// KeyOf packs offsets into a ShapeKey. Offsets outside [0,2] are clamped.
func KeyOf(offsets [4]int) ShapeKey {
	var k int
	for _, o := range offsets {
		k = k*3 + min(max(o, 0), 2)
	}
	return ShapeKey(k)
}

// Offsets unpacks the key.
func (k ShapeKey) Offsets() [4]int {
	var o [4]int
	n := int(k)
	for i := 3; i >= 0; i-- {
		o[i] = n % 3
		n /= 3
	}
	return o
}

// String returns the four-digit name used by the tile texture sheet, e.g. "2101".
func (k ShapeKey) String() string {
	o := k.Offsets()
	return string([]byte{byte('0' + o[0]), byte('0' + o[1]), byte('0' + o[2]), byte('0' + o[3])})
}

// Shape returns the classification of the key.
func (k ShapeKey) Shape() Shape {
	if int(k) >= NumShapeKeys {
		return Shape{Class: ShapeInvalid}
	}
	return shapeTable[k]
}

// ShapeClass groups tile shapes that share a texture row.
type ShapeClass uint8

const (
	ShapeInvalid ShapeClass = iota
	ShapeFlat
	ShapeCornerUp   // one raised corner
	ShapeSlope      // one raised edge
	ShapeCornerDown // one lowered corner
	ShapeTwoHeight  // one corner two levels up
	ShapeFurrow     // two opposite raised corners
)

func (c ShapeClass) String() string {
	switch c {
	case ShapeFlat:
		return "Flat"
	case ShapeCornerUp:
		return "CornerUp"
	case ShapeSlope:
		return "Slope"
	case ShapeCornerDown:
		return "CornerDown"
	case ShapeTwoHeight:
		return "TwoHeight"
	case ShapeFurrow:
		return "Furrow"
	default:
		return "Invalid"
	}
}

// Shape is a class plus the corner (or edge, for slopes) it is anchored at.
// For ShapeCornerDown the rotation names the lowered corner.
type Shape struct {
	Class    ShapeClass
	Rotation uint8
}
