// gentiletypes writes the shape lookup table for internal/terrain.
//
// Every packed key (four trinary corner offsets) is classified once here so
// the renderer and hit-testing code index a constant array instead of
// building string keys at run time.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
)

func main() {
	out := flag.String("o", "shape_table.go", "Output file")
	flag.Parse()

	src, err := generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, src, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
}

func generate() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by gentiletypes. DO NOT EDIT.\n\n")
	buf.WriteString("package terrain\n\n")
	buf.WriteString("var shapeTable = [NumShapeKeys]Shape{\n")
	for k := 0; k < 81; k++ {
		o := [4]int{k / 27 % 3, k / 9 % 3, k / 3 % 3, k % 3}
		class, rot, ok := classify(o)
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, "%d: {Class: %s, Rotation: %d}, // %d%d%d%d\n", k, class, rot, o[0], o[1], o[2], o[3])
	}
	buf.WriteString("}\n")
	return format.Source(buf.Bytes())
}

func classify(o [4]int) (string, int, bool) {
	zero := false
	for i := range o {
		if d := o[i] - o[(i+1)%4]; d > 1 || d < -1 {
			return "", 0, false
		}
		zero = zero || o[i] == 0
	}
	if !zero {
		return "", 0, false
	}

	var ones []int
	for i, v := range o {
		switch v {
		case 2:
			return "ShapeTwoHeight", i, true
		case 1:
			ones = append(ones, i)
		}
	}

	switch len(ones) {
	case 0:
		return "ShapeFlat", 0, true
	case 1:
		return "ShapeCornerUp", ones[0], true
	case 3:
		for i, v := range o {
			if v == 0 {
				return "ShapeCornerDown", i, true
			}
		}
	}
	a, b := ones[0], ones[1]
	switch {
	case b-a == 2:
		return "ShapeFurrow", a, true
	case a == 0 && b == 3:
		return "ShapeSlope", 3, true
	default:
		return "ShapeSlope", a, true
	}
}
