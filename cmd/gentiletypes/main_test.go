package main

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		o     [4]int
		class string
		rot   int
		ok    bool
	}{
		{[4]int{0, 0, 0, 0}, "ShapeFlat", 0, true},
		{[4]int{0, 0, 1, 0}, "ShapeCornerUp", 2, true},
		{[4]int{1, 0, 0, 1}, "ShapeSlope", 3, true},
		{[4]int{0, 1, 1, 0}, "ShapeSlope", 1, true},
		{[4]int{1, 1, 1, 0}, "ShapeCornerDown", 3, true},
		{[4]int{0, 1, 0, 1}, "ShapeFurrow", 1, true},
		{[4]int{1, 2, 1, 0}, "ShapeTwoHeight", 1, true},
		{[4]int{1, 1, 1, 1}, "", 0, false},
		{[4]int{2, 0, 0, 0}, "", 0, false},
	}
	for _, tt := range tests {
		class, rot, ok := classify(tt.o)
		if class != tt.class || rot != tt.rot || ok != tt.ok {
			t.Errorf("classify(%v) = %s, %d, %v; want %s, %d, %v", tt.o, class, rot, ok, tt.class, tt.rot, tt.ok)
		}
	}
}

func TestGenerate(t *testing.T) {
	src, err := generate()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	out := string(src)
	if n := strings.Count(out, "{Class:"); n != 19 {
		t.Errorf("expected 19 table entries, got %d", n)
	}
	if !strings.Contains(out, "64: {Class: ShapeTwoHeight, Rotation: 0},") || !strings.Contains(out, "// 2101") {
		t.Error("missing entry for 2101")
	}
	if !strings.HasPrefix(out, "// Code generated by gentiletypes. DO NOT EDIT.") {
		t.Error("missing generated-code header")
	}
}
