// This file is part of Vizcaddy.
//
// Vizcaddy is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Vizcaddy is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Vizcaddy.  If not, see <https://www.gnu.org/licenses/>.

package ocr

import "testing"

func TestNextMultiple(t *testing.T) {
	cases := []struct{ v, of, want int }{
		{1, 32, 32},
		{32, 32, 32},
		{33, 32, 64},
		{960, 32, 960},
	}
	for _, c := range cases {
		if got := nextMultiple(c.v, c.of); got != c.want {
			t.Errorf("nextMultiple(%d,%d) = %d, want %d", c.v, c.of, got, c.want)
		}
	}
}

func TestResizeForDetectionPadsToMultipleOf32(t *testing.T) {
	cfg := defaultModelConfig()
	width, height := 100, 50
	data := make([]byte, width*height*4)
	for i := range data {
		data[i] = 128
	}

	tensor, scale := resizeForDetection(data, width, height, cfg)

	if tensor.width%32 != 0 || tensor.height%32 != 0 {
		t.Fatalf("expected padded dims to be multiples of 32, got %dx%d", tensor.width, tensor.height)
	}
	if scale <= 0 {
		t.Fatalf("expected positive scale, got %f", scale)
	}
}

func TestCropPolygonZeroArea(t *testing.T) {
	data := make([]byte, 10*10*4)
	points := [4][2]float32{{5, 5}, {5, 5}, {5, 5}, {5, 5}}
	_, _, _, ok := cropPolygon(data, 10, 10, points)
	if ok {
		t.Fatal("expected zero-area crop to fail")
	}
}

func TestCropPolygonValid(t *testing.T) {
	data := make([]byte, 10*10*4)
	points := [4][2]float32{{1, 1}, {4, 1}, {4, 3}, {1, 3}}
	crop, w, h, ok := cropPolygon(data, 10, 10, points)
	if !ok {
		t.Fatal("expected a valid crop")
	}
	if w != 3 || h != 2 {
		t.Fatalf("unexpected crop dims: %dx%d", w, h)
	}
	if len(crop) != w*h*4 {
		t.Fatalf("unexpected crop data length: %d", len(crop))
	}
}

func TestFindTextBoxesSingleComponent(t *testing.T) {
	width, height := 7, 7
	mask := make([]bool, width*height)
	prob := make([]float32, width*height)
	// light up a 5x5 block: an extent of 4 in each direction, the smallest
	// that findTextBoxes keeps
	for y := 1; y <= 5; y++ {
		for x := 1; x <= 5; x++ {
			idx := y*width + x
			mask[idx] = true
			prob[idx] = 0.9
		}
	}

	boxes := findTextBoxes(mask, prob, width, height)
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(boxes))
	}
	b := boxes[0]
	if b.Polygon[0][0] != 1 || b.Polygon[0][1] != 1 {
		t.Fatalf("unexpected top-left corner: %v", b.Polygon[0])
	}
	if b.Polygon[2][0] != 6 || b.Polygon[2][1] != 6 {
		t.Fatalf("unexpected bottom-right corner: %v", b.Polygon[2])
	}
}
