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

// Detection is a located text region, expressed as a quadrilateral (so
// rotated text boxes can be represented) plus a detector confidence.
type Detection struct {
	Polygon    [4][2]float32
	Confidence float32
}

// thresholdMap converts a probability map to a binary mask.
func thresholdMap(prob []float32, threshold float32) []bool {
	mask := make([]bool, len(prob))
	for i, v := range prob {
		mask[i] = v >= threshold
	}
	return mask
}

// findTextBoxes labels 4-connected components in the binary mask and
// returns one axis-aligned quadrilateral per component, along with the mean
// probability under that component used as its confidence.
func findTextBoxes(mask []bool, prob []float32, width, height int) []Detection {
	visited := make([]bool, len(mask))
	var boxes []Detection

	var stack []int
	for start := 0; start < len(mask); start++ {
		if !mask[start] || visited[start] {
			continue
		}

		stack = stack[:0]
		stack = append(stack, start)
		visited[start] = true

		minX, minY := width, height
		maxX, maxY := -1, -1
		var sum float32
		var count int

		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			x := idx % width
			y := idx / width

			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
			sum += prob[idx]
			count++

			type coord struct{ x, y int }
			candidates := [4]coord{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
			for _, c := range candidates {
				if c.x < 0 || c.x >= width || c.y < 0 || c.y >= height {
					continue
				}
				n := c.y*width + c.x
				if visited[n] || !mask[n] {
					continue
				}
				visited[n] = true
				stack = append(stack, n)
			}
		}

		if count == 0 {
			continue
		}
		if (maxX-minX) < 4 || (maxY-minY) < 4 {
			continue
		}

		boxes = append(boxes, Detection{
			Polygon: [4][2]float32{
				{float32(minX), float32(minY)},
				{float32(maxX + 1), float32(minY)},
				{float32(maxX + 1), float32(maxY + 1)},
				{float32(minX), float32(maxY + 1)},
			},
			Confidence: sum / float32(count),
		})
	}

	return boxes
}

// scaleDetections maps detection polygons from the padded/resized detection
// input space back to original image coordinates and clamps to bounds.
func scaleDetections(boxes []Detection, scale float32, origW, origH int) []Detection {
	out := make([]Detection, len(boxes))
	for i, b := range boxes {
		var scaled [4][2]float32
		for j, p := range b.Polygon {
			x := clampf(p[0]/scale, 0, float32(origW-1))
			y := clampf(p[1]/scale, 0, float32(origH-1))
			scaled[j] = [2]float32{x, y}
		}
		out[i] = Detection{Polygon: scaled, Confidence: b.Confidence}
	}
	return out
}
