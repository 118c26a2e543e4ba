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

// modelConfig holds the fixed geometry and normalization constants the
// detection/recognition models were trained with. This is distinct from the
// preprocess package's user-facing enhancement filters: this step prepares
// tensors for the model, not pixels for a human or a generic OCR backend.
type modelConfig struct {
	detTargetSize  int
	recTargetH     int
	recMaxWidth    int
	mean           [3]float32
	std            [3]float32
}

func defaultModelConfig() modelConfig {
	return modelConfig{
		detTargetSize: 960,
		recTargetH:    48,
		recMaxWidth:   640,
		mean:          [3]float32{0.5, 0.5, 0.5},
		std:           [3]float32{0.5, 0.5, 0.5},
	}
}

// nchwTensor is an NCHW float32 tensor plus its logical size.
type nchwTensor struct {
	data          []float32
	channels      int
	height, width int
}

func normalizeRGBToNCHW(rgba []byte, width, height int, mean, std [3]float32) nchwTensor {
	channels := 3
	plane := width * height
	out := make([]float32, channels*plane)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			srcIdx := (y*width + x) * 4
			for c := 0; c < channels; c++ {
				v := float32(rgba[srcIdx+c]) / 255.0
				out[c*plane+y*width+x] = (v - mean[c]) / std[c]
			}
		}
	}

	return nchwTensor{data: out, channels: channels, height: height, width: width}
}

func nextMultiple(v, of int) int {
	return ((v + of - 1) / of) * of
}

// resizeForDetection scales so the longer side becomes cfg.detTargetSize,
// then pads width/height up to the next multiple of 32, matching the
// reference implementation.
func resizeForDetection(rgba []byte, width, height int, cfg modelConfig) (nchwTensor, float32) {
	longSide := width
	if height > longSide {
		longSide = height
	}
	scale := float32(cfg.detTargetSize) / float32(longSide)

	newW := int(float32(width) * scale)
	newH := int(float32(height) * scale)

	padW := nextMultiple(newW, 32)
	padH := nextMultiple(newH, 32)

	resized := bilinearResizeRGBA(rgba, width, height, newW, newH)
	padded := padRGBA(resized, newW, newH, padW, padH)

	return normalizeRGBToNCHW(padded, padW, padH, cfg.mean, cfg.std), scale
}

// resizeForRecognition scales to a fixed target height, capping width at
// cfg.recMaxWidth.
func resizeForRecognition(rgba []byte, width, height int, cfg modelConfig) nchwTensor {
	scale := float32(cfg.recTargetH) / float32(height)
	newW := int(float32(width) * scale)
	if newW > cfg.recMaxWidth {
		newW = cfg.recMaxWidth
	}
	if newW < 1 {
		newW = 1
	}

	resized := bilinearResizeRGBA(rgba, width, height, newW, cfg.recTargetH)
	return normalizeRGBToNCHW(resized, newW, cfg.recTargetH, cfg.mean, cfg.std)
}

func bilinearResizeRGBA(data []byte, width, height, newWidth, newHeight int) []byte {
	if newWidth == width && newHeight == height {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}

	out := make([]byte, newWidth*newHeight*4)
	scaleX := float32(width) / float32(newWidth)
	scaleY := float32(height) / float32(newHeight)

	for ny := 0; ny < newHeight; ny++ {
		srcY := float32(ny) * scaleY
		y0 := clampi(int(srcY), 0, height-1)
		y1 := clampi(y0+1, 0, height-1)
		wy := srcY - float32(int(srcY))

		for nx := 0; nx < newWidth; nx++ {
			srcX := float32(nx) * scaleX
			x0 := clampi(int(srcX), 0, width-1)
			x1 := clampi(x0+1, 0, width-1)
			wx := srcX - float32(int(srcX))

			for c := 0; c < 4; c++ {
				p00 := float32(data[(y0*width+x0)*4+c])
				p10 := float32(data[(y0*width+x1)*4+c])
				p01 := float32(data[(y1*width+x0)*4+c])
				p11 := float32(data[(y1*width+x1)*4+c])

				top := p00*(1-wx) + p10*wx
				bottom := p01*(1-wx) + p11*wx
				v := top*(1-wy) + bottom*wy

				out[(ny*newWidth+nx)*4+c] = byte(clampf(v, 0, 255))
			}
		}
	}

	return out
}

func padRGBA(data []byte, width, height, padWidth, padHeight int) []byte {
	if padWidth == width && padHeight == height {
		return data
	}
	out := make([]byte, padWidth*padHeight*4)
	for y := 0; y < height; y++ {
		copy(out[y*padWidth*4:y*padWidth*4+width*4], data[y*width*4:(y+1)*width*4])
	}
	return out
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cropPolygon extracts the bounding box of four (x,y) points, clamped to the
// image, returning ok=false for a zero-area crop.
func cropPolygon(rgba []byte, width, height int, points [4][2]float32) ([]byte, int, int, bool) {
	minX, minY := points[0][0], points[0][1]
	maxX, maxY := points[0][0], points[0][1]
	for _, p := range points[1:] {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}

	x0 := clampi(int(minX), 0, width)
	y0 := clampi(int(minY), 0, height)
	x1 := clampi(int(maxX), 0, width)
	y1 := clampi(int(maxY), 0, height)

	cropW := x1 - x0
	cropH := y1 - y0
	if cropW <= 0 || cropH <= 0 {
		return nil, 0, 0, false
	}

	out := make([]byte, cropW*cropH*4)
	for y := 0; y < cropH; y++ {
		srcStart := ((y0+y)*width + x0) * 4
		copy(out[y*cropW*4:(y+1)*cropW*4], rgba[srcStart:srcStart+cropW*4])
	}

	return out, cropW, cropH, true
}
