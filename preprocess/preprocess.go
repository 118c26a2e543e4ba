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

// Package preprocess applies the optional, user-configurable image
// enhancements that run ahead of OCR: upscale, contrast, sharpen, grayscale,
// invert, always in that order.
package preprocess

// Profile holds the preprocessing settings for a zone or the OCR engine as a
// whole. The zero value is the disabled profile (a pure passthrough).
type Profile struct {
	Enabled   bool
	Grayscale bool
	Invert    bool
	Contrast  float32 // 1.0 (or 0) = no change
	Sharpen   float32 // 0.0 = no change
	Scale     int     // integer upscale factor, 1 = no change
}

// Result is the output of Apply: possibly-rescaled RGBA data plus its
// dimensions.
type Result struct {
	Data   []byte
	Width  int
	Height int
}

// Apply runs the fixed-order preprocessing pipeline over RGBA data. When
// profile.Enabled is false, the input is returned unchanged.
func Apply(data []byte, width, height int, profile Profile) Result {
	if !profile.Enabled {
		out := make([]byte, len(data))
		copy(out, data)
		return Result{Data: out, Width: width, Height: height}
	}

	result, newWidth, newHeight := data, width, height
	if profile.Scale > 1 {
		result = upscale(data, width, height, profile.Scale)
		newWidth = width * profile.Scale
		newHeight = height * profile.Scale
	} else {
		out := make([]byte, len(data))
		copy(out, data)
		result = out
	}

	if profile.Contrast > 0 && abs32(profile.Contrast-1.0) > 0.01 {
		applyContrast(result, profile.Contrast)
	}

	if profile.Sharpen > 0.01 {
		result = applySharpen(result, newWidth, newHeight, profile.Sharpen)
	}

	if profile.Grayscale {
		applyGrayscale(result)
	}

	if profile.Invert {
		applyInvert(result)
	}

	return Result{Data: result, Width: newWidth, Height: newHeight}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp255(v float32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// applyContrast adjusts contrast around the 128 midpoint. Alpha is untouched.
func applyContrast(data []byte, factor float32) {
	for i := 0; i+3 < len(data); i += 4 {
		for c := 0; c < 3; c++ {
			val := float32(data[i+c])
			data[i+c] = clamp255((val-128.0)*factor + 128.0)
		}
	}
}

// applyGrayscale converts RGB to luminance gray, keeping RGBA shape. Alpha
// is untouched.
func applyGrayscale(data []byte) {
	for i := 0; i+3 < len(data); i += 4 {
		gray := byte(0.299*float32(data[i]) + 0.587*float32(data[i+1]) + 0.114*float32(data[i+2]))
		data[i] = gray
		data[i+1] = gray
		data[i+2] = gray
	}
}

// applyInvert inverts RGB channels. Alpha is untouched.
func applyInvert(data []byte) {
	for i := 0; i+3 < len(data); i += 4 {
		data[i] = 255 - data[i]
		data[i+1] = 255 - data[i+1]
		data[i+2] = 255 - data[i+2]
	}
}

// applySharpen runs a 3x3 unsharp-mask kernel over RGB, skipping the outer
// edge row/column. centerWeight = 1 + 4*strength, neighbourWeight = -strength.
func applySharpen(data []byte, width, height int, strength float32) []byte {
	result := make([]byte, len(data))
	copy(result, data)

	centerWeight := 1.0 + 4.0*strength
	neighborWeight := -strength

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			idx := (y*width + x) * 4
			for c := 0; c < 3; c++ {
				top := float32(data[((y-1)*width+x)*4+c])
				bottom := float32(data[((y+1)*width+x)*4+c])
				left := float32(data[(y*width+x-1)*4+c])
				right := float32(data[(y*width+x+1)*4+c])
				center := float32(data[idx+c])

				sharpened := center*centerWeight +
					top*neighborWeight +
					bottom*neighborWeight +
					left*neighborWeight +
					right*neighborWeight

				result[idx+c] = clamp255(sharpened)
			}
		}
	}

	return result
}

// upscale performs bilinear upscaling by an integer factor >= 2.
func upscale(data []byte, width, height, scale int) []byte {
	if scale <= 1 {
		out := make([]byte, len(data))
		copy(out, data)
		return out
	}

	newWidth := width * scale
	newHeight := height * scale
	result := make([]byte, newWidth*newHeight*4)

	scaleF := float32(scale)

	for ny := 0; ny < newHeight; ny++ {
		for nx := 0; nx < newWidth; nx++ {
			srcX := float32(nx) / scaleF
			srcY := float32(ny) / scaleF

			x0 := clampInt(int(srcX), 0, width-1)
			y0 := clampInt(int(srcY), 0, height-1)
			x1 := clampInt(x0+1, 0, width-1)
			y1 := clampInt(y0+1, 0, height-1)

			xWeight := srcX - float32(int(srcX))
			yWeight := srcY - float32(int(srcY))

			dstIdx := (ny*newWidth + nx) * 4

			for c := 0; c < 4; c++ {
				p00 := float32(data[(y0*width+x0)*4+c])
				p10 := float32(data[(y0*width+x1)*4+c])
				p01 := float32(data[(y1*width+x0)*4+c])
				p11 := float32(data[(y1*width+x1)*4+c])

				top := p00*(1-xWeight) + p10*xWeight
				bottom := p01*(1-xWeight) + p11*xWeight

				value := top*(1-yWeight) + bottom*yWeight

				result[dstIdx+c] = clamp255(value)
			}
		}
	}

	return result
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
