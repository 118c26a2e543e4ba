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

// Package frame defines the captured-frame type shared between the capture
// adapter, the preprocessor, the template matcher and the OCR engine.
package frame

import (
	"image"
	"time"
)

// Frame is a single captured image, always stored as tightly packed RGBA.
type Frame struct {
	Data      []byte
	Width     int
	Height    int
	Timestamp time.Time
}

// New creates a Frame from RGBA data as-is.
func New(data []byte, width, height int) *Frame {
	return &Frame{Data: data, Width: width, Height: height, Timestamp: time.Now()}
}

// NewBGRA creates a Frame from BGRA data (the native format of most screen
// capture APIs), swapping the blue and red channels of every pixel so the
// stored data is RGBA.
func NewBGRA(data []byte, width, height int) *Frame {
	for i := 0; i+3 < len(data); i += 4 {
		data[i], data[i+2] = data[i+2], data[i]
	}
	return &Frame{Data: data, Width: width, Height: height, Timestamp: time.Now()}
}

// Dimensions returns (width, height).
func (f *Frame) Dimensions() (int, int) {
	return f.Width, f.Height
}

// PixelCount returns the total number of pixels in the frame.
func (f *Frame) PixelCount() int {
	return f.Width * f.Height
}

// Stride returns the number of bytes per row.
func (f *Frame) Stride() int {
	return f.Width * 4
}

// ExtractRegion returns a new Frame holding the sub-rectangle (x,y,w,h). It
// returns false if the region falls outside the frame's bounds.
func (f *Frame) ExtractRegion(x, y, w, h int) (*Frame, bool) {
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > f.Width || y+h > f.Height {
		return nil, false
	}

	stride := f.Stride()
	region := make([]byte, 0, w*h*4)
	for row := 0; row < h; row++ {
		srcStart := (y+row)*stride + x*4
		srcEnd := srcStart + w*4
		region = append(region, f.Data[srcStart:srcEnd]...)
	}

	return &Frame{Data: region, Width: w, Height: h, Timestamp: f.Timestamp}, true
}

// ToRGBAImage builds a standard library image.RGBA view over the frame's
// data. It returns nil if the data length does not match the dimensions.
func (f *Frame) ToRGBAImage() *image.RGBA {
	if len(f.Data) != f.Width*f.Height*4 {
		return nil
	}
	return &image.RGBA{
		Pix:    f.Data,
		Stride: f.Stride(),
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// ToGrayscale returns one luminance byte per pixel using the standard
// 0.299/0.587/0.114 weighting, truncated (not rounded) to match how the
// reference implementation computes it.
func (f *Frame) ToGrayscale() []byte {
	gray := make([]byte, f.PixelCount())
	for i := 0; i+3 < len(f.Data); i += 4 {
		r := float32(f.Data[i])
		g := float32(f.Data[i+1])
		b := float32(f.Data[i+2])
		gray[i/4] = byte(0.299*r + 0.587*g + 0.114*b)
	}
	return gray
}

// Age returns how long ago the frame was captured.
func (f *Frame) Age() time.Duration {
	return time.Since(f.Timestamp)
}
