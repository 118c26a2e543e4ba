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

package preprocess_test

import (
	"testing"

	"github.com/jetsetilly/vizcaddy/preprocess"
)

func TestPreprocessingDisabled(t *testing.T) {
	data := []byte{100, 150, 200, 255}
	result := preprocess.Apply(data, 1, 1, preprocess.Profile{})
	for i := range data {
		if result.Data[i] != data[i] {
			t.Fatalf("expected passthrough, got %v", result.Data)
		}
	}
}

func TestContrastIncrease(t *testing.T) {
	data := []byte{100, 128, 200, 255}
	result := preprocess.Apply(data, 1, 1, preprocess.Profile{Enabled: true, Contrast: 2.0})
	want := []byte{72, 128, 255, 255}
	for i := range want {
		if result.Data[i] != want[i] {
			t.Errorf("index %d: got %d want %d", i, result.Data[i], want[i])
		}
	}
}

func TestGrayscale(t *testing.T) {
	data := []byte{255, 0, 0, 255}
	result := preprocess.Apply(data, 1, 1, preprocess.Profile{Enabled: true, Grayscale: true})
	if result.Data[0] != 76 || result.Data[1] != 76 || result.Data[2] != 76 {
		t.Fatalf("unexpected grayscale result: %v", result.Data)
	}
}

func TestInvert(t *testing.T) {
	data := []byte{0, 100, 255, 255}
	result := preprocess.Apply(data, 1, 1, preprocess.Profile{Enabled: true, Invert: true})
	want := []byte{255, 155, 0, 255}
	for i := range want {
		if result.Data[i] != want[i] {
			t.Errorf("index %d: got %d want %d", i, result.Data[i], want[i])
		}
	}
}

func TestUpscale2x(t *testing.T) {
	data := []byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
		255, 255, 0, 255,
	}
	result := preprocess.Apply(data, 2, 2, preprocess.Profile{Enabled: true, Scale: 2})
	if result.Width != 4 || result.Height != 4 {
		t.Fatalf("unexpected dimensions: %dx%d", result.Width, result.Height)
	}
	if len(result.Data) != 4*4*4 {
		t.Fatalf("unexpected data length: %d", len(result.Data))
	}
}

func TestUpscaleNoop(t *testing.T) {
	data := []byte{100, 150, 200, 255}
	result := preprocess.Apply(data, 1, 1, preprocess.Profile{Enabled: true, Scale: 1})
	for i := range data {
		if result.Data[i] != data[i] {
			t.Fatalf("expected noop upscale, got %v", result.Data)
		}
	}
}

func TestSharpenSkipsEdges(t *testing.T) {
	data := make([]byte, 4*4*4)
	for i := range data {
		data[i] = 100
	}
	result := preprocess.Apply(data, 4, 4, preprocess.Profile{Enabled: true, Sharpen: 0.5})
	// corner pixel (edge) must be untouched
	if result.Data[0] != 100 {
		t.Fatalf("expected edge pixel untouched, got %d", result.Data[0])
	}
}
