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

package template_test

import (
	"testing"

	"github.com/jetsetilly/vizcaddy/template"
)

func TestTemplateCreation(t *testing.T) {
	tmpl := template.Template{
		ID:        "button",
		Grayscale: make([]byte, 8*8),
		Width:     8,
		Height:    8,
		Threshold: 0.9,
	}
	if tmpl.ID != "button" || tmpl.Width != 8 || tmpl.Height != 8 {
		t.Fatal("unexpected template fields")
	}
}

func TestMatcherCreation(t *testing.T) {
	m := template.NewMatcher(template.DefaultConfig())
	if _, ok := m.GetTemplate("missing"); ok {
		t.Fatal("expected no templates registered")
	}

	m.AddTemplate(template.Template{ID: "a", Grayscale: make([]byte, 4), Width: 2, Height: 2})
	if _, ok := m.GetTemplate("a"); !ok {
		t.Fatal("expected template 'a' to be registered")
	}

	m.RemoveTemplate("a")
	if _, ok := m.GetTemplate("a"); ok {
		t.Fatal("expected template 'a' to be removed")
	}
}

func TestNCCPerfectMatch(t *testing.T) {
	// 4x4 source containing an exact 2x2 copy of the template at (1,1)
	src := []byte{
		10, 10, 10, 10,
		10, 200, 50, 10,
		10, 80, 220, 10,
		10, 10, 10, 10,
	}
	tmplData := []byte{
		200, 50,
		80, 220,
	}

	m := template.NewMatcher(template.Config{
		DefaultThreshold:      0.5,
		MaxMatchesPerTemplate: 10,
		MinMatchDistance:      1,
		EnableCache:           false,
	})
	m.AddTemplate(template.Template{ID: "t", Grayscale: tmplData, Width: 2, Height: 2, Threshold: 0.9})

	matches := m.FindMatches(src, 4, 4)
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}

	best := matches[0]
	if best.X != 1 || best.Y != 1 {
		t.Fatalf("unexpected match position: (%d,%d)", best.X, best.Y)
	}
	if best.Confidence < 0.99 {
		t.Fatalf("expected near-perfect confidence, got %f", best.Confidence)
	}
}

func TestMaskExcludesPixelsFromMatch(t *testing.T) {
	// Same layout as TestNCCPerfectMatch, but the template's bottom-right
	// pixel disagrees with the source (130 against 220). Without a mask no
	// window reaches 0.9 (the best is about 0.86); with that corner masked
	// out it should match cleanly.
	src := []byte{
		10, 10, 10, 10,
		10, 200, 50, 10,
		10, 80, 220, 10,
		10, 10, 10, 10,
	}
	tmplData := []byte{
		200, 50,
		80, 130,
	}
	mask := []byte{
		255, 255,
		255, 0,
	}

	unmasked := template.NewMatcher(template.Config{
		DefaultThreshold:      0.9,
		MaxMatchesPerTemplate: 10,
		MinMatchDistance:      1,
		EnableCache:           false,
	})
	unmasked.AddTemplate(template.Template{ID: "t", Grayscale: tmplData, Width: 2, Height: 2, Threshold: 0.9})
	if matches := unmasked.FindMatches(src, 4, 4); len(matches) != 0 {
		t.Fatalf("expected the corrupted corner to prevent an unmasked match, got %+v", matches)
	}

	masked := template.NewMatcher(template.Config{
		DefaultThreshold:      0.9,
		MaxMatchesPerTemplate: 10,
		MinMatchDistance:      1,
		EnableCache:           false,
	})
	tmpl, err := template.Template{ID: "t", Grayscale: tmplData, Width: 2, Height: 2, Threshold: 0.9}.WithMask(mask)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	masked.AddTemplate(tmpl)

	matches := masked.FindMatches(src, 4, 4)
	if len(matches) == 0 {
		t.Fatal("expected the masked corner to be ignored and produce a match")
	}
	if matches[0].X != 1 || matches[0].Y != 1 {
		t.Fatalf("unexpected match position: (%d,%d)", matches[0].X, matches[0].Y)
	}
}
