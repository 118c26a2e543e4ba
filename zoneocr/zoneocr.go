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

// Package zoneocr runs OCR over the named rectangular regions of a profile
// (OcrZones) and collapses each zone's hits into a single textual value
// according to its declared content type.
package zoneocr

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/jetsetilly/vizcaddy/frame"
	"github.com/jetsetilly/vizcaddy/preprocess"
)

// ContentType drives how a zone's recognized text is collapsed to a single
// value.
type ContentType int

const (
	Text ContentType = iota
	Number
	Percentage
	Time
)

// NormalizedBounds expresses a rectangle as fractions of frame size, each in
// [0,1].
type NormalizedBounds struct {
	X, Y, W, H float32
}

// Zone is one monitored region of a profile.
type Zone struct {
	ID          string
	Name        string
	Bounds      NormalizedBounds
	ContentType ContentType
	Enabled     bool
	Override    *preprocess.Profile // nil means "use the engine-wide profile"
}

// Value is the published per-zone result.
type Value struct {
	ZoneID      string
	Text        string
	LastUpdated time.Time
}

// TextHit is one recognized text fragment, as returned by an OCR backend.
type TextHit struct {
	Text       string
	Confidence float32
}

// Backend abstracts over the model-based and platform OCR engines: both
// reduce to "give me the text hits in this image".
type Backend interface {
	Recognize(rgba []byte, width, height int) ([]TextHit, error)
}

// Run evaluates every enabled zone against the frame, in zone-id order, and
// returns one Value per zone (errors on an individual zone are treated as an
// empty result for that zone rather than aborting the whole pass, matching
// the "never block other zones" intent of the reference procedure; ordering
// is preserved by zone id regardless of dispatch strategy).
func Run(f *frame.Frame, zones []Zone, engineProfile preprocess.Profile, backend Backend) []Value {
	enabled := make([]Zone, 0, len(zones))
	for _, z := range zones {
		if z.Enabled {
			enabled = append(enabled, z)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool { return enabled[i].ID < enabled[j].ID })

	now := time.Now()
	values := make([]Value, 0, len(enabled))
	for _, z := range enabled {
		values = append(values, Value{
			ZoneID:      z.ID,
			Text:        runZone(f, z, engineProfile, backend),
			LastUpdated: now,
		})
	}
	return values
}

func runZone(f *frame.Frame, z Zone, engineProfile preprocess.Profile, backend Backend) string {
	px, py, pw, ph := pixelRect(z.Bounds, f.Width, f.Height)
	if pw <= 0 || ph <= 0 {
		return ""
	}

	sub, ok := f.ExtractRegion(px, py, pw, ph)
	if !ok {
		return ""
	}

	profile := engineProfile
	if z.Override != nil {
		profile = *z.Override
	}

	result := preprocess.Apply(sub.Data, sub.Width, sub.Height, profile)

	hits, err := backend.Recognize(result.Data, result.Width, result.Height)
	if err != nil || len(hits) == 0 {
		return ""
	}

	return collapse(hits, z.ContentType)
}

// pixelRect converts normalized bounds to a clamped pixel rectangle.
func pixelRect(b NormalizedBounds, frameW, frameH int) (x, y, w, h int) {
	x = clampInt(int(b.X*float32(frameW)), 0, frameW)
	y = clampInt(int(b.Y*float32(frameH)), 0, frameH)
	w = clampInt(int(b.W*float32(frameW)), 0, frameW-x)
	h = clampInt(int(b.H*float32(frameH)), 0, frameH-y)
	return x, y, w, h
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func collapse(hits []TextHit, ct ContentType) string {
	var words []string
	for _, h := range hits {
		words = append(words, h.Text)
	}
	joined := strings.Join(words, " ")

	switch ct {
	case Number, Percentage, Time:
		return filterChars(joined, ct)
	default:
		return strings.TrimSpace(joined)
	}
}

// filterChars strips characters that don't belong to the content type,
// keeping order. Number keeps digits, '-', '.'; Percentage additionally
// keeps '%'; Time additionally keeps ':'.
func filterChars(s string, ct ContentType) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			sb.WriteRune(r)
		case r == '-' || r == '.':
			sb.WriteRune(r)
		case ct == Percentage && r == '%':
			sb.WriteRune(r)
		case ct == Time && r == ':':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
