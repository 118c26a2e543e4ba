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

// Package template implements zero-mean normalized cross-correlation
// template matching with optional multi-scale search, non-maximum
// suppression, and a bounded TTL result cache.
package template

import (
	"crypto/sha1"
	"encoding/binary"
	"image"
	"math"
	"sort"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/draw"

	vizerrors "github.com/jetsetilly/vizcaddy/errors"
)

// cacheSize bounds the number of distinct source-image fingerprints the
// result cache holds, independent of the TTL that governs entry freshness.
const cacheSize = 64

// Template is a named grayscale reference image to search for.
type Template struct {
	ID         string
	Grayscale  []byte // single channel, Width*Height bytes
	Width      int
	Height     int
	Threshold  float32
	Mask       []byte // optional, same dims as Grayscale; nil means no mask
	Scales     []float32
}

// WithScales returns a copy of the template carrying the given per-template
// multi-scale search list.
func (t Template) WithScales(scales []float32) Template {
	t.Scales = scales
	return t
}

// WithMask returns a copy of the template carrying a validity mask. The
// mask must share the template's dimensions.
func (t Template) WithMask(mask []byte) (Template, error) {
	if len(mask) != len(t.Grayscale) {
		return t, vizerrors.Errorf(vizerrors.TemplateMaskMismatch, t.Width, t.Height, t.Width, t.Height)
	}
	t.Mask = mask
	return t, nil
}

// Match is a single located occurrence of a template.
type Match struct {
	TemplateID string
	X, Y       int
	Width      int
	Height     int
	Confidence float32
	Scale      float32
}

// Center returns the match's midpoint.
func (m Match) Center() (int, int) {
	return m.X + m.Width/2, m.Y + m.Height/2
}

// Bounds returns the match's rectangle.
func (m Match) Bounds() image.Rectangle {
	return image.Rect(m.X, m.Y, m.X+m.Width, m.Y+m.Height)
}

// Config controls matcher-wide defaults.
type Config struct {
	DefaultThreshold   float32
	MultiScale         bool
	Scales             []float32
	MaxMatchesPerTemplate int
	MinMatchDistance   int
	EnableCache        bool
	CacheTTL           time.Duration
}

// DefaultConfig mirrors the reference implementation's defaults.
func DefaultConfig() Config {
	return Config{
		DefaultThreshold:      0.8,
		MultiScale:            false,
		Scales:                []float32{0.8, 0.9, 1.0, 1.1, 1.2},
		MaxMatchesPerTemplate: 10,
		MinMatchDistance:      10,
		EnableCache:           true,
		CacheTTL:              100 * time.Millisecond,
	}
}

type cachedResult struct {
	matches   []Match
	timestamp time.Time
}

// Matcher holds a library of templates and performs searches against
// grayscale source images.
type Matcher struct {
	templates map[string]Template
	config    Config
	cache     *lru.Cache[uint64, cachedResult]
}

// NewMatcher creates a Matcher with the given configuration.
func NewMatcher(config Config) *Matcher {
	cache, _ := lru.New[uint64, cachedResult](cacheSize)
	return &Matcher{
		templates: make(map[string]Template),
		config:    config,
		cache:     cache,
	}
}

// AddTemplate registers or replaces a template.
func (m *Matcher) AddTemplate(t Template) {
	m.templates[t.ID] = t
}

// RemoveTemplate removes a template by id.
func (m *Matcher) RemoveTemplate(id string) {
	delete(m.templates, id)
}

// GetTemplate returns a template by id.
func (m *Matcher) GetTemplate(id string) (Template, bool) {
	t, ok := m.templates[id]
	return t, ok
}

// ClearTemplates removes every registered template.
func (m *Matcher) ClearTemplates() {
	m.templates = make(map[string]Template)
}

// ClearCache empties the result cache independently of the template set.
func (m *Matcher) ClearCache() {
	m.cache.Purge()
}

// computeCacheKey hashes a sparse sample of the image (every
// max(len/1000,1) bytes) together with the template set size, matching the
// reference implementation's sampling strategy.
func computeCacheKey(data []byte, templateCount int) uint64 {
	h := sha1.New()
	step := len(data) / 1000
	if step < 1 {
		step = 1
	}
	var idxBuf [8]byte
	for i := 0; i < len(data); i += step {
		binary.LittleEndian.PutUint64(idxBuf[:], uint64(i))
		h.Write(idxBuf[:])
		h.Write([]byte{data[i]})
	}
	binary.LittleEndian.PutUint64(idxBuf[:], uint64(templateCount))
	h.Write(idxBuf[:])

	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum[:8])
}

// FindMatches searches every registered template in grayscale source data of
// the given dimensions and returns all matches surviving non-maximum
// suppression, across all templates.
func (m *Matcher) FindMatches(data []byte, width, height int) []Match {
	if m.config.EnableCache {
		key := computeCacheKey(data, len(m.templates))
		if cached, ok := m.cache.Get(key); ok {
			if time.Since(cached.timestamp) < m.config.CacheTTL {
				return cached.matches
			}
		}
	}

	var all []Match
	for _, t := range m.templates {
		matches := m.matchTemplate(t, data, width, height)
		all = append(all, matches...)
	}

	result := nonMaxSuppression(all, m.config.MinMatchDistance)

	if m.config.EnableCache {
		key := computeCacheKey(data, len(m.templates))
		m.cache.Add(key, cachedResult{matches: result, timestamp: time.Now()})
	}

	return result
}

func (m *Matcher) matchTemplate(t Template, data []byte, width, height int) []Match {
	threshold := t.Threshold
	if m.config.DefaultThreshold > threshold {
		threshold = m.config.DefaultThreshold
	}

	var matches []Match

	scales := []float32{1.0}
	if m.config.MultiScale {
		if len(t.Scales) > 0 {
			scales = t.Scales
		} else {
			scales = m.config.Scales
		}
	}

	for _, scale := range scales {
		found := m.matchTemplateAtScale(t, data, width, height, scale, threshold)
		matches = append(matches, found...)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	if len(matches) > m.config.MaxMatchesPerTemplate {
		matches = matches[:m.config.MaxMatchesPerTemplate]
	}

	return matches
}

func (m *Matcher) matchTemplateAtScale(t Template, data []byte, width, height int, scale, threshold float32) []Match {
	tmplGray, tmplW, tmplH := t.Grayscale, t.Width, t.Height

	if scale != 1.0 {
		newW := int(float32(t.Width) * scale)
		newH := int(float32(t.Height) * scale)
		if newW < 4 || newH < 4 {
			return nil
		}
		if newW > width || newH > height {
			return nil
		}
		tmplGray = rescaleGray(t.Grayscale, t.Width, t.Height, newW, newH)
		tmplW, tmplH = newW, newH
	}

	if tmplW > width || tmplH > height {
		return nil
	}

	mask := t.Mask
	if scale != 1.0 && mask != nil {
		mask = rescaleGray(mask, t.Width, t.Height, tmplW, tmplH)
	}

	var matches []Match
	for y := 0; y <= height-tmplH; y++ {
		for x := 0; x <= width-tmplW; x++ {
			confidence := normalizedCrossCorrelation(data, width, x, y, tmplGray, tmplW, tmplH, mask)
			if confidence >= threshold {
				matches = append(matches, Match{
					TemplateID: t.ID,
					X:          x,
					Y:          y,
					Width:      tmplW,
					Height:     tmplH,
					Confidence: confidence,
					Scale:      scale,
				})
			}
		}
	}

	return matches
}

// normalizedCrossCorrelation computes zero-mean NCC between a tmplW x tmplH
// grayscale template and the window of the source image starting at (x,y).
// When mask is non-nil, pixels whose mask byte is below 128 are excluded
// from every sum, matching the original's partial-matching behaviour.
func normalizedCrossCorrelation(src []byte, srcWidth, x, y int, tmpl []byte, tmplW, tmplH int, mask []byte) float32 {
	var srcSum, tmplSum float64
	var n int
	for ty := 0; ty < tmplH; ty++ {
		for tx := 0; tx < tmplW; tx++ {
			if mask != nil && mask[ty*tmplW+tx] < 128 {
				continue
			}
			srcSum += float64(src[(y+ty)*srcWidth+(x+tx)])
			tmplSum += float64(tmpl[ty*tmplW+tx])
			n++
		}
	}
	if n == 0 {
		return 0.0
	}
	srcMean := srcSum / float64(n)
	tmplMean := tmplSum / float64(n)

	var numerator, srcVar, tmplVar float64
	for ty := 0; ty < tmplH; ty++ {
		for tx := 0; tx < tmplW; tx++ {
			if mask != nil && mask[ty*tmplW+tx] < 128 {
				continue
			}
			sv := float64(src[(y+ty)*srcWidth+(x+tx)]) - srcMean
			tv := float64(tmpl[ty*tmplW+tx]) - tmplMean
			numerator += sv * tv
			srcVar += sv * sv
			tmplVar += tv * tv
		}
	}

	denominator := math.Sqrt(srcVar * tmplVar)
	if denominator < 1e-10 {
		return 0.0
	}

	confidence := numerator / denominator
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return float32(confidence)
}

// nonMaxSuppression retains a match only when no previously accepted match
// of the same template within minDistance has equal or greater confidence,
// and prunes any accepted matches the new one dominates.
func nonMaxSuppression(matches []Match, minDistance int) []Match {
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	var kept []Match
	for _, cand := range matches {
		dominated := false
		filtered := kept[:0:0]
		for _, k := range kept {
			if k.TemplateID == cand.TemplateID && distance(cand, k) < minDistance {
				if k.Confidence >= cand.Confidence {
					dominated = true
					filtered = append(filtered, k)
				}
				// else: cand dominates k, drop k (don't append)
			} else {
				filtered = append(filtered, k)
			}
		}
		if !dominated {
			filtered = append(filtered, cand)
		}
		kept = filtered
	}

	return kept
}

func distance(a, b Match) int {
	ax, ay := a.Center()
	bx, by := b.Center()
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return int(math.Sqrt(dx*dx + dy*dy))
}

// rescaleGray resizes single-channel grayscale data using x/image/draw's
// BiLinear kernel, the direct equivalent of the reference implementation's
// image::imageops::FilterType::Triangle.
func rescaleGray(data []byte, width, height, newWidth, newHeight int) []byte {
	src := image.NewGray(image.Rect(0, 0, width, height))
	copy(src.Pix, data)

	dst := image.NewGray(image.Rect(0, 0, newWidth, newHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	return dst.Pix
}
