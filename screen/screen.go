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

// Package screen implements hierarchical screen recognition: matching the
// current frame against a tree of known screens using either a full-frame
// comparison or a set of anchor checks (visual template matches or OCR'd
// text), gated by parent/child relationships and tried in priority order.
package screen

import (
	"image"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/image/draw"
)

// MatchMode selects how a ScreenDefinition is matched against the frame.
type MatchMode int

const (
	FullScreenshot MatchMode = iota
	Anchors
)

// AnchorKind distinguishes a visual (template) anchor from a text anchor.
type AnchorKind int

const (
	VisualAnchor AnchorKind = iota
	TextAnchor
)

// Bounds is an axis-aligned region in frame coordinates.
type Bounds struct {
	X, Y, W, H int
}

// ScreenAnchor is one check within a screen's Anchors match mode.
type ScreenAnchor struct {
	ID           string
	Kind         AnchorKind
	Bounds       Bounds
	Required     bool
	Template     []byte // grayscale, VisualAnchor only
	TemplateW    int
	TemplateH    int
	ExpectedText string  // TextAnchor only
	Threshold    float32 // per-anchor override; 0 means "use config default"
}

// ScreenDefinition is one node in the screen hierarchy.
type ScreenDefinition struct {
	ID             string
	Name           string
	ParentID       string // empty means root
	Priority       int
	Enabled        bool
	Mode           MatchMode
	Template       []byte // grayscale, FullScreenshot only
	TemplateW      int
	TemplateH      int
	Anchors        []ScreenAnchor
	MatchThreshold float32 // per-screen override; 0 means "use config default"
}

// AnchorMatch records the outcome of checking one anchor.
type AnchorMatch struct {
	AnchorID     string
	Matched      bool
	Confidence   float32
	DetectedText string
}

// Match is the result of a successful recognition.
type Match struct {
	ScreenID       string
	ScreenName     string
	Confidence     float32
	MatchedAnchors []AnchorMatch
	ParentChain    []string
}

// Node is one entry in the built hierarchy tree.
type Node struct {
	Screen   ScreenDefinition
	Children []*Node
	Depth    int
}

// Config controls recognizer-wide thresholds and caching.
type Config struct {
	FullMatchThreshold   float32
	AnchorMatchThreshold float32
	MatchScale           float32
	EnableCache          bool
	CacheTTL             time.Duration
}

// DefaultConfig mirrors the reference implementation's defaults.
func DefaultConfig() Config {
	return Config{
		FullMatchThreshold:   0.7,
		AnchorMatchThreshold: 0.75,
		MatchScale:           0.5,
		EnableCache:          true,
		CacheTTL:             200 * time.Millisecond,
	}
}

// OCRFunc invokes the OCR engine over a region and returns the recognized
// text. Supplied by the caller (typically the pipeline coordinator) so this
// package has no direct dependency on the ocr package.
type OCRFunc func(x, y, w, h int) (string, error)

// Recognizer holds the known screens and recognizes the current frame
// against them.
type Recognizer struct {
	screens map[string]ScreenDefinition
	config  Config

	lastMatch     *Match
	lastMatchTime time.Time
}

// NewRecognizer creates a Recognizer with the given configuration.
func NewRecognizer(config Config) *Recognizer {
	return &Recognizer{
		screens: make(map[string]ScreenDefinition),
		config:  config,
	}
}

// AddScreen registers or replaces a screen definition.
func (r *Recognizer) AddScreen(s ScreenDefinition) {
	r.screens[s.ID] = s
}

// RemoveScreen removes a screen by id.
func (r *Recognizer) RemoveScreen(id string) {
	delete(r.screens, id)
}

// Hierarchy builds the screen tree: root screens (no ParentID) at depth 0,
// children nested beneath, every level sorted by descending priority with
// screens at equal priority ordered by id.
func (r *Recognizer) Hierarchy() []*Node {
	childrenOf := make(map[string][]ScreenDefinition)
	var roots []ScreenDefinition

	// preserve a deterministic base ordering (by ID) before the
	// priority-stable sort, since map iteration order is not stable.
	var ids []string
	for id := range r.screens {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		s := r.screens[id]
		if s.ParentID == "" {
			roots = append(roots, s)
		} else {
			childrenOf[s.ParentID] = append(childrenOf[s.ParentID], s)
		}
	}

	var build func(defs []ScreenDefinition, depth int) []*Node
	build = func(defs []ScreenDefinition, depth int) []*Node {
		sort.SliceStable(defs, func(i, j int) bool {
			return defs[i].Priority > defs[j].Priority
		})
		nodes := make([]*Node, len(defs))
		for i, d := range defs {
			nodes[i] = &Node{
				Screen:   d,
				Depth:    depth,
				Children: build(childrenOf[d.ID], depth+1),
			}
		}
		return nodes
	}

	return build(roots, 0)
}

// Recognize finds the best-scoring screen (across all registered screens,
// not the first that clears its threshold) against the current grayscale
// frame. ocrFn is used for TextAnchor checks; it may be nil if no screen
// uses text anchors.
func (r *Recognizer) Recognize(gray []byte, width, height int, ocrFn OCRFunc) (*Match, bool) {
	if r.config.EnableCache && r.lastMatch != nil {
		if time.Since(r.lastMatchTime) < r.config.CacheTTL {
			return r.lastMatch, true
		}
	}

	// priority order at the top level; a screen is only evaluated once its
	// parent has already matched this pass.
	var ordered []ScreenDefinition
	for _, s := range r.screens {
		ordered = append(ordered, s)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	matchedIDs := make(map[string]bool)

	var best *Match
	var bestConfidence float32 = -1

	for _, s := range ordered {
		if !s.Enabled {
			continue
		}
		if s.ParentID != "" && !matchedIDs[s.ParentID] {
			continue
		}

		m, ok := r.matchScreen(s, gray, width, height, ocrFn)
		if ok {
			matchedIDs[s.ID] = true
			if m.Confidence > bestConfidence {
				bestConfidence = m.Confidence
				mCopy := m
				mCopy.ParentChain = r.parentChain(s)
				best = &mCopy
			}
		}
	}

	if best == nil {
		return nil, false
	}

	r.lastMatch = best
	r.lastMatchTime = time.Now()
	return best, true
}

func (r *Recognizer) parentChain(s ScreenDefinition) []string {
	var chain []string
	cur := s
	for cur.ParentID != "" {
		parent, ok := r.screens[cur.ParentID]
		if !ok {
			break
		}
		chain = append([]string{parent.ID}, chain...)
		cur = parent
	}
	return chain
}

func (r *Recognizer) matchScreen(s ScreenDefinition, gray []byte, width, height int, ocrFn OCRFunc) (Match, bool) {
	switch s.Mode {
	case FullScreenshot:
		return r.matchFullScreenshot(s, gray, width, height)
	case Anchors:
		return r.matchAnchors(s, gray, width, height, ocrFn)
	default:
		return Match{}, false
	}
}

func (r *Recognizer) matchFullScreenshot(s ScreenDefinition, gray []byte, width, height int) (Match, bool) {
	imgGray, imgW, imgH := gray, width, height
	tmplGray, tmplW, tmplH := s.Template, s.TemplateW, s.TemplateH

	scale := r.config.MatchScale
	if scale > 0 && scale != 1.0 {
		imgW2 := int(float32(width) * scale)
		imgH2 := int(float32(height) * scale)
		imgGray = rescaleGray(gray, width, height, imgW2, imgH2)
		imgW, imgH = imgW2, imgH2

		tmplW2 := int(float32(tmplW) * scale)
		tmplH2 := int(float32(tmplH) * scale)
		tmplGray = rescaleGray(s.Template, tmplW, tmplH, tmplW2, tmplH2)
		tmplW, tmplH = tmplW2, tmplH2
	}

	// the reference implementation resizes the template onto the frame's
	// dimensions when they drift by more than 5px on either axis, rather
	// than rejecting the comparison outright.
	if abs(imgW-tmplW) > 5 || abs(imgH-tmplH) > 5 {
		tmplGray = rescaleGray(tmplGray, tmplW, tmplH, imgW, imgH)
		tmplW, tmplH = imgW, imgH
	}

	threshold := r.config.FullMatchThreshold
	if s.MatchThreshold > 0 {
		threshold = s.MatchThreshold
	}

	similarity := computeImageSimilarity(imgGray, imgW, imgH, tmplGray, tmplW, tmplH)
	if similarity < threshold {
		return Match{}, false
	}

	return Match{
		ScreenID:   s.ID,
		ScreenName: s.Name,
		Confidence: similarity,
	}, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (r *Recognizer) matchAnchors(s ScreenDefinition, gray []byte, width, height int, ocrFn OCRFunc) (Match, bool) {
	var matches []AnchorMatch
	var totalConfidence float32
	var matchedCount int

	for _, a := range s.Anchors {
		m := r.matchAnchor(a, gray, width, height, ocrFn)
		if a.Required && !m.Matched {
			return Match{}, false
		}
		if m.Matched {
			totalConfidence += m.Confidence
			matchedCount++
		}
		matches = append(matches, m)
	}

	if matchedCount == 0 {
		return Match{}, false
	}

	confidence := totalConfidence / float32(matchedCount)
	threshold := r.config.AnchorMatchThreshold
	if s.MatchThreshold > 0 {
		threshold = s.MatchThreshold
	}
	if confidence < threshold {
		return Match{}, false
	}

	return Match{
		ScreenID:       s.ID,
		ScreenName:     s.Name,
		Confidence:     confidence,
		MatchedAnchors: matches,
	}, true
}

func (r *Recognizer) matchAnchor(a ScreenAnchor, gray []byte, width, height int, ocrFn OCRFunc) AnchorMatch {
	switch a.Kind {
	case VisualAnchor:
		return r.matchVisualAnchor(a, gray, width, height)
	case TextAnchor:
		return r.matchTextAnchor(a, ocrFn)
	default:
		return AnchorMatch{AnchorID: a.ID}
	}
}

func (r *Recognizer) matchVisualAnchor(a ScreenAnchor, gray []byte, width, height int) AnchorMatch {
	if a.Bounds.X < 0 || a.Bounds.Y < 0 || a.Bounds.X+a.Bounds.W > width || a.Bounds.Y+a.Bounds.H > height {
		return AnchorMatch{AnchorID: a.ID}
	}

	region := extractGrayRegion(gray, width, a.Bounds)
	similarity := computeImageSimilarity(region, a.Bounds.W, a.Bounds.H, a.Template, a.TemplateW, a.TemplateH)

	threshold := r.config.AnchorMatchThreshold
	if a.Threshold > 0 {
		threshold = a.Threshold
	}

	return AnchorMatch{
		AnchorID:   a.ID,
		Matched:    similarity >= threshold,
		Confidence: similarity,
	}
}

func (r *Recognizer) matchTextAnchor(a ScreenAnchor, ocrFn OCRFunc) AnchorMatch {
	if ocrFn == nil {
		return AnchorMatch{AnchorID: a.ID}
	}
	if a.Bounds.X < 0 || a.Bounds.Y < 0 || a.Bounds.W <= 0 || a.Bounds.H <= 0 {
		return AnchorMatch{AnchorID: a.ID}
	}

	text, err := ocrFn(a.Bounds.X, a.Bounds.Y, a.Bounds.W, a.Bounds.H)
	if err != nil {
		return AnchorMatch{AnchorID: a.ID}
	}

	similarity := textSimilarity(text, a.ExpectedText)

	threshold := r.config.AnchorMatchThreshold
	if a.Threshold > 0 {
		threshold = a.Threshold
	}

	return AnchorMatch{
		AnchorID:     a.ID,
		Matched:      similarity >= threshold,
		Confidence:   similarity,
		DetectedText: text,
	}
}

// textSimilarity compares two strings case-insensitively, as lowercased
// Levenshtein distance normalized by the longer string's rune length.
func textSimilarity(a, b string) float32 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshteinDistance(a, b)
	return 1.0 - float32(dist)/float32(maxLen)
}

func extractGrayRegion(gray []byte, width int, b Bounds) []byte {
	out := make([]byte, b.W*b.H)
	for row := 0; row < b.H; row++ {
		srcStart := (b.Y+row)*width + b.X
		copy(out[row*b.W:(row+1)*b.W], gray[srcStart:srcStart+b.W])
	}
	return out
}

// computeImageSimilarity is a whole-image zero-mean normalized
// cross-correlation between two equally-sized grayscale buffers. Mismatched
// dimensions are rejected (return 0) since a real comparison would require
// an additional resampling step the caller is responsible for.
func computeImageSimilarity(a []byte, aw, ah int, b []byte, bw, bh int) float32 {
	if aw != bw || ah != bh || len(a) == 0 || len(b) == 0 {
		return 0
	}

	n := len(a)
	var sumA, sumB float64
	for i := 0; i < n; i++ {
		sumA += float64(a[i])
		sumB += float64(b[i])
	}
	meanA := sumA / float64(n)
	meanB := sumB / float64(n)

	var numerator, varA, varB float64
	for i := 0; i < n; i++ {
		va := float64(a[i]) - meanA
		vb := float64(b[i]) - meanB
		numerator += va * vb
		varA += va * va
		varB += vb * vb
	}

	denom := varA * varB
	if denom < 1e-10 {
		return 0
	}

	sim := numerator / math.Sqrt(denom)
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return float32(sim)
}

func rescaleGray(data []byte, width, height, newWidth, newHeight int) []byte {
	if newWidth <= 0 || newHeight <= 0 {
		return nil
	}
	src := image.NewGray(image.Rect(0, 0, width, height))
	copy(src.Pix, data)

	dst := image.NewGray(image.Rect(0, 0, newWidth, newHeight))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	return dst.Pix
}
