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

// Package platformocr implements zoneocr.Backend by delegating to the host
// operating system's text-recognition service (Windows.Media.Ocr and
// equivalents) rather than the bundled ONNX models in the ocr package. The
// actual OS call is platform-specific and out of scope for this
// repository (same boundary as the capture package's real screen-capture
// backend); this package supplies the contract, the language-fallback
// rule and the RGBA/BGRA conversion step the host service expects, with a
// Recognize that returns no hits.
package platformocr

import "github.com/jetsetilly/vizcaddy/zoneocr"

// defaultLanguage is used when the requested language tag isn't supported
// and no further fallback is available.
const defaultLanguage = "en-US"

// supportedLanguages is the set this stub recognizes as available; a real
// platform integration would query the host OS instead.
var supportedLanguages = []string{"en-US", "en-GB", "fr-FR", "de-DE", "ja-JP"}

// Backend is a platform OCR handle bound to one recognizer language.
type Backend struct {
	language string
}

// New creates a Backend for the given BCP-47 language tag. A tag outside the
// supported set falls back to defaultLanguage (en-US); the host's
// user-profile language is not queried.
func New(languageTag string) (*Backend, error) {
	for _, lang := range supportedLanguages {
		if lang == languageTag {
			return &Backend{language: languageTag}, nil
		}
	}
	return &Backend{language: defaultLanguage}, nil
}

// Language returns the backend's active recognizer language.
func (b *Backend) Language() string {
	return b.language
}

// AvailableLanguages lists the recognizer languages this backend can use.
func AvailableLanguages() []string {
	out := make([]string, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// Recognize satisfies zoneocr.Backend. Confidence is always reported as 1.0
// for any hit, matching the host service's lack of a per-word score. Empty
// or zero-dimension input returns no hits and no error, never fails.
func (b *Backend) Recognize(rgba []byte, width, height int) ([]zoneocr.TextHit, error) {
	if len(rgba) == 0 || width <= 0 || height <= 0 {
		return nil, nil
	}
	bgra := rgbaToBGRA(rgba)
	return recognizeBGRA(bgra, width, height)
}

// rgbaToBGRA swaps the red and blue channels, the pixel order the host OCR
// service expects.
func rgbaToBGRA(rgba []byte) []byte {
	out := make([]byte, len(rgba))
	copy(out, rgba)
	for i := 0; i+3 < len(out); i += 4 {
		out[i], out[i+2] = out[i+2], out[i]
	}
	return out
}

// recognizeBGRA hands pixels to the host OCR service. No such service is
// wired into this build; a real platform build would replace this with a
// call into Windows.Media.Ocr or the host equivalent.
func recognizeBGRA(bgra []byte, width, height int) ([]zoneocr.TextHit, error) {
	return nil, nil
}
