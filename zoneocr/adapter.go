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

package zoneocr

import "github.com/jetsetilly/vizcaddy/ocr"

// EngineBackend adapts *ocr.Engine to the Backend interface, discarding the
// polygon field a zone has no use for.
type EngineBackend struct {
	Engine *ocr.Engine
}

func (e EngineBackend) Recognize(rgba []byte, width, height int) ([]TextHit, error) {
	results, err := e.Engine.Recognize(rgba, width, height)
	if err != nil {
		return nil, err
	}
	hits := make([]TextHit, len(results))
	for i, r := range results {
		hits[i] = TextHit{Text: r.Text, Confidence: r.Confidence}
	}
	return hits, nil
}
