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

import "strings"

// ctcDecodeRaw performs greedy CTC decoding over a [timesteps][vocabSize]
// logit/probability matrix. Index 0 of the model's output is the blank
// token and index vocabSize-1 is a reserved terminal class; vocabulary
// index = model index - 1 (the vocabulary itself has no blank entry, and
// its length is vocabSize-2). Consecutive repeats of the same non-blank
// index collapse to a single character; a blank or the terminal class
// always resets the repeat tracker, even though every timestep updates it.
func ctcDecodeRaw(data []float32, timesteps, vocabSize int, vocabulary []rune) (string, float32) {
	const blankIdx = 0

	var sb strings.Builder
	var totalConfidence float32
	var count int

	prevCharIdx := -1 // -1 stands for "none"

	for t := 0; t < timesteps; t++ {
		row := data[t*vocabSize : (t+1)*vocabSize]

		maxIdx := 0
		maxVal := row[0]
		for i := 1; i < vocabSize; i++ {
			if row[i] > maxVal {
				maxVal = row[i]
				maxIdx = i
			}
		}

		if maxIdx == blankIdx || maxIdx >= vocabSize-1 {
			prevCharIdx = -1
			continue
		}

		if maxIdx != prevCharIdx {
			vocabIdx := maxIdx - 1
			if vocabIdx >= 0 && vocabIdx < len(vocabulary) {
				ch := vocabulary[vocabIdx]
				if ch != ' ' {
					sb.WriteRune(ch)
					totalConfidence += maxVal
					count++
				}
			}
		}

		prevCharIdx = maxIdx
	}

	var avgConfidence float32
	if count > 0 {
		avgConfidence = totalConfidence / float32(count)
	}

	return strings.TrimSpace(sb.String()), avgConfidence
}
