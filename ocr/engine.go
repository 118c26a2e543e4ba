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

// Package ocr implements the two-stage OCR engine: a detection model that
// locates text regions and a recognition model that reads them, decoded
// with CTC.
package ocr

import (
	"bufio"
	"os"

	ort "github.com/yalue/onnxruntime_go"

	vizerrors "github.com/jetsetilly/vizcaddy/errors"
	"github.com/jetsetilly/vizcaddy/logger"
)

// Result is a single recognized text region.
type Result struct {
	Text       string
	Confidence float32
	Polygon    [4][2]float32
}

// Engine wraps the detection and recognition ONNX sessions plus the
// vocabulary used to turn recognition indices into characters.
type Engine struct {
	detectionSession   *ort.DynamicAdvancedSession
	recognitionSession *ort.DynamicAdvancedSession

	cfg        modelConfig
	vocabulary []rune

	detectionThreshold   float32
	recognitionThreshold float32

	log *logger.Logger
}

// New creates an Engine, attempting a GPU execution provider first and
// falling back to CPU-only if none is available, independently for each of
// the two sessions (matching the reference implementation's approach).
func New(detectionModelPath, recognitionModelPath, dictPath string, log *logger.Logger) (*Engine, error) {
	vocab, err := loadVocabulary(dictPath)
	if err != nil {
		return nil, vizerrors.Errorf(vizerrors.OcrDictionaryLoad, dictPath, err)
	}
	if log != nil {
		log.Logf(logger.Allow, "ocr", "loaded vocabulary: %d entries", len(vocab))
	}

	detSess, err := newSessionWithFallback(detectionModelPath, log)
	if err != nil {
		return nil, vizerrors.Errorf(vizerrors.InferenceSessionLoad, detectionModelPath, err)
	}

	recSess, err := newSessionWithFallback(recognitionModelPath, log)
	if err != nil {
		detSess.Destroy()
		return nil, vizerrors.Errorf(vizerrors.InferenceSessionLoad, recognitionModelPath, err)
	}

	return &Engine{
		detectionSession:     detSess,
		recognitionSession:   recSess,
		cfg:                  defaultModelConfig(),
		vocabulary:           vocab,
		detectionThreshold:   0.3,
		recognitionThreshold: 0.001,
		log:                  log,
	}, nil
}

// newSessionWithFallback tries to create a session with a GPU execution
// provider (when onnxruntime_go exposes one on this platform) and falls
// back to a plain CPU session otherwise.
func newSessionWithFallback(modelPath string, log *logger.Logger) (*ort.DynamicAdvancedSession, error) {
	opts, err := ort.NewSessionOptions()
	if err == nil {
		defer opts.Destroy()
		if gerr := opts.AppendExecutionProviderCUDA(); gerr == nil {
			sess, serr := ort.NewDynamicAdvancedSession(modelPath, []string{"x"}, []string{"save_infer_model/scale_0.tmp_1"}, opts)
			if serr == nil {
				if log != nil {
					log.Logf(logger.Allow, "ocr", "loaded %s on GPU", modelPath)
				}
				return sess, nil
			}
			if log != nil {
				log.Logf(logger.Allow, "ocr", "GPU session for %s failed, falling back to CPU: %v", modelPath, serr)
			}
		}
	}

	sess, err := ort.NewDynamicAdvancedSession(modelPath, []string{"x"}, []string{"save_infer_model/scale_0.tmp_1"}, nil)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Logf(logger.Allow, "ocr", "loaded %s on CPU", modelPath)
	}
	return sess, nil
}

// Destroy releases both ONNX sessions.
func (e *Engine) Destroy() {
	if e.detectionSession != nil {
		e.detectionSession.Destroy()
	}
	if e.recognitionSession != nil {
		e.recognitionSession.Destroy()
	}
}

func loadVocabulary(dictPath string) ([]rune, error) {
	f, err := os.Open(dictPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var vocab []rune
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			vocab = append(vocab, ' ')
			continue
		}
		runes := []rune(line)
		vocab = append(vocab, runes[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return vocab, nil
}

// Recognize runs the full detect-then-recognize pipeline over RGBA image
// data, returning one Result per detected region whose recognition
// confidence clears the engine's recognitionThreshold.
func (e *Engine) Recognize(rgba []byte, width, height int) ([]Result, error) {
	if width == 0 || height == 0 {
		return nil, nil
	}

	detections, err := e.detect(rgba, width, height)
	if err != nil {
		return nil, vizerrors.Errorf(vizerrors.OcrDetectionFailure, err)
	}

	var results []Result
	for _, d := range detections {
		res, ok, err := e.recognizeRegion(rgba, width, height, d)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if res.Confidence < e.recognitionThreshold {
			continue
		}
		results = append(results, res)
	}

	return results, nil
}

func (e *Engine) detect(rgba []byte, width, height int) ([]Detection, error) {
	tensor, scale := resizeForDetection(rgba, width, height, e.cfg)

	input, err := ort.NewTensor(ort.NewShape(1, int64(tensor.channels), int64(tensor.height), int64(tensor.width)), tensor.data)
	if err != nil {
		return nil, err
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := e.detectionSession.Run([]ort.Value{input}, outputs); err != nil {
		return nil, err
	}
	defer func() {
		for _, o := range outputs {
			if o != nil {
				o.Destroy()
			}
		}
	}()

	probTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, vizerrors.Errorf(vizerrors.InferenceShapeBad, outputs[0])
	}

	mask := thresholdMap(probTensor.GetData(), e.detectionThreshold)
	boxes := findTextBoxes(mask, probTensor.GetData(), tensor.width, tensor.height)
	return scaleDetections(boxes, scale, width, height), nil
}

func (e *Engine) recognizeRegion(rgba []byte, width, height int, d Detection) (Result, bool, error) {
	crop, cropW, cropH, ok := cropPolygon(rgba, width, height, d.Polygon)
	if !ok || cropW < 2 || cropH < 2 {
		return Result{}, false, nil
	}

	tensor := resizeForRecognition(crop, cropW, cropH, e.cfg)

	input, err := ort.NewTensor(ort.NewShape(1, int64(tensor.channels), int64(tensor.height), int64(tensor.width)), tensor.data)
	if err != nil {
		return Result{}, false, err
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := e.recognitionSession.Run([]ort.Value{input}, outputs); err != nil {
		return Result{}, false, err
	}
	defer func() {
		for _, o := range outputs {
			if o != nil {
				o.Destroy()
			}
		}
	}()

	logitsTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return Result{}, false, vizerrors.Errorf(vizerrors.InferenceShapeBad, outputs[0])
	}

	shape := logitsTensor.GetShape()
	if len(shape) < 3 {
		return Result{}, false, vizerrors.Errorf(vizerrors.InferenceShapeBad, shape)
	}
	timesteps := int(shape[1])
	vocabSize := int(shape[2])

	text, confidence := ctcDecodeRaw(logitsTensor.GetData(), timesteps, vocabSize, e.vocabulary)
	if text == "" {
		return Result{}, false, nil
	}

	return Result{Text: text, Confidence: confidence, Polygon: d.Polygon}, true, nil
}
