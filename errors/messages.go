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

package errors

// message catalog, grouped by subsystem. each entry is a format string
// suitable for use with Errorf().
const (
	// Config
	ConfigFileCannotOpen  = "config: cannot open file: %v"
	ConfigParseFailure    = "config: cannot parse: %v"
	ConfigWriteFailure    = "config: cannot write file: %v"
	ConfigInvalidHotkey   = "config: invalid hotkey expression %q"
	ConfigInvalidKeyValue = "config: invalid value for %s: %v"

	// Profile
	ProfileFileCannotOpen = "profile: cannot open file: %v"
	ProfileParseFailure   = "profile: cannot parse: %v"
	ProfileWriteFailure   = "profile: cannot write file: %v"
	ProfileNotFound       = "profile: %s not found"
	ProfileCyclicParent   = "profile: screen %s has a cyclic parent chain"
	ProfileDuplicateID    = "profile: duplicate id %s"

	// Capture
	CaptureStartFailure   = "capture: cannot start: %v"
	CaptureWindowNotFound = "capture: window %q not found"
	CaptureMonitorInvalid = "capture: monitor index %d not found"
	CaptureAlreadyRunning = "capture: already running"

	// Inference (ONNX sessions)
	InferenceSessionLoad = "inference: cannot load model %s: %v"
	InferenceRunFailure  = "inference: run failed: %v"
	InferenceShapeBad    = "inference: unexpected tensor shape %v"
	InferenceNoBackend   = "inference: no execution provider available: %v"

	// OCR
	OcrDictionaryLoad   = "ocr: cannot load dictionary %s: %v"
	OcrEmptyRegion      = "ocr: region has zero area"
	OcrVocabularyOOB    = "ocr: decoded index %d out of vocabulary range"
	OcrDetectionFailure = "ocr: detection stage failed: %v"

	// Template
	TemplateNotFound     = "template: %s not found"
	TemplateTooLarge     = "template: scaled template %dx%d exceeds source %dx%d"
	TemplateInvalidScale = "template: scaled dimensions %dx%d below minimum"
	TemplateDuplicateID  = "template: duplicate id %s"
	TemplateMaskMismatch = "template: mask dimensions %dx%d do not match image %dx%d"

	// IO (model downloads, manifest persistence)
	IoManifestCannotOpen = "io: cannot open manifest: %v"
	IoManifestWrite      = "io: cannot write manifest: %v"
	IoDownloadFailure    = "io: download of %s failed: %v"
	IoOfflineBlocked     = "io: download of %s blocked by offline mode"
	IoChecksumMismatch   = "io: checksum mismatch for %s: expected %s got %s"

	// Manifest (model entry bookkeeping)
	ManifestLoadFailure      = "manifest: cannot load %s: %v"
	ManifestSaveFailure      = "manifest: cannot save %s: %v"
	ManifestCapacityExceeded = "manifest: maximum entries exceeded (max %d)"
	ManifestEntryNotFound    = "manifest: entry %s not found"

	// Rules (Lua rule scripts)
	RuleCompileFailure    = "rules: rule %s failed to compile: %v"
	RuleRuntimeFailure    = "rules: rule %s failed at runtime: %v"
	RuleMissingEntrypoint = "rules: rule %s has no evaluate function"
)
