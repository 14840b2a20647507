// Package sniff inspects input files before conversion. It uses go-enry to
// flag content that should not be treated as prose: binary data, generated
// files, vendored paths and executable scripts.
package sniff

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Kind classifies an input file.
type Kind string

// Input kinds.
const (
	KindText      Kind = "text"
	KindBinary    Kind = "binary"
	KindScript    Kind = "script"
	KindGenerated Kind = "generated"
)

// Result is the outcome of inspecting a file.
type Result struct {
	// Kind is the detected input kind.
	Kind Kind

	// Language is the script language for KindScript, empty otherwise.
	Language string
}

// Convertible reports whether the input should be converted.
func (r Result) Convertible() bool {
	return r.Kind == KindText
}

// Detect inspects content read from path.
func Detect(path string, content []byte) Result {
	if len(content) == 0 {
		return Result{Kind: KindText}
	}

	// Strategy 1: binary data can never be prose.
	if enry.IsBinary(content) {
		return Result{Kind: KindBinary}
	}

	// Strategy 2: a shebang marks an executable script.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Result{Kind: KindScript, Language: normalize(lang)}
	}

	// Strategy 3: generated files carry markers go-enry knows about.
	if enry.IsGenerated(filepath.ToSlash(path), content) {
		return Result{Kind: KindGenerated}
	}

	return Result{Kind: KindText}
}

// IsVendor reports whether a slash or OS separated relative path lies in a
// vendored location such as vendor/ or node_modules/. Directories should be
// passed with a trailing separator.
func IsVendor(relPath string) bool {
	return enry.IsVendor(filepath.ToSlash(relPath))
}

// normalize converts go-enry language names to short lowercase names.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
