// Package extract locates image and caption payloads inside loosely shaped
// dataset records. Detection is deliberately heuristic: a fixed candidate
// list of well-known field names is checked first, then a typed scan over
// the remaining keys.
package extract

import (
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hyperifyio/gosample/internal/hub"
)

// Candidate field names in priority order; the first one present wins.
var (
	imageFields = []string{"image", "img", "images", "image_data", "photo"}
	textFields  = []string{"text", "caption", "captions", "description", "descriptions", "title"}
)

// nonImageKeys are never considered image-bearing during the fallback scan,
// even when their values look like byte payloads.
var nonImageKeys = map[string]struct{}{
	"text":    {},
	"caption": {},
	"label":   {},
}

// NoCaption is written for records with no recognizable text field.
const NoCaption = "No caption"

// ErrUnsupportedImage reports an image value that is neither raw bytes nor a
// container holding a usable bytes entry.
var ErrUnsupportedImage = errors.New("unsupported image format")

// ImageField returns the name and value of the field most likely to carry
// the record's image payload. After the candidate list it falls back to
// scanning the remaining keys for raw bytes or container values, in sorted
// order so the pick is stable run to run.
func ImageField(rec hub.Record) (string, any, bool) {
	for _, name := range imageFields {
		if v, ok := rec[name]; ok {
			return name, v, true
		}
	}
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, excluded := nonImageKeys[k]; excluded {
			continue
		}
		switch rec[k].(type) {
		case []byte, map[string]any:
			return k, rec[k], true
		}
	}
	return "", nil, false
}

// TextField returns the name and value of the field most likely to carry
// the record's caption. No fallback scan here: free-form strings are too
// common in dataset rows for guessing to be useful.
func TextField(rec hub.Record) (string, any, bool) {
	for _, name := range textFields {
		if v, ok := rec[name]; ok {
			return name, v, true
		}
	}
	return "", nil, false
}

// ImageBytes coerces a detected image value into encoded image bytes. It
// accepts raw bytes, or a container whose bytes entry is raw or base64
// encoded, which covers both streamed rows and JSON-decoded payloads.
func ImageBytes(v any) ([]byte, error) {
	switch val := v.(type) {
	case []byte:
		return val, nil
	case map[string]any:
		raw, ok := val["bytes"]
		if !ok {
			return nil, fmt.Errorf("%w: container without bytes", ErrUnsupportedImage)
		}
		switch b := raw.(type) {
		case []byte:
			return b, nil
		case string:
			decoded, err := base64.StdEncoding.DecodeString(b)
			if err != nil {
				return nil, fmt.Errorf("decode base64 image: %w", err)
			}
			return decoded, nil
		default:
			return nil, fmt.Errorf("%w: bytes entry is %T", ErrUnsupportedImage, raw)
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedImage, v)
	}
}

// Caption renders a text value as the string that gets written to disk.
// Strings pass through, lists become one "[<position>] <element>" line per
// element, and anything else is formatted with the fmt defaults.
func Caption(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		lines := make([]string, 0, len(val))
		for i, item := range val {
			lines = append(lines, fmt.Sprintf("[%d] %s", i, item))
		}
		return strings.Join(lines, "\n")
	case []any:
		lines := make([]string, 0, len(val))
		for i, item := range val {
			lines = append(lines, fmt.Sprintf("[%d] %v", i, item))
		}
		return strings.Join(lines, "\n")
	default:
		return fmt.Sprint(v)
	}
}
