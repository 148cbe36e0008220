package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/hyperifyio/gosample/internal/persist"
)

// manifestEntry is a compact record of a single saved image/caption pair.
type manifestEntry struct {
	Index      int    `json:"index"`
	Image      string `json:"image"`
	Caption    string `json:"caption"`
	SHA256     string `json:"sha256"` // digest of the caption text as written
	Chars      int    `json:"chars"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageField string `json:"image_field"`
	TextField  string `json:"text_field,omitempty"`
}

// manifestMeta captures high-level run details that aid reproducibility.
type manifestMeta struct {
	Dataset     string    `json:"dataset"`
	Requested   int       `json:"requested"`
	Collected   int       `json:"collected"`
	Saved       int       `json:"saved"`
	GeneratedAt time.Time `json:"generated_at"`
}

// computeSHA256Hex returns a lowercase hex-encoded SHA-256 of the given text.
func computeSHA256Hex(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// buildManifestEntries constructs entries from the persisted results.
func buildManifestEntries(results []persist.Result) []manifestEntry {
	out := make([]manifestEntry, 0, len(results))
	for _, r := range results {
		out = append(out, manifestEntry{
			Index:      r.Index + 1,
			Image:      filepath.Base(r.ImagePath),
			Caption:    filepath.Base(r.CaptionPath),
			SHA256:     computeSHA256Hex(r.Caption),
			Chars:      len(r.Caption),
			Width:      r.Width,
			Height:     r.Height,
			ImageField: r.ImageField,
			TextField:  r.TextField,
		})
	}
	return out
}

// marshalManifestJSON encodes the machine-readable sidecar manifest.
func marshalManifestJSON(meta manifestMeta, entries []manifestEntry) ([]byte, error) {
	payload := struct {
		Meta    manifestMeta    `json:"meta"`
		Samples []manifestEntry `json:"samples"`
	}{Meta: meta, Samples: entries}
	return json.MarshalIndent(payload, "", "  ")
}

// deriveManifestPath returns the sidecar JSON path inside a sample directory.
func deriveManifestPath(dir string) string {
	return filepath.Join(dir, "samples.json")
}
