// Package persist decodes one record's payloads and writes the image and
// caption pair to disk.
package persist

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	// Register decoders for the formats datasets commonly ship.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/hyperifyio/gosample/internal/extract"
	"github.com/hyperifyio/gosample/internal/hub"
)

// ErrNoImageField reports a record with no recognizable image payload.
var ErrNoImageField = errors.New("no image field found")

// Result records one persisted pair. Paths are as written, the rest is
// inspection metadata for the manifest and contact sheet.
type Result struct {
	Index       int // zero-based selection order
	ImagePath   string
	CaptionPath string

	ImageField string
	TextField  string // empty when the caption fell back to the default
	Caption    string
	Width      int
	Height     int
}

// Persister writes pairs into Dir as image_<n>.jpg and caption_<n>.txt,
// where n is the 1-based selection order.
type Persister struct {
	Dir string
	// Quality is the JPEG re-encode quality; 0 means the encoder default.
	Quality int
}

// Persist decodes the record's image payload, renders its caption and writes
// both files. Detection and decoding run before anything touches disk, so
// unusable records leave no files behind; a failed caption write can still
// leave its image. Failures are returned for the caller to log; nothing here
// aborts a batch.
func (p *Persister) Persist(rec hub.Record, index int) (Result, error) {
	imageField, imageVal, ok := extract.ImageField(rec)
	if !ok {
		return Result{}, ErrNoImageField
	}
	data, err := extract.ImageBytes(imageVal)
	if err != nil {
		return Result{}, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Result{}, fmt.Errorf("decode image: %w", err)
	}

	caption := extract.NoCaption
	textField := ""
	if name, textVal, ok := extract.TextField(rec); ok {
		textField = name
		caption = extract.Caption(textVal)
	}

	imagePath := filepath.Join(p.Dir, fmt.Sprintf("image_%d.jpg", index+1))
	if err := p.writeJPEG(imagePath, img); err != nil {
		return Result{}, fmt.Errorf("save image: %w", err)
	}
	captionPath := filepath.Join(p.Dir, fmt.Sprintf("caption_%d.txt", index+1))
	if err := os.WriteFile(captionPath, []byte(caption), 0o644); err != nil {
		return Result{}, fmt.Errorf("save caption: %w", err)
	}

	b := img.Bounds()
	return Result{
		Index:       index,
		ImagePath:   imagePath,
		CaptionPath: captionPath,
		ImageField:  imageField,
		TextField:   textField,
		Caption:     caption,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

func (p *Persister) writeJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	var opts *jpeg.Options
	if p.Quality > 0 {
		opts = &jpeg.Options{Quality: p.Quality}
	}
	if err := jpeg.Encode(f, img, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
