package persist

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperifyio/gosample/internal/extract"
	"github.com/hyperifyio/gosample/internal/hub"
)

// encodePNG renders a small solid image so tests have real decodable bytes.
func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestPersist_RawBytesAndStringCaption(t *testing.T) {
	dir := t.TempDir()
	p := &Persister{Dir: dir}
	rec := hub.Record{
		"image":   encodePNG(t, 8, 6),
		"caption": "a red square",
	}

	res, err := p.Persist(rec, 0)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if res.ImagePath != filepath.Join(dir, "image_1.jpg") {
		t.Fatalf("unexpected image path %q", res.ImagePath)
	}
	if res.CaptionPath != filepath.Join(dir, "caption_1.txt") {
		t.Fatalf("unexpected caption path %q", res.CaptionPath)
	}
	if got := readFile(t, res.CaptionPath); got != "a red square" {
		t.Fatalf("caption file content %q", got)
	}
	if res.ImageField != "image" || res.TextField != "caption" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.Width != 8 || res.Height != 6 {
		t.Fatalf("unexpected dimensions %dx%d", res.Width, res.Height)
	}

	f, err := os.Open(res.ImagePath)
	if err != nil {
		t.Fatalf("open saved image: %v", err)
	}
	defer f.Close()
	_, format, err := image.Decode(f)
	if err != nil || format != "jpeg" {
		t.Fatalf("saved image not decodable jpeg: format=%q err=%v", format, err)
	}
}

func TestPersist_ContainerPayload(t *testing.T) {
	dir := t.TempDir()
	p := &Persister{Dir: dir}
	rec := hub.Record{
		"img":  map[string]any{"bytes": encodePNG(t, 4, 4), "path": "orig.png"},
		"text": "from a container",
	}

	res, err := p.Persist(rec, 2)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if filepath.Base(res.ImagePath) != "image_3.jpg" || filepath.Base(res.CaptionPath) != "caption_3.txt" {
		t.Fatalf("expected 1-based numbering from index, got %q / %q", res.ImagePath, res.CaptionPath)
	}
	if res.ImageField != "img" || res.TextField != "text" {
		t.Fatalf("unexpected fields: %+v", res)
	}
}

func TestPersist_ListCaptionRendering(t *testing.T) {
	dir := t.TempDir()
	p := &Persister{Dir: dir}
	rec := hub.Record{
		"image":    encodePNG(t, 4, 4),
		"captions": []any{"first line", "second line"},
	}

	res, err := p.Persist(rec, 0)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	want := "[0] first line\n[1] second line"
	if got := readFile(t, res.CaptionPath); got != want {
		t.Fatalf("caption file content %q, want %q", got, want)
	}
}

func TestPersist_DefaultCaption(t *testing.T) {
	dir := t.TempDir()
	p := &Persister{Dir: dir}
	rec := hub.Record{"image": encodePNG(t, 4, 4)}

	res, err := p.Persist(rec, 0)
	if err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if got := readFile(t, res.CaptionPath); got != extract.NoCaption {
		t.Fatalf("caption file content %q, want %q", got, extract.NoCaption)
	}
	if res.TextField != "" {
		t.Fatalf("expected empty text field, got %q", res.TextField)
	}
}

func TestPersist_NoImageFieldWritesNothing(t *testing.T) {
	dir := t.TempDir()
	p := &Persister{Dir: dir}
	rec := hub.Record{"caption": "text but no image"}

	_, err := p.Persist(rec, 0)
	if !errors.Is(err, ErrNoImageField) {
		t.Fatalf("expected ErrNoImageField, got %v", err)
	}
	assertEmptyDir(t, dir)
}

func TestPersist_UnsupportedPayloadWritesNothing(t *testing.T) {
	dir := t.TempDir()
	p := &Persister{Dir: dir}
	rec := hub.Record{"image": "https://example.com/not-bytes.png"}

	_, err := p.Persist(rec, 0)
	if !errors.Is(err, extract.ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	assertEmptyDir(t, dir)
}

func TestPersist_UndecodableBytesWritesNothing(t *testing.T) {
	dir := t.TempDir()
	p := &Persister{Dir: dir}
	rec := hub.Record{"image": []byte("definitely not an image")}

	if _, err := p.Persist(rec, 0); err == nil {
		t.Fatal("expected a decode error")
	}
	assertEmptyDir(t, dir)
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files, found %d", len(entries))
	}
}
