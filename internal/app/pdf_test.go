package app

import (
    "bytes"
    "image"
    "image/color"
    "image/jpeg"
    "os"
    "path/filepath"
    "strings"
    "testing"

    "github.com/hyperifyio/gosample/internal/persist"
)

// writeTestJPEG writes a small solid-color JPEG and returns its path.
func writeTestJPEG(t *testing.T, dir, name string, w, h int) string {
    t.Helper()
    img := image.NewRGBA(image.Rect(0, 0, w, h))
    for y := 0; y < h; y++ {
        for x := 0; x < w; x++ {
            img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
        }
    }
    var buf bytes.Buffer
    if err := jpeg.Encode(&buf, img, nil); err != nil {
        t.Fatalf("encode jpeg: %v", err)
    }
    path := filepath.Join(dir, name)
    if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
        t.Fatalf("write jpeg: %v", err)
    }
    return path
}

func TestWriteContactSheet_ProducesPDF(t *testing.T) {
    dir := t.TempDir()
    img1 := writeTestJPEG(t, dir, "image_1.jpg", 32, 24)
    img2 := writeTestJPEG(t, dir, "image_2.jpg", 16, 16)

    results := []persist.Result{
        {Index: 0, ImagePath: img1, CaptionPath: filepath.Join(dir, "caption_1.txt"), ImageField: "image", TextField: "text", Caption: "a red square", Width: 32, Height: 24},
        {Index: 1, ImagePath: img2, CaptionPath: filepath.Join(dir, "caption_2.txt"), ImageField: "image", Caption: strings.Repeat("long caption ", 300), Width: 16, Height: 16},
    }

    out := filepath.Join(dir, "contact_sheet.pdf")
    if err := writeContactSheet(out, "cc12m", results); err != nil {
        t.Fatalf("writeContactSheet: %v", err)
    }

    b, err := os.ReadFile(out)
    if err != nil {
        t.Fatalf("read sheet: %v", err)
    }
    if !bytes.HasPrefix(b, []byte("%PDF-")) {
        t.Fatalf("output does not look like a PDF: %q", b[:min(16, len(b))])
    }
    if len(b) < 1000 {
        t.Fatalf("suspiciously small sheet: %d bytes", len(b))
    }
}

func TestWriteContactSheet_MissingImageFails(t *testing.T) {
    dir := t.TempDir()
    results := []persist.Result{{Index: 0, ImagePath: filepath.Join(dir, "missing.jpg"), Caption: "x"}}
    if err := writeContactSheet(filepath.Join(dir, "sheet.pdf"), "demo", results); err == nil {
        t.Fatal("expected an error for a missing image file")
    }
}

func TestFitBox(t *testing.T) {
    cases := []struct {
        name           string
        w, h           float64
        wantW, wantH   float64
    }{
        {name: "wide image bound by width", w: 400, h: 100, wantW: 180, wantH: 45},
        {name: "tall image bound by height", w: 100, h: 400, wantW: 37.5, wantH: 150},
        {name: "small image scales up", w: 18, h: 15, wantW: 180, wantH: 150},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            w, h := fitBox(tc.w, tc.h, 180, 150)
            if w != tc.wantW || h != tc.wantH {
                t.Fatalf("fitBox(%v,%v) = %v,%v want %v,%v", tc.w, tc.h, w, h, tc.wantW, tc.wantH)
            }
        })
    }
}
