package app

import (
    "fmt"
    "os"
    "strings"

    "github.com/jung-kurt/gofpdf"

    "github.com/hyperifyio/gosample/internal/persist"
)

// writeContactSheet renders one page per saved pair: the re-encoded JPEG on
// top, the caption below. This is intentionally simple and does not attempt
// real layout; the sheet exists so a human can eyeball a dataset without
// opening files one by one.
func writeContactSheet(outPath string, title string, results []persist.Result) error {
    if strings.TrimSpace(outPath) == "" {
        return fmt.Errorf("contact sheet path is empty")
    }
    pdf := gofpdf.New("P", "mm", "A4", "")
    pdf.SetTitle(title, false)

    const (
        imgX    = 15.0
        imgY    = 30.0
        boxW    = 180.0
        boxH    = 150.0
        maxText = 2000 // caption characters per page before truncation
    )

    for _, r := range results {
        pdf.AddPage()
        pdf.SetFont("Helvetica", "B", 14)
        pdf.CellFormat(0, 8, fmt.Sprintf("%s / sample %d", title, r.Index+1), "", 1, "L", false, 0, "")
        pdf.SetFont("Helvetica", "", 9)
        pdf.CellFormat(0, 6, fmt.Sprintf("image field: %s   text field: %s   %dx%d px",
            r.ImageField, textFieldLabel(r.TextField), r.Width, r.Height), "", 1, "L", false, 0, "")

        f, err := os.Open(r.ImagePath)
        if err != nil {
            return fmt.Errorf("open image: %w", err)
        }
        name := fmt.Sprintf("sample-%d", r.Index+1)
        pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "JPG"}, f)
        f.Close()
        w, h := fitBox(float64(r.Width), float64(r.Height), boxW, boxH)
        pdf.ImageOptions(name, imgX, imgY, w, h, false, gofpdf.ImageOptions{ImageType: "JPG"}, 0, "")

        pdf.SetXY(imgX, imgY+boxH+8)
        pdf.SetFont("Helvetica", "", 10)
        caption := r.Caption
        if len(caption) > maxText {
            caption = caption[:maxText] + " [...]"
        }
        pdf.MultiCell(boxW, 5, caption, "", "L", false)
    }

    return pdf.OutputFileAndClose(outPath)
}

// fitBox scales w x h to fit inside maxW x maxH preserving aspect ratio.
func fitBox(w, h, maxW, maxH float64) (float64, float64) {
    if w <= 0 || h <= 0 {
        return maxW, 0 // let the renderer keep aspect from the file itself
    }
    scale := maxW / w
    if s := maxH / h; s < scale {
        scale = s
    }
    return w * scale, h * scale
}

func textFieldLabel(s string) string {
    if s == "" { return "(none)" }
    return s
}
