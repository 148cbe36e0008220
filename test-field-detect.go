package main

import (
	"fmt"

	"github.com/hyperifyio/gosample/internal/extract"
	"github.com/hyperifyio/gosample/internal/hub"
)

func main() {
	// Hand-made records covering the detection paths
	records := []hub.Record{
		{"image": []byte{0xFF, 0xD8}, "caption": "a cat on a mat"},
		{"picture": map[string]any{"bytes": "aGVsbG8="}, "title": "fallback via container"},
		{"text": "caption only, no image anywhere"},
		{"captions": []any{"first", "second"}, "img": []byte{0x89, 0x50}},
	}

	for i, rec := range records {
		name, _, ok := extract.ImageField(rec)
		fmt.Printf("record %d: image field=%q found=%v\n", i, name, ok)

		tname, tval, ok := extract.TextField(rec)
		if !ok {
			fmt.Printf("record %d: caption=%q (default)\n", i, extract.NoCaption)
			fmt.Println()
			continue
		}
		fmt.Printf("record %d: text field=%q\n", i, tname)
		fmt.Printf("   caption: %s\n", extract.Caption(tval))
		fmt.Println()
	}
}
