package app

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hyperifyio/gosample/internal/persist"
)

func TestBuildManifestEntries_ComputesSHA256AndChars(t *testing.T) {
	results := []persist.Result{
		{Index: 0, ImagePath: "/out/image_1.jpg", CaptionPath: "/out/caption_1.txt", ImageField: "image", TextField: "text", Caption: "hello", Width: 8, Height: 6},
		{Index: 1, ImagePath: "/out/image_2.jpg", CaptionPath: "/out/caption_2.txt", ImageField: "image", Caption: "world\n", Width: 4, Height: 4},
	}
	entries := buildManifestEntries(results)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries; got %d", len(entries))
	}
	if entries[0].Index != 1 || entries[1].Index != 2 {
		t.Fatalf("expected 1-based indexes: %+v", entries)
	}
	if entries[0].Image != "image_1.jpg" || entries[0].Caption != "caption_1.txt" {
		t.Fatalf("expected base names, got %+v", entries[0])
	}
	if entries[0].Chars != 5 || entries[1].Chars != 6 {
		t.Fatalf("unexpected char counts: %+v", entries)
	}
	if entries[0].SHA256 == "" || entries[0].SHA256 == entries[1].SHA256 {
		t.Fatalf("expected distinct non-empty digests: %+v", entries)
	}
	if entries[0].SHA256 != computeSHA256Hex("hello") {
		t.Fatalf("digest does not match caption text")
	}
}

func TestMarshalManifestJSON_Shape(t *testing.T) {
    meta := manifestMeta{
        Dataset:     "dandelin/cc12m",
        Requested:   10,
        Collected:   100,
        Saved:       1,
        GeneratedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
    }
    entries := []manifestEntry{{Index: 1, Image: "image_1.jpg", Caption: "caption_1.txt", SHA256: "abcd", Chars: 5, Width: 8, Height: 6, ImageField: "image"}}
    b, err := marshalManifestJSON(meta, entries)
    if err != nil {
        t.Fatalf("marshal: %v", err)
    }

    var decoded struct {
        Meta struct {
            Dataset string `json:"dataset"`
            Saved   int    `json:"saved"`
        } `json:"meta"`
        Samples []map[string]any `json:"samples"`
    }
    if err := json.Unmarshal(b, &decoded); err != nil {
        t.Fatalf("round trip: %v", err)
    }
    if decoded.Meta.Dataset != "dandelin/cc12m" || decoded.Meta.Saved != 1 {
        t.Fatalf("unexpected meta: %+v", decoded.Meta)
    }
    if len(decoded.Samples) != 1 || decoded.Samples[0]["image"] != "image_1.jpg" {
        t.Fatalf("unexpected samples: %+v", decoded.Samples)
    }
    if _, ok := decoded.Samples[0]["text_field"]; ok {
        t.Fatalf("expected empty text_field to be omitted; got:\n%s", b)
    }
    if !strings.Contains(string(b), "\n  ") {
        t.Fatalf("expected indented output; got:\n%s", b)
    }
}

func TestDeriveManifestPath(t *testing.T) {
    if got := deriveManifestPath("/out/samples_cc12m"); !strings.HasSuffix(got, "samples.json") {
        t.Fatalf("unexpected manifest path %q", got)
    }
}
