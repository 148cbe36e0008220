package app

import (
	"path/filepath"
	"testing"
)

func TestDatasetFolder(t *testing.T) {
	cases := []struct {
		name    string
		dataset string
		want    string
	}{
		{name: "owner and name", dataset: "dandelin/cc12m", want: "cc12m"},
		{name: "bare name", dataset: "redcaps", want: "redcaps"},
		{name: "trailing slash", dataset: "dandelin/wit/", want: "wit"},
		{name: "surrounding space", dataset: "  dandelin/vg  ", want: "vg"},
		{name: "empty", dataset: "", want: "dataset"},
		{name: "only slashes", dataset: "///", want: "dataset"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := datasetFolder(tc.dataset); got != tc.want {
				t.Fatalf("datasetFolder(%q) = %q, want %q", tc.dataset, got, tc.want)
			}
		})
	}
}

func TestSampleDir(t *testing.T) {
	if got := sampleDir("/tmp/out", "dandelin/cc12m"); got != filepath.Join("/tmp/out", "samples_cc12m") {
		t.Fatalf("sampleDir = %q", got)
	}
	if got := sampleDir("", "redcaps"); got != filepath.Join(".", "samples_redcaps") {
		t.Fatalf("sampleDir with empty root = %q", got)
	}
}
