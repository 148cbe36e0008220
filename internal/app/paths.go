package app

import (
    "path/filepath"
    "strings"
)

// datasetFolder returns the trailing path segment of a dataset id, e.g.
// "dandelin/cc12m" becomes "cc12m". The segment names the output directory
// and tags every log line for that dataset.
func datasetFolder(dataset string) string {
    s := strings.TrimSpace(dataset)
    s = strings.Trim(s, "/")
    if i := strings.LastIndex(s, "/"); i >= 0 {
        s = s[i+1:]
    }
    if s == "" { return "dataset" }
    return s
}

// sampleDir returns the directory one dataset's pairs are written to.
func sampleDir(root, dataset string) string {
    r := strings.TrimSpace(root)
    if r == "" { r = "." }
    return filepath.Join(r, "samples_"+datasetFolder(dataset))
}
