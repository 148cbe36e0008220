package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// hubstub fakes just enough of the hub and dataset viewer APIs to exercise
// the whole batch offline: whoami, splits, paginated rows and image assets.
// Any dataset name works; every split serves the same synthetic rows.
func main() {
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8082"
	}
	rows := 120
	if s := strings.TrimSpace(os.Getenv("ROWS")); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			rows = n
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/whoami-v2", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid credentials in Authorization header"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"name": "stub-user", "type": "user"})
	})

	mux.HandleFunc("/splits", func(w http.ResponseWriter, r *http.Request) {
		dataset := r.URL.Query().Get("dataset")
		if strings.TrimSpace(dataset) == "" {
			http.Error(w, `{"error":"Parameter 'dataset' is required"}`, http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"splits": []map[string]string{
				{"dataset": dataset, "config": "default", "split": "train"},
				{"dataset": dataset, "config": "default", "split": "validation"},
			},
		})
	})

	mux.HandleFunc("/rows", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if strings.TrimSpace(q.Get("dataset")) == "" {
			http.Error(w, `{"error":"Parameter 'dataset' is required"}`, http.StatusUnprocessableEntity)
			return
		}
		offset, _ := strconv.Atoi(q.Get("offset"))
		length, _ := strconv.Atoi(q.Get("length"))
		if length <= 0 || length > 100 {
			length = 100
		}
		end := offset + length
		if end > rows {
			end = rows
		}
		out := make([]map[string]any, 0, end-offset)
		for i := offset; i < end; i++ {
			out = append(out, map[string]any{
				"row_idx": i,
				"row": map[string]any{
					"image": map[string]any{
						"src":    "http://" + r.Host + "/assets/img_" + strconv.Itoa(i) + ".png",
						"height": 64,
						"width":  64,
					},
					"caption": "synthetic caption " + strconv.Itoa(i),
				},
				"truncated_cells": []string{},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"features": []map[string]any{
				{"name": "image", "type": map[string]string{"_type": "Image"}},
				{"name": "caption", "type": map[string]string{"dtype": "string", "_type": "Value"}},
			},
			"rows":           out,
			"num_rows_total": rows,
		})
	})

	mux.HandleFunc("/assets/", func(w http.ResponseWriter, r *http.Request) {
		var idx int
		if _, err := fmt.Sscanf(r.URL.Path, "/assets/img_%d.png", &idx); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(renderPNG(idx))
	})

	log.Printf("hubstub listening on %s (%d rows per split)", addr, rows)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}

// renderPNG produces a 64x64 solid tile whose color derives from the row
// index, so saved samples are visually distinguishable.
func renderPNG(idx int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	c := color.RGBA{R: uint8(37 * idx), G: uint8(91 * idx), B: uint8(173 * idx), A: 255}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
