package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hyperifyio/gosample/internal/hub"
)

func main() {
	dataset := "dandelin/cc12m"
	if len(os.Args) > 1 { dataset = os.Args[1] }
	client := &hub.Client{
		BaseURL:    os.Getenv("GOSAMPLE_HUB_URL"),
		ViewerURL:  os.Getenv("GOSAMPLE_VIEWER_URL"),
		Token:      os.Getenv("HF_TOKEN"),
		HTTPClient: &http.Client{Timeout: 20 * time.Second},
		UserAgent:  "debughub/1.0",
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	splits, err := client.Splits(ctx, dataset)
	fmt.Println("splits err:", err)
	for i, s := range splits {
		fmt.Printf("%d. config=%s split=%s\n", i+1, s.Config, s.Split)
	}
	if len(splits) == 0 { return }

	it, err := client.OpenRows(ctx, dataset, "")
	if err != nil {
		fmt.Println("open rows:", err)
		return
	}
	rec, err := it.Next(ctx)
	if err != nil {
		fmt.Println("first row:", err)
		return
	}
	for _, f := range it.Features() {
		fmt.Printf("column %q type %s\n", f.Name, string(f.Type))
	}
	for key, val := range rec {
		fmt.Printf("field %q -> %T\n", key, val)
	}
}
