package hub

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
)

// RowIterator is a pull-based stream over one split's rows. It pages through
// the viewer's /rows endpoint on demand and materializes image asset
// references into inline byte containers, so consumers see self-contained
// records regardless of how the viewer shipped them.
type RowIterator struct {
	client  *Client
	dataset string
	config  string
	split   string

	offset   int
	total    int
	fetched  bool // at least one page retrieved; total is meaningful
	buf      []rowEnvelope
	features []Feature
}

type rowsResponse struct {
	Features     []Feature     `json:"features"`
	Rows         []rowEnvelope `json:"rows"`
	NumRowsTotal int           `json:"num_rows_total"`
}

type rowEnvelope struct {
	RowIdx int            `json:"row_idx"`
	Row    map[string]any `json:"row"`
}

// Split reports the config/split the iterator is bound to.
func (it *RowIterator) Split() Split {
	return Split{Dataset: it.dataset, Config: it.config, Split: it.split}
}

// Features returns the column descriptions from the most recent page, or nil
// before the first pull.
func (it *RowIterator) Features() []Feature { return it.features }

// Next returns the next record, or io.EOF once the split is exhausted. Other
// errors affect only the current pull: a failed page fetch is retried on the
// following call, and a failed asset resolution consumes just that one row.
func (it *RowIterator) Next(ctx context.Context) (Record, error) {
	if len(it.buf) == 0 {
		if it.fetched && it.offset >= it.total {
			return nil, io.EOF
		}
		if err := it.fetchPage(ctx); err != nil {
			return nil, err
		}
		if len(it.buf) == 0 {
			return nil, io.EOF
		}
	}
	env := it.buf[0]
	it.buf = it.buf[1:]

	rec, err := it.client.resolveAssets(ctx, env.Row)
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", env.RowIdx, err)
	}
	return rec, nil
}

func (it *RowIterator) fetchPage(ctx context.Context) error {
	q := url.Values{}
	q.Set("dataset", it.dataset)
	q.Set("config", it.config)
	q.Set("split", it.split)
	q.Set("offset", strconv.Itoa(it.offset))
	q.Set("length", strconv.Itoa(it.client.pageSize()))

	var rr rowsResponse
	if err := it.client.getJSON(ctx, it.client.viewerURL()+"/rows?"+q.Encode(), &rr); err != nil {
		return fmt.Errorf("fetch rows at offset %d: %w", it.offset, err)
	}
	it.fetched = true
	it.total = rr.NumRowsTotal
	it.features = rr.Features
	it.buf = rr.Rows
	it.offset += len(rr.Rows)
	return nil
}

// resolveAssets replaces {"src": url, ...} cells with {"bytes": ..., "path":
// ...} containers holding the downloaded asset. That is the shape streaming
// consumers of undecoded image columns get, and it keeps everything after
// the hub boundary free of network concerns. Non-asset values pass through.
func (c *Client) resolveAssets(ctx context.Context, row map[string]any) (Record, error) {
	rec := make(Record, len(row))
	for key, val := range row {
		cell, ok := val.(map[string]any)
		if !ok {
			rec[key] = val
			continue
		}
		src, ok := cell["src"].(string)
		if !ok || src == "" {
			rec[key] = val
			continue
		}
		data, err := c.fetchAsset(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("resolve %s asset: %w", key, err)
		}
		rec[key] = map[string]any{
			"bytes": data,
			"path":  assetName(src),
		}
	}
	return rec, nil
}

func assetName(src string) string {
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(src)
}
