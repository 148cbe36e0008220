package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/gosample/internal/extract"
	"github.com/hyperifyio/gosample/internal/hub"
	"github.com/hyperifyio/gosample/internal/persist"
	"github.com/hyperifyio/gosample/internal/sample"
)

// App wires the hub client and the sampler behind one Run call.
type App struct {
	cfg     Config
	hub     *hub.Client
	sampler *sample.Sampler
}

// ErrMissingToken is returned when no hub credential is configured. The run
// aborts before any dataset is touched. Per the exit code policy this maps
// to a non-zero process exit.
var ErrMissingToken = fmt.Errorf("hub access token not set")

// ErrLoginFailed is returned when the hub rejects the configured credential.
// Like ErrMissingToken it aborts the whole batch.
var ErrLoginFailed = fmt.Errorf("hub login failed")

// New builds the application from configuration. It stays off the network:
// the credential check happens at the start of Run so the failure modes land
// in the run log in batch order.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	client := &hub.Client{
		BaseURL:    cfg.HubURL,
		ViewerURL:  cfg.ViewerURL,
		Token:      cfg.Token,
		HTTPClient: newHubHTTPClient(),
		UserAgent:  cfg.UserAgent,
		PageSize:   cfg.PageSize,
	}
	return &App{
		cfg:     cfg,
		hub:     client,
		sampler: &sample.Sampler{Source: hubSource{client: client}},
	}, nil
}

func (a *App) Close() {
	if a.hub != nil && a.hub.HTTPClient != nil {
		a.hub.HTTPClient.CloseIdleConnections()
	}
}

// Run processes every configured dataset in order and logs the final tally.
// Dataset-level failures are isolated: one broken dataset never stops the
// batch, it only lowers the success count.
func (a *App) Run(ctx context.Context) error {
	log.Debug().Str("version", BuildVersion).Str("commit", BuildCommit).Msg("starting run")

	// 1) Credential gate. Nothing is attempted without a token.
	if strings.TrimSpace(a.cfg.Token) == "" {
		log.Error().Msg("hub token is missing; set HF_TOKEN before running")
		return ErrMissingToken
	}

	// 2) Login. A rejected token aborts the batch up front rather than
	// failing once per dataset.
	id, err := a.hub.WhoAmI(ctx)
	if err != nil {
		log.Error().Err(err).Msg("hub login failed")
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}
	log.Info().Str("account", id.Name).Str("type", id.Type).Msg("authenticated to hub")

	// 3) Per-dataset loop. Success means at least one pair was saved.
	succeeded := 0
	savedTotal := 0
	for _, dataset := range a.cfg.Datasets {
		log.Info().Str("dataset", dataset).Msg("starting to process dataset")
		saved := a.processDataset(ctx, dataset)
		savedTotal += saved
		if saved > 0 {
			succeeded++
			log.Info().Str("dataset", dataset).Int("saved", saved).Msg("completed processing dataset")
		} else {
			log.Error().Str("dataset", dataset).Msg("failed to process dataset")
		}
	}

	log.Info().
		Int("succeeded", succeeded).
		Int("total", len(a.cfg.Datasets)).
		Int("saved", savedTotal).
		Msg("successfully processed datasets")
	return nil
}

// processDataset samples one dataset end to end and returns how many pairs
// were saved. Every failure is logged here; none escape past this dataset.
func (a *App) processDataset(ctx context.Context, dataset string) int {
	folder := datasetFolder(dataset)
	dir := sampleDir(a.cfg.OutputRoot, dataset)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error().Err(err).Str("dataset", folder).Msg("create sample directory")
		return 0
	}
	log.Info().Str("dataset", folder).Str("dir", dir).Msg("created folder to save samples")

	log.Info().Str("dataset", folder).Int("total", a.cfg.TotalSamples).Msg("collecting samples from stream")
	records, err := a.sampler.Collect(ctx, dataset, a.cfg.TotalSamples)
	if err != nil {
		log.Error().Err(err).Str("dataset", folder).Msg("failed to load dataset")
		return 0
	}
	if len(records) == 0 {
		log.Error().Str("dataset", folder).Msg("no samples available")
		return 0
	}
	log.Info().Str("dataset", folder).Int("loaded", len(records)).Msg("successfully loaded samples")

	selected := a.sampler.Select(records, a.cfg.SampleSize)
	log.Info().Str("dataset", folder).Int("selected", len(selected)).Int("from", len(records)).Msg("randomly selected samples")

	p := &persist.Persister{Dir: dir, Quality: a.cfg.JPEGQuality}
	results := make([]persist.Result, 0, len(selected))
	for i, rec := range selected {
		res, err := p.Persist(rec, i)
		if err != nil {
			// Unusable records are expected in the wild; keep going.
			if errors.Is(err, persist.ErrNoImageField) || errors.Is(err, extract.ErrUnsupportedImage) {
				log.Warn().Err(err).Str("dataset", folder).Int("sample", i+1).Msg("skipping sample")
			} else {
				log.Error().Err(err).Str("dataset", folder).Int("sample", i+1).Msg("error processing sample")
			}
			continue
		}
		results = append(results, res)
		log.Info().Str("dataset", folder).Int("sample", i+1).Msg("sample saved successfully")
		log.Debug().Str("dataset", folder).Str("image", res.ImagePath).Str("caption", res.CaptionPath).Msg("saved pair paths")
	}

	if len(results) > 0 {
		a.writeInspectionAids(dir, dataset, len(records), results)
		if a.cfg.Archive {
			if err := archiveSampleDir(dir); err != nil {
				log.Warn().Err(err).Str("dataset", folder).Msg("archive samples")
			}
		}
	}
	log.Info().Str("dataset", folder).Int("saved", len(results)).Str("dir", dir).Msg("saved images and captions")
	return len(results)
}

// writeInspectionAids drops the sidecar manifest and the optional contact
// sheet next to the pairs. Both are conveniences, so failures only warn.
func (a *App) writeInspectionAids(dir, dataset string, collected int, results []persist.Result) {
	folder := datasetFolder(dataset)
	meta := manifestMeta{
		Dataset:     dataset,
		Requested:   a.cfg.SampleSize,
		Collected:   collected,
		Saved:       len(results),
		GeneratedAt: time.Now().UTC(),
	}
	entries := buildManifestEntries(results)
	if data, err := marshalManifestJSON(meta, entries); err == nil {
		if err := os.WriteFile(deriveManifestPath(dir), data, 0o644); err != nil {
			log.Warn().Err(err).Str("dataset", folder).Msg("write samples manifest")
		}
	} else {
		log.Warn().Err(err).Str("dataset", folder).Msg("encode samples manifest")
	}

	if a.cfg.DisableSheet {
		return
	}
	sheet := filepath.Join(dir, "contact_sheet.pdf")
	if err := writeContactSheet(sheet, folder, results); err != nil {
		log.Warn().Err(err).Str("dataset", folder).Msg("write contact sheet")
		return
	}
	log.Debug().Str("dataset", folder).Str("sheet", sheet).Msg("wrote contact sheet")
}

// hubSource is a small adapter around hub.Client to keep the app package
// decoupled from the concrete iterator type and simplify testing.
type hubSource struct {
	client *hub.Client
}

func (h hubSource) OpenRows(ctx context.Context, dataset, split string) (sample.Iterator, error) {
	if h.client == nil {
		return nil, fmt.Errorf("hub client not configured")
	}
	return h.client.OpenRows(ctx, dataset, split)
}
