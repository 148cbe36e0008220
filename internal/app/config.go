package app

// defaultUserAgent identifies the tool on every hub and viewer request.
const defaultUserAgent = "gosample/1.0 (+https://github.com/hyperifyio/gosample)"

// DefaultDatasets is the built-in list the tool verifies when nothing else
// is configured. All of them are image/caption pairs published under the
// same account, which keeps the detection heuristics honest.
var DefaultDatasets = []string{
	"dandelin/redcaps",
	"dandelin/cc12m",
	"dandelin/wit",
	"dandelin/vg",
	"dandelin/sbu",
	"dandelin/cocokt",
	"dandelin/cc3m",
}

// Config holds runtime configuration for the application.
type Config struct {
	// Token is the hub access credential. An empty token aborts the run
	// before any dataset is touched.
	Token string

	// Datasets to process, in order.
	Datasets []string

	// Sampling
	SampleSize   int // pairs saved per dataset
	TotalSamples int // records buffered per dataset before selection

	// OutputRoot is the parent of the samples_<name> directories.
	OutputRoot string

	// Hub endpoints; empty values mean the public services.
	HubURL    string
	ViewerURL string
	UserAgent string
	PageSize  int

	// JPEGQuality is the re-encode quality; 0 keeps the encoder default.
	JPEGQuality int

	// Logging
	LogFile      string
	LogMaxSizeMB int
	Verbose      bool

	// DisableSheet turns off the per-dataset contact sheet PDF.
	DisableSheet bool

	// Archive packs each sample directory into a checksummed tar.gz so the
	// folder can be handed around as one file.
	Archive bool
}
