package app

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Nested sections improve readability and map naturally to env variables.
type FileConfig struct {
    Token string `yaml:"token" json:"token"`

    Datasets []string `yaml:"datasets" json:"datasets"`

    Samples struct {
        Size  int `yaml:"size" json:"size"`
        Total int `yaml:"total" json:"total"`
    } `yaml:"samples" json:"samples"`

    Output string `yaml:"output" json:"output"`

    Hub struct {
        URL       string `yaml:"url" json:"url"`
        ViewerURL string `yaml:"viewerURL" json:"viewerURL"`
        UA        string `yaml:"ua" json:"ua"`
        PageSize  int    `yaml:"pageSize" json:"pageSize"`
    } `yaml:"hub" json:"hub"`

    JPEGQuality int `yaml:"jpegQuality" json:"jpegQuality"`

    Log struct {
        File      string `yaml:"file" json:"file"`
        MaxSizeMB int    `yaml:"maxSizeMB" json:"maxSizeMB"`
        Verbose   bool   `yaml:"verbose" json:"verbose"`
    } `yaml:"log" json:"log"`

    Sheet *struct {
        Enable *bool `yaml:"enable" json:"enable"`
    } `yaml:"sheet" json:"sheet"`

    Archive bool `yaml:"archive" json:"archive"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
    var fc FileConfig
    b, err := os.ReadFile(path)
    if err != nil {
        return fc, err
    }
    switch ext := filepath.Ext(path); ext {
    case ".yaml", ".yml":
        if err := yaml.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse yaml: %w", err)
        }
    case ".json":
        if err := json.Unmarshal(b, &fc); err != nil {
            return fc, fmt.Errorf("parse json: %w", err)
        }
    default:
        // Try YAML then JSON
        if err := yaml.Unmarshal(b, &fc); err != nil {
            if jerr := json.Unmarshal(b, &fc); jerr != nil {
                return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
            }
        }
    }
    return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// that are currently unset/zero in cfg. Env has already been applied when
// this runs, so file values never clobber the environment.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
    if cfg == nil { return }

    if cfg.Token == "" && fc.Token != "" { cfg.Token = fc.Token }
    if len(cfg.Datasets) == 0 && len(fc.Datasets) > 0 { cfg.Datasets = append([]string{}, fc.Datasets...) }

    if cfg.SampleSize == 0 && fc.Samples.Size > 0 { cfg.SampleSize = fc.Samples.Size }
    if cfg.TotalSamples == 0 && fc.Samples.Total > 0 { cfg.TotalSamples = fc.Samples.Total }
    if cfg.OutputRoot == "" && fc.Output != "" { cfg.OutputRoot = fc.Output }

    if cfg.HubURL == "" && fc.Hub.URL != "" { cfg.HubURL = fc.Hub.URL }
    if cfg.ViewerURL == "" && fc.Hub.ViewerURL != "" { cfg.ViewerURL = fc.Hub.ViewerURL }
    if cfg.UserAgent == "" && fc.Hub.UA != "" { cfg.UserAgent = fc.Hub.UA }
    if cfg.PageSize == 0 && fc.Hub.PageSize > 0 { cfg.PageSize = fc.Hub.PageSize }

    if cfg.JPEGQuality == 0 && fc.JPEGQuality > 0 { cfg.JPEGQuality = fc.JPEGQuality }

    if cfg.LogFile == "" && fc.Log.File != "" { cfg.LogFile = fc.Log.File }
    if cfg.LogMaxSizeMB == 0 && fc.Log.MaxSizeMB > 0 { cfg.LogMaxSizeMB = fc.Log.MaxSizeMB }
    if !cfg.Verbose && fc.Log.Verbose { cfg.Verbose = true }

    // Contact sheet toggle: default on; file config can disable with enable=false
    if fc.Sheet != nil && fc.Sheet.Enable != nil && !*fc.Sheet.Enable {
        cfg.DisableSheet = true
    }

    if !cfg.Archive && fc.Archive { cfg.Archive = true }
}

// ApplyDefaults fills any field still unset after env and file layering with
// the built-in defaults.
func ApplyDefaults(cfg *Config) {
    if cfg == nil { return }

    if len(cfg.Datasets) == 0 { cfg.Datasets = append([]string{}, DefaultDatasets...) }
    if cfg.SampleSize == 0 { cfg.SampleSize = 10 }
    if cfg.TotalSamples == 0 { cfg.TotalSamples = 100 }
    if cfg.OutputRoot == "" { cfg.OutputRoot = "." }
    if cfg.UserAgent == "" { cfg.UserAgent = defaultUserAgent }
    if cfg.LogFile == "" { cfg.LogFile = "gosample.log" }
    if cfg.LogMaxSizeMB == 0 { cfg.LogMaxSizeMB = 10 }
}

// ValidateConfig performs minimal schema validation for required settings.
// The token is deliberately not checked here: the driver reports a missing
// credential itself so the failure lands in the run log.
func ValidateConfig(cfg Config) error {
    if len(cfg.Datasets) == 0 {
        return errors.New("config: no datasets configured")
    }
    for _, d := range cfg.Datasets {
        if strings.TrimSpace(d) == "" {
            return errors.New("config: blank dataset id")
        }
    }
    if cfg.SampleSize < 0 || cfg.TotalSamples < 0 || cfg.PageSize < 0 {
        return errors.New("config: negative limits are not allowed")
    }
    if cfg.JPEGQuality < 0 || cfg.JPEGQuality > 100 {
        return errors.New("config: jpeg quality must be between 0 and 100")
    }
    return nil
}
