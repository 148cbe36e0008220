package app

import (
    "os"
    "strconv"
    "strings"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
    if cfg == nil { return }

    if cfg.Token == "" {
        // Support both HF_TOKEN and HF_API_KEY; prefer HF_TOKEN if set
        v := os.Getenv("HF_TOKEN")
        if v == "" { v = os.Getenv("HF_API_KEY") }
        cfg.Token = v
    }

    if len(cfg.Datasets) == 0 {
        // GOSAMPLE_DATASETS is a comma-separated list of dataset ids
        if s := strings.TrimSpace(os.Getenv("GOSAMPLE_DATASETS")); s != "" {
            parts := strings.Split(s, ",")
            list := make([]string, 0, len(parts))
            for _, p := range parts {
                if v := strings.TrimSpace(p); v != "" { list = append(list, v) }
            }
            cfg.Datasets = list
        }
    }

    if cfg.SampleSize == 0 {
        cfg.SampleSize = envPositiveInt("GOSAMPLE_SAMPLE_SIZE")
    }
    if cfg.TotalSamples == 0 {
        cfg.TotalSamples = envPositiveInt("GOSAMPLE_TOTAL_SAMPLES")
    }
    if cfg.OutputRoot == "" {
        cfg.OutputRoot = os.Getenv("GOSAMPLE_OUTPUT_ROOT")
    }

    if cfg.HubURL == "" {
        cfg.HubURL = os.Getenv("GOSAMPLE_HUB_URL")
    }
    if cfg.ViewerURL == "" {
        cfg.ViewerURL = os.Getenv("GOSAMPLE_VIEWER_URL")
    }
    if cfg.UserAgent == "" {
        cfg.UserAgent = os.Getenv("GOSAMPLE_USER_AGENT")
    }
    if cfg.PageSize == 0 {
        cfg.PageSize = envPositiveInt("GOSAMPLE_PAGE_SIZE")
    }
    if cfg.JPEGQuality == 0 {
        cfg.JPEGQuality = envPositiveInt("GOSAMPLE_JPEG_QUALITY")
    }

    if cfg.LogFile == "" {
        cfg.LogFile = os.Getenv("GOSAMPLE_LOG_FILE")
    }
    if cfg.LogMaxSizeMB == 0 {
        cfg.LogMaxSizeMB = envPositiveInt("GOSAMPLE_LOG_MAX_SIZE_MB")
    }

    // Booleans
    setBool := func(dst *bool, envKey string) {
        if *dst { return }
        if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
            if s == "1" || s == "true" || s == "yes" || s == "on" {
                *dst = true
            }
        }
    }
    setBool(&cfg.Verbose, "GOSAMPLE_VERBOSE")
    setBool(&cfg.DisableSheet, "GOSAMPLE_NO_SHEET")
    setBool(&cfg.Archive, "GOSAMPLE_ARCHIVE")
}

func envPositiveInt(key string) int {
    s := strings.TrimSpace(os.Getenv(key))
    if s == "" {
        return 0
    }
    n, err := strconv.Atoi(s)
    if err != nil || n <= 0 {
        return 0
    }
    return n
}
