package main

import (
	"path/filepath"
	"strings"
)

// outputPath resolves a relative output path against the configured output
// root. Absolute paths are taken as-is.
func outputPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.Run.OutputRoot, path)
}

// derivedPath appends a stage suffix to a path's stem: a/b.parquet -> a/b<suffix>.parquet.
func derivedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// stageIdentity returns the base id and stage name used for store keys,
// preferring the configured run identity and falling back to the output stem.
func stageIdentity(stem string) (baseID, stage string) {
	baseID, stage = cfg.Run.BaseID, cfg.Run.Stage
	if baseID == "" {
		baseID = stem
	}
	if stage == "" {
		stage = "signal"
	}
	return baseID, stage
}
