package address

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"emotiview/internal/artifact"
	"emotiview/internal/store"
)

// EmitSignal validates and writes a signal descriptor under key. The
// descriptor is the completeness marker consumers trust, so callers must
// only emit it after every per-condition file has been written.
func EmitSignal(st store.Store, key string, sig *artifact.Signal) error {
	if sig.FolderPath == "" {
		return artifact.SchemaErr("folder_path", "signal descriptor needs the output folder path")
	}
	if !filepath.IsAbs(sig.FolderPath) {
		return artifact.SchemaErr("folder_path", "folder path %q is not absolute", sig.FolderPath)
	}
	if sig.Conditions < 1 {
		return artifact.SchemaErr("conditions", "descriptor reports %d condition files", sig.Conditions)
	}
	data, err := artifact.EncodeSignal(sig)
	if err != nil {
		return fmt.Errorf("encode signal: %w", err)
	}
	return st.Put(key, data)
}

// SignalKey returns the descriptor key for a stage run: "<base>_<stage>.parquet"
// at the store root, deterministic so consumers can find it without listing.
func SignalKey(baseID, stage string) string {
	return fmt.Sprintf("%s_%s.parquet", baseID, stage)
}

// ConditionKey returns the key of the idx-th (0-based) per-condition file,
// inside the stage-named folder: "<base>_<stage>/<base>_<stage><idx+1>.parquet".
func ConditionKey(baseID, stage string, idx int) string {
	name := fmt.Sprintf("%s_%s", baseID, stage)
	return fmt.Sprintf("%s/%s%d.parquet", name, name, idx+1)
}

// ResolveFolder returns the output folder the descriptor points at. A
// descriptor without folder_path is rejected; guessing from the signal
// filename is only available through ResolveFolderLegacy.
func ResolveFolder(sig *artifact.Signal) (string, error) {
	if sig.FolderPath == "" {
		return "", artifact.SchemaErr("folder_path", "signal descriptor has no folder_path; re-emit the signal or use the legacy fallback explicitly")
	}
	return sig.FolderPath, nil
}

// ResolveFolderLegacy derives the folder from the signal filename when the
// descriptor predates folder_path: "<dir>/<stem>" for "<dir>/<stem>.parquet".
// This is legacy behavior kept for old artifacts; the derivation is logged
// so runs depending on it are visible.
func ResolveFolderLegacy(signalPath string, sig *artifact.Signal, log *slog.Logger) (string, error) {
	if folder, err := ResolveFolder(sig); err == nil {
		return folder, nil
	}
	stem := strings.TrimSuffix(filepath.Base(signalPath), filepath.Ext(signalPath))
	folder, err := filepath.Abs(filepath.Join(filepath.Dir(signalPath), stem))
	if err != nil {
		return "", err
	}
	if log != nil {
		log.Warn("signal descriptor has no folder_path, deriving folder from filename",
			"signal", signalPath, "derived", folder)
	}
	return folder, nil
}
