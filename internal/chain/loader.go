package chain

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// LoadSnapshot reads a single chain snapshot from disk. Plain JSON and
// zstd-compressed JSON (.json.zst) are supported.
func LoadSnapshot(path string) (*Snapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader for %s: %w", path, err)
		}
		defer dec.Close()
		reader = dec
	}

	var snap Snapshot
	if err := json.NewDecoder(reader).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", path, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("validating snapshot %s: %w", path, err)
	}
	return &snap, nil
}

// WriteSnapshot writes a snapshot as zstd-compressed JSON when the path ends
// in .zst, plain JSON otherwise.
func WriteSnapshot(path string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot %s: %w", path, err)
	}
	defer file.Close()

	var writer io.Writer = file
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(file, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return fmt.Errorf("creating zstd writer for %s: %w", path, err)
		}
		defer enc.Close()
		writer = enc
	}

	if err := json.NewEncoder(writer).Encode(snap); err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", path, err)
	}
	return nil
}

// LoadDir walks a directory and loads every snapshot file found, keyed by
// underlying symbol. Unreadable files are logged and skipped so one bad
// file does not sink a batch scan.
func LoadDir(dir string, logger *zap.Logger) (map[string]*Snapshot, error) {
	snaps := make(map[string]*Snapshot)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".json") && !strings.HasSuffix(path, ".json.zst") {
			return nil
		}

		snap, err := LoadSnapshot(path)
		if err != nil {
			logger.Warn("skipping unreadable snapshot", zap.String("path", path), zap.Error(err))
			return nil
		}

		snaps[snap.Underlying] = snap
		logger.Info("loaded snapshot",
			zap.String("underlying", snap.Underlying),
			zap.Float64("spot", snap.Spot),
			zap.Int("expirations", len(snap.Expirations)),
		)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking snapshot directory %s: %w", dir, err)
	}

	if len(snaps) == 0 {
		return nil, fmt.Errorf("no snapshot files found in %s", dir)
	}
	return snaps, nil
}

// Symbols returns the loaded underlying symbols in sorted order.
func Symbols(snaps map[string]*Snapshot) []string {
	out := make([]string, 0, len(snaps))
	for sym := range snaps {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}
