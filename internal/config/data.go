package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ResolveDataDate returns the snapshot date folder to load. An empty or
// "latest" date picks the newest non-empty YYYY-MM-DD folder under dataDir.
func ResolveDataDate(dataDir, dataDate string) (string, error) {
	if dataDate != "" && dataDate != "latest" {
		if !datePattern.MatchString(dataDate) {
			return "", fmt.Errorf("invalid data date %q (use YYYY-MM-DD or \"latest\")", dataDate)
		}
		return dataDate, nil
	}
	return detectLatestDate(dataDir)
}

// SnapshotDir joins the data directory with the resolved date folder.
func (c *Config) SnapshotDir() (string, error) {
	date, err := ResolveDataDate(c.Data.Directory, c.Data.Date)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.Data.Directory, date), nil
}

// detectLatestDate scans the data directory for date folders and returns the most recent one
func detectLatestDate(dataDir string) (string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return "", fmt.Errorf("reading data directory: %w", err)
	}

	var dates []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if datePattern.MatchString(name) {
			// Verify it's not empty (has at least one file/folder inside)
			subPath := filepath.Join(dataDir, name)
			subEntries, err := os.ReadDir(subPath)
			if err == nil && len(subEntries) > 0 {
				dates = append(dates, name)
			}
		}
	}

	if len(dates) == 0 {
		return "", fmt.Errorf("no date folders found in %s", dataDir)
	}

	// Sort descending (newest first) - YYYY-MM-DD format sorts lexicographically
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	return dates[0], nil
}
