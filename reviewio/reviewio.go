// Package reviewio reads review datasets and writes analysis results as JSON
// files, with atomic replacement on write.
package reviewio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/theimaginaryfoundation/review-radar/insights"
)

// ReadReviews loads a JSON review dataset. Two shapes are accepted: a bare
// array of reviews, or an object with a "reviews" key (the export shape of
// the analysis endpoint request).
func ReadReviews(path string) ([]insights.Review, error) {
	if path == "" {
		return nil, errors.New("ReadReviews: path is empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ReadReviews: %w", err)
	}

	var reviews []insights.Review
	if err := json.Unmarshal(b, &reviews); err == nil {
		return reviews, nil
	}

	var wrapped struct {
		Reviews []insights.Review `json:"reviews"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil, fmt.Errorf("ReadReviews: unmarshal %s: %w", path, err)
	}
	return wrapped.Reviews, nil
}

// WriteAnalysis writes an analysis result to path atomically.
func WriteAnalysis(path string, result *insights.AnalysisResult, pretty bool) error {
	if path == "" {
		return errors.New("WriteAnalysis: path is empty")
	}
	if result == nil {
		return errors.New("WriteAnalysis: result is nil")
	}

	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(result, "", "  ")
	} else {
		b, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("WriteAnalysis: marshal: %w", err)
	}
	if err := writeFileAtomic(path, b, 0o644); err != nil {
		return fmt.Errorf("WriteAnalysis: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp_analysis_*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write([]byte("\n")); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
