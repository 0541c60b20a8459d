package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteFile writes data to path through a temporary file in the same
// directory that is renamed into place. The temporary file is removed on
// every path that does not end in a successful rename, so path is either
// left untouched or fully replaced.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create staging file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write staging file for %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync staging file for %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close staging file for %s: %w", path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move staging file to %s: %w", path, err)
	}
	return nil
}

// Paths are the files written by WriteArtifacts.
type Paths struct {
	Report   string
	Workbook string
}

// ArtifactPaths returns the report and workbook paths for prefix.
func ArtifactPaths(prefix string) Paths {
	return Paths{Report: prefix + ".html", Workbook: prefix + ".xlsx"}
}

// WriteArtifacts renders both artifacts in memory and, only when both
// succeed, writes them next to prefix.
func WriteArtifacts(prefix string, doc Document) (Paths, error) {
	paths := ArtifactPaths(prefix)

	report, err := Report(doc)
	if err != nil {
		return Paths{}, err
	}
	workbook, err := Workbook(doc.Tables)
	if err != nil {
		return Paths{}, err
	}

	if err := WriteFile(paths.Report, report); err != nil {
		return Paths{}, &RenderError{Artifact: ArtifactReport, Err: err}
	}
	if err := WriteFile(paths.Workbook, workbook); err != nil {
		return Paths{}, &RenderError{Artifact: ArtifactWorkbook, Err: err}
	}
	return paths, nil
}
