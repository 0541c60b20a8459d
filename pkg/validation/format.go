// Package validation provides common validation utilities.
package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/iefp-dossier/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateArtifactPrefix checks that exported files can be written next to
// prefix: it must name a file, not a directory, inside an existing directory.
func ValidateArtifactPrefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return errors.New("artifact prefix cannot be empty")
	}
	if strings.HasSuffix(prefix, string(filepath.Separator)) {
		return fmt.Errorf("artifact prefix %s must name a file, not a directory", prefix)
	}

	dir := filepath.Dir(prefix)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("output directory %s does not exist", dir)
		}
		return fmt.Errorf("failed to inspect output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", dir)
	}
	return nil
}
