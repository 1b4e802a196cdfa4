package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/spriteoutline/internal/system"
)

// GenerateOutputPath creates a timestamped document filename in dir
func GenerateOutputPath(dir, name string) string {
	clean := strings.ReplaceAll(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)), " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("outline_%s_%s.yaml", clean, timestamp))
}

// IsDocumentName reports whether name looks like a GenerateOutputPath file.
func IsDocumentName(name string) bool {
	return strings.HasPrefix(name, "outline_") && system.HasExt(".yaml")(name)
}

// FindLatestDocument finds the most recent outline document in dir
func FindLatestDocument(dir string) (string, error) {
	path, err := system.FindLatest(dir, IsDocumentName)
	if err != nil {
		return "", fmt.Errorf("no outline documents: %w", err)
	}
	return path, nil
}
