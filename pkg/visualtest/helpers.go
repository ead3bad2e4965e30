package visualtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"folio/pkg/config"
	"folio/pkg/pipeline"
)

// RenderDocumentToFile renders the document at docPath to a PNG file.
func RenderDocumentToFile(docPath, outputPath string, cfg config.Config) error {
	res, err := pipeline.RunFile(context.Background(), docPath, pipeline.Options{Config: cfg})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return SavePNG(res.Image(), outputPath)
}

// CheckReference renders docPath and compares it against the reference
// PNG. When update is set the reference is rewritten instead.
func CheckReference(docPath, referencePath string, cfg config.Config, opts CompareOptions, update bool) (*CompareResult, error) {
	if update {
		if err := RenderDocumentToFile(docPath, referencePath, cfg); err != nil {
			return nil, err
		}
		return &CompareResult{Match: true}, nil
	}
	res, err := pipeline.RunFile(context.Background(), docPath, pipeline.Options{Config: cfg})
	if err != nil {
		return nil, err
	}
	expected, err := LoadPNG(referencePath)
	if err != nil {
		return nil, fmt.Errorf("reference image: %w", err)
	}
	return Compare(res.Image(), expected, opts)
}
