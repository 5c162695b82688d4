package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func relaxedConfig() *model.Configuration {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	return cfg
}

// PageCount returns the number of pages in a PDF.
func PageCount(rs io.ReadSeeker) (int, error) {
	n, err := api.PageCount(rs, relaxedConfig())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPDF, err)
	}
	return n, nil
}

// ExtractImages writes every embedded image of a PDF into dir as
// <stem>_p<page>_<index>.<ext>, pages numbered from zero, and returns the
// written paths.
func ExtractImages(rs io.ReadSeeker, stem, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var paths []string
	perPage := make(map[int]int)

	digest := func(img model.Image, _ bool, _ int) error {
		page := img.PageNr - 1
		idx := perPage[page]
		perPage[page]++

		path := filepath.Join(dir, fmt.Sprintf("%s_p%d_%d.%s", stem, page, idx, img.FileType))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := io.Copy(f, img); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	}

	if err := api.ExtractImages(rs, nil, digest, relaxedConfig()); err != nil {
		return paths, fmt.Errorf("%w: extract images: %w", ErrInvalidPDF, err)
	}
	return paths, nil
}
