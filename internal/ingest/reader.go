// Package ingest reads pre-extracted statement text dumps from disk and feeds
// them to the processor. The text-extraction collaborator writes one .txt file
// per document, lines in reading order, form feeds marking page boundaries;
// this package never opens the original document files.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
)

// ReadFile loads one text dump into a RawDocumentText. Page count is derived
// from form-feed markers; a dump with no markers is a single page.
func ReadFile(path string) (statement.RawDocumentText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return statement.RawDocumentText{}, fmt.Errorf("read text dump: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	pages := strings.Count(content, "\f") + 1
	content = strings.ReplaceAll(content, "\f", "\n")

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		lines = append(lines, strings.TrimRight(line, " \t"))
	}

	return statement.RawDocumentText{
		SourceFile: filepath.Base(path),
		PageCount:  pages,
		Lines:      lines,
	}, nil
}

// ScanDir lists the .txt dumps in a directory, sorted by name so batch runs
// are deterministic.
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan input dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
