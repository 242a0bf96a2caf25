package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer persists run artifacts under a dated subdirectory of the configured
// output directory.
type Writer struct {
	outputDir string
}

// NewWriter creates an artifact writer rooted at outputDir.
func NewWriter(outputDir string) *Writer {
	return &Writer{
		outputDir: filepath.Join(outputDir, time.Now().Format("2006-01-02")),
	}
}

// OutputDir returns the full artifact directory path.
func (w *Writer) OutputDir() string {
	return w.outputDir
}

// ResultsPath returns the JSON artifact path.
func (w *Writer) ResultsPath() string {
	return filepath.Join(w.outputDir, "results.json")
}

// ReportPath returns the markdown artifact path.
func (w *Writer) ReportPath() string {
	return filepath.Join(w.outputDir, "report.md")
}

// WriteResults writes the full structured results as indented JSON.
func (w *Writer) WriteResults(res *RunResults) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.ResultsPath())
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(res); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

// WriteReport writes the markdown report.
func (w *Writer) WriteReport(res *RunResults) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(w.ReportPath())
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString(w.generateMarkdown(res)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (w *Writer) generateMarkdown(res *RunResults) string {
	md := "# Model Backtest Report\n\n"
	md += fmt.Sprintf("**Generated**: %s\n\n", time.Now().Format("2006-01-02 15:04:05 UTC"))
	md += "```\n" + Render(res) + "```\n\n"
	md += "## Artifact Paths\n\n"
	md += fmt.Sprintf("- **Results JSON**: `%s`\n", w.ResultsPath())
	md += fmt.Sprintf("- **Report Markdown**: `%s`\n", w.ReportPath())
	return md
}
