package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"variant-manager/core/reconcile"
	"variant-manager/core/storage"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	contentTypeJSON = "application/json"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet  = "Summary"
	findingsSheet = "Findings"
)

// ErrStorageDisabled is returned by ExportReport when no object storage is
// configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// ReportLocation tells where a report was written.
type ReportLocation struct {
	Bucket string `json:"bucket"`
	JSON   string `json:"json"`
	XLSX   string `json:"xlsx"`
}

// ReportKey returns the object name of a run's report.
func ReportKey(prefix string, summary *reconcile.RunSummary, ext string) string {
	return path.Join(prefix, summary.RunID.String()+ext)
}

// ExportReport archives the summary as JSON and as a spreadsheet.
func (s *Service) ExportReport(ctx context.Context, summary *reconcile.RunSummary) (*ReportLocation, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}

	raw, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	sheet, err := BuildWorkbook(summary)
	if err != nil {
		return nil, err
	}

	loc := &ReportLocation{
		Bucket: s.cfg.Bucket,
		JSON:   ReportKey(s.cfg.ReportPrefix, summary, ".json"),
		XLSX:   ReportKey(s.cfg.ReportPrefix, summary, ".xlsx"),
	}
	if err := storage.PutBytes(ctx, s.client, loc.Bucket, loc.JSON, raw, contentTypeJSON); err != nil {
		return nil, err
	}
	if err := storage.PutBytes(ctx, s.client, loc.Bucket, loc.XLSX, sheet, contentTypeXLSX); err != nil {
		return nil, err
	}

	s.logger.Info("Reconciliation report exported",
		zap.String("run_id", summary.RunID.String()),
		zap.String("bucket", loc.Bucket),
		zap.String("json", loc.JSON),
		zap.String("xlsx", loc.XLSX))
	return loc, nil
}

// BuildWorkbook renders a summary as an xlsx workbook with a Summary sheet
// and a Findings sheet.
func BuildWorkbook(summary *reconcile.RunSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to prepare workbook: %w", err)
	}
	overview := [][]any{
		{"Run ID", summary.RunID.String()},
		{"Adapter", summary.Adapter},
		{"Policy", string(summary.Policy)},
		{"Dry run", summary.DryRun},
		{"Started", summary.StartedAt},
		{"Finished", summary.FinishedAt},
		{"Batches", summary.Batches},
		{"Checked", summary.Checked},
		{"Mismatches", summary.Mismatches},
		{"Suppressed", summary.Suppressed},
		{"Planned", summary.Planned},
		{"Applied", summary.Applied},
		{"Skipped", summary.Skipped},
		{"Failed batches", summary.FailedBatches},
	}
	for _, e := range summary.Errors {
		overview = append(overview, []any{"Error", e})
	}
	if err := writeRows(f, summarySheet, overview); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(findingsSheet); err != nil {
		return nil, fmt.Errorf("failed to prepare workbook: %w", err)
	}
	rows := [][]any{{"Key", "Label", "Cached", "Derived", "Action", "Status", "Detail", "Note"}}
	for _, fd := range summary.Findings {
		rows = append(rows, []any{fd.Key, fd.Label, fd.Cached, fd.Derived, string(fd.Action), fd.Status, fd.Detail, fd.Note})
	}
	if err := writeRows(f, findingsSheet, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
