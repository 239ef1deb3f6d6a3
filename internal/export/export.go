// Package export writes the filtered task listing as JSON, CSV or PDF.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tasker/internal/service"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// fetchPageSize is the page size used to walk the listing.
const fetchPageSize = 50

// maxPages stops the walk if the server keeps reporting more items than it returns.
const maxPages = 10000

// ParseFormat matches s case-insensitively against the known formats.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown format: %s", s)
}

// Exporter renders every task matching a filter.
type Exporter struct{ svc service.Service }

// NewExporter creates an exporter reading from svc.
func NewExporter(svc service.Service) *Exporter { return &Exporter{svc: svc} }

// Export fetches all pages of the filtered listing and encodes them.
func (e *Exporter) Export(ctx context.Context, format Format, filter service.Filter) ([]byte, error) {
	all, err := e.Collect(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Encode(format, all)
}

// Collect walks the filtered listing page by page, in server order.
func (e *Exporter) Collect(ctx context.Context, filter service.Filter) ([]service.Task, error) {
	var all []service.Task
	for page := 1; page <= maxPages; page++ {
		res, err := e.svc.ListTasks(ctx, service.Query{Page: page, PageSize: fetchPageSize, Filter: filter})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}
		all = append(all, res.Items...)
		if len(res.Items) == 0 || len(all) >= res.TotalItems {
			break
		}
	}
	return all, nil
}

// Encode renders tasks in the given format.
func Encode(format Format, tasks []service.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatCSV:
		return encodeCSV(tasks)
	case FormatPDF:
		return encodePDF(tasks)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func encodeCSV(tasks []service.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "title", "priority", "due_date", "is_completed"})
	for _, t := range tasks {
		_ = w.Write([]string{t.ID.String(), t.Title, string(t.Priority), t.Due(), fmt.Sprint(t.IsCompleted)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodePDF(tasks []service.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.Cell(40, 6, "no tasks found")
	}
	for _, t := range tasks {
		status := "open"
		if t.IsCompleted {
			status = "done"
		}
		due := t.Due()
		if due == "" {
			due = "-"
		}
		line := fmt.Sprintf("[%s] %s | %s | due %s", status, t.Title, t.Priority, due)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
