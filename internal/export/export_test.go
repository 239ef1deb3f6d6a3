package export_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"tasker/internal/export"
	"tasker/internal/service"
	"tasker/internal/testutil"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]export.Format{"json": export.FormatJSON, "CSV": export.FormatCSV, " pdf ": export.FormatPDF} {
		got, err := export.ParseFormat(in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", in, err)
		}
		if got != want {
			t.Errorf("%q: expected %q, got %q", in, want, got)
		}
	}
	if _, err := export.ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestCollect_WalksAllPages(t *testing.T) {
	svc := testutil.NewFakeService()
	for i := 1; i <= 120; i++ {
		svc.AddTask(fmt.Sprintf("task %d", i), service.PriorityLow, "", i%3 == 0)
	}

	done := true
	tasks, err := export.NewExporter(svc).Collect(context.Background(), service.Filter{Completed: &done})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 40 {
		t.Errorf("expected 40 completed tasks, got %d", len(tasks))
	}
	if tasks[0].Title != "task 3" || tasks[39].Title != "task 120" {
		t.Errorf("expected server order, got %q..%q", tasks[0].Title, tasks[39].Title)
	}
	if n := svc.CallCount("list"); n != 1 {
		t.Errorf("expected a single page request, got %d", n)
	}
}

func TestCollect_Error(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("boom")

	if _, err := export.NewExporter(svc).Collect(context.Background(), service.Filter{}); err == nil {
		t.Error("expected error")
	}
}

func TestEncode_CSV(t *testing.T) {
	tasks := []service.Task{
		{ID: service.NumberID(1), Title: "Buy milk, eggs", Priority: service.PriorityHigh, DueDate: "2024-01-01T00:00:00"},
		{ID: service.NumberID(2), Title: "Walk dog", Priority: service.PriorityLow, IsCompleted: true},
	}

	data, err := export.Encode(export.FormatCSV, tasks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "id,title,priority,due_date,is_completed\n" +
		"1,\"Buy milk, eggs\",High,2024-01-01,false\n" +
		"2,Walk dog,Low,,true\n"
	if string(data) != want {
		t.Errorf("expected %q, got %q", want, data)
	}
}

func TestEncode_JSON(t *testing.T) {
	data, err := export.Encode(export.FormatJSON, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("expected empty array, got %s", data)
	}

	data, err = export.Encode(export.FormatJSON, []service.Task{{ID: service.StringID("a"), Title: "x", Priority: service.PriorityMedium}})
	if err != nil {
		t.Fatal(err)
	}
	var back []map[string]any
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if back[0]["id"] != "a" || back[0]["title"] != "x" {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestEncode_PDF(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", service.PriorityHigh, "2024-01-01", false)

	data, err := export.NewExporter(svc).Export(context.Background(), export.FormatPDF, service.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("expected PDF header, got %q", data[:min(len(data), 8)])
	}
}
