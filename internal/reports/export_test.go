package reports

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	return records
}

func TestExportFacultyCSV(t *testing.T) {
	_, g := setupDemoDB(t)
	dir := t.TempDir()

	path, err := g.ExportFaculty(dir, false)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(path, dir) || !strings.HasSuffix(path, ".csv") {
		t.Fatalf("unexpected export path %q", path)
	}

	// Header plus one row per active faculty member.
	records := readCSV(t, path)
	if len(records) != 7 {
		t.Fatalf("expected 7 records for 6 faculty, got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][3] != "Employee ID" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	for _, row := range records[1:] {
		if len(row) != len(records[0]) {
			t.Fatalf("ragged row: %v", row)
		}
	}
}

func TestExportStudentsCSV(t *testing.T) {
	_, g := setupDemoDB(t)

	path, err := g.ExportStudents(t.TempDir(), false)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	records := readCSV(t, path)
	if len(records) != 9 {
		t.Fatalf("expected 9 records for 8 students, got %d", len(records))
	}
}

func TestExportClassesCSV(t *testing.T) {
	_, g := setupDemoDB(t)

	path, err := g.ExportClasses(t.TempDir(), false)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	records := readCSV(t, path)
	if len(records) != 6 {
		t.Fatalf("expected 6 records for 5 classes, got %d", len(records))
	}
}

func TestExportWorkloadXLSX(t *testing.T) {
	_, g := setupDemoDB(t)

	path, err := g.ExportWorkload(t.TempDir(), true)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasSuffix(path, ".xlsx") {
		t.Fatalf("expected an xlsx path, got %q", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Workload")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("expected 7 sheet rows for 6 faculty, got %d", len(rows))
	}
	if rows[0][0] != "ID" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
}

func TestExportRoomUtilizationCSV(t *testing.T) {
	_, g := setupDemoDB(t)

	path, err := g.ExportRoomUtilization(t.TempDir(), false)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	records := readCSV(t, path)
	if len(records) != 5 {
		t.Fatalf("expected 5 records for 4 rooms, got %d", len(records))
	}
	// Percent column keeps its unit.
	if !strings.HasSuffix(records[1][3], "%") {
		t.Fatalf("expected a percent value, got %q", records[1][3])
	}
}
