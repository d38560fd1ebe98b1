package xlsxLoader

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KotFed0t/commodity_value_analyzer/internal/dataLoader"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheet string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet: %v", err)
		}
		if err := f.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("DeleteSheet: %v", err)
		}
	}

	_ = f.SetCellStr(sheet, "A1", "Brent Crude Prices")
	_ = f.SetCellStr(sheet, "A4", "Date")
	_ = f.SetCellStr(sheet, "B4", "Open ")
	_ = f.SetCellStr(sheet, "C4", " Close")
	_ = f.SetCellValue(sheet, "A5", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	_ = f.SetCellValue(sheet, "B5", 79.5)
	_ = f.SetCellValue(sheet, "C5", 80)
	_ = f.SetCellStr(sheet, "A6", "2024-01-02")
	_ = f.SetCellValue(sheet, "B6", 80.25)
	_ = f.SetCellValue(sheet, "C6", 85)

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf
}

func TestReadRows_FirstSheet(t *testing.T) {
	rows, err := New("").ReadRows(context.Background(), workbook(t, "Prices"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	if rows[3][2] != " Close" {
		t.Errorf("header cell = %q, want %q", rows[3][2], " Close")
	}
	// 2024-01-01 stored as a date cell comes back as its serial number
	if rows[4][0] != "45292" {
		t.Errorf("raw date cell = %q, want 45292", rows[4][0])
	}
	if rows[5][0] != "2024-01-02" {
		t.Errorf("text date cell = %q, want 2024-01-02", rows[5][0])
	}
}

func TestReadRows_NamedSheet(t *testing.T) {
	rows, err := New("Sheet1").ReadRows(context.Background(), workbook(t, "Sheet1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected rows")
	}
}

func TestReadRows_UnknownSheet(t *testing.T) {
	_, err := New("Missing").ReadRows(context.Background(), workbook(t, "Prices"))
	if !errors.Is(err, dataLoader.ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestReadRows_NotAWorkbook(t *testing.T) {
	if _, err := New("").ReadRows(context.Background(), bytes.NewBufferString("Date,Close\n")); err == nil {
		t.Fatal("expected error for non xlsx input")
	}
}
