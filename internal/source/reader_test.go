// internal/source/reader_test.go
package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"tabreport/pkg/apperror"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestReadRowsCSV(t *testing.T) {
	path := writeFile(t, "data.csv", "\"Title\"\nA,B,C\n1,2,3\n1,2\n")

	rows, err := ReadRows(path, 0)
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want 4", len(rows))
	}
	if rows[1][1] != "B" {
		t.Errorf("rows[1][1] = %q", rows[1][1])
	}
	// Рваные строки допустимы, выравнивание - забота извлечения
	if len(rows[3]) != 2 {
		t.Errorf("len(rows[3]) = %d, want 2", len(rows[3]))
	}
}

func TestReadRowsTSV(t *testing.T) {
	path := writeFile(t, "data.tsv", "Title\nA\tB\n1\t2\n")

	rows, err := ReadRows(path, 0)
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(rows[1]) != 2 || rows[1][0] != "A" {
		t.Errorf("tab delimiter not auto-detected: %v", rows[1])
	}
}

func TestReadRowsExplicitDelimiter(t *testing.T) {
	path := writeFile(t, "data.txt", "A;B\n1;2\n")

	rows, err := ReadRows(path, ';')
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(rows[0]) != 2 {
		t.Errorf("rows[0] = %v, want split on ';'", rows[0])
	}
}

func TestReadRowsMissingFile(t *testing.T) {
	_, err := ReadRows(filepath.Join(t.TempDir(), "absent.csv"), 0)
	if err == nil {
		t.Fatal("ReadRows() error = nil, want INPUT_NOT_FOUND")
	}
	if apperror.Code(err) != apperror.CodeInputNotFound {
		t.Errorf("Code(err) = %v, want INPUT_NOT_FOUND", apperror.Code(err))
	}
}

func TestReadRowsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")

	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "Title")
	f.SetCellValue("Sheet1", "A2", "A")
	f.SetCellValue("Sheet1", "B2", "B")
	f.SetCellValue("Sheet1", "A3", "1")
	f.SetCellValue("Sheet1", "B3", "2")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	rows, err := ReadRows(path, 0)
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}
	if rows[1][1] != "B" {
		t.Errorf("rows[1][1] = %q, want B", rows[1][1])
	}
}
