// internal/source/reader.go
package source

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"tabreport/pkg/apperror"
)

// ReadRows читает табличный источник в сырые строки. Формат выбирается по
// расширению файла: .xlsx читается как книга Excel, всё остальное - как
// текст с разделителями. delimiter == 0 означает автовыбор по расширению
// (.tsv - табуляция, иначе запятая).
func ReadRows(path string, delimiter rune) ([][]string, error) {
	if path == "" {
		return nil, apperror.ErrNoInputPath
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return readWorkbook(path)
	}

	if delimiter == 0 {
		delimiter = ','
		if ext == ".tsv" {
			delimiter = '\t'
		}
	}

	return readDelimited(path, delimiter)
}

// readDelimited читает текстовый файл с разделителями
func readDelimited(path string, delimiter rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInputNotFound, "cannot open input file").WithField(path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1 // строки бывают рваными, выравниваем позже
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeMalformedInput, "cannot parse delimited input").WithField(path)
	}

	return rows, nil
}
