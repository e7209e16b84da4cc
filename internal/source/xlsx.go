// internal/source/xlsx.go
package source

import (
	"github.com/xuri/excelize/v2"

	"tabreport/pkg/apperror"
)

// readWorkbook читает первый лист книги xlsx в сырые строки
func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInputNotFound, "cannot open workbook").WithField(path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewWithField(apperror.CodeMalformedInput, "workbook has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeMalformedInput, "cannot read sheet rows").WithField(path)
	}

	return rows, nil
}
