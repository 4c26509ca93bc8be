// Package spreadsheet reads the 12-column sales sheet through excelize.
package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// columnCount is the fixed width of the import layout, customer id through
// payment method.
const columnCount = 12

// File is the first worksheet of an .xlsx file, loaded eagerly. Cells are
// read raw, so date cells arrive as Excel serial numbers instead of whatever
// display format the sheet happens to use.
type File struct {
	rows [][]string
}

func Open(path string) (*File, error) {
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("não foi possível abrir a planilha %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("planilha %s não possui abas", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("não foi possível ler a aba %s: %w", sheets[0], err)
	}
	return &File{rows: rows}, nil
}

func (f *File) RowCount() int { return len(f.rows) }

// Row returns the 12 cells of row n, 1-based like the sheet itself. Short
// rows are padded with empty cells, trailing extras are dropped.
func (f *File) Row(n int) ([]string, error) {
	if n < 1 || n > len(f.rows) {
		return nil, fmt.Errorf("linha %d fora do intervalo da planilha", n)
	}
	cells := make([]string, columnCount)
	copy(cells, f.rows[n-1])
	return cells, nil
}
