package ingest

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// readXLSX returns the first sheet's rows with the banner row stripped, so
// rows[0] is the header row.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return stripBanner(rows), nil
}

func readXLS(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrEmptySheet
	}

	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return stripBanner(rows), nil
}

// readCSV returns all rows; CSV exports have no banner row.
func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func stripBanner(rows [][]string) [][]string {
	if len(rows) < 2 {
		return nil
	}
	return rows[1:]
}
