// Package spreadsheet writes and reads simple tabular .xlsx workbooks.
package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet: a bold header row followed by data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// Write saves the sheets, in order, as a new workbook at path.
func Write(path string, sheets ...Sheet) (err error) {
	if len(sheets) == 0 {
		return fmt.Errorf("spreadsheet: no sheets to write")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}

		header := make([]interface{}, len(sheet.Header))
		for j, h := range sheet.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
			return err
		}
		if len(sheet.Header) > 0 {
			last, err := excelize.CoordinatesToCellName(len(sheet.Header), 1)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet.Name, "A1", last, bold); err != nil {
				return err
			}
		}

		for r, values := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			row := values
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(0)
	return f.SaveAs(path)
}

// ReadSheet returns every row of the named sheet as text, header included.
func ReadSheet(path, name string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetRows(name)
}

// SheetNames lists the worksheets of the workbook at path, in order.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetSheetList(), nil
}
