package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kosarica/catalog-service/internal/types"
)

const (
	errorsSheet   = "Errors"
	warningsSheet = "Warnings"
)

// OffersXLSX writes a decoded offer batch as a workbook
func OffersXLSX(w io.Writer, result *types.DecodeResult[types.Offer]) error {
	return writeXLSX(w, "Offers", OfferColumns, result)
}

// PublicationsXLSX writes a decoded publication batch as a workbook
func PublicationsXLSX(w io.Writer, result *types.DecodeResult[types.Publication]) error {
	return writeXLSX(w, "Publications", PublicationColumns, result)
}

// writeXLSX puts the records on the first sheet. Failed records and
// warnings get their own sheets when there are any.
func writeXLSX[T any](w io.Writer, sheet string, cols []Column[T], result *types.DecodeResult[T]) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headers := make([]any, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	rows := make([][]any, 0, len(result.Records))
	for _, rec := range result.Records {
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = cellValue(c.Value(rec))
		}
		rows = append(rows, row)
	}
	if err := writeRows(f, sheet, headerStyle, headers, rows); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		rows := make([][]any, 0, len(result.Errors))
		for _, e := range result.Errors {
			rows = append(rows, []any{indexOf(e.Index), e.RecordID, e.Kind, cellValue(e.Field), e.Message})
		}
		if err := addSheet(f, errorsSheet, headerStyle, []any{"Index", "Record ID", "Kind", "Field", "Message"}, rows); err != nil {
			return err
		}
	}

	if len(result.Warnings) > 0 {
		rows := make([][]any, 0, len(result.Warnings))
		for _, warn := range result.Warnings {
			rows = append(rows, []any{indexOf(warn.Index), warn.RecordID, warn.Field, warn.Message, cellValue(warn.Value)})
		}
		if err := addSheet(f, warningsSheet, headerStyle, []any{"Index", "Record ID", "Field", "Message", "Value"}, rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func addSheet(f *excelize.File, sheet string, headerStyle int, headers []any, rows [][]any) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
	}
	return writeRows(f, sheet, headerStyle, headers, rows)
}

func writeRows(f *excelize.File, sheet string, headerStyle int, headers []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func indexOf(i *int) any {
	if i == nil {
		return ""
	}
	return *i
}
