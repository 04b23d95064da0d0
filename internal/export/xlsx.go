package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"eiborservice/internal/repository"
)

var xlsxHeader = []any{"Date", "Tenor", "Rate (%)", "Previous Rate (%)", "Daily Change"}

// WriteHistoryXLSX writes the rate history of one tenor as a single-sheet workbook.
func WriteHistoryXLSX(w io.Writer, tenor repository.Tenor, rows []repository.RateObservation) (err error) {
	if err := checkRows(rows); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sheet := string(tenor)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	rateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("0.0000##")})
	if err != nil {
		return fmt.Errorf("create rate style: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", headerStyle); err != nil {
		return err
	}

	for i, r := range rows {
		var prev any
		if r.PreviousRate.Valid {
			prev = r.PreviousRate.Decimal.InexactFloat64()
		}
		row := []any{
			r.RateDate.Format(repository.DateLayout),
			string(r.Tenor),
			r.Rate.InexactFloat64(),
			prev,
			r.DailyChange.InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	last := len(rows) + 1
	if err := f.SetCellStyle(sheet, "C2", fmt.Sprintf("E%d", last), rateStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "E", 18); err != nil {
		return err
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func strPtr(s string) *string { return &s }
