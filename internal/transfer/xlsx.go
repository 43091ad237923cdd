package transfer

import (
	"fmt"
	"io"
	"strings"

	"github.com/conorfennell/neverforget/internal/domain"
	"github.com/xuri/excelize/v2"
)

var xlsxHeader = []interface{}{"Prompt", "Prompt example", "Target", "Target example"}

// DecodeXLSX reads cards from the first sheet of a workbook. The first row
// is a header; columns A to D hold prompt, prompt example, target and
// target example.
func DecodeXLSX(r io.Reader) ([]domain.CardContent, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	var cards []domain.CardContent
	for i, row := range rows {
		if i == 0 || isBlank(row) {
			continue
		}
		cards = append(cards, domain.CardContent{
			Prompt:        cell(row, 0),
			PromptExample: cell(row, 1),
			Target:        cell(row, 2),
			TargetExample: cell(row, 3),
		}.Trimmed())
	}
	return cards, nil
}

// EncodeXLSX writes cards to the first sheet of a new workbook.
func EncodeXLSX(w io.Writer, cards []domain.CardContent) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, c := range cards {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{c.Prompt, c.PromptExample, c.Target, c.TargetExample}
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
