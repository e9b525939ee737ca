package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/example/cybercalc/pkg/models"
)

const leaderboardSheet = "Leaderboard"

// ExportLeaderboard writes the entries to an .xlsx file
func ExportLeaderboard(path string, entries []models.LeaderboardEntry) error {
	f, err := leaderboardWorkbook(entries)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteLeaderboard streams the entries as an .xlsx workbook
func WriteLeaderboard(w io.Writer, entries []models.LeaderboardEntry) error {
	f, err := leaderboardWorkbook(entries)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func leaderboardWorkbook(entries []models.LeaderboardEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", leaderboardSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Rank", "Username", "Points", "User ID"}
	if err := f.SetSheetRow(leaderboardSheet, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(leaderboardSheet, "A1", "D1", bold); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(leaderboardSheet, "B", "B", 24); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []interface{}{e.Rank, e.Username, e.Points, e.ID}
		if err := f.SetSheetRow(leaderboardSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}
