// Package excel converts question sheets into banks and writes leaderboard workbooks.
package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/cybercalc/internal/questions"
	"github.com/example/cybercalc/pkg/models"
)

// Row kinds of the Kind column
const (
	KindQuiz      = "quiz"
	KindChallenge = "challenge"
)

var optionIDs = []string{"a", "b", "c", "d"}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string   // Path to the Excel or CSV file
	KindColumn        string   // "quiz" or "challenge"
	QuestionColumn    string   // Question text
	FormulaColumn     string   // LaTeX formula of the question, may be empty
	OptionColumns     []string // Option formulas, in option id order a, b, c, d
	CorrectColumn     string   // Id of the correct option
	ExplanationColumn string   // LaTeX explanation
	ValueColumn       string   // Difficulty for quiz rows, points for challenge rows
	SheetName         string   // Name of the sheet to import
	StartRow          int      // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		KindColumn:        "A",
		QuestionColumn:    "B",
		FormulaColumn:     "C",
		OptionColumns:     []string{"D", "E", "F", "G"},
		CorrectColumn:     "H",
		ExplanationColumn: "I",
		ValueColumn:       "J",
		SheetName:         "Sheet1",
		StartRow:          2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Quiz           int
	Challenges     int
	Skipped        int
	Errors         []string
}

// ImportQuestions reads a question sheet from an Excel or CSV file.
// Rows that fail to parse are reported in the result and left out of the bank.
func ImportQuestions(config ImportConfig) (*questions.Bank, *ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, nil, err
	}

	bank := &questions.Bank{
		Quiz:       make([]models.QuizQuestion, 0),
		Challenges: make([]models.ChallengeQuestion, 0),
	}
	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		if isBlank(row) {
			result.Skipped++
			continue
		}

		result.TotalProcessed++
		if err := processRow(row, config, bank, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return bank, result, nil
}

// readExcel returns every row of the sheet
func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// readCSV returns every record of the file
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// processRow appends the question of a single row to the bank
func processRow(row []string, config ImportConfig, bank *questions.Bank, result *ImportResult) error {
	cell := func(column string) string {
		if column == "" {
			return ""
		}
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	question := cell(config.QuestionColumn)
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	options := make([]models.Option, 0, len(config.OptionColumns))
	for i, column := range config.OptionColumns {
		if i >= len(optionIDs) {
			break
		}
		if formula := cell(column); formula != "" {
			options = append(options, models.Option{ID: optionIDs[i], Formula: formula})
		}
	}
	if len(options) < 2 {
		return fmt.Errorf("at least two options are required")
	}

	correct := strings.ToLower(cell(config.CorrectColumn))
	found := false
	for _, o := range options {
		if o.ID == correct {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("correct option %q not among options", correct)
	}

	value := cell(config.ValueColumn)
	switch kind := strings.ToLower(cell(config.KindColumn)); kind {
	case KindQuiz, "":
		difficulty := models.Difficulty(strings.ToLower(value))
		if !difficulty.Valid() {
			return fmt.Errorf("invalid difficulty %q", value)
		}
		bank.Quiz = append(bank.Quiz, models.QuizQuestion{
			ID:              len(bank.Quiz) + 1,
			Question:        question,
			Formula:         cell(config.FormulaColumn),
			Options:         options,
			CorrectOptionID: correct,
			Explanation:     cell(config.ExplanationColumn),
			Difficulty:      difficulty,
		})
		result.Quiz++

	case KindChallenge:
		points, err := strconv.Atoi(value)
		if err != nil || points <= 0 {
			return fmt.Errorf("invalid points %q", value)
		}
		bank.Challenges = append(bank.Challenges, models.ChallengeQuestion{
			ID:              len(bank.Challenges) + 1,
			Question:        question,
			Formula:         cell(config.FormulaColumn),
			Options:         options,
			CorrectOptionID: correct,
			Explanation:     cell(config.ExplanationColumn),
			Points:          points,
		})
		result.Challenges++

	default:
		return fmt.Errorf("unknown kind %q", kind)
	}

	return nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Helper function to convert Excel column letter to index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
