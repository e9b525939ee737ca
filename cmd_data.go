package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/cybercalc/internal/excel"
	"github.com/example/cybercalc/internal/leaderboard"
	"github.com/example/cybercalc/pkg/models"
)

// topEntries reads the leaderboard from the persisted state and releases the backend
func topEntries(limit int) ([]models.LeaderboardEntry, error) {
	cfg, logger, err := loadConfig(false)
	if err != nil {
		return nil, err
	}
	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	entries := leaderboard.NewService(store).Top(limit)
	if err := store.Close(); err != nil {
		return nil, err
	}
	return entries, nil
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	entries, err := topEntries(topLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tUSERNAME\tPOINTS")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\n", e.Rank, e.Username, e.Points)
	}
	return w.Flush()
}

func runExportLeaderboard(cmd *cobra.Command, args []string) error {
	entries, err := topEntries(exportLimit)
	if err != nil {
		return err
	}
	if err := excel.ExportLeaderboard(args[0], entries); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), args[0])
	return nil
}

func runImportQuestions(cmd *cobra.Command, args []string) error {
	importCfg := excel.DefaultImportConfig()
	importCfg.FilePath = args[0]
	importCfg.SheetName = sheetName
	importCfg.StartRow = importStart

	bank, result, err := excel.ImportQuestions(importCfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %d rows: %d quiz, %d challenge, %d skipped\n",
		result.TotalProcessed, result.Quiz, result.Challenges, result.Skipped)
	for _, e := range result.Errors {
		fmt.Fprintln(out, "  "+e)
	}

	if err := bank.Validate(); err != nil {
		return fmt.Errorf("imported bank is invalid: %w", err)
	}
	data, err := json.MarshalIndent(bank, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode question bank: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write question bank: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s\n", outPath)
	return nil
}
