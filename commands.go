package main

import (
	"github.com/spf13/cobra"
)

var (
	envFile     string
	topLimit    int
	exportLimit int
	outPath     string
	sheetName   string
	importStart int

	rootCmd = &cobra.Command{
		Use:          "cybercalc",
		Short:        "Derivative quiz backend with points, lives and a leaderboard",
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the scheduler and the optional Telegram notifier",
		Args:  cobra.NoArgs,
		RunE:  runServe, // Defined in serve.go
	}

	leaderboardCmd = &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the top of the leaderboard from the persisted state",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboard, // Defined in cmd_data.go
	}

	exportLeaderboardCmd = &cobra.Command{
		Use:   "export-leaderboard FILE",
		Short: "Write the top of the leaderboard to an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportLeaderboard, // Defined in cmd_data.go
	}

	importQuestionsCmd = &cobra.Command{
		Use:   "import-questions FILE",
		Short: "Convert an Excel or CSV sheet of questions into a JSON question bank",
		Long: `Reads quiz and challenge questions from an .xlsx or .csv file and writes
a JSON bank that can be served with QUESTIONS_FILE.

Columns: A kind (quiz or challenge), B question, C formula, D-G options a-d,
H correct option id, I explanation, J difficulty (quiz) or points (challenge).`,
		Args: cobra.ExactArgs(1),
		RunE: runImportQuestions, // Defined in cmd_data.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before the environment")

	leaderboardCmd.Flags().IntVar(&topLimit, "limit", 10, "Number of entries")
	exportLeaderboardCmd.Flags().IntVar(&exportLimit, "limit", 100, "Number of entries")

	importQuestionsCmd.Flags().StringVarP(&outPath, "out", "o", "questions.json", "Path of the JSON bank to write")
	importQuestionsCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to read, Excel only (default first sheet)")
	importQuestionsCmd.Flags().IntVar(&importStart, "start-row", 2, "First data row, 1-based")

	rootCmd.AddCommand(serveCmd, leaderboardCmd, exportLeaderboardCmd, importQuestionsCmd)
}
