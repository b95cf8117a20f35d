package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently answered questions",
	Long: `List recently answered questions, newest first.

The answer log is off by default. Enable it with:
  reportqa settings set history.enabled true`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output entries as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	svc, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	if svc.History == nil {
		return errors.New("history is disabled; run 'reportqa settings set history.enabled true'")
	}

	records, err := svc.History.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	outputHistoryTable(cmd, records)
	return nil
}

func outputHistoryTable(cmd *cobra.Command, records []domain.AnswerRecord) {
	if len(records) == 0 {
		cmd.Println("No answers recorded.")
		return
	}

	for i := range records {
		rec := &records[i]
		cmd.Printf("%s  [%s] %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"), rec.Corpus, oneLine(rec.Question))
		if rec.Error != "" {
			cmd.Printf("    error (%s): %s\n", rec.Kind, oneLine(rec.Error))
		} else {
			cmd.Printf("    %s\n", oneLine(rec.Answer))
		}
	}
}

// oneLine collapses whitespace and caps s at 100 runes.
func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 100 {
		return string(r[:97]) + "..."
	}
	return s
}
