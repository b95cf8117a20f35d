package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Check is one diagnostic run by `reportqa doctor`.
type Check struct {
	Name string
	Run  func(ctx context.Context) error

	// Optional checks report a warning instead of failing doctor.
	Optional bool
}

var doctorChecks []Check

// SetDoctorChecks registers checks that need adapters the CLI does not
// know about, such as the OCR binary.
func SetDoctorChecks(checks ...Check) {
	doctorChecks = checks
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and backend connectivity",
	Long: `Check that settings are valid, that the embedding and LLM backends
answer, and that optional tools such as Tesseract are installed.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	checks := []Check{
		{Name: "settings", Run: func(context.Context) error { return settingsService.Validate() }},
		{Name: "embedding backend", Run: func(context.Context) error { return settingsService.ValidateEmbeddingConfig() }},
		{Name: "llm backend", Run: func(context.Context) error { return settingsService.ValidateLLMConfig() }},
	}
	checks = append(checks, doctorChecks...)

	failed := 0
	for _, c := range checks {
		err := c.Run(cmd.Context())
		switch {
		case err == nil:
			cmd.Printf("  ok    %s\n", c.Name)
		case c.Optional:
			cmd.Printf("  warn  %s: %v\n", c.Name, err)
		default:
			cmd.Printf("  FAIL  %s: %v\n", c.Name, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	cmd.Println("All required checks passed.")
	return nil
}
