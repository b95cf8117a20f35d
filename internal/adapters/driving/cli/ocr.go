package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr FILE",
	Short: "Print the text recognised in a report image",
	Long: `Print the text recognised in a report image using Tesseract.

The output can be piped into "reportqa ask QUESTION -".`,
	Args: cobra.ExactArgs(1),
	RunE: runOCR,
}

func init() {
	rootCmd.AddCommand(ocrCmd)
}

func runOCR(cmd *cobra.Command, args []string) error {
	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	svc, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}
	if svc.Report == nil || !svc.Report.Available() {
		return errors.New("tesseract OCR is not installed; install tesseract and retry")
	}

	text, err := svc.Report.ExtractText(cmd.Context(), image)
	if err != nil {
		return err
	}
	cmd.Println(strings.TrimSpace(text))
	return nil
}
