package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

var (
	askContext     string
	askContextFile string
	askJSON        bool
)

// stdin is swapped in tests.
var stdin io.Reader = os.Stdin

// stdinIsTerminal reports whether stdin is interactive. Swapped in tests.
var stdinIsTerminal = func() bool {
	f, ok := stdin.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var askCmd = &cobra.Command{
	Use:   "ask QUESTION [-]",
	Short: "Answer a question about a lab report",
	Long: `Answer a question about a lab report.

Without context the built-in sample report is used. Supply your own report
text with --context, --context-file, or by passing "-" and piping the text
on stdin.

Examples:
  reportqa ask "What is the hemoglobin level?"
  reportqa ask "What is the glucose?" --context "Patient B. Glucose 250 mg/dl"
  pdftotext report.pdf - | reportqa ask "Any abnormal values?" -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askContext, "context", "", "report text to answer from")
	askCmd.Flags().StringVar(&askContextFile, "context-file", "", "read report text from a file")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the raw result as JSON")
	askCmd.MarkFlagsMutuallyExclusive("context", "context-file")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	reportContext, err := resolveContext(args[1:])
	if err != nil {
		return err
	}

	svc, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}

	result := svc.Answer.AnswerQuestion(cmd.Context(), question, reportContext)

	if askJSON {
		return outputAnswerJSON(cmd, result)
	}
	return outputAnswerText(cmd, result)
}

// resolveContext picks the report text from --context, --context-file or
// stdin. Stdin is only read when "-" is given and it is not a terminal.
func resolveContext(rest []string) (string, error) {
	fromStdin := len(rest) == 1 && rest[0] == "-"
	if len(rest) == 1 && !fromStdin {
		return "", fmt.Errorf("unexpected argument %q, quote the question or pass - to read context from stdin", rest[0])
	}

	switch {
	case fromStdin && (askContext != "" || askContextFile != ""):
		return "", errors.New("- cannot be combined with --context or --context-file")
	case fromStdin:
		if stdinIsTerminal() {
			return "", errors.New("- reads report text from stdin, but stdin is a terminal")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	case askContextFile != "":
		data, err := os.ReadFile(askContextFile)
		if err != nil {
			return "", fmt.Errorf("reading context file: %w", err)
		}
		return string(data), nil
	default:
		return askContext, nil
	}
}

// answerJSON is the wire shape shared with the HTTP API.
type answerJSON struct {
	Answer string `json:"answer"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Corpus string `json:"corpus"`
}

func outputAnswerJSON(cmd *cobra.Command, result domain.AnswerResult) error {
	data, err := json.MarshalIndent(answerJSON{
		Answer: result.Answer,
		Error:  result.Error,
		Kind:   string(result.Kind),
		Corpus: string(result.Corpus),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, result domain.AnswerResult) error {
	if !result.OK() {
		return fmt.Errorf("%s error: %s", result.Kind, result.Error)
	}
	cmd.Println(strings.TrimSpace(result.Answer))
	return nil
}
