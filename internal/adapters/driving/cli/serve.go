package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/custodia-labs/reportqa/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/reportqa/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API.

Routes:
  GET  /               liveness message
  GET  /healthz        health check
  POST /ask            {"question": "...", "context": "..."} -> {"answer": "...", "error": "..."}
  POST /upload_report  multipart form with a "file" image -> {"text": "..."}

The prompt template is reloaded when its file changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings, :8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Access logs are written at info level
	if !logger.IsVerbose() {
		logger.SetLevel(zapcore.InfoLevel)
	}

	svc, err := loadServices(cmd.Context())
	if err != nil {
		return err
	}

	cfg := svc.HTTP
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	server, err := httpapi.NewServer(svc.Answer, svc.Report, cfg)
	if err != nil {
		return err
	}

	watchPrompts(cmd.Context(), svc, nil)

	fmt.Fprintf(cmd.OutOrStdout(), "reportqa API listening on %s\n", server.Addr())
	return server.Run(cmd.Context())
}
