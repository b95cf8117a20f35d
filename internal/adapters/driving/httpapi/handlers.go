package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/custodia-labs/reportqa/internal/core/domain"
	"github.com/custodia-labs/reportqa/internal/logger"
)

// Messages returned to clients.
const (
	rootMessage       = "RAG Medical Assistant API is running."
	ocrMissingMessage = "Tesseract OCR is not installed. Install Tesseract and restart the server."
)

// AskRequest is the /ask request body.
type AskRequest struct {
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
}

// AskResponse is the /ask response body.
type AskResponse struct {
	Answer string `json:"answer"`
	Error  string `json:"error,omitempty"`
}

// UploadResponse is the /upload_report response body.
type UploadResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": rootMessage})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		logger.L().Debug("invalid ask payload", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, AskResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	result := s.answers.AnswerQuestion(r.Context(), req.Question, req.Context)
	if !result.OK() {
		logger.L().Info("ask failed",
			zap.String("kind", string(result.Kind)),
			zap.String("corpus", string(result.Corpus)),
			zap.String("error", result.Error))
	}
	writeJSON(w, http.StatusOK, AskResponse{Answer: result.Answer, Error: result.Error})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil || !s.reports.Available() {
		writeJSON(w, http.StatusOK, UploadResponse{Error: ocrMissingMessage})
		return
	}

	if r.ContentLength > s.cfg.MaxUploadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, UploadResponse{
			Error: fmt.Sprintf("upload exceeds %d bytes", s.cfg.MaxUploadBytes),
		})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, UploadResponse{
				Error: fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, UploadResponse{Error: fmt.Sprintf("missing multipart field \"file\": %v", err)})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, UploadResponse{Error: fmt.Sprintf("read upload: %v", err)})
		return
	}

	text, err := s.reports.ExtractText(r.Context(), image)
	switch {
	case errors.Is(err, domain.ErrOCRUnavailable):
		writeJSON(w, http.StatusOK, UploadResponse{Error: ocrMissingMessage})
	case err != nil:
		logger.L().Warn("ocr failed", zap.Error(err))
		writeJSON(w, http.StatusOK, UploadResponse{Error: ocrErrorMessage(err)})
	default:
		writeJSON(w, http.StatusOK, UploadResponse{Text: text})
	}
}

// ocrErrorMessage ensures the client sees "OCR failed: ..." even when the
// extractor error was not wrapped with domain.ErrOCR.
func ocrErrorMessage(err error) string {
	if errors.Is(err, domain.ErrOCR) {
		return err.Error()
	}
	return fmt.Sprintf("%v: %v", domain.ErrOCR, err)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("http: encode response: %v", err)
	}
}
