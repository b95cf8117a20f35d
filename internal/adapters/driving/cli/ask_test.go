package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reportqa/internal/core/domain"
)

func TestAskCmd_DefaultCorpus(t *testing.T) {
	answer := &mockAnswerService{result: domain.NewAnswerResult("  Hemoglobin is 13.5 g/dL.\n", domain.CorpusDefault)}
	useServices(t, &Services{Answer: answer})

	out, err := executeCommand(t, "ask", "What is the hemoglobin level?")

	require.NoError(t, err)
	assert.Equal(t, "Hemoglobin is 13.5 g/dL.\n", out)
	assert.Equal(t, "What is the hemoglobin level?", answer.question)
	assert.Empty(t, answer.context)
}

func TestAskCmd_ContextFlag(t *testing.T) {
	answer := &mockAnswerService{result: domain.NewAnswerResult("250 mg/dl", domain.CorpusAdHoc)}
	useServices(t, &Services{Answer: answer})

	_, err := executeCommand(t, "ask", "What is the glucose?", "--context", "Patient B. Glucose 250 mg/dl")

	require.NoError(t, err)
	assert.Equal(t, "Patient B. Glucose 250 mg/dl", answer.context)
}

func TestAskCmd_ContextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("Creatinine 1.1 mg/dL"), 0o600))

	answer := &mockAnswerService{result: domain.NewAnswerResult("1.1 mg/dL", domain.CorpusAdHoc)}
	useServices(t, &Services{Answer: answer})

	_, err := executeCommand(t, "ask", "Creatinine?", "--context-file", path)

	require.NoError(t, err)
	assert.Equal(t, "Creatinine 1.1 mg/dL", answer.context)
}

func TestAskCmd_ContextFileMissing(t *testing.T) {
	answer := &mockAnswerService{}
	useServices(t, &Services{Answer: answer})

	_, err := executeCommand(t, "ask", "Creatinine?", "--context-file", filepath.Join(t.TempDir(), "nope.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading context file")
	assert.Zero(t, answer.calls)
}

func TestAskCmd_ContextFlagsMutuallyExclusive(t *testing.T) {
	useServices(t, &Services{Answer: &mockAnswerService{}})

	_, err := executeCommand(t, "ask", "q", "--context", "a", "--context-file", "b")

	require.Error(t, err)
}

func TestAskCmd_ContextFromStdin(t *testing.T) {
	answer := &mockAnswerService{result: domain.NewAnswerResult("ok", domain.CorpusAdHoc)}
	useServices(t, &Services{Answer: answer})

	useStdin(t, strings.NewReader("TSH 2.1 mIU/L"), false)

	out, err := executeCommand(t, "ask", "TSH?", "-")

	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
	assert.Equal(t, "TSH 2.1 mIU/L", answer.context)
}

func TestAskCmd_StdinTerminal(t *testing.T) {
	useServices(t, &Services{Answer: &mockAnswerService{}})
	useStdin(t, strings.NewReader(""), true)

	_, err := executeCommand(t, "ask", "TSH?", "-")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin is a terminal")
}

func TestAskCmd_StdinWithContextFlag(t *testing.T) {
	useServices(t, &Services{Answer: &mockAnswerService{}})
	useStdin(t, strings.NewReader(""), false)

	_, err := executeCommand(t, "ask", "TSH?", "-", "--context", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be combined")
}

func TestAskCmd_UnexpectedArgument(t *testing.T) {
	useServices(t, &Services{Answer: &mockAnswerService{}})

	_, err := executeCommand(t, "ask", "What", "glucose")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unexpected argument "glucose"`)
}

func TestAskCmd_FailedResult(t *testing.T) {
	failure := domain.NewFailedResult(errors.Join(domain.ErrModel, errors.New("quota exceeded")), domain.CorpusDefault)
	useServices(t, &Services{Answer: &mockAnswerService{result: failure}})

	_, err := executeCommand(t, "ask", "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model error:")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestAskCmd_JSON(t *testing.T) {
	useServices(t, &Services{Answer: &mockAnswerService{
		result: domain.NewAnswerResult("13.5 g/dL", domain.CorpusDefault),
	}})

	out, err := executeCommand(t, "ask", "q", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "13.5 g/dL", got["answer"])
	assert.Equal(t, "default", got["corpus"])
	assert.NotContains(t, got, "error")
	assert.NotContains(t, got, "kind")
}

func TestAskCmd_JSONFailure(t *testing.T) {
	failure := domain.NewFailedResult(domain.ErrValidation, domain.CorpusAdHoc)
	useServices(t, &Services{Answer: &mockAnswerService{result: failure}})

	out, err := executeCommand(t, "ask", "q", "--json")
	require.NoError(t, err)

	var got answerJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.Answer)
	assert.NotEmpty(t, got.Error)
	assert.Equal(t, "validation", got.Kind)
	assert.Equal(t, "adhoc", got.Corpus)
}

func TestAskCmd_NotConfigured(t *testing.T) {
	useServices(t, nil)

	_, err := executeCommand(t, "ask", "q")

	assert.ErrorIs(t, err, errNotConfigured)
}
