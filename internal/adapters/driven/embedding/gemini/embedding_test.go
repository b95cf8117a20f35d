package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer fakes the Gemini API. Every embed call answers with one
// vector per input, [index, 1].
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, ":batchEmbedContents"), strings.HasSuffix(r.URL.Path, ":embedContent"):
			var req struct {
				Requests []json.RawMessage `json:"requests"`
				Contents []json.RawMessage `json:"contents"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			n := max(len(req.Requests), len(req.Contents), 1)

			type emb struct {
				Values []float32 `json:"values"`
			}
			var resp struct {
				Embeddings []emb `json:"embeddings"`
			}
			for i := range n {
				resp.Embeddings = append(resp.Embeddings, emb{Values: []float32{float32(i), 1}})
			}
			_ = json.NewEncoder(w).Encode(resp)
		case strings.HasSuffix(r.URL.Path, "/models/text-embedding-004"):
			_, _ = w.Write([]byte(`{"name":"models/text-embedding-004"}`))
		default:
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewEmbeddingService_RequiresKey(t *testing.T) {
	_, err := NewEmbeddingService(context.Background(), Config{})
	assert.Error(t, err)
}

func TestModelPath(t *testing.T) {
	assert.Equal(t, "models/text-embedding-004", ModelPath("text-embedding-004"))
	assert.Equal(t, "models/text-embedding-004", ModelPath("models/text-embedding-004"))
}

func TestEmbed(t *testing.T) {
	server := newTestServer(t)
	svc, err := NewEmbeddingService(context.Background(), Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	vec, err := svc.Embed(context.Background(), "hemoglobin")
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1}, vec)
	assert.Equal(t, DefaultDimensions, svc.Dimensions())
	assert.Equal(t, DefaultModel, svc.ModelName())
}

func TestEmbedBatch_SplitsIntoBatches(t *testing.T) {
	server := newTestServer(t)
	svc, err := NewEmbeddingService(context.Background(), Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	texts := make([]string, maxBatch+3)
	for i := range texts {
		texts[i] = "chunk"
	}

	vecs, err := svc.EmbedBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vecs, maxBatch+3)
	assert.Equal(t, []float32{0, 1}, vecs[0])
	assert.Equal(t, []float32{float32(maxBatch - 1), 1}, vecs[maxBatch-1])
	assert.Equal(t, []float32{2, 1}, vecs[maxBatch+2])
}

func TestPing(t *testing.T) {
	server := newTestServer(t)

	ok, err := NewEmbeddingService(context.Background(), Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)
	assert.NoError(t, ok.Ping(context.Background()))

	bad, err := NewEmbeddingService(context.Background(), Config{APIKey: "k", BaseURL: server.URL, Model: "unknown"})
	require.NoError(t, err)
	err = bad.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}
