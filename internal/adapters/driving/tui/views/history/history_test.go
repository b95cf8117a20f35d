package history

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/reportqa/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/reportqa/internal/core/domain"
)

type mockHistoryService struct {
	records   []domain.AnswerRecord
	err       error
	lastLimit int
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.AnswerRecord, error) {
	m.lastLimit = limit
	return m.records, m.err
}

func TestView_InitLoadsRecords(t *testing.T) {
	svc := &mockHistoryService{records: []domain.AnswerRecord{
		{ID: "1", Question: "hb?", Answer: "14 g/dl", Corpus: domain.CorpusDefault, CreatedAt: time.Now()},
	}}
	v := NewView(nil, nil, svc)

	msg := v.Init()()
	loaded, ok := msg.(messages.HistoryLoaded)
	require.True(t, ok)
	assert.Equal(t, DefaultLimit, svc.lastLimit)

	v.Update(loaded)

	assert.NoError(t, v.Err())
	assert.Equal(t, 1, v.Count())
	assert.Contains(t, v.View(), "hb?")
}

func TestView_InitWithoutService(t *testing.T) {
	v := NewView(nil, nil, nil)

	msg := v.Init()()

	assert.Equal(t, messages.HistoryLoaded{}, msg)
}

func TestView_LoadError(t *testing.T) {
	v := NewView(nil, nil, &mockHistoryService{err: errors.New("history disabled")})

	v.Update(v.Init()())

	assert.Error(t, v.Err())
	assert.Equal(t, 0, v.Count())
	assert.Contains(t, v.View(), "history disabled")
}

func TestView_KeysMoveSelection(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.Update(messages.HistoryLoaded{Records: []domain.AnswerRecord{{ID: "1"}, {ID: "2"}}})

	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, 1, v.list.Selected())
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil, nil)

	v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, v.width)
	assert.Equal(t, 40, v.height)
}
