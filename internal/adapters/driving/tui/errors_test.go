package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingAnswerService.Error(), ErrInvalidPorts.Error())
}

func TestErrMissingAnswerService_Message(t *testing.T) {
	assert.Contains(t, ErrMissingAnswerService.Error(), "answer service")
}

func TestErrInvalidPorts_Message(t *testing.T) {
	assert.Contains(t, ErrInvalidPorts.Error(), "invalid ports")
}
