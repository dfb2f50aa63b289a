package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	// Act
	log := NewLogger()

	// Assert
	assert.NotNil(t, log)
	assert.NotPanics(t, func() { log.Info("test message") })
}

func TestNewDevelopmentLogger(t *testing.T) {
	// Act
	log, err := NewDevelopmentLogger()

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, log)
}
