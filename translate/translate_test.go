package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.NotNil(Printer())
	assert.Equal(Printer(), Printer())
	assert.Equal("register AC: not found", From("register %v: not found", "AC"))
	assert.Equal("0b101", From("0b%v", "101"))
}
