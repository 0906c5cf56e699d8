package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsInvertedRange(t *testing.T) {
	c := DefaultConfig()
	c.InputPath = "in.csv"
	c.SearchStart, c.SearchEnd = 24, 16
	assert.Error(t, c.Validate())
}

func TestValidateRejectsUnknownBorderCount(t *testing.T) {
	c := DefaultConfig()
	c.InputPath = "in.csv"
	c.NBorder = 6
	assert.Error(t, c.Validate())
}

func TestValidateAcceptsDefaults(t *testing.T) {
	c := DefaultConfig()
	c.InputPath = "in.csv"
	require.NoError(t, c.Validate())
}

func TestApplyDefaultsFillsZeroFields(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	d := DefaultConfig()
	assert.Equal(t, d.Frequency, c.Frequency)
	assert.Equal(t, d.Iterations, c.Iterations)
	assert.Equal(t, d.NBorder, c.NBorder)
}
