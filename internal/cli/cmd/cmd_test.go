package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	values, err := parseFields([]string{"roomId=R1", "description=sea view = yes"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"roomId": "R1", "description": "sea view = yes"}, values)

	_, err = parseFields([]string{"novalue"})
	assert.Error(t, err)

	_, err = parseFields([]string{"=x"})
	assert.Error(t, err)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"login", "logout", "whoami", "dashboard", "actions", "run"} {
		assert.True(t, names[want], want)
	}
}
