package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "seed"}, names)
}

func TestSubcommandsRejectArguments(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"migrate", "extra"})
	err := root.Execute()
	require.Error(t, err)
}

func TestRegisterSnowflake(t *testing.T) {
	node, err := RegisterSnowflake()
	require.NoError(t, err)
	assert.NotZero(t, node.Generate().Int64())
}
