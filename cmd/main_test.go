package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "migrate", "populate", "reset", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestVersionCmd(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Build version: N/A")
	assert.Contains(t, out.String(), "Build commit: N/A")
}

func TestPopulateCmd_Flags(t *testing.T) {
	cmd := newPopulateCmd()

	require.NoError(t, cmd.ParseFlags([]string{"-n", "25", "--replace"}))
	count, err := cmd.Flags().GetInt("count")
	require.NoError(t, err)
	assert.Equal(t, 25, count)
	replace, err := cmd.Flags().GetBool("replace")
	require.NoError(t, err)
	assert.True(t, replace)
}
