package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	t.Run("plain output", func(t *testing.T) {
		root := NewRootCmd()
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetArgs([]string{"version"})

		require.NoError(t, root.Execute())
		assert.Contains(t, buf.String(), "coursekit v"+Version)
	})

	t.Run("json output", func(t *testing.T) {
		root := NewRootCmd()
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetArgs([]string{"version", "--output", "json"})

		require.NoError(t, root.Execute())

		var info VersionInfo
		require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
		assert.Equal(t, Version, info.Version)
	})

	t.Run("rejects arguments", func(t *testing.T) {
		root := NewRootCmd()
		root.SetOut(new(bytes.Buffer))
		root.SetErr(new(bytes.Buffer))
		root.SetArgs([]string{"version", "extra"})

		assert.Error(t, root.Execute())
	})
}
