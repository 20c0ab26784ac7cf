package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chayuto/ai-truffle-hog/internal/model"
)

func TestLoadOptionsAppliesFlagOverridesOnTopOfDefaults(t *testing.T) {
	flags := &scanFlags{
		contextLines:  5,
		maxConcurrent: 2,
		timeout:       30 * time.Second,
		validate:      true,
		providers:     []string{"openai", "anthropic"},
	}

	opts := loadOptions(flags)

	assert.True(t, opts.Validator.Enabled)
	assert.Equal(t, 5, opts.Scanner.ContextLines)
	assert.Equal(t, 2, opts.Validator.MaxConcurrent)
	assert.Equal(t, 30, opts.Validator.TimeoutSeconds)
	assert.True(t, opts.Scanner.ProviderFilter["openai"])
	assert.True(t, opts.Scanner.ProviderFilter["anthropic"])
}

func TestLoadOptionsFallsBackToDefaultsWithoutFlags(t *testing.T) {
	opts := loadOptions(&scanFlags{})
	assert.False(t, opts.Validator.Enabled)
	assert.Nil(t, opts.Scanner.ProviderFilter)
}

func TestLoadOptionsReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scanner:\n  context_lines: 9\nvalidator:\n  enabled: true\n"), 0o644))

	opts := loadOptions(&scanFlags{configPath: path})

	assert.Equal(t, 9, opts.Scanner.ContextLines)
	assert.True(t, opts.Validator.Enabled)
}

func TestRenderReportDispatchesByFormat(t *testing.T) {
	session := model.NewScanSession([]string{"repo-a"}, false, time.Now())
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	require.NoError(t, renderReport(cmd, "json", session))
	assert.Contains(t, buf.String(), `"targets"`)

	buf.Reset()
	require.NoError(t, renderReport(cmd, "table", session))
	assert.Contains(t, buf.String(), "PROVIDER")

	buf.Reset()
	require.NoError(t, renderReport(cmd, "sarif", session))
	assert.Contains(t, buf.String(), `"version": "2.1.0"`)

	err := renderReport(cmd, "yaml", session)
	assert.Error(t, err)
}
