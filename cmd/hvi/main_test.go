package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "hvi", cmd.Use)

	for _, name := range []string{"dump", "graph", "run"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)
}

func TestDump(t *testing.T) {
	assert := assert.New(t)

	out, err := execute(t, "dump", "testdata/frame_averager.yaml", "testdata/frame_averager.star")
	assert.NoError(err)

	golden, err := os.ReadFile("../../sequencer/testdata/frame_averager.golden")
	assert.NoError(err)
	assert.Equal(string(golden), out)
}

func TestGraph(t *testing.T) {
	assert := assert.New(t)

	out, err := execute(t, "graph", "testdata/frame_averager.yaml", "testdata/frame_averager.star")
	assert.NoError(err)
	assert.True(strings.HasPrefix(out, "graph TB\n"))
	assert.Contains(out, `{"Frames<br/>AWG_LEAD.Iterations < 4"}`)
	assert.Contains(out, `{"Settle<br/>DIG_0.status > 0"}`)
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	out, err := execute(t, "run", "--timeout", "10s", "testdata/frame_averager.yaml", "testdata/frame_averager.star")
	assert.NoError(err)
	assert.True(strings.HasPrefix(out, "artifact "), out)
	assert.Contains(out, "AWG_LEAD.Iterations = 4\n")
	assert.Contains(out, "DIG_0.status = 0\n")
	assert.Equal(4, strings.Count(out, `"Capture" execute_actions: daq1_trigger`))

	_, err = execute(t, "run", "-n", "2", "testdata/frame_averager.yaml", "testdata/frame_averager.star")
	assert.ErrorContains(err, "Frames")
}

func TestBuild_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := execute(t, "dump", "testdata/missing.yaml", "testdata/frame_averager.star")
	assert.Error(err)

	_, err = execute(t, "dump", "testdata/frame_averager.yaml")
	assert.Error(err)

	dir := t.TempDir()
	bad := dir + "/bad.star"
	assert.NoError(os.WriteFile(bad, []byte("start_sync_multi_sequence_block(\"Init\")\n"), 0o644))
	_, err = execute(t, "dump", "testdata/frame_averager.yaml", bad)
	assert.ErrorContains(err, "unclosed child scope")
}
