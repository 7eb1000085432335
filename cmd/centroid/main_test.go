package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(append(args, "--no-color"))
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestGen(t *testing.T) {
	out, _, err := execute(t, "", "gen", "star", "-n", "3")
	require.NoError(t, err)
	assert.Equal(t, "(()())\n", out)

	a, _, err := execute(t, "", "gen", "random", "-n", "200", "--seed", "9")
	require.NoError(t, err)
	b, _, _ := execute(t, "", "gen", "random", "-n", "200", "--seed", "9")
	assert.Equal(t, a, b)
	assert.Len(t, strings.TrimSpace(a), 400)

	_, _, err = execute(t, "", "gen", "cycle")
	assert.Error(t, err)
	_, _, err = execute(t, "", "gen", "path", "-n", "0")
	assert.Error(t, err)
}

func TestDecompose(t *testing.T) {
	out, _, err := execute(t, "(()())\n", "decompose", "-o", "-c", "-a", "1")
	require.NoError(t, err)
	assert.Equal(t, "(0(8)(6))", strings.SplitN(out, "\n", 2)[0])
	assert.Contains(t, out, "nodes 3 height 2")

	out, _, err = execute(t, "(()())", "decompose", "-o", "--std")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "(0(6)(8))\n"))

	_, _, err = execute(t, "(()", "decompose")
	assert.Error(t, err)
	_, _, err = execute(t, "(())", "decompose", "-a", "70000")
	assert.Error(t, err)
}

func TestDecompose_File(t *testing.T) {
	gen, _, err := execute(t, "", "gen", "binary", "-n", "1000")
	require.NoError(t, err)
	name := filepath.Join(t.TempDir(), "tree.txt")
	require.NoError(t, os.WriteFile(name, []byte(gen), 0o644))

	lin, log, err := execute(t, "", "decompose", "-i", name, "-c", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, log, "decomposed")
	assert.Contains(t, log, "checked")
	std, _, err := execute(t, "", "decompose", "-i", name, "--std")
	require.NoError(t, err)
	// Both pick the same centroids, so only the order of the children can differ.
	l, s := strings.Fields(lin), strings.Fields(std)
	require.Len(t, l, 6)
	require.Len(t, s, 6)
	assert.Equal(t, "1000", l[1])
	assert.Equal(t, s[:4], l[:4])

	_, _, err = execute(t, "", "decompose", "-i", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestDecompose_Env(t *testing.T) {
	t.Setenv("CENTROID_THRESHOLD", "-1")
	t.Setenv("CENTROID_COVER_SIZE", "2")
	out, errOut, err := execute(t, "(((())))", "decompose", "-o", "-c", "--log-level", "debug")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "(4(0)(8(12)))\n"))
	assert.Contains(t, errOut, "searches=4")
	assert.NotContains(t, errOut, "fallbacks=1")
}

func TestLogLevel(t *testing.T) {
	_, _, err := execute(t, "", "gen", "path", "--log-level", "loud")
	assert.Error(t, err)
	_, errOut, err := execute(t, "(())", "decompose", "--log-level", "error")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}
