package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes rootCmd with args and --disk-path pointed at disk,
// capturing combined stdout, the way gcsfuse's root_test.go drives
// its cobra command via SetArgs/Execute.
func run(t *testing.T, disk string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--disk-path=" + disk}, args...))
	err := rootCmd.Execute()
	require.NoError(t, err)
	return out.String()
}

func runErr(t *testing.T, disk string, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--disk-path=" + disk}, args...))
	return rootCmd.Execute()
}

func TestMkfsThenMkdirThenLs(t *testing.T) {
	disk := filepath.Join(t.TempDir(), "image.bolt")

	run(t, disk, "mkfs")
	run(t, disk, "mkdir", "/a")

	out := run(t, disk, "ls", "/")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, ".")
	assert.Contains(t, out, "..")
}

func TestWriteThenCatRoundTrips(t *testing.T) {
	disk := filepath.Join(t.TempDir(), "image.bolt")

	run(t, disk, "mkfs")
	run(t, disk, "write", "/greeting", "hello, minixfs")

	out := run(t, disk, "cat", "/greeting")
	assert.Equal(t, "hello, minixfs", out)
}

func TestSymlinkResolvesToTargetDirectory(t *testing.T) {
	disk := filepath.Join(t.TempDir(), "image.bolt")

	run(t, disk, "mkfs")
	run(t, disk, "mkdir", "/dir")
	run(t, disk, "symlink", "/dir", "/link")

	out := run(t, disk, "ls", "/link")
	assert.Contains(t, out, ".")
	assert.Contains(t, out, "..")
}

func TestLnThenUnlinkKeepsOriginal(t *testing.T) {
	disk := filepath.Join(t.TempDir(), "image.bolt")

	run(t, disk, "mkfs")
	run(t, disk, "write", "/a", "payload")
	run(t, disk, "ln", "/a", "/b")
	run(t, disk, "rm", "/b")

	out := run(t, disk, "cat", "/a")
	assert.Equal(t, "payload", out)
}

func TestMvRenamesEntry(t *testing.T) {
	disk := filepath.Join(t.TempDir(), "image.bolt")

	run(t, disk, "mkfs")
	run(t, disk, "mkdir", "/a")
	run(t, disk, "mv", "/a", "/c")

	out := run(t, disk, "ls", "/")
	assert.Contains(t, out, "c")
	assert.NotContains(t, out, " a\n")
}

func TestRmDirRejectsNonEmpty(t *testing.T) {
	disk := filepath.Join(t.TempDir(), "image.bolt")

	run(t, disk, "mkfs")
	run(t, disk, "mkdir", "/a")
	run(t, disk, "mkdir", "/a/b")

	err := runErr(t, disk, "rm", "-d", "/a")
	assert.Error(t, err)
}

func TestMkfsRefusesExistingImage(t *testing.T) {
	disk := filepath.Join(t.TempDir(), "image.bolt")

	run(t, disk, "mkfs")
	err := runErr(t, disk, "mkfs")
	assert.Error(t, err)
}
