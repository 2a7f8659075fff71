package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(dir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func sum(s string) uint32 {
	return crc32.ChecksumIEEE([]byte(s))
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run(append([]string{"sfv"}, args...))
	return stdout.String(), exitCode(io.Discard, err)
}

func TestVerifyAllOK(t *testing.T) {
	dir := t.TempDir()
	manifest := fmt.Sprintf("; made by hand\na.txt %08x\nb.TXT %08x\n",
		sum("alpha"), sum("beta"),
	)
	makeTree(t, dir, map[string]string{
		"a.txt": "alpha",
		"B.txt": "beta",
		"x.sfv": manifest,
	})

	out, code := run(t, filepath.Join(dir, "x.sfv"))
	assert.Equal(t, 0, code)
	assert.Equal(t, "a.txt crc ok.\nb.TXT crc ok.\n", out)
}

func TestVerifyExitCodes(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"ok.txt":  "ok",
		"bad.txt": "corrupt",
	})
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		return path
	}

	okLine := fmt.Sprintf("ok.txt %08x\n", sum("ok"))
	badLine := fmt.Sprintf("bad.txt %08x\n", sum("original"))
	missingLine := "gone.txt 00000000\n"

	_, code := run(t, write("missing.sfv", okLine+missingLine))
	assert.Equal(t, 1, code)

	_, code = run(t, write("bad.sfv", okLine+badLine))
	assert.Equal(t, 2, code)

	out, code := run(t, write("both.sfv", okLine+badLine+missingLine))
	assert.Equal(t, 3, code)
	assert.Equal(t,
		"ok.txt crc ok.\nbad.txt bad crc.\ngone.txt missing.\n",
		out,
	)
}

func TestVerifyQuietSummary(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"a":     "12345",
		"m.sfv": fmt.Sprintf("a %08x\nb 00000000\n", sum("12345")),
	})
	manifest := filepath.Join(dir, "m.sfv")

	out, code := run(t, "-qs", manifest)
	assert.Equal(t, 1, code)
	assert.Equal(t,
		manifest+": 2 files tested, 1 missing, 0 bad (5 B read).\n",
		out,
	)
}

func TestVerifyOtherDir(t *testing.T) {
	manifestDir := t.TempDir()
	dataDir := t.TempDir()
	makeTree(t, dataDir, map[string]string{"f.bin": "data"})
	manifest := filepath.Join(manifestDir, "f.sfv")
	require.NoError(t, os.WriteFile(manifest,
		[]byte(fmt.Sprintf("f.bin %08x\n", sum("data"))), 0644,
	))

	_, code := run(t, manifest)
	assert.Equal(t, 1, code)

	out, code := run(t, "-d", dataDir, manifest)
	assert.Equal(t, 0, code)
	assert.Equal(t, "f.bin crc ok.\n", out)
}

func TestVerifyJSON(t *testing.T) {
	dir := t.TempDir()
	manifest := fmt.Sprintf("file.bin %08x\nlost.bin 0x1\n", sum("payload"))
	makeTree(t, dir, map[string]string{
		"File.bin": "payload",
		"j.sfv":    manifest,
	})

	out, code := run(t, "--json", filepath.Join(dir, "j.sfv"))
	assert.Equal(t, 1, code)

	var doc runJSON
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "verify", doc.Mode)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, entryJSON{
		Name:   "file.bin",
		File:   "File.bin",
		CRC:    fmt.Sprintf("%08x", sum("payload")),
		Status: "ok",
		Size:   7,
	}, doc.Entries[0])
	assert.Equal(t, "missing", doc.Entries[1].Status)
	assert.Equal(t, "00000001", doc.Entries[1].CRC)
	assert.Equal(t, summaryJSON{Total: 2, Missing: 1, Bytes: 7}, doc.Summary)
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"a.bin": "aaa"})
	manifest := filepath.Join(dir, "new.sfv")

	out, code := run(t, "-c", manifest, "a.bin", "b.bin")
	assert.Equal(t, 1, code)
	assert.Equal(t, "a.bin added.\nb.bin missing.\n", out)

	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	assert.Equal(t,
		fmt.Sprintf("a.bin %08x\n; b.bin failed.\n", sum("aaa")),
		string(data),
	)

	out, code = run(t, manifest)
	assert.Equal(t, 0, code)
	assert.Equal(t, "a.bin crc ok.\n", out)
}

func TestCreateExcludesAndSkipsSelf(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"a.r00":    "one",
		"a.nfo":    "info",
		"self.sfv": "old",
	})
	manifest := filepath.Join(dir, "self.sfv")

	out, code := run(t, "-c", "--exclude", "*.NFO",
		manifest, "a.r00", "a.nfo", "self.sfv",
	)
	assert.Equal(t, 0, code)
	assert.Equal(t, "a.r00 added.\n", out)

	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("a.r00 %08x\n", sum("one")), string(data))
}

func TestCreateSummary(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, map[string]string{"x": "xyz"})
	manifest := filepath.Join(dir, "s.sfv")

	out, code := run(t, "-c", "-q", "-s", manifest, "x")
	assert.Equal(t, 0, code)
	assert.Equal(t,
		manifest+": 1 files added, 0 missing, 0 bad (3 B read).\n",
		out,
	)
}

func TestReadErrorsFlag(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"sub/inner": "x",
		"d.sfv":     "sub 00000000\n",
	})
	manifest := filepath.Join(dir, "d.sfv")

	_, code := run(t, manifest)
	assert.Equal(t, 1, code)

	out, code := run(t, "--read-errors", "bad", manifest)
	assert.Equal(t, 2, code)
	assert.Equal(t, "sub bad crc.\n", out)

	out, code = run(t, "--read-errors", "missing", manifest)
	assert.Equal(t, 1, code)
	assert.Equal(t, "sub missing.\n", out)

	_, code = run(t, "--read-errors", "sometimes", manifest)
	assert.Equal(t, 1, code)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"a":        "a",
		"c.sfv":    fmt.Sprintf("a %08x\n", sum("a")),
		"cfg.yaml": "quiet: true\nsummary: true\n",
	})
	manifest := filepath.Join(dir, "c.sfv")
	cfg := filepath.Join(dir, "cfg.yaml")

	out, code := run(t, "--config", cfg, manifest)
	assert.Equal(t, 0, code)
	assert.Equal(t,
		manifest+": 1 files tested, 0 missing, 0 bad (1 B read).\n",
		out,
	)

	t.Setenv("SFV_CONFIG", cfg)
	out, code = run(t, "--quiet=false", "--summary=false", manifest)
	assert.Equal(t, 0, code)
	assert.Equal(t, "a crc ok.\n", out)
}

func TestUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"a.sfv", "b.sfv"},
		{"-c", "only.sfv"},
	} {
		var stdout, stderr bytes.Buffer
		err := newApp(&stdout, &stderr).Run(append([]string{"sfv"}, args...))
		assert.Equal(t, 1, exitCode(&stderr, err), "%v", args)
		assert.Contains(t, stdout.String(), "sfv -c [-d directory]", "%v", args)
		assert.NotContains(t, stderr.String(), "error:", "%v", args)
	}
}

func TestCreateConfigAndFlagExcludes(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, map[string]string{
		"a.r00":    "one",
		"a.nfo":    "info",
		"a.txt":    "text",
		"cfg.yaml": "exclude: [\"*.nfo\"]\n",
	})
	manifest := filepath.Join(dir, "c.sfv")
	cfg := filepath.Join(dir, "cfg.yaml")

	for i := 0; i < 2; i++ {
		out, code := run(t, "--config", cfg, "-c", "--exclude", "*.txt",
			manifest, "a.r00", "a.nfo", "a.txt",
		)
		assert.Equal(t, 0, code)
		assert.Equal(t, "a.r00 added.\n", out)
	}
}

func TestManifestUnreadable(t *testing.T) {
	_, code := run(t, filepath.Join(t.TempDir(), "absent.sfv"))
	assert.Equal(t, 1, code)
}

func TestExitCodeMessage(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 0, exitCode(&buf, nil))
	assert.Equal(t, 1, exitCode(&buf, fmt.Errorf("boom")))
	assert.Equal(t, "error: boom\n", buf.String())
}
