package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const heroSource = `export function Hero() {
  return (
    <motion.section style={{ y: heroY, opacity: 1 }} className="hero">
      <motion.h1 initial={{ opacity: 0, y: 20 }} animate={{ opacity: 1, y: 0 }} className="title">
        Web design
      </motion.h1>
    </motion.section>
  )
}
`

const heroCleaned = `export function Hero() {
  return (
    <motion.section className="hero">
      <motion.h1 className="title">
        Web design
      </motion.h1>
    </motion.section>
  )
}
`

func writeFile(t *testing.T, dir, name, content string, mode os.FileMode) string {
	t.Helper()
	location := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(location, []byte(content), mode))
	return location
}

func TestService_Strip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	location := writeFile(t, dir, "hero.tsx", heroSource, 0o640)

	svc := NewService(nil)
	out, err := svc.Strip(ctx, &StripInput{URL: location})
	require.NoError(t, err)
	assert.Equal(t, location, out.URL)
	assert.True(t, out.Changed)
	assert.True(t, out.Written)
	assert.Equal(t, 3, out.Edits)
	assert.Equal(t, map[string]int{"heroY": 1, "initial": 1, "animate": 1}, out.Removed)
	assert.Empty(t, out.Diff)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, heroCleaned, string(data))

	info, err := os.Stat(location)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	out, err = svc.Strip(ctx, &StripInput{URL: location})
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.False(t, out.Written)
	assert.Equal(t, 0, out.Edits)
	assert.Nil(t, out.Removed)
}

func TestService_Strip_DryRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	source := "<div\n  initial=\"x\"\n  className=\"c\">\n</div>\n"
	location := writeFile(t, dir, "card.tsx", source, 0o644)

	svc := NewService(&Config{})
	out, err := svc.Strip(ctx, &StripInput{URL: location, DryRun: true})
	require.NoError(t, err)
	assert.True(t, out.Changed)
	assert.False(t, out.Written)
	assert.Equal(t, 1, out.Edits)
	assert.Equal(t, "-  initial=\"x\"\n", out.Diff)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, source, string(data))
}

func TestService_Strip_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	binary := writeFile(t, dir, "binary.tsx", "<div initial=\"\xff\xfe\">", 0o644)

	svc := NewService(nil)
	testCases := []struct {
		description string
		input       *StripInput
		expect      string
	}{
		{description: "nil input", input: nil, expect: "url is required"},
		{description: "blank url", input: &StripInput{URL: "  "}, expect: "url is required"},
		{description: "missing file", input: &StripInput{URL: filepath.Join(dir, "missing.tsx")}, expect: "missing.tsx"},
		{description: "directory", input: &StripInput{URL: dir}, expect: "is a directory"},
		{description: "invalid encoding", input: &StripInput{URL: binary}, expect: "not valid UTF-8"},
	}
	for _, testCase := range testCases {
		_, err := svc.Strip(ctx, testCase.input)
		if assert.Error(t, err, testCase.description) {
			assert.Contains(t, err.Error(), testCase.expect, testCase.description)
		}
	}

	data, err := os.ReadFile(binary)
	require.NoError(t, err)
	assert.Equal(t, "<div initial=\"\xff\xfe\">", string(data))
}

func TestService_resolve(t *testing.T) {
	testCases := []struct {
		description string
		baseURL     string
		URL         string
		expect      string
		hasError    bool
	}{
		{description: "no base", URL: "a/b.tsx", expect: "a/b.tsx"},
		{description: "relative under local base", baseURL: "/srv/site/", URL: "app/page.tsx", expect: "/srv/site/app/page.tsx"},
		{description: "absolute under local base", baseURL: "/srv/site", URL: "/srv/site/app/page.tsx", expect: "/srv/site/app/page.tsx"},
		{description: "escape local base", baseURL: "/srv/site", URL: "../etc/passwd", hasError: true},
		{description: "sibling prefix", baseURL: "/srv/site", URL: "/srv/site2/page.tsx", hasError: true},
		{description: "relative under storage base", baseURL: "mem://localhost/site", URL: "components/hero.tsx", expect: "mem://localhost/site/components/hero.tsx"},
		{description: "storage url under base", baseURL: "mem://localhost/site", URL: "mem://localhost/site/./a/../b.tsx", expect: "mem://localhost/site/b.tsx"},
		{description: "other storage url", baseURL: "mem://localhost/site", URL: "gs://bucket/site/b.tsx", hasError: true},
	}
	for _, testCase := range testCases {
		svc := NewService(&Config{BaseURL: testCase.baseURL})
		actual, err := svc.resolve(testCase.URL)
		if testCase.hasError {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestRenderDiff(t *testing.T) {
	before := "<div initial=\"hidden\" className=\"box\">\n  text\n</div>\n"
	after := Strip(before)
	assert.Equal(t, "-<div initial=\"hidden\" className=\"box\">\n+<div className=\"box\">\n", renderDiff(before, after, 0))
	assert.Empty(t, renderDiff(after, after, 0))

	limited := renderDiff(before, after, 10)
	assert.True(t, strings.HasPrefix(limited, "-<div init"))
	assert.True(t, strings.HasSuffix(limited, truncatedMarker))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 0))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab"+truncatedMarker, truncate("abc", 2))
	// "é" is two bytes; cutting inside it backs off to the rune start.
	assert.Equal(t, "a"+truncatedMarker, truncate("aéb", 2))
}
