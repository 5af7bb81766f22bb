package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigPaths(t *testing.T) {
	x := NewXDGDirs()

	paths := x.GetConfigPaths("config.json")

	require.NotEmpty(t, paths)
	for _, p := range paths {
		assert.True(t, strings.HasSuffix(p, "logpick/config.json"), "unexpected path %s", p)
	}
}

func TestGetConfigPathsWithoutFilename(t *testing.T) {
	x := NewXDGDirs()

	paths := x.GetConfigPaths("")

	require.NotEmpty(t, paths)
	for _, p := range paths {
		assert.True(t, strings.HasSuffix(p, "logpick"), "unexpected path %s", p)
	}
}

func TestGetCachePath(t *testing.T) {
	x := NewXDGDirs()

	assert.True(t, strings.HasSuffix(x.GetCachePath(""), "logpick"))
	assert.True(t, strings.HasSuffix(x.GetCachePath("logs"), "logpick/logs"))
}
