package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func TestLoaderLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor.yaml")
	writeFile(t, path, "controller:\n  strategy: easing\n")

	l := NewLoader(path)
	defer l.Close()

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "easing", cfg.Controller.Strategy)
	assert.Same(t, cfg, l.Config())
}

func TestLoaderLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor.yaml")
	writeFile(t, path, "controller:\n  strategy: warp\n")

	l := NewLoader(path)
	defer l.Close()

	_, err := l.Load()
	assert.ErrorContains(t, err, "validation failed")
	assert.Nil(t, l.Config())
}

func TestLoaderWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor.yaml")
	writeFile(t, path, "controller:\n  strategy: lerp\n")

	l := NewLoader(path)
	defer l.Close()
	_, err := l.Load()
	require.NoError(t, err)

	changed := make(chan *Config, 4)
	l.OnChange(func(c *Config) { changed <- c })
	require.NoError(t, l.Watch())

	writeFile(t, path, "controller:\n  strategy: spring\n")

	select {
	case cfg := <-changed:
		assert.Equal(t, "spring", cfg.Controller.Strategy)
		assert.Equal(t, "spring", l.Config().Controller.Strategy)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestLoaderWatch_InvalidKeepsOld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cursor.yaml")
	writeFile(t, path, "controller:\n  strategy: lerp\n")

	l := NewLoader(path)
	defer l.Close()
	_, err := l.Load()
	require.NoError(t, err)
	require.NoError(t, l.Watch())

	writeFile(t, path, "run:\n  dt: -1\n")

	select {
	case err := <-l.Errors():
		assert.ErrorContains(t, err, "reload config")
	case <-time.After(5 * time.Second):
		t.Fatal("no error after invalid write")
	}
	assert.Equal(t, "lerp", l.Config().Controller.Strategy)
}
