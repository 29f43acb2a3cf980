package loader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("load program file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x12, 0x34, 0x56, 0x78})

		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		}

		data, err := loader.Load(opts)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, data)
	})

	t.Run("load odd sized program file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x00, 0xE0, 0x12})

		data, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		})
		assert.NoError(t, err)
		assert.Len(t, data, 3)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		loader := New()
		opts := options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/file.ch8"},
		}

		_, err := loader.Load(opts)
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("error on empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		_, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		})
		assert.True(t, errors.Is(err, ErrEmptyProgram))
	})
}

func TestLoadFromReader(t *testing.T) {
	data, err := New().LoadFromReader(bytes.NewReader([]byte{0x00, 0xE0}))
	assert.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xE0}, data)
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
