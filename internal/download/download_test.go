// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSaver_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := FileSaver{Dir: dir}

	require.NoError(t, s.Save("f.sql", "text/plain", strings.NewReader("UPDATE t SET a = 1;")))

	data, err := os.ReadFile(filepath.Join(dir, "f.sql"))
	require.NoError(t, err)
	assert.Equal(t, "UPDATE t SET a = 1;", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileSaver_Overwrites(t *testing.T) {
	dir := t.TempDir()
	s := FileSaver{Dir: dir}

	require.NoError(t, s.Save("f.sql", "text/plain", strings.NewReader("first")))
	require.NoError(t, s.Save("f.sql", "text/plain", strings.NewReader("second")))

	data, err := os.ReadFile(filepath.Join(dir, "f.sql"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFileSaver_Path(t *testing.T) {
	s := FileSaver{Dir: "out"}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "case-1.sql", filepath.Join("out", "case-1.sql"), false},
		{"strips directories", "../../etc/passwd", filepath.Join("out", "passwd"), false},
		{"dot", ".", "", true},
		{"dotdot", "..", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Path(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestFileSaver_ReadErrorRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	s := FileSaver{Dir: dir}

	err := s.Save("f.sql", "text/plain", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemorySaver(t *testing.T) {
	var m MemorySaver
	require.NoError(t, m.Save("f.sql", "text/plain", strings.NewReader("X")))

	name, mime, data := m.Last()
	assert.Equal(t, "f.sql", name)
	assert.Equal(t, "text/plain", mime)
	assert.Equal(t, []byte("X"), data)
	assert.Equal(t, 1, m.Count())
}
