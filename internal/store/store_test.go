// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/datafix/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// --- prefs ---

func TestTheme_DefaultsToDark(t *testing.T) {
	s := testStore(t, t.TempDir())
	got, err := s.Theme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got)
}

func TestTheme_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "state")

	s, err := NewStore(types.StoreConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, s.SetTheme(ctx, ThemeLight))
	require.NoError(t, s.Close())

	reopened := testStore(t, dir)
	got, err := reopened.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, got)
}

func TestTheme_Toggle(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, t.TempDir())

	next, err := s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, next)

	next, err = s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, next)

	got, err := s.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got)
}

func TestTheme_RejectsUnknown(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, t.TempDir())

	assert.Error(t, s.SetTheme(ctx, Theme("sepia")))

	// A corrupted stored value falls back to the default.
	require.NoError(t, s.Set(ctx, keyTheme, "sepia"))
	got, err := s.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, got)
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"dark", ThemeDark, false},
		{"light", ThemeLight, false},
		{"Dark", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTheme(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestModalSeen(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, t.TempDir())

	seen, err := s.ModalSeen(ctx)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, s.MarkModalSeen(ctx))
	require.NoError(t, s.MarkModalSeen(ctx))

	seen, err = s.ModalSeen(ctx)
	require.NoError(t, err)
	assert.True(t, seen)
}

// --- history ---

func TestAttempts_RecordAndList(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, t.TempDir())
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	recs := []types.AttemptRecord{
		{ID: "a", FileName: "one.pkg", ResultFilename: "Case#1#Datafix.pkg", CaseID: "1", Status: types.AttemptCompleted, CreatedAt: base},
		{ID: "b", FileName: "two.txt", Status: types.AttemptFailed, Message: "Please upload a .pkg file", CreatedAt: base.Add(time.Minute)},
		{ID: "c", FileName: "three.pkg", Status: types.AttemptFailed, Message: "bad header", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range recs {
		require.NoError(t, s.RecordAttempt(ctx, r))
	}

	got, err := s.ListAttempts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, recs[0].CaseID, got[2].CaseID)
	assert.Equal(t, types.AttemptCompleted, got[2].Status)
	assert.True(t, got[2].CreatedAt.Equal(base))

	got, err = s.ListAttempts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestAttempts_RecordReplacesSameID(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, t.TempDir())

	require.NoError(t, s.RecordAttempt(ctx, types.AttemptRecord{ID: "a", FileName: "x.pkg", Status: types.AttemptFailed}))
	require.NoError(t, s.RecordAttempt(ctx, types.AttemptRecord{ID: "a", FileName: "x.pkg", Status: types.AttemptCompleted}))

	got, err := s.ListAttempts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, types.AttemptCompleted, got[0].Status)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestAttempts_RequiresID(t *testing.T) {
	s := testStore(t, t.TempDir())
	assert.Error(t, s.RecordAttempt(context.Background(), types.AttemptRecord{FileName: "x.pkg"}))
}

func TestExportYAML(t *testing.T) {
	ctx := context.Background()
	s := testStore(t, t.TempDir())

	var empty bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, &empty, 0))
	assert.Equal(t, "[]\n", empty.String())

	require.NoError(t, s.RecordAttempt(ctx, types.AttemptRecord{
		ID: "a", FileName: "one.pkg", ResultFilename: "f.sql", CaseID: "77",
		Status: types.AttemptCompleted, CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}))

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, &buf, 0))

	var decoded []types.AttemptRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "77", decoded[0].CaseID)
	assert.Equal(t, "f.sql", decoded[0].ResultFilename)
	assert.Contains(t, buf.String(), "status: completed")
}
