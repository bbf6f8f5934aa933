// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Theme is the display mode preference.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"

	// DefaultTheme applies until the user picks one.
	DefaultTheme = ThemeDark
)

const (
	keyTheme     = "theme"
	keyModalSeen = "modal_seen"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q: use dark or light", s)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Get returns the value stored under key and whether it was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading pref %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing pref %s: %w", key, err)
	}
	return nil
}

// Theme returns the saved theme, or DefaultTheme when none is saved or the
// saved value is not recognised.
func (s *Store) Theme(ctx context.Context) (Theme, error) {
	v, ok, err := s.Get(ctx, keyTheme)
	if err != nil {
		return "", err
	}
	if !ok {
		return DefaultTheme, nil
	}
	t, err := ParseTheme(v)
	if err != nil {
		return DefaultTheme, nil
	}
	return t, nil
}

// SetTheme saves t.
func (s *Store) SetTheme(ctx context.Context, t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	return s.Set(ctx, keyTheme, string(t))
}

// ToggleTheme flips the saved theme and returns the new one.
func (s *Store) ToggleTheme(ctx context.Context) (Theme, error) {
	cur, err := s.Theme(ctx)
	if err != nil {
		return "", err
	}
	next := cur.Toggle()
	if err := s.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// ModalSeen reports whether the welcome notice was dismissed before.
func (s *Store) ModalSeen(ctx context.Context) (bool, error) {
	v, ok, err := s.Get(ctx, keyModalSeen)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}

// MarkModalSeen records that the welcome notice was dismissed.
func (s *Store) MarkModalSeen(ctx context.Context) error {
	return s.Set(ctx, keyModalSeen, "true")
}
