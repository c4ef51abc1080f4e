package store

import "fmt"

const keyScreenTimeout = "screen_timeout_enabled"

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// ScreenTimeoutEnabled reports whether the kiosk display should sleep when
// idle. An unreadable setting degrades to the safe default (enabled)
// rather than failing.
func (s *Store) ScreenTimeoutEnabled() bool {
	v, err := s.GetSetting(keyScreenTimeout)
	if err != nil {
		return true
	}
	return v != "0"
}

func (s *Store) SetScreenTimeoutEnabled(enabled bool) error {
	v := "0"
	if enabled {
		v = "1"
	}
	return s.SetSetting(keyScreenTimeout, v)
}
