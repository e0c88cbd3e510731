package config

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/keshon/lit/internal/fs"
)

// Repository options are stored as an INI file at .lit/config, e.g.
//
//	[user]
//	name = alice

// GetOption reads a "section.key" option. Missing file or key yields "".
func GetOption(fsys fs.FS, c *RepoConfig, key string) (string, error) {
	section, name, err := splitKey(key)
	if err != nil {
		return "", err
	}

	data, err := fsys.ReadFile(c.ConfigPath())
	if err != nil {
		return "", nil
	}
	f, err := ini.Load(data)
	if err != nil {
		return "", fmt.Errorf("failed to parse config: %w", err)
	}
	return f.Section(section).Key(name).String(), nil
}

// SetOption writes a "section.key" option, creating the file if needed.
func SetOption(fsys fs.FS, c *RepoConfig, key, value string) error {
	section, name, err := splitKey(key)
	if err != nil {
		return err
	}

	var f *ini.File
	if data, err := fsys.ReadFile(c.ConfigPath()); err == nil {
		if f, err = ini.Load(data); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	} else {
		f = ini.Empty()
	}

	f.Section(section).Key(name).SetValue(value)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	return fsys.WriteFile(c.ConfigPath(), buf.Bytes(), 0o644)
}

// Author returns the configured user.name, or DefaultAuthor if unset.
func Author(fsys fs.FS, c *RepoConfig) string {
	name, err := GetOption(fsys, c, "user.name")
	if err != nil || name == "" {
		return DefaultAuthor
	}
	return name
}

func splitKey(key string) (section, name string, err error) {
	section, name, ok := strings.Cut(key, ".")
	if !ok || section == "" || name == "" {
		return "", "", fmt.Errorf("invalid config key %q (want section.key)", key)
	}
	return section, name, nil
}
