package util

import (
	"gopkg.in/ini.v1"
)

// LoadIni loads an ini file. An empty path yields an empty file, so callers keep their defaults.
func LoadIni(path string) (*ini.File, error) {
	if path == "" {
		return ini.Empty(), nil
	}
	return ini.Load(path)
}

// Override returns the value of key in the default section of f if the key exists, else value.
func Override(f *ini.File, key string, value string) string {
	if k, err := f.Section("").GetKey(key); err == nil {
		return k.String()
	}
	return value
}
