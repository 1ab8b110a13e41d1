package numfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LocaleDataLoader reads locale data files and layers them over a base set of
// entries. Later files win, then per locale overrides are applied.
type LocaleDataLoader struct {
	paths     []string
	overrides map[string]string
}

// NewLocaleDataLoader creates a loader for the given data files.
func NewLocaleDataLoader(paths ...string) *LocaleDataLoader {
	return &LocaleDataLoader{
		paths:     append([]string(nil), paths...),
		overrides: make(map[string]string),
	}
}

// AddOverride registers a file holding a single locale entry.
func (l *LocaleDataLoader) AddOverride(locale, path string) {
	if l == nil || locale == "" || path == "" {
		return
	}
	if l.overrides == nil {
		l.overrides = make(map[string]string)
	}
	l.overrides[canonicalLocale(locale)] = path
}

// Load merges the loader files into base and returns the result. base is not
// modified.
func (l *LocaleDataLoader) Load(base map[string]LocaleEntry) (map[string]LocaleEntry, error) {
	result := make(map[string]LocaleEntry, len(base))
	for locale, entry := range base {
		key := canonicalLocale(locale)
		result[key] = mergeLocaleEntry(result[key], entry)
	}
	if l == nil {
		return result, nil
	}

	for _, path := range l.paths {
		entries, err := LoadLocaleDataFile(path)
		if err != nil {
			return nil, err
		}
		for locale, entry := range entries {
			key := canonicalLocale(locale)
			result[key] = mergeLocaleEntry(result[key], entry)
		}
	}

	for locale, path := range l.overrides {
		entry, err := LoadLocaleEntryFile(path)
		if err != nil {
			return nil, fmt.Errorf("load override for %s: %w", locale, err)
		}
		result[locale] = mergeLocaleEntry(result[locale], entry)
	}
	return result, nil
}

// LoadLocaleDataFile reads a JSON or YAML document with a top level "locales" map.
func LoadLocaleDataFile(path string) (map[string]LocaleEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load locale data: %w", err)
	}

	var file LocaleDataFile
	if err := decodeLocaleData(path, data, &file); err != nil {
		return nil, err
	}
	if len(file.Locales) == 0 {
		return nil, fmt.Errorf("locale data %s: no locales defined", path)
	}
	if err := validateLocaleEntries(file.Locales); err != nil {
		return nil, fmt.Errorf("locale data %s: %w", path, err)
	}
	return file.Locales, nil
}

// LoadLocaleEntryFile reads a single LocaleEntry document.
func LoadLocaleEntryFile(path string) (LocaleEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LocaleEntry{}, fmt.Errorf("load locale entry: %w", err)
	}

	var entry LocaleEntry
	if err := decodeLocaleData(path, data, &entry); err != nil {
		return LocaleEntry{}, err
	}
	if err := validateLocaleEntries(map[string]LocaleEntry{path: entry}); err != nil {
		return LocaleEntry{}, fmt.Errorf("locale entry %s: %w", path, err)
	}
	return entry, nil
}

func decodeLocaleData(path string, data []byte, out any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("json parse error in %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("yaml parse error in %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported locale data format %q", filepath.Ext(path))
	}
	return nil
}

// validateLocaleEntries checks symbol keys, style keys and patterns so a bad
// data file fails at load time instead of at formatter construction.
func validateLocaleEntries(entries map[string]LocaleEntry) error {
	var errs []error
	for locale, entry := range entries {
		for name := range entry.Symbols {
			if _, err := ParseSymbol(name); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", locale, err))
			}
		}
		for name, pattern := range entry.Patterns {
			if _, err := ParseStyle(name); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", locale, err))
				continue
			}
			if _, err := CompilePattern(pattern); err != nil {
				errs = append(errs, fmt.Errorf("%s %s: %w", locale, name, err))
			}
		}
		if entry.Currency != "" {
			if _, err := parseCurrencyCode(entry.Currency); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", locale, err))
			}
		}
	}
	return errors.Join(errs...)
}
