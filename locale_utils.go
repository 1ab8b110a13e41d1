package numfmt

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// localeParentChain returns the parents of locale, closest first, following
// the CLDR parent locales known to golang.org/x/text. Tags that do not parse
// drop one subtag at a time. The root locale is not included.
func localeParentChain(locale string) []string {
	var chain []string
	seen := map[string]struct{}{locale: {}}
	add := func(code string) {
		if code == "" || code == "und" || code == RootLocale {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		chain = append(chain, code)
	}

	if tag, err := language.Parse(locale); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			add(parent.String())
		}
		return chain
	}

	for code := locale; ; {
		idx := strings.LastIndex(code, "-")
		if idx <= 0 {
			break
		}
		code = code[:idx]
		add(code)
	}
	return chain
}

// normalizeLocale replaces underscores with hyphens and trims whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// canonicalLocale returns the BCP 47 form of locale when it parses, and the
// normalized input otherwise. "root" and "und" map to RootLocale.
func canonicalLocale(locale string) string {
	normalized := normalizeLocale(locale)
	switch strings.ToLower(normalized) {
	case "", RootLocale, "und":
		return RootLocale
	}
	if tag, err := language.Parse(normalized); err == nil {
		return tag.String()
	}
	return normalized
}

func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(locales))
	result := make([]string, 0, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}
