package numfmt

import (
	"fmt"
	"sync"
)

// Config captures locale data and registry setup
type Config struct {
	DefaultLocale string
	Locales       []string
	Provider      LocaleDataProvider

	dataPaths     []string
	overrides     map[string]string
	xtextFallback bool

	registryOnce sync.Once
	registry     *Registry
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{xtextFallback: true}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	cfg.Locales = normalizeLocales(cfg.Locales)
	if cfg.DefaultLocale == "" && len(cfg.Locales) > 0 {
		cfg.DefaultLocale = cfg.Locales[0]
	}
	if cfg.DefaultLocale != "" {
		cfg.DefaultLocale = canonicalLocale(cfg.DefaultLocale)
	}

	if cfg.Provider == nil {
		provider, err := cfg.buildProvider()
		if err != nil {
			return nil, err
		}
		cfg.Provider = provider
	}

	return cfg, nil
}

// WithDefaultLocale sets the default locale in Config
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

// WithLocales registers supported locales
func WithLocales(locales ...string) Option {
	return func(c *Config) error {
		c.Locales = append(c.Locales, locales...)
		return nil
	}
}

// WithLocaleDataFile merges a JSON or YAML locale data file over the embedded data.
func WithLocaleDataFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return fmt.Errorf("numfmt: empty locale data path")
		}
		c.dataPaths = append(c.dataPaths, path)
		return nil
	}
}

// WithLocaleOverride merges a single locale entry file for locale.
func WithLocaleOverride(locale, path string) Option {
	return func(c *Config) error {
		if locale == "" || path == "" {
			return fmt.Errorf("numfmt: locale override needs a locale and a path")
		}
		if c.overrides == nil {
			c.overrides = make(map[string]string)
		}
		c.overrides[locale] = path
		return nil
	}
}

// WithProvider replaces the provider chain. Data files and overrides are
// ignored when a provider is set.
func WithProvider(provider LocaleDataProvider) Option {
	return func(c *Config) error {
		c.Provider = provider
		return nil
	}
}

// WithXTextFallback toggles deriving data from golang.org/x/text for locales
// missing from the data files. It is on by default.
func WithXTextFallback(enabled bool) Option {
	return func(c *Config) error {
		c.xtextFallback = enabled
		return nil
	}
}

func (cfg *Config) buildProvider() (LocaleDataProvider, error) {
	base, err := loadBuiltinEntries()
	if err != nil {
		return nil, err
	}

	loader := NewLocaleDataLoader(cfg.dataPaths...)
	for locale, path := range cfg.overrides {
		loader.AddOverride(locale, path)
	}
	entries, err := loader.Load(base)
	if err != nil {
		return nil, err
	}

	static := NewStaticProvider(entries)
	if !cfg.xtextFallback {
		return static, nil
	}
	return ChainProviders(static, NewXTextProvider()), nil
}

// Registry returns the registry built from the configured provider.
func (cfg *Config) Registry() *Registry {
	if cfg == nil {
		return nil
	}
	cfg.registryOnce.Do(func() {
		cfg.registry = NewRegistry(
			WithRegistryProvider(cfg.Provider),
			WithRegistryDefaultLocale(cfg.DefaultLocale),
		)
	})
	return cfg.registry
}

// Formatter builds a formatter for locale and style from the configured provider.
func (cfg *Config) Formatter(locale string, style Style, opts ...FormatterOption) (*Formatter, error) {
	if cfg == nil {
		return New(locale, style, opts...)
	}
	if locale == "" {
		locale = cfg.DefaultLocale
	}
	return New(locale, style, append([]FormatterOption{WithLocaleData(cfg.Provider)}, opts...)...)
}

// TemplateHelpers returns the registry helpers bound to locale, or to the
// default locale when locale is empty.
func (cfg *Config) TemplateHelpers(locale string) map[string]any {
	if locale == "" && cfg != nil {
		locale = cfg.DefaultLocale
	}
	return cfg.Registry().FuncMap(locale)
}
