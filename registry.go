package numfmt

import (
	"fmt"
	"sync"
)

type registryKey struct {
	locale string
	style  Style
}

// Registry caches one prototype formatter per locale and style and hands out
// independent clones. It is safe for concurrent use.
type Registry struct {
	mu            sync.RWMutex
	provider      LocaleDataProvider
	defaultLocale string
	opts          []FormatterOption
	prototypes    map[registryKey]*Formatter
}

type registryConfig struct {
	provider      LocaleDataProvider
	defaultLocale string
	opts          []FormatterOption
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryConfig)

// WithRegistryProvider sets the locale data provider shared by every formatter.
func WithRegistryProvider(provider LocaleDataProvider) RegistryOption {
	return func(rc *registryConfig) {
		rc.provider = provider
	}
}

// WithRegistryDefaultLocale sets the locale used when a call passes "".
func WithRegistryDefaultLocale(locale string) RegistryOption {
	return func(rc *registryConfig) {
		rc.defaultLocale = locale
	}
}

// WithRegistryFormatterOptions applies opts to every formatter the registry builds.
func WithRegistryFormatterOptions(opts ...FormatterOption) RegistryOption {
	return func(rc *registryConfig) {
		rc.opts = append(rc.opts, opts...)
	}
}

func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := registryConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.provider == nil {
		cfg.provider = DefaultProvider()
	}
	if cfg.defaultLocale == "" {
		cfg.defaultLocale = RootLocale
	}

	return &Registry{
		provider:      cfg.provider,
		defaultLocale: canonicalLocale(cfg.defaultLocale),
		opts:          cfg.opts,
		prototypes:    make(map[registryKey]*Formatter),
	}
}

// DefaultLocale reports the locale used for empty locale arguments.
func (r *Registry) DefaultLocale() string {
	if r == nil {
		return RootLocale
	}
	return r.defaultLocale
}

// Formatter returns a fresh formatter for locale and style. Callers may
// mutate it freely.
func (r *Registry) Formatter(locale string, style Style) (*Formatter, error) {
	proto, err := r.prototype(locale, style)
	if err != nil {
		return nil, err
	}
	return proto.Clone(), nil
}

func (r *Registry) prototype(locale string, style Style) (*Formatter, error) {
	if r == nil {
		return nil, fmt.Errorf("numfmt: nil registry")
	}
	if locale == "" {
		locale = r.defaultLocale
	}
	key := registryKey{locale: canonicalLocale(locale), style: style}

	r.mu.RLock()
	proto, ok := r.prototypes[key]
	r.mu.RUnlock()
	if ok {
		return proto, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if proto, ok := r.prototypes[key]; ok {
		return proto, nil
	}

	opts := append([]FormatterOption{WithLocaleData(r.provider)}, r.opts...)
	proto, err := New(key.locale, style, opts...)
	if err != nil {
		return nil, err
	}
	r.prototypes[key] = proto
	return proto, nil
}

// Format renders v with the locale default pattern for style. v may be any
// Go integer or float type, or a decimal string.
func (r *Registry) Format(locale string, style Style, v any) (string, error) {
	proto, err := r.prototype(locale, style)
	if err != nil {
		return "", err
	}
	return formatValue(proto, v)
}

// Parse reads a number from the start of text and reports how many bytes
// were consumed.
func (r *Registry) Parse(locale string, style Style, text string) (float64, int, error) {
	proto, err := r.prototype(locale, style)
	if err != nil {
		return 0, 0, err
	}
	return proto.ParseFloat(text, 0)
}

// Invalidate drops every cached prototype. Formatters already handed out are
// unaffected.
func (r *Registry) Invalidate() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prototypes = make(map[registryKey]*Formatter)
}
