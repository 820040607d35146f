// Package lookup serves localized country name lists from the data
// directory, caching each (locale, source) list for the life of a Manager.
package lookup

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/hightemp/countries/internal/config"
	"github.com/hightemp/countries/internal/store"
	"github.com/spf13/afero"
)

// ErrDataFileNotFound is returned when a (locale, source) pair has no data file.
var ErrDataFileNotFound = errors.New("unable to load the country data file")

// Entry is one country of a List.
type Entry struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// List is a country list ordered by name.
type List []Entry

// Map returns the list as a code to name mapping.
func (l List) Map() map[string]string {
	m := make(map[string]string, len(l))
	for _, e := range l {
		m[e.Code] = e.Name
	}
	return m
}

// Names returns the names in list order.
func (l List) Names() []string {
	names := make([]string, len(l))
	for i, e := range l {
		names[i] = e.Name
	}
	return names
}

type cacheKey struct {
	locale string
	source store.Source
}

// Manager loads country lists lazily and keeps them until it is discarded.
// Entries are never refreshed from disk once loaded.
type Manager struct {
	mu       sync.RWMutex
	entries  map[cacheKey]map[string]string
	fs       afero.Fs
	layout   *store.Layout
	collator Collator
	format   store.Format
}

// Option configures a Manager.
type Option func(*Manager)

// WithFs sets the filesystem the data directory lives on.
func WithFs(fs afero.Fs) Option {
	return func(m *Manager) {
		m.fs = fs
	}
}

// WithCollator overrides the collator chosen by DetectCollator.
func WithCollator(c Collator) Option {
	return func(m *Manager) {
		m.collator = c
	}
}

// WithFormat sets the data file format.
func WithFormat(f store.Format) Option {
	return func(m *Manager) {
		m.format = f
	}
}

// NewManager creates a manager over dataDir, or over the default builder
// output directory when dataDir is empty.
func NewManager(dataDir string, opts ...Option) (*Manager, error) {
	m := &Manager{
		entries: make(map[cacheKey]map[string]string),
		fs:      afero.NewOsFs(),
		format:  store.FormatJSON,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.collator == nil {
		m.collator = DetectCollator()
	}

	dir, err := store.Locate(m.fs, dataDir)
	if err != nil {
		return nil, err
	}
	m.layout = store.NewLayout(m.fs, dir, m.format)

	return m, nil
}

// DataDir returns the resolved data directory.
func (m *Manager) DataDir() string {
	return m.layout.Root()
}

// List returns the countries of a locale and source sorted by name. An empty
// locale means "en" and an empty source means "cldr". The source is matched
// case-insensitively and validated before the filesystem is touched.
func (m *Manager) List(locale, source string) (List, error) {
	key, err := newCacheKey(locale, source)
	if err != nil {
		return nil, err
	}

	names, err := m.load(key)
	if err != nil {
		return nil, err
	}

	l := make(List, 0, len(names))
	for code, name := range names {
		l = append(l, Entry{Code: code, Name: name})
	}
	m.collator.Sort(key.locale, l)

	return l, nil
}

// SetList replaces the cached list of a locale and source without reading
// the disk. Empty arguments take the same defaults as List. Neither the
// source nor the data is validated.
func (m *Manager) SetList(locale, source string, data map[string]string) *Manager {
	key := normalizeKey(locale, source)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = maps.Clone(data)
	return m
}

// Name returns the localized name of one country code.
func (m *Manager) Name(locale, source, code string) (string, bool, error) {
	key, err := newCacheKey(locale, source)
	if err != nil {
		return "", false, err
	}

	names, err := m.load(key)
	if err != nil {
		return "", false, err
	}

	if name, ok := names[code]; ok {
		return name, true, nil
	}
	for c, name := range names {
		if strings.EqualFold(c, code) {
			return name, true, nil
		}
	}
	return "", false, nil
}

// Locales returns the locales that have a data file for source.
func (m *Manager) Locales(source string) ([]string, error) {
	src, err := parseSource(source)
	if err != nil {
		return nil, err
	}
	return m.layout.Locales(src)
}

// Metadata returns what the builder recorded about the data directory.
func (m *Manager) Metadata() (*store.Metadata, error) {
	return m.layout.Metadata()
}

func (m *Manager) load(key cacheKey) (map[string]string, error) {
	m.mu.RLock()
	names, ok := m.entries[key]
	m.mu.RUnlock()
	if ok {
		return names, nil
	}

	path := m.layout.DataFile(key.source, key.locale)
	if !m.layout.HasDataFile(key.source, key.locale) {
		return nil, fmt.Errorf("%w %q", ErrDataFileNotFound, path)
	}

	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	names, err = m.format.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"locale":    key.locale,
		"source":    key.source,
		"countries": len(names),
	}).Debug("loaded country list")

	m.mu.Lock()
	m.entries[key] = names
	m.mu.Unlock()

	return names, nil
}

// normalizeKey applies the default locale and source and lower-cases the
// source without checking it.
func normalizeKey(locale, source string) cacheKey {
	if locale == "" {
		locale = config.DefaultLocale
	}
	if source == "" {
		source = string(store.DefaultSource)
	}
	return cacheKey{locale: locale, source: store.Source(strings.ToLower(source))}
}

func newCacheKey(locale, source string) (cacheKey, error) {
	key := normalizeKey(locale, source)
	src, err := store.ParseSource(string(key.source))
	if err != nil {
		return cacheKey{}, err
	}
	key.source = src
	return key, nil
}

func parseSource(source string) (store.Source, error) {
	if source == "" {
		return store.DefaultSource, nil
	}
	return store.ParseSource(source)
}
