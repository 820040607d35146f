// Package builder generates the country data directory from the CLDR
// tables compiled into golang.org/x/text.
package builder

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/hightemp/countries/internal/countries"
	"github.com/hightemp/countries/internal/store"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Builder writes <outDir>/<source>/<locale>/country.<format> for every
// source and locale, then <outDir>/metadata.json.
type Builder struct {
	fs      afero.Fs
	layout  *store.Layout
	format  store.Format
	locales []string
	codes   []string
	now     func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithFs sets the filesystem the output is written to.
func WithFs(fs afero.Fs) Option {
	return func(b *Builder) {
		b.fs = fs
	}
}

// WithFormat sets the data file format.
func WithFormat(f store.Format) Option {
	return func(b *Builder) {
		b.format = f
	}
}

// WithLocales restricts generation to the given locales.
func WithLocales(locales ...string) Option {
	return func(b *Builder) {
		b.locales = locales
	}
}

// WithCountries restricts generation to the given ISO-3166 codes.
func WithCountries(codes ...string) Option {
	return func(b *Builder) {
		b.codes = codes
	}
}

// New creates a builder writing to outDir.
func New(outDir string, opts ...Option) *Builder {
	b := &Builder{
		fs:     afero.NewOsFs(),
		format: store.FormatJSON,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.locales) == 0 {
		b.locales = SupportedLocales()
	}
	if len(b.codes) == 0 {
		b.codes = countries.AllCodes()
	}
	b.layout = store.NewLayout(b.fs, outDir, b.format)
	return b
}

// SupportedLocales returns every locale display names are available for,
// in directory form ("pt_BR").
func SupportedLocales() []string {
	tags := display.Supported.Tags()
	locales := make([]string, 0, len(tags))
	for _, tag := range tags {
		locales = append(locales, localeName(tag))
	}
	sort.Strings(locales)
	return locales
}

// Run generates every data file. Files already written stay in place when
// Run fails part way.
func (b *Builder) Run(ctx context.Context) error {
	meta := store.NewMetadata()
	meta.CreatedAt = b.now().UTC()
	meta.Format = b.format
	meta.Sources = store.Sources
	meta.CountriesCount = len(b.codes)

	for _, locale := range b.locales {
		if err := ctx.Err(); err != nil {
			return err
		}

		tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
		if err != nil {
			return fmt.Errorf("parse locale %q: %w", locale, err)
		}
		namer := display.Regions(tag)

		for _, source := range store.Sources {
			names := b.names(namer, source)
			if err := b.write(source, locale, names); err != nil {
				return err
			}
			meta.FilesWritten++
		}
		meta.Locales = append(meta.Locales, locale)

		log.WithFields(log.Fields{
			"locale": locale,
			"dir":    b.layout.Root(),
		}).Debug("generated country lists")
	}

	if err := meta.Save(b.fs, b.layout.MetadataPath()); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}

	log.Infof("generated %d country lists in %s", meta.FilesWritten, b.layout.Root())
	return nil
}

// names builds the list of one source. The ICU list only carries regions the
// locale has a name for; the CLDR list falls back to the English name.
func (b *Builder) names(namer display.Namer, source store.Source) map[string]string {
	names := make(map[string]string, len(b.codes))
	for _, code := range b.codes {
		name := regionName(namer, code)
		if name == "" {
			if source == store.SourceICU {
				continue
			}
			name = countries.GetName(code)
		}
		if name != "" {
			names[code] = name
		}
	}
	return names
}

func (b *Builder) write(source store.Source, locale string, names map[string]string) error {
	data, err := b.format.Encode(names)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", source, locale, err)
	}

	dir := b.layout.LocaleDir(source, locale)
	if err := b.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	path := b.layout.DataFile(source, locale)
	if err := afero.WriteFile(b.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func regionName(namer display.Namer, code string) string {
	region, err := language.ParseRegion(code)
	if err != nil || namer == nil {
		return ""
	}
	return namer.Name(region)
}

func localeName(tag language.Tag) string {
	return strings.ReplaceAll(tag.String(), "-", "_")
}
