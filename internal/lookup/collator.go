package lookup

import (
	"sort"
	"strings"

	"github.com/apex/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator orders a List by name for a locale.
type Collator interface {
	Sort(locale string, l List)
}

// LocaleCollator sorts names using the collation rules of the locale.
type LocaleCollator struct{}

// Sort implements Collator. Locales that do not parse are sorted with the
// root collation.
func (LocaleCollator) Sort(locale string, l List) {
	c := collate.New(parseLocale(locale))
	sort.SliceStable(l, func(i, j int) bool {
		if r := c.CompareString(l[i].Name, l[j].Name); r != 0 {
			return r < 0
		}
		return l[i].Code < l[j].Code
	})
}

// PlainCollator sorts names by byte value and ignores the locale. Names with
// non-ASCII letters are not ordered the way a reader of the language
// expects: "États-Unis" sorts after "France".
type PlainCollator struct{}

// Sort implements Collator.
func (PlainCollator) Sort(_ string, l List) {
	sort.SliceStable(l, func(i, j int) bool {
		if l[i].Name != l[j].Name {
			return l[i].Name < l[j].Name
		}
		return l[i].Code < l[j].Code
	})
}

// DetectCollator returns a LocaleCollator when collation tables are
// compiled in and a PlainCollator otherwise.
func DetectCollator() Collator {
	if len(collate.Supported()) > 0 {
		return LocaleCollator{}
	}
	log.Warn("locale collation unavailable, country names are sorted by byte value")
	return PlainCollator{}
}

// parseLocale accepts both "pt_BR" and "pt-BR".
func parseLocale(locale string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}
