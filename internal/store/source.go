package store

import (
	"errors"
	"fmt"
	"strings"
)

// Source identifies a country name dataset.
type Source string

const (
	SourceICU  Source = "icu"
	SourceCLDR Source = "cldr"
)

// DefaultSource is used when a lookup names no source.
const DefaultSource = SourceCLDR

// Sources lists every known data source.
var Sources = []Source{SourceICU, SourceCLDR}

// ErrUnknownSource is matched by every UnknownSourceError.
var ErrUnknownSource = errors.New("unknown data source")

// UnknownSourceError reports a source outside Sources.
type UnknownSourceError struct {
	Source string
}

func (e *UnknownSourceError) Error() string {
	names := make([]string, len(Sources))
	for i, s := range Sources {
		names[i] = string(s)
	}
	return fmt.Sprintf(`unknown data source "%s", the available ones are: "%s"`, e.Source, strings.Join(names, `", "`))
}

func (e *UnknownSourceError) Unwrap() error {
	return ErrUnknownSource
}

// ParseSource lower-cases s and checks it against Sources.
func ParseSource(s string) (Source, error) {
	normalized := Source(strings.ToLower(s))
	for _, known := range Sources {
		if normalized == known {
			return known, nil
		}
	}
	return "", &UnknownSourceError{Source: normalized.String()}
}

func (s Source) String() string {
	return string(s)
}
