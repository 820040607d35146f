// Package output handles output formatting.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hightemp/countries/internal/lookup"
)

// ListResult is a sorted country list with the lookup it answers.
type ListResult struct {
	Locale    string         `json:"locale"`
	Source    string         `json:"source"`
	Countries []lookup.Entry `json:"countries"`
}

// FormatText formats the list as tab-separated "code\tname" lines.
func (r *ListResult) FormatText() string {
	lines := make([]string, len(r.Countries))
	for i, e := range r.Countries {
		lines[i] = fmt.Sprintf("%s\t%s", e.Code, e.Name)
	}
	return strings.Join(lines, "\n")
}

// FormatJSON formats the list as JSON, preserving order.
func (r *ListResult) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatLocales formats locales one per line.
func FormatLocales(locales []string) string {
	return strings.Join(locales, "\n")
}

// FormatError formats an error line.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %s", strings.TrimRight(err.Error(), "\n"))
}
