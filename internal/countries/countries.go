// Package countries provides the ISO-3166 alpha-2 codes the builder
// generates names for, with English names used when a locale has none.
package countries

import (
	"bufio"
	_ "embed"
	"strings"
	"sync"
)

//go:embed iso3166.txt
var iso3166Data string

var (
	codeToName map[string]string
	codes      []string
	once       sync.Once
)

func init() {
	loadData()
}

func loadData() {
	once.Do(func() {
		codeToName = make(map[string]string)
		codes = make([]string, 0, 256)

		scanner := bufio.NewScanner(strings.NewReader(iso3166Data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.SplitN(line, ",", 2)
			if len(parts) != 2 {
				continue
			}
			code := strings.ToUpper(strings.TrimSpace(parts[0]))
			name := strings.Trim(strings.TrimSpace(parts[1]), `"`)
			codeToName[code] = name
			codes = append(codes, code)
		}
	})
}

// GetName returns the English name for the given ISO-3166 alpha-2 code.
// Returns empty string if not found.
func GetName(code string) string {
	return codeToName[strings.ToUpper(code)]
}

// IsValid checks if the given code is a valid ISO-3166 alpha-2 code.
func IsValid(code string) bool {
	_, ok := codeToName[strings.ToUpper(code)]
	return ok
}

// AllCodes returns all ISO-3166 alpha-2 codes (uppercase).
func AllCodes() []string {
	result := make([]string, len(codes))
	copy(result, codes)
	return result
}

// Count returns the number of countries.
func Count() int {
	return len(codes)
}

// LoadFromFile parses a list of country codes (one per line, # comments).
// Returns the known codes in uppercase and the lines that are not codes.
func LoadFromFile(content string) ([]string, []string, error) {
	var result, rejected []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		code := strings.ToUpper(line)
		if IsValid(code) {
			result = append(result, code)
		} else {
			rejected = append(rejected, line)
		}
	}
	return result, rejected, scanner.Err()
}
