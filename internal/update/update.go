// Package update regenerates the country data files inside a cache
// directory.
package update

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/hightemp/countries/internal/config"
	"github.com/spf13/afero"
	"golang.org/x/text/collate"
	"golang.org/x/text/language/display"
)

var (
	// ErrMissingDependency is returned when a required capability is absent.
	ErrMissingDependency = errors.New("missing dependency")

	// ErrDirectoryCreateFailed is returned when the cache directory cannot be created.
	ErrDirectoryCreateFailed = errors.New("unable to create the countries cache directory")

	// ErrDirectoryNotWritable is returned when the cache directory cannot be written to.
	ErrDirectoryNotWritable = errors.New("unable to write in the countries cache directory")
)

// Generator produces the data files. Run is all-or-error from the caller's
// point of view.
type Generator interface {
	Run(ctx context.Context) error
}

// GeneratorFunc creates the Generator writing to outDir.
type GeneratorFunc func(outDir string) Generator

// Capability is an optional facility the generation depends on.
type Capability struct {
	Name      string
	Available func() bool
}

// DefaultCapabilities are the locale data and collation tables of
// golang.org/x/text.
func DefaultCapabilities() []Capability {
	return []Capability{
		{
			Name:      "locale display names (golang.org/x/text/language/display)",
			Available: func() bool { return len(display.Supported.Tags()) > 0 },
		},
		{
			Name:      "locale collation (golang.org/x/text/collate)",
			Available: func() bool { return len(collate.Supported()) > 0 },
		},
	}
}

// Command runs the regeneration sequence.
type Command struct {
	fs           afero.Fs
	capabilities []Capability
	newGenerator GeneratorFunc
}

// Option configures a Command.
type Option func(*Command)

// WithFs sets the filesystem the cache directory lives on.
func WithFs(fs afero.Fs) Option {
	return func(c *Command) {
		c.fs = fs
	}
}

// WithCapabilities replaces DefaultCapabilities.
func WithCapabilities(caps ...Capability) Option {
	return func(c *Command) {
		c.capabilities = caps
	}
}

// NewCommand creates a command that hands the output directory to newGenerator.
func NewCommand(newGenerator GeneratorFunc, opts ...Option) *Command {
	c := &Command{
		fs:           afero.NewOsFs(),
		capabilities: DefaultCapabilities(),
		newGenerator: newGenerator,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TargetDir returns the directory the generator writes to.
func TargetDir(cacheDir string) string {
	return config.DataDir(cacheDir)
}

// Run checks capabilities, prepares cacheDir and generates the data into
// TargetDir(cacheDir), which it returns.
func (c *Command) Run(ctx context.Context, cacheDir string) (string, error) {
	if err := c.checkCapabilities(); err != nil {
		return "", err
	}
	if err := c.prepare(cacheDir); err != nil {
		return "", err
	}

	target := TargetDir(cacheDir)
	log.WithField("dir", target).Info("generating countries data")

	if err := c.newGenerator(target).Run(ctx); err != nil {
		return "", fmt.Errorf("generate countries data: %w", err)
	}
	return target, nil
}

func (c *Command) checkCapabilities() error {
	var missing []string
	for _, capability := range c.capabilities {
		if !capability.Available() {
			missing = append(missing, capability.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return fmt.Errorf("%w: the procedure to create/update the countries cache requires extra libraries:\n  %s\n"+
		"Rebuild with the CLDR tables of golang.org/x/text available:\n\n  $ go get golang.org/x/text@latest\n",
		ErrMissingDependency, strings.Join(missing, "\n  "))
}

func (c *Command) prepare(cacheDir string) error {
	ok, err := afero.DirExists(c.fs, cacheDir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", cacheDir, err)
	}
	if !ok {
		if err := c.fs.MkdirAll(cacheDir, 0o777); err != nil {
			return fmt.Errorf("%w (%s): %v", ErrDirectoryCreateFailed, cacheDir, err)
		}
		log.WithField("dir", cacheDir).Debug("created cache directory")
		return nil
	}

	if !c.writable(cacheDir) {
		return fmt.Errorf("%w (%s)", ErrDirectoryNotWritable, cacheDir)
	}
	return nil
}

// writable creates and removes a temporary file in dir.
func (c *Command) writable(dir string) bool {
	f, err := afero.TempFile(c.fs, dir, ".countries-write-*")
	if err != nil {
		return false
	}
	name := f.Name()
	closeErr := f.Close()
	if err := c.fs.Remove(name); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warnf("remove %s", filepath.Base(name))
	}
	return closeErr == nil
}
