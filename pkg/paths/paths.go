package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/spf13/afero"
)

// Environment variable names
const (
	// EnvHome replaces the executable directory as the resource root
	EnvHome = "PRINTDISPATCH_HOME"
)

// Default file names, all relative to the resource root
const (
	DefaultRulesFile = "config.txt"
	SettingsBaseName = "printdispatch"
	DefaultFlagFile  = "printing.flag"
)

// settingsExtensions lists the settings formats in lookup order
var settingsExtensions = []string{".toml", ".yaml", ".yml"}

// Paths provides resource locations for a single invocation
type Paths interface {
	// Root is the directory relative resources are resolved against
	Root() string
	// RulesFile is the rule table location
	RulesFile() string
	// SettingsFile is the explicit settings file, or the first existing
	// candidate beside the executable, or "" when there is none
	SettingsFile() string
	// Resolve joins a relative name onto Root; absolute names pass through
	Resolve(name string) string
}

// Options configures path resolution. An empty Root falls back to
// PRINTDISPATCH_HOME and then to the executable directory; other empty
// fields fall back to defaults under Root.
type Options struct {
	Root         string
	RulesFile    string
	SettingsFile string
	// Fs is searched for settings files; nil means the OS filesystem
	Fs afero.Fs
}

type paths struct {
	root         string
	rulesFile    string
	settingsFile string
}

// New resolves the resource locations for this invocation.
func New(opts Options) (Paths, error) {
	p := &paths{}

	root := opts.Root
	if root == "" {
		root = os.Getenv(EnvHome)
	}
	if root == "" {
		exeDir, err := executableDir()
		if err != nil {
			return nil, err
		}
		root = exeDir
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "failed to get absolute path for %s", root)
	}
	p.root = absRoot

	rules := opts.RulesFile
	if rules == "" {
		rules = DefaultRulesFile
	}
	p.rulesFile = p.Resolve(rules)

	if opts.SettingsFile != "" {
		p.settingsFile = p.Resolve(opts.SettingsFile)
	} else {
		fsys := opts.Fs
		if fsys == nil {
			fsys = afero.NewOsFs()
		}
		p.settingsFile = p.findSettings(fsys)
	}

	return p, nil
}

func (p *paths) Root() string         { return p.root }
func (p *paths) RulesFile() string    { return p.rulesFile }
func (p *paths) SettingsFile() string { return p.settingsFile }

func (p *paths) Resolve(name string) string {
	if name == "" {
		return p.root
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(p.root, name)
}

// WithRulesFile returns a copy of p whose rule table is name. Relative
// names resolve against the same root.
func WithRulesFile(p Paths, name string) Paths {
	return &paths{
		root:         p.Root(),
		rulesFile:    p.Resolve(name),
		settingsFile: p.SettingsFile(),
	}
}

func (p *paths) findSettings(fsys afero.Fs) string {
	for _, ext := range settingsExtensions {
		candidate := filepath.Join(p.root, SettingsBaseName+ext)
		if info, err := fsys.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// executableDir returns the directory of the running binary with symlinks
// resolved.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to locate executable")
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
