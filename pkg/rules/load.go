package rules

import (
	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/logging"
	"github.com/spf13/afero"
)

// LoadFile reads and parses the rule table at path. A file that cannot be
// opened yields CONFIG_UNAVAILABLE; the caller decides whether to abort.
func LoadFile(fs afero.Fs, path string, opts Options) (*Table, error) {
	logger := logging.GetLogger("rules.load")

	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigUnavailable, "cannot open rule table %s", path).
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	table, err := Parse(f, opts)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("path", path).
		Int("rules", table.Len()).
		Int("skipped", len(table.Skipped)).
		Msg("Loaded rule table")

	return table, nil
}
