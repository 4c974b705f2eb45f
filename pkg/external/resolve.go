package external

import (
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"
)

// ResolveHelper finds the helper executable. Absolute names are used as
// given. Otherwise, with preferDir set, a file of that name inside dir
// wins; the search path is consulted last. The bare name is returned when
// nothing is found so the launch error names what was looked for. A nil
// fs means the OS filesystem.
func ResolveHelper(fs afero.Fs, name, dir string, preferDir bool) string {
	if filepath.IsAbs(name) {
		return name
	}
	if preferDir && dir != "" {
		if fs == nil {
			fs = afero.NewOsFs()
		}
		candidate := filepath.Join(dir, name)
		if info, err := fs.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	if found, err := exec.LookPath(name); err == nil {
		return found
	}
	return name
}
