//go:build !windows

package printers

import (
	"context"
	"os/exec"
)

type lpstatSource struct {
	lpstat string
}

// NewPlatformSource lists CUPS destinations through lpstat
func NewPlatformSource() Source {
	return lpstatSource{lpstat: "lpstat"}
}

func (s lpstatSource) Names(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, s.lpstat, "-e").Output()
	if err != nil {
		// older CUPS has no -e
		out, err = exec.CommandContext(ctx, s.lpstat, "-p").Output()
		if err != nil {
			return nil, err
		}
	}
	return parseLpstat(string(out)), nil
}
