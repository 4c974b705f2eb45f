package external

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The test binary doubles as the helper: when envHelperMode is set it
// records its arguments and exits without running any tests.
const (
	envHelperMode = "PRINTDISPATCH_TEST_HELPER_MODE"
	envHelperArgs = "PRINTDISPATCH_TEST_HELPER_ARGS"
)

func TestMain(m *testing.M) {
	if mode := os.Getenv(envHelperMode); mode != "" {
		os.Exit(runFakeHelper(mode))
	}
	os.Exit(m.Run())
}

func runFakeHelper(mode string) int {
	if out := os.Getenv(envHelperArgs); out != "" {
		_ = os.WriteFile(out, []byte(strings.Join(os.Args[1:], "\n")), 0644)
	}
	switch {
	case mode == "ok":
		return 0
	case mode == "sleep":
		time.Sleep(30 * time.Second)
		return 0
	case strings.HasPrefix(mode, "exit"):
		code, _ := strconv.Atoi(strings.TrimPrefix(mode, "exit"))
		return code
	}
	return 99
}

func fakeHelper(t *testing.T, mode string) (*HelperPrinter, string) {
	t.Helper()
	argsFile := filepath.Join(t.TempDir(), "args.txt")
	t.Setenv(envHelperMode, mode)
	t.Setenv(envHelperArgs, argsFile)
	return NewHelperPrinter(os.Args[0]), argsFile
}

func TestHelperPrinterPassesArgv(t *testing.T) {
	hp, argsFile := fakeHelper(t, "ok")

	status, err := hp.ConvertAndPrint(context.Background(), `C:\My Docs\"quoted" report.pdf`, "Office Laser")
	require.NoError(t, err)
	assert.True(t, status.Success())

	got, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, []string{`C:\My Docs\"quoted" report.pdf`, "Office Laser"}, strings.Split(string(got), "\n"))
}

func TestHelperPrinterExitCode(t *testing.T) {
	hp, _ := fakeHelper(t, "exit3")

	status, err := hp.ConvertAndPrint(context.Background(), "a.pdf", "P")
	require.NoError(t, err)
	assert.False(t, status.Success())
	assert.Equal(t, 3, status.Code)
}

func TestHelperPrinterLaunchFailure(t *testing.T) {
	hp := NewHelperPrinter(filepath.Join(t.TempDir(), "no-such-helper.exe"))

	_, err := hp.ConvertAndPrint(context.Background(), "a.pdf", "P")
	require.Error(t, err)
	var launchErr *LaunchError
	assert.ErrorAs(t, err, &launchErr)
}

func TestHelperPrinterCancelled(t *testing.T) {
	hp, _ := fakeHelper(t, "sleep")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := hp.ConvertAndPrint(ctx, "a.pdf", "P")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolveHelper(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, DefaultHelper)
	require.NoError(t, os.WriteFile(local, []byte("stub"), 0755))

	t.Run("prefers_directory", func(t *testing.T) {
		assert.Equal(t, local, ResolveHelper(nil, DefaultHelper, dir, true))
	})

	t.Run("absolute_passes_through", func(t *testing.T) {
		abs := filepath.Join(dir, "elsewhere", "helper.exe")
		assert.Equal(t, abs, ResolveHelper(nil, abs, dir, true))
	})

	t.Run("falls_back_to_bare_name", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		assert.Equal(t, "printdispatch-missing-helper", ResolveHelper(nil, "printdispatch-missing-helper", dir, true))
	})

	t.Run("looks_in_injected_fs", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		mem := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(mem, "/opt/pd/"+DefaultHelper, []byte("stub"), 0755))
		assert.Equal(t, filepath.Join("/opt/pd", DefaultHelper), ResolveHelper(mem, DefaultHelper, "/opt/pd", true))
		assert.Equal(t, DefaultHelper, ResolveHelper(mem, DefaultHelper, dir, true))
	})

	t.Run("directory_ignored_when_not_preferred", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		assert.Equal(t, DefaultHelper, ResolveHelper(nil, DefaultHelper, dir, false))
	})
}
