package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/rules.md":           {Data: []byte("# Rules\n\nOne rule per line.")},
		"help/option-dry-run.txt": {Data: []byte("Plan without printing")},
		"help/config.txxt":        {Data: []byte("Settings guide")},
		"help/ignore.json":        {Data: []byte("{}")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default_extensions", func(t *testing.T) {
		tm := New(testFS())
		require.NoError(t, tm.scanTopics())

		topic, ok := tm.GetTopic("rules")
		require.True(t, ok)
		assert.Equal(t, "# Rules\n\nOne rule per line.", topic.Content)

		_, ok = tm.GetTopic("config")
		assert.False(t, ok)
		_, ok = tm.GetTopic("ignore")
		assert.False(t, ok)
	})

	t.Run("custom_extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})

	t.Run("nil_fs", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopicFlagStyle(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"dry-run", "--dry-run", "-dry-run", "option-dry-run"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "Plan without printing", topic.Content)
	}
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "printdispatch", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "printers", Short: "List printers", Run: func(*cobra.Command, []string) {}})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	_, err := Initialize(root, testFS())
	require.NoError(t, err)
	return root, &out
}

func TestHelpCommand(t *testing.T) {
	t.Run("lists_topics", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())

		assert.Contains(t, out.String(), "General topics:\n  rules")
		assert.Contains(t, out.String(), "Option topics:\n  --dry-run")
		assert.Contains(t, out.String(), "printdispatch help <topic>")
	})

	t.Run("shows_topic", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "rules"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "# Rules\n\nOne rule per line.", out.String())
	})

	t.Run("falls_back_to_command_help", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "printers"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "List printers")
	})
}

func TestGlamourRendererSkipsNonMarkdown(t *testing.T) {
	r := NewGlamourRenderer(true)
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
	assert.Contains(t, r.Render("# Title", ".md"), "Title")
}
