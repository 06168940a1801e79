package tags_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bank-statementer/statementer/cmd/root"
	"github.com/bank-statementer/statementer/cmd/tags"
	"github.com/bank-statementer/statementer/internal/models"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(tags.Cmd)
}

func useTempStore(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("STATEMENTER_STORE_PATH", filepath.Join(dir, "tags.json"))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&bytes.Buffer{})
	root.Cmd.SetArgs(append([]string{"tags"}, args...))
	err := root.Cmd.Execute()
	return out.String(), err
}

func TestTagsCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range tags.Cmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["list"])
	assert.True(t, names["add"])
	assert.True(t, names["export"])
}

func TestTagsCommand_AddListExport(t *testing.T) {
	useTempStore(t)

	out, err := execute(t, "add", "-d", "  NTUC FairPrice ", "-c", "Groceries")
	require.NoError(t, err)
	assert.Contains(t, out, `Added "ntuc fairprice" -> Groceries`)

	out, err = execute(t, "add", "-d", "ntuc fairprice", "-c", "Groceries")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	_, err = execute(t, "add", "-d", "netflix", "-c", "Streaming")
	require.NoError(t, err)

	out, err = execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "DESCRIPTION")
	assert.Regexp(t, `ntuc fairprice\s+Groceries`, out)
	assert.Less(t, bytes.Index([]byte(out), []byte("ntuc")), bytes.Index([]byte(out), []byte("netflix")))

	out, err = execute(t, "export", "-f", "json")
	require.NoError(t, err)
	var exported []models.Tag
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	assert.Equal(t, []models.Tag{
		{Description: "ntuc fairprice", Category: "Groceries"},
		{Description: "netflix", Category: "Streaming"},
	}, exported)

	out, err = execute(t, "export", "-f", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "description: netflix")
}

func TestTagsCommand_AddRejectsBlankCategory(t *testing.T) {
	useTempStore(t)

	_, err := execute(t, "add", "-d", "netflix", "-c", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed for category")
}
