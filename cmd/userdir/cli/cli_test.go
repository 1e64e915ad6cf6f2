package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdir/userdir/internal/users"
)

const seedYAML = `users:
  - id: 1
    username: Ivan
    password: "123"
  - id: 2
    username: Petr
    password: "111"
`

func writeSeedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))
	return path
}

// execute runs a fresh root command with args and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer

	cmd := RootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--log-level", "error"))

	err := cmd.Execute()
	return out.String(), err
}

// run executes the root command against a memory store seeded with Ivan and Petr
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(t, append(args, "--store", "memory", "--seed-file", writeSeedFile(t))...)
}

// tableRows splits table output into whitespace separated cells, header excluded
func tableRows(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

func TestListCommand(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "USERNAME"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "Ivan"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "Petr"}, strings.Fields(lines[2]))
}

func TestListCommandJSON(t *testing.T) {
	out, err := run(t, "list", "--by-id", "-o", "json")
	require.NoError(t, err)

	var byID map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &byID))
	assert.Len(t, byID, 2)
	assert.Equal(t, "Petr", byID["2"]["username"])
}

func TestLoginCommand(t *testing.T) {
	out, err := run(t, "login", "--username", "Ivan", "--password", "123", "-o", "json")
	require.NoError(t, err)

	var user users.User
	require.NoError(t, json.Unmarshal([]byte(out), &user))
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "Ivan", user.Username)
}

func TestLoginCommandWrongPassword(t *testing.T) {
	_, err := run(t, "login", "--username", "Ivan", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, errLoginFailed, err)
}

func TestLoginCommandMissingPassword(t *testing.T) {
	_, err := run(t, "login", "--username", "Ivan", "--password", "")
	require.Error(t, err)
	assert.True(t, users.IsInvalidArgument(err))
	assert.Contains(t, err.Error(), "username or password is null")
}

func TestDeleteCommand(t *testing.T) {
	out, err := run(t, "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "deleted: true\n", out)

	out, err = run(t, "delete", "42")
	require.NoError(t, err)
	assert.Equal(t, "deleted: false\n", out)

	_, err = run(t, "delete", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid user id "abc"`)
}

func TestAddCommand(t *testing.T) {
	out, err := run(t, "add", "--id", "3", "--username", "Anna", "--password", "abc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"3", "Anna"}, strings.Fields(lines[3]))
}

func TestMigrateCommandMemoryStore(t *testing.T) {
	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to migrate")
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration")
	assert.Contains(t, out, "directory")
	assert.NotContains(t, out, "database", "memory store has no database check")
}

func TestUnknownStoreIsRejected(t *testing.T) {
	_, err := execute(t, "list", "--store", "redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestStoreTypeFromEnvironment(t *testing.T) {
	t.Setenv("USERDIR_STORE_TYPE", "redis")

	_, err := execute(t, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown store.type "redis"`)

	_, err = execute(t, "list", "--store", "memory")
	require.NoError(t, err, "the flag wins over the environment")
}

func TestConfigFlagDoesNotTouchEnvironment(t *testing.T) {
	t.Setenv("USERDIR_CONFIG_FILE", "")
	path := filepath.Join(t.TempDir(), "userdir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("common:\n  store:\n    type: memory\n"), 0o600))

	_, err := execute(t, "list", "--config", path)
	require.NoError(t, err)
	assert.Empty(t, os.Getenv("USERDIR_CONFIG_FILE"))

	_, err = execute(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestFlagsDoNotLeakBetweenRoots(t *testing.T) {
	out, err := run(t, "list", "--by-id", "-o", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))

	out, err = run(t, "list")
	require.NoError(t, err)
	assert.False(t, json.Valid([]byte(out)), "a new root starts with default flags")
	assert.Equal(t, [][]string{{"1", "Ivan"}, {"2", "Petr"}}, tableRows(out))
}

func TestSQLiteStoreKeepsChangesAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("USERDIR_SQLITE_PATH", filepath.Join(dir, "users.db"))
	seedFile := writeSeedFile(t)

	sqlite := func(args ...string) (string, error) {
		return execute(t, append(args, "--store", "sqlite", "--seed-file", seedFile)...)
	}

	out, err := sqlite("list")
	if err != nil {
		t.Skipf("sqlite not available, skipping: %v", err)
		return
	}
	assert.Equal(t, [][]string{{"1", "Ivan"}, {"2", "Petr"}}, tableRows(out))

	out, err = sqlite("delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "deleted: true\n", out)

	out, err = sqlite("list")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2", "Petr"}}, tableRows(out), "seeding does not revive deleted users")

	out, err = sqlite("delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "deleted: false\n", out)

	_, err = sqlite("add", "--id", "2", "--username", "Petr2", "--password", "222")
	require.NoError(t, err)

	out, err = sqlite("list")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2", "Petr2"}}, tableRows(out), "seeding does not overwrite stored users")

	out, err = sqlite("migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "sqlite schema is up to date")
}
