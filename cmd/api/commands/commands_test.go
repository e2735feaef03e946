package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffroster/core/internal/domain/entities"
)

func TestInspectSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "b": {"id": "b", "name": "Bob", "age": 41, "position": "Manager"},
  "a": {"id": "a", "name": "Ann", "age": 30, "position": "Engineer"}
}`), 0o644))

	var out bytes.Buffer
	require.NoError(t, inspectSnapshot(context.Background(), path, &out))

	var got []entities.Employee
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestInspectSnapshot_Missing(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, inspectSnapshot(context.Background(), filepath.Join(t.TempDir(), "db.json"), &out))
	assert.JSONEq(t, "[]", out.String())
}

func TestSnapshotInspectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	cmd := NewSnapshotCommand()
	cmd.SetArgs([]string{"inspect", "--path", path})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	require.Error(t, cmd.Execute())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersionCommand()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "StaffRoster v"+Version)
}
