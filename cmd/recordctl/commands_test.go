package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"careervision/internal/model"
	"careervision/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T, records ...*model.StorageRecord) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "records.db")

	db, err := repository.OpenSQLite(dbPath)
	require.NoError(t, err)
	repo := repository.NewSQLiteRecordRepo(db)
	for _, r := range records {
		require.NoError(t, repo.Append(context.Background(), r))
	}
	require.NoError(t, db.Close())

	cfgPath := filepath.Join(dir, "config.yaml")
	content := "devMode: true\nstorage:\n  driver: sqlite\n  sqlitePath: " + dbPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))
	return cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func sampleRecord(id, name string) *model.StorageRecord {
	return &model.StorageRecord{
		UserProfile: model.UserProfile{Name: name, Email: "a@x.com", Phone: "000", Consent: true},
		ID:          id,
		Date:        "2026-03-01T00:30:00Z",
		RiasecCode:  "SA",
		Scores:      model.ScoreVector{model.Social: 4.8, model.Artistic: 4.2},
	}
}

func TestList(t *testing.T) {
	cfg := setupStore(t, sampleRecord("r1", "Alice"), sampleRecord("r2", "Bob"))

	out, err := execute(t, "list", "--config", cfg)

	require.NoError(t, err)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "S=4.8")
	assert.Contains(t, out, "2 record(s)")
	assert.Less(t, bytes.Index([]byte(out), []byte("Alice")), bytes.Index([]byte(out), []byte("Bob")))
}

func TestList_JSON(t *testing.T) {
	cfg := setupStore(t, sampleRecord("r1", "Alice"))

	out, err := execute(t, "list", "--json", "--config", cfg)

	require.NoError(t, err)
	var records []*model.StorageRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "r1", records[0].ID)
}

func TestClear_RequiresConfirmation(t *testing.T) {
	cfg := setupStore(t, sampleRecord("r1", "Alice"))

	_, err := execute(t, "clear", "--config", cfg)
	assert.Error(t, err)

	out, err := execute(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "1 record(s)")

	out, err = execute(t, "clear", "--yes", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "All records deleted.")

	out, err = execute(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "No records.")
}
