package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timlee789/pos-system/internal/dispatch/joblog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndListByRequest(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	entries := []*joblog.Entry{
		{JobID: "job-1", RequestID: "req-1", Target: "Kitchen", IP: "192.168.50.3", Bytes: 120, Status: joblog.StatusQueued, CreatedAt: now},
		{JobID: "job-1", RequestID: "req-1", Target: "Kitchen", IP: "192.168.50.3", Bytes: 120, Status: joblog.StatusFailed, Error: "connect timeout", CreatedAt: now.Add(time.Second)},
		{JobID: "job-2", RequestID: "req-2", Target: "Receipt(POS)", IP: "192.168.50.201", Bytes: 300, Status: joblog.StatusSent, CreatedAt: now},
	}
	for _, e := range entries {
		require.NoError(t, repo.Save(ctx, e))
	}

	got, err := repo.ListByRequest(ctx, "req-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, joblog.StatusQueued, got[0].Status)
	assert.Equal(t, joblog.StatusFailed, got[1].Status)
	assert.Equal(t, "connect timeout", got[1].Error)
	assert.Equal(t, "Kitchen", got[1].Target)
	assert.Equal(t, 120, got[1].Bytes)
	assert.True(t, got[1].CreatedAt.After(got[0].CreatedAt))
}

func TestListByRequestUnknown(t *testing.T) {
	repo := openTestRepo(t)

	got, err := repo.ListByRequest(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.db")

	repo, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), &joblog.Entry{
		JobID: "job-1", RequestID: "req-1", Target: "Kitchen", IP: "192.168.50.3",
		Status: joblog.StatusSent, CreatedAt: time.Now(),
	}))
	require.NoError(t, repo.Close())

	// Reopening applies the schema again and keeps existing rows.
	repo, err = Open(path)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.ListByRequest(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
