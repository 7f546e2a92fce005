package repository

import (
	"context"
	"testing"

	"healthcare-admin-api/internal/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogs(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAuditRepo(db)
	ctx := context.Background()
	actor := "admin-1"

	require.NoError(t, repo.CreateAuditLog(ctx, &actor, "user_login", "first"))
	require.NoError(t, repo.CreateAuditLog(ctx, nil, "hospital_create", "second"))
	require.NoError(t, repo.CreateAuditLog(ctx, &actor, "user_login", "third"))

	logs, err := repo.ListAuditLogs(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "third", logs[0].Details)

	logs, err = repo.ListAuditLogs(ctx, "user_login", 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "third", logs[0].Details)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, actor, *logs[0].UserID)
}
