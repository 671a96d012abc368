package outbox

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark3labs/onboard/internal/signup"
)

func openTest(t *testing.T) *Outbox {
	t.Helper()
	o, err := Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = o.Close() })
	return o
}

func TestEnqueueAndList(t *testing.T) {
	ctx := context.Background()
	o := openTest(t)

	err := o.Enqueue(ctx, "Acme, Inc.", []signup.Invite{
		{Email: "bob@acme.test", Role: signup.RoleEmployee},
		{Email: "eve@acme.test", Role: signup.RoleAdmin, Name: "Eve"},
	})
	require.NoError(t, err)
	require.NoError(t, o.Enqueue(ctx, "Globex", []signup.Invite{{Email: "hank@globex.test", Role: signup.RoleViewer}}))

	acme, err := o.List(ctx, "Acme, Inc.")
	require.NoError(t, err)
	require.Len(t, acme, 2)
	assert.Equal(t, "bob@acme.test", acme[0].Email)
	assert.Equal(t, signup.RoleAdmin, acme[1].Role)
	assert.Equal(t, "Eve", acme[1].Name)
	assert.Equal(t, "Acme, Inc.", acme[0].Company)
	assert.NotEmpty(t, acme[0].ID)
	assert.NotEqual(t, acme[0].ID, acme[1].ID)

	all, err := o.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListEmpty(t *testing.T) {
	o := openTest(t)
	entries, err := o.List(context.Background(), "Nobody")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOutboxAsInviteQueue(t *testing.T) {
	ctx := context.Background()
	o := openTest(t)

	var q signup.InviteQueue = o
	require.NoError(t, q.Enqueue(ctx, "Initech", []signup.Invite{{Email: "peter@initech.test", Role: signup.RoleManager}}))

	entries, err := o.List(ctx, "initech")
	require.NoError(t, err, "company names that slug the same share a subject")
	require.Len(t, entries, 1)
	assert.Equal(t, "peter@initech.test", entries[0].Email)
}

func TestOutboxPersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	o, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, o.Enqueue(ctx, "Acme", []signup.Invite{{Email: "bob@acme.test", Role: signup.RoleEmployee}}))
	require.NoError(t, o.Close())

	o, err = Open(ctx, dir)
	require.NoError(t, err)
	defer func() { _ = o.Close() }()

	entries, err := o.List(ctx, "Acme")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
