package database_test

import (
	"errors"
	"testing"

	"renovation-crm/internal/database"
	"renovation-crm/internal/models"
	"renovation-crm/internal/testutil"
	"renovation-crm/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorker(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := database.CreateUser(email, "password1", models.RoleUser, "")
	require.NoError(t, err)
	return u
}

func TestCreateProcess(t *testing.T) {
	testutil.SetupDB(t)
	client := newIndividual(t)
	worker := newWorker(t, "worker@example.com")

	p, err := database.CreateProcess(client.ID, "  measure the kitchen  ", worker.ID)
	require.NoError(t, err)
	assert.Equal(t, "measure the kitchen", p.Text)
	assert.Equal(t, models.ProcessOpen, p.Status)
	require.NotNil(t, p.ResponsibleUserID)
	assert.Equal(t, worker.ID, *p.ResponsibleUserID)
	assert.Nil(t, p.ClosedAt)

	unassigned, err := database.CreateProcess(client.ID, "follow up", "")
	require.NoError(t, err)
	assert.Nil(t, unassigned.ResponsibleUserID)
}

func TestCreateProcessRejectsBlankTextAndUnknownClient(t *testing.T) {
	testutil.SetupDB(t)
	client := newIndividual(t)

	_, err := database.CreateProcess(client.ID, "   ", "")
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"text"}, verr.Fields())

	_, err = database.CreateProcess("missing", "text", "")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCreateProcessRejectsUnknownAssignee(t *testing.T) {
	testutil.SetupDB(t)
	client := newIndividual(t)

	_, err := database.CreateProcess(client.ID, "call back", "no-such-user")
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"responsibleUserId"}, verr.Fields())

	all, err := database.ListProcesses(database.ProcessFilter{ClientID: client.ID})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeletingAssigneeUnassignsProcess(t *testing.T) {
	db := testutil.SetupDB(t)
	client := newIndividual(t)
	worker := newWorker(t, "leaver@example.com")

	p, err := database.CreateProcess(client.ID, "measure walls", worker.ID)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.User{}, "id = ?", worker.ID).Error)

	again, err := database.GetProcess(p.ID)
	require.NoError(t, err)
	assert.Nil(t, again.ResponsibleUserID)
}

func TestCloseProcess(t *testing.T) {
	testutil.SetupDB(t)
	client := newIndividual(t)
	p, err := database.CreateProcess(client.ID, "send offer", "")
	require.NoError(t, err)

	closed, err := database.CloseProcess(p.ID, models.ProcessDone)
	require.NoError(t, err)
	assert.Equal(t, models.ProcessDone, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	open, err := database.ListProcesses(database.ProcessFilter{Status: models.ProcessOpen})
	require.NoError(t, err)
	assert.Empty(t, open)

	_, err = database.CloseProcess(p.ID, models.ProcessFailed)
	assert.ErrorIs(t, err, database.ErrProcessClosed)

	again, err := database.GetProcess(p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProcessDone, again.Status)
}

func TestCloseProcessRejectsOtherStatuses(t *testing.T) {
	testutil.SetupDB(t)
	client := newIndividual(t)
	p, err := database.CreateProcess(client.ID, "send offer", "")
	require.NoError(t, err)

	for _, s := range []models.ProcessStatus{"open", "cancelled", ""} {
		_, err := database.CloseProcess(p.ID, s)
		var verr *validation.Error
		assert.True(t, errors.As(err, &verr), "status %q", s)
	}

	unchanged, err := database.GetProcess(p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProcessOpen, unchanged.Status)
	assert.Nil(t, unchanged.ClosedAt)

	_, err = database.CloseProcess("missing", models.ProcessDone)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestListProcessViewsAndFilters(t *testing.T) {
	db := testutil.SetupDB(t)
	client := newIndividual(t)
	me := newWorker(t, "me@example.com")
	other := newWorker(t, "other@example.com")

	_, err := database.CreateProcess(client.ID, "mine", me.ID)
	require.NoError(t, err)
	_, err = database.CreateProcess(client.ID, "theirs", other.ID)
	require.NoError(t, err)

	// process whose client row is gone; written without the foreign key check
	require.NoError(t, db.Exec("PRAGMA foreign_keys = OFF").Error)
	require.NoError(t, db.Create(&models.Process{ClientID: "ghost", Text: "orphan", Status: models.ProcessOpen}).Error)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	views, err := database.ListProcessViews(database.ProcessFilter{})
	require.NoError(t, err)
	require.Len(t, views, 3)

	names := map[string]string{}
	for _, v := range views {
		names[v.Text] = v.ClientName
	}
	assert.Equal(t, "Kovacs Anna", names["mine"])
	assert.Equal(t, models.MissingClientName, names["orphan"])

	mine, err := database.ListProcesses(database.ProcessFilter{ResponsibleUserID: me.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Text)

	byClient, err := database.ListProcessViews(database.ProcessFilter{ClientID: client.ID})
	require.NoError(t, err)
	assert.Len(t, byClient, 2)
}
