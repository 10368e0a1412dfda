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

func TestCreateProjectDefaultsName(t *testing.T) {
	testutil.SetupDB(t)
	client := newIndividual(t)

	p, err := database.CreateProject(client.ID, "  ")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProjectName, p.Name)
	assert.Equal(t, models.ProjectInProgress, p.Status)

	named, err := database.CreateProject(client.ID, "Bathroom")
	require.NoError(t, err)
	assert.Equal(t, "Bathroom", named.Name)

	_, err = database.CreateProject("missing", "x")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestSetProjectStatusBothWays(t *testing.T) {
	testutil.SetupDB(t)
	client := newIndividual(t)
	p, err := database.CreateProject(client.ID, "Kitchen")
	require.NoError(t, err)

	closed, err := database.SetProjectStatus(p.ID, models.ProjectClosed)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectClosed, closed.Status)

	reopened, err := database.SetProjectStatus(p.ID, models.ProjectInProgress)
	require.NoError(t, err)
	assert.Equal(t, models.ProjectInProgress, reopened.Status)

	_, err = database.SetProjectStatus(p.ID, "archived")
	var verr *validation.Error
	assert.True(t, errors.As(err, &verr))

	_, err = database.SetProjectStatus("missing", models.ProjectClosed)
	assert.ErrorIs(t, err, database.ErrNotFound)

	projects, err := database.ListProjectsByClient(client.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, models.ProjectInProgress, projects[0].Status)
}
