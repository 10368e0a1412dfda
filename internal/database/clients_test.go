package database_test

import (
	"errors"
	"testing"
	"time"

	"renovation-crm/internal/database"
	"renovation-crm/internal/models"
	"renovation-crm/internal/testutil"
	"renovation-crm/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndividual(t *testing.T) *models.Client {
	t.Helper()
	client, err := database.CreateClient(models.IndividualDraft{
		LastName:  "Kovacs",
		FirstName: "Anna",
		Phone:     "+36301234567",
		Email:     "anna@example.com",
		Address:   models.AddressParts{PostalCode: "1051", Settlement: "Budapest", Street: "Fo utca 1"},
		Billing:   models.DefaultBilling(),
	}, models.SourceManual)
	require.NoError(t, err)
	return client
}

func TestCreateClientAssignsFirstStatus(t *testing.T) {
	testutil.SetupDB(t)

	_, err := database.SaveStatuses([]string{"new lead", "won"})
	require.NoError(t, err)

	client := newIndividual(t)
	assert.NotEmpty(t, client.ID)
	assert.Equal(t, "new lead", client.Status)
	assert.Equal(t, "Kovacs Anna", client.Name)
	assert.Equal(t, "1051, Budapest, Fo utca 1", client.Address)
	assert.True(t, client.BillingSameAsAddress)
}

func TestCreateClientMissingPhoneIsNotPersisted(t *testing.T) {
	testutil.SetupDB(t)

	_, err := database.CreateClient(models.IndividualDraft{
		LastName: "Kovacs", FirstName: "Anna", Email: "anna@example.com",
	}, models.SourceManual)

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"phone"}, verr.Fields())

	clients, err := database.ListClients()
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestListClientsNewestFirst(t *testing.T) {
	db := testutil.SetupDB(t)

	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, name := range []string{"old", "middle", "new"} {
		require.NoError(t, db.Create(&models.Client{
			ClientType: models.ClientIndividual,
			Name:       name,
			Phone:      "1",
			Email:      name + "@example.com",
			Status:     "interested",
			Source:     models.SourceManual,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}

	clients, err := database.ListClients()
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, "new", clients[0].Name)
	assert.Equal(t, "old", clients[2].Name)
}

func TestUpdateClientStatusOnlyKeepsOtherFields(t *testing.T) {
	testutil.SetupDB(t)
	before := newIndividual(t)

	status := "contract"
	after, err := database.UpdateClient(before.ID, models.ClientPatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "contract", after.Status)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.LastName, after.LastName)
	assert.Equal(t, before.FirstName, after.FirstName)
	assert.Equal(t, before.Address, after.Address)
	assert.Equal(t, before.PostalCode, after.PostalCode)
	assert.Equal(t, before.Phone, after.Phone)
	assert.Equal(t, before.Email, after.Email)
	assert.Equal(t, before.Source, after.Source)
	assert.Equal(t, before.BillingSameAsAddress, after.BillingSameAsAddress)
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
}

func TestUpdateClientRecomputesDerivedFields(t *testing.T) {
	testutil.SetupDB(t)
	client := newIndividual(t)

	first := "Bea"
	settlement := "Szeged"
	updated, err := database.UpdateClient(client.ID, models.ClientPatch{FirstName: &first, Settlement: &settlement})
	require.NoError(t, err)

	assert.Equal(t, "Kovacs Bea", updated.Name)
	assert.Equal(t, "1051, Szeged, Fo utca 1", updated.Address)
}

func TestUpdateClientUnknownID(t *testing.T) {
	testutil.SetupDB(t)

	status := "x"
	_, err := database.UpdateClient("missing", models.ClientPatch{Status: &status})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestDeleteClientCascades(t *testing.T) {
	testutil.SetupDB(t)
	client := newIndividual(t)

	_, err := database.CreateProcess(client.ID, "call back", "")
	require.NoError(t, err)
	_, err = database.CreateProject(client.ID, "")
	require.NoError(t, err)

	existed, err := database.DeleteClient(client.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	_, err = database.GetClient(client.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	processes, err := database.ListProcesses(database.ProcessFilter{ClientID: client.ID})
	require.NoError(t, err)
	assert.Empty(t, processes)

	projects, err := database.ListProjectsByClient(client.ID)
	require.NoError(t, err)
	assert.Empty(t, projects)

	existed, err = database.DeleteClient(client.ID)
	require.NoError(t, err)
	assert.False(t, existed)
}
