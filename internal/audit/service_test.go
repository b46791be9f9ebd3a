package audit_test

import (
	"context"
	"testing"

	"radiotrack/internal/audit"
	"radiotrack/internal/models"
	"radiotrack/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteChange_DanglingRadio(t *testing.T) {
	db := testhelpers.NewDB(t)

	err := audit.WriteChange(db, audit.Change{
		RadioID: 4242,
		Type:    models.ChangeEdit,
		Field:   "model",
		Old:     testhelpers.Ptr("ModelD"),
		New:     testhelpers.Ptr("ModelE"),
	})
	require.NoError(t, err)

	changes, err := audit.ListChanges(context.Background(), db, 4242)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	c := changes[0]
	assert.Equal(t, models.ChangeEdit, c.ChangeType)
	assert.Equal(t, "model", c.FieldChanged)
	assert.Equal(t, "ModelD", *c.OldValue)
	assert.Equal(t, "ModelE", *c.NewValue)
	assert.NotEmpty(t, c.Timestamp)
}

func TestWriteChange_KeepsNull(t *testing.T) {
	db := testhelpers.NewDB(t)

	require.NoError(t, audit.WriteChange(db, audit.Change{
		RadioID: 1, Type: models.ChangeEdit, Field: "department_id", New: testhelpers.Ptr("D1"),
	}))

	changes, err := audit.ListChanges(context.Background(), db, 1)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Nil(t, changes[0].OldValue)
}

func TestListChanges_OrderAndTypes(t *testing.T) {
	db := testhelpers.NewDB(t)

	require.NoError(t, audit.WriteChange(db, audit.Added(7, audit.AddSummary("R7", "SN7", "", "", ""))))
	require.NoError(t, audit.WriteChange(db, audit.MissingChanged(7, models.MissingNo, models.MissingYes)))
	require.NoError(t, audit.WriteChange(db, audit.StatusChanged(7, models.StatusActive, models.StatusInService)))
	require.NoError(t, audit.WriteChange(db, audit.Added(8, "other")))

	changes, err := audit.ListChanges(context.Background(), db, 7)
	require.NoError(t, err)
	require.Len(t, changes, 3)
	// same-second timestamps fall back to insertion order
	assert.Equal(t, models.ChangeStatus, changes[0].ChangeType)
	assert.Equal(t, models.ChangeAdd, changes[2].ChangeType)

	only, err := audit.ListChanges(context.Background(), db, 7, models.ChangeMissing)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "missing", only[0].FieldChanged)
	assert.Equal(t, "No", *only[0].OldValue)
	assert.Equal(t, "Yes", *only[0].NewValue)
}

func TestConstructors(t *testing.T) {
	add := audit.Added(3, audit.AddSummary("TEST123", "SN0001", "ModelA", "", ""))
	assert.Equal(t, models.FieldAll, add.Field)
	assert.Equal(t, "", *add.Old)
	assert.Equal(t, "TEST123, SN0001, ModelA, , ", *add.New)

	del := audit.Deleted(3, "SN0001")
	assert.Equal(t, models.ChangeDelete, del.Type)
	assert.Equal(t, "SN0001", *del.Old)
	assert.Equal(t, "", *del.New)

	st := audit.StatusChanged(3, "", models.StatusInService)
	assert.Nil(t, st.Old)
	assert.Equal(t, "In Service", *st.New)
}
