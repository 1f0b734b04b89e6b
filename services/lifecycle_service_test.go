package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripnest/tripnest_backend/models"
)

func TestSetStatusWithNotes(t *testing.T) {
	store := newFakeStore()
	seeded := store.seed(models.TypeContact, time.Now(), models.StatusNew)

	svc := NewLifecycleService(store)
	notes := "Called the customer back"
	updated, err := svc.SetStatus(context.Background(), models.TypeContact, seeded.ID.Hex(), models.StatusInProgress, &notes)
	require.NoError(t, err)

	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, "Called the customer back", updated.Notes)
}

func TestSetStatusAcceptsLegacyVocabulary(t *testing.T) {
	store := newFakeStore()
	seeded := store.seed(models.TypeFlight, time.Now(), models.StatusNew)

	svc := NewLifecycleService(store)
	updated, err := svc.SetStatus(context.Background(), models.TypeFlight, seeded.ID.Hex(), "completed", nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, updated.Status)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	store := newFakeStore()
	seeded := store.seed(models.TypeContact, time.Now(), models.StatusNew)

	svc := NewLifecycleService(store)
	_, err := svc.SetStatus(context.Background(), models.TypeContact, seeded.ID.Hex(), "archived", nil)
	assert.ErrorIs(t, err, models.ErrInvalidStatus)
}

func TestSetStatusNotFound(t *testing.T) {
	store := newFakeStore()

	svc := NewLifecycleService(store)
	_, err := svc.SetStatus(context.Background(), models.TypeContact, "6123456789abcdef01234567", models.StatusResolved, nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMarkReadUnreadCycle(t *testing.T) {
	store := newFakeStore()
	seeded := store.seed(models.TypeVisa, time.Now(), models.StatusNew)

	svc := NewLifecycleService(store)

	read, err := svc.MarkRead(context.Background(), models.TypeVisa, seeded.ID.Hex())
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	unread, err := svc.MarkUnread(context.Background(), models.TypeVisa, seeded.ID.Hex())
	require.NoError(t, err)
	assert.False(t, unread.IsRead)
	assert.Nil(t, unread.ReadAt)
}

func TestDeleteSubmission(t *testing.T) {
	store := newFakeStore()
	seeded := store.seed(models.TypePassport, time.Now(), models.StatusNew)

	svc := NewLifecycleService(store)
	require.NoError(t, svc.Delete(context.Background(), models.TypePassport, seeded.ID.Hex()))

	_, err := store.FindByID(context.Background(), models.TypePassport, seeded.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteTourTypeMismatch(t *testing.T) {
	store := newFakeStore()
	seeded := store.seed(models.TypeDomestic, time.Now(), models.StatusNew)

	svc := NewLifecycleService(store)

	// A domestic tour addressed as international must not be deleted
	err := svc.Delete(context.Background(), models.TypeInternational, seeded.ID.Hex())
	assert.ErrorIs(t, err, models.ErrTypeMismatch)

	_, err = store.FindByID(context.Background(), models.TypeDomestic, seeded.ID.Hex())
	assert.NoError(t, err)
}
