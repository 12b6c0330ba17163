package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-admin/internal/models"
)

// fakeBrandStore doubles the persistence collaborator.
type fakeBrandStore struct {
	creates []*models.Brand
	updates map[string]*models.Brand
	deletes []string
	err     error
}

func newFakeBrandStore() *fakeBrandStore {
	return &fakeBrandStore{updates: make(map[string]*models.Brand)}
}

func (f *fakeBrandStore) Create(ctx context.Context, b *models.Brand) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.creates = append(f.creates, b)
	return "generated-id", nil
}

func (f *fakeBrandStore) Update(ctx context.Context, id string, b *models.Brand) error {
	if f.err != nil {
		return f.err
	}
	f.updates[id] = b
	return nil
}

func (f *fakeBrandStore) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, id)
	return nil
}

func TestEditBufferIsIndependentCopy(t *testing.T) {
	seed := &models.Brand{Name: "Dymatize", Market: "Dymatize"}
	ed := NewEdit(seed, "abc123", newFakeBrandStore())

	ed.Buffer().Name = "changed"
	assert.Equal(t, "Dymatize", seed.Name, "editing must never touch the list entry")
	assert.Equal(t, ModeEditing, ed.Mode())
	assert.Equal(t, "abc123", ed.SeedID())
}

func TestSubmitRejectsBlankNameBeforeAnyWrite(t *testing.T) {
	st := newFakeBrandStore()
	ed := NewCreate(&models.Brand{Name: "   "}, st)

	err := ed.Submit(context.Background())

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, st.creates, "no write call may happen before validation passes")
	assert.Equal(t, ModeCreating, ed.Mode(), "editor stays open on validation failure")
	assert.NotNil(t, ed.Buffer())
}

func TestSubmitRejectsMalformedURL(t *testing.T) {
	st := newFakeBrandStore()
	ed := NewCreate(&models.Brand{Name: "Acme", Image: "not-a-url"}, st)

	err := ed.Submit(context.Background())

	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, st.creates)
}

func TestSubmitNormalizesAndCreatesOnce(t *testing.T) {
	st := newFakeBrandStore()
	ed := NewCreate(&models.Brand{Name: " Acme ", Market: "ACME", Image: ""}, st)

	require.NoError(t, ed.Submit(context.Background()))

	require.Len(t, st.creates, 1)
	written := st.creates[0]
	assert.Equal(t, "Acme", written.Name)
	assert.Equal(t, "ACME", written.Market)
	assert.Equal(t, "", written.Image)

	assert.Equal(t, ModeClosed, ed.Mode())
	assert.Nil(t, ed.Buffer(), "buffer is cleared after a successful write")
}

func TestSubmitInEditModeUpdatesSeedRecord(t *testing.T) {
	st := newFakeBrandStore()
	seed := &models.Brand{Name: "ON", Market: "ON"}
	ed := NewEdit(seed, "id-1", st)

	ed.Buffer().Name = "Optimum Nutrition"
	require.NoError(t, ed.Submit(context.Background()))

	require.Contains(t, st.updates, "id-1")
	assert.Equal(t, "Optimum Nutrition", st.updates["id-1"].Name)
	assert.Empty(t, st.creates)
}

func TestFailedRemoteWriteKeepsEditorOpen(t *testing.T) {
	st := newFakeBrandStore()
	st.err = errors.New("connection reset")
	ed := NewCreate(&models.Brand{Name: "Acme"}, st)

	err := ed.Submit(context.Background())

	require.EqualError(t, err, "connection reset")
	assert.Equal(t, ModeCreating, ed.Mode())
	require.NotNil(t, ed.Buffer())
	assert.Equal(t, "Acme", ed.Buffer().Name, "buffer preserved for retry")

	// Retry after the store recovers.
	st.err = nil
	require.NoError(t, ed.Submit(context.Background()))
	assert.Len(t, st.creates, 1)
	assert.Equal(t, ModeClosed, ed.Mode())
}

func TestConcurrentMutationsSerialize(t *testing.T) {
	ed := NewCreate(&models.Brand{}, newFakeBrandStore())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ed.Mutate(func(b *models.Brand) {
				b.Name = fmt.Sprintf("name-%d", i)
			})
		}(i)
	}
	wg.Wait()

	assert.NotEmpty(t, ed.Buffer().Name, "one of the writes must have landed")
	require.NoError(t, ed.Submit(context.Background()))
}

func TestCancelDiscardsWithoutWriting(t *testing.T) {
	st := newFakeBrandStore()
	ed := NewCreate(&models.Brand{Name: "Acme"}, st)

	ed.Cancel()

	assert.Equal(t, ModeClosed, ed.Mode())
	assert.Nil(t, ed.Buffer())
	assert.Empty(t, st.creates)
}

func TestRegistryLifecycle(t *testing.T) {
	st := newFakeBrandStore()
	reg := NewRegistry[*models.Brand]()

	id := reg.Open(NewCreate(&models.Brand{}, st))
	_, ok := reg.Get(id)
	require.True(t, ok)
	assert.Equal(t, 1, reg.Len())

	reg.Release(id)
	_, ok = reg.Get(id)
	assert.False(t, ok)
	assert.Zero(t, reg.Len())
}

func TestDeleteRequiresExplicitConfirmation(t *testing.T) {
	st := newFakeBrandStore()
	d := NewDeleteConfirm(st)

	token := d.Request("record-1")
	require.True(t, d.Pending(token))
	assert.Empty(t, st.deletes, "requesting a delete must not delete")

	require.NoError(t, d.Confirm(context.Background(), token))
	assert.Equal(t, []string{"record-1"}, st.deletes)
	assert.False(t, d.Pending(token))
}

func TestCancelledConfirmationIssuesZeroDeleteCalls(t *testing.T) {
	st := newFakeBrandStore()
	d := NewDeleteConfirm(st)

	token := d.Request("record-1")
	d.Cancel(token)

	assert.Error(t, d.Confirm(context.Background(), token), "a cancelled token is dead")
	assert.Empty(t, st.deletes)
}
