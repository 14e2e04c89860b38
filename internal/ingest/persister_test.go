package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-ingest/internal/apperr"
	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedPersister(now time.Time) *Persister {
	return &Persister{
		newID: uuid.New,
		now:   func() time.Time { return now },
	}
}

func TestPersister_ProjectSharesCreationTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	p := fixedPersister(now)

	news := p.Project(posts("a", "b", "c"))

	require.Len(t, news, 3)
	ids := make(map[uuid.UUID]struct{})
	for i, n := range news {
		assert.Equal(t, now.UTC(), n.CreatedAt)
		assert.NotEqual(t, uuid.Nil, n.ID)
		ids[n.ID] = struct{}{}
		assert.Equal(t, posts("a", "b", "c")[i].UUID, n.UUID)
	}
	assert.Len(t, ids, 3)
}

func TestPersister_PersistInsertsRows(t *testing.T) {
	store := newTrackingStore()
	tx, err := store.BeginTx(context.Background())
	require.NoError(t, err)

	n, err := NewPersister().Persist(context.Background(), tx, posts("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, tx.Commit(context.Background()))
	count, _ := store.Count(context.Background())
	assert.Equal(t, int64(2), count)
}

func TestPersister_EmptyBatchSkipsInsert(t *testing.T) {
	store := newTrackingStore()
	store.insertErr = errors.New("should not be called")
	store.failOnCall = 1
	tx, err := store.BeginTx(context.Background())
	require.NoError(t, err)

	inserted, err := NewPersister().Write(context.Background(), tx, []domain.News{})

	require.NoError(t, err)
	assert.Empty(t, inserted)
}

func TestPersister_WriteReturnsOnlyAcceptedRows(t *testing.T) {
	store := newTrackingStore()
	p := NewPersister()

	tx, err := store.BeginTx(context.Background())
	require.NoError(t, err)
	_, err = p.Persist(context.Background(), tx, posts("a"))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))

	tx, err = store.BeginTx(context.Background())
	require.NoError(t, err)
	inserted, err := p.Write(context.Background(), tx, p.Project(posts("a", "b", "b", "c")))
	require.NoError(t, err)

	keys := make([]string, len(inserted))
	for i, n := range inserted {
		keys[i] = n.UUID
	}
	assert.Equal(t, []string{"b", "c"}, keys)
}

func TestPersister_WrapsStorageErrors(t *testing.T) {
	store := newTrackingStore()
	store.insertErr = errors.New("connection refused")
	store.failOnCall = 1
	tx, err := store.BeginTx(context.Background())
	require.NoError(t, err)

	_, err = NewPersister().Persist(context.Background(), tx, posts("a"))

	var persistErr *apperr.PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "insert news", persistErr.Op)
	assert.ErrorContains(t, err, "connection refused")
}

func TestPersister_KeepsPersistenceErrors(t *testing.T) {
	original := apperr.NewPersistence("pg.Tx.InsertNews", errors.New("unique violation"))
	store := newTrackingStore()
	store.insertErr = original
	store.failOnCall = 1
	tx, err := store.BeginTx(context.Background())
	require.NoError(t, err)

	_, err = NewPersister().Persist(context.Background(), tx, posts("a"))

	assert.Same(t, original, err)
}
