package pg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-ingest/internal/apperr"
	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	pkgtesting "github.com/DjordjeVuckovic/news-ingest/pkg/testing"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
)

var (
	testCtx    context.Context
	testPool   *ConnectionPool
	testStorer *Storer
)

func TestMain(m *testing.M) {
	testCtx = context.Background()

	if !pkgtesting.IntegrationEnabled() {
		os.Exit(m.Run())
	}

	pg, err := pkgtesting.NewPGContainer(testCtx, pkgtesting.PGConfig{
		Database: "news_ingest_test",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		panic(err)
	}

	testPool, err = NewConnectionPool(testCtx, PoolConfig{ConnStr: pg.ConnString})
	if err != nil {
		_ = testcontainers.TerminateContainer(pg.Container)
		panic(err)
	}

	testStorer, err = NewStorer(testPool)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	testPool.Close()
	_ = testcontainers.TerminateContainer(pg.Container)
	os.Exit(code)
}

func truncateTable(t *testing.T) {
	t.Helper()
	_, err := testPool.GetConn().Exec(testCtx, "TRUNCATE TABLE news CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate table: %v", err)
	}
}

func newsRows(createdAt time.Time, keys ...string) []domain.News {
	out := make([]domain.News, len(keys))
	for i, k := range keys {
		raw := domain.RawNews{
			UUID:       k,
			Title:      "title " + k,
			Published:  "2024-05-01T10:00:00Z",
			Categories: []string{"tech"},
			Entities:   domain.Entities{Persons: []domain.Entity{{Name: "ada", Sentiment: "positive"}}},
			Thread:     domain.Thread{Site: "example.com", Social: domain.Social{Facebook: domain.FacebookSocial{Likes: 3}}},
		}
		out[i] = domain.NewNews(raw, uuid.New(), createdAt.Add(time.Duration(i)*time.Millisecond))
	}
	return out
}

func TestBuildInsert(t *testing.T) {
	rows := newsRows(time.Now(), "a", "b")

	sql, args := buildInsert(rows)

	assert.True(t, strings.HasPrefix(sql, "INSERT INTO news (id, uuid, url,"))
	assert.True(t, strings.HasSuffix(sql, "ON CONFLICT (uuid) DO NOTHING RETURNING uuid"))
	assert.Equal(t, 1, strings.Count(sql, "INSERT"))
	assert.Contains(t, sql, fmt.Sprintf("$%d)", 2*len(newsColumns)))
	assert.Len(t, args, 2*len(newsColumns))
	assert.Equal(t, "a", args[1])
	assert.Equal(t, "b", args[len(newsColumns)+1])
}

func TestMaxBatchSize(t *testing.T) {
	assert.LessOrEqual(t, MaxBatchSize*len(newsColumns), maxParams)
}

func TestWrapErr(t *testing.T) {
	err := wrapErr("pg.Tx.InsertNews", &pgconn.PgError{Code: "23505", Message: "duplicate key"})

	var pe *apperr.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "23505", pe.Code)
	assert.Contains(t, pe.Op, "unique_violation")

	assert.Nil(t, wrapErr("noop", nil))
}

func TestStorer_InsertCommitAndList(t *testing.T) {
	pkgtesting.RequireIntegration(t)
	truncateTable(t)
	defer truncateTable(t)

	tx, err := testStorer.BeginTx(testCtx)
	require.NoError(t, err)

	inserted, err := tx.InsertNews(testCtx, newsRows(time.Now(), "a", "b", "c"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, inserted)
	require.NoError(t, tx.Commit(testCtx))

	total, err := testStorer.Count(testCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	list, err := testStorer.List(testCtx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].UUID)
	assert.Equal(t, "example.com", list[0].Thread.Site)
	assert.Equal(t, 3, list[0].Thread.Social.Facebook.Likes)
	assert.Equal(t, []domain.Entity{{Name: "ada", Sentiment: "positive"}}, list[0].Entities.Persons)
	require.NotNil(t, list[0].Published)
}

func TestStorer_RollbackLeavesNoRows(t *testing.T) {
	pkgtesting.RequireIntegration(t)
	truncateTable(t)
	defer truncateTable(t)

	tx, err := testStorer.BeginTx(testCtx)
	require.NoError(t, err)

	_, err = tx.InsertNews(testCtx, newsRows(time.Now(), "a", "b"))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(testCtx))

	total, err := testStorer.Count(testCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestStorer_ConflictsAreSkipped(t *testing.T) {
	pkgtesting.RequireIntegration(t)
	truncateTable(t)
	defer truncateTable(t)

	tx, err := testStorer.BeginTx(testCtx)
	require.NoError(t, err)
	_, err = tx.InsertNews(testCtx, newsRows(time.Now(), "a", "b"))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(testCtx))

	tx, err = testStorer.BeginTx(testCtx)
	require.NoError(t, err)
	inserted, err := tx.InsertNews(testCtx, newsRows(time.Now(), "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, inserted)
	require.NoError(t, tx.Commit(testCtx))

	total, err := testStorer.Count(testCtx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestStorer_ListPages(t *testing.T) {
	pkgtesting.RequireIntegration(t)
	truncateTable(t)
	defer truncateTable(t)

	keys := make([]string, 25)
	for i := range keys {
		keys[i] = fmt.Sprintf("k%02d", i)
	}
	tx, err := testStorer.BeginTx(testCtx)
	require.NoError(t, err)
	_, err = tx.InsertNews(testCtx, newsRows(time.Now(), keys...))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(testCtx))

	page, err := testStorer.List(testCtx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page, 10)

	last, err := testStorer.List(testCtx, 20, 10)
	require.NoError(t, err)
	assert.Len(t, last, 5)
}

func TestStorer_TxIsSingleUse(t *testing.T) {
	pkgtesting.RequireIntegration(t)

	tx, err := testStorer.BeginTx(testCtx)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(testCtx))

	assert.Error(t, tx.Commit(testCtx))
}

func TestHealthChecker(t *testing.T) {
	pkgtesting.RequireIntegration(t)

	assert.True(t, NewHealthChecker(testPool).Healthy(testCtx))
	assert.False(t, NewHealthChecker(nil).Healthy(testCtx))
}
