package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// newDryRunDB opens a gorm session that builds SQL without executing it and
// records every generated query statement.
func newDryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	queries := new([]string)
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*queries = append(*queries, tx.Statement.SQL.String())
	})
	require.NoError(t, err)

	return db, queries
}

func lastQuery(t *testing.T, queries *[]string) string {
	t.Helper()
	require.NotEmpty(t, *queries)

	return (*queries)[len(*queries)-1]
}

func TestAcronymRepository_FindAllSorted_OrdersByShortAscending(t *testing.T) {
	db, queries := newDryRunDB(t)
	repo := NewAcronymRepository(db)

	_, err := repo.FindAllSorted(context.Background())

	require.NoError(t, err)
	assert.Contains(t, lastQuery(t, queries), "ORDER BY short ASC")
}

func TestAcronymRepository_FindAll_Unordered(t *testing.T) {
	db, queries := newDryRunDB(t)
	repo := NewAcronymRepository(db)

	_, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	assert.NotContains(t, lastQuery(t, queries), "ORDER BY")
}

func TestAcronymRepository_FindCategories_JoinsPivotTable(t *testing.T) {
	db, queries := newDryRunDB(t)
	repo := NewAcronymRepository(db)

	_, err := repo.FindCategories(context.Background(), uuid.New())

	require.NoError(t, err)
	sql := lastQuery(t, queries)
	assert.Contains(t, sql, "JOIN acronym_categories ON acronym_categories.category_id = categories.id")
	assert.Contains(t, sql, "acronym_categories.acronym_id")
}
