package dataset

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoaderLoad(t *testing.T) {
	path := writeCSV(t, `Store, Dept ,Date,Weekly_Sales
1,A,2024-01-01,100.5
1,A,2024-01-08,200
2,B,2024-01-01,-50.25
`)

	table, err := NewLoader(path, nil).Load()
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, "1", table[0].Store.String())
	assert.True(t, table[0].Store.Numeric)
	assert.Equal(t, "A", table[0].Dept)
	assert.Equal(t, "2024-01-01", table[0].Date.Format("2006-01-02"))
	assert.Equal(t, 100.5, table[0].WeeklySales)

	// Negative amounts are valid returns/adjustments
	assert.Equal(t, -50.25, table[2].WeeklySales)
}

func TestLoaderNormalizesHeaders(t *testing.T) {
	path := writeCSV(t, `  store ,DEPT,  Date  ,  WEEKLY_SALES
7,X,2024-03-05,12
`)

	table, err := NewLoader(path, nil).Load()
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "X", table[0].Dept)
}

func TestLoaderStringStoreIDs(t *testing.T) {
	path := writeCSV(t, `Store,Dept,Date,Weekly_Sales
Store A,A,2024-01-01,10
`)

	table, err := NewLoader(path, nil).Load()
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.False(t, table[0].Store.Numeric)
	assert.Equal(t, "Store A", table[0].Store.String())
}

func TestLoaderOptionalDept(t *testing.T) {
	path := writeCSV(t, `Store,Date,Weekly_Sales
1,2024-01-01,10
`)

	table, err := NewLoader(path, nil).Load()
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Empty(t, table[0].Dept)
}

func TestLoaderSkipsMalformedRows(t *testing.T) {
	path := writeCSV(t, `Store,Dept,Date,Weekly_Sales
1,A,2024-01-01,100
1,A,not-a-date,100
1,A,2024-01-08,not-a-number
2,B,2024-01-15,50
`)

	table, err := NewLoader(path, nil).Load()
	require.NoError(t, err)
	assert.Len(t, table, 2)
}

func TestLoaderSourceNotFound(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "missing.csv"), nil).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestLoaderMissingColumn(t *testing.T) {
	path := writeCSV(t, `Store,Dept,Day,Weekly_Sales
1,A,2024-01-01,100
`)

	_, err := NewLoader(path, nil).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestManagerLoadsOnce(t *testing.T) {
	path := writeCSV(t, `Store,Dept,Date,Weekly_Sales
1,A,2024-01-01,100
`)

	m := NewManager(NewLoader(path, nil))

	first, err := m.Table()
	require.NoError(t, err)

	// Rewrite the source; the cached table must not change
	require.NoError(t, os.WriteFile(path, []byte("Store,Dept,Date,Weekly_Sales\n"), 0644))

	second, err := m.Table()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, second, 1)
}

func TestManagerConcurrentFirstUse(t *testing.T) {
	path := writeCSV(t, `Store,Dept,Date,Weekly_Sales
1,A,2024-01-01,100
2,B,2024-01-01,200
`)

	m := NewManager(NewLoader(path, nil))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table, err := m.Table()
			assert.NoError(t, err)
			assert.Len(t, table, 2)
		}()
	}
	wg.Wait()
}

func TestManagerStickyError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")
	m := NewManager(NewLoader(path, nil))

	_, err := m.Table()
	require.ErrorIs(t, err, ErrSourceNotFound)

	// Creating the file afterwards does not trigger a reload
	require.NoError(t, os.WriteFile(path, []byte("Store,Date,Weekly_Sales\n1,2024-01-01,5\n"), 0644))
	_, err = m.Table()
	assert.ErrorIs(t, err, ErrSourceNotFound)
}
