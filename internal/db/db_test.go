package db

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpen_CreatesDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file should exist")
}

func TestOpen_SchemaEnsuredOnFirstUse(t *testing.T) {
	database := openTestDB(t)

	conn, err := database.Reader()
	require.NoError(t, err)

	var count int
	err = conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpen_ConcurrentFirstUse(t *testing.T) {
	database := openTestDB(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := database.Writer()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestAddTask_AssignsSequentialIDs(t *testing.T) {
	database := openTestDB(t)

	first, err := database.AddTask("Buy milk", PriorityHigh)
	require.NoError(t, err)
	second, err := database.AddTask("Walk dog", PriorityLow)
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestAddTask_RejectsInvalidPriority(t *testing.T) {
	database := openTestDB(t)

	_, err := database.AddTask("bad", Priority(7))
	assert.Error(t, err)
}

func TestGetTask_RoundTrip(t *testing.T) {
	database := openTestDB(t)

	id, err := database.AddTask("Buy milk", PriorityMedium)
	require.NoError(t, err)

	task, err := database.GetTask(id)
	require.NoError(t, err)
	assert.Equal(t, id, task.ID)
	assert.Equal(t, "Buy milk", task.Description)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestListTasks_OrdersByPriority(t *testing.T) {
	database := openTestDB(t)

	_, err := database.AddTask("later", PriorityLow)
	require.NoError(t, err)
	_, err = database.AddTask("now", PriorityHigh)
	require.NoError(t, err)

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "now", tasks[0].Description)
	assert.Equal(t, "later", tasks[1].Description)
}

func TestInitialize_RefusesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	require.NoError(t, Initialize(path))
	assert.Error(t, Initialize(path))
}

func TestCreateFixturesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.db")

	require.NoError(t, CreateFixturesDatabase(path))

	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	tasks, err := database.ListTasks()
	require.NoError(t, err)
	assert.NotEmpty(t, tasks)
	for _, task := range tasks {
		assert.True(t, task.Priority.Valid())
		assert.NotEmpty(t, task.Description)
	}
}

func TestPriority_Valid(t *testing.T) {
	assert.True(t, PriorityHigh.Valid())
	assert.True(t, PriorityMedium.Valid())
	assert.True(t, PriorityLow.Valid())
	assert.False(t, Priority(0).Valid())
	assert.False(t, Priority(4).Valid())
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "high", PriorityHigh.String())
	assert.Equal(t, "medium", PriorityMedium.String())
	assert.Equal(t, "low", PriorityLow.String())
	assert.Equal(t, "unknown", Priority(9).String())
}
