package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRows_TaggedWithResource(t *testing.T) {
	p := newTestProvider(t)

	rows, err := p.Query(Tasks(), []string{"id"}, "", nil, "")
	require.NoError(t, err)
	defer rows.Close()

	assert.Equal(t, Tasks(), rows.Resource())
}

func TestRows_ChangesSignalOnMutation(t *testing.T) {
	p := newTestProvider(t)

	rows, err := p.Query(Tasks(), []string{"id"}, "", nil, "")
	require.NoError(t, err)
	defer rows.Close()

	changes := rows.Changes()

	id, err := p.Insert(Tasks(), Values{"description": "Buy milk", "priority": 1})
	require.NoError(t, err)

	select {
	case res := <-changes:
		assert.Equal(t, Task(id), res)
	case <-time.After(time.Second):
		t.Fatal("expected a change signal after insert")
	}
}

func TestRows_RequeryObservesNewState(t *testing.T) {
	p := newTestProvider(t)

	rows, err := p.Query(Tasks(), []string{"id"}, "", nil, "id")
	require.NoError(t, err)
	assert.False(t, rows.Next(), "fresh database should have no tasks")

	_, err = p.Insert(Tasks(), Values{"description": "Buy milk", "priority": 1})
	require.NoError(t, err)

	fresh, err := rows.Requery()
	require.NoError(t, err)
	defer fresh.Close()

	assert.Equal(t, Tasks(), fresh.Resource())
	require.True(t, fresh.Next())
	var id int64
	require.NoError(t, fresh.Scan(&id))
	assert.Equal(t, int64(1), id)
	assert.False(t, fresh.Next())
	require.NoError(t, fresh.Err())
}

func TestRows_CloseReleasesSubscription(t *testing.T) {
	p := newTestProvider(t)

	rows, err := p.Query(Tasks(), []string{"id"}, "", nil, "")
	require.NoError(t, err)

	changes := rows.Changes()
	require.NoError(t, rows.Close())

	_, open := <-changes
	assert.False(t, open, "subscription should close with the rows")
}
