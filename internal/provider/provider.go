// Package provider routes URI-style resource references to CRUD operations
// on the task table and broadcasts change signals after each successful
// mutation. It is the only path the rest of the application uses to touch
// task data.
package provider

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdxmph/todos-tui/internal/db"
)

// Values holds the fields for an insert or update, keyed by column name.
type Values map[string]any

// columns returns the value keys in a stable order so generated SQL is
// deterministic.
func (v Values) columns() []string {
	cols := make([]string, 0, len(v))
	for col := range v {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Provider dispatches resource-addressed requests against the task store.
// Mutations that change at least one row are announced through the
// notifier; inserts additionally announce the collection.
type Provider struct {
	store    *db.DB
	notifier *Notifier
}

// New creates a provider over the given store handle.
func New(store *db.DB) *Provider {
	return &Provider{
		store:    store,
		notifier: NewNotifier(),
	}
}

// Notifier exposes the change-signal registry, for callers that want to
// watch a resource without holding a result set.
func (p *Provider) Notifier() *Notifier {
	return p.notifier
}

// Insert adds one task with the given values and returns its assigned ID.
// Only the collection resource accepts inserts.
func (p *Provider) Insert(res Resource, values Values) (int64, error) {
	if res.Kind != KindCollection {
		return 0, fmt.Errorf("insert %s: %w", res, ErrUnsupportedResource)
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("insert %s: no values", res)
	}

	conn, err := p.store.Writer()
	if err != nil {
		return 0, storeErr("insert", err)
	}

	cols := values.columns()
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		args = append(args, values[col])
	}

	query := fmt.Sprintf(
		"INSERT INTO tasks (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		placeholders(len(cols)),
	)

	result, err := conn.Exec(query, args...)
	if err != nil {
		return 0, storeErr("insert", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storeErr("insert", err)
	}

	p.notifier.Notify(Task(id))
	p.notifier.Notify(res)

	return id, nil
}

// Query runs a select against the resource and returns a live result set
// tagged with it. For an item resource the where clause is replaced by a
// match on that item's ID; whatever the caller passed is discarded. Callers
// depend on item queries resolving to exactly the addressed row.
func (p *Provider) Query(res Resource, columns []string, where string, args []any, orderBy string) (*Rows, error) {
	if res.Kind == KindUnknown {
		return nil, fmt.Errorf("query %s: %w", res, ErrUnsupportedResource)
	}

	if res.Kind == KindItem {
		where = "id = ?"
		args = []any{res.ID}
	}

	conn, err := p.store.Reader()
	if err != nil {
		return nil, storeErr("query", err)
	}

	cols := "*"
	if len(columns) > 0 {
		cols = strings.Join(columns, ", ")
	}

	query := fmt.Sprintf("SELECT %s FROM tasks", cols)
	if where != "" {
		query += " WHERE " + where
	}
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}

	rows, err := conn.Query(query, args...)
	if err != nil {
		return nil, storeErr("query", err)
	}

	return newRows(rows, res, p, columns, where, args, orderBy), nil
}

// Update modifies the addressed task's fields and returns the number of
// rows changed. Zero means the task does not exist; that is not an error
// and raises no signal. Bulk update of the collection is unsupported.
func (p *Provider) Update(res Resource, values Values) (int64, error) {
	if res.Kind != KindItem {
		return 0, fmt.Errorf("update %s: %w", res, ErrUnsupportedResource)
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("update %s: no values", res)
	}

	conn, err := p.store.Writer()
	if err != nil {
		return 0, storeErr("update", err)
	}

	cols := values.columns()
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		sets = append(sets, col+" = ?")
		args = append(args, values[col])
	}
	args = append(args, res.ID)

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(sets, ", "))

	result, err := conn.Exec(query, args...)
	if err != nil {
		return 0, storeErr("update", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, storeErr("update", err)
	}

	if affected > 0 {
		p.notifier.Notify(res)
	}

	return affected, nil
}

// Delete removes rows and returns how many were deleted. Against the
// collection the caller's filter applies, and an empty filter deletes
// every task. Against an item the filter is replaced by the item's ID,
// mirroring Query.
func (p *Provider) Delete(res Resource, where string, args []any) (int64, error) {
	if res.Kind == KindUnknown {
		return 0, fmt.Errorf("delete %s: %w", res, ErrUnsupportedResource)
	}

	if res.Kind == KindItem {
		where = "id = ?"
		args = []any{res.ID}
	}

	conn, err := p.store.Writer()
	if err != nil {
		return 0, storeErr("delete", err)
	}

	query := "DELETE FROM tasks"
	if where != "" {
		query += " WHERE " + where
	}

	result, err := conn.Exec(query, args...)
	if err != nil {
		return 0, storeErr("delete", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, storeErr("delete", err)
	}

	if affected > 0 {
		p.notifier.Notify(res)
	}

	return affected, nil
}

// Type returns the MIME-style descriptor for a resource: a directory type
// for the collection, an item type for a single task.
func (p *Provider) Type(res Resource) (string, error) {
	switch res.Kind {
	case KindCollection:
		return "vnd.todos.cursor.dir/" + TasksPath, nil
	case KindItem:
		return "vnd.todos.cursor.item/" + TasksPath, nil
	default:
		return "", fmt.Errorf("type of %s: %w", res, ErrUnsupportedResource)
	}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
