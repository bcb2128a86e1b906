package provider

import (
	"database/sql"
)

// Rows is a live result set produced by Provider.Query. It iterates lazily
// over the matching rows and remembers the resource it was produced for,
// so a holder can watch that resource and requery when it goes stale.
type Rows struct {
	rows *sql.Rows
	res  Resource
	p    *Provider

	// original query, kept so Requery can re-run it
	columns []string
	where   string
	args    []any
	orderBy string

	changes <-chan Resource
}

func newRows(rows *sql.Rows, res Resource, p *Provider, columns []string, where string, args []any, orderBy string) *Rows {
	return &Rows{
		rows:    rows,
		res:     res,
		p:       p,
		columns: columns,
		where:   where,
		args:    args,
		orderBy: orderBy,
	}
}

// Resource returns the resource this result set was produced for.
func (r *Rows) Resource() Resource {
	return r.res
}

// Next advances to the next row, returning false when the set is exhausted
// or an error occurred. Check Err after a false return.
func (r *Rows) Next() bool {
	return r.rows.Next()
}

// Scan copies the current row's columns into dest, in select order.
func (r *Rows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

// Err returns the error, if any, that ended iteration early.
func (r *Rows) Err() error {
	return r.rows.Err()
}

// Changes returns a channel that signals after any mutation affecting this
// result set's resource. The subscription starts on first call and lasts
// until Close. Receiving a signal means the rows are stale; call Requery
// to observe the new state.
func (r *Rows) Changes() <-chan Resource {
	if r.changes == nil {
		r.changes = r.p.notifier.Subscribe(r.res)
	}
	return r.changes
}

// Requery re-runs the original query and returns a fresh result set. The
// receiver is closed either way; its subscription, if any, is released.
func (r *Rows) Requery() (*Rows, error) {
	columns, where, args, orderBy := r.columns, r.where, r.args, r.orderBy
	res := r.res
	p := r.p
	r.Close()
	return p.Query(res, columns, where, args, orderBy)
}

// Close releases the underlying cursor and any change subscription.
func (r *Rows) Close() error {
	if r.changes != nil {
		r.p.notifier.Unsubscribe(r.changes)
		r.changes = nil
	}
	return r.rows.Close()
}
