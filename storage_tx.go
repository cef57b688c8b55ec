package storage

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Tx struct {
	s  *storage
	tx *sqlx.Tx

	actions []txAction
}

type txAction struct {
	action actionTypes
	table  *Table
	obj    interface{}
}

type TxInterface interface {
	TXInsert(ctx context.Context, obj interface{}) error
	TXUpdate(ctx context.Context, obj interface{}) error
	TXDelete(ctx context.Context, obj interface{}) error

	// TXEnd commits the transaction and then takes the cache actions of every write in it
	TXEnd(ctx context.Context) error
	// TXRollback aborts the transaction; it's safe to defer even after TXEnd
	TXRollback() error

	// TxSelect is for fetching one row where obj will be the result. Reads inside a transaction never touch the cache.
	TxSelect(ctx context.Context, obj interface{}, queryName string) error

	// TxSelectAll is for fetching all rows where dest will be the results
	TxSelectAll(ctx context.Context, obj interface{}, dest interface{}, queryName string, opts *SelectOptions) error
}

func (t *Tx) TXInsert(ctx context.Context, obj interface{}) error {
	return t.write(ctx, obj, actionInsert)
}

func (t *Tx) TXUpdate(ctx context.Context, obj interface{}) error {
	return t.write(ctx, obj, actionUpdate)
}

func (t *Tx) TXDelete(ctx context.Context, obj interface{}) error {
	return t.write(ctx, obj, actionDelete)
}

func (t *Tx) write(ctx context.Context, obj interface{}, action actionTypes) error {
	table, err := t.s.write(ctx, obj, t.tx, action)
	if err != nil {
		return err
	}

	// keep a copy; the caller may keep changing obj before the commit
	t.actions = append(t.actions, txAction{
		action: action,
		table:  table,
		obj:    snapshot(obj),
	})
	return nil
}

func (t *Tx) TxSelect(ctx context.Context, obj interface{}, queryName string) error {
	return t.s.selectOne(ctx, obj, queryName, t.tx, false)
}

func (t *Tx) TxSelectAll(ctx context.Context, obj interface{}, dest interface{}, queryName string, opts *SelectOptions) error {
	return t.s.selectAll(ctx, obj, dest, queryName, opts, t.tx, false)
}

func (t *Tx) TXEnd(ctx context.Context) error {
	err := t.tx.Commit()
	if err != nil {
		t.tx.Rollback()
		return err
	}

	for _, action := range t.actions {
		t.s.afterWrite(ctx, action.table, action.obj, action.action)
	}
	t.actions = nil

	return nil
}

func (t *Tx) TXRollback() error {
	t.actions = nil
	return t.tx.Rollback()
}
