package storage

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jmoiron/sqlx"
)

type actionTypes int32

const (
	actionSelect actionTypes = iota
	actionInsert
	actionUpdate
	actionDelete
)

// Define the cache actions you can take
type CacheAction int32

const (
	CacheDefault  CacheAction = iota
	CacheNoAction             // do nothing
	CacheDel
	CacheSet
)

type CacheDataStructure int32

const (
	CacheDataStructureDefault CacheDataStructure = iota
	CacheDataStructureStruct
	CacheDataStructureList
)

const (
	// appended to a list query's key; holds every concrete key cached for that query
	cacheKeyListMetadataModifier = "|_keys"
)

// Table ties a db struct to its write queries and to every query that reads it
type Table struct {
	Struct interface{} // db struct this is based off of, e.g. Lead{}

	PrimaryKeyField  string // column name of the primary key e.g. lead_id
	PrimaryQueryName string // name of the query that fetches by the primary key e.g. LeadsGetByID

	// all write queries must end with `RETURNING *` so the row can be scanned back into the struct
	InsertQuery string
	UpdateQuery string
	DeleteQuery string

	Queries []*Query

	tableName  string
	structType reflect.Type
	columns    map[string]struct{}
}

// Query is a named select and the cache behaviour attached to it
type Query struct {
	Name  string
	Query string // named sql e.g. `select * from leads where lead_id=:lead_id`

	/*
		CacheKey lists the fields the cache key is built from, e.g. `lead_id=%v` or `lead_id=%v|status=%v`.
		It's appended to `service:{serviceName}|{tableName}|{queryName}` so it only needs the dynamic part.
		Leave it empty for queries without parameters (e.g. fetching every row).
	*/
	CacheKey string

	// struct caches a single row, list caches the whole result slice
	CacheDataStructure CacheDataStructure

	CacheTTL int // time to live in seconds; 0 = Config.DefaultTTL

	InsertAction CacheAction // action to take on this key when a row is inserted into the table
	UpdateAction CacheAction // action to take on this key when a row in the table is updated
	SelectAction CacheAction // action to take on this key when the query is selected (most likely CacheSet)

	table                *Table
	cacheKeyFields       []string
	fullCacheKey         string
	cacheListMetadataKey string
	queryLimitOffset     string
}

// getKeyName turns the query's abstract key into the concrete key e.g. `service:leads|Lead|LeadsGetByID|lead_id=42`
func (q *Query) getKeyName(objMap map[string]interface{}) string {
	if len(q.cacheKeyFields) == 0 {
		return q.fullCacheKey
	}

	args := make([]interface{}, 0, len(q.cacheKeyFields))
	for _, field := range q.cacheKeyFields {
		args = append(args, objMap[field])
	}

	return q.fullCacheKey + "|" + fmt.Sprintf(q.CacheKey, args...)
}

// getKeyNameSelectOpts is getKeyName with the page appended when the select is limited
func (q *Query) getKeyNameSelectOpts(objMap map[string]interface{}, opts *SelectOptions) string {
	keyName := q.getKeyName(objMap)
	if opts == nil || opts.Limit <= 0 {
		return keyName
	}
	return fmt.Sprintf("%s|limit=%d|offset=%d", keyName, opts.Limit, opts.Offset)
}

func (q *Query) isList() bool {
	return q.CacheDataStructure == CacheDataStructureList
}

// writeAction is the action this query takes when a row of its table is written
func (q *Query) writeAction(action actionTypes) CacheAction {
	switch action {
	case actionInsert:
		return q.InsertAction
	case actionUpdate:
		return q.UpdateAction
	case actionDelete:
		if q.SelectAction == CacheNoAction {
			return CacheNoAction
		}
		return CacheDel
	}
	return CacheNoAction
}

// SelectOptions pages a SelectAll. A Limit <= 0 returns every row.
type SelectOptions struct {
	Limit  int
	Offset int
}

// InsertInterface is what a query runs against: the db connection or a transaction
type InsertInterface interface {
	sqlx.ExtContext
}

func hasReturning(query string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(query)), "returning *")
}
