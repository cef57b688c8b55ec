package storage

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-redis/redis/v8"
)

func (s *storage) query(queryName string) (*Query, error) {
	q, ok := s.queries[queryName]
	if !ok {
		return nil, errors.New("config query not found; have you configured storage properly? query: " + queryName)
	}
	return q, nil
}

func (s *storage) selectOne(ctx context.Context, obj interface{}, queryName string, conn InsertInterface, useCache bool) error {
	q, err := s.query(queryName)
	if err != nil {
		return err
	}

	if err := checkObj(obj, q.table); err != nil {
		return err
	}

	objMap, err := s.structToMap(obj)
	if err != nil {
		return err
	}

	useCache = useCache && !q.isList() && q.SelectAction != CacheNoAction

	// get the cache key namme
	keyName := q.getKeyName(objMap)

	if useCache {
		// the obj should be of the value that the cache is expecting so we can then just unmarshal into that
		err = s.cache.get(ctx, keyName, obj)
		if err == nil {
			// we found the value in the cache; object should already be set in the obj
			s.log.debug("found %s in cache", keyName)
			return nil
		}

		// a broken cache shouldn't break reads; fall back to the db
		if err != redis.Nil {
			s.log.debug("cache get error in select %s: %v", keyName, err)
		}
	}

	// the value wasn't found in the cache; let's get from the database and then set the cache
	res, err := s.db.query(ctx, conn, q.Query, objMap, q.table.structType)
	if err != nil {
		return fmt.Errorf("select %s: %w", q.Name, err)
	}

	if len(res) == 0 {
		return ErrNotFound
	}

	reflect.ValueOf(obj).Elem().Set(res[0].Elem())

	if useCache {
		if err := s.cacheActionSelect(ctx, q, keyName, obj); err != nil {
			s.log.debug("cache action in select %s: %v", keyName, err)
		}
	}
	return nil
}

func (s *storage) selectAll(ctx context.Context, obj interface{}, dest interface{}, queryName string, opts *SelectOptions, conn InsertInterface, useCache bool) error {
	if opts == nil {
		opts = &SelectOptions{}
	}
	if err := opts.validate(); err != nil {
		return err
	}

	q, err := s.query(queryName)
	if err != nil {
		return err
	}

	if err := checkObj(obj, q.table); err != nil {
		return err
	}

	direct, err := checkDest(dest, q.table)
	if err != nil {
		return err
	}

	objMap, err := s.structToMap(obj)
	if err != nil {
		return err
	}

	useCache = useCache && q.isList() && q.SelectAction != CacheNoAction

	keyName := q.getKeyNameSelectOpts(objMap, opts)

	if useCache {
		err = s.cache.get(ctx, keyName, dest)
		if err == nil {
			s.log.debug("found list %s in cache", keyName)
			return nil
		}
		if err != redis.Nil {
			s.log.debug("cache get error in selectAll %s: %v", keyName, err)
		}
	}

	query := q.Query
	if opts.Limit > 0 {
		query = q.queryLimitOffset
		objMap["limit"] = opts.Limit
		objMap["offset"] = opts.Offset
	}

	objs, err := s.db.query(ctx, conn, query, objMap, q.table.structType)
	if err != nil {
		return fmt.Errorf("select all %s: %w", q.Name, err)
	}

	// put the res into the dest (type of []interface to dest's type)
	scanToDest(objs, direct)

	if useCache {
		if err := s.cacheActionSelect(ctx, q, keyName, dest); err != nil {
			s.log.debug("cache action in selectAll %s: %v", keyName, err)
		}
	}
	return nil
}

// write runs one of the table's write queries and scans the single returned row back into obj
func (s *storage) write(ctx context.Context, obj interface{}, conn InsertInterface, action actionTypes) (*Table, error) {
	// get the struct's table config
	table, err := s.tableFor(obj)
	if err != nil {
		return nil, err
	}

	var query string
	switch action {
	case actionInsert:
		query = table.InsertQuery
	case actionUpdate:
		query = table.UpdateQuery
	case actionDelete:
		query = table.DeleteQuery
	default:
		return nil, errors.New("unknown write action")
	}
	if query == "" {
		return nil, fmt.Errorf("table %s has no query for this write", table.tableName)
	}

	objMap, err := s.structToMap(obj)
	if err != nil {
		return nil, err
	}

	res, err := s.db.query(ctx, conn, query, objMap, table.structType)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", table.tableName, err)
	}

	switch {
	case len(res) == 0 && action != actionInsert:
		return nil, ErrNotFound
	case len(res) != 1:
		return nil, fmt.Errorf("write %s did not return a single row; returned: %d", table.tableName, len(res))
	}

	// the returned row has everything the db set, such as the primary key & timestamps
	reflect.ValueOf(obj).Elem().Set(res[0].Elem())
	return table, nil
}

func (s *storage) insert(ctx context.Context, obj interface{}, conn InsertInterface) (*Table, error) {
	return s.write(ctx, obj, conn, actionInsert)
}

func (s *storage) update(ctx context.Context, obj interface{}, conn InsertInterface) (*Table, error) {
	return s.write(ctx, obj, conn, actionUpdate)
}

// delete removes the row; obj ends up holding the deleted row so its keys can be cleared
func (s *storage) delete(ctx context.Context, obj interface{}, conn InsertInterface) (*Table, error) {
	return s.write(ctx, obj, conn, actionDelete)
}
