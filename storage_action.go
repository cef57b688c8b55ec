package storage

import (
	"context"
	"errors"
)

/*
	actionNonSelect takes the cache actions for a row that has been inserted, updated, or deleted. This will cause:
	1. single-row keys (e.g. a lead by lead_id) to be set or deleted from the row that was written
	2. every cached result of a list query to be flushed; a write can move a row in or out of any list so
		only the list's metadata knows which keys are stale

	This is very different than cacheActionSelect which caches what a query just read
*/
func (s *storage) actionNonSelect(ctx context.Context, table *Table, obj interface{}, action actionTypes) error {
	if action == actionSelect {
		return errors.New("cannot do actionSelect in actionNonSelect...")
	}

	objMap, err := s.structToMap(obj)
	if err != nil {
		return err
	}

	var errs []error
	for _, q := range table.Queries {
		actionToTake := q.writeAction(action)

		if q.isList() {
			if actionToTake != CacheNoAction {
				errs = append(errs, s.cache.flushList(ctx, q))
			}
			continue
		}

		switch actionToTake {
		case CacheNoAction:
			// don't do anything;

		case CacheSet:
			errs = append(errs, s.cache.set(ctx, q.getKeyName(objMap), obj, s.ttl(q)))

		case CacheDel:
			errs = append(errs, s.cache.del(ctx, q.getKeyName(objMap)))

		default:
			errs = append(errs, errors.New("unknown cache action on "+q.Name))
		}
	}

	// do not stop at the first error; we want to update all the queries
	return errors.Join(errs...)
}

func (s *storage) cacheActionSelect(ctx context.Context, q *Query, keyName string, value interface{}) error {
	switch q.SelectAction {
	case CacheNoAction:
		return nil

	case CacheSet:
		if q.isList() {
			return s.cache.setList(ctx, q, keyName, value, s.ttl(q))
		}
		return s.cache.set(ctx, keyName, value, s.ttl(q))

	case CacheDel:
		return s.cache.del(ctx, keyName)
	}
	return errors.New("unknown select action on " + q.Name)
}

func (s *storage) ttl(q *Query) int {
	if q.CacheTTL > 0 {
		return q.CacheTTL
	}
	return s.defaultTTL
}
