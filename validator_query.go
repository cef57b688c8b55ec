package storage

import (
	"errors"
	"fmt"
	"strings"
)

func (q *Query) validate() error {
	err := q.validateName()
	if err != nil {
		return err
	}

	if strings.TrimSpace(q.Query) == "" {
		return errors.New("Query is required")
	}

	err = q.validateAndParseCacheFields()
	if err != nil {
		return err
	}

	return q.validateAndParseCacheDataStructure()
}

func (q *Query) validateName() error {
	if q.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// validateAndParseCacheFields takes in a key e.g. `lead_id=%v|status=%v` and places lead_id & status into the cacheKeyFields
func (q *Query) validateAndParseCacheFields() error {
	q.cacheKeyFields = []string{}

	if q.CacheKey == "" {
		return nil
	}

	if strings.HasPrefix(q.CacheKey, "service:") {
		return errors.New("CacheKey must only hold the fields; the `service:` prefix is added for you")
	}

	for _, key := range strings.Split(q.CacheKey, "|") {
		parts := strings.Split(key, "=")
		if len(parts) != 2 || parts[0] == "" || parts[1] != `%v` {
			return fmt.Errorf("invalid CacheKey part %q; must be in the format `field=%%v|field=%%v`", key)
		}

		if _, ok := q.table.columns[parts[0]]; !ok {
			return fmt.Errorf("CacheKey field %s is not a column of %s", parts[0], q.table.tableName)
		}

		q.cacheKeyFields = append(q.cacheKeyFields, parts[0])
	}

	return nil
}

// validateAndParseCacheDataStructure defaults the data structure and checks the actions make sense for it
func (q *Query) validateAndParseCacheDataStructure() error {
	if q.CacheDataStructure == CacheDataStructureDefault {
		q.CacheDataStructure = CacheDataStructureStruct
	}

	actions := map[string]*CacheAction{
		"InsertAction": &q.InsertAction,
		"UpdateAction": &q.UpdateAction,
		"SelectAction": &q.SelectAction,
	}

	for name, action := range actions {
		// an unset action means nothing happens
		if *action == CacheDefault {
			*action = CacheNoAction
		}

		// a single row can't tell which other rows belong in a list so lists are only ever flushed
		if q.isList() && name != "SelectAction" && *action == CacheSet {
			return fmt.Errorf("%s cannot be CacheSet on a list; use CacheDel", name)
		}
	}

	// a struct query is looked up by its key so the key has to identify the row
	if !q.isList() && q.SelectAction != CacheNoAction && len(q.cacheKeyFields) == 0 {
		return errors.New("CacheKey must be set for cached single-row queries")
	}

	return nil
}

func (q *Query) parseFullCacheKey(service string, tableName string) {
	// this is an optimization so we don't need to sprintf extra keys and do the lookup
	// small but this is used so many times that it's worth it
	q.fullCacheKey = fmt.Sprintf("service:%s|%s|%s", service, tableName, q.Name)
}

func (q *Query) parseCacheListKey() {
	if !q.isList() {
		return
	}

	q.cacheListMetadataKey = q.fullCacheKey + cacheKeyListMetadataModifier
}

func (q *Query) parseLimitOffsetQuery() {
	q.queryLimitOffset = strings.TrimRight(strings.TrimSpace(q.Query), ";") + " LIMIT :limit OFFSET :offset"
}
