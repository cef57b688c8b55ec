package storage

import (
	"errors"
	"fmt"
)

func (s *storage) validate() error {
	if s.serviceName == "" {
		return errors.New("serviceName must be set")
	}

	if len(s.tables) == 0 {
		return errors.New("at least one table must be configured")
	}

	for _, t := range s.tables {
		if t == nil {
			return errors.New("table cannot be nil")
		}

		err := t.validate(s)
		if err != nil {
			return err
		}

		if _, ok := s.structToTable[t.structType]; ok {
			return fmt.Errorf("Table: %s Err: configured more than once", t.tableName)
		}
		s.structToTable[t.structType] = t

		err = s.parseQueries(t)
		if err != nil {
			return err
		}
	}

	return s.validatePrimaryQueries()
}

// parseQueries validates the table's queries and registers them by name
func (s *storage) parseQueries(t *Table) error {
	for _, q := range t.Queries {
		if q == nil {
			return fmt.Errorf("Table: %s Err: query cannot be nil", t.tableName)
		}

		q.table = t

		err := q.validate()
		if err != nil {
			return fmt.Errorf("Table: %s Query: %s Err: %w", t.tableName, q.Name, err)
		}

		if _, ok := s.queries[q.Name]; ok {
			return fmt.Errorf("Table: %s Query: %s Err: query names must be unique", t.tableName, q.Name)
		}

		q.parseFullCacheKey(s.serviceName, t.tableName)
		q.parseCacheListKey()
		q.parseLimitOffsetQuery()

		s.queries[q.Name] = q
	}
	return nil
}

// validatePrimaryQueries makes sure each table's PrimaryQueryName is one of its own single-row queries
func (s *storage) validatePrimaryQueries() error {
	for _, t := range s.tables {
		q, ok := s.queries[t.PrimaryQueryName]
		if !ok || q.table != t {
			return fmt.Errorf("Table: %s Err: PrimaryQueryName %s must be one of the table's queries", t.tableName, t.PrimaryQueryName)
		}

		if q.isList() {
			return fmt.Errorf("Table: %s Err: PrimaryQueryName %s cannot be a list", t.tableName, t.PrimaryQueryName)
		}
	}
	return nil
}
