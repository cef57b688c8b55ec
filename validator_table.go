package storage

import (
	"errors"
	"fmt"
	"reflect"
)

func (t *Table) validate(s *storage) error {
	if t.Struct == nil {
		return fmt.Errorf("Struct must be set")
	}

	t.parseTableName()

	if t.structType.Kind() != reflect.Struct {
		return fmt.Errorf("Table: %s Err: Struct must be a struct", t.tableName)
	}

	// you can have no primary key only if you have no write queries
	if t.PrimaryKeyField == "" && (t.InsertQuery != "" || t.UpdateQuery != "" || t.DeleteQuery != "") {
		return fmt.Errorf("Table: %s Err: PrimaryKeyField must be set", t.tableName)
	}

	if t.PrimaryQueryName == "" {
		return fmt.Errorf("Table: %s Err: PrimaryQueryName must be set", t.tableName)
	}

	if len(t.Queries) == 0 {
		return fmt.Errorf("Table: %s Err: Queries must be set", t.tableName)
	}

	err := t.validateWriteQueries()
	if err != nil {
		return fmt.Errorf("Table: %s Err: %w", t.tableName, err)
	}

	return t.parseColumns(s)
}

func (t *Table) validateWriteQueries() error {
	// write queries shouldn't be required e.g. a lookup table doesn't have an insert or update

	if t.InsertQuery != "" && !hasReturning(t.InsertQuery) {
		return errors.New("InsertQuery must end with `returning *`")
	}

	if t.UpdateQuery != "" && !hasReturning(t.UpdateQuery) {
		return errors.New("UpdateQuery must end with `returning *`")
	}

	if t.DeleteQuery != "" && !hasReturning(t.DeleteQuery) {
		return errors.New("DeleteQuery must end with `returning *`")
	}
	return nil
}

func (t *Table) parseTableName() {
	// optimization but this is used so many times that it's worth it given it uses reflection
	t.tableName = getStructName(t.Struct)
	t.structType = getValue(reflect.TypeOf(t.Struct))
}

// parseColumns records the struct's column names so cache keys can be checked against them
func (t *Table) parseColumns(s *storage) error {
	objMap, err := s.structToMap(reflect.New(t.structType).Interface())
	if err != nil {
		return fmt.Errorf("error getting struct map for %s: %w", t.tableName, err)
	}

	t.columns = make(map[string]struct{}, len(objMap))
	for column := range objMap {
		t.columns[column] = struct{}{}
	}

	if t.PrimaryKeyField != "" {
		if _, ok := t.columns[t.PrimaryKeyField]; !ok {
			return fmt.Errorf("Table: %s Err: PrimaryKeyField %s is not a column of the struct", t.tableName, t.PrimaryKeyField)
		}
	}
	return nil
}
