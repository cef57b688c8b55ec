package storage

import (
	"errors"
	"fmt"
	"reflect"
)

func getStructName(myvar interface{}) string {
	if t := reflect.TypeOf(myvar); t.Kind() == reflect.Ptr {
		return t.Elem().Name()
	} else {
		return t.Name()
	}
}

// getValue
func getValue(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// structToMap returns the obj's fields keyed by column name (the db tag)
func (s *storage) structToMap(obj interface{}) (map[string]interface{}, error) {
	v := reflect.ValueOf(obj)
	if !v.IsValid() {
		return nil, errors.New("obj cannot be nil")
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, errors.New("obj cannot be a nil pointer")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("obj must be a struct; is %T", obj)
	}

	fields := s.mapper.FieldMap(v)
	objMap := make(map[string]interface{}, len(fields))
	for name, field := range fields {
		objMap[name] = field.Interface()
	}
	return objMap, nil
}

// tableFor returns the table configured for obj's struct type
func (s *storage) tableFor(obj interface{}) (*Table, error) {
	t := reflect.TypeOf(obj)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("obj must be a pointer to a struct; is %T", obj)
	}

	table, ok := s.structToTable[t.Elem()]
	if !ok {
		return nil, errors.New("no table config found for " + getStructName(obj))
	}
	return table, nil
}

// checkObj makes sure obj is a pointer to the query table's struct
func checkObj(obj interface{}, table *Table) error {
	t := reflect.TypeOf(obj)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem() != table.structType {
		return fmt.Errorf("obj must be *%s; is %T", table.structType.Name(), obj)
	}
	if reflect.ValueOf(obj).IsNil() {
		return errors.New("obj cannot be a nil pointer")
	}
	return nil
}

// checkDest makes sure dest is a pointer to a slice of the table's struct (or of pointers to it)
func checkDest(dest interface{}, table *Table) (reflect.Value, error) {
	value := reflect.ValueOf(dest)

	// need dest to be a pointer to a slice
	if value.Kind() != reflect.Ptr {
		return reflect.Value{}, errors.New("dest must be a pointer to a slice")
	}
	if value.IsNil() {
		return reflect.Value{}, errors.New("dest cannot be a nil pointer")
	}

	slice := getValue(value.Type())
	if slice.Kind() != reflect.Slice {
		return reflect.Value{}, fmt.Errorf("expected slice but got %s", slice.Kind())
	}

	if getValue(slice.Elem()) != table.structType {
		return reflect.Value{}, fmt.Errorf("dest must hold %s; holds %s", table.structType.Name(), slice.Elem())
	}
	return reflect.Indirect(value), nil
}

// scanToDest replaces dest's contents with rows (each a pointer to the table struct)
func scanToDest(rows []reflect.Value, direct reflect.Value) {
	isPointer := direct.Type().Elem().Kind() == reflect.Ptr

	out := reflect.MakeSlice(direct.Type(), 0, len(rows))
	for _, row := range rows {
		if isPointer {
			out = reflect.Append(out, row)
		} else {
			out = reflect.Append(out, row.Elem())
		}
	}
	direct.Set(out)
}

// snapshot copies the struct obj points at so later changes to obj don't leak into it
func snapshot(obj interface{}) interface{} {
	v := reflect.ValueOf(obj).Elem()
	cp := reflect.New(v.Type())
	cp.Elem().Set(v)
	return cp.Interface()
}
