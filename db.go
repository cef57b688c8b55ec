package storage

import (
	"context"
	"reflect"

	"github.com/jmoiron/sqlx"
)

type db struct {
	writeConnection *sqlx.DB
	readConnection  *sqlx.DB
}

func newDB(conf *Config) *db {
	return &db{
		writeConnection: conf.WriteOnlyDbConn,
		readConnection:  conf.ReadOnlyDbConn,
	}
}

// query runs a named query and scans every row into a new *structType
func (db *db) query(ctx context.Context, conn InsertInterface, query string, objMap map[string]interface{}, structType reflect.Type) ([]reflect.Value, error) {
	// let's now execute the query
	rows, err := sqlx.NamedQueryContext(ctx, conn, query, objMap)
	if err != nil {
		return nil, classify(err)
	}
	// Let's make sure we don't have a memory leak!! :)
	defer rows.Close()

	objs := []reflect.Value{}

	for rows.Next() {
		row := reflect.New(structType)
		err = rows.StructScan(row.Interface())
		if err != nil {
			return nil, err
		}
		objs = append(objs, row)
	}

	return objs, classify(rows.Err())
}

func (db *db) writeConn() *sqlx.DB {
	return db.writeConnection
}

func (db *db) readConn() *sqlx.DB {
	return db.readConnection
}
