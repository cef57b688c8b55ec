package storage

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/reflectx"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Interface defines our API for this package
type Storage interface {
	// TXBegin starts a transaction; cache actions are only taken once it's committed with TXEnd
	TXBegin(ctx context.Context) (TxInterface, error)

	// Insert, Update and Delete run the table's write query and scan the returned row back into obj
	Insert(ctx context.Context, obj interface{}) error
	Update(ctx context.Context, obj interface{}) error
	Delete(ctx context.Context, obj interface{}) error

	// Select is for fetching one row where obj holds the query's parameters and will be the result
	Select(ctx context.Context, obj interface{}, queryName string) error

	/*
		SelectAll fills out dest (a pointer to a slice of the table's struct) with the results
		Note: obj only carries the query's parameters. You could take the query and build the slice for the caller but
		then you'd have to type-cast and check the objs being returned. Much easier to do it this way from a developer's standpoint
	*/
	SelectAll(ctx context.Context, obj interface{}, dest interface{}, queryName string, opts *SelectOptions) error

	// Ping checks the database connections and the cache
	Ping(ctx context.Context) error
}

// storage is the private implements the API
type storage struct {
	db     *db
	cache  *cache
	mapper *reflectx.Mapper
	log    *logger

	serviceName string
	defaultTTL  int

	tables []*Table

	// structToTable maps the struct's type to its table
	structToTable map[reflect.Type]*Table

	// queries maps query.Name -> query
	queries map[string]*Query
}

type Config struct {
	ReadOnlyDbConn  *sqlx.DB
	WriteOnlyDbConn *sqlx.DB
	Redis           *redis.Client // nil disables the cache
	Tables          []*Table

	ServiceName string // used as the cache key namespace e.g. `service:leads|...`
	DefaultTTL  int    // seconds; used by queries without a CacheTTL

	DoNotUseCache bool // make sure defaults to bool
	Debugger      bool // logs every cache & query action at debug level

	Logger logrus.FieldLogger // nil logs to the logrus standard logger
}

const defaultCacheTTL = 60 * 10 // 10 minutes

// New returns storage which implements the interface
func New(conf *Config) (Storage, error) {
	if conf == nil {
		return nil, errors.New("config is required")
	}
	if conf.WriteOnlyDbConn == nil {
		return nil, errors.New("WriteOnlyDbConn is required")
	}
	if conf.ReadOnlyDbConn == nil {
		conf.ReadOnlyDbConn = conf.WriteOnlyDbConn
	}

	// map columns with the db tag
	mapper := reflectx.NewMapperFunc("db", strings.ToLower)
	conf.ReadOnlyDbConn.Mapper = mapper
	conf.WriteOnlyDbConn.Mapper = mapper

	log := newLogger(conf.Logger, conf.ServiceName, conf.Debugger)

	s := &storage{
		db:            newDB(conf),
		cache:         newCache(conf.Redis, conf.DoNotUseCache, log),
		mapper:        mapper,
		log:           log,
		serviceName:   conf.ServiceName,
		defaultTTL:    conf.DefaultTTL,
		tables:        conf.Tables,
		structToTable: make(map[reflect.Type]*Table),
		queries:       make(map[string]*Query),
	}
	if s.defaultTTL <= 0 {
		s.defaultTTL = defaultCacheTTL
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *storage) TXBegin(ctx context.Context) (TxInterface, error) {
	tx, err := s.db.writeConn().BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &Tx{
		s:       s,
		tx:      tx,
		actions: []txAction{},
	}, nil
}

func (s *storage) Insert(ctx context.Context, obj interface{}) error {
	table, err := s.insert(ctx, obj, s.db.writeConn())
	if err != nil {
		return err
	}
	s.afterWrite(ctx, table, obj, actionInsert)
	return nil
}

func (s *storage) Update(ctx context.Context, obj interface{}) error {
	table, err := s.update(ctx, obj, s.db.writeConn())
	if err != nil {
		return err
	}
	s.afterWrite(ctx, table, obj, actionUpdate)
	return nil
}

func (s *storage) Delete(ctx context.Context, obj interface{}) error {
	table, err := s.delete(ctx, obj, s.db.writeConn())
	if err != nil {
		return err
	}
	s.afterWrite(ctx, table, obj, actionDelete)
	return nil
}

func (s *storage) Select(ctx context.Context, obj interface{}, queryName string) error {
	return s.selectOne(ctx, obj, queryName, s.db.readConn(), true)
}

func (s *storage) SelectAll(ctx context.Context, obj interface{}, dest interface{}, queryName string, opts *SelectOptions) error {
	return s.selectAll(ctx, obj, dest, queryName, opts, s.db.readConn(), true)
}

func (s *storage) Ping(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.db.writeConn().PingContext(ctx)
	})
	if s.db.readConn() != s.db.writeConn() {
		g.Go(func() error {
			return s.db.readConn().PingContext(ctx)
		})
	}
	g.Go(func() error {
		return s.cache.ping(ctx)
	})

	return g.Wait()
}

// afterWrite keeps the cache in sync with a committed write. The write already happened so a cache error is only logged.
func (s *storage) afterWrite(ctx context.Context, table *Table, obj interface{}, action actionTypes) {
	if err := s.actionNonSelect(ctx, table, obj, action); err != nil {
		s.log.warn(err, "cache action after write on %s failed", table.tableName)
	}
}
