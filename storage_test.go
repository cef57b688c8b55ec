package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Widget struct {
	WidgetID int64  `db:"widget_id" json:"widget_id"`
	Name     string `db:"name" json:"name"`
	Color    string `db:"color" json:"color"`
}

const (
	widgetsGetByID    = "WidgetsGetByID"
	widgetsGetByColor = "WidgetsGetByColor"
	widgetsGetAll     = "WidgetsGetAll"

	widgetsByIDSQL    = "select * from widgets where widget_id = :widget_id"
	widgetsByColorSQL = "select * from widgets where color = :color"
	widgetsAllSQL     = "select * from widgets"
	widgetsInsertSQL  = "insert into widgets (name, color) values (:name, :color) returning *"
	widgetsUpdateSQL  = "update widgets set name = :name, color = :color where widget_id = :widget_id returning *"
	widgetsDeleteSQL  = "delete from widgets where widget_id = :widget_id returning *"
)

var widgetColumns = []string{"widget_id", "name", "color"}

func widgetTable() *Table {
	return &Table{
		Struct:           Widget{},
		PrimaryKeyField:  "widget_id",
		PrimaryQueryName: widgetsGetByID,
		InsertQuery:      widgetsInsertSQL,
		UpdateQuery:      widgetsUpdateSQL,
		DeleteQuery:      widgetsDeleteSQL,
		Queries: []*Query{
			{
				Name:         widgetsGetByID,
				Query:        widgetsByIDSQL,
				CacheKey:     "widget_id=%v",
				InsertAction: CacheSet,
				UpdateAction: CacheSet,
				SelectAction: CacheSet,
			},
			{
				Name:               widgetsGetByColor,
				Query:              widgetsByColorSQL,
				CacheKey:           "color=%v",
				CacheDataStructure: CacheDataStructureList,
				InsertAction:       CacheDel,
				UpdateAction:       CacheDel,
				SelectAction:       CacheSet,
			},
			{
				Name:               widgetsGetAll,
				Query:              widgetsAllSQL,
				CacheDataStructure: CacheDataStructureList,
			},
		},
	}
}

var namedParam = regexp.MustCompile(`:\w+`)

// compiled is query as sqlx sends it to postgres, escaped for sqlmock's regexp matcher
func compiled(query string) string {
	n := 0
	bound := namedParam.ReplaceAllStringFunc(query, func(string) string {
		n++
		return fmt.Sprintf("$%d", n)
	})
	return regexp.QuoteMeta(bound)
}

type testEnv struct {
	s    *storage
	mock sqlmock.Sqlmock
	mr   *miniredis.Miniredis
}

func newTestEnv(t *testing.T, withCache bool, opts ...func(*Config)) *testEnv {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	conf := &Config{
		WriteOnlyDbConn: sqlx.NewDb(mockDB, "postgres"),
		Tables:          []*Table{widgetTable()},
		ServiceName:     "test",
		DoNotUseCache:   !withCache,
	}
	for _, opt := range opts {
		opt(conf)
	}

	env := &testEnv{mock: mock}
	if withCache {
		env.mr = miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: env.mr.Addr()})
		t.Cleanup(func() { client.Close() })
		conf.Redis = client
	}

	s, err := New(conf)
	require.NoError(t, err)
	env.s = s.(*storage)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return env
}

func (e *testEnv) expectByID(id int64, name, color string) {
	e.mock.ExpectQuery(compiled(widgetsByIDSQL)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow(id, name, color))
}

func TestNew_Validation(t *testing.T) {
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	conn := sqlx.NewDb(mockDB, "postgres")

	tests := []struct {
		name   string
		modify func(c *Config)
		want   string
	}{
		{
			name:   "missing write connection",
			modify: func(c *Config) { c.WriteOnlyDbConn = nil },
			want:   "WriteOnlyDbConn",
		},
		{
			name:   "missing service name",
			modify: func(c *Config) { c.ServiceName = "" },
			want:   "serviceName",
		},
		{
			name:   "no tables",
			modify: func(c *Config) { c.Tables = nil },
			want:   "at least one table",
		},
		{
			name:   "table configured twice",
			modify: func(c *Config) { c.Tables = append(c.Tables, widgetTable()) },
			want:   "more than once",
		},
		{
			name:   "write query without returning",
			modify: func(c *Config) { c.Tables[0].InsertQuery = "insert into widgets (name) values (:name)" },
			want:   "returning *",
		},
		{
			name:   "primary key not a column",
			modify: func(c *Config) { c.Tables[0].PrimaryKeyField = "id" },
			want:   "PrimaryKeyField id",
		},
		{
			name:   "cache key field not a column",
			modify: func(c *Config) { c.Tables[0].Queries[0].CacheKey = "uuid=%v" },
			want:   "not a column",
		},
		{
			name:   "malformed cache key",
			modify: func(c *Config) { c.Tables[0].Queries[0].CacheKey = "widget_id" },
			want:   "invalid CacheKey",
		},
		{
			name:   "cache key with service prefix",
			modify: func(c *Config) { c.Tables[0].Queries[0].CacheKey = "service:x|widget_id=%v" },
			want:   "service:",
		},
		{
			name:   "cached row without key",
			modify: func(c *Config) { c.Tables[0].Queries[0].CacheKey = "" },
			want:   "CacheKey must be set",
		},
		{
			name:   "list set on insert",
			modify: func(c *Config) { c.Tables[0].Queries[1].InsertAction = CacheSet },
			want:   "cannot be CacheSet on a list",
		},
		{
			name:   "duplicate query name",
			modify: func(c *Config) { c.Tables[0].Queries[2].Name = widgetsGetByColor },
			want:   "unique",
		},
		{
			name:   "primary query is a list",
			modify: func(c *Config) { c.Tables[0].PrimaryQueryName = widgetsGetAll },
			want:   "cannot be a list",
		},
		{
			name:   "unknown primary query",
			modify: func(c *Config) { c.Tables[0].PrimaryQueryName = "Nope" },
			want:   "PrimaryQueryName Nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &Config{
				WriteOnlyDbConn: conn,
				Tables:          []*Table{widgetTable()},
				ServiceName:     "test",
				DoNotUseCache:   true,
			}
			tt.modify(conf)

			_, err := New(conf)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNew_DefaultsQueryConfig(t *testing.T) {
	env := newTestEnv(t, false)

	all := env.s.queries[widgetsGetAll]
	assert.Equal(t, CacheNoAction, all.SelectAction)
	assert.Equal(t, CacheNoAction, all.InsertAction)
	assert.Equal(t, "service:test|Widget|WidgetsGetAll", all.fullCacheKey)
	assert.Equal(t, "service:test|Widget|WidgetsGetAll|_keys", all.cacheListMetadataKey)
	assert.Equal(t, widgetsAllSQL+" LIMIT :limit OFFSET :offset", all.queryLimitOffset)

	byID := env.s.queries[widgetsGetByID]
	assert.Equal(t, CacheDataStructureStruct, byID.CacheDataStructure)
	assert.Equal(t, []string{"widget_id"}, byID.cacheKeyFields)
	assert.Equal(t, defaultCacheTTL, env.s.ttl(byID))
}

func TestSelect_ReadsThroughCache(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	// only one query is expected; the second select must come from redis
	env.expectByID(1, "bolt", "red")

	w := &Widget{WidgetID: 1}
	require.NoError(t, env.s.Select(ctx, w, widgetsGetByID))
	assert.Equal(t, Widget{WidgetID: 1, Name: "bolt", Color: "red"}, *w)

	key := "service:test|Widget|WidgetsGetByID|widget_id=1"
	assert.True(t, env.mr.Exists(key))
	assert.Greater(t, env.mr.TTL(key).Seconds(), 0.0)

	cached := &Widget{WidgetID: 1}
	require.NoError(t, env.s.Select(ctx, cached, widgetsGetByID))
	assert.Equal(t, *w, *cached)
}

func TestSelect_NotFound(t *testing.T) {
	env := newTestEnv(t, true)

	env.mock.ExpectQuery(compiled(widgetsByIDSQL)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(widgetColumns))

	err := env.s.Select(context.Background(), &Widget{WidgetID: 9}, widgetsGetByID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, env.mr.Exists("service:test|Widget|WidgetsGetByID|widget_id=9"))
}

func TestSelect_WrongObj(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	err := env.s.Select(ctx, Widget{}, widgetsGetByID)
	assert.Error(t, err)

	err = env.s.Select(ctx, &struct{ Name string }{}, widgetsGetByID)
	assert.Error(t, err)

	err = env.s.Select(ctx, &Widget{}, "Unknown")
	assert.ErrorContains(t, err, "query not found")
}

func TestSelectAll_CachesListAndFlushesOnWrite(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	env.mock.ExpectQuery(compiled(widgetsByColorSQL)).
		WithArgs("red").
		WillReturnRows(sqlmock.NewRows(widgetColumns).
			AddRow(int64(1), "bolt", "red").
			AddRow(int64(2), "nut", "red"))

	var widgets []Widget
	require.NoError(t, env.s.SelectAll(ctx, &Widget{Color: "red"}, &widgets, widgetsGetByColor, nil))
	require.Len(t, widgets, 2)
	assert.Equal(t, "nut", widgets[1].Name)

	listKey := "service:test|Widget|WidgetsGetByColor|color=red"
	metaKey := "service:test|Widget|WidgetsGetByColor|_keys"
	assert.True(t, env.mr.Exists(listKey))
	members, err := env.mr.Members(metaKey)
	require.NoError(t, err)
	assert.Equal(t, []string{listKey}, members)

	// served from redis; pointer slices work too
	var cached []*Widget
	require.NoError(t, env.s.SelectAll(ctx, &Widget{Color: "red"}, &cached, widgetsGetByColor, nil))
	require.Len(t, cached, 2)
	assert.Equal(t, "bolt", cached[0].Name)

	env.mock.ExpectQuery(compiled(widgetsInsertSQL)).
		WithArgs("washer", "red").
		WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow(int64(3), "washer", "red"))

	w := &Widget{Name: "washer", Color: "red"}
	require.NoError(t, env.s.Insert(ctx, w))
	assert.Equal(t, int64(3), w.WidgetID)

	assert.False(t, env.mr.Exists(listKey), "list must be flushed by the insert")
	assert.False(t, env.mr.Exists(metaKey))
	assert.True(t, env.mr.Exists("service:test|Widget|WidgetsGetByID|widget_id=3"), "row key set on insert")
}

func TestSelectAll_Paged(t *testing.T) {
	env := newTestEnv(t, true)

	env.mock.ExpectQuery(compiled(widgetsByColorSQL+" LIMIT :limit OFFSET :offset")).
		WithArgs("blue", 2, 4).
		WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow(int64(5), "cog", "blue"))

	var widgets []Widget
	opts := &SelectOptions{Limit: 2, Offset: 4}
	require.NoError(t, env.s.SelectAll(context.Background(), &Widget{Color: "blue"}, &widgets, widgetsGetByColor, opts))
	require.Len(t, widgets, 1)

	assert.True(t, env.mr.Exists("service:test|Widget|WidgetsGetByColor|color=blue|limit=2|offset=4"))
}

func TestSelectAll_UncachedList(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		env.mock.ExpectQuery(compiled(widgetsAllSQL)).
			WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow(int64(1), "bolt", "red"))
	}

	for i := 0; i < 2; i++ {
		var widgets []Widget
		require.NoError(t, env.s.SelectAll(ctx, &Widget{}, &widgets, widgetsGetAll, nil))
		assert.Len(t, widgets, 1)
	}
	assert.Empty(t, env.mr.Keys())
}

func TestSelectAll_EmptyResult(t *testing.T) {
	env := newTestEnv(t, false)

	env.mock.ExpectQuery(compiled(widgetsAllSQL)).
		WillReturnRows(sqlmock.NewRows(widgetColumns))

	widgets := []Widget{{Name: "stale"}}
	require.NoError(t, env.s.SelectAll(context.Background(), &Widget{}, &widgets, widgetsGetAll, nil))
	assert.NotNil(t, widgets)
	assert.Empty(t, widgets)
}

func TestSelectAll_BadDest(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	var notSlice Widget
	assert.Error(t, env.s.SelectAll(ctx, &Widget{}, &notSlice, widgetsGetAll, nil))

	var wrongType []string
	assert.Error(t, env.s.SelectAll(ctx, &Widget{}, &wrongType, widgetsGetAll, nil))

	var widgets []Widget
	assert.Error(t, env.s.SelectAll(ctx, &Widget{}, widgets, widgetsGetAll, nil))
	assert.Error(t, env.s.SelectAll(ctx, &Widget{}, &widgets, widgetsGetAll, &SelectOptions{Offset: 3}))
}

func TestSelectOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    SelectOptions
		wantErr bool
	}{
		{"zero", SelectOptions{}, false},
		{"limit only", SelectOptions{Limit: 10}, false},
		{"limit and offset", SelectOptions{Limit: 10, Offset: 20}, false},
		{"negative offset", SelectOptions{Limit: 10, Offset: -1}, true},
		{"offset without limit", SelectOptions{Offset: 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdate_RefreshesRowKey(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	env.expectByID(1, "bolt", "red")
	require.NoError(t, env.s.Select(ctx, &Widget{WidgetID: 1}, widgetsGetByID))

	env.mock.ExpectQuery(compiled(widgetsUpdateSQL)).
		WithArgs("bolt", "green", int64(1)).
		WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow(int64(1), "bolt", "green"))
	require.NoError(t, env.s.Update(ctx, &Widget{WidgetID: 1, Name: "bolt", Color: "green"}))

	// no query expected; the update wrote the new row to the cache
	w := &Widget{WidgetID: 1}
	require.NoError(t, env.s.Select(ctx, w, widgetsGetByID))
	assert.Equal(t, "green", w.Color)
}

func TestUpdate_NotFound(t *testing.T) {
	env := newTestEnv(t, true)

	env.mock.ExpectQuery(compiled(widgetsUpdateSQL)).
		WillReturnRows(sqlmock.NewRows(widgetColumns))

	err := env.s.Update(context.Background(), &Widget{WidgetID: 7, Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, env.mr.Exists("service:test|Widget|WidgetsGetByID|widget_id=7"))
}

func TestDelete_DropsRowKey(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	env.expectByID(1, "bolt", "red")
	require.NoError(t, env.s.Select(ctx, &Widget{WidgetID: 1}, widgetsGetByID))
	key := "service:test|Widget|WidgetsGetByID|widget_id=1"
	require.True(t, env.mr.Exists(key))

	env.mock.ExpectQuery(compiled(widgetsDeleteSQL)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow(int64(1), "bolt", "red"))

	w := &Widget{WidgetID: 1}
	require.NoError(t, env.s.Delete(ctx, w))
	assert.Equal(t, "bolt", w.Name, "obj holds the deleted row")
	assert.False(t, env.mr.Exists(key))
}

func TestInsert_ClassifiesDriverErrors(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	env.mock.ExpectQuery(compiled(widgetsInsertSQL)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})
	err := env.s.Insert(ctx, &Widget{Name: "bolt"})
	assert.ErrorIs(t, err, ErrDuplicate)

	env.mock.ExpectQuery(compiled(widgetsInsertSQL)).
		WillReturnError(&pq.Error{Code: "23514", Message: "violates check constraint"})
	err = env.s.Insert(ctx, &Widget{Name: "bolt"})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestInsert_CacheFailureDoesNotFailWrite(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	env := newTestEnv(t, true, func(c *Config) { c.Logger = log })
	env.mr.Close()

	env.mock.ExpectQuery(compiled(widgetsInsertSQL)).
		WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow(int64(4), "pin", "red"))

	w := &Widget{Name: "pin", Color: "red"}
	require.NoError(t, env.s.Insert(context.Background(), w))
	assert.Equal(t, int64(4), w.WidgetID)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "storage", entry.Data["component"])
	assert.NotNil(t, entry.Data[logrus.ErrorKey])
}

func TestDebugger_LogsToConfiguredLogger(t *testing.T) {
	ctx := context.Background()

	debugLog, debugHook := logtest.NewNullLogger()
	debugLog.SetLevel(logrus.DebugLevel)
	traced := newTestEnv(t, true, func(c *Config) {
		c.Logger = debugLog
		c.Debugger = true
	})

	// a second storage in the same process keeps its own logger and setting
	quietLog, quietHook := logtest.NewNullLogger()
	quietLog.SetLevel(logrus.DebugLevel)
	quiet := newTestEnv(t, true, func(c *Config) {
		c.Logger = quietLog
		c.ServiceName = "quiet"
	})

	traced.expectByID(1, "bolt", "red")
	require.NoError(t, traced.s.Select(ctx, &Widget{WidgetID: 1}, widgetsGetByID))
	require.NoError(t, traced.s.Select(ctx, &Widget{WidgetID: 1}, widgetsGetByID))

	quiet.expectByID(1, "bolt", "red")
	require.NoError(t, quiet.s.Select(ctx, &Widget{WidgetID: 1}, widgetsGetByID))

	entries := debugHook.AllEntries()
	require.NotEmpty(t, entries)
	for _, e := range entries {
		assert.Equal(t, logrus.DebugLevel, e.Level)
		assert.Equal(t, "storage", e.Data["component"])
		assert.Equal(t, "test", e.Data["service"])
	}
	assert.Contains(t, debugHook.LastEntry().Message, "found service:test|Widget|WidgetsGetByID|widget_id=1 in cache")

	assert.Empty(t, quietHook.AllEntries())
}

func TestTx_CacheActionsWaitForCommit(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	key := "service:test|Widget|WidgetsGetByID|widget_id=1"

	env.expectByID(1, "bolt", "red")
	require.NoError(t, env.s.Select(ctx, &Widget{WidgetID: 1}, widgetsGetByID))

	env.mock.ExpectBegin()
	// reads inside a transaction skip the cache
	env.expectByID(1, "bolt", "red")
	env.mock.ExpectQuery(compiled(widgetsUpdateSQL)).
		WithArgs("bolt", "blue", int64(1)).
		WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow(int64(1), "bolt", "blue"))
	env.mock.ExpectCommit()

	tx, err := env.s.TXBegin(ctx)
	require.NoError(t, err)

	w := &Widget{WidgetID: 1}
	require.NoError(t, tx.TxSelect(ctx, w, widgetsGetByID))
	w.Color = "blue"
	require.NoError(t, tx.TXUpdate(ctx, w))

	// changing obj after the write must not change what gets cached
	w.Color = "purple"

	before, err := env.mr.Get(key)
	require.NoError(t, err)
	assert.Contains(t, before, `"red"`, "cache untouched until commit")

	require.NoError(t, tx.TXEnd(ctx))

	after, err := env.mr.Get(key)
	require.NoError(t, err)
	assert.Contains(t, after, `"blue"`)
}

func TestTx_RollbackSkipsCache(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	env.mock.ExpectBegin()
	env.mock.ExpectQuery(compiled(widgetsInsertSQL)).
		WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow(int64(8), "gear", "red"))
	env.mock.ExpectRollback()

	tx, err := env.s.TXBegin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.TXInsert(ctx, &Widget{Name: "gear", Color: "red"}))
	require.NoError(t, tx.TXRollback())

	assert.False(t, env.mr.Exists("service:test|Widget|WidgetsGetByID|widget_id=8"))
}

func TestTx_CommitFailure(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	env.mock.ExpectBegin()
	env.mock.ExpectQuery(compiled(widgetsInsertSQL)).
		WillReturnRows(sqlmock.NewRows(widgetColumns).AddRow(int64(8), "gear", "red"))
	env.mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	tx, err := env.s.TXBegin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.TXInsert(ctx, &Widget{Name: "gear", Color: "red"}))
	assert.Error(t, tx.TXEnd(ctx))

	assert.False(t, env.mr.Exists("service:test|Widget|WidgetsGetByID|widget_id=8"))
}

func TestCacheDisabled_AlwaysQueries(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	env.expectByID(1, "bolt", "red")
	env.expectByID(1, "bolt", "red")

	for i := 0; i < 2; i++ {
		require.NoError(t, env.s.Select(ctx, &Widget{WidgetID: 1}, widgetsGetByID))
	}
}

func TestPing(t *testing.T) {
	env := newTestEnv(t, true)
	require.NoError(t, env.s.Ping(context.Background()))

	env.mr.Close()
	assert.Error(t, env.s.Ping(context.Background()))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"23505", ErrDuplicate},
		{"23502", ErrInvalid},
		{"23503", ErrInvalid},
		{"23514", ErrInvalid},
		{"22P02", ErrInvalid},
		{"22001", ErrInvalid},
		{"22003", ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := classify(&pq.Error{Code: pq.ErrorCode(tt.code)})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	other := errors.New("network down")
	assert.Equal(t, other, classify(other))
	assert.Equal(t, &pq.Error{Code: "40001"}, classify(&pq.Error{Code: "40001"}))
	assert.NoError(t, classify(nil))
}
