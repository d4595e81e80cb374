package otsstore

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test table definitions
var userTable = &otsprotocol.TableMeta{
	TableName: "users",
	PrimaryKey: []*otsprotocol.ColumnSchema{
		{Name: "uid", Type: otsprotocol.ColumnTypeString},
		{Name: "seq", Type: otsprotocol.ColumnTypeInteger},
	},
}

var blobTable = &otsprotocol.TableMeta{
	TableName: "blobs",
	PrimaryKey: []*otsprotocol.ColumnSchema{
		{Name: "id", Type: otsprotocol.ColumnTypeBinary},
	},
}

func newTestStore(t *testing.T, tables ...*otsprotocol.TableMeta) *Store {
	store, err := New(StoreOptions{InMemory: true}, tables...)
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// call serves req and decodes a successful reply into resp.
func call(t *testing.T, s *Store, api string, req, resp otsprotocol.Message) {
	t.Helper()
	reply := s.Serve(context.Background(), api, otsprotocol.Marshal(req))
	if reply.StatusCode != http.StatusOK {
		var e otsprotocol.Error
		require.NoError(t, e.Unmarshal(reply.Body))
		require.FailNowf(t, "request failed", "%s: %d %s %s", api, reply.StatusCode, e.Code, e.GetMessage())
	}
	require.NoError(t, resp.Unmarshal(reply.Body))
}

// callErr serves req, expects a failure and returns the error envelope.
func callErr(t *testing.T, s *Store, api string, req otsprotocol.Message) (int, *otsprotocol.Error) {
	t.Helper()
	reply := s.Serve(context.Background(), api, otsprotocol.Marshal(req))
	require.NotEqual(t, http.StatusOK, reply.StatusCode, "expected %s to fail", api)
	var e otsprotocol.Error
	require.NoError(t, e.Unmarshal(reply.Body))
	return reply.StatusCode, &e
}

func intVal(v int64) *otsprotocol.ColumnValue {
	return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeInteger, VInt: &v}
}

func strVal(v string) *otsprotocol.ColumnValue {
	return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeString, VString: &v}
}

func boolVal(v bool) *otsprotocol.ColumnValue {
	return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeBoolean, VBool: &v}
}

func binVal(v []byte) *otsprotocol.ColumnValue {
	return &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeBinary, VBinary: v}
}

var (
	infMin = &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeInfMin}
	infMax = &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeInfMax}
)

func col(name string, v *otsprotocol.ColumnValue) *otsprotocol.Column {
	return &otsprotocol.Column{Name: name, Value: v}
}

func userKey(uid string, seq int64) []*otsprotocol.Column {
	return []*otsprotocol.Column{col("uid", strVal(uid)), col("seq", intVal(seq))}
}

func ignore() *otsprotocol.Condition {
	return &otsprotocol.Condition{RowExistence: otsprotocol.RowExistenceIgnore}
}

func putUser(t *testing.T, s *Store, uid string, seq int64, attrs ...*otsprotocol.Column) {
	t.Helper()
	call(t, s, otsprotocol.APIPutRow, &otsprotocol.PutRowRequest{
		TableName:        userTable.TableName,
		Condition:        ignore(),
		PrimaryKey:       userKey(uid, seq),
		AttributeColumns: attrs,
	}, &otsprotocol.PutRowResponse{})
}

// =============================================================================
// Dispatch
// =============================================================================

func TestStore_Serve(t *testing.T) {
	store := newTestStore(t)

	t.Run("unknown api", func(t *testing.T) {
		status, e := callErr(t, store, "/Scan", &otsprotocol.ListTableRequest{})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, otsprotocol.ErrCodeUnsupportOperation, e.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		reply := store.Serve(context.Background(), otsprotocol.APIDescribeTable, []byte{0x0a, 0x05, 'a'})
		assert.Equal(t, http.StatusBadRequest, reply.StatusCode)
		assert.NotEmpty(t, reply.RequestID)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		reply := store.Serve(ctx, otsprotocol.APIListTable, nil)
		assert.Equal(t, http.StatusServiceUnavailable, reply.StatusCode)
	})

	t.Run("request ids are unique", func(t *testing.T) {
		a := store.Serve(context.Background(), otsprotocol.APIListTable, nil)
		b := store.Serve(context.Background(), otsprotocol.APIListTable, nil)
		assert.Equal(t, http.StatusOK, a.StatusCode)
		assert.NotEqual(t, a.RequestID, b.RequestID)
	})
}

// =============================================================================
// Table Operations
// =============================================================================

func TestStore_CreateTable(t *testing.T) {
	store := newTestStore(t, userTable)

	t.Run("already exists", func(t *testing.T) {
		status, e := callErr(t, store, otsprotocol.APICreateTable, &otsprotocol.CreateTableRequest{TableMeta: userTable})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, otsprotocol.ErrCodeObjectAlreadyExist, e.Code)
	})

	tests := []struct {
		name string
		meta *otsprotocol.TableMeta
	}{
		{"invalid table name", &otsprotocol.TableMeta{TableName: "1bad", PrimaryKey: userTable.PrimaryKey}},
		{"no primary key", &otsprotocol.TableMeta{TableName: "empty"}},
		{"too many primary keys", &otsprotocol.TableMeta{TableName: "wide", PrimaryKey: []*otsprotocol.ColumnSchema{
			{Name: "a", Type: otsprotocol.ColumnTypeInteger},
			{Name: "b", Type: otsprotocol.ColumnTypeInteger},
			{Name: "c", Type: otsprotocol.ColumnTypeInteger},
			{Name: "d", Type: otsprotocol.ColumnTypeInteger},
			{Name: "e", Type: otsprotocol.ColumnTypeInteger},
		}}},
		{"duplicated primary key", &otsprotocol.TableMeta{TableName: "dup", PrimaryKey: []*otsprotocol.ColumnSchema{
			{Name: "a", Type: otsprotocol.ColumnTypeInteger},
			{Name: "a", Type: otsprotocol.ColumnTypeString},
		}}},
		{"boolean primary key", &otsprotocol.TableMeta{TableName: "flags", PrimaryKey: []*otsprotocol.ColumnSchema{
			{Name: "on", Type: otsprotocol.ColumnTypeBoolean},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, e := callErr(t, store, otsprotocol.APICreateTable, &otsprotocol.CreateTableRequest{TableMeta: tt.meta})
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, e.Code)
		})
	}
}

func TestStore_ListAndDeleteTable(t *testing.T) {
	store := newTestStore(t, userTable, blobTable)
	putUser(t, store, "u1", 1)

	var list otsprotocol.ListTableResponse
	call(t, store, otsprotocol.APIListTable, &otsprotocol.ListTableRequest{}, &list)
	assert.ElementsMatch(t, []string{"users", "blobs"}, list.TableNames)

	call(t, store, otsprotocol.APIDeleteTable, &otsprotocol.DeleteTableRequest{TableName: "users"}, &otsprotocol.DeleteTableResponse{})
	call(t, store, otsprotocol.APIListTable, &otsprotocol.ListTableRequest{}, &list)
	assert.Equal(t, []string{"blobs"}, list.TableNames)

	status, e := callErr(t, store, otsprotocol.APIDeleteTable, &otsprotocol.DeleteTableRequest{TableName: "users"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, otsprotocol.ErrCodeObjectNotExist, e.Code)

	// Rows of a dropped table do not survive a re-create.
	call(t, store, otsprotocol.APICreateTable, &otsprotocol.CreateTableRequest{TableMeta: userTable}, &otsprotocol.CreateTableResponse{})
	var got otsprotocol.GetRowResponse
	call(t, store, otsprotocol.APIGetRow, &otsprotocol.GetRowRequest{TableName: "users", PrimaryKey: userKey("u1", 1)}, &got)
	assert.Empty(t, got.Row.PrimaryKeyColumns)
}

func TestStore_UpdateTable(t *testing.T) {
	store := newTestStore(t, userTable)
	clock := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	update := func(read, write *int32) *otsprotocol.ReservedThroughputDetails {
		var resp otsprotocol.UpdateTableResponse
		call(t, store, otsprotocol.APIUpdateTable, &otsprotocol.UpdateTableRequest{
			TableName:          "users",
			ReservedThroughput: &otsprotocol.ReservedThroughput{CapacityUnit: &otsprotocol.CapacityUnit{Read: read, Write: write}},
		}, &resp)
		return resp.ReservedThroughputDetails
	}

	t.Run("increase", func(t *testing.T) {
		details := update(ptr(int32(10)), nil)
		assert.Equal(t, int32(10), *details.CapacityUnit.Read)
		assert.Equal(t, int32(0), *details.CapacityUnit.Write)
		assert.Equal(t, clock.Unix(), details.LastIncreaseTime)
		assert.Nil(t, details.LastDecreaseTime)
	})

	t.Run("decreases counted per day", func(t *testing.T) {
		clock = clock.Add(time.Hour)
		details := update(ptr(int32(5)), nil)
		assert.Equal(t, int32(1), details.NumberOfDecreasesToday)
		require.NotNil(t, details.LastDecreaseTime)
		assert.Equal(t, clock.Unix(), *details.LastDecreaseTime)

		details = update(ptr(int32(4)), nil)
		assert.Equal(t, int32(2), details.NumberOfDecreasesToday)

		clock = clock.Add(24 * time.Hour)
		details = update(ptr(int32(3)), nil)
		assert.Equal(t, int32(1), details.NumberOfDecreasesToday)
	})

	t.Run("describe reflects update", func(t *testing.T) {
		var resp otsprotocol.DescribeTableResponse
		call(t, store, otsprotocol.APIDescribeTable, &otsprotocol.DescribeTableRequest{TableName: "users"}, &resp)
		assert.Equal(t, "users", resp.TableMeta.TableName)
		assert.Len(t, resp.TableMeta.PrimaryKey, 2)
		assert.Equal(t, int32(3), *resp.ReservedThroughputDetails.CapacityUnit.Read)
	})

	t.Run("nothing to change", func(t *testing.T) {
		_, e := callErr(t, store, otsprotocol.APIUpdateTable, &otsprotocol.UpdateTableRequest{
			TableName:          "users",
			ReservedThroughput: &otsprotocol.ReservedThroughput{CapacityUnit: &otsprotocol.CapacityUnit{}},
		})
		assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, e.Code)
	})
}

func TestStore_ReopenKeepsTables(t *testing.T) {
	dir := t.TempDir()
	store, err := New(StoreOptions{Path: dir}, userTable)
	require.NoError(t, err)
	putUser(t, store, "u1", 1, col("name", strVal("ann")))
	require.NoError(t, store.Close())

	store, err = New(StoreOptions{Path: dir}, userTable)
	require.NoError(t, err)
	defer store.Close()

	var got otsprotocol.GetRowResponse
	call(t, store, otsprotocol.APIGetRow, &otsprotocol.GetRowRequest{TableName: "users", PrimaryKey: userKey("u1", 1)}, &got)
	require.Len(t, got.Row.AttributeColumns, 1)
	assert.Equal(t, "ann", *got.Row.AttributeColumns[0].Value.VString)
}
