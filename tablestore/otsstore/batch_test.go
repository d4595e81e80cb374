package otsstore

import (
	"testing"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_BatchWriteRow(t *testing.T) {
	store := newTestStore(t, userTable)
	putUser(t, store, "u1", 1, col("name", strVal("ann")))

	var resp otsprotocol.BatchWriteRowResponse
	call(t, store, otsprotocol.APIBatchWriteRow, &otsprotocol.BatchWriteRowRequest{
		Tables: []*otsprotocol.TableInBatchWriteRowRequest{
			{
				TableName: "users",
				PutRows: []*otsprotocol.PutRowInBatchWriteRowRequest{
					{Condition: ignore(), PrimaryKey: userKey("u2", 1), AttributeColumns: []*otsprotocol.Column{col("name", strVal("bob"))}},
					{Condition: &otsprotocol.Condition{RowExistence: otsprotocol.RowExistenceExpectNotExist}, PrimaryKey: userKey("u1", 1)},
				},
				UpdateRows: []*otsprotocol.UpdateRowInBatchWriteRowRequest{
					{Condition: ignore(), PrimaryKey: userKey("u1", 1), AttributeColumns: []*otsprotocol.ColumnUpdate{
						{Type: otsprotocol.OperationTypePut, Name: "age", Value: intVal(3)},
					}},
				},
				DeleteRows: []*otsprotocol.DeleteRowInBatchWriteRowRequest{
					{Condition: ignore(), PrimaryKey: []*otsprotocol.Column{col("uid", strVal("u1"))}},
				},
			},
			{
				TableName: "nope",
				PutRows: []*otsprotocol.PutRowInBatchWriteRowRequest{
					{Condition: ignore(), PrimaryKey: userKey("u1", 1)},
				},
			},
		},
	}, &resp)

	require.Len(t, resp.Tables, 2)
	users := resp.Tables[0]
	assert.Equal(t, "users", users.TableName)
	require.Len(t, users.PutRows, 2)
	assert.True(t, users.PutRows[0].IsOk)
	assert.False(t, users.PutRows[1].IsOk)
	assert.Equal(t, otsprotocol.ErrCodeConditionCheckFail, users.PutRows[1].Error.Code)
	require.Len(t, users.UpdateRows, 1)
	assert.True(t, users.UpdateRows[0].IsOk)
	require.Len(t, users.DeleteRows, 1)
	assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, users.DeleteRows[0].Error.Code)

	require.Len(t, resp.Tables[1].PutRows, 1)
	assert.Equal(t, otsprotocol.ErrCodeObjectNotExist, resp.Tables[1].PutRows[0].Error.Code)

	// Failed rows do not roll back their neighbours.
	assert.Equal(t, "bob", *attr(getUser(t, store, "u2", 1).Row, "name").VString)
	got := getUser(t, store, "u1", 1).Row
	assert.Equal(t, "ann", *attr(got, "name").VString)
	assert.Equal(t, int64(3), *attr(got, "age").VInt)
}

func TestStore_BatchWriteRow_Limits(t *testing.T) {
	store := newTestStore(t, userTable)

	t.Run("empty", func(t *testing.T) {
		_, e := callErr(t, store, otsprotocol.APIBatchWriteRow, &otsprotocol.BatchWriteRowRequest{})
		assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, e.Code)
	})

	t.Run("too many rows", func(t *testing.T) {
		table := &otsprotocol.TableInBatchWriteRowRequest{TableName: "users"}
		for i := 0; i <= maxBatchWriteRows; i++ {
			table.DeleteRows = append(table.DeleteRows, &otsprotocol.DeleteRowInBatchWriteRowRequest{Condition: ignore(), PrimaryKey: userKey("u", int64(i))})
		}
		_, e := callErr(t, store, otsprotocol.APIBatchWriteRow, &otsprotocol.BatchWriteRowRequest{Tables: []*otsprotocol.TableInBatchWriteRowRequest{table}})
		assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, e.Code)
	})

	t.Run("table twice", func(t *testing.T) {
		row := &otsprotocol.DeleteRowInBatchWriteRowRequest{Condition: ignore(), PrimaryKey: userKey("u", 1)}
		_, e := callErr(t, store, otsprotocol.APIBatchWriteRow, &otsprotocol.BatchWriteRowRequest{Tables: []*otsprotocol.TableInBatchWriteRowRequest{
			{TableName: "users", DeleteRows: []*otsprotocol.DeleteRowInBatchWriteRowRequest{row}},
			{TableName: "users", DeleteRows: []*otsprotocol.DeleteRowInBatchWriteRowRequest{row}},
		}})
		assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, e.Code)
	})
}

func TestStore_BatchGetRow(t *testing.T) {
	store := newTestStore(t, userTable, blobTable)
	putUser(t, store, "u1", 1, col("name", strVal("ann")), col("age", intVal(30)))
	putUser(t, store, "u1", 2, col("name", strVal("bob")), col("age", intVal(10)))
	call(t, store, otsprotocol.APIPutRow, &otsprotocol.PutRowRequest{
		TableName:  "blobs",
		Condition:  ignore(),
		PrimaryKey: []*otsprotocol.Column{col("id", binVal([]byte{0, 1, 0}))},
	}, &otsprotocol.PutRowResponse{})

	var resp otsprotocol.BatchGetRowResponse
	call(t, store, otsprotocol.APIBatchGetRow, &otsprotocol.BatchGetRowRequest{
		Tables: []*otsprotocol.TableInBatchGetRowRequest{
			{
				TableName:    "users",
				ColumnsToGet: []string{"name"},
				Filter:       relationCond("age", otsprotocol.ComparatorGreaterThan, intVal(20), false),
				Rows: []*otsprotocol.RowInBatchGetRowRequest{
					{PrimaryKey: userKey("u1", 1)},
					{PrimaryKey: userKey("u1", 2)},
					{PrimaryKey: userKey("u1", 3)},
					{PrimaryKey: []*otsprotocol.Column{col("uid", intVal(1)), col("seq", intVal(1))}},
				},
			},
			{
				TableName: "blobs",
				Rows:      []*otsprotocol.RowInBatchGetRowRequest{{PrimaryKey: []*otsprotocol.Column{col("id", binVal([]byte{0, 1, 0}))}}},
			},
			{
				TableName: "nope",
				Rows:      []*otsprotocol.RowInBatchGetRowRequest{{PrimaryKey: userKey("u1", 1)}},
			},
		},
	}, &resp)

	require.Len(t, resp.Tables, 3)
	users := resp.Tables[0].Rows
	require.Len(t, users, 4)

	assert.True(t, users[0].IsOk)
	require.Len(t, users[0].Row.AttributeColumns, 1)
	assert.Equal(t, "ann", *users[0].Row.AttributeColumns[0].Value.VString)
	assert.True(t, users[1].IsOk, "filtered rows succeed empty")
	assert.Empty(t, users[1].Row.PrimaryKeyColumns)
	assert.True(t, users[2].IsOk, "absent rows succeed empty")
	assert.Empty(t, users[2].Row.PrimaryKeyColumns)
	assert.False(t, users[3].IsOk)
	assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, users[3].Error.Code)

	blobs := resp.Tables[1].Rows
	require.Len(t, blobs, 1)
	assert.Equal(t, []byte{0, 1, 0}, blobs[0].Row.PrimaryKeyColumns[0].Value.VBinary)

	missing := resp.Tables[2].Rows
	require.Len(t, missing, 1)
	assert.False(t, missing[0].IsOk)
	assert.Equal(t, otsprotocol.ErrCodeObjectNotExist, missing[0].Error.Code)
}
