package otsstore

import (
	"net/http"
	"testing"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getUser(t *testing.T, s *Store, uid string, seq int64, columns ...string) *otsprotocol.GetRowResponse {
	t.Helper()
	var resp otsprotocol.GetRowResponse
	call(t, s, otsprotocol.APIGetRow, &otsprotocol.GetRowRequest{
		TableName:    userTable.TableName,
		PrimaryKey:   userKey(uid, seq),
		ColumnsToGet: columns,
	}, &resp)
	return &resp
}

func attr(row *otsprotocol.Row, name string) *otsprotocol.ColumnValue {
	for _, c := range row.AttributeColumns {
		if c.Name == name {
			return c.Value
		}
	}
	return nil
}

func TestStore_PutRow(t *testing.T) {
	store := newTestStore(t, userTable)

	t.Run("put then get", func(t *testing.T) {
		var resp otsprotocol.PutRowResponse
		call(t, store, otsprotocol.APIPutRow, &otsprotocol.PutRowRequest{
			TableName:        "users",
			Condition:        ignore(),
			PrimaryKey:       userKey("u1", 1),
			AttributeColumns: []*otsprotocol.Column{col("name", strVal("ann")), col("active", boolVal(true))},
		}, &resp)
		assert.Equal(t, int32(1), *resp.Consumed.CapacityUnit.Write)

		got := getUser(t, store, "u1", 1)
		require.Len(t, got.Row.PrimaryKeyColumns, 2)
		assert.Equal(t, "u1", *got.Row.PrimaryKeyColumns[0].Value.VString)
		assert.Equal(t, "ann", *attr(got.Row, "name").VString)
		assert.True(t, *attr(got.Row, "active").VBool)
		assert.Equal(t, int32(1), *got.Consumed.CapacityUnit.Read)
	})

	t.Run("put replaces the whole row", func(t *testing.T) {
		putUser(t, store, "u1", 1, col("age", intVal(30)))
		got := getUser(t, store, "u1", 1)
		require.Len(t, got.Row.AttributeColumns, 1)
		assert.Equal(t, int64(30), *attr(got.Row, "age").VInt)
	})

	t.Run("expect not exist on existing row", func(t *testing.T) {
		status, e := callErr(t, store, otsprotocol.APIPutRow, &otsprotocol.PutRowRequest{
			TableName:  "users",
			Condition:  &otsprotocol.Condition{RowExistence: otsprotocol.RowExistenceExpectNotExist},
			PrimaryKey: userKey("u1", 1),
		})
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, otsprotocol.ErrCodeConditionCheckFail, e.Code)
	})

	t.Run("expect exist on missing row", func(t *testing.T) {
		_, e := callErr(t, store, otsprotocol.APIPutRow, &otsprotocol.PutRowRequest{
			TableName:  "users",
			Condition:  &otsprotocol.Condition{RowExistence: otsprotocol.RowExistenceExpectExist},
			PrimaryKey: userKey("nobody", 1),
		})
		assert.Equal(t, otsprotocol.ErrCodeConditionCheckFail, e.Code)
	})

	t.Run("missing table", func(t *testing.T) {
		status, e := callErr(t, store, otsprotocol.APIPutRow, &otsprotocol.PutRowRequest{
			TableName:  "nope",
			Condition:  ignore(),
			PrimaryKey: userKey("u1", 1),
		})
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, otsprotocol.ErrCodeObjectNotExist, e.Code)
	})

	invalid := []struct {
		name  string
		pk    []*otsprotocol.Column
		attrs []*otsprotocol.Column
	}{
		{"short key", []*otsprotocol.Column{col("uid", strVal("u1"))}, nil},
		{"key out of order", []*otsprotocol.Column{col("seq", intVal(1)), col("uid", strVal("u1"))}, nil},
		{"key type mismatch", []*otsprotocol.Column{col("uid", intVal(1)), col("seq", intVal(1))}, nil},
		{"boundless key", []*otsprotocol.Column{col("uid", infMin), col("seq", intVal(1))}, nil},
		{"attribute shadows key", userKey("u1", 1), []*otsprotocol.Column{col("uid", strVal("x"))}},
		{"duplicated attribute", userKey("u1", 1), []*otsprotocol.Column{col("a", intVal(1)), col("a", intVal(2))}},
		{"boundless attribute", userKey("u1", 1), []*otsprotocol.Column{col("a", infMax)}},
		{"value without payload", userKey("u1", 1), []*otsprotocol.Column{col("a", &otsprotocol.ColumnValue{Type: otsprotocol.ColumnTypeDouble})}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			status, e := callErr(t, store, otsprotocol.APIPutRow, &otsprotocol.PutRowRequest{
				TableName:        "users",
				Condition:        ignore(),
				PrimaryKey:       tt.pk,
				AttributeColumns: tt.attrs,
			})
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, e.Code)
		})
	}
}

func TestStore_GetRow(t *testing.T) {
	store := newTestStore(t, userTable)
	putUser(t, store, "u1", 1, col("name", strVal("ann")), col("age", intVal(30)))

	t.Run("absent row is empty", func(t *testing.T) {
		got := getUser(t, store, "u2", 1)
		require.NotNil(t, got.Row)
		assert.Empty(t, got.Row.PrimaryKeyColumns)
		assert.Empty(t, got.Row.AttributeColumns)
	})

	t.Run("columns to get keep the key", func(t *testing.T) {
		got := getUser(t, store, "u1", 1, "age")
		assert.Len(t, got.Row.PrimaryKeyColumns, 2)
		require.Len(t, got.Row.AttributeColumns, 1)
		assert.Equal(t, "age", got.Row.AttributeColumns[0].Name)
	})

	t.Run("filter rejects row", func(t *testing.T) {
		var resp otsprotocol.GetRowResponse
		call(t, store, otsprotocol.APIGetRow, &otsprotocol.GetRowRequest{
			TableName:  "users",
			PrimaryKey: userKey("u1", 1),
			Filter:     relationCond("age", otsprotocol.ComparatorGreaterThan, intVal(40), true),
		}, &resp)
		assert.Empty(t, resp.Row.PrimaryKeyColumns)
	})
}

func TestStore_UpdateRow(t *testing.T) {
	store := newTestStore(t, userTable)
	putUser(t, store, "u1", 1, col("name", strVal("ann")), col("age", intVal(30)))

	update := func(cond *otsprotocol.Condition, seq int64, updates ...*otsprotocol.ColumnUpdate) *otsprotocol.UpdateRowRequest {
		return &otsprotocol.UpdateRowRequest{TableName: "users", Condition: cond, PrimaryKey: userKey("u1", seq), AttributeColumns: updates}
	}
	put := func(name string, v *otsprotocol.ColumnValue) *otsprotocol.ColumnUpdate {
		return &otsprotocol.ColumnUpdate{Type: otsprotocol.OperationTypePut, Name: name, Value: v}
	}
	del := func(name string) *otsprotocol.ColumnUpdate {
		return &otsprotocol.ColumnUpdate{Type: otsprotocol.OperationTypeDelete, Name: name}
	}

	t.Run("puts and deletes", func(t *testing.T) {
		call(t, store, otsprotocol.APIUpdateRow, update(ignore(), 1, put("age", intVal(31)), put("city", strVal("oslo")), del("name")), &otsprotocol.UpdateRowResponse{})
		got := getUser(t, store, "u1", 1)
		assert.Nil(t, attr(got.Row, "name"))
		assert.Equal(t, int64(31), *attr(got.Row, "age").VInt)
		assert.Equal(t, "oslo", *attr(got.Row, "city").VString)
	})

	t.Run("creates missing row", func(t *testing.T) {
		call(t, store, otsprotocol.APIUpdateRow, update(ignore(), 2, put("age", intVal(1))), &otsprotocol.UpdateRowResponse{})
		got := getUser(t, store, "u1", 2)
		assert.Len(t, got.Row.PrimaryKeyColumns, 2)
	})

	t.Run("column condition", func(t *testing.T) {
		cond := &otsprotocol.Condition{
			RowExistence:    otsprotocol.RowExistenceExpectExist,
			ColumnCondition: relationCond("age", otsprotocol.ComparatorEqual, intVal(99), false),
		}
		_, e := callErr(t, store, otsprotocol.APIUpdateRow, update(cond, 1, put("age", intVal(100))))
		assert.Equal(t, otsprotocol.ErrCodeConditionCheckFail, e.Code)

		cond.ColumnCondition = relationCond("age", otsprotocol.ComparatorEqual, intVal(31), false)
		call(t, store, otsprotocol.APIUpdateRow, update(cond, 1, put("age", intVal(100))), &otsprotocol.UpdateRowResponse{})
		assert.Equal(t, int64(100), *attr(getUser(t, store, "u1", 1).Row, "age").VInt)
	})

	t.Run("put without value", func(t *testing.T) {
		_, e := callErr(t, store, otsprotocol.APIUpdateRow, update(ignore(), 1, &otsprotocol.ColumnUpdate{Type: otsprotocol.OperationTypePut, Name: "age"}))
		assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, e.Code)
	})

	t.Run("unknown operation", func(t *testing.T) {
		_, e := callErr(t, store, otsprotocol.APIUpdateRow, update(ignore(), 1, &otsprotocol.ColumnUpdate{Type: 9, Name: "age"}))
		assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, e.Code)
	})
}

func TestStore_DeleteRow(t *testing.T) {
	store := newTestStore(t, userTable)
	putUser(t, store, "u1", 1, col("name", strVal("ann")))

	_, e := callErr(t, store, otsprotocol.APIDeleteRow, &otsprotocol.DeleteRowRequest{
		TableName: "users",
		Condition: &otsprotocol.Condition{
			RowExistence:    otsprotocol.RowExistenceIgnore,
			ColumnCondition: relationCond("name", otsprotocol.ComparatorEqual, strVal("bob"), false),
		},
		PrimaryKey: userKey("u1", 1),
	})
	assert.Equal(t, otsprotocol.ErrCodeConditionCheckFail, e.Code)

	var resp otsprotocol.DeleteRowResponse
	call(t, store, otsprotocol.APIDeleteRow, &otsprotocol.DeleteRowRequest{
		TableName:  "users",
		Condition:  &otsprotocol.Condition{RowExistence: otsprotocol.RowExistenceExpectExist},
		PrimaryKey: userKey("u1", 1),
	}, &resp)
	assert.Equal(t, int32(1), *resp.Consumed.CapacityUnit.Write)
	assert.Empty(t, getUser(t, store, "u1", 1).Row.PrimaryKeyColumns)

	t.Run("condition is required", func(t *testing.T) {
		_, e := callErr(t, store, otsprotocol.APIDeleteRow, &otsprotocol.DeleteRowRequest{TableName: "users", PrimaryKey: userKey("u1", 1)})
		assert.Equal(t, otsprotocol.ErrCodeParameterInvalid, e.Code)
	})
}
