package main

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/acksell/otskit/tablestore/model"
	"github.com/acksell/otskit/tablestore/otssdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ordersTable = model.NewTableMeta("orders").
			AddPrimaryKeyColumn("customer", model.ColumnValueTypeString).
			AddPrimaryKeyColumn("id", model.ColumnValueTypeInteger)
	auditTable = model.NewTableMeta("audit").
			AddPrimaryKeyColumn("id", model.ColumnValueTypeBinary)
)

func TestListTables(t *testing.T) {
	client := otssdk.NewMock(ordersTable, auditTable)

	var out bytes.Buffer
	require.NoError(t, listTables(context.Background(), client, &out))
	assert.Equal(t, "audit\norders\n", out.String())
}

func TestDescribeTable(t *testing.T) {
	ctx := context.Background()
	client := otssdk.NewMock(ordersTable)
	_, err := client.UpdateTable(ctx, &otssdk.UpdateTableRequest{
		TableName:          "orders",
		ReservedThroughput: model.NewCapacityUnit(5, 7),
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, describeTable(ctx, client, "orders", &out))

	text := out.String()
	assert.Contains(t, text, "orders")
	assert.Regexp(t, `PK 0:\s+customer STRING`, text)
	assert.Regexp(t, `PK 1:\s+id INTEGER`, text)
	assert.Regexp(t, `Read CU:\s+5\n`, text)
	assert.Regexp(t, `Write CU:\s+7\n`, text)
	assert.Regexp(t, `Decreases today:\s+0\n`, text)
	assert.NotContains(t, text, "Last decrease")
}

func TestDescribeTable_Missing(t *testing.T) {
	client := otssdk.NewMock()

	var out bytes.Buffer
	err := describeTable(context.Background(), client, "nope", &out)

	var serverErr *otssdk.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusNotFound, serverErr.StatusCode)
	assert.Empty(t, out.String())
}
