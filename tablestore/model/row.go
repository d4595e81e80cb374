package model

// Column is one named value of a row.
type Column struct {
	Name  string
	Value ColumnValue
}

// PrimaryKey lists the key columns of a row in the table's schema order.
// Order is significant on the wire.
type PrimaryKey []Column

// AttributeColumns lists the non-key columns of a row. Order carries no
// meaning to the server but is preserved so encodings are deterministic.
type AttributeColumns []Column

func NewPrimaryKey() PrimaryKey { return PrimaryKey{} }

// Add returns the key with the column appended.
func (pk PrimaryKey) Add(name string, v ColumnValue) PrimaryKey {
	return append(pk, Column{Name: name, Value: v})
}

func (pk PrimaryKey) Get(name string) (ColumnValue, bool) {
	return lookup(pk, name)
}

func (pk PrimaryKey) Equal(o PrimaryKey) bool {
	return columnsEqual(pk, o)
}

func (a AttributeColumns) Add(name string, v ColumnValue) AttributeColumns {
	return append(a, Column{Name: name, Value: v})
}

func (a AttributeColumns) Get(name string) (ColumnValue, bool) {
	return lookup(a, name)
}

func (a AttributeColumns) Equal(o AttributeColumns) bool {
	return columnsEqual(a, o)
}

// Row is a primary key with its attribute columns, as returned by reads.
type Row struct {
	PrimaryKey PrimaryKey
	Attributes AttributeColumns
}

func lookup(cols []Column, name string) (ColumnValue, bool) {
	for _, c := range cols {
		if c.Name == name {
			return c.Value, true
		}
	}
	return ColumnValue{}, false
}

func columnsEqual(a, b []Column) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !a[i].Value.Equal(b[i].Value) {
			return false
		}
	}
	return true
}
