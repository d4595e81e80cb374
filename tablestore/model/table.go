package model

// PrimaryKeySchemaColumn declares one key column.
type PrimaryKeySchemaColumn struct {
	Name string
	Type ColumnValueType
}

// TableMeta is a table name plus its primary key schema, in declaration order.
type TableMeta struct {
	TableName        string
	PrimaryKeySchema []PrimaryKeySchemaColumn
}

func NewTableMeta(name string) TableMeta {
	return TableMeta{TableName: name}
}

// AddPrimaryKeyColumn returns the meta with one more key column declared.
func (m TableMeta) AddPrimaryKeyColumn(name string, typ ColumnValueType) TableMeta {
	m.PrimaryKeySchema = append(m.PrimaryKeySchema, PrimaryKeySchemaColumn{Name: name, Type: typ})
	return m
}

// CapacityUnit is a read/write throughput pair. Either side may be unset.
type CapacityUnit struct {
	Read  Optional[int32]
	Write Optional[int32]
}

func NewCapacityUnit(read, write int32) CapacityUnit {
	return CapacityUnit{Read: Some(read), Write: Some(write)}
}

// ReservedThroughputDetails is the server's view of a table's reserved
// throughput, including when it was last changed.
type ReservedThroughputDetails struct {
	CapacityUnit           CapacityUnit
	LastIncreaseTime       int64
	LastDecreaseTime       Optional[int64]
	NumberOfDecreasesToday int32
}
