package model

// UpdateOfAttribute lists the attribute columns an update sets and the ones
// it removes.
type UpdateOfAttribute struct {
	Puts    AttributeColumns
	Deletes []string
}

func (u UpdateOfAttribute) Put(name string, v ColumnValue) UpdateOfAttribute {
	u.Puts = u.Puts.Add(name, v)
	return u
}

func (u UpdateOfAttribute) Delete(name string) UpdateOfAttribute {
	u.Deletes = append(u.Deletes, name)
	return u
}

type PutChange struct {
	Condition  Condition
	PrimaryKey PrimaryKey
	Attributes AttributeColumns
}

type UpdateChange struct {
	Condition  Condition
	PrimaryKey PrimaryKey
	Update     UpdateOfAttribute
}

type DeleteChange struct {
	Condition  Condition
	PrimaryKey PrimaryKey
}

// RowChanges collects the writes for one table in a batch. Responses are
// matched back to these lists by position, so order is kept as added.
type RowChanges struct {
	TableName string
	Puts      []PutChange
	Updates   []UpdateChange
	Deletes   []DeleteChange
}

func NewRowChanges(table string) *RowChanges {
	return &RowChanges{TableName: table}
}

func (r *RowChanges) AddPut(c Condition, pk PrimaryKey, attrs AttributeColumns) *RowChanges {
	r.Puts = append(r.Puts, PutChange{Condition: c, PrimaryKey: pk, Attributes: attrs})
	return r
}

func (r *RowChanges) AddUpdate(c Condition, pk PrimaryKey, u UpdateOfAttribute) *RowChanges {
	r.Updates = append(r.Updates, UpdateChange{Condition: c, PrimaryKey: pk, Update: u})
	return r
}

func (r *RowChanges) AddDelete(c Condition, pk PrimaryKey) *RowChanges {
	r.Deletes = append(r.Deletes, DeleteChange{Condition: c, PrimaryKey: pk})
	return r
}
