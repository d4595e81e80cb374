package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/acksell/otskit/tablestore/otsprotocol"
	"gopkg.in/yaml.v3"
)

// tablesFile is the seed file read by ots serve.
type tablesFile struct {
	Tables []tableDef `yaml:"tables"`
}

type tableDef struct {
	Name       string      `yaml:"name"`
	PrimaryKey []columnDef `yaml:"primaryKey"`
}

type columnDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

var keyTypes = map[string]otsprotocol.ColumnType{
	"integer": otsprotocol.ColumnTypeInteger,
	"string":  otsprotocol.ColumnTypeString,
	"binary":  otsprotocol.ColumnTypeBinary,
}

func loadTables(path string) ([]*otsprotocol.TableMeta, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables file: %w", err)
	}
	return parseTables(data)
}

func parseTables(data []byte) ([]*otsprotocol.TableMeta, error) {
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing tables file: %w", err)
	}
	metas := make([]*otsprotocol.TableMeta, 0, len(f.Tables))
	for _, t := range f.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("table without a name")
		}
		if len(t.PrimaryKey) == 0 {
			return nil, fmt.Errorf("table %q has no primary key", t.Name)
		}
		meta := &otsprotocol.TableMeta{TableName: t.Name}
		for _, c := range t.PrimaryKey {
			typ, ok := keyTypes[strings.ToLower(c.Type)]
			if !ok {
				return nil, fmt.Errorf("table %q column %q: unknown key type %q", t.Name, c.Name, c.Type)
			}
			meta.PrimaryKey = append(meta.PrimaryKey, &otsprotocol.ColumnSchema{Name: c.Name, Type: typ})
		}
		metas = append(metas, meta)
	}
	return metas, nil
}
