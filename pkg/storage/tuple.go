// Copyright 2023-2024 daviszhen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

// Schema is the ordered attribute list shared by every record of a
// relation.
type Schema struct {
	Table      string
	Columns    []string
	column2Idx map[string]int
}

func NewSchema(table string, columns []string) *Schema {
	sch := &Schema{
		Table:      table,
		Columns:    columns,
		column2Idx: make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		sch.column2Idx[col] = i
	}
	return sch
}

// ColumnIndex returns -1 for an unknown attribute.
func (sch *Schema) ColumnIndex(name string) int {
	if idx, has := sch.column2Idx[name]; has {
		return idx
	}
	return -1
}

// Record is a string tuple. It may be shorter than its schema when the
// source line had fewer fields; the missing attributes are absent.
type Record struct {
	schema *Schema
	values []string
}

func NewRecord(sch *Schema, values []string) *Record {
	if len(values) > len(sch.Columns) {
		values = values[:len(sch.Columns)]
	}
	return &Record{
		schema: sch,
		values: values,
	}
}

func (rec *Record) Schema() *Schema {
	return rec.schema
}

func (rec *Record) Len() int {
	return len(rec.values)
}

// At reads the attribute at position idx.
func (rec *Record) At(idx int) (string, bool) {
	if idx < 0 || idx >= len(rec.values) {
		return "", false
	}
	return rec.values[idx], true
}

func (rec *Record) Get(name string) (string, bool) {
	return rec.At(rec.schema.ColumnIndex(name))
}

type Relation struct {
	Schema  *Schema
	Records []*Record
}

func NewRelation(sch *Schema) *Relation {
	return &Relation{
		Schema:  sch,
		Records: make([]*Record, 0),
	}
}

func (rel *Relation) Name() string {
	return rel.Schema.Table
}

func (rel *Relation) Len() int {
	return len(rel.Records)
}

func (rel *Relation) Append(values ...string) *Record {
	rec := NewRecord(rel.Schema, values)
	rel.Records = append(rel.Records, rec)
	return rec
}

// Tables holds the loaded relations by table name.
type Tables struct {
	rels map[string]*Relation
}

func NewTables() *Tables {
	return &Tables{
		rels: make(map[string]*Relation),
	}
}

func (tabs *Tables) Put(rel *Relation) {
	tabs.rels[rel.Name()] = rel
}

func (tabs *Tables) Get(name string) *Relation {
	return tabs.rels[name]
}

func (tabs *Tables) Len() int {
	return len(tabs.rels)
}
