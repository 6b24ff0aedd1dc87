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

import (
	"fmt"
	"strings"

	"github.com/tidwall/btree"
)

const (
	TableCustomer = "customer"
	TableOrders   = "orders"
	TableLineItem = "lineitem"
	TableSupplier = "supplier"
	TableNation   = "nation"
	TableRegion   = "region"
)

type ColumnKind int

const (
	KindString ColumnKind = iota
	KindInteger
	KindDecimal
	KindDate
)

func (kind ColumnKind) String() string {
	switch kind {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(kind))
	}
}

type ColumnDef struct {
	Name  string
	Kind  ColumnKind
	Scale int
}

type TableDef struct {
	Name    string
	Columns []ColumnDef
	// Dimension tables are small and fully indexed.
	Dimension bool
	// Unused tables are never read by the query.
	Unused bool
}

func (def *TableDef) Schema() *Schema {
	names := make([]string, len(def.Columns))
	for i, col := range def.Columns {
		names[i] = col.Name
	}
	return NewSchema(def.Name, names)
}

func (def *TableDef) FileName(format string) string {
	switch format {
	case "parquet":
		return def.Name + ".parquet"
	default:
		return def.Name + ".tbl"
	}
}

func tableDefLess(a, b *TableDef) bool {
	return a.Name < b.Name
}

type Catalog struct {
	_tables *btree.BTreeG[*TableDef]
}

func NewCatalog() *Catalog {
	return &Catalog{
		_tables: btree.NewBTreeG[*TableDef](tableDefLess),
	}
}

func (cat *Catalog) Add(def *TableDef) error {
	if _, has := cat._tables.Get(def); has {
		return fmt.Errorf("table %s already exists", def.Name)
	}
	cat._tables.Set(def)
	return nil
}

func (cat *Catalog) Table(name string) (*TableDef, error) {
	def, has := cat._tables.Get(&TableDef{Name: strings.ToLower(name)})
	if !has {
		return nil, fmt.Errorf("no table %s", name)
	}
	return def, nil
}

// Tables lists tables ordered by name.
func (cat *Catalog) Tables() []*TableDef {
	ret := make([]*TableDef, 0, cat._tables.Len())
	cat._tables.Scan(func(def *TableDef) bool {
		ret = append(ret, def)
		return true
	})
	return ret
}

func str(name string) ColumnDef {
	return ColumnDef{Name: name, Kind: KindString}
}

func integer(name string) ColumnDef {
	return ColumnDef{Name: name, Kind: KindInteger}
}

func dec(name string) ColumnDef {
	return ColumnDef{Name: name, Kind: KindDecimal, Scale: 2}
}

func date(name string) ColumnDef {
	return ColumnDef{Name: name, Kind: KindDate}
}

// TpchCatalog holds the tables the query loads.
func TpchCatalog() *Catalog {
	cat := NewCatalog()
	defs := []*TableDef{
		{
			Name: TableCustomer,
			Columns: []ColumnDef{
				integer("C_CUSTKEY"), str("C_NAME"), str("C_ADDRESS"),
				integer("C_NATIONKEY"), str("C_PHONE"), dec("C_ACCTBAL"),
				str("C_MKTSEGMENT"), str("C_COMMENT"),
			},
			Unused: true,
		},
		{
			Name: TableOrders,
			Columns: []ColumnDef{
				integer("O_ORDERKEY"), integer("O_CUSTKEY"), str("O_ORDERSTATUS"),
				dec("O_TOTALPRICE"), date("O_ORDERDATE"), str("O_ORDERPRIORITY"),
				str("O_CLERK"), integer("O_SHIPPRIORITY"), str("O_COMMENT"),
			},
			Unused: true,
		},
		{
			Name: TableLineItem,
			Columns: []ColumnDef{
				integer("L_ORDERKEY"), integer("L_PARTKEY"), integer("L_SUPPKEY"),
				integer("L_LINENUMBER"), dec("L_QUANTITY"), dec("L_EXTENDEDPRICE"),
				dec("L_DISCOUNT"), dec("L_TAX"), str("L_RETURNFLAG"),
				str("L_LINESTATUS"), date("L_SHIPDATE"), date("L_COMMITDATE"),
				date("L_RECEIPTDATE"), str("L_SHIPINSTRUCT"),
				str("L_SHIPMODE"), str("L_COMMENT"),
			},
		},
		{
			Name: TableSupplier,
			Columns: []ColumnDef{
				integer("S_SUPPKEY"), str("S_NAME"), str("S_ADDRESS"),
				integer("S_NATIONKEY"), str("S_PHONE"), dec("S_ACCTBAL"), str("S_COMMENT"),
			},
			Dimension: true,
		},
		{
			Name: TableNation,
			Columns: []ColumnDef{
				integer("N_NATIONKEY"), str("N_NAME"), integer("N_REGIONKEY"),
			},
			Dimension: true,
		},
		{
			Name: TableRegion,
			Columns: []ColumnDef{
				integer("R_REGIONKEY"), str("R_NAME"), str("R_COMMENT"),
			},
			Dimension: true,
		},
	}
	for _, def := range defs {
		if err := cat.Add(def); err != nil {
			panic(err)
		}
	}
	return cat
}
