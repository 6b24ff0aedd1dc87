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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTpchCatalog(t *testing.T) {
	cat := TpchCatalog()
	tables := cat.Tables()
	require.Len(t, tables, 6)

	lineitem, err := cat.Table("LINEITEM")
	require.NoError(t, err)
	assert.Len(t, lineitem.Columns, 16)
	assert.False(t, lineitem.Dimension)
	assert.Equal(t, "lineitem.tbl", lineitem.FileName("csv"))
	assert.Equal(t, "lineitem.parquet", lineitem.FileName("parquet"))

	sch := lineitem.Schema()
	assert.Equal(t, 10, sch.ColumnIndex("L_SHIPDATE"))
	assert.Equal(t, -1, sch.ColumnIndex("l_shipdate"))

	for _, name := range []string{TableSupplier, TableNation, TableRegion} {
		def, err := cat.Table(name)
		require.NoError(t, err)
		assert.True(t, def.Dimension, name)
	}
	for _, name := range []string{TableCustomer, TableOrders} {
		def, err := cat.Table(name)
		require.NoError(t, err)
		assert.True(t, def.Unused, name)
	}

	err = cat.Add(&TableDef{Name: TableRegion})
	assert.Error(t, err)
	_, err = cat.Table("part")
	assert.Error(t, err)
}

func TestRecordAccess(t *testing.T) {
	sch := NewSchema("t", []string{"A", "B"})
	rel := NewRelation(sch)
	full := rel.Append("1", "2", "3")
	short := rel.Append("x")

	assert.Equal(t, "t", rel.Name())
	assert.Equal(t, 2, rel.Len())
	assert.Equal(t, 2, full.Len())
	v, ok := full.Get("B")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = short.Get("B")
	assert.False(t, ok)
	_, ok = short.At(-1)
	assert.False(t, ok)
	assert.Same(t, sch, short.Schema())
}

func TestColumnKindString(t *testing.T) {
	assert.Equal(t, "decimal", KindDecimal.String())
	assert.Equal(t, "kind(9)", ColumnKind(9).String())
}
