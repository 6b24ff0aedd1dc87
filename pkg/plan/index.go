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

package plan

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/daviszhen/q5/pkg/storage"
	"github.com/daviszhen/q5/pkg/util"
)

// DimensionIndex is the build side of a broadcast hash join: primary key
// to record. It is read only once built.
type DimensionIndex struct {
	Table   string
	Key     string
	schema  *storage.Schema
	records map[string]*storage.Record
	// records without the key attribute
	skipped int
}

// BuildIndex indexes rel by keyAttr. Records missing the key are left out.
// Duplicate keys are not expected; the last record wins.
func BuildIndex(rel *storage.Relation, keyAttr string) (*DimensionIndex, error) {
	keyIdx := rel.Schema.ColumnIndex(keyAttr)
	if keyIdx < 0 {
		return nil, fmt.Errorf("no column %s in %s", keyAttr, rel.Name())
	}
	index := &DimensionIndex{
		Table:   rel.Name(),
		Key:     keyAttr,
		schema:  rel.Schema,
		records: make(map[string]*storage.Record, rel.Len()),
	}
	for _, rec := range rel.Records {
		key, has := rec.At(keyIdx)
		if !has {
			index.skipped++
			continue
		}
		index.records[key] = rec
	}
	if index.skipped > 0 {
		util.Debug("index skipped records without key",
			zap.String("table", index.Table),
			zap.String("key", keyAttr),
			zap.Int("skipped", index.skipped))
	}
	return index, nil
}

func (index *DimensionIndex) Lookup(key string) (*storage.Record, bool) {
	rec, has := index.records[key]
	return rec, has
}

func (index *DimensionIndex) Len() int {
	return len(index.records)
}

func (index *DimensionIndex) Skipped() int {
	return index.skipped
}

// column resolves an attribute of the indexed records.
func (index *DimensionIndex) column(name string) (int, error) {
	idx := index.schema.ColumnIndex(name)
	if idx < 0 {
		return -1, fmt.Errorf("no column %s in %s", name, index.Table)
	}
	return idx, nil
}

type dimensionIndexes struct {
	suppliers *DimensionIndex
	nations   *DimensionIndex
	regions   *DimensionIndex
}

func (indexes *dimensionIndexes) skipped() int {
	return indexes.suppliers.Skipped() + indexes.nations.Skipped() + indexes.regions.Skipped()
}

func buildDimensionIndexes(tabs *storage.Tables) (*dimensionIndexes, error) {
	var err error
	ret := &dimensionIndexes{}
	builds := []struct {
		table string
		key   string
		dst   **DimensionIndex
	}{
		{storage.TableSupplier, colSupplierKey, &ret.suppliers},
		{storage.TableNation, colNationKey, &ret.nations},
		{storage.TableRegion, colRegionKey, &ret.regions},
	}
	for _, b := range builds {
		rel := tabs.Get(b.table)
		if rel == nil {
			return nil, fmt.Errorf("table %s is not loaded", b.table)
		}
		*b.dst, err = BuildIndex(rel, b.key)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}
