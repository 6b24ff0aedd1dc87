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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/q5/pkg/storage"
)

func TestBuildIndex(t *testing.T) {
	db := newTestDB(t)
	fillDimensions(db)
	//no key
	db.tabs.Get(storage.TableNation).Append()

	index, err := BuildIndex(db.tabs.Get(storage.TableNation), colNationKey)
	require.NoError(t, err)
	assert.Equal(t, 7, index.Len())
	assert.Equal(t, 1, index.Skipped())

	rec, ok := index.Lookup("11")
	require.True(t, ok)
	name, _ := rec.Get(colNationName)
	assert.Equal(t, "CHINA", name)

	_, ok = index.Lookup("77")
	assert.False(t, ok)

	_, err = BuildIndex(db.tabs.Get(storage.TableNation), colRegionKey)
	assert.Error(t, err)
}

func TestBuildIndexCoversEveryRecord(t *testing.T) {
	db := newTestDB(t)
	fillDimensions(db)
	rel := db.tabs.Get(storage.TableSupplier)
	index, err := BuildIndex(rel, colSupplierKey)
	require.NoError(t, err)
	require.Equal(t, rel.Len(), index.Len())
	for _, rec := range rel.Records {
		key, _ := rec.Get(colSupplierKey)
		got, ok := index.Lookup(key)
		assert.True(t, ok)
		assert.Same(t, rec, got)
	}
}

func TestDimensionIndexesSkipped(t *testing.T) {
	db := newTestDB(t)
	fillDimensions(db)
	db.tabs.Get(storage.TableNation).Append()
	db.tabs.Get(storage.TableSupplier).Append()
	db.tabs.Get(storage.TableSupplier).Append()

	indexes, err := buildDimensionIndexes(db.tabs)
	require.NoError(t, err)
	assert.Equal(t, 2, indexes.suppliers.Skipped())
	assert.Equal(t, 1, indexes.nations.Skipped())
	assert.Equal(t, 0, indexes.regions.Skipped())
	assert.Equal(t, 3, indexes.skipped())
}
