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

	"github.com/daviszhen/q5/pkg/common"
	"github.com/daviszhen/q5/pkg/storage"
)

// joinChain probes lineitem -> supplier -> nation -> region. Column
// positions are resolved once so the per row work is slice access and
// map probes only.
type joinChain struct {
	params  Params
	indexes *dimensionIndexes

	shipDateIdx      int
	suppKeyIdx       int
	extendedPriceIdx int
	discountIdx      int

	supplierNationIdx int
	nationNameIdx     int
	nationRegionIdx   int
	regionNameIdx     int
}

func newJoinChain(params Params, lineitem *storage.Schema, indexes *dimensionIndexes) (*joinChain, error) {
	chain := &joinChain{
		params:  params,
		indexes: indexes,
	}
	factCols := []struct {
		name string
		dst  *int
	}{
		{colShipDate, &chain.shipDateIdx},
		{colSuppKey, &chain.suppKeyIdx},
		{colExtendedPrice, &chain.extendedPriceIdx},
		{colDiscount, &chain.discountIdx},
	}
	for _, col := range factCols {
		*col.dst = lineitem.ColumnIndex(col.name)
		if *col.dst < 0 {
			return nil, fmt.Errorf("no column %s in %s", col.name, lineitem.Table)
		}
	}

	var err error
	dimCols := []struct {
		index *DimensionIndex
		name  string
		dst   *int
	}{
		{indexes.suppliers, colSupplierNation, &chain.supplierNationIdx},
		{indexes.nations, colNationName, &chain.nationNameIdx},
		{indexes.nations, colNationRegion, &chain.nationRegionIdx},
		{indexes.regions, colRegionName, &chain.regionNameIdx},
	}
	for _, col := range dimCols {
		*col.dst, err = col.index.column(col.name)
		if err != nil {
			return nil, err
		}
	}
	return chain, nil
}

// probe evaluates one lineitem row. ok is false when the row is filtered
// out or cannot be joined or parsed.
func (chain *joinChain) probe(line *storage.Record) (nation string, revenue float64, ok bool) {
	shipDate, has := line.At(chain.shipDateIdx)
	if !has || !chain.params.inWindow(shipDate) {
		return
	}

	suppKey, has := line.At(chain.suppKeyIdx)
	if !has {
		return
	}
	supplier, has := chain.indexes.suppliers.Lookup(suppKey)
	if !has {
		return
	}

	nationKey, has := supplier.At(chain.supplierNationIdx)
	if !has {
		return
	}
	nationRec, has := chain.indexes.nations.Lookup(nationKey)
	if !has {
		return
	}

	regionKey, has := nationRec.At(chain.nationRegionIdx)
	if !has {
		return
	}
	region, has := chain.indexes.regions.Lookup(regionKey)
	if !has {
		return
	}
	regionName, has := region.At(chain.regionNameIdx)
	if !has || regionName != chain.params.Region {
		return
	}

	nation, has = nationRec.At(chain.nationNameIdx)
	if !has {
		return
	}

	revenue, err := chain.revenue(line)
	if err != nil {
		return "", 0, false
	}
	return nation, revenue, true
}

// revenue is l_extendedprice * (1 - l_discount).
func (chain *joinChain) revenue(line *storage.Record) (float64, error) {
	priceStr, has := line.At(chain.extendedPriceIdx)
	if !has {
		return 0, fmt.Errorf("missing %s", colExtendedPrice)
	}
	discountStr, has := line.At(chain.discountIdx)
	if !has {
		return 0, fmt.Errorf("missing %s", colDiscount)
	}
	price, err := common.ParseDecimal(priceStr)
	if err != nil {
		return 0, err
	}
	discount, err := common.ParseDecimal(discountStr)
	if err != nil {
		return 0, err
	}
	res, err := common.DiscountedPrice(price, discount)
	if err != nil {
		return 0, err
	}
	return res.Float64()
}

// aggregate folds the rows of rng into a worker private total per nation.
func (chain *joinChain) aggregate(lineitem *storage.Relation, rng Range) map[string]float64 {
	partial := make(map[string]float64)
	for _, line := range lineitem.Records[rng.Start:rng.End] {
		nation, revenue, ok := chain.probe(line)
		if !ok {
			continue
		}
		partial[nation] += revenue
	}
	return partial
}
