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
	"strings"

	"github.com/xlab/treeprint"

	"github.com/daviszhen/q5/pkg/storage"
)

// Explain renders the physical plan. tabs may be nil, in which case row
// counts and partitions are left out.
func Explain(params Params, tabs *storage.Tables) string {
	rows := func(table string) string {
		if tabs == nil || tabs.Get(table) == nil {
			return ""
		}
		return fmt.Sprintf(" rows: %d", tabs.Get(table).Len())
	}

	tree := treeprint.NewWithRoot(fmt.Sprintf("Merge [ordered by %s, workers: %d]",
		strings.ToLower(colNationName), params.Threads))
	aggr := tree.AddMetaBranch("Aggregate", fmt.Sprintf("group by %s, sum(%s * (1 - %s))",
		strings.ToLower(colNationName),
		strings.ToLower(colExtendedPrice),
		strings.ToLower(colDiscount)))

	regionJoin := aggr.AddMetaBranch("BroadcastHashJoin", joinCond(colNationRegion, colRegionKey))
	nationJoin := regionJoin.AddMetaBranch("BroadcastHashJoin", joinCond(colSupplierNation, colNationKey))
	supplierJoin := nationJoin.AddMetaBranch("BroadcastHashJoin", joinCond(colSuppKey, colSupplierKey))

	scan := supplierJoin.AddMetaBranch("Scan", storage.TableLineItem+rows(storage.TableLineItem))
	scan.AddMetaNode("Filter", fmt.Sprintf("'%s' <= %s <= '%s'",
		params.StartDate, strings.ToLower(colShipDate), params.EndDate))
	if tabs != nil && tabs.Get(storage.TableLineItem) != nil {
		ranges, err := Partition(tabs.Get(storage.TableLineItem).Len(), params.Threads)
		if err == nil {
			parts := scan.AddBranch(fmt.Sprintf("Partitions: %d", len(ranges)))
			for i, rng := range ranges {
				parts.AddMetaNode(fmt.Sprintf("worker %d", i), rng.String())
			}
		}
	}

	supplierJoin.AddMetaNode("Index", storage.TableSupplier+" on "+strings.ToLower(colSupplierKey)+rows(storage.TableSupplier))
	nationJoin.AddMetaNode("Index", storage.TableNation+" on "+strings.ToLower(colNationKey)+rows(storage.TableNation))
	region := regionJoin.AddMetaBranch("Index", storage.TableRegion+" on "+strings.ToLower(colRegionKey)+rows(storage.TableRegion))
	region.AddMetaNode("Filter", fmt.Sprintf("%s = '%s'", strings.ToLower(colRegionName), params.Region))
	return tree.String()
}

func joinCond(probe, build string) string {
	return strings.ToLower(probe) + " = " + strings.ToLower(build)
}
