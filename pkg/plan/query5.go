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
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/daviszhen/q5/pkg/storage"
	"github.com/daviszhen/q5/pkg/util"
)

// Execute runs the query over tabs:
//
//	select n_name, sum(l_extendedprice * (1 - l_discount)) as revenue
//	from lineitem, supplier, nation, region
//	where l_suppkey = s_suppkey and s_nationkey = n_nationkey
//	  and n_regionkey = r_regionkey and r_name = :region
//	  and l_shipdate between :start and :end
//	group by n_name
//
// The dimension indexes are built once and lineitem is split into one
// range per worker. Each worker fills a private partial; once all of them
// are done the partials are merged in range order, so the same input and
// thread count always give the same sums. ctx is only checked before the
// workers start; a started worker always runs to the end.
func Execute(ctx context.Context, params Params, tabs *storage.Tables) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	lineitem := tabs.Get(storage.TableLineItem)
	if lineitem == nil {
		return nil, fmt.Errorf("table %s is not loaded", storage.TableLineItem)
	}

	st := time.Now()
	indexes, err := buildDimensionIndexes(tabs)
	if err != nil {
		return nil, err
	}
	chain, err := newJoinChain(params, lineitem.Schema, indexes)
	if err != nil {
		return nil, err
	}
	ranges, err := Partition(lineitem.Len(), params.Threads)
	if err != nil {
		return nil, err
	}
	util.Debug("query5 prepared",
		zap.Int("suppliers", indexes.suppliers.Len()),
		zap.Int("nations", indexes.nations.Len()),
		zap.Int("regions", indexes.regions.Len()),
		zap.Int("skipped", indexes.skipped()),
		zap.Int("partitions", len(ranges)),
		zap.Duration("took", time.Since(st)))

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	partials := make([]map[string]float64, len(ranges))
	wg := errgroup.Group{}
	for i, rng := range ranges {
		wg.Go(func() (retErr error) {
			defer func() {
				if rErr := recover(); rErr != nil {
					retErr = errors.Join(retErr, util.ConvertPanicError(rErr))
				}
			}()
			partials[i] = chain.aggregate(lineitem, rng)
			return
		})
	}
	if err = wg.Wait(); err != nil {
		return nil, err
	}

	//range order keeps the float sums stable across runs
	result := NewResult()
	for _, partial := range partials {
		result.Merge(partial)
	}
	return result, nil
}
