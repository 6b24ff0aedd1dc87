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
	"errors"
	"fmt"

	"github.com/daviszhen/q5/pkg/util"
)

var ErrInvalidThreads = errors.New("thread count must be positive")

// Range is the half open row range [Start, End).
type Range struct {
	Start int
	End   int
}

func (rng Range) Len() int {
	return rng.End - rng.Start
}

func (rng Range) String() string {
	return fmt.Sprintf("[%d,%d)", rng.Start, rng.End)
}

// Partition splits [0,total) into at most numThreads contiguous ranges of
// ceil(total/numThreads) rows. Empty ranges are dropped.
func Partition(total, numThreads int) ([]Range, error) {
	if numThreads <= 0 {
		return nil, ErrInvalidThreads
	}
	if total < 0 {
		return nil, fmt.Errorf("negative row count %d", total)
	}
	chunkSize := util.CeilDiv(total, numThreads)
	ranges := make([]Range, 0, numThreads)
	for i := 0; i < numThreads; i++ {
		start := i * chunkSize
		end := min(total, start+chunkSize)
		if start >= end {
			continue
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}
	return ranges, nil
}
