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
)

func TestPartitionCompleteness(t *testing.T) {
	for total := 0; total <= 67; total++ {
		for threads := 1; threads <= 12; threads++ {
			ranges, err := Partition(total, threads)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(ranges), threads)

			covered := make([]int, total)
			next := 0
			for _, rng := range ranges {
				assert.Greater(t, rng.Len(), 0)
				//contiguous and in order
				assert.Equal(t, next, rng.Start)
				next = rng.End
				for i := rng.Start; i < rng.End; i++ {
					covered[i]++
				}
			}
			assert.Equal(t, total, next)
			for i, cnt := range covered {
				assert.Equal(t, 1, cnt, "row %d total %d threads %d", i, total, threads)
			}
		}
	}
}

func TestPartitionChunkSize(t *testing.T) {
	ranges, err := Partition(10, 4)
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 3}, {3, 6}, {6, 9}, {9, 10}}, ranges)

	//ceil(5/4) = 2, the 4th worker has nothing
	ranges, err = Partition(5, 4)
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 2}, {2, 4}, {4, 5}}, ranges)

	ranges, err = Partition(0, 3)
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestPartitionInvalid(t *testing.T) {
	_, err := Partition(10, 0)
	assert.ErrorIs(t, err, ErrInvalidThreads)
	_, err = Partition(10, -2)
	assert.ErrorIs(t, err, ErrInvalidThreads)
	_, err = Partition(-1, 2)
	assert.Error(t, err)
}
