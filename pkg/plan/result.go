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
	"strings"
	"sync"

	treemap "github.com/liyue201/gostl/ds/map"

	"github.com/daviszhen/q5/pkg/storage"
)

// Result maps nation name to revenue, ordered by nation name. Merge is
// safe for concurrent use. Each runs after every merge is done.
type Result struct {
	lock     sync.Mutex
	revenues *treemap.Map[string, float64]
}

var _ storage.ResultSet = (*Result)(nil)

func NewResult() *Result {
	return &Result{
		revenues: treemap.New[string, float64](strings.Compare),
	}
}

// Merge adds a worker's partial aggregate. The lock is held for the whole
// partial, not per key.
func (res *Result) Merge(partial map[string]float64) {
	res.lock.Lock()
	defer res.lock.Unlock()
	for nation, revenue := range partial {
		old, err := res.revenues.Get(nation)
		if err != nil {
			old = 0
		}
		res.revenues.Insert(nation, old+revenue)
	}
}

func (res *Result) Len() int {
	res.lock.Lock()
	defer res.lock.Unlock()
	return res.revenues.Size()
}

// Each visits nations in ascending order until fun returns false. fun
// must not call back into res.
func (res *Result) Each(fun func(nation string, revenue float64) bool) {
	res.lock.Lock()
	defer res.lock.Unlock()
	for iter := res.revenues.Begin(); iter.IsValid(); iter.Next() {
		if !fun(iter.Key(), iter.Value()) {
			break
		}
	}
}
