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

package common

import (
	"fmt"
	"time"
)

// DateLayout is the tbl date layout. Lexicographic order on it is
// chronological order.
const DateLayout = "2006-01-02"

type Date struct {
	Year  int32
	Month int32
	Day   int32
}

// ParseDate accepts exactly YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, fmt.Errorf("date %q is not %s", s, "YYYY-MM-DD")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q is not %s: %w", s, "YYYY-MM-DD", err)
	}
	y, m, d := t.Date()
	return Date{Year: int32(y), Month: int32(m), Day: int32(d)}, nil
}

// DateFromDays converts days since 1970-01-01, the parquet DATE encoding.
func DateFromDays(days int32) Date {
	t := time.Date(1970, 1, int(1+days), 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return Date{Year: int32(y), Month: int32(m), Day: int32(d)}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
