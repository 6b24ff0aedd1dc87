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
	"strings"

	decimal2 "github.com/govalues/decimal"
)

type Decimal struct {
	decimal2.Decimal
}

func ParseDecimal(s string) (Decimal, error) {
	d, err := decimal2.Parse(strings.TrimSpace(s))
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{Decimal: d}, nil
}

// DecimalFromScaled builds value / 10^scale.
func DecimalFromScaled(value int64, scale int) (Decimal, error) {
	d, err := decimal2.New(value, scale)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{Decimal: d}, nil
}

func (dec *Decimal) String() string {
	return dec.Decimal.String()
}

// DiscountedPrice returns price * (1 - discount).
func DiscountedPrice(price, discount Decimal) (Decimal, error) {
	rest, err := decimal2.One.Sub(discount.Decimal)
	if err != nil {
		return Decimal{}, err
	}
	res, err := price.Decimal.Mul(rest)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{Decimal: res}, nil
}

func (dec *Decimal) Float64() (float64, error) {
	f, ok := dec.Decimal.Float64()
	if !ok {
		return 0, fmt.Errorf("decimal %s out of float64 range", dec.Decimal)
	}
	return f, nil
}
