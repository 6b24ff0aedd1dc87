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

	"github.com/daviszhen/q5/pkg/common"
	"github.com/daviszhen/q5/pkg/util"
)

const (
	colShipDate      = "L_SHIPDATE"
	colSuppKey       = "L_SUPPKEY"
	colExtendedPrice = "L_EXTENDEDPRICE"
	colDiscount      = "L_DISCOUNT"

	colSupplierKey    = "S_SUPPKEY"
	colSupplierNation = "S_NATIONKEY"

	colNationKey    = "N_NATIONKEY"
	colNationName   = "N_NAME"
	colNationRegion = "N_REGIONKEY"

	colRegionKey  = "R_REGIONKEY"
	colRegionName = "R_NAME"
)

// Params are the query filters. The date window is inclusive and compared
// as strings, which is chronological for YYYY-MM-DD.
type Params struct {
	Region    string
	StartDate string
	EndDate   string
	Threads   int
}

func ParamsFromConfig(cfg *util.Config) Params {
	return Params{
		Region:    cfg.Query5.Region,
		StartDate: cfg.Query5.StartDate,
		EndDate:   cfg.Query5.EndDate,
		Threads:   cfg.Query5.Threads,
	}
}

func (params Params) Validate() error {
	var errs []error
	if len(params.Region) == 0 {
		errs = append(errs, fmt.Errorf("%w: missing region name", util.ErrInvalidConfig))
	}
	if params.Threads <= 0 {
		errs = append(errs, fmt.Errorf("%w: %w", util.ErrInvalidConfig, ErrInvalidThreads))
	}
	for _, d := range []string{params.StartDate, params.EndDate} {
		if _, err := common.ParseDate(d); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", util.ErrInvalidConfig, err))
		}
	}
	return errors.Join(errs...)
}

// inWindow is an ordinal comparison, not a calendar one.
func (params Params) inWindow(shipDate string) bool {
	return shipDate >= params.StartDate && shipDate <= params.EndDate
}
