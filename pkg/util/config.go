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

package util

import (
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	FormatCsv     = "csv"
	FormatParquet = "parquet"

	DefaultPrecision = 6
)

type Query5 struct {
	Region    string `toml:"region"`
	StartDate string `toml:"startDate"`
	EndDate   string `toml:"endDate"`
	Threads   int    `toml:"threads"`
}

type Data struct {
	Path   string `toml:"path"`
	Format string `toml:"format"`
	// LoadUnused also loads customer and orders. The query never reads them.
	LoadUnused bool `toml:"loadUnused"`
}

type Result struct {
	Path         string `toml:"path"`
	NeedHeadLine bool   `toml:"needHeadline"`
	// Precision is the count of significant digits of revenue. -1 means
	// the shortest representation that round trips.
	Precision int `toml:"precision"`
}

type DebugOptions struct {
	EnableMaxScanRows bool   `toml:"enableMaxScanRows"`
	MaxScanRows       int    `toml:"maxScanRows"`
	PrintResult       bool   `toml:"printResult"`
	PrintPlan         bool   `toml:"printPlan"`
	Count             int    `toml:"count"`
	LogLevel          string `toml:"logLevel"`
}

type Config struct {
	Query5 Query5       `toml:"query5"`
	Data   Data         `toml:"data"`
	Result Result       `toml:"result"`
	Debug  DebugOptions `toml:"debug"`
}

func DefaultConfig() *Config {
	return &Config{
		Data: Data{
			Format: FormatCsv,
		},
		Result: Result{
			Precision: DefaultPrecision,
		},
		Debug: DebugOptions{
			Count:    1,
			LogLevel: "info",
		},
	}
}

// Validate reports configuration errors. Nothing may run on a config
// that fails here.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	var errs []error
	missing := func(name, val string) {
		if len(val) == 0 {
			errs = append(errs, fmt.Errorf("%w: missing %s", ErrInvalidConfig, name))
		}
	}
	missing("region name", cfg.Query5.Region)
	missing("start date", cfg.Query5.StartDate)
	missing("end date", cfg.Query5.EndDate)
	missing("table path", cfg.Data.Path)
	missing("result path", cfg.Result.Path)
	if cfg.Query5.Threads <= 0 {
		errs = append(errs, fmt.Errorf("%w: threads must be positive, got %d",
			ErrInvalidConfig, cfg.Query5.Threads))
	}
	switch cfg.Data.Format {
	case FormatCsv, FormatParquet:
	default:
		errs = append(errs, fmt.Errorf("%w: unsupported data format %q",
			ErrInvalidConfig, cfg.Data.Format))
	}
	if cfg.Result.Precision < -1 {
		errs = append(errs, fmt.Errorf("%w: precision %d", ErrInvalidConfig, cfg.Result.Precision))
	}
	return errors.Join(errs...)
}

func (cfg *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}
