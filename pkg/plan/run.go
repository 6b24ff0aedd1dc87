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
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"

	"github.com/daviszhen/q5/pkg/storage"
	"github.com/daviszhen/q5/pkg/util"
)

type runResult struct {
	id   string
	dur  time.Duration
	succ bool
}

func (res *runResult) String() string {
	succ := "failed"
	if res.succ {
		succ = "success"
	}
	return fmt.Sprint("Query 5 (", res.id, ") took ", res.dur, " ", succ)
}

func (res *runResult) print() {
	if res.succ {
		color.Green("%s", res.String())
	} else {
		color.Red("%s", res.String())
	}
}

// Run loads the tables once and executes the query debug.count times,
// writing the result file after every successful execution.
func Run(cfg *util.Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	params := ParamsFromConfig(cfg)
	if err := params.Validate(); err != nil {
		return err
	}

	start := time.Now()
	defer func() {
		fmt.Printf("Run took %s\n", time.Since(start))
	}()

	cat := storage.TpchCatalog()
	tabs, err := storage.NewLoader(cfg, cat).Load(storage.QueryTables(cat, cfg.Data.LoadUnused)...)
	if err != nil {
		return err
	}

	if cfg.Debug.PrintPlan {
		fmt.Println(Explain(params, tabs))
	}

	repeat := 1
	if cfg.Debug.Count > 0 {
		repeat = cfg.Debug.Count
	}
	var errs []error
	for r := 0; r < repeat; r++ {
		re := runResult{id: uuid.NewString()}
		st := time.Now()
		result, err := execQuery(cfg, params, tabs, re.id)
		re.dur = time.Since(st)
		if err != nil {
			util.Error("execQuery fail", zap.String("runId", re.id), zap.Error(err))
			errs = append(errs, err)
		} else {
			re.succ = true
			if cfg.Debug.PrintResult {
				PrintResult(os.Stdout, result, cfg.Result.Precision)
			}
		}
		re.print()
	}
	return errors.Join(errs...)
}

func execQuery(cfg *util.Config, params Params, tabs *storage.Tables, runId string) (result *Result, err error) {
	defer func() {
		if rErr := recover(); rErr != nil {
			err = errors.Join(err, util.ConvertPanicError(rErr))
		}
	}()
	util.Info("execute query5",
		zap.String("runId", runId),
		zap.String("region", params.Region),
		zap.String("startDate", params.StartDate),
		zap.String("endDate", params.EndDate),
		zap.Int("threads", params.Threads))

	result, err = Execute(context.Background(), params, tabs)
	if err != nil {
		return nil, err
	}
	fmt.Println("Execute query", cfg.Result.Path)
	err = storage.WriteResult(cfg.Result.Path, result, cfg.Result.NeedHeadLine, cfg.Result.Precision)
	if err != nil {
		return nil, err
	}
	util.Info("query5 done",
		zap.String("runId", runId),
		zap.Int("nations", result.Len()))
	return result, nil
}

func PrintResult(w io.Writer, result *Result, precision int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"n_name", "revenue"})
	result.Each(func(nation string, revenue float64) bool {
		table.Append([]string{nation, storage.FormatRevenue(revenue, precision)})
		return true
	})
	table.Render()
}
