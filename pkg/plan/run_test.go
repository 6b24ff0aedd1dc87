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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/q5/pkg/util"
)

func writeTbl(t *testing.T, dir, table string, lines ...string) {
	data := strings.Join(lines, "\n") + "\n"
	err := os.WriteFile(filepath.Join(dir, table+".tbl"), []byte(data), 0644)
	require.NoError(t, err)
}

func writeTestTables(t *testing.T, dir string) {
	writeTbl(t, dir, "region",
		"0|AFRICA|lar deposits|",
		"1|ASIA|ges. thinly even pinto beans|",
		"2|EUROPE|ly final courts|",
	)
	// INDIA and INDONESIA are in EUROPE here, FRANCE has no region
	writeTbl(t, dir, "nation",
		"8|INDIA|2|ss excuses cajole slyly|",
		"9|INDONESIA|2|slyly express asymptotes|",
		"6|FRANCE|3|refully final requests|",
	)
	writeTbl(t, dir, "supplier",
		"1|Supplier#000000001| N kD4on9OM Ipw3,gf0JBoQDd7tgrzrddZ|8|27-918-335-1736|5755.94|each slyly above the careful|",
		"2|Supplier#000000002|89eJ5ksX3ImxJQBvxObC,|9|15-679-861-2259|4032.68| slyly bold instructions|",
		"3|Supplier#000000003|q1,G3Pj6OjIuUYfUoH18BFTKP5aU9bEV3|6|11-383-516-1199|4192.40|blithely silent requests|",
	)
	writeTbl(t, dir, "lineitem",
		"1|155190|1|1|17|1000.00|0.10|0.02|N|O|1994-03-01|1994-02-12|1994-03-22|DELIVER IN PERSON|TRUCK|egular courts above the|",
		"1|67310|2|2|36|2000.00|0.05|0.06|N|O|1994-04-12|1994-02-28|1994-04-20|TAKE BACK RETURN|MAIL|ly final dependencies|",
		"1|63700|3|3|8|500.00|0.00|0.02|N|O|1994-01-29|1994-03-05|1994-01-31|TAKE BACK RETURN|REG AIR|riously. regular|",
		"2|106170|1|1|38|100.00|0.00|0.05|N|O|1995-01-28|1995-01-14|1995-02-02|TAKE BACK RETURN|RAIL|ven requests. deposits|",
		"3|4297|2|1|45|bad|0.06|0.00|R|F|1994-02-02|1994-01-04|1994-02-23|NONE|AIR|ongside of the furiously|",
	)
}

func testRunConfig(t *testing.T) *util.Config {
	dir := t.TempDir()
	writeTestTables(t, dir)
	cfg := util.DefaultConfig()
	cfg.Query5 = util.Query5{
		Region:    "EUROPE",
		StartDate: "1994-01-01",
		EndDate:   "1994-12-31",
		Threads:   2,
	}
	cfg.Data.Path = dir
	cfg.Result.Path = filepath.Join(dir, "result.txt")
	return cfg
}

func TestRun(t *testing.T) {
	cfg := testRunConfig(t)
	cfg.Debug.PrintPlan = true
	cfg.Debug.PrintResult = true
	cfg.Debug.Count = 2
	require.NoError(t, Run(cfg))

	data, err := os.ReadFile(cfg.Result.Path)
	require.NoError(t, err)
	assert.Equal(t, "INDIA|900\nINDONESIA|1900\n", string(data))
}

func TestRunHeadline(t *testing.T) {
	cfg := testRunConfig(t)
	cfg.Result.NeedHeadLine = true
	cfg.Query5.Threads = 16
	require.NoError(t, Run(cfg))

	data, err := os.ReadFile(cfg.Result.Path)
	require.NoError(t, err)
	assert.Equal(t, "#n_name|revenue\nINDIA|900\nINDONESIA|1900\n", string(data))
}

func TestRunMaxScanRows(t *testing.T) {
	cfg := testRunConfig(t)
	cfg.Debug.EnableMaxScanRows = true
	cfg.Debug.MaxScanRows = 1
	require.NoError(t, Run(cfg))

	data, err := os.ReadFile(cfg.Result.Path)
	require.NoError(t, err)
	//only the first row of every table is loaded, EUROPE is not
	assert.Equal(t, "", string(data))
}

func TestRunConfigError(t *testing.T) {
	cfg := testRunConfig(t)
	cfg.Query5.Threads = 0
	err := Run(cfg)
	assert.ErrorIs(t, err, util.ErrInvalidConfig)
	assert.NoFileExists(t, cfg.Result.Path)

	cfg = testRunConfig(t)
	cfg.Query5.EndDate = "31/12/1994"
	err = Run(cfg)
	assert.ErrorIs(t, err, util.ErrInvalidConfig)
	assert.NoFileExists(t, cfg.Result.Path)

	assert.Error(t, Run(nil))
}

func TestRunIOError(t *testing.T) {
	cfg := testRunConfig(t)
	require.NoError(t, os.Remove(filepath.Join(cfg.Data.Path, "nation.tbl")))
	err := Run(cfg)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg = testRunConfig(t)
	cfg.Result.Path = filepath.Join(cfg.Data.Path, "no", "such", "dir", "result.txt")
	assert.Error(t, Run(cfg))
}
