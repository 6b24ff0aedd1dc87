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

package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daviszhen/q5/pkg/util"
)

func execute(args ...string) error {
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

func asiaArgs(cmd string, dir string) []string {
	return []string{
		cmd,
		"--r_name", "ASIA",
		"--start_date", "1994-01-01",
		"--end_date", "1994-12-31",
		"--table_path", dir,
		"--result_path", filepath.Join(dir, "q5.txt"),
	}
}

func TestRunRequiresThreads(t *testing.T) {
	err := execute(asiaArgs("run", t.TempDir())...)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrInvalidConfig)
	assert.ErrorContains(t, err, "threads must be positive")
	assert.Equal(t, 0, q5Cfg.Query5.Threads)
}

func TestExplainThreads(t *testing.T) {
	dir := t.TempDir()
	err := execute(asiaArgs("explain", dir)...)
	assert.ErrorIs(t, err, util.ErrInvalidConfig)

	err = execute(append(asiaArgs("explain", dir), "--threads", "4")...)
	require.NoError(t, err)
	assert.Equal(t, 4, q5Cfg.Query5.Threads)
	assert.Equal(t, "ASIA", q5Cfg.Query5.Region)
}
