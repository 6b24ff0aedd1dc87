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
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/daviszhen/q5/pkg/plan"
	"github.com/daviszhen/q5/pkg/util"
)

func init() {
	cobra.OnInitialize(loadConfig)
	setDefaults()
	initRunCmd()
	initExplainCmd()
	initConfigCmd()
	RootCmd.PersistentFlags().String("config", "", "config file. default: q5.toml in . or etc/q5")
	RootCmd.PersistentFlags().String("log_level", "info", "debug, info, warn, error")
	viper.BindPFlag("debug.logLevel", RootCmd.PersistentFlags().Lookup("log_level"))
}

var q5Cfg = util.DefaultConfig()

///root cmd

var info = "parallel tpch query 5"
var RootCmd = &cobra.Command{
	Use:          "q5",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lg, err := util.NewLogger(viper.GetString("debug.logLevel"))
		if err != nil {
			return err
		}
		util.SetLogger(lg)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use q5 --help or -h")
	},
}

func setDefaults() {
	def := util.DefaultConfig()
	viper.SetDefault("query5.threads", def.Query5.Threads)
	viper.SetDefault("data.format", def.Data.Format)
	viper.SetDefault("result.precision", def.Result.Precision)
	viper.SetDefault("debug.count", def.Debug.Count)
	viper.SetDefault("debug.logLevel", def.Debug.LogLevel)
}

func initDebugOptions() {
	q5Cfg.Debug.EnableMaxScanRows = viper.GetBool("debug.enableMaxScanRows")
	q5Cfg.Debug.MaxScanRows = viper.GetInt("debug.maxScanRows")
	q5Cfg.Debug.PrintResult = viper.GetBool("debug.printResult")
	q5Cfg.Debug.PrintPlan = viper.GetBool("debug.printPlan")
	q5Cfg.Debug.Count = viper.GetInt("debug.count")
	q5Cfg.Debug.LogLevel = viper.GetString("debug.logLevel")
}

func initQuery5Cfg() {
	initDebugOptions()
	q5Cfg.Query5.Region = viper.GetString("query5.region")
	q5Cfg.Query5.StartDate = viper.GetString("query5.startDate")
	q5Cfg.Query5.EndDate = viper.GetString("query5.endDate")
	q5Cfg.Query5.Threads = viper.GetInt("query5.threads")
	q5Cfg.Data.Path = viper.GetString("data.path")
	q5Cfg.Data.Format = viper.GetString("data.format")
	q5Cfg.Data.LoadUnused = viper.GetBool("data.loadUnused")
	q5Cfg.Result.Path = viper.GetString("result.path")
	q5Cfg.Result.NeedHeadLine = viper.GetBool("result.needHeadline")
	q5Cfg.Result.Precision = viper.GetInt("result.precision")
}

// addQueryFlags registers the query flags on cmd and binds them to the
// viper keys. Flags win over the config file.
func addQueryFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("r_name", "", "region name, e.g. ASIA")
	flags.String("start_date", "", "first ship date, YYYY-MM-DD, inclusive")
	flags.String("end_date", "", "last ship date, YYYY-MM-DD, inclusive")
	flags.Int("threads", 0, "worker count, required")
	flags.String("table_path", "", "directory of the tpch tables")
	flags.String("data_format", util.FormatCsv, "tpch data format. csv, parquet")
	flags.Bool("load_unused", false, "also load customer and orders")
	flags.String("result_path", "", "query result path")
	flags.Bool("need_headline", false, "output headline in query result")
	flags.Int("precision", util.DefaultPrecision, "significant digits of revenue, -1 for shortest")
	flags.Bool("print_result", false, "print the result as a table")
	flags.Bool("print_plan", false, "print the physical plan")
	flags.Int("count", 1, "repeat the query count times")
	flags.Int("max_scan_rows", 0, "load at most max_scan_rows rows per table")

	bindings := map[string]string{
		"query5.region":       "r_name",
		"query5.startDate":    "start_date",
		"query5.endDate":      "end_date",
		"query5.threads":      "threads",
		"data.path":           "table_path",
		"data.format":         "data_format",
		"data.loadUnused":     "load_unused",
		"result.path":         "result_path",
		"result.needHeadline": "need_headline",
		"result.precision":    "precision",
		"debug.printResult":   "print_result",
		"debug.printPlan":     "print_plan",
		"debug.count":         "count",
		"debug.maxScanRows":   "max_scan_rows",
	}
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		for key, name := range bindings {
			viper.BindPFlag(key, flags.Lookup(name))
		}
		if flags.Changed("max_scan_rows") {
			viper.Set("debug.enableMaxScanRows", true)
		}
	}
}

//run cmd

var runInfo = "run tpch query 5"
var runCmd = &cobra.Command{
	Use:   "run",
	Short: runInfo,
	Long:  runInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initQuery5Cfg()
		defer util.Sync()
		return plan.Run(q5Cfg)
	},
}

func initRunCmd() {
	RootCmd.AddCommand(runCmd)
	addQueryFlags(runCmd)
}

//explain cmd

var explainInfo = "print the physical plan of tpch query 5"
var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: explainInfo,
	Long:  explainInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initQuery5Cfg()
		params := plan.ParamsFromConfig(q5Cfg)
		if err := params.Validate(); err != nil {
			return err
		}
		fmt.Println(plan.Explain(params, nil))
		return nil
	},
}

func initExplainCmd() {
	RootCmd.AddCommand(explainCmd)
	addQueryFlags(explainCmd)
}

//config cmd

var configInfo = "print the effective config as toml"
var configCmd = &cobra.Command{
	Use:   "config",
	Short: configInfo,
	Long:  configInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initQuery5Cfg()
		return q5Cfg.Encode(os.Stdout)
	},
}

func initConfigCmd() {
	RootCmd.AddCommand(configCmd)
	addQueryFlags(configCmd)
}

var defCfgFilePaths = []string{".", "etc/q5"}
var cfgFileName = "q5.toml"

// loadConfig reads the config file if there is one. Flags alone are
// enough to run.
func loadConfig() {
	if fpath, _ := RootCmd.PersistentFlags().GetString("config"); len(fpath) != 0 {
		viper.SetConfigFile(fpath)
		if err := viper.ReadInConfig(); err != nil {
			util.Error("viper load config file failed",
				zap.String("fpath", fpath),
				zap.Error(err))
			os.Exit(1)
		}
		return
	}
	for _, dirPath := range defCfgFilePaths {
		fpath := filepath.Join(dirPath, cfgFileName)
		if util.FileIsValid(fpath) {
			viper.SetConfigFile(fpath)
			err := viper.ReadInConfig()
			if err != nil {
				util.Error("viper load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
				continue
			}
			break
		}
	}
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
