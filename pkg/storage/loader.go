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

package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pierrec/lz4/v4"
	pqLocal "github.com/xitongsys/parquet-go-source/local"
	pqReader "github.com/xitongsys/parquet-go/reader"
	"go.uber.org/zap"

	"github.com/daviszhen/q5/pkg/common"
	"github.com/daviszhen/q5/pkg/util"
)

const lz4Suffix = ".lz4"

type Loader struct {
	cat     *Catalog
	path    string
	format  string
	maxRows int
}

func NewLoader(cfg *util.Config, cat *Catalog) *Loader {
	ld := &Loader{
		cat:    cat,
		path:   cfg.Data.Path,
		format: cfg.Data.Format,
	}
	if cfg.Debug.EnableMaxScanRows && cfg.Debug.MaxScanRows > 0 {
		ld.maxRows = cfg.Debug.MaxScanRows
	}
	return ld
}

// QueryTables lists the tables the query needs, plus customer and orders
// when loadUnused is set.
func QueryTables(cat *Catalog, loadUnused bool) []string {
	names := make([]string, 0)
	for _, def := range cat.Tables() {
		if def.Unused && !loadUnused {
			continue
		}
		names = append(names, def.Name)
	}
	return names
}

func (ld *Loader) Load(names ...string) (*Tables, error) {
	tabs := NewTables()
	for _, name := range names {
		def, err := ld.cat.Table(name)
		if err != nil {
			return nil, err
		}
		st := time.Now()
		rel, err := ld.LoadTable(def)
		if err != nil {
			return nil, err
		}
		util.Info("load table",
			zap.String("table", def.Name),
			zap.Int("rows", rel.Len()),
			zap.Duration("took", time.Since(st)))
		tabs.Put(rel)
	}
	return tabs, nil
}

func (ld *Loader) LoadTable(def *TableDef) (*Relation, error) {
	switch ld.format {
	case util.FormatCsv, "":
		return ld.loadTbl(def)
	case util.FormatParquet:
		return ld.loadParquet(def)
	default:
		return nil, fmt.Errorf("unsupported format %s", ld.format)
	}
}

func (ld *Loader) loadTbl(def *TableDef) (*Relation, error) {
	fpath := filepath.Join(ld.path, def.FileName(util.FormatCsv))
	var input io.Reader
	if !util.FileIsValid(fpath) && util.FileIsValid(fpath+lz4Suffix) {
		fpath += lz4Suffix
	}
	file, err := os.Open(fpath)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", def.Name, err)
	}
	defer file.Close()
	input = file
	if filepath.Ext(fpath) == lz4Suffix {
		input = lz4.NewReader(file)
	}
	rel, err := ReadTbl(input, def.Schema(), ld.maxRows)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fpath, err)
	}
	return rel, nil
}

const maxTblLine = 16 << 20

// ReadTbl parses '|' separated lines. Quotes carry no meaning. Fields
// past the schema, including the empty one after dbgen's trailing '|',
// are dropped. Empty lines are skipped. maxRows <= 0 reads everything.
func ReadTbl(input io.Reader, sch *Schema, maxRows int) (*Relation, error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64<<10), maxTblLine)
	rel := NewRelation(sch)
	for (maxRows <= 0 || rel.Len() < maxRows) && scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if len(line) == 0 {
			continue
		}
		rel.Append(strings.Split(line, "|")...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rel, nil
}

func (ld *Loader) loadParquet(def *TableDef) (rel *Relation, err error) {
	fpath := filepath.Join(ld.path, def.FileName(util.FormatParquet))
	pqFile, err := pqLocal.NewLocalFileReader(fpath)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", def.Name, err)
	}
	defer pqFile.Close()

	reader, err := pqReader.NewParquetColumnReader(pqFile, 1)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fpath, err)
	}
	defer reader.ReadStop()

	rowCnt := int(reader.GetNumRows())
	if ld.maxRows > 0 && rowCnt > ld.maxRows {
		rowCnt = ld.maxRows
	}
	rows := make([][]string, rowCnt)
	for i := range rows {
		rows[i] = make([]string, len(def.Columns))
	}
	for j, col := range def.Columns {
		values, _, _, err := reader.ReadColumnByIndex(int64(j), int64(rowCnt))
		if err != nil {
			return nil, fmt.Errorf("read %s column %s: %w", fpath, col.Name, err)
		}
		if len(values) != rowCnt {
			return nil, fmt.Errorf("column %s has %d values, want %d", col.Name, len(values), rowCnt)
		}
		for i, val := range values {
			//[row i, col j]
			rows[i][j], err = parquetValueToString(val, col)
			if err != nil {
				return nil, fmt.Errorf("read %s column %s row %d: %w", fpath, col.Name, i, err)
			}
		}
	}

	rel = NewRelation(def.Schema())
	for _, row := range rows {
		rel.Append(row...)
	}
	return rel, nil
}

func parquetValueToString(field any, col ColumnDef) (string, error) {
	switch fVal := field.(type) {
	case nil:
		return "", nil
	case string:
		if col.Kind == KindDecimal {
			return "", fmt.Errorf("unsupported decimal encoding for %s", col.Name)
		}
		return fVal, nil
	case int32:
		switch col.Kind {
		case KindDate:
			return common.DateFromDays(fVal).String(), nil
		case KindDecimal:
			return scaledToString(int64(fVal), col.Scale)
		}
		return strconv.FormatInt(int64(fVal), 10), nil
	case int64:
		if col.Kind == KindDecimal {
			return scaledToString(fVal, col.Scale)
		}
		return strconv.FormatInt(fVal, 10), nil
	case float32:
		return strconv.FormatFloat(float64(fVal), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(fVal, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(fVal), nil
	default:
		return fmt.Sprint(fVal), nil
	}
}

func scaledToString(val int64, scale int) (string, error) {
	d, err := common.DecimalFromScaled(val, scale)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}
