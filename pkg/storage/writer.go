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
	"strconv"
)

// ResultSet yields (nation, revenue) pairs in nation order.
type ResultSet interface {
	Each(fun func(nation string, revenue float64) bool)
}

// FormatRevenue matches a default C++ ostream: %g with precision
// significant digits. A negative precision gives the shortest decimal
// form that round trips, never in exponent notation.
func FormatRevenue(revenue float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(revenue, 'f', -1, 64)
	}
	if precision == 0 {
		precision = 1
	}
	return strconv.FormatFloat(revenue, 'g', precision, 64)
}

func WriteResultTo(w io.Writer, res ResultSet, needHeadline bool, precision int) error {
	bw := bufio.NewWriter(w)
	if needHeadline {
		if _, err := bw.WriteString("#n_name|revenue\n"); err != nil {
			return err
		}
	}
	var err error
	res.Each(func(nation string, revenue float64) bool {
		_, err = fmt.Fprintf(bw, "%s|%s\n", nation, FormatRevenue(revenue, precision))
		return err == nil
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

func WriteResult(path string, res ResultSet, needHeadline bool, precision int) (err error) {
	resFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open result file: %w", err)
	}
	defer func() {
		if cerr := resFile.Close(); err == nil {
			err = cerr
		}
	}()
	err = WriteResultTo(resFile, res, needHeadline, precision)
	if err != nil {
		return fmt.Errorf("write result file %s: %w", path, err)
	}
	return resFile.Sync()
}
