/*
 * Copyright (c) 2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package money

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Amount is an exact decimal monetary value. Transaction amounts are summed
// with decimal arithmetic so repeated runs produce identical totals.
type Amount struct {
	value apd.Decimal
}

// Parse converts a raw amount string into an Amount.
func Parse(s string) (Amount, error) {
	var d apd.Decimal
	_, _, err := d.SetString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount: %w", err)
	}
	return Amount{value: d}, nil
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{}
}

func (a Amount) String() string {
	return a.value.String()
}

// IsPositive reports whether a is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.value.Sign() > 0
}

// Add returns the sum of a and other.
func (a Amount) Add(other Amount) Amount {
	var result apd.Decimal
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Add(&result, &a.value, &other.value)
	return Amount{value: result}
}

// Float64 returns the amount as a float64 for columnar export.
func (a Amount) Float64() float64 {
	f, _ := a.value.Float64()
	return f
}

// Cmp compares a against other.
func (a Amount) Cmp(other Amount) int {
	return a.value.Cmp(&other.value)
}
