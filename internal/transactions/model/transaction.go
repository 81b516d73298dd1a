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

package model

import (
	"time"

	"github.com/wso2/customer-360-pipeline/internal/money"
)

// TransactionSummary is the per-customer aggregate of completed
// transactions.
type TransactionSummary struct {
	UserUUID          string
	TotalSpent        money.Amount
	TransactionsCount int64
	LastTransactionTS *time.Time
}

// Rejection records one failed validation check for the reject log. A row
// failing several checks produces one Rejection per failed check.
type Rejection struct {
	TransactionID string
	Reason        string
}

// TransactionSet is the aggregated transaction table plus the rejections
// and row-level counters.
type TransactionSet struct {
	Summaries  []TransactionSummary
	Rejections []Rejection
	Malformed  int
}
