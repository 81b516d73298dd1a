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

// Customer360 is the unified per-customer record. Exactly one exists per
// Customer Key; it is immutable once built by the merge engine.
type Customer360 struct {
	CustomerKey string

	// Identity and contact fields, CRM authoritative.
	UserUUID  string
	Email     string
	FirstName string
	LastName  string
	LeadTS    *time.Time

	// Purchase fields, transactions authoritative.
	TotalSpent        money.Amount
	TransactionsCount int64
	LastTransactionTS *time.Time

	// Engagement fields, web activity authoritative.
	TotalPageViews int64
	LastSeenTS     *time.Time
}
