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

import "time"

// ActivitySummary is the per-customer aggregate of web activity events:
// total page views and the latest activity timestamp.
type ActivitySummary struct {
	UserUUID       string
	Email          string
	TotalPageViews int64
	LastSeenTS     *time.Time
}

// ActivitySet is the aggregated web activity table plus row-level counters.
type ActivitySet struct {
	Summaries []ActivitySummary
	Malformed int
	Invalid   int
}
