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

package constants

// Source identifiers, in merge precedence order. A non-empty value from an
// earlier source is never overwritten by a later one.
const (
	SourceCRM          = "crm"
	SourceTransactions = "transactions"
	SourceWeb          = "web"
)

// SourcePrecedence maps each source to its merge priority (lower wins).
var SourcePrecedence = map[string]int{
	SourceCRM:          0,
	SourceTransactions: 1,
	SourceWeb:          2,
}

// Transaction rejection reasons written to the reject log.
const (
	RejectInvalidUUID       = "INVALID_UUID"
	RejectNonPositiveAmount = "NON_POSITIVE_AMOUNT"
	RejectInvalidStatus     = "INVALID_STATUS"
)

// StatusCompleted is the only transaction status accepted into aggregates.
const StatusCompleted = "completed"

// MissingTransactionID substitutes for an absent transaction_id in the
// reject log.
const MissingTransactionID = "<missing>"

// LeadTimestampColumns are the CRM columns probed, in order, for the lead
// timestamp used by deduplication.
var LeadTimestampColumns = []string{"created_at", "created", "signup_date", "updated_at", "timestamp"}

// TransactionTimestampColumns are the transaction columns probed, in order,
// for the transaction timestamp.
var TransactionTimestampColumns = []string{"timestamp", "created_at", "tx_ts"}

// NullSentinels are raw cell values treated as absent.
var NullSentinels = map[string]bool{
	"":     true,
	"null": true,
	"NaN":  true,
}

// TimestampLayouts are the accepted input timestamp formats, probed in order.
var TimestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// Output artifact names inside the output directory.
const (
	ParquetFileName   = "customer_360.parquet"
	CSVFallbackName   = "customer_360.csv"
	RejectLogFileName = "rejected_transactions.log"
	RunSummaryName    = "README.md"
)

// WarehouseTable is the warehouse table holding the exported rows.
const WarehouseTable = "customer_360"
