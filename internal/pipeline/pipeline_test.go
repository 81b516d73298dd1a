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

package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/customer-360-pipeline/internal/system/config"
	"github.com/wso2/customer-360-pipeline/internal/system/constants"
	errors2 "github.com/wso2/customer-360-pipeline/internal/system/errors"
	"github.com/wso2/customer-360-pipeline/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

const testUUID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

// exportedRow mirrors the exporter's columnar schema for read-back.
type exportedRow struct {
	CustomerKey       string  `parquet:"customer_key"`
	UserUUID          string  `parquet:"user_uuid"`
	Email             string  `parquet:"email"`
	FirstName         string  `parquet:"first_name"`
	LastName          string  `parquet:"last_name"`
	LeadTS            string  `parquet:"lead_ts"`
	TotalSpent        float64 `parquet:"total_spent"`
	TransactionsCount int64   `parquet:"transactions_count"`
	LastTransactionTS string  `parquet:"last_transaction_ts"`
	TotalPageViews    int64   `parquet:"total_page_views"`
	LastSeenTS        string  `parquet:"last_seen_ts"`
}

func writeFixtures(t *testing.T, dir string) config.SourcesConfig {
	t.Helper()

	crm := filepath.Join(dir, "crm_leads.csv")
	require.NoError(t, os.WriteFile(crm, []byte(
		"user_uuid,email,first_name,last_name,created_at\n"+
			testUUID+",Jane@Example.com,jane,doe,2024-01-01T00:00:00Z\n"+
			",bob@y.com,bob,,2024-02-01T00:00:00Z\n"+
			",broken-email-and-no-uuid,,,\n"), 0o644))

	web := filepath.Join(dir, "web_activity.json")
	require.NoError(t, os.WriteFile(web, []byte(
		`{"user_uuid":"`+testUUID+`","page_view_count":3,"last_seen_ts":"2024-03-01T00:00:00Z"}`+"\n"+
			`{"user_uuid":"`+testUUID+`","page_view_count":4,"last_seen_ts":"2024-03-02T00:00:00Z"}`+"\n"+
			`{"email":"web.only@z.com","page_view_count":2}`+"\n"+
			"this line is not json\n"), 0o644))

	tx := filepath.Join(dir, "transactions.txt")
	require.NoError(t, os.WriteFile(tx, []byte(
		"transaction_id|user_uuid|amount|status|timestamp\n"+
			"t1|"+testUUID+"|10.00|completed|2024-01-15T00:00:00Z\n"+
			"t2|"+testUUID+"|2.50|completed|2024-02-15T00:00:00Z\n"+
			"t3|bad-uuid|5.00|completed|2024-02-16T00:00:00Z\n"+
			"t4|"+testUUID+"|-1|completed|2024-02-17T00:00:00Z\n"), 0o644))

	return config.SourcesConfig{CRM: crm, Web: web, Transactions: tx}
}

func runFixture(t *testing.T, outDir string) (*Result, []exportedRow) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Sources = writeFixtures(t, t.TempDir())
	cfg.Output.Directory = outDir

	result, err := Run(cfg)
	require.NoError(t, err)

	rows, err := parquet.ReadFile[exportedRow](filepath.Join(outDir, constants.ParquetFileName))
	require.NoError(t, err)
	return result, rows
}

func TestRun_OneRowPerCustomerKey(t *testing.T) {
	result, rows := runFixture(t, t.TempDir())

	assert.Equal(t, 3, result.Customers)
	require.Len(t, rows, 3)

	seen := make(map[string]bool)
	for _, row := range rows {
		assert.False(t, seen[row.CustomerKey], "duplicate key %s", row.CustomerKey)
		seen[row.CustomerKey] = true
	}
	assert.True(t, seen["jane@example.com"])
	assert.True(t, seen["bob@y.com"])
	assert.True(t, seen["web.only@z.com"])
}

func TestRun_MergedCustomerCarriesAllSources(t *testing.T) {
	_, rows := runFixture(t, t.TempDir())

	var jane *exportedRow
	for i := range rows {
		if rows[i].CustomerKey == "jane@example.com" {
			jane = &rows[i]
		}
	}
	require.NotNil(t, jane)

	assert.Equal(t, testUUID, jane.UserUUID)
	assert.Equal(t, "Jane", jane.FirstName)
	assert.Equal(t, "Doe", jane.LastName)
	assert.Equal(t, int64(7), jane.TotalPageViews)
	assert.Equal(t, int64(2), jane.TransactionsCount)
	assert.InDelta(t, 12.5, jane.TotalSpent, 1e-9)
	assert.Equal(t, "2024-03-02T00:00:00Z", jane.LastSeenTS)
	assert.Equal(t, "2024-02-15T00:00:00Z", jane.LastTransactionTS)
}

func TestRun_WebOnlyCustomerHasEmptyCRMAndTransactionFields(t *testing.T) {
	_, rows := runFixture(t, t.TempDir())

	var webOnly *exportedRow
	for i := range rows {
		if rows[i].CustomerKey == "web.only@z.com" {
			webOnly = &rows[i]
		}
	}
	require.NotNil(t, webOnly)

	assert.Empty(t, webOnly.FirstName)
	assert.Empty(t, webOnly.UserUUID)
	assert.Zero(t, webOnly.TransactionsCount)
	assert.Zero(t, webOnly.TotalSpent)
	assert.Equal(t, int64(2), webOnly.TotalPageViews)
}

func TestRun_RejectLogListsInvalidTransactions(t *testing.T) {
	outDir := t.TempDir()
	result, _ := runFixture(t, outDir)

	assert.Equal(t, 2, result.Rejections)

	content, err := os.ReadFile(filepath.Join(outDir, constants.RejectLogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "t3\tINVALID_UUID")
	assert.Contains(t, string(content), "t4\tNON_POSITIVE_AMOUNT")
}

func TestRun_WritesRunSummary(t *testing.T) {
	outDir := t.TempDir()
	runFixture(t, outDir)

	_, err := os.Stat(filepath.Join(outDir, constants.RunSummaryName))
	assert.NoError(t, err)
}

func TestRun_Idempotent(t *testing.T) {
	sources := writeFixtures(t, t.TempDir())

	run := func(outDir string) []byte {
		cfg := config.DefaultConfig()
		cfg.Sources = sources
		cfg.Output.Directory = outDir
		_, err := Run(cfg)
		require.NoError(t, err)

		rows, err := parquet.ReadFile[exportedRow](filepath.Join(outDir, constants.ParquetFileName))
		require.NoError(t, err)
		serialized := ""
		for _, row := range rows {
			serialized += row.CustomerKey + "|" + row.Email + "|" + row.LastSeenTS + "\n"
		}
		reject, err := os.ReadFile(filepath.Join(outDir, constants.RejectLogFileName))
		require.NoError(t, err)
		return append([]byte(serialized), reject...)
	}

	first := run(t.TempDir())
	second := run(t.TempDir())
	assert.Equal(t, first, second)
}

func TestRun_MissingInputAborts(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Sources = writeFixtures(t, t.TempDir())
	cfg.Sources.CRM = filepath.Join(t.TempDir(), "missing.csv")
	cfg.Output.Directory = t.TempDir()

	_, err := Run(cfg)
	require.Error(t, err)
	assert.True(t, errors2.IsRunError(err))
}
