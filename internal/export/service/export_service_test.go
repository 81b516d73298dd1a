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

package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/customer-360-pipeline/internal/money"
	"github.com/wso2/customer-360-pipeline/internal/system/constants"
	errors2 "github.com/wso2/customer-360-pipeline/internal/system/errors"
	"github.com/wso2/customer-360-pipeline/internal/system/log"
	txModel "github.com/wso2/customer-360-pipeline/internal/transactions/model"
	"github.com/wso2/customer-360-pipeline/internal/unification/model"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func sampleRecords(t *testing.T) []model.Customer360 {
	t.Helper()
	spent, err := money.Parse("12.34")
	require.NoError(t, err)
	return []model.Customer360{
		{
			CustomerKey:       "a@x.com",
			Email:             "a@x.com",
			FirstName:         "Jane",
			LastName:          "Doe",
			TotalSpent:        spent,
			TransactionsCount: 2,
			TotalPageViews:    5,
		},
	}
}

func TestExportCustomer360_WritesParquet(t *testing.T) {
	outDir := t.TempDir()

	path, err := GetExportService().ExportCustomer360(sampleRecords(t), outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, constants.ParquetFileName), path)

	rows, err := parquet.ReadFile[exportRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "a@x.com", rows[0].CustomerKey)
	assert.Equal(t, "Jane", rows[0].FirstName)
	assert.Equal(t, int64(2), rows[0].TransactionsCount)
	assert.InDelta(t, 12.34, rows[0].TotalSpent, 1e-9)
}

func TestExportCustomer360_EmptyTable(t *testing.T) {
	path, err := GetExportService().ExportCustomer360(nil, t.TempDir())
	require.NoError(t, err)

	rows, err := parquet.ReadFile[exportRow](path)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExportCustomer360_UnwritableDestination(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(outDir, []byte("file, not a directory"), 0o644))

	_, err := GetExportService().ExportCustomer360(sampleRecords(t), outDir)
	require.Error(t, err)
	assert.True(t, errors2.IsRunError(err))
}

func TestWriteRejectLog(t *testing.T) {
	outDir := t.TempDir()
	rejections := []txModel.Rejection{
		{TransactionID: "t1", Reason: constants.RejectInvalidUUID},
		{TransactionID: "t2", Reason: constants.RejectInvalidStatus},
	}

	require.NoError(t, GetExportService().WriteRejectLog(rejections, outDir))

	content, err := os.ReadFile(filepath.Join(outDir, constants.RejectLogFileName))
	require.NoError(t, err)
	assert.Equal(t,
		"transaction_id\trejection_reason\n"+
			"t1\tINVALID_UUID\n"+
			"t2\tINVALID_STATUS\n",
		string(content))
}

func TestWriteRejectLog_EmptyStillWritesHeader(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, GetExportService().WriteRejectLog(nil, outDir))

	content, err := os.ReadFile(filepath.Join(outDir, constants.RejectLogFileName))
	require.NoError(t, err)
	assert.Equal(t, "transaction_id\trejection_reason\n", string(content))
}

func TestWriteRunSummary(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, GetExportService().WriteRunSummary(outDir))

	content, err := os.ReadFile(filepath.Join(outDir, constants.RunSummaryName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "executed successfully")
}
