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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wso2/customer-360-pipeline/internal/system/constants"
	errors2 "github.com/wso2/customer-360-pipeline/internal/system/errors"
	"github.com/wso2/customer-360-pipeline/internal/system/log"
	"github.com/wso2/customer-360-pipeline/internal/transactions/model"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

const testUUID = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

func writeTempTx(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func rejectionsFor(set model.TransactionSet, txID string) []string {
	var reasons []string
	for _, rejection := range set.Rejections {
		if rejection.TransactionID == txID {
			reasons = append(reasons, rejection.Reason)
		}
	}
	return reasons
}

func TestReadTransactions_MissingFile(t *testing.T) {
	_, err := GetTransactionService().ReadTransactions(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors2.IsRunError(err))
}

func TestReadTransactions_AggregatesCompletedRows(t *testing.T) {
	path := writeTempTx(t, "transaction_id|user_uuid|amount|status|timestamp\n"+
		"t1|"+testUUID+"|10.50|completed|2024-01-01T00:00:00Z\n"+
		"t2|"+testUUID+"|0.25|COMPLETED|2024-03-01T00:00:00Z\n")

	set, err := GetTransactionService().ReadTransactions(path)
	require.NoError(t, err)
	require.Len(t, set.Summaries, 1)

	summary := set.Summaries[0]
	assert.Equal(t, testUUID, summary.UserUUID)
	assert.Equal(t, "10.75", summary.TotalSpent.String())
	assert.Equal(t, int64(2), summary.TransactionsCount)
	require.NotNil(t, summary.LastTransactionTS)
	assert.Equal(t, 3, int(summary.LastTransactionTS.Month()))
}

func TestReadTransactions_RejectsInvalidUUID(t *testing.T) {
	path := writeTempTx(t, "transaction_id|user_uuid|amount|status\n"+
		"t1|nope|10|completed\n")

	set, err := GetTransactionService().ReadTransactions(path)
	require.NoError(t, err)
	assert.Empty(t, set.Summaries)
	assert.Equal(t, []string{constants.RejectInvalidUUID}, rejectionsFor(set, "t1"))
}

func TestReadTransactions_RejectsNonPositiveAmount(t *testing.T) {
	path := writeTempTx(t, "transaction_id|user_uuid|amount|status\n"+
		"t1|"+testUUID+"|0|completed\n"+
		"t2|"+testUUID+"|-5|completed\n"+
		"t3|"+testUUID+"|abc|completed\n")

	set, err := GetTransactionService().ReadTransactions(path)
	require.NoError(t, err)
	assert.Empty(t, set.Summaries)
	assert.Equal(t, []string{constants.RejectNonPositiveAmount}, rejectionsFor(set, "t1"))
	assert.Equal(t, []string{constants.RejectNonPositiveAmount}, rejectionsFor(set, "t2"))
	assert.Equal(t, []string{constants.RejectNonPositiveAmount}, rejectionsFor(set, "t3"))
}

func TestReadTransactions_RejectsNonCompletedStatus(t *testing.T) {
	path := writeTempTx(t, "transaction_id|user_uuid|amount|status\n"+
		"t1|"+testUUID+"|10|pending\n")

	set, err := GetTransactionService().ReadTransactions(path)
	require.NoError(t, err)
	assert.Empty(t, set.Summaries)
	assert.Equal(t, []string{constants.RejectInvalidStatus}, rejectionsFor(set, "t1"))
}

func TestReadTransactions_RowFailingSeveralChecksListedPerCheck(t *testing.T) {
	path := writeTempTx(t, "transaction_id|user_uuid|amount|status\n"+
		"t1|nope|-1|pending\n")

	set, err := GetTransactionService().ReadTransactions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		constants.RejectInvalidUUID,
		constants.RejectNonPositiveAmount,
		constants.RejectInvalidStatus,
	}, rejectionsFor(set, "t1"))
}

func TestReadTransactions_MissingTransactionIDPlaceholder(t *testing.T) {
	path := writeTempTx(t, "transaction_id|user_uuid|amount|status\n"+
		"|nope|10|completed\n")

	set, err := GetTransactionService().ReadTransactions(path)
	require.NoError(t, err)
	require.Len(t, set.Rejections, 1)
	assert.Equal(t, constants.MissingTransactionID, set.Rejections[0].TransactionID)
}

func TestReadTransactions_ExactDecimalTotals(t *testing.T) {
	path := writeTempTx(t, "transaction_id|user_uuid|amount|status\n"+
		"t1|"+testUUID+"|0.1|completed\n"+
		"t2|"+testUUID+"|0.2|completed\n")

	set, err := GetTransactionService().ReadTransactions(path)
	require.NoError(t, err)
	require.Len(t, set.Summaries, 1)
	assert.Equal(t, "0.3", set.Summaries[0].TotalSpent.String())
}
