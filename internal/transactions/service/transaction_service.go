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
	"encoding/csv"
	"io"
	"os"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/wso2/customer-360-pipeline/internal/money"
	"github.com/wso2/customer-360-pipeline/internal/system/constants"
	errors2 "github.com/wso2/customer-360-pipeline/internal/system/errors"
	"github.com/wso2/customer-360-pipeline/internal/system/log"
	"github.com/wso2/customer-360-pipeline/internal/system/utils"
	"github.com/wso2/customer-360-pipeline/internal/transactions/model"
)

type TransactionServiceInterface interface {
	ReadTransactions(path string) (model.TransactionSet, error)
}

// TransactionService is the default implementation of the TransactionServiceInterface.
type TransactionService struct{}

// GetTransactionService creates a new instance of TransactionService.
func GetTransactionService() TransactionServiceInterface {

	return &TransactionService{}
}

// ReadTransactions parses the pipe-delimited transaction file, validates
// every row and aggregates the valid ones per customer. Each failed check
// yields a Rejection for the reject log; a row enters the aggregates only
// when all checks pass.
func (ts *TransactionService) ReadTransactions(path string) (model.TransactionSet, error) {
	logger := log.GetLogger()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.TransactionSet{}, errors2.NewRunError(errors2.InputNotFound, pkgerrors.Wrap(err, "transactions file"))
		}
		return model.TransactionSet{}, errors2.NewRunError(errors2.UnreadableFormat, pkgerrors.Wrap(err, "transactions file"))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '|'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return model.TransactionSet{}, errors2.NewRunError(errors2.UnreadableFormat, pkgerrors.Wrap(err, "transactions header"))
	}
	columns := make(map[string]int)
	for i, name := range header {
		columns[utils.NormalizeHeader(name)] = i
	}

	set := model.TransactionSet{}
	totals := make(map[string]*model.TransactionSummary)
	var order []string

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			set.Malformed++
			continue
		}

		cell := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		txID := strings.TrimSpace(cell("transaction_id"))
		if txID == "" {
			txID = constants.MissingTransactionID
		}

		userUUID := utils.NormalizeUUID(cell("user_uuid"))
		amount, amountErr := money.Parse(cell("amount"))
		status := strings.ToLower(strings.TrimSpace(cell("status")))

		checks := validateTransaction(userUUID, amount, amountErr, status)
		if len(checks) > 0 {
			for _, check := range checks {
				set.Rejections = append(set.Rejections, model.Rejection{TransactionID: txID, Reason: check.Reason})
			}
			continue
		}

		summary, seen := totals[userUUID]
		if !seen {
			summary = &model.TransactionSummary{UserUUID: userUUID, TotalSpent: money.Zero()}
			totals[userUUID] = summary
			order = append(order, userUUID)
		}
		summary.TotalSpent = summary.TotalSpent.Add(amount)
		summary.TransactionsCount++
		if txTS := transactionTimestamp(cell, columns); txTS != nil {
			if summary.LastTransactionTS == nil || txTS.After(*summary.LastTransactionTS) {
				summary.LastTransactionTS = txTS
			}
		}
	}

	for _, key := range order {
		set.Summaries = append(set.Summaries, *totals[key])
	}

	logger.Info("Transactions aggregated",
		log.Int("customers", len(set.Summaries)),
		log.Int("rejections", len(set.Rejections)),
		log.Int("malformed_rows", set.Malformed))
	return set, nil
}

// validateTransaction runs the three validation checks on a row. Every
// failed check yields its own RecordError; the reject log lists one reason
// per failed check.
func validateTransaction(userUUID string, amount money.Amount, amountErr error, status string) []*errors2.RecordError {
	var failed []*errors2.RecordError
	if userUUID == "" {
		failed = append(failed, errors2.NewRecordError(errors2.InvalidUUID, constants.RejectInvalidUUID))
	}
	if amountErr != nil || !amount.IsPositive() {
		failed = append(failed, errors2.NewRecordError(errors2.NonPositiveAmount, constants.RejectNonPositiveAmount))
	}
	if status != constants.StatusCompleted {
		failed = append(failed, errors2.NewRecordError(errors2.InvalidStatus, constants.RejectInvalidStatus))
	}
	return failed
}

// transactionTimestamp probes the candidate timestamp columns in order.
func transactionTimestamp(cell func(string) string, columns map[string]int) *time.Time {
	for _, col := range constants.TransactionTimestampColumns {
		if _, ok := columns[col]; !ok {
			continue
		}
		return utils.ParseTimestamp(cell(col))
	}
	return nil
}
