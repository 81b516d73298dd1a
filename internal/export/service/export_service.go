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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	pkgerrors "github.com/pkg/errors"
	"github.com/wso2/customer-360-pipeline/internal/system/constants"
	errors2 "github.com/wso2/customer-360-pipeline/internal/system/errors"
	"github.com/wso2/customer-360-pipeline/internal/system/log"
	txModel "github.com/wso2/customer-360-pipeline/internal/transactions/model"
	"github.com/wso2/customer-360-pipeline/internal/unification/model"
)

type ExportServiceInterface interface {
	ExportCustomer360(records []model.Customer360, outDir string) (string, error)
	WriteRejectLog(rejections []txModel.Rejection, outDir string) error
	WriteRunSummary(outDir string) error
}

// ExportService is the default implementation of the ExportServiceInterface.
type ExportService struct{}

// GetExportService creates a new instance of ExportService.
func GetExportService() ExportServiceInterface {

	return &ExportService{}
}

// exportRow is the flat columnar schema of the Customer 360 table.
// Timestamps are exported as RFC 3339 strings, empty when unknown.
type exportRow struct {
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

// ExportCustomer360 writes the merged table as Parquet, falling back to CSV
// when the Parquet write fails. Returns the path of the file written.
func (es *ExportService) ExportCustomer360(records []model.Customer360, outDir string) (string, error) {
	logger := log.GetLogger()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", errors2.NewRunError(errors2.WriteError, pkgerrors.Wrap(err, "output directory"))
	}

	rows := make([]exportRow, len(records))
	for i, record := range records {
		rows[i] = toExportRow(record)
	}

	parquetPath := filepath.Join(outDir, constants.ParquetFileName)
	err := writeParquet(rows, parquetPath)
	if err == nil {
		logger.Info("Customer 360 table exported", log.String("path", parquetPath), log.Int("rows", len(rows)))
		return parquetPath, nil
	}
	logger.Warn("Parquet export failed, falling back to CSV", log.Error(err))
	_ = os.Remove(parquetPath)

	csvPath := filepath.Join(outDir, constants.CSVFallbackName)
	if err := writeCSV(rows, csvPath); err != nil {
		return "", errors2.NewRunError(errors2.WriteError, err)
	}
	logger.Info("Customer 360 table exported", log.String("path", csvPath), log.Int("rows", len(rows)))
	return csvPath, nil
}

// WriteRejectLog writes the rejected transactions as a TSV of id and reason.
func (es *ExportService) WriteRejectLog(rejections []txModel.Rejection, outDir string) error {
	path := filepath.Join(outDir, constants.RejectLogFileName)
	file, err := os.Create(path)
	if err != nil {
		return errors2.NewRunError(errors2.WriteError, pkgerrors.Wrap(err, "reject log"))
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, "transaction_id\trejection_reason"); err != nil {
		return errors2.NewRunError(errors2.WriteError, err)
	}
	for _, rejection := range rejections {
		if _, err := fmt.Fprintf(file, "%s\t%s\n", rejection.TransactionID, rejection.Reason); err != nil {
			return errors2.NewRunError(errors2.WriteError, err)
		}
	}
	return nil
}

// WriteRunSummary writes the minimal run summary into the output directory.
func (es *ExportService) WriteRunSummary(outDir string) error {
	path := filepath.Join(outDir, constants.RunSummaryName)
	content := "Customer 360 ETL executed successfully.\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors2.NewRunError(errors2.WriteError, pkgerrors.Wrap(err, "run summary"))
	}
	return nil
}

func toExportRow(record model.Customer360) exportRow {
	return exportRow{
		CustomerKey:       record.CustomerKey,
		UserUUID:          record.UserUUID,
		Email:             record.Email,
		FirstName:         record.FirstName,
		LastName:          record.LastName,
		LeadTS:            formatTS(record.LeadTS),
		TotalSpent:        record.TotalSpent.Float64(),
		TransactionsCount: record.TransactionsCount,
		LastTransactionTS: formatTS(record.LastTransactionTS),
		TotalPageViews:    record.TotalPageViews,
		LastSeenTS:        formatTS(record.LastSeenTS),
	}
}

func writeParquet(rows []exportRow, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return pkgerrors.Wrap(err, "parquet file")
	}

	writer := parquet.NewGenericWriter[exportRow](file)
	if _, err := writer.Write(rows); err != nil {
		file.Close()
		return pkgerrors.Wrap(err, "parquet write")
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return pkgerrors.Wrap(err, "parquet close")
	}
	return file.Close()
}

func writeCSV(rows []exportRow, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return pkgerrors.Wrap(err, "csv file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{
		"customer_key", "user_uuid", "email", "first_name", "last_name", "lead_ts",
		"total_spent", "transactions_count", "last_transaction_ts",
		"total_page_views", "last_seen_ts",
	}
	if err := writer.Write(header); err != nil {
		return pkgerrors.Wrap(err, "csv header")
	}
	for _, row := range rows {
		record := []string{
			row.CustomerKey, row.UserUUID, row.Email, row.FirstName, row.LastName, row.LeadTS,
			strconv.FormatFloat(row.TotalSpent, 'f', -1, 64),
			strconv.FormatInt(row.TransactionsCount, 10),
			row.LastTransactionTS,
			strconv.FormatInt(row.TotalPageViews, 10),
			row.LastSeenTS,
		}
		if err := writer.Write(record); err != nil {
			return pkgerrors.Wrap(err, "csv row")
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatTS(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
