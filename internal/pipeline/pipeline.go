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
	crmService "github.com/wso2/customer-360-pipeline/internal/crm/service"
	exportService "github.com/wso2/customer-360-pipeline/internal/export/service"
	"github.com/wso2/customer-360-pipeline/internal/system/config"
	"github.com/wso2/customer-360-pipeline/internal/system/log"
	txService "github.com/wso2/customer-360-pipeline/internal/transactions/service"
	unificationService "github.com/wso2/customer-360-pipeline/internal/unification/service"
	"github.com/wso2/customer-360-pipeline/internal/warehouse/store"
	webService "github.com/wso2/customer-360-pipeline/internal/webactivity/service"
)

// Result summarizes a completed pipeline run.
type Result struct {
	Customers   int
	OutputPath  string
	Rejections  int
	SkippedRows int
	InvalidRows int
}

// Run executes the full batch: read and clean the three sources, merge them
// into the Customer 360 table, export the artifacts, and optionally load the
// warehouse. Any returned error is run-level; row-level problems are counted
// in the Result.
func Run(cfg *config.Config) (*Result, error) {
	logger := log.GetLogger()

	leadSet, err := crmService.GetLeadService().ReadLeads(cfg.Sources.CRM)
	if err != nil {
		return nil, err
	}
	activitySet, err := webService.GetActivityService().ReadActivity(cfg.Sources.Web)
	if err != nil {
		return nil, err
	}
	txSet, err := txService.GetTransactionService().ReadTransactions(cfg.Sources.Transactions)
	if err != nil {
		return nil, err
	}

	records := unificationService.GetMergeService().Merge(unificationService.MergeInput{
		Leads:        leadSet.Leads,
		Activity:     activitySet.Summaries,
		Transactions: txSet.Summaries,
	})
	logger.Info("Sources merged", log.Int("customers", len(records)))

	exporter := exportService.GetExportService()
	outputPath, err := exporter.ExportCustomer360(records, cfg.Output.Directory)
	if err != nil {
		return nil, err
	}
	if err := exporter.WriteRejectLog(txSet.Rejections, cfg.Output.Directory); err != nil {
		return nil, err
	}
	if err := exporter.WriteRunSummary(cfg.Output.Directory); err != nil {
		return nil, err
	}

	if cfg.Warehouse.Enabled {
		db, err := store.Connect(cfg.Warehouse)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		if err := store.NewCustomerStore(db).ReplaceAll(records); err != nil {
			return nil, err
		}
		logger.Info("Warehouse loaded", log.Int("rows", len(records)))
	}

	return &Result{
		Customers:   len(records),
		OutputPath:  outputPath,
		Rejections:  len(txSet.Rejections),
		SkippedRows: leadSet.Malformed + activitySet.Malformed + txSet.Malformed,
		InvalidRows: leadSet.Invalid + activitySet.Invalid,
	}, nil
}
