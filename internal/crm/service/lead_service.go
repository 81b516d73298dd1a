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
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/wso2/customer-360-pipeline/internal/crm/model"
	"github.com/wso2/customer-360-pipeline/internal/system/constants"
	errors2 "github.com/wso2/customer-360-pipeline/internal/system/errors"
	"github.com/wso2/customer-360-pipeline/internal/system/log"
	"github.com/wso2/customer-360-pipeline/internal/system/utils"
)

type LeadServiceInterface interface {
	ReadLeads(path string) (model.LeadSet, error)
}

// LeadService is the default implementation of the LeadServiceInterface.
type LeadService struct{}

// GetLeadService creates a new instance of LeadService.
func GetLeadService() LeadServiceInterface {

	return &LeadService{}
}

// ReadLeads parses, cleans and deduplicates the CRM leads CSV. One lead
// survives per customer identity: the one with the latest lead timestamp,
// first-encountered row winning ties.
func (ls *LeadService) ReadLeads(path string) (model.LeadSet, error) {
	logger := log.GetLogger()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.LeadSet{}, errors2.NewRunError(errors2.InputNotFound, pkgerrors.Wrap(err, "crm leads file"))
		}
		return model.LeadSet{}, errors2.NewRunError(errors2.UnreadableFormat, pkgerrors.Wrap(err, "crm leads file"))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return model.LeadSet{}, errors2.NewRunError(errors2.UnreadableFormat, pkgerrors.Wrap(err, "crm header"))
	}
	columns := make(map[string]int)
	for i, name := range header {
		columns[utils.NormalizeHeader(name)] = i
	}

	set := model.LeadSet{}
	best := make(map[string]model.Lead)
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

		lead, ok := cleanLeadRow(row, columns)
		if !ok {
			set.Invalid++
			continue
		}

		key := lead.Email
		if key == "" {
			key = lead.UserUUID
		}

		existing, seen := best[key]
		if !seen {
			best[key] = lead
			order = append(order, key)
			continue
		}
		if laterThan(lead.LeadTS, existing.LeadTS) {
			best[key] = lead
		}
	}

	for _, key := range order {
		set.Leads = append(set.Leads, best[key])
	}

	logger.Info("CRM leads cleaned",
		log.Int("leads", len(set.Leads)),
		log.Int("malformed_rows", set.Malformed),
		log.Int("invalid_rows", set.Invalid))
	return set, nil
}

// cleanLeadRow normalizes a single CRM row. Returns false when the row
// carries no usable customer identity.
func cleanLeadRow(row []string, columns map[string]int) (model.Lead, bool) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		value := row[idx]
		if utils.IsNull(value) {
			return ""
		}
		return value
	}

	lead := model.Lead{
		UserUUID: utils.NormalizeUUID(cell("user_uuid")),
		Email:    utils.CleanEmail(cell("email")),
	}

	first := cell("first_name")
	last := cell("last_name")
	if first == "" && last == "" {
		if full := cell("name"); full != "" {
			lead.FirstName, lead.LastName = utils.SplitName(full)
		}
	} else {
		lead.FirstName = utils.ProperCase(first)
		lead.LastName = utils.ProperCase(last)
	}

	for _, col := range constants.LeadTimestampColumns {
		if _, ok := columns[col]; !ok {
			continue
		}
		lead.LeadTS = utils.ParseTimestamp(cell(col))
		break
	}

	if lead.Email == "" && lead.UserUUID == "" {
		return model.Lead{}, false
	}
	return lead, true
}

// laterThan reports whether a is strictly after b, a nil timestamp sorting
// before any parsed one.
func laterThan(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
