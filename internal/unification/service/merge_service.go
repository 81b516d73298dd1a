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
	"sort"
	"strings"
	"time"

	crmModel "github.com/wso2/customer-360-pipeline/internal/crm/model"
	txModel "github.com/wso2/customer-360-pipeline/internal/transactions/model"
	"github.com/wso2/customer-360-pipeline/internal/unification/model"
	webModel "github.com/wso2/customer-360-pipeline/internal/webactivity/model"
)

// MergeInput carries the three cleaned source tables into the merge engine.
type MergeInput struct {
	Leads        []crmModel.Lead
	Activity     []webModel.ActivitySummary
	Transactions []txModel.TransactionSummary
}

type MergeServiceInterface interface {
	Merge(input MergeInput) []model.Customer360
}

// MergeService is the default implementation of the MergeServiceInterface.
type MergeService struct{}

// GetMergeService creates a new instance of MergeService.
func GetMergeService() MergeServiceInterface {

	return &MergeService{}
}

// Merge unifies the three cleaned tables into one Customer360 record per
// resolved Customer Key. The merge is a full outer join: a key present in a
// single source still yields a record, with the other sources' fields left
// at their zero values.
//
// Conflict resolution is fixed and deterministic:
//   - Customer Key: normalized email when known for the identity, otherwise
//     the canonical UUID string. The alias index maps UUIDs to emails using
//     every record that carries both, sources consulted in precedence order
//     (CRM, transactions, web), first binding wins.
//   - Within one source, the record with the latest source timestamp
//     survives; ties keep the first-encountered record.
//   - Across sources, a non-empty value from a higher-precedence source
//     (CRM > transactions > web) is never overwritten.
func (ms *MergeService) Merge(input MergeInput) []model.Customer360 {
	aliases := buildAliasIndex(input)

	leads := make(map[string]crmModel.Lead)
	for _, lead := range input.Leads {
		key := aliases.resolve(lead.Email, lead.UserUUID)
		if key == "" {
			continue
		}
		existing, seen := leads[key]
		if !seen || laterThan(lead.LeadTS, existing.LeadTS) {
			leads[key] = lead
		}
	}

	activity := make(map[string]webModel.ActivitySummary)
	for _, summary := range input.Activity {
		key := aliases.resolve(summary.Email, summary.UserUUID)
		if key == "" {
			continue
		}
		existing, seen := activity[key]
		if !seen || laterThan(summary.LastSeenTS, existing.LastSeenTS) {
			activity[key] = summary
		}
	}

	transactions := make(map[string]txModel.TransactionSummary)
	for _, summary := range input.Transactions {
		key := aliases.resolve("", summary.UserUUID)
		if key == "" {
			continue
		}
		existing, seen := transactions[key]
		if !seen || laterThan(summary.LastTransactionTS, existing.LastTransactionTS) {
			transactions[key] = summary
		}
	}

	keys := make(map[string]bool)
	for key := range leads {
		keys[key] = true
	}
	for key := range activity {
		keys[key] = true
	}
	for key := range transactions {
		keys[key] = true
	}

	sortedKeys := make([]string, 0, len(keys))
	for key := range keys {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	records := make([]model.Customer360, 0, len(sortedKeys))
	for _, key := range sortedKeys {
		record := model.Customer360{CustomerKey: key}

		lead, hasLead := leads[key]
		web, hasWeb := activity[key]
		tx, hasTx := transactions[key]

		if hasLead {
			record.UserUUID = lead.UserUUID
			record.Email = lead.Email
			record.FirstName = lead.FirstName
			record.LastName = lead.LastName
			record.LeadTS = lead.LeadTS
		}
		if hasTx {
			if record.UserUUID == "" {
				record.UserUUID = tx.UserUUID
			}
			record.TotalSpent = tx.TotalSpent
			record.TransactionsCount = tx.TransactionsCount
			record.LastTransactionTS = tx.LastTransactionTS
		}
		if hasWeb {
			if record.UserUUID == "" {
				record.UserUUID = web.UserUUID
			}
			if record.Email == "" {
				record.Email = web.Email
			}
			record.TotalPageViews = web.TotalPageViews
			record.LastSeenTS = web.LastSeenTS
		}

		records = append(records, record)
	}
	return records
}

// aliasIndex resolves a record's Customer Key from its email or UUID.
type aliasIndex struct {
	uuidToEmail map[string]string
}

// buildAliasIndex links UUIDs to emails using every record carrying both,
// consulting sources in precedence order so the binding is deterministic.
func buildAliasIndex(input MergeInput) aliasIndex {
	index := aliasIndex{uuidToEmail: make(map[string]string)}
	bind := func(uuid, email string) {
		if uuid == "" || email == "" {
			return
		}
		if _, bound := index.uuidToEmail[uuid]; !bound {
			index.uuidToEmail[uuid] = email
		}
	}
	for _, lead := range input.Leads {
		bind(lead.UserUUID, lead.Email)
	}
	for _, summary := range input.Activity {
		bind(summary.UserUUID, summary.Email)
	}
	return index
}

// resolve returns the Customer Key for an email/UUID pair, or the empty
// string when the record carries no identity at all. The alias binding of a
// UUID outranks the record's own email so that sources disagreeing on the
// email still land on one customer.
func (ai aliasIndex) resolve(email, userUUID string) string {
	if userUUID != "" {
		if aliased, ok := ai.uuidToEmail[userUUID]; ok {
			return aliased
		}
	}
	if email != "" {
		return email
	}
	if userUUID == "" {
		return ""
	}
	return strings.ToLower(userUUID)
}

// laterThan reports whether a is strictly after b, nil sorting first.
func laterThan(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
