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

package store

import (
	"database/sql"
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/wso2/customer-360-pipeline/internal/system/config"
	"github.com/wso2/customer-360-pipeline/internal/system/constants"
	errors2 "github.com/wso2/customer-360-pipeline/internal/system/errors"
	"github.com/wso2/customer-360-pipeline/internal/unification/model"
)

// CustomerStore loads the merged Customer 360 table into the warehouse.
type CustomerStore struct {
	DB *sql.DB
}

// NewCustomerStore creates a store around an open database handle.
func NewCustomerStore(db *sql.DB) *CustomerStore {
	return &CustomerStore{DB: db}
}

// Connect opens the warehouse connection described by the configuration.
func Connect(cfg config.WarehouseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DbName, cfg.SSLMode)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors2.NewRunError(errors2.WarehouseConnectFailed, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors2.NewRunError(errors2.WarehouseConnectFailed, err)
	}
	return db, nil
}

const createTableQuery = `
CREATE TABLE IF NOT EXISTS ` + constants.WarehouseTable + ` (
    customer_key        TEXT PRIMARY KEY,
    user_uuid           TEXT,
    email               TEXT,
    first_name          TEXT,
    last_name           TEXT,
    lead_ts             TIMESTAMPTZ,
    total_spent         NUMERIC NOT NULL DEFAULT 0,
    transactions_count  BIGINT NOT NULL DEFAULT 0,
    last_transaction_ts TIMESTAMPTZ,
    total_page_views    BIGINT NOT NULL DEFAULT 0,
    last_seen_ts        TIMESTAMPTZ
)`

const insertRowQuery = `
INSERT INTO ` + constants.WarehouseTable + ` (
    customer_key, user_uuid, email, first_name, last_name, lead_ts,
    total_spent, transactions_count, last_transaction_ts,
    total_page_views, last_seen_ts
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// ReplaceAll replaces the warehouse table contents with the given records in
// a single transaction.
func (cs *CustomerStore) ReplaceAll(records []model.Customer360) error {
	if _, err := cs.DB.Exec(createTableQuery); err != nil {
		return errors2.NewRunError(errors2.WarehouseLoadFailed, pkgerrors.Wrap(err, "create table"))
	}

	tx, err := cs.DB.Begin()
	if err != nil {
		return errors2.NewRunError(errors2.WarehouseLoadFailed, err)
	}

	if _, err := tx.Exec("DELETE FROM " + constants.WarehouseTable); err != nil {
		tx.Rollback()
		return errors2.NewRunError(errors2.WarehouseLoadFailed, pkgerrors.Wrap(err, "truncate"))
	}
	for _, record := range records {
		_, err := tx.Exec(insertRowQuery,
			record.CustomerKey,
			nullString(record.UserUUID),
			nullString(record.Email),
			nullString(record.FirstName),
			nullString(record.LastName),
			nullTime(record.LeadTS),
			record.TotalSpent.String(),
			record.TransactionsCount,
			nullTime(record.LastTransactionTS),
			record.TotalPageViews,
			nullTime(record.LastSeenTS),
		)
		if err != nil {
			tx.Rollback()
			return errors2.NewRunError(errors2.WarehouseLoadFailed, pkgerrors.Wrapf(err, "insert %s", record.CustomerKey))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors2.NewRunError(errors2.WarehouseLoadFailed, err)
	}
	return nil
}

// CountRows returns the number of rows currently in the warehouse table.
func (cs *CustomerStore) CountRows() (int, error) {
	var count int
	err := cs.DB.QueryRow("SELECT COUNT(*) FROM " + constants.WarehouseTable).Scan(&count)
	if err != nil {
		return 0, errors2.NewRunError(errors2.WarehouseLoadFailed, err)
	}
	return count, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(ts *time.Time) sql.NullTime {
	if ts == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *ts, Valid: true}
}
