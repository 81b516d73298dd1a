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

package setup

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/wso2/customer-360-pipeline/internal/system/config"
	"github.com/wso2/customer-360-pipeline/internal/system/log"
)

const (
	warehouseUser     = "c360"
	warehousePassword = "c360pass"
	warehouseDbName   = "customer360"
)

// TestWarehouse is a throwaway Postgres warehouse for integration tests.
type TestWarehouse struct {
	Container testcontainers.Container
	DB        *sql.DB
	Config    config.WarehouseConfig
}

// SetupTestWarehouse starts a Postgres container and opens a connection to
// it. The returned Config points at the container so tests can also drive
// the store through its own connect path.
func SetupTestWarehouse(ctx context.Context) (*TestWarehouse, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     warehouseUser,
			"POSTGRES_PASSWORD": warehousePassword,
			"POSTGRES_DB":       warehouseDbName,
		},
		WaitingFor: wait.ForListeningPort("5432/tcp"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, err
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432")

	cfg := config.WarehouseConfig{
		Enabled:  true,
		Host:     host,
		Port:     port.Port(),
		User:     warehouseUser,
		Password: warehousePassword,
		DbName:   warehouseDbName,
		SSLMode:  "disable",
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DbName)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		container.Terminate(ctx)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		container.Terminate(ctx)
		return nil, err
	}

	log.GetLogger().Info("Warehouse container started",
		log.String("host", cfg.Host), log.String("port", cfg.Port))

	return &TestWarehouse{
		Container: container,
		DB:        db,
		Config:    cfg,
	}, nil
}

// Teardown closes the connection and terminates the container.
func (tw *TestWarehouse) Teardown(ctx context.Context) {
	if tw.DB != nil {
		tw.DB.Close()
	}
	if tw.Container != nil {
		tw.Container.Terminate(ctx)
	}
}
