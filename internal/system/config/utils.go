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

package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultConfig returns the built-in configuration used when no config file
// is given. Paths match the conventional source file names.
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			CRM:          "crm_leads.csv",
			Web:          "web_activity.json",
			Transactions: "transactions.txt",
		},
		Output: OutputConfig{
			Directory: ".",
		},
		Log: LogConfig{
			LogLevel: "INFO",
		},
		Warehouse: WarehouseConfig{
			SSLMode: "disable",
		},
	}
}

// LoadConfig reads a YAML configuration file, expanding ${ENV_VAR}
// references before unmarshalling. Unset fields keep their defaults.
func LoadConfig(filePath string) (*Config, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
