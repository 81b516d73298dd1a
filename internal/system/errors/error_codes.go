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

package errors

const errorPrefix = "C360-"

var (
	// Run-level error codes

	InputNotFound = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Input file not found.",
	}

	UnreadableFormat = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Input file could not be parsed.",
	}

	WriteError = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Output destination is not writable.",
	}

	ConfigLoadFailed = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while loading pipeline configuration.",
	}

	WarehouseConnectFailed = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Unable to connect to the warehouse database.",
	}

	WarehouseLoadFailed = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while loading rows into the warehouse.",
	}

	// Record-level error codes

	InvalidUUID = ErrorMessage{
		Code:    errorPrefix + "16001",
		Message: "Value is not a valid UUID.",
	}

	NonPositiveAmount = ErrorMessage{
		Code:    errorPrefix + "16002",
		Message: "Transaction amount must be positive.",
	}

	InvalidStatus = ErrorMessage{
		Code:    errorPrefix + "16003",
		Message: "Transaction status is not completed.",
	}

	MissingCustomerKey = ErrorMessage{
		Code:    errorPrefix + "16004",
		Message: "Record carries no usable customer identity.",
	}

	MalformedRow = ErrorMessage{
		Code:    errorPrefix + "16005",
		Message: "Row could not be parsed.",
	}
)
