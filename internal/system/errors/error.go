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

import (
	goerrors "errors"
	"fmt"
)

type ErrorMessage struct {
	Code        string `json:"error_code"`
	Message     string `json:"error_message"`
	Description string `json:"error_description,omitempty"`
}

// RunError aborts the whole pipeline run. Missing inputs, unreadable
// formats and unwritable output destinations fall into this tier.
type RunError struct {
	ErrorMessage
	Err error
}

// RecordError marks a single row as invalid. Rows carrying a RecordError
// are skipped and counted, never fatal.
type RecordError struct {
	ErrorMessage
	Reason string
}

func (e *RunError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewRunError(msg ErrorMessage, cause error) *RunError {
	return &RunError{
		ErrorMessage: msg,
		Err:          cause,
	}
}

func NewRecordError(msg ErrorMessage, reason string) *RecordError {
	return &RecordError{
		ErrorMessage: msg,
		Reason:       reason,
	}
}

// IsRunError reports whether err is (or wraps) a RunError.
func IsRunError(err error) bool {
	var runErr *RunError
	return goerrors.As(err, &runErr)
}
