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
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	errors2 "github.com/wso2/customer-360-pipeline/internal/system/errors"
	"github.com/wso2/customer-360-pipeline/internal/system/log"
	"github.com/wso2/customer-360-pipeline/internal/system/utils"
	"github.com/wso2/customer-360-pipeline/internal/webactivity/model"
)

type ActivityServiceInterface interface {
	ReadActivity(path string) (model.ActivitySet, error)
}

// ActivityService is the default implementation of the ActivityServiceInterface.
type ActivityService struct{}

// GetActivityService creates a new instance of ActivityService.
func GetActivityService() ActivityServiceInterface {

	return &ActivityService{}
}

// rawEvent mirrors one JSON Lines web activity event. page_view_count is
// decoded loosely because upstream emits it as either a number or a string.
type rawEvent struct {
	UserUUID      string      `json:"user_uuid"`
	Email         string      `json:"email"`
	PageViewCount interface{} `json:"page_view_count"`
	LastSeenTS    string      `json:"last_seen_ts"`
}

// ReadActivity parses the web activity JSON Lines file and aggregates it per
// customer identity: summed page views and the latest activity timestamp.
func (as *ActivityService) ReadActivity(path string) (model.ActivitySet, error) {
	logger := log.GetLogger()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.ActivitySet{}, errors2.NewRunError(errors2.InputNotFound, pkgerrors.Wrap(err, "web activity file"))
		}
		return model.ActivitySet{}, errors2.NewRunError(errors2.UnreadableFormat, pkgerrors.Wrap(err, "web activity file"))
	}
	defer file.Close()

	set := model.ActivitySet{}
	totals := make(map[string]*model.ActivitySummary)
	var order []string

	// Lines are read with bufio.Reader rather than bufio.Scanner so that an
	// oversized line costs only that line, not the whole run.
	reader := bufio.NewReader(file)
	for {
		raw, readErr := reader.ReadString('\n')
		if line := strings.TrimSpace(raw); line != "" {
			aggregateEvent(line, totals, &order, &set)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return model.ActivitySet{}, errors2.NewRunError(errors2.UnreadableFormat, pkgerrors.Wrap(readErr, "web activity scan"))
		}
	}

	for _, key := range order {
		set.Summaries = append(set.Summaries, *totals[key])
	}

	logger.Info("Web activity aggregated",
		log.Int("customers", len(set.Summaries)),
		log.Int("malformed_lines", set.Malformed),
		log.Int("invalid_events", set.Invalid))
	return set, nil
}

// aggregateEvent folds one non-empty line into the per-identity totals.
func aggregateEvent(line string, totals map[string]*model.ActivitySummary, order *[]string, set *model.ActivitySet) {
	var event rawEvent
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		set.Malformed++
		return
	}

	userUUID := utils.NormalizeUUID(event.UserUUID)
	email := utils.CleanEmail(event.Email)
	if userUUID == "" && email == "" {
		set.Invalid++
		return
	}

	key := email
	if key == "" {
		key = userUUID
	}
	summary, seen := totals[key]
	if !seen {
		summary = &model.ActivitySummary{UserUUID: userUUID, Email: email}
		totals[key] = summary
		*order = append(*order, key)
	}
	if summary.UserUUID == "" {
		summary.UserUUID = userUUID
	}
	summary.TotalPageViews += coercePageViews(event.PageViewCount)
	if ts := utils.ParseTimestamp(event.LastSeenTS); ts != nil {
		if summary.LastSeenTS == nil || ts.After(*summary.LastSeenTS) {
			summary.LastSeenTS = ts
		}
	}
}

// coercePageViews converts a loosely typed page_view_count to a count.
// Unusable values count as zero views rather than dropping the event.
func coercePageViews(value interface{}) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return int64(parsed)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		return int64(parsed)
	case nil:
		return 0
	default:
		return 0
	}
}
