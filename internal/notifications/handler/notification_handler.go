/*
 * Copyright (c) 2026, Signal Foundry, Inc. (https://www.signalfoundry.io).
 *
 * Signal Foundry, Inc. licenses this file to you under the Apache License,
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

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/signalfoundry/account-intelligence-service/internal/notifications/service"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/security"
	"github.com/signalfoundry/account-intelligence-service/internal/system/utils"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {

	return &NotificationHandler{}
}

// GetNotifications fetches the in-app notification feed, newest first.
func (nh *NotificationHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "notifications:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	notificationService := service.GetNotificationService()
	if notificationService == nil {
		utils.HandleError(w, feedUnavailableError())
		return
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			limit = parsed
		}
	}

	orgId := utils.ExtractOrgIdFromPath(r)
	notifications, err := notificationService.GetNotifications(orgId, limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(notifications)
}

// MarkRead flags a feed entry as read.
func (nh *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "notifications:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	notificationService := service.GetNotificationService()
	if notificationService == nil {
		utils.HandleError(w, feedUnavailableError())
		return
	}

	path := strings.TrimPrefix(strings.TrimSuffix(r.URL.Path, "/"), "/notifications/")
	notificationId := strings.TrimSuffix(path, "/read")

	orgId := utils.ExtractOrgIdFromPath(r)
	if err := notificationService.MarkNotificationRead(orgId, notificationId); err != nil {
		utils.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func feedUnavailableError() error {

	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.ADD_NOTIFICATION.Code,
		Message:     errors2.ADD_NOTIFICATION.Message,
		Description: "Notification feed is not configured.",
	}, nil)
}
