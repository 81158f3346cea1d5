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

package utils

import (
	"context"
	"encoding/json"
	"errors" // Standard Go errors package
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	aiscontext "github.com/signalfoundry/account-intelligence-service/internal/system/context"
	customerrors "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
	"net/http"
	"strings"
)

// HandleError sends an HTTP error response based on the provided error
func HandleError(w http.ResponseWriter, err error) {
	var clientError *customerrors.ClientError
	w.Header().Set("Content-Type", "application/json")
	if ok := errors.As(err, &clientError); ok {
		w.WriteHeader(clientError.StatusCode)
		_ = json.NewEncoder(w).Encode(struct {
			Code        string `json:"code"`
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			Code:        clientError.ErrorMessage.Code,
			Message:     clientError.ErrorMessage.Message,
			Description: clientError.ErrorMessage.Description,
		})
		return
	}

	var serverError *customerrors.ServerError
	if ok := errors.As(err, &serverError); ok {
		logger := log.GetLogger()
		logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "Internal server error",
		})
		return
	}
}

func ExtractOrgIdFromPath(r *http.Request) string {
	org := r.Context().Value(constants.OrgContextKey).(string)
	return org
}

func StripOrgPrefix(path string) string {
	parts := strings.SplitN(path, "/", 4)
	if len(parts) < 4 {
		return "/"
	}
	return "/" + parts[3]
}

func WriteErrorResponse(w http.ResponseWriter, err *customerrors.ClientError) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)

	_ = json.NewEncoder(w).Encode(err.ErrorMessage)
}

// Rewrite `/api/v1/...` to `/o/{defaultOrg}/api/v1/...`
func RewriteToDefaultOrg(apiBasePath string, mux *http.ServeMux, defaultOrg string) {
	mux.HandleFunc(apiBasePath+"/", func(w http.ResponseWriter, r *http.Request) {
		newPath := "/o/" + defaultOrg + r.URL.Path
		http.Redirect(w, r, newPath, http.StatusTemporaryRedirect)
	})
}

func MountOrgDispatcher(mux *http.ServeMux, apiBasePath string, handlerFunc http.HandlerFunc) {
	mux.HandleFunc("/o/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")

		if !strings.HasPrefix(path, "/o/") {
			http.NotFound(w, r)
			return
		}

		// Split: /o/{org}/api/v1/...
		parts := strings.SplitN(path[len("/o/"):], "/", 2)
		if len(parts) != 2 {
			http.Error(w, "Invalid organization path format", http.StatusBadRequest)
			return
		}

		orgID := parts[0]
		remainingPath := "/" + parts[1]

		// Ensure it starts with apiBasePath
		if !strings.HasPrefix(remainingPath, apiBasePath) {
			http.Error(w, "Path must start with "+apiBasePath, http.StatusNotFound)
			return
		}

		// Strip /api/v1 to route to /signals, etc.
		relativePath := strings.TrimPrefix(remainingPath, apiBasePath)

		// Add org and a per-request trace id to the request context.
		ctx := context.WithValue(r.Context(), constants.OrgContextKey, orgID)
		ctx = aiscontext.WithTraceID(ctx, aiscontext.GetOrGenerateTraceID(ctx))
		r = r.WithContext(ctx)
		r.URL.Path = relativePath

		handlerFunc(w, r)
	})
}
