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

package errors

const errorPrefix = "AIS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while un-marshalling JSON.",
	}

	LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Advisory lock acquisition failed.",
	}

	LOCK_RELEASE = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while releasing the lock.",
	}

	LOCK_KEY_GEN = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error generating advisory lock key.",
	}

	LOCK_RESULT_INVALID = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Invalid response from advisory lock query.",
	}

	ADD_SIGNAL = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while persisting signal.",
	}

	GET_SIGNAL = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while fetching signal(s).",
	}

	UPSERT_IDENTITY = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while upserting identity.",
	}

	GET_IDENTITY = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while fetching identity.",
	}

	GET_CONTACT = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while fetching contact.",
	}

	GET_ACCOUNT = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while fetching account(s).",
	}

	UPDATE_ACCOUNT_SCORE = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while updating account score.",
	}

	ADD_SCORE_SNAPSHOT = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while appending score snapshot.",
	}

	GET_SCORE_SNAPSHOT = ErrorMessage{
		Code:    errorPrefix + "15017",
		Message: "Error while fetching score snapshot(s).",
	}

	ADD_SCORING_RULE = ErrorMessage{
		Code:    errorPrefix + "15018",
		Message: "Error while adding scoring rule.",
	}

	GET_SCORING_RULE = ErrorMessage{
		Code:    errorPrefix + "15019",
		Message: "Error while fetching scoring rule(s).",
	}

	UPDATE_SCORING_RULE = ErrorMessage{
		Code:    errorPrefix + "15020",
		Message: "Error while updating scoring rule.",
	}

	DELETE_SCORING_RULE = ErrorMessage{
		Code:    errorPrefix + "15021",
		Message: "Error while deleting scoring rule.",
	}

	ADD_ALERT_RULE = ErrorMessage{
		Code:    errorPrefix + "15022",
		Message: "Error while adding alert rule.",
	}

	GET_ALERT_RULE = ErrorMessage{
		Code:    errorPrefix + "15023",
		Message: "Error while fetching alert rule(s).",
	}

	UPDATE_ALERT_RULE = ErrorMessage{
		Code:    errorPrefix + "15024",
		Message: "Error while updating alert rule.",
	}

	DELETE_ALERT_RULE = ErrorMessage{
		Code:    errorPrefix + "15025",
		Message: "Error while deleting alert rule.",
	}

	STAMP_ALERT_RULE = ErrorMessage{
		Code:    errorPrefix + "15026",
		Message: "Error while stamping alert rule trigger time.",
	}

	GET_ORG_CONFIG = ErrorMessage{
		Code:    errorPrefix + "15027",
		Message: "Error while fetching organization configuration.",
	}

	UPDATE_ORG_CONFIG = ErrorMessage{
		Code:    errorPrefix + "15028",
		Message: "Error while updating organization configuration.",
	}

	ADD_NOTIFICATION = ErrorMessage{
		Code:    errorPrefix + "15029",
		Message: "Error while storing in-app notification.",
	}

	SEND_EMAIL = ErrorMessage{
		Code:    errorPrefix + "15030",
		Message: "Error while sending email notification.",
	}

	SEND_SLACK = ErrorMessage{
		Code:    errorPrefix + "15031",
		Message: "Error while sending Slack notification.",
	}

	PUBLISH_EVENT = ErrorMessage{
		Code:    errorPrefix + "15032",
		Message: "Error while publishing pipeline event.",
	}

	INVALID_TYPE = ErrorMessage{
		Code:    errorPrefix + "15033",
		Message: "Invalid type.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15034",
		Message: "Error while parsing token.",
	}

	GET_ORG_MEMBERS = ErrorMessage{
		Code:    errorPrefix + "15035",
		Message: "Error while fetching organization members.",
	}

	ORG_ISOLATION = ErrorMessage{
		Code:    errorPrefix + "15036",
		Message: "Identity is owned by a different organization.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid request format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized.",
		Description: "Authentication is required to access this resource.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Forbidden.",
		Description: "You do not have permission to access this resource.",
	}

	INVALID_SIGNAL = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Invalid signal.",
	}

	SIGNAL_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Signal not found.",
	}

	INVALID_SCORING_RULE = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Invalid scoring rule.",
	}

	SCORING_RULE_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Scoring rule not found.",
	}

	INVALID_ALERT_RULE = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Invalid alert rule.",
	}

	ALERT_RULE_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11009",
		Message: "Alert rule not found.",
	}

	ACCOUNT_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11010",
		Message: "Account not found.",
	}

	INVALID_TIER_THRESHOLDS = ErrorMessage{
		Code:    errorPrefix + "11011",
		Message: "Invalid tier thresholds.",
	}
)
