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

package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	accountstore "github.com/signalfoundry/account-intelligence-service/internal/accounts/store"
	"github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
	"github.com/signalfoundry/account-intelligence-service/internal/alerts/store"
	signalstore "github.com/signalfoundry/account-intelligence-service/internal/signals/store"
	"github.com/signalfoundry/account-intelligence-service/internal/system/config"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// Per-trigger defaults applied when the stored params leave a knob unset.
const (
	defaultDropPercent    = 10.0
	defaultRisePercent    = 10.0
	defaultWithinDays     = 7
	defaultThreshold      = 70.0
	defaultEngagementDays = 7
	defaultInactiveDays   = 14
	defaultCooldownMins   = 60

	// Recency window for tracked-signal triggers.
	newHotSignalWindow = 10 * time.Minute

	directionAbove = "above"
	directionBelow = "below"
)

// Dispatcher delivers fired alerts to the configured notification channels.
type Dispatcher interface {
	Dispatch(event model.AlertEvent) error
}

var dispatcher Dispatcher

// SetDispatcher wires the notification dispatcher used for fired alerts.
// Alerts evaluated before a dispatcher is set are recorded but not delivered.
func SetDispatcher(d Dispatcher) {

	dispatcher = d
}

// CreateAlertRule validates and stores a new alert rule.
func CreateAlertRule(orgId string, rule model.AlertRule) (*model.AlertRule, error) {

	if err := validateAlertRule(rule); err != nil {
		return nil, err
	}

	rule.RuleId = uuid.New().String()
	rule.OrgId = orgId
	now := time.Now().Unix()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	if len(rule.Channels) == 0 {
		rule.Channels = []string{constants.ChannelInApp}
	}

	if err := store.AddAlertRule(rule); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      rule.RuleId,
		TargetType:    log.TargetTypeAlertRule,
		ActionID:      log.ActionAddAlertRule,
	})
	return &rule, nil
}

// GetAlertRules returns all alert rules of an organization.
func GetAlertRules(orgId string) ([]model.AlertRule, error) {

	return store.GetAlertRules(orgId)
}

// GetAlertRule returns a single alert rule.
func GetAlertRule(orgId, ruleId string) (*model.AlertRule, error) {

	rule, err := store.GetAlertRule(orgId, ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, alertRuleNotFoundError(ruleId)
	}
	return rule, nil
}

// UpdateAlertRule replaces the mutable fields of an alert rule.
func UpdateAlertRule(orgId, ruleId string, rule model.AlertRule) (*model.AlertRule, error) {

	existing, err := store.GetAlertRule(orgId, ruleId)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, alertRuleNotFoundError(ruleId)
	}

	if err := validateAlertRule(rule); err != nil {
		return nil, err
	}

	rule.RuleId = ruleId
	rule.OrgId = orgId
	rule.CreatedAt = existing.CreatedAt
	rule.UpdatedAt = time.Now().Unix()
	if len(rule.Channels) == 0 {
		rule.Channels = []string{constants.ChannelInApp}
	}

	if err := store.UpdateAlertRule(rule); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      ruleId,
		TargetType:    log.TargetTypeAlertRule,
		ActionID:      log.ActionUpdateAlertRule,
	})
	return &rule, nil
}

// DeleteAlertRule removes an alert rule along with its trigger stamps.
func DeleteAlertRule(orgId, ruleId string) error {

	existing, err := store.GetAlertRule(orgId, ruleId)
	if err != nil {
		return err
	}
	if existing == nil {
		return alertRuleNotFoundError(ruleId)
	}

	if err := store.DeleteAlertRule(orgId, ruleId); err != nil {
		return err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      ruleId,
		TargetType:    log.TargetTypeAlertRule,
		ActionID:      log.ActionDeleteAlertRule,
	})
	return nil
}

// EvaluateForAccount runs the score-movement triggers against a fresh score.
// Trigger evaluation never fails the scoring pass that produced the movement;
// failures are counted and logged instead.
func EvaluateForAccount(evalCtx model.EvaluationContext) model.EvaluationSummary {

	logger := log.GetLogger()
	summary := model.EvaluationSummary{}

	rules, err := store.GetActiveAlertRules(evalCtx.OrgId)
	if err != nil {
		logger.Error("Failed to load alert rules for evaluation", log.Error(err))
		summary.Errors++
		return summary
	}

	for _, rule := range rules {
		var fired bool
		var message string

		switch rule.TriggerType {
		case constants.TriggerScoreDrop:
			fired, message, err = evaluateScoreDrop(rule, evalCtx)
		case constants.TriggerScoreRise:
			fired, message, err = evaluateScoreRise(rule, evalCtx)
		case constants.TriggerScoreThreshold:
			fired, message = evaluateScoreThreshold(rule, evalCtx)
		case constants.TriggerNewHotSignal:
			fired, message, err = evaluateNewHotSignal(rule, evalCtx)
		case constants.TriggerEngagementDrop, constants.TriggerAccountInactive:
			// Sweep-only triggers; not tied to a single score movement.
			continue
		default:
			logger.Warn(fmt.Sprintf("Skipping alert rule: %s with unknown trigger type: %s",
				rule.RuleId, rule.TriggerType))
			continue
		}

		summary.Evaluated++
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to evaluate alert rule: %s", rule.RuleId), log.Error(err))
			summary.Errors++
			continue
		}
		if !fired {
			continue
		}

		if fireAlert(rule, evalCtx.AccountId, message, evalCtx.OldScore, evalCtx.NewScore, evalCtx.Now) {
			summary.Triggered++
		}
	}
	return summary
}

// EvaluateTimeBased runs the sweep-only triggers over every account of an
// organization. Called on the periodic alert sweep.
func EvaluateTimeBased(orgId string, now time.Time) model.EvaluationSummary {

	logger := log.GetLogger()
	summary := model.EvaluationSummary{}

	rules, err := store.GetActiveAlertRules(orgId)
	if err != nil {
		logger.Error("Failed to load alert rules for sweep", log.Error(err))
		summary.Errors++
		return summary
	}

	var sweepRules []model.AlertRule
	for _, rule := range rules {
		if rule.TriggerType == constants.TriggerEngagementDrop ||
			rule.TriggerType == constants.TriggerAccountInactive {
			sweepRules = append(sweepRules, rule)
		}
	}
	if len(sweepRules) == 0 {
		return summary
	}

	accountIds, err := accountstore.GetAccountIdsByOrg(orgId)
	if err != nil {
		logger.Error("Failed to load accounts for sweep", log.Error(err))
		summary.Errors++
		return summary
	}

	for _, accountId := range accountIds {
		for _, rule := range sweepRules {
			var fired bool
			var message string

			switch rule.TriggerType {
			case constants.TriggerEngagementDrop:
				fired, message, err = evaluateEngagementDrop(rule, orgId, accountId, now)
			case constants.TriggerAccountInactive:
				fired, message, err = evaluateAccountInactive(rule, orgId, accountId, now)
			}

			summary.Evaluated++
			if err != nil {
				logger.Error(fmt.Sprintf("Failed to evaluate alert rule: %s for account: %s",
					rule.RuleId, accountId), log.Error(err))
				summary.Errors++
				continue
			}
			if !fired {
				continue
			}
			if fireAlert(rule, accountId, message, nil, nil, now) {
				summary.Triggered++
			}
		}
	}
	return summary
}

// fireAlert applies the per-rule-per-account cooldown, stamps the trigger,
// and hands the event to the dispatcher. Returns whether the alert fired.
func fireAlert(rule model.AlertRule, accountId, message string, oldScore, newScore *float64,
	now time.Time) bool {

	logger := log.GetLogger()

	lastTriggered, err := store.GetLastTriggered(rule.RuleId, accountId)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to read trigger stamp for alert rule: %s", rule.RuleId),
			log.Error(err))
		return false
	}
	if lastTriggered != nil && now.Sub(*lastTriggered) < cooldownPeriod() {
		logger.Debug(fmt.Sprintf("Alert rule: %s for account: %s suppressed by cooldown",
			rule.RuleId, accountId))
		return false
	}

	// Stamp before dispatch so delivery failures still honor the cooldown.
	if err := store.StampTriggered(rule.RuleId, accountId, now); err != nil {
		logger.Error(fmt.Sprintf("Failed to stamp trigger for alert rule: %s", rule.RuleId),
			log.Error(err))
		return false
	}

	event := model.AlertEvent{
		RuleId:      rule.RuleId,
		RuleName:    rule.RuleName,
		OrgId:       rule.OrgId,
		AccountId:   accountId,
		TriggerType: rule.TriggerType,
		Message:     message,
		OldScore:    oldScore,
		NewScore:    newScore,
		Channels:    rule.Channels,
		TriggeredAt: now,
	}

	if dispatcher == nil {
		logger.Warn(fmt.Sprintf("No dispatcher configured; alert for rule: %s not delivered", rule.RuleId))
		return true
	}
	if err := dispatcher.Dispatch(event); err != nil {
		logger.Error(fmt.Sprintf("Failed to dispatch alert for rule: %s", rule.RuleId), log.Error(err))
	}
	return true
}

// evaluateScoreDrop fires when the score fell by at least the configured
// percentage against the oldest snapshot inside the lookback window. With no
// snapshot in the window the pre-recompute score serves as the baseline, and
// with neither the rule stays silent.
func evaluateScoreDrop(rule model.AlertRule, evalCtx model.EvaluationContext) (bool, string, error) {

	if evalCtx.NewScore == nil {
		return false, "", nil
	}
	dropPercent := rule.Params.DropPercent
	if dropPercent <= 0 {
		dropPercent = defaultDropPercent
	}

	baseline, err := baselineScore(rule, evalCtx)
	if err != nil || baseline == nil || *baseline <= 0 {
		return false, "", err
	}

	drop := (*baseline - *evalCtx.NewScore) / *baseline * 100
	if drop < dropPercent {
		return false, "", nil
	}
	message := fmt.Sprintf("Score dropped %.1f%% (from %.1f to %.1f)", drop, *baseline, *evalCtx.NewScore)
	return true, message, nil
}

// evaluateScoreRise mirrors evaluateScoreDrop in the other direction.
func evaluateScoreRise(rule model.AlertRule, evalCtx model.EvaluationContext) (bool, string, error) {

	if evalCtx.NewScore == nil {
		return false, "", nil
	}
	risePercent := rule.Params.RisePercent
	if risePercent <= 0 {
		risePercent = defaultRisePercent
	}

	baseline, err := baselineScore(rule, evalCtx)
	if err != nil || baseline == nil || *baseline <= 0 {
		return false, "", err
	}

	rise := (*evalCtx.NewScore - *baseline) / *baseline * 100
	if rise < risePercent {
		return false, "", nil
	}
	message := fmt.Sprintf("Score rose %.1f%% (from %.1f to %.1f)", rise, *baseline, *evalCtx.NewScore)
	return true, message, nil
}

// baselineScore picks the comparison point for percentage triggers: the
// oldest snapshot inside the lookback window, else the pre-recompute score.
func baselineScore(rule model.AlertRule, evalCtx model.EvaluationContext) (*float64, error) {

	withinDays := rule.Params.WithinDays
	if withinDays <= 0 {
		withinDays = defaultWithinDays
	}
	since := evalCtx.Now.AddDate(0, 0, -withinDays)

	snapshot, err := accountstore.GetOldestScoreSnapshotSince(evalCtx.OrgId, evalCtx.AccountId, since)
	if err != nil {
		return nil, err
	}
	if snapshot != nil {
		return &snapshot.Score, nil
	}
	return evalCtx.OldScore, nil
}

// evaluateScoreThreshold fires on a crossing, not on every evaluation while
// the score sits past the threshold. A never-scored account crossing on its
// first score counts.
func evaluateScoreThreshold(rule model.AlertRule, evalCtx model.EvaluationContext) (bool, string) {

	if evalCtx.NewScore == nil {
		return false, ""
	}
	threshold := defaultThreshold
	if rule.Params.Threshold != nil {
		threshold = *rule.Params.Threshold
	}
	direction := rule.Params.Direction
	if direction == "" {
		direction = directionAbove
	}

	newScore := *evalCtx.NewScore
	switch direction {
	case directionAbove:
		if newScore >= threshold && (evalCtx.OldScore == nil || *evalCtx.OldScore < threshold) {
			return true, fmt.Sprintf("Score crossed above %.1f (now %.1f)", threshold, newScore)
		}
	case directionBelow:
		if newScore < threshold && (evalCtx.OldScore == nil || *evalCtx.OldScore >= threshold) {
			return true, fmt.Sprintf("Score crossed below %.1f (now %.1f)", threshold, newScore)
		}
	}
	return false, ""
}

// evaluateNewHotSignal fires when a signal of one of the tracked types landed
// on the account within the recency window. Rules that track no types never
// fire.
func evaluateNewHotSignal(rule model.AlertRule, evalCtx model.EvaluationContext) (bool, string, error) {

	if len(rule.Params.SourceTypes) == 0 {
		return false, "", nil
	}
	tracked := make(map[string]bool, len(rule.Params.SourceTypes))
	for _, signalType := range rule.Params.SourceTypes {
		tracked[signalType] = true
	}

	since := evalCtx.Now.Add(-newHotSignalWindow)
	signals, err := signalstore.GetSignalsByAccountSince(evalCtx.OrgId, evalCtx.AccountId, since)
	if err != nil {
		return false, "", err
	}
	for _, signal := range signals {
		if tracked[signal.SignalType] {
			message := fmt.Sprintf("Tracked signal: %s arrived from source: %s",
				signal.SignalType, signal.Source)
			return true, message, nil
		}
	}
	return false, "", nil
}

// evaluateEngagementDrop fires when an account that has signal history went
// completely quiet for the configured window. Accounts that never produced a
// signal are skipped.
func evaluateEngagementDrop(rule model.AlertRule, orgId, accountId string, now time.Time) (bool, string, error) {

	inactiveDays := rule.Params.InactiveDays
	if inactiveDays <= 0 {
		inactiveDays = defaultEngagementDays
	}

	windowStart := now.AddDate(0, 0, -inactiveDays)
	current, err := signalstore.CountSignalsByAccountSince(orgId, accountId, windowStart)
	if err != nil {
		return false, "", err
	}
	if current > 0 {
		return false, "", nil
	}

	lastSignalAt, err := signalstore.GetLatestSignalTime(orgId, accountId)
	if err != nil {
		return false, "", err
	}
	if lastSignalAt == nil {
		return false, "", nil
	}
	message := fmt.Sprintf("No signals in the last %d days (last signal at %s)",
		inactiveDays, lastSignalAt.UTC().Format(time.RFC3339))
	return true, message, nil
}

// evaluateAccountInactive fires when no signal arrived for the configured
// number of days. Accounts that never produced a signal are skipped.
func evaluateAccountInactive(rule model.AlertRule, orgId, accountId string, now time.Time) (bool, string, error) {

	inactiveDays := rule.Params.InactiveDays
	if inactiveDays <= 0 {
		inactiveDays = defaultInactiveDays
	}

	lastSignalAt, err := signalstore.GetLatestSignalTime(orgId, accountId)
	if err != nil {
		return false, "", err
	}
	if lastSignalAt == nil {
		return false, "", nil
	}
	if now.Sub(*lastSignalAt) < time.Duration(inactiveDays)*24*time.Hour {
		return false, "", nil
	}
	message := fmt.Sprintf("No signals for %d days (last signal at %s)",
		inactiveDays, lastSignalAt.UTC().Format(time.RFC3339))
	return true, message, nil
}

func cooldownPeriod() time.Duration {

	cooldownMins := config.GetAISRuntime().Config.Alerting.CooldownMins
	if cooldownMins <= 0 {
		cooldownMins = defaultCooldownMins
	}
	return time.Duration(cooldownMins) * time.Minute
}

func validateAlertRule(rule model.AlertRule) error {

	if rule.RuleName == "" {
		return invalidAlertRuleError("Rule name is required.")
	}
	if !constants.AllowedTriggerTypes[rule.TriggerType] {
		return invalidAlertRuleError(fmt.Sprintf("Unsupported trigger type: %s.", rule.TriggerType))
	}
	for _, channel := range rule.Channels {
		if !constants.AllowedNotificationChannels[channel] {
			return invalidAlertRuleError(fmt.Sprintf("Unsupported notification channel: %s.", channel))
		}
	}
	if rule.Params.Direction != "" && rule.Params.Direction != directionAbove &&
		rule.Params.Direction != directionBelow {
		return invalidAlertRuleError(fmt.Sprintf("Unsupported threshold direction: %s.", rule.Params.Direction))
	}
	if rule.Params.DropPercent < 0 || rule.Params.RisePercent < 0 ||
		(rule.Params.Threshold != nil && *rule.Params.Threshold < 0) ||
		rule.Params.WithinDays < 0 || rule.Params.InactiveDays < 0 {
		return invalidAlertRuleError("Trigger parameters must not be negative.")
	}
	for _, signalType := range rule.Params.SourceTypes {
		if strings.TrimSpace(signalType) == "" {
			return invalidAlertRuleError("Tracked signal types must not be blank.")
		}
	}
	return nil
}

func invalidAlertRuleError(description string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_ALERT_RULE.Code,
		Message:     errors2.INVALID_ALERT_RULE.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func alertRuleNotFoundError(ruleId string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.ALERT_RULE_NOT_FOUND.Code,
		Message:     errors2.ALERT_RULE_NOT_FOUND.Message,
		Description: fmt.Sprintf("No alert rule found with id: %s.", ruleId),
	}, http.StatusNotFound)
}
