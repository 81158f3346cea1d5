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
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	accountmodel "github.com/signalfoundry/account-intelligence-service/internal/accounts/model"
	accountstore "github.com/signalfoundry/account-intelligence-service/internal/accounts/store"
	orgconfigservice "github.com/signalfoundry/account-intelligence-service/internal/org_config/service"
	"github.com/signalfoundry/account-intelligence-service/internal/scoring/model"
	"github.com/signalfoundry/account-intelligence-service/internal/scoring/store"
	signalmodel "github.com/signalfoundry/account-intelligence-service/internal/signals/model"
	signalstore "github.com/signalfoundry/account-intelligence-service/internal/signals/store"
	"github.com/signalfoundry/account-intelligence-service/internal/system/cache"
	"github.com/signalfoundry/account-intelligence-service/internal/system/config"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	"github.com/signalfoundry/account-intelligence-service/internal/system/database/lock"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// TierThresholds holds the minimum score for each tier.
type TierThresholds struct {
	Hot  float64
	Warm float64
	Cold float64
}

// ScoreContext carries everything ComputeScore needs besides the signal set.
type ScoreContext struct {
	Thresholds    TierThresholds
	MaxScore      float64
	TrendEpsilon  float64
	PreviousScore *float64
	Now           time.Time
}

// RecomputeResult reports the score movement produced by a recompute.
type RecomputeResult struct {
	OldScore *float64
	OldTier  string
	Result   model.ScoreResult
}

// TierNotifier receives tier movements produced by score recomputes.
type TierNotifier interface {
	NotifyTierChange(orgId, accountId, oldTier, newTier string, score float64) error
	NotifyNewHotAccount(orgId, accountId string, score float64) error
}

var tierNotifier TierNotifier

// SetTierNotifier wires the notifier used for tier movements. Recomputes that
// run before a notifier is set persist their result without notifying.
func SetTierNotifier(n TierNotifier) {

	tierNotifier = n
}

// Active rules are read on every recompute; cached briefly and invalidated on
// any rule write.
var activeRulesCache = cache.NewCache(time.Minute)

// CreateScoringRule validates and persists a new scoring rule.
func CreateScoringRule(orgId string, rule model.ScoringRule) (*model.ScoringRule, error) {

	if err := validateScoringRule(rule); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	rule.RuleId = uuid.New().String()
	rule.OrgId = orgId
	rule.CreatedAt = now
	rule.UpdatedAt = now
	if rule.DecayWindow == "" {
		rule.DecayWindow = constants.DecayNone
	}

	if err := store.AddScoringRule(rule); err != nil {
		return nil, err
	}
	activeRulesCache.Delete(orgId)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      rule.RuleId,
		TargetType:    log.TargetTypeScoringRule,
		ActionID:      log.ActionAddScoringRule,
	})
	return &rule, nil
}

// GetScoringRules returns all scoring rules for an organization.
func GetScoringRules(orgId string) ([]model.ScoringRule, error) {

	return store.GetScoringRules(orgId)
}

// GetScoringRule returns a scoring rule, or a not-found client error.
func GetScoringRule(orgId, ruleId string) (*model.ScoringRule, error) {

	rule, err := store.GetScoringRule(orgId, ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.SCORING_RULE_NOT_FOUND.Code,
			Message:     errors2.SCORING_RULE_NOT_FOUND.Message,
			Description: fmt.Sprintf("No scoring rule found with id: %s", ruleId),
		}, http.StatusNotFound)
	}
	return rule, nil
}

// UpdateScoringRule validates and replaces a scoring rule.
func UpdateScoringRule(orgId, ruleId string, rule model.ScoringRule) (*model.ScoringRule, error) {

	existing, err := GetScoringRule(orgId, ruleId)
	if err != nil {
		return nil, err
	}
	if err := validateScoringRule(rule); err != nil {
		return nil, err
	}

	rule.RuleId = existing.RuleId
	rule.OrgId = orgId
	rule.CreatedAt = existing.CreatedAt
	rule.UpdatedAt = time.Now().Unix()
	if rule.DecayWindow == "" {
		rule.DecayWindow = constants.DecayNone
	}

	if err := store.UpdateScoringRule(rule); err != nil {
		return nil, err
	}
	activeRulesCache.Delete(orgId)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      rule.RuleId,
		TargetType:    log.TargetTypeScoringRule,
		ActionID:      log.ActionUpdateScoringRule,
	})
	return &rule, nil
}

// DeleteScoringRule removes a scoring rule.
func DeleteScoringRule(orgId, ruleId string) error {

	if _, err := GetScoringRule(orgId, ruleId); err != nil {
		return err
	}
	if err := store.DeleteScoringRule(orgId, ruleId); err != nil {
		return err
	}
	activeRulesCache.Delete(orgId)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      ruleId,
		TargetType:    log.TargetTypeScoringRule,
		ActionID:      log.ActionDeleteScoringRule,
	})
	return nil
}

// ComputeScore runs the scoring rules over a signal set. It is pure: no
// storage access, no side effects beyond a warn log for malformed rules.
func ComputeScore(signals []signalmodel.Signal, rules []model.ScoringRule, scoreCtx ScoreContext) model.ScoreResult {

	logger := log.GetLogger()
	total := 0.0
	var contributions []model.RuleContribution
	distinctUsers := countDistinctUsers(signals)

	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		if !ruleWellFormed(rule) {
			logger.Warn(fmt.Sprintf("Skipping malformed scoring rule: %s", rule.RuleId))
			continue
		}

		matched := 0
		points := 0.0
		for _, signal := range signals {
			if !matchesRule(signal, rule) {
				continue
			}
			matched++
			points += rule.Weight * decayFactor(scoreCtx.Now.Sub(signal.OccurredAt), rule.DecayWindow)
		}
		if matched == 0 {
			continue
		}

		// Conditions gate the whole rule against account-level aggregates,
		// not individual signals.
		aggregates := map[string]interface{}{
			constants.ConditionPropertySignalCount:   matched,
			constants.ConditionPropertyDistinctUsers: distinctUsers,
			constants.ConditionPropertyTotalSignals:  len(signals),
		}
		if !EvaluateConditions(aggregates, rule.Conditions) {
			continue
		}

		total += points
		contributions = append(contributions, model.RuleContribution{
			RuleId:       rule.RuleId,
			RuleName:     rule.RuleName,
			MatchedCount: matched,
			Points:       points,
		})
	}

	// Clamp to [0, max].
	if total < 0 {
		total = 0
	}
	if total > scoreCtx.MaxScore {
		total = scoreCtx.MaxScore
	}

	return model.ScoreResult{
		Score:         total,
		Tier:          tierFor(total, scoreCtx.Thresholds),
		Trend:         trendFor(total, scoreCtx.PreviousScore, scoreCtx.TrendEpsilon),
		SignalCount:   len(signals),
		DistinctUsers: distinctUsers,
		Contributions: contributions,
		ComputedAt:    scoreCtx.Now,
	}
}

// countDistinctUsers counts unique actors across a signal set: resolved
// contacts and, for unresolved signals, distinct anonymous ids.
func countDistinctUsers(signals []signalmodel.Signal) int {

	seen := make(map[string]bool)
	for _, signal := range signals {
		switch {
		case signal.ContactId != "":
			seen["c:"+signal.ContactId] = true
		case signal.AnonymousId != "":
			seen["a:"+signal.AnonymousId] = true
		}
	}
	return len(seen)
}

// PreviewScore scores a hypothetical signal set against a candidate rule set
// without touching storage.
func PreviewScore(orgId string, preview model.PreviewRequest) (*model.ScoreResult, error) {

	for _, rule := range preview.Rules {
		if err := validateScoringRule(rule); err != nil {
			return nil, err
		}
	}

	orgConfig, err := orgconfigservice.GetOrgConfig(orgId)
	if err != nil {
		return nil, err
	}
	scoringConfig := config.GetAISRuntime().Config.Scoring

	rules := preview.Rules
	for i := range rules {
		rules[i].IsActive = true
		if rules[i].DecayWindow == "" {
			rules[i].DecayWindow = constants.DecayNone
		}
	}

	result := ComputeScore(preview.Signals, rules, ScoreContext{
		Thresholds:   TierThresholds{Hot: orgConfig.HotThreshold, Warm: orgConfig.WarmThreshold, Cold: orgConfig.ColdThreshold},
		MaxScore:     scoringConfig.MaxScore,
		TrendEpsilon: scoringConfig.TrendEpsilon,
		Now:          time.Now().UTC(),
	})
	return &result, nil
}

// RecomputeAccountScore recomputes, persists, and snapshots the score for an
// account under an advisory lock. Returns nil when another recompute holds
// the lock.
func RecomputeAccountScore(orgId, accountId string) (*RecomputeResult, error) {

	logger := log.GetLogger()
	appLock := lock.NewPostgresLock()
	lockKey := fmt.Sprintf("score-recompute:%s:%s", orgId, accountId)

	acquired, err := appLock.Acquire(lockKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		logger.Debug(fmt.Sprintf("Score recompute already in progress for account: %s", accountId))
		return nil, nil
	}
	defer func() {
		if err := appLock.Release(lockKey); err != nil {
			logger.Error(fmt.Sprintf("Failed to release recompute lock for account: %s", accountId), log.Error(err))
		}
	}()

	orgConfig, err := orgconfigservice.GetOrgConfig(orgId)
	if err != nil {
		return nil, err
	}
	rules, err := getActiveScoringRules(orgId)
	if err != nil {
		return nil, err
	}
	signals, err := signalstore.GetSignalsByAccount(orgId, accountId)
	if err != nil {
		return nil, err
	}
	prevSnapshot, err := accountstore.GetLatestScoreSnapshot(orgId, accountId)
	if err != nil {
		return nil, err
	}

	var prevScore *float64
	oldTier := ""
	if prevSnapshot != nil {
		prevScore = &prevSnapshot.Score
		oldTier = prevSnapshot.Tier
	}

	scoringConfig := config.GetAISRuntime().Config.Scoring
	now := time.Now().UTC()
	result := ComputeScore(signals, rules, ScoreContext{
		Thresholds:    TierThresholds{Hot: orgConfig.HotThreshold, Warm: orgConfig.WarmThreshold, Cold: orgConfig.ColdThreshold},
		MaxScore:      scoringConfig.MaxScore,
		TrendEpsilon:  scoringConfig.TrendEpsilon,
		PreviousScore: prevScore,
		Now:           now,
	})

	var lastSignalAt *time.Time
	for i := range signals {
		if lastSignalAt == nil || signals[i].OccurredAt.After(*lastSignalAt) {
			lastSignalAt = &signals[i].OccurredAt
		}
	}

	if err := accountstore.UpsertAccountScore(accountmodel.AccountScore{
		AccountId:     accountId,
		OrgId:         orgId,
		Score:         result.Score,
		Tier:          result.Tier,
		Trend:         result.Trend,
		SignalCount:   result.SignalCount,
		DistinctUsers: result.DistinctUsers,
		LastSignalAt:  lastSignalAt,
		ComputedAt:    now,
	}); err != nil {
		return nil, err
	}

	if err := accountstore.AddScoreSnapshot(accountmodel.ScoreSnapshot{
		SnapshotId: uuid.New().String(),
		OrgId:      orgId,
		AccountId:  accountId,
		Score:      result.Score,
		Tier:       result.Tier,
		RecordedAt: now,
	}); err != nil {
		return nil, err
	}

	notifyTierMovement(orgId, accountId, oldTier, result)

	logger.Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeSystem,
		TargetID:      accountId,
		TargetType:    log.TargetTypeAccount,
		ActionID:      log.ActionScoreRecompute,
	})
	return &RecomputeResult{OldScore: prevScore, OldTier: oldTier, Result: result}, nil
}

// getActiveScoringRules serves the active rule set from a short-lived cache.
func getActiveScoringRules(orgId string) ([]model.ScoringRule, error) {

	if cached, found := activeRulesCache.Get(orgId); found {
		if rules, ok := cached.([]model.ScoringRule); ok {
			return rules, nil
		}
	}
	rules, err := store.GetActiveScoringRules(orgId)
	if err != nil {
		return nil, err
	}
	activeRulesCache.Set(orgId, rules)
	return rules, nil
}

// notifyTierMovement emits a tier-change notification on any tier movement,
// plus a dedicated notification when the account enters the HOT tier.
// Notification failures never fail the recompute that produced the movement.
func notifyTierMovement(orgId, accountId, oldTier string, result model.ScoreResult) {

	if tierNotifier == nil || oldTier == result.Tier {
		return
	}
	logger := log.GetLogger()
	if err := tierNotifier.NotifyTierChange(orgId, accountId, oldTier, result.Tier, result.Score); err != nil {
		logger.Error(fmt.Sprintf("Failed to notify tier change for account: %s", accountId), log.Error(err))
	}
	if result.Tier == constants.TierHot {
		if err := tierNotifier.NotifyNewHotAccount(orgId, accountId, result.Score); err != nil {
			logger.Error(fmt.Sprintf("Failed to notify new hot account: %s", accountId), log.Error(err))
		}
	}
}

func validateScoringRule(rule model.ScoringRule) error {

	badRequest := func(description string) error {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_SCORING_RULE.Code,
			Message:     errors2.INVALID_SCORING_RULE.Message,
			Description: description,
		}, http.StatusBadRequest)
	}

	if strings.TrimSpace(rule.RuleName) == "" {
		return badRequest("Rule name is required.")
	}
	if strings.TrimSpace(rule.SignalType) == "" {
		return badRequest("Signal type is required.")
	}
	if rule.Weight == 0 {
		return badRequest("Weight must be non-zero.")
	}
	if rule.DecayWindow != "" && !constants.AllowedDecayWindows[rule.DecayWindow] {
		return badRequest(fmt.Sprintf("Unsupported decay window: %s", rule.DecayWindow))
	}
	for _, condition := range rule.Conditions {
		if !constants.AllowedConditionProperties[condition.Property] {
			return badRequest(fmt.Sprintf("Unsupported condition property: %s", condition.Property))
		}
		if !constants.AllowedConditionOperators[strings.ToLower(condition.Operator)] {
			return badRequest(fmt.Sprintf("Unsupported condition operator: %s", condition.Operator))
		}
	}
	return nil
}

// ruleWellFormed guards the compute path against rules that were stored
// before stricter validation or edited out-of-band.
func ruleWellFormed(rule model.ScoringRule) bool {

	if rule.SignalType == "" || !constants.AllowedDecayWindows[rule.DecayWindow] {
		return false
	}
	for _, condition := range rule.Conditions {
		if !constants.AllowedConditionProperties[condition.Property] ||
			!constants.AllowedConditionOperators[strings.ToLower(condition.Operator)] {
			return false
		}
	}
	return true
}

// matchesRule checks the per-signal filters of a rule. A "*" signal type
// matches every signal.
func matchesRule(signal signalmodel.Signal, rule model.ScoringRule) bool {

	if rule.SignalType != "*" && signal.SignalType != rule.SignalType {
		return false
	}
	if rule.Source != "" && signal.Source != rule.Source {
		return false
	}
	return true
}

// EvaluateConditions evaluates the conditions of a rule against the
// account-level aggregates. Properties absent from the aggregate map
// evaluate as nil.
func EvaluateConditions(aggregates map[string]interface{}, conditions []model.RuleCondition) bool {
	for _, cond := range conditions {
		fieldVal := aggregates[cond.Property]
		if !EvaluateCondition(fieldVal, cond.Operator, fmt.Sprintf("%v", cond.Value)) {
			return false
		}
	}
	return true
}

// EvaluateCondition evaluates a single condition against an actual value
func EvaluateCondition(actual interface{}, operator string, expected string) bool {
	switch strings.ToLower(operator) {
	case "equals":
		return fmt.Sprintf("%v", actual) == expected

	case "not_equals":
		return fmt.Sprintf("%v", actual) != expected

	case "exists":
		return actual != nil && fmt.Sprintf("%v", actual) != ""

	case "not_exists":
		return actual == nil || fmt.Sprintf("%v", actual) == ""

	case "contains":
		if str, ok := actual.(string); ok {
			return strings.Contains(str, expected)
		}
		return false

	case "not_contains":
		if str, ok := actual.(string); ok {
			return !strings.Contains(str, expected)
		}
		return false

	case "greater_than":
		return compareNumeric(actual, expected, ">")

	case "greater_than_equals":
		return compareNumeric(actual, expected, ">=")

	case "less_than":
		return compareNumeric(actual, expected, "<")

	case "less_than_equals":
		return compareNumeric(actual, expected, "<=")

	default:
		return false
	}
}

// compareNumeric compares a numeric value with a string representation of a number
func compareNumeric(actual interface{}, expected string, op string) bool {
	actualFloat, err1 := toFloat(actual)
	expectedFloat, err2 := strconv.ParseFloat(expected, 64)
	if err1 != nil || err2 != nil {
		return false
	}

	switch op {
	case ">":
		return actualFloat > expectedFloat
	case ">=":
		return actualFloat >= expectedFloat
	case "<":
		return actualFloat < expectedFloat
	case "<=":
		return actualFloat <= expectedFloat
	default:
		return false
	}
}

// toFloat converts various types to float64
func toFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case float32:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		return strconv.ParseFloat(val, 64)
	default:
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.INVALID_TYPE.Code,
			Message:     errors2.INVALID_TYPE.Message,
			Description: fmt.Sprintf("Invalid type for conversion to float: %T", v),
		}, nil)
		return 0, serverError
	}
}

var decayWindowDays = map[string]float64{
	constants.Decay7Day:  7,
	constants.Decay14Day: 14,
	constants.Decay30Day: 30,
	constants.Decay90Day: 90,
}

// decayFactor applies a step function over the signal age: full weight in the
// first quarter of the window, then 0.75, 0.5, 0.25, and zero past the window.
func decayFactor(age time.Duration, decayWindow string) float64 {

	if decayWindow == constants.DecayNone {
		return 1.0
	}
	windowDays, ok := decayWindowDays[decayWindow]
	if !ok {
		return 0
	}
	if age < 0 {
		age = 0
	}

	fraction := age.Hours() / 24 / windowDays
	switch {
	case fraction <= 0.25:
		return 1.0
	case fraction <= 0.5:
		return 0.75
	case fraction <= 0.75:
		return 0.5
	case fraction <= 1.0:
		return 0.25
	default:
		return 0
	}
}

func tierFor(score float64, thresholds TierThresholds) string {

	switch {
	case score >= thresholds.Hot:
		return constants.TierHot
	case score >= thresholds.Warm:
		return constants.TierWarm
	case score >= thresholds.Cold:
		return constants.TierCold
	default:
		return constants.TierInactive
	}
}

func trendFor(score float64, previous *float64, epsilon float64) string {

	if previous == nil {
		return constants.TrendStable
	}
	delta := score - *previous
	if math.Abs(delta) <= epsilon {
		return constants.TrendStable
	}
	if delta > 0 {
		return constants.TrendRising
	}
	return constants.TrendFalling
}
