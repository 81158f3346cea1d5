package constants

const ApiBasePath = "/api/v1"
const SignalsApiPath = "/signals"
const ScoringRulesApiPath = "/scoring-rules"
const AlertRulesApiPath = "/alert-rules"
const AccountsApiPath = "/accounts"
const OrgConfigApiPath = "/org-config"
const NotificationsApiPath = "/notifications"

type contextKey string

const OrgContextKey contextKey = "org"
const TraceIDContextKey contextKey = "traceId"

// Account tiers, ordered hot to inactive.
const (
	TierHot      = "HOT"
	TierWarm     = "WARM"
	TierCold     = "COLD"
	TierInactive = "INACTIVE"
)

// Score trends relative to the previous snapshot.
const (
	TrendRising  = "RISING"
	TrendStable  = "STABLE"
	TrendFalling = "FALLING"
)

// Signal sources recognized by the intake pipeline.
var AllowedSignalSources = map[string]bool{
	"github":   true,
	"npm":      true,
	"pypi":     true,
	"discord":  true,
	"website":  true,
	"docs":     true,
	"api":      true,
	"webhook":  true,
	"manual":   true,
	"internal": true,
}

// Account-level aggregates a scoring rule condition may reference.
const (
	ConditionPropertySignalCount   = "signal_count"
	ConditionPropertyDistinctUsers = "distinct_users"
	ConditionPropertyTotalSignals  = "total_signals"
)

var AllowedConditionProperties = map[string]bool{
	ConditionPropertySignalCount:   true,
	ConditionPropertyDistinctUsers: true,
	ConditionPropertyTotalSignals:  true,
}

var AllowedConditionOperators = map[string]bool{
	"equals":              true,
	"not_equals":          true,
	"exists":              true,
	"not_exists":          true,
	"contains":            true,
	"not_contains":        true,
	"greater_than":        true,
	"greater_than_equals": true,
	"less_than":           true,
	"less_than_equals":    true,
}

// Decay windows supported by scoring rules. "none" applies full weight
// regardless of signal age.
const (
	DecayNone  = "none"
	Decay7Day  = "7d"
	Decay14Day = "14d"
	Decay30Day = "30d"
	Decay90Day = "90d"
)

var AllowedDecayWindows = map[string]bool{
	DecayNone:  true,
	Decay7Day:  true,
	Decay14Day: true,
	Decay30Day: true,
	Decay90Day: true,
}

// Alert rule trigger types.
const (
	TriggerScoreDrop       = "score_drop"
	TriggerScoreRise       = "score_rise"
	TriggerScoreThreshold  = "score_threshold"
	TriggerEngagementDrop  = "engagement_drop"
	TriggerNewHotSignal    = "new_hot_signal"
	TriggerAccountInactive = "account_inactive"
)

var AllowedTriggerTypes = map[string]bool{
	TriggerScoreDrop:       true,
	TriggerScoreRise:       true,
	TriggerScoreThreshold:  true,
	TriggerEngagementDrop:  true,
	TriggerNewHotSignal:    true,
	TriggerAccountInactive: true,
}

// Notification channels.
const (
	ChannelInApp = "inApp"
	ChannelEmail = "email"
	ChannelSlack = "slack"
)

var AllowedNotificationChannels = map[string]bool{
	ChannelInApp: true,
	ChannelEmail: true,
	ChannelSlack: true,
}

// Feed entry kinds emitted by the scoring engine on tier movements, outside
// of any alert rule.
const (
	NotificationTierChange    = "tier_change"
	NotificationNewHotAccount = "new_hot_account"
)

// Identity types carried on signals.
const (
	IdentityTypeEmail      = "email"
	IdentityTypeExternalID = "external_id"
	IdentityTypeProfileURL = "profile_url"
	IdentityTypeAnonymous  = "anonymous"
)

const DefaultQueueSize = 100
