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
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	alertmodel "github.com/signalfoundry/account-intelligence-service/internal/alerts/model"
	"github.com/signalfoundry/account-intelligence-service/internal/notifications/model"
	"github.com/signalfoundry/account-intelligence-service/internal/notifications/store"
	orgconfigservice "github.com/signalfoundry/account-intelligence-service/internal/org_config/service"
	"github.com/signalfoundry/account-intelligence-service/internal/system/config"
	"github.com/signalfoundry/account-intelligence-service/internal/system/constants"
	errors2 "github.com/signalfoundry/account-intelligence-service/internal/system/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/system/log"
)

// EmailSender delivers a single email. The default implementation speaks SMTP
// against the deployment mail relay.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SlackSender posts a message to an incoming webhook.
type SlackSender interface {
	Post(webhookUrl, message string) error
}

type smtpSender struct{}

func (smtpSender) Send(to, subject, body string) error {

	smtpConfig := config.GetAISRuntime().Config.Notifications.SMTP
	addr := fmt.Sprintf("%s:%d", smtpConfig.Host, smtpConfig.Port)

	var auth smtp.Auth
	if smtpConfig.Username != "" {
		auth = smtp.PlainAuth("", smtpConfig.Username, smtpConfig.Password, smtpConfig.Host)
	}

	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		smtpConfig.FromAddress, to, subject, body)
	return smtp.SendMail(addr, auth, smtpConfig.FromAddress, []string{to}, []byte(message))
}

type webhookSlackSender struct{}

func (webhookSlackSender) Post(webhookUrl, message string) error {

	slackConfig := config.GetAISRuntime().Config.Notifications.Slack
	timeout := time.Duration(slackConfig.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	payload, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: timeout}
	response, err := httpClient.Post(webhookUrl, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode >= 300 {
		return fmt.Errorf("slack webhook responded with status: %d", response.StatusCode)
	}
	return nil
}

// NotificationService fans fired alerts out to the channels an alert rule
// names, honoring the per-organization channel toggles. One failing channel
// never blocks the others.
type NotificationService struct {
	repository *store.NotificationRepository
	email      EmailSender
	slack      SlackSender
}

// NewNotificationService returns a service with the default SMTP and Slack senders.
func NewNotificationService(repository *store.NotificationRepository) *NotificationService {

	return &NotificationService{
		repository: repository,
		email:      smtpSender{},
		slack:      webhookSlackSender{},
	}
}

// NewNotificationServiceWithSenders wires explicit sender implementations.
func NewNotificationServiceWithSenders(repository *store.NotificationRepository,
	email EmailSender, slack SlackSender) *NotificationService {

	return &NotificationService{repository: repository, email: email, slack: slack}
}

// Dispatch delivers a fired alert over every requested channel. Returns the
// first delivery error after all channels have been attempted.
func (s *NotificationService) Dispatch(event alertmodel.AlertEvent) error {

	logger := log.GetLogger()
	orgConfig, err := orgconfigservice.GetOrgConfig(event.OrgId)
	if err != nil {
		return err
	}

	var firstErr error
	for _, channel := range event.Channels {
		switch channel {
		case constants.ChannelInApp:
			if !orgConfig.InAppEnabled {
				continue
			}
			if err := s.deliverInApp(event); err != nil {
				logger.Error("Failed to deliver in-app notification", log.Error(err))
				if firstErr == nil {
					firstErr = err
				}
			}
		case constants.ChannelEmail:
			if !orgConfig.EmailEnabled {
				continue
			}
			if err := s.deliverEmail(event); err != nil {
				logger.Error("Failed to deliver email notification", log.Error(err))
				if firstErr == nil {
					firstErr = err
				}
			}
		case constants.ChannelSlack:
			if !orgConfig.SlackEnabled || orgConfig.SlackWebhookUrl == "" {
				continue
			}
			if err := s.deliverSlack(event, orgConfig.SlackWebhookUrl); err != nil {
				logger.Error("Failed to deliver Slack notification", log.Error(err))
				if firstErr == nil {
					firstErr = err
				}
			}
		default:
			logger.Warn(fmt.Sprintf("Skipping unknown notification channel: %s", channel))
		}
	}
	return firstErr
}

func (s *NotificationService) deliverInApp(event alertmodel.AlertEvent) error {

	if s.repository == nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_NOTIFICATION.Code,
			Message:     errors2.ADD_NOTIFICATION.Message,
			Description: "Notification feed repository is not configured.",
		}, nil)
	}
	return s.repository.AddNotification(model.Notification{
		NotificationId: uuid.New().String(),
		OrgId:          event.OrgId,
		AccountId:      event.AccountId,
		RuleId:         event.RuleId,
		TriggerType:    event.TriggerType,
		Title:          event.RuleName,
		Body:           event.Message,
		IsRead:         false,
		CreatedAt:      event.TriggeredAt,
	})
}

// NotifyTierChange records a tier movement in the in-app feed. Emitted on
// every tier change, whether or not any alert rule is configured.
func (s *NotificationService) NotifyTierChange(orgId, accountId, oldTier, newTier string, score float64) error {

	return s.addFeedEntry(orgId, accountId, constants.NotificationTierChange,
		"Account tier changed", tierChangeMessage(oldTier, newTier, score))
}

// NotifyNewHotAccount records an account entering the HOT tier in the in-app feed.
func (s *NotificationService) NotifyNewHotAccount(orgId, accountId string, score float64) error {

	return s.addFeedEntry(orgId, accountId, constants.NotificationNewHotAccount,
		"New hot account", newHotAccountMessage(score))
}

func (s *NotificationService) addFeedEntry(orgId, accountId, triggerType, title, body string) error {

	if s.repository == nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_NOTIFICATION.Code,
			Message:     errors2.ADD_NOTIFICATION.Message,
			Description: "Notification feed repository is not configured.",
		}, nil)
	}
	return s.repository.AddNotification(model.Notification{
		NotificationId: uuid.New().String(),
		OrgId:          orgId,
		AccountId:      accountId,
		TriggerType:    triggerType,
		Title:          title,
		Body:           body,
		IsRead:         false,
		CreatedAt:      time.Now().UTC(),
	})
}

func tierChangeMessage(oldTier, newTier string, score float64) string {

	if oldTier == "" {
		return fmt.Sprintf("Account entered the %s tier with score %.1f", newTier, score)
	}
	return fmt.Sprintf("Account moved from %s to %s with score %.1f", oldTier, newTier, score)
}

func newHotAccountMessage(score float64) string {

	return fmt.Sprintf("Account is now %s with score %.1f", constants.TierHot, score)
}

// deliverEmail mails every organization member. A bounce for one recipient
// does not stop delivery to the rest.
func (s *NotificationService) deliverEmail(event alertmodel.AlertEvent) error {

	logger := log.GetLogger()
	members, err := orgconfigservice.GetOrgMembers(event.OrgId)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		logger.Debug(fmt.Sprintf("No members to email for organization: %s", event.OrgId))
		return nil
	}

	subject := fmt.Sprintf("[Account Intelligence] %s", event.RuleName)
	body := fmt.Sprintf("%s\n\nAccount: %s\nTrigger: %s", event.Message, event.AccountId, event.TriggerType)

	var firstErr error
	for _, member := range members {
		if member.Email == "" {
			continue
		}
		if err := s.email.Send(member.Email, subject, body); err != nil {
			logger.Error(fmt.Sprintf("Failed to email alert to member: %s", member.MemberId),
				log.Error(err))
			if firstErr == nil {
				firstErr = errors2.NewServerError(errors2.ErrorMessage{
					Code:        errors2.SEND_EMAIL.Code,
					Message:     errors2.SEND_EMAIL.Message,
					Description: "Failed to email alert to one or more members.",
				}, err)
			}
		}
	}
	return firstErr
}

func (s *NotificationService) deliverSlack(event alertmodel.AlertEvent, webhookUrl string) error {

	message := fmt.Sprintf("*%s*\n%s", event.RuleName, event.Message)
	if err := s.slack.Post(webhookUrl, message); err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.SEND_SLACK.Code,
			Message:     errors2.SEND_SLACK.Message,
			Description: "Failed to post alert to the Slack webhook.",
		}, err)
	}
	return nil
}

// GetNotifications returns the newest feed entries for an organization.
func (s *NotificationService) GetNotifications(orgId string, limit int64) ([]model.Notification, error) {

	return s.repository.FindNotifications(orgId, limit)
}

// MarkNotificationRead flags a feed entry as read.
func (s *NotificationService) MarkNotificationRead(orgId, notificationId string) error {

	return s.repository.MarkRead(orgId, notificationId)
}
