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

package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/signalfoundry/account-intelligence-service/internal/notifications/model"
	"github.com/signalfoundry/account-intelligence-service/internal/system/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const notificationCollection = "notifications"

// NotificationRepository handles MongoDB operations for the in-app notification feed
type NotificationRepository struct {
	Collection *mongo.Collection
}

// NewNotificationRepository initializes a repository for the `notifications` collection
func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		Collection: db.Collection(notificationCollection),
	}
}

// ConnectMongo opens a Mongo client against the configured feed database.
func ConnectMongo() (*mongo.Database, error) {

	mongoConfig := config.GetAISRuntime().Config.Mongo
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoConfig.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to notification feed database")
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to ping notification feed database")
	}
	return mongoClient.Database(mongoConfig.Database), nil
}

// AddNotification inserts a single feed entry
func (repo *NotificationRepository) AddNotification(notification model.Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.Collection.InsertOne(ctx, notification)
	if err != nil {
		return errors.Wrap(err, "failed to insert notification")
	}
	return nil
}

// FindNotifications fetches feed entries for an organization, newest first
func (repo *NotificationRepository) FindNotifications(orgId string, limit int64) ([]model.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions = findOptions.SetLimit(limit)
	}

	cursor, err := repo.Collection.Find(ctx, bson.M{"org_id": orgId}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch notifications")
	}
	defer cursor.Close(ctx)

	var notifications []model.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, errors.Wrap(err, "failed to decode notifications")
	}
	return notifications, nil
}

// MarkRead flags a feed entry as read
func (repo *NotificationRepository) MarkRead(orgId, notificationId string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"org_id": orgId, "notification_id": notificationId}
	update := bson.M{"$set": bson.M{"is_read": true}}
	_, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return errors.Wrap(err, "failed to mark notification as read")
	}
	return nil
}

// DeleteNotificationsByAccount removes feed entries for an account
func (repo *NotificationRepository) DeleteNotificationsByAccount(orgId, accountId string) error {
	_, err := repo.Collection.DeleteMany(context.TODO(), bson.M{"org_id": orgId, "account_id": accountId})
	return errors.Wrap(err, "failed to delete notifications")
}
