package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// repositoryImpl is the concrete implementation of Repository interface.
type repositoryImpl struct {
	db             *sqlx.DB
	campaign       CampaignRepository
	recipient      RecipientRepository
	deliveryReport DeliveryReportRepository
	webhookEvent   WebhookEventRepository
	retryJob       RetryJobRepository
	deadLetter     DeadLetterRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return &repositoryImpl{
		db:             db,
		campaign:       NewCampaignRepository(db),
		recipient:      NewRecipientRepository(db),
		deliveryReport: NewDeliveryReportRepository(db),
		webhookEvent:   NewWebhookEventRepository(db),
		retryJob:       NewRetryJobRepository(db),
		deadLetter:     NewDeadLetterRepository(db),
	}
}

func (r *repositoryImpl) Campaign() CampaignRepository             { return r.campaign }
func (r *repositoryImpl) Recipient() RecipientRepository           { return r.recipient }
func (r *repositoryImpl) DeliveryReport() DeliveryReportRepository { return r.deliveryReport }
func (r *repositoryImpl) WebhookEvent() WebhookEventRepository     { return r.webhookEvent }
func (r *repositoryImpl) RetryJob() RetryJobRepository             { return r.retryJob }
func (r *repositoryImpl) DeadLetter() DeadLetterRepository         { return r.deadLetter }

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}
