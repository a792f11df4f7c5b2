package models

import (
	"context"
	"encoding/json"
	"time"

	"bitbucket.org/mmdatafocus/mis_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

const (
	OutboxPublishStatusPending    = "PENDING"
	OutboxPublishStatusProcessing = "PROCESSING"
	OutboxPublishStatusPublished  = "PUBLISHED"
	OutboxPublishStatusFailed     = "FAILED"
	OutboxPublishStatusDead       = "DEAD"
	OutboxPublishStatusSkipped    = "SKIPPED"
)

// AuditRecord is the transactional outbox for MIS row changes: written
// inside the caller's transaction, published after commit by the
// dispatcher. The API path never publishes directly.
type AuditRecord struct {
	ID               int         `gorm:"primary_key" json:"id"`
	CompanyId        string      `gorm:"size:20;index;not null" json:"company_id"`
	OccurredAt       time.Time   `gorm:"not null" json:"occurred_at"`
	RowId            int         `gorm:"index;not null" json:"row_id"`
	Action           AuditAction `gorm:"size:20;not null" json:"action"`
	OldObj           []byte      `gorm:"type:json" json:"old_obj"`
	NewObj           []byte      `gorm:"type:json" json:"new_obj"`
	Username         string      `gorm:"size:100" json:"username"`
	CorrelationId    string      `gorm:"size:64" json:"correlation_id"`
	PublishStatus    string      `gorm:"size:20;index;not null;default:'PENDING'" json:"publish_status"`
	PublishAttempts  int         `gorm:"not null;default:0" json:"publish_attempts"`
	NextAttemptAt    *time.Time  `json:"next_attempt_at"`
	LockedAt         *time.Time  `json:"locked_at"`
	LockedBy         *string     `gorm:"size:64" json:"locked_by"`
	PublishedAt      *time.Time  `json:"published_at"`
	PubSubMessageId  *string     `gorm:"size:64" json:"pub_sub_message_id"`
	LastPublishError *string     `gorm:"size:500" json:"last_publish_error"`
	CreatedAt        time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (AuditRecord) TableName() string {
	return "mis_audit_records"
}

func correlationIdFromContextOrNew(ctx context.Context) string {
	if ctx != nil {
		if v, ok := utils.GetCorrelationIdFromContext(ctx); ok && v != "" {
			return v
		}
	}
	return uuid.NewString()
}

// writeAuditRecord stores the outbox row inside the caller's transaction.
func writeAuditRecord(ctx context.Context, tx *gorm.DB, company Company, action AuditAction, rowId int, oldObj *MisRow, newObj *MisRow) error {
	var oldInByte, newInByte []byte
	var err error

	if oldObj != nil {
		if oldInByte, err = json.Marshal(oldObj); err != nil {
			return err
		}
	}
	if newObj != nil {
		if newInByte, err = json.Marshal(newObj); err != nil {
			return err
		}
	}

	username, _ := utils.GetUsernameFromContext(ctx)

	record := AuditRecord{
		CompanyId:     company.ID,
		OccurredAt:    time.Now().UTC(),
		RowId:         rowId,
		Action:        action,
		OldObj:        oldInByte,
		NewObj:        newInByte,
		Username:      username,
		CorrelationId: correlationIdFromContextOrNew(ctx),
		PublishStatus: OutboxPublishStatusPending,
	}
	return tx.Create(&record).Error
}
