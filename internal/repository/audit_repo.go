package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/marcus/scenevoice/internal/domain"
)

// AuditRepository persists request audit records.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates an audit repository.
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record stores one completed request.
func (r *AuditRepository) Record(ctx context.Context, audit *domain.RequestAudit) error {
	if err := r.db.WithContext(ctx).Create(audit).Error; err != nil {
		return fmt.Errorf("failed to record request audit: %w", err)
	}
	return nil
}

// Recent returns the most recent audit records, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]domain.RequestAudit, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var audits []domain.RequestAudit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&audits).Error; err != nil {
		return nil, fmt.Errorf("failed to list request audits: %w", err)
	}
	return audits, nil
}
