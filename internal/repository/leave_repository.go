package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sekolahku/presensi-api/internal/models"
)

const leaveColumns = `id, teacher_id, start_date, end_date, reason, custom_reason, substitute_teacher_id, status, notes, created_at, updated_at`

// LeaveRepository reads leave grants. Grant creation and approval belong to
// the leave workflow service; reconciliation only consumes approved grants.
type LeaveRepository struct {
	db *sqlx.DB
}

// NewLeaveRepository creates a new leave repository.
func NewLeaveRepository(db *sqlx.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

// ListApprovedOverlapping returns approved grants whose inclusive date range
// intersects [from, to].
func (r *LeaveRepository) ListApprovedOverlapping(ctx context.Context, from, to time.Time) ([]models.LeaveGrant, error) {
	query := fmt.Sprintf("SELECT %s FROM leaves WHERE status = 'approved' AND start_date <= $1 AND end_date >= $2 ORDER BY start_date ASC, teacher_id ASC", leaveColumns)
	var leaves []models.LeaveGrant
	if err := r.db.SelectContext(ctx, &leaves, query, to, from); err != nil {
		return nil, fmt.Errorf("list approved leaves: %w", err)
	}
	return leaves, nil
}
