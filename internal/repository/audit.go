package repository

import (
	"fmt"

	"github.com/edusys/school-payments/internal/models"
)

// AppendAudit stores one audit trail entry
func (r *Repository) AppendAudit(entry *models.AuditEntry) error {
	query := `
		INSERT INTO school.audit_log (actor_id, action, entity, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, entry.ActorID, entry.Action, entry.Entity, entry.EntityID, entry.Detail).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// ListAudit retrieves audit entries newest first, optionally filtered by
// entity name and/or actor, paginated.
func (r *Repository) ListAudit(entity string, actorID int64, limit, offset int) ([]models.AuditEntry, error) {
	query := `
		SELECT id, actor_id, action, entity, entity_id, COALESCE(detail, ''), created_at
		FROM school.audit_log
		WHERE ($1 = '' OR entity = $1)
		  AND ($2 = 0 OR actor_id = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(query, entity, actorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
