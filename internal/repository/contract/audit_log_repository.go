package contract

import (
	"context"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/repository/specification"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
