package unitofwork

import (
	"context"

	"personal-notes-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	NoteRepository() contract.NoteRepository
	AuditLogRepository() contract.AuditLogRepository
}
