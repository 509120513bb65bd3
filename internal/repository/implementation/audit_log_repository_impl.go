package implementation

import (
	"context"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/mapper"
	"personal-notes-be/internal/model"
	"personal-notes-be/internal/repository/contract"
	"personal-notes-be/internal/repository/specification"

	"gorm.io/gorm"
)

type AuditLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AuditMapper
}

func NewAuditLogRepository(db *gorm.DB) contract.AuditLogRepository {
	return &AuditLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewAuditMapper(),
	}
}

func (r *AuditLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AuditLogRepositoryImpl) Create(ctx context.Context, log *entity.AuditLog) error {
	m := r.mapper.ToModel(log)
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *AuditLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	var models []*model.AuditLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *AuditLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.AuditLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
