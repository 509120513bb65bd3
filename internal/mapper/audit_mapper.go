package mapper

import (
	"encoding/json"

	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/model"

	"gorm.io/datatypes"
)

type AuditMapper struct{}

func NewAuditMapper() *AuditMapper {
	return &AuditMapper{}
}

func (m *AuditMapper) ToEntity(a *model.AuditLog) *entity.AuditLog {
	if a == nil {
		return nil
	}

	details := map[string]interface{}{}
	if len(a.Details) > 0 {
		// Ignore malformed payloads rather than failing the read
		_ = json.Unmarshal(a.Details, &details)
	}

	return &entity.AuditLog{
		Id:         a.Id,
		EventType:  a.EventType,
		ActorId:    a.ActorId,
		Details:    details,
		OccurredAt: a.OccurredAt,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *AuditMapper) ToModel(a *entity.AuditLog) *model.AuditLog {
	if a == nil {
		return nil
	}

	var details datatypes.JSON
	if a.Details != nil {
		if raw, err := json.Marshal(a.Details); err == nil {
			details = raw
		}
	}

	return &model.AuditLog{
		Id:         a.Id,
		EventType:  a.EventType,
		ActorId:    a.ActorId,
		Details:    details,
		OccurredAt: a.OccurredAt,
		CreatedAt:  a.CreatedAt,
	}
}

func (m *AuditMapper) ToEntities(logs []*model.AuditLog) []*entity.AuditLog {
	entities := make([]*entity.AuditLog, len(logs))
	for i, a := range logs {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
