package policy

import (
	"personal-notes-be/internal/entity"

	"github.com/google/uuid"
)

// Action enumerates what an actor may attempt against a note.
type Action string

const (
	ActionList        Action = "list"
	ActionCreate      Action = "create"
	ActionView        Action = "view"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionRestore     Action = "restore"
	ActionForceDelete Action = "force_delete"
)

// CanAccessNote is the single ownership decision point for note actions that
// target an existing record. Every mutating path must go through it; the
// comparison is never re-derived inline in handlers or services.
//
// Restore and force-delete are denied for every actor: deletion is permanent
// and there is no soft-delete lifecycle to restore from.
func CanAccessNote(actorId uuid.UUID, note *entity.Note, action Action) bool {
	if note == nil {
		return false
	}

	switch action {
	case ActionView, ActionUpdate, ActionDelete:
		return actorId == note.UserId
	case ActionRestore, ActionForceDelete:
		return false
	default:
		return false
	}
}

// CanCreateNote: any authenticated user may create notes for themselves.
func CanCreateNote(actorId uuid.UUID) bool {
	return actorId != uuid.Nil
}

// CanListNotes: any authenticated user may list their own notes. The listing
// query itself is owner-scoped, so this only gates the entry point.
func CanListNotes(actorId uuid.UUID) bool {
	return actorId != uuid.Nil
}
