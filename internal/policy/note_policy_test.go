package policy

import (
	"testing"

	"personal-notes-be/internal/entity"

	"github.com/google/uuid"
)

func TestCanAccessNote(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	note := &entity.Note{Id: uuid.New(), Title: "Groceries", UserId: owner}

	tests := []struct {
		name   string
		actor  uuid.UUID
		note   *entity.Note
		action Action
		want   bool
	}{
		{"owner can view", owner, note, ActionView, true},
		{"owner can update", owner, note, ActionUpdate, true},
		{"owner can delete", owner, note, ActionDelete, true},
		{"stranger cannot view", stranger, note, ActionView, false},
		{"stranger cannot update", stranger, note, ActionUpdate, false},
		{"stranger cannot delete", stranger, note, ActionDelete, false},
		{"restore denied even for owner", owner, note, ActionRestore, false},
		{"force delete denied even for owner", owner, note, ActionForceDelete, false},
		{"restore denied for stranger", stranger, note, ActionRestore, false},
		{"nil note denied", owner, nil, ActionView, false},
		{"unknown action denied", owner, note, Action("publish"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccessNote(tt.actor, tt.note, tt.action)
			if got != tt.want {
				t.Errorf("CanAccessNote(%v) = %v, want %v", tt.action, got, tt.want)
			}
		})
	}
}

func TestCanCreateNote(t *testing.T) {
	if !CanCreateNote(uuid.New()) {
		t.Error("authenticated user should be allowed to create")
	}
	if CanCreateNote(uuid.Nil) {
		t.Error("zero actor id should be denied")
	}
}

func TestCanListNotes(t *testing.T) {
	if !CanListNotes(uuid.New()) {
		t.Error("authenticated user should be allowed to list own notes")
	}
	if CanListNotes(uuid.Nil) {
		t.Error("zero actor id should be denied")
	}
}
