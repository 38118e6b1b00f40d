package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateNote(ctx context.Context, n *ClinicalNote) error
	// ListNotes returns notes ordered by created_at DESC; a zero intakeID
	// means all notes.
	ListNotes(ctx context.Context, intakeID uuid.UUID, limit, offset int) ([]*ClinicalNote, int, error)
}
