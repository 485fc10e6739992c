package commands

import (
	"errors"

	"fulfilment/internal/pkg/guard"
)

var (
	ErrArchiveOrdersCommandIsNotConstructed = errors.New(
		"ArchiveOrdersCommand must be created via NewArchiveOrdersCommand constructor",
	)
)

// ArchiveOrdersCommand copies the order board into the archive.
//
// Example:
//
//	cmd := NewArchiveOrdersCommand()
//	handler := NewArchiveOrdersCommandHandler(h, uowFactory)
//
//	// Run periodically to keep the archive in step with the board
//	ticker := time.NewTicker(10 * time.Second)
//	for range ticker.C {
//	    if _, err := handler.Handle(ctx, cmd); err != nil {
//	        log.Printf("archive sync failed: %v", err)
//	    }
//	}
type ArchiveOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewArchiveOrdersCommand creates a parameterless archive command.
func NewArchiveOrdersCommand() ArchiveOrdersCommand {
	return ArchiveOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ArchiveOrdersCommand) Validate() error {
	return c.guard.Validate(ErrArchiveOrdersCommandIsNotConstructed)
}
