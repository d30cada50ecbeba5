package importer

import (
	"context"
	"fmt"

	"github.com/toolgate/toolgate/internal/models"
)

// batchState tracks the commit of one import batch:
// PENDING -> COMMITTING(i) -> {COMMITTED | ROLLING_BACK -> ROLLED_BACK}.
// There is no partial-commit terminal state.
type batchState int

const (
	batchPending batchState = iota
	batchCommitting
	batchCommitted
	batchRollingBack
	batchRolledBack
)

func (s batchState) String() string {
	switch s {
	case batchPending:
		return "pending"
	case batchCommitting:
		return "committing"
	case batchCommitted:
		return "committed"
	case batchRollingBack:
		return "rolling_back"
	case batchRolledBack:
		return "rolled_back"
	}
	return "unknown"
}

// CommitError reports the definition that broke the batch, together with
// how many earlier definitions were already rolled back.
type CommitError struct {
	Index      int
	Name       string
	RolledBack int
	Err        error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to register tool %d (%s): %v (rolled back %d earlier registrations)",
		e.Index, e.Name, e.Err, e.RolledBack)
}

func (e *CommitError) Unwrap() error { return e.Err }

// committedTool is one successful registration awaiting batch completion.
type committedTool struct {
	id   string
	tool models.Tool
}

// commitAll submits each definition, in order, to the registry. The
// batch is all-or-nothing: on the first failure of any kind it stops,
// undoes every registration committed earlier in this batch, and
// reports the failing definition's position and name with the
// underlying error. The committed list is an explicit accumulator so
// the undo step runs deterministically on every failure path.
func (s *Service) commitAll(ctx context.Context, tools []models.Tool, teamID, visibility string) ([]committedTool, error) {
	committed := make([]committedTool, 0, len(tools))
	s.logger.Debug().
		Int("batch_size", len(tools)).
		Str("state", batchPending.String()).
		Msg("import batch ready to commit")

	for i, tool := range tools {
		tool.TeamID = teamID
		tool.Visibility = visibility

		id, err := s.registry.Register(ctx, tool)
		if err != nil {
			s.logger.Warn().
				Int("index", i).
				Str("name", tool.Name).
				Str("state", batchRollingBack.String()).
				Str("error", err.Error()).
				Msg("tool registration failed, rolling back batch")

			rolledBack := s.rollback(ctx, committed)
			s.logger.Info().
				Int("rolled_back", rolledBack).
				Str("state", batchRolledBack.String()).
				Msg("import batch rolled back")

			return nil, &CommitError{Index: i, Name: tool.Name, RolledBack: rolledBack, Err: err}
		}

		committed = append(committed, committedTool{id: id, tool: tool})
		s.logger.Debug().
			Int("index", i).
			Str("id", id).
			Str("name", tool.Name).
			Str("state", batchCommitting.String()).
			Msg("tool committed")
	}

	s.logger.Debug().
		Int("committed", len(committed)).
		Str("state", batchCommitted.String()).
		Msg("import batch committed")
	return committed, nil
}

// rollback undoes the committed registrations in reverse commit order.
// Undo failures are logged and do not stop the remaining undos; every
// committed ID gets an undo attempt.
func (s *Service) rollback(ctx context.Context, committed []committedTool) int {
	rolledBack := 0
	for i := len(committed) - 1; i >= 0; i-- {
		c := committed[i]
		if err := s.registry.Unregister(ctx, c.id); err != nil {
			s.logger.Error().
				Str("id", c.id).
				Str("name", c.tool.Name).
				Str("error", err.Error()).
				Msg("failed to undo registration during rollback")
			continue
		}
		rolledBack++
	}
	return rolledBack
}
