package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/pad2skills/backend/internal/domain/entities"
	"github.com/pad2skills/backend/internal/domain/repositories"
	apperrors "github.com/pad2skills/backend/pkg/errors"
	"github.com/pad2skills/backend/pkg/utils"
)

// Filter fields accepted by UpdateFilter.
const (
	FilterFieldProject       = "project"
	FilterFieldIndustry      = "industry"
	FilterFieldTopFiveOnly   = "top_five_only"
	FilterFieldSkillPrep     = "skill_prep_level"
	FilterFieldSkillCategory = "skill_category"
)

// SessionService runs every stateful interaction: filter changes, page
// navigation, and chat submissions. Each interaction goes through the
// store's Update so it commits whole or not at all, and each returns the
// refreshed client-visible state.
type SessionService struct {
	sessions  repositories.SessionStore
	dashboard *DashboardService
	filters   *FilterService
	chat      *ChatService
	facts     repositories.FactRepository
}

// NewSessionService creates a new session service
func NewSessionService(sessions repositories.SessionStore, dashboard *DashboardService, filters *FilterService, chat *ChatService, facts repositories.FactRepository) *SessionService {
	return &SessionService{
		sessions:  sessions,
		dashboard: dashboard,
		filters:   filters,
		chat:      chat,
		facts:     facts,
	}
}

// View returns the session's current client-visible state without
// mutating anything. Unknown sessions come back with defaults.
func (s *SessionService) View(ctx context.Context, sessionID string) (*entities.DashboardView, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(state), nil
}

// EndSession discards the session's state. The next request under the
// same id starts over with defaults.
func (s *SessionService) EndSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// UpdateFilter applies one filter change and re-clamps every table's
// pagination cursor against the rows surviving the new selection. An
// industry selection that no longer exists under the new project filter
// degrades to all industries rather than rendering an empty view.
func (s *SessionService) UpdateFilter(ctx context.Context, sessionID, field, value string) (*entities.DashboardView, error) {
	state, err := s.sessions.Update(ctx, sessionID, func(state *entities.SessionState) error {
		switch field {
		case FilterFieldProject:
			state.Filters.Project = utils.NormalizeFilterValue(value)
		case FilterFieldIndustry:
			state.Filters.Industry = utils.NormalizeFilterValue(value)
		case FilterFieldTopFiveOnly:
			enabled, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return apperrors.NewValidationError("top_five_only must be a boolean")
			}
			state.Filters.TopFiveOnly = enabled
		case FilterFieldSkillPrep:
			state.SkillFilters.PrepLevelLabel = strings.TrimSpace(value)
		case FilterFieldSkillCategory:
			state.SkillFilters.SkillCategory = strings.TrimSpace(value)
		default:
			return apperrors.NewValidationError("unknown filter field: " + field)
		}

		occupations, err := s.facts.GetOccupationFacts(ctx)
		if err != nil {
			return err
		}
		state.Filters = s.filters.NormalizeSelection(occupations, state.Filters)

		return s.reclampPages(ctx, state)
	})
	if err != nil {
		return nil, err
	}
	return s.buildView(state), nil
}

// NavigatePage moves one table's cursor a single step and returns the
// resulting page. Navigation past either end is a bounded no-op.
func (s *SessionService) NavigatePage(ctx context.Context, sessionID string, table entities.TableID, direction string) (*entities.DetailPage, error) {
	if !table.IsValid() {
		return nil, apperrors.NewValidationError("unknown detail table: " + string(table))
	}
	if direction != PagePrevious && direction != PageNext {
		return nil, apperrors.NewValidationError("direction must be previous or next")
	}

	state, err := s.sessions.Update(ctx, sessionID, func(state *entities.SessionState) error {
		full, err := s.dashboard.DetailTable(ctx, table, state.Filters, state.SkillFilters)
		if err != nil {
			return err
		}
		totalPages := TotalPages(len(full.Rows), s.dashboard.PageSize())
		page := state.Page(table, s.dashboard.PageSize())
		page.PageIndex = Navigate(page.PageIndex, totalPages, direction)
		state.SetPage(table, page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	page := state.Page(table, s.dashboard.PageSize())
	return s.dashboard.DetailPage(ctx, table, state.Filters, state.SkillFilters, page.PageIndex)
}

// TablePage returns one table's current page for the session without
// mutating the cursor. A cursor left stale by a filter change is shown
// re-clamped.
func (s *SessionService) TablePage(ctx context.Context, sessionID string, table entities.TableID) (*entities.DetailPage, error) {
	if !table.IsValid() {
		return nil, apperrors.NewValidationError("unknown detail table: " + string(table))
	}
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	page := state.Page(table, s.dashboard.PageSize())
	return s.dashboard.DetailPage(ctx, table, state.Filters, state.SkillFilters, page.PageIndex)
}

// SubmitChat resolves a free-text question or preset pill to a scripted
// response and appends the user/assistant pair to the transcript as one
// unit. Either text or presetID must be set; presetID wins when both are.
func (s *SessionService) SubmitChat(ctx context.Context, sessionID, text, presetID string, pageCtx entities.PageContext) (*entities.DashboardView, error) {
	var userText, reply string

	switch {
	case presetID != "":
		preset, ok := s.chat.Preset(presetID)
		if !ok {
			return nil, apperrors.NewNotFoundError("unknown preset question: " + presetID)
		}
		userText, reply = preset.Question, preset.Answer
	case strings.TrimSpace(text) != "":
		if !pageCtx.IsValid() {
			return nil, apperrors.NewValidationError("unknown page context: " + string(pageCtx))
		}
		userText = strings.TrimSpace(text)
		reply, _ = s.chat.Respond(ctx, userText, pageCtx)
	default:
		return nil, apperrors.NewValidationError("either text or preset_id is required")
	}

	state, err := s.sessions.Update(ctx, sessionID, func(state *entities.SessionState) error {
		state.AppendExchange(userText, reply)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.buildView(state), nil
}

func (s *SessionService) reclampPages(ctx context.Context, state *entities.SessionState) error {
	for _, table := range []entities.TableID{entities.TableOccupations, entities.TableSkills, entities.TableTraining} {
		full, err := s.dashboard.DetailTable(ctx, table, state.Filters, state.SkillFilters)
		if err != nil {
			return err
		}
		totalPages := TotalPages(len(full.Rows), s.dashboard.PageSize())
		page := state.Page(table, s.dashboard.PageSize())
		page.PageIndex = ClampPage(page.PageIndex, totalPages)
		state.SetPage(table, page)
	}
	return nil
}

func (s *SessionService) buildView(state *entities.SessionState) *entities.DashboardView {
	pages := make(map[entities.TableID]entities.PaginationState, 3)
	for _, table := range []entities.TableID{entities.TableOccupations, entities.TableSkills, entities.TableTraining} {
		pages[table] = state.Page(table, s.dashboard.PageSize())
	}
	return &entities.DashboardView{
		Greeting:     entities.ChatGreeting,
		Filters:      state.Filters,
		SkillFilters: state.SkillFilters,
		Pages:        pages,
		Transcript:   state.Transcript,
	}
}
