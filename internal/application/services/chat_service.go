package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pad2skills/backend/internal/domain/entities"
	"github.com/pad2skills/backend/internal/infrastructure/observability"
)

// chatRule maps a keyword set to a canned response. Rules are evaluated
// in order, first match wins; matching is lowercase substring membership.
type chatRule struct {
	keywords []string
	response string
}

// Canned responses shared between keyword rules and preset questions.
const (
	answerTopIndustries = "Based on the data, the top industries are shown in the chart above."
	answerOtherData     = "You can explore skills data and training programs in other pages."
	answerEntrySkills   = "Entry-level roles (Job Zones 1-2) typically require basic communication, digital literacy, and fundamental technical skills."
	answerPADObjectives = "The skills shown above directly support the project activities and objectives outlined in the PADs."
)

// chatFallbackTemplate echoes the user's text verbatim when nothing matches.
const chatFallbackTemplate = "Thanks for your question: '%s'. I'm still learning!"

// ChatService is the scripted responder: a pure function from user text
// and page context to a display string. It never reads or writes the
// transcript; the caller appends the exchange atomically. There is no
// language understanding here, only an ordered keyword rule list.
type ChatService struct {
	rules   map[entities.PageContext][]chatRule
	presets []entities.PresetQuestion
	metrics *observability.Metrics
}

// NewChatService creates the responder with its fixed rule lists and
// preset pill questions
func NewChatService(metrics *observability.Metrics) *ChatService {
	return &ChatService{
		metrics: metrics,
		rules: map[entities.PageContext][]chatRule{
			entities.ContextOccupations: {
				{keywords: []string{"industry", "industries", "sector"}, response: answerTopIndustries},
				{keywords: []string{"data", "examine", "explore"}, response: answerOtherData},
			},
			entities.ContextSkills: {
				{keywords: []string{"entry", "entry-level", "training"}, response: answerEntrySkills},
				{keywords: []string{"objective", "pad", "connect"}, response: answerPADObjectives},
			},
		},
		presets: []entities.PresetQuestion{
			{
				ID:       "occupations-top-industries",
				Context:  entities.ContextOccupations,
				Question: "What industries have the most jobs?",
				Answer:   answerTopIndustries,
			},
			{
				ID:       "occupations-other-data",
				Context:  entities.ContextOccupations,
				Question: "What other data can I examine?",
				Answer:   answerOtherData,
			},
			{
				ID:       "skills-entry-level",
				Context:  entities.ContextSkills,
				Question: "What skills are suitable for entry-level training programs?",
				Answer:   answerEntrySkills,
			},
			{
				ID:       "skills-pad-objectives",
				Context:  entities.ContextSkills,
				Question: "How do skills in this industry connect to the PAD objectives?",
				Answer:   answerPADObjectives,
			},
		},
	}
}

// Respond maps free text to a canned response for the given page context.
// Unknown contexts fall back to the occupations rule list. The returned
// bool reports whether a keyword rule matched (false means the echo
// fallback was used).
func (s *ChatService) Respond(ctx context.Context, userText string, pageCtx entities.PageContext) (string, bool) {
	lowered := strings.ToLower(userText)
	rules, ok := s.rules[pageCtx]
	if !ok {
		rules = s.rules[entities.ContextOccupations]
	}

	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.response, true
			}
		}
	}

	if s.metrics != nil {
		observability.RecordChatFallback(ctx, s.metrics, string(pageCtx))
	}
	return fmt.Sprintf(chatFallbackTemplate, userText), false
}

// Preset looks up a pill question by id. Presets carry their answer
// pre-attached and bypass keyword matching entirely.
func (s *ChatService) Preset(id string) (*entities.PresetQuestion, bool) {
	for i := range s.presets {
		if s.presets[i].ID == id {
			return &s.presets[i], true
		}
	}
	return nil, false
}

// Presets lists the pill questions for a page context. An empty context
// lists all of them.
func (s *ChatService) Presets(pageCtx entities.PageContext) []entities.PresetQuestion {
	var result []entities.PresetQuestion
	for _, p := range s.presets {
		if pageCtx == "" || p.Context == pageCtx {
			result = append(result, p)
		}
	}
	return result
}
