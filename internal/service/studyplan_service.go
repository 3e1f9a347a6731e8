package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"studium-server/internal/domain"
	"studium-server/pkg/errors"
)

const urgentThresholdDays = 7

// StudyPlanGenerator turns a processed document plus an exam date into a
// day-by-day study schedule. It reuses the generation service's provider
// chain through the PromptRunner interface.
type StudyPlanGenerator struct {
	runner          domain.PromptRunner
	prompts         *PromptLibrary
	validator       *ResponseValidator
	logger          domain.Logger
	defaultLanguage string
}

func NewStudyPlanGenerator(runner domain.PromptRunner, cfg domain.Config, logger domain.Logger) (*StudyPlanGenerator, error) {
	prompts, err := NewPromptLibrary()
	if err != nil {
		return nil, err
	}
	validator, err := NewResponseValidator()
	if err != nil {
		return nil, err
	}
	return &StudyPlanGenerator{
		runner:          runner,
		prompts:         prompts,
		validator:       validator,
		logger:          logger,
		defaultLanguage: cfg.GetDefaultLanguage(),
	}, nil
}

// GeneratePlan renders the study plan prompt, runs it through the provider
// chain and assembles the stored plan. The exam date must be today or later.
func (g *StudyPlanGenerator) GeneratePlan(ctx context.Context, text string, req domain.StudyPlanRequest) (*domain.StudyPlan, error) {
	examDate, err := time.Parse("2006-01-02", req.ExamDate)
	if err != nil {
		return nil, errors.NewValidationError("exam_date must be in YYYY-MM-DD format")
	}
	today := time.Now().Truncate(24 * time.Hour)
	daysRemaining := int(examDate.Sub(today).Hours() / 24)
	if daysRemaining < 0 {
		return nil, errors.NewValidationError("exam_date is in the past")
	}

	switch req.Language {
	case domain.LanguageSpanish, domain.LanguageEnglish:
	default:
		req.Language = domain.LanguageSpanish
		if g.defaultLanguage == domain.LanguageEnglish {
			req.Language = domain.LanguageEnglish
		}
	}

	prompt, err := g.prompts.StudyPlanPrompt(BoundText(CleanText(text), maxPromptRunes), req, today, daysRemaining)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	raw, provider, err := g.runner.RunPrompt(ctx, prompt)
	if err != nil {
		return nil, err
	}
	wire, err := g.validator.ParseStudyPlan(raw)
	if err != nil {
		// A malformed plan from the chain's winning provider is terminal;
		// failover already happened inside RunPrompt.
		return nil, errors.NewProvidersExhaustedError("study plan response was not valid JSON", err)
	}

	plan := assemblePlan(wire, req, provider, daysRemaining)
	plan.ProcessingTime = time.Since(started).Seconds()

	g.logger.Info("study plan generated",
		"plan_id", plan.PlanID,
		"subject", plan.SubjectName,
		"days_remaining", plan.DaysRemaining,
		"provider", provider)
	return plan, nil
}

func assemblePlan(wire *wireStudyPlan, req domain.StudyPlanRequest, provider string, daysRemaining int) *domain.StudyPlan {
	status := "normal"
	if daysRemaining <= urgentThresholdDays {
		status = "urgente"
	}

	var totalHours float64
	daily := make([]domain.DailyStudyPlan, 0, len(wire.PlanPorDia))
	for _, d := range wire.PlanPorDia {
		totalHours += d.HorasEstimadas
		daily = append(daily, domain.DailyStudyPlan{
			Day:            d.Dia,
			Date:           d.Fecha,
			Topics:         d.Temas,
			Actions:        d.Acciones,
			EstimatedHours: d.HorasEstimadas,
		})
	}
	dailyAverage := 0.0
	if len(daily) > 0 {
		dailyAverage = totalHours / float64(len(daily))
	}

	return &domain.StudyPlan{
		PlanID:                 uuid.New().String(),
		SubjectName:            req.SubjectName,
		ExamDate:               req.ExamDate,
		CreatedAt:              time.Now().Format(time.RFC3339),
		Status:                 status,
		DaysRemaining:          daysRemaining,
		MainTopics:             mapTopics(wire.TemasPrincipales),
		HardestTopics:          mapTopics(wire.TemasDificiles),
		DailyPlan:              daily,
		GeneralRecommendations: wire.RecomendacionesGenerales,
		StudyTechniques:        wire.TecnicasEstudio,
		Statistics: domain.StudyStatistics{
			TotalTopics:         len(wire.TemasPrincipales),
			EstimatedTotalHours: totalHours,
			DailyAverageHours:   dailyAverage,
		},
		Language: req.Language,
		Provider: provider,
	}
}

func mapTopics(topics []wireStudyTopic) []domain.StudyTopic {
	out := make([]domain.StudyTopic, 0, len(topics))
	for _, t := range topics {
		out = append(out, domain.StudyTopic{
			Name:        t.Nombre,
			Importance:  t.Importancia,
			Difficulty:  t.Dificultad,
			Description: t.Descripcion,
		})
	}
	return out
}
