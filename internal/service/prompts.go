package service

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/tyler-sommer/stick"

	"studium-server/internal/domain"
)

//go:embed prompts/*.twig
var promptFS embed.FS

// PromptLibrary renders the embedded prompt templates. Templates are keyed
// by their base name without the .twig extension, e.g. "flashcard_es".
type PromptLibrary struct {
	env       *stick.Env
	templates map[string]string
}

func NewPromptLibrary() (*PromptLibrary, error) {
	lib := &PromptLibrary{
		env:       stick.New(nil),
		templates: make(map[string]string),
	}

	entries, err := fs.ReadDir(promptFS, "prompts")
	if err != nil {
		return nil, fmt.Errorf("reading prompt templates: %w", err)
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".twig")
		raw, err := fs.ReadFile(promptFS, "prompts/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading prompt template %s: %w", entry.Name(), err)
		}
		lib.templates[name] = string(raw)
	}
	return lib, nil
}

// Render executes the named template with the given context.
func (p *PromptLibrary) Render(name string, ctx map[string]stick.Value) (string, error) {
	src, ok := p.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt template: %s", name)
	}
	var sb strings.Builder
	if err := p.env.Execute(src, &sb, ctx); err != nil {
		return "", fmt.Errorf("rendering prompt %s: %w", name, err)
	}
	return sb.String(), nil
}

// ActivityPrompt builds the prompt for a generation request. The template is
// selected by activity type and language, e.g. flashcard_es or summary_en.
func (p *PromptLibrary) ActivityPrompt(req domain.GenerationRequest) (string, error) {
	key := fmt.Sprintf("%s_%s", req.ActivityType, req.Language)
	ctx := map[string]stick.Value{
		"text":       req.Text,
		"count":      req.Count,
		"topic":      req.Topic,
		"difficulty": req.Difficulty,
	}
	return p.Render(key, ctx)
}

// StudyPlanPrompt builds the prompt for a study plan request.
func (p *PromptLibrary) StudyPlanPrompt(text string, req domain.StudyPlanRequest, today time.Time, daysRemaining int) (string, error) {
	key := fmt.Sprintf("study_plan_%s", req.Language)
	ctx := map[string]stick.Value{
		"text":           text,
		"subject":        req.SubjectName,
		"exam_date":      req.ExamDate,
		"today":          today.Format("2006-01-02"),
		"days_remaining": daysRemaining,
	}
	return p.Render(key, ctx)
}
