package service

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"studium-server/internal/domain"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var activitySchemas = map[domain.ActivityType]string{
	domain.ActivityFlashcard:      "schemas/flashcards.json",
	domain.ActivityMultipleChoice: "schemas/multiple_choice.json",
	domain.ActivityTrueFalse:      "schemas/true_false.json",
	domain.ActivitySummary:        "schemas/summary.json",
	domain.ActivityMixed:          "schemas/mixed.json",
}

const studyPlanSchemaPath = "schemas/study_plan.json"

// ResponseValidator checks model output against the JSON schema for each
// activity type before any of it reaches the domain layer.
type ResponseValidator struct {
	schemas   map[domain.ActivityType]*jsonschema.Schema
	studyPlan *jsonschema.Schema
}

func NewResponseValidator() (*ResponseValidator, error) {
	v := &ResponseValidator{schemas: make(map[domain.ActivityType]*jsonschema.Schema)}
	for activity, path := range activitySchemas {
		schema, err := compileSchema(path)
		if err != nil {
			return nil, err
		}
		v.schemas[activity] = schema
	}
	studyPlan, err := compileSchema(studyPlanSchemaPath)
	if err != nil {
		return nil, err
	}
	v.studyPlan = studyPlan
	return v, nil
}

func compileSchema(path string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	schema, err := jsonschema.CompileString(path, string(raw))
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", path, err)
	}
	return schema, nil
}

// extractJSON pulls the JSON object out of a raw model response. Models
// sometimes wrap the payload in markdown fences or prose despite the prompt
// saying not to, so we take everything between the first '{' and the last '}'.
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("no JSON object in response")
	}
	return raw[start : end+1], nil
}

func (v *ResponseValidator) validate(schema *jsonschema.Schema, raw string) (map[string]interface{}, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}
	var decoded interface{}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, fmt.Errorf("decoding response JSON: %w", err)
	}
	if err := schema.Validate(decoded); err != nil {
		return nil, fmt.Errorf("response failed schema validation: %w", err)
	}
	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object")
	}
	return obj, nil
}

// Wire structs mirror the JSON the models are instructed to produce.

type wireFlashcard struct {
	Pregunta   string `json:"pregunta"`
	Respuesta  string `json:"respuesta"`
	Dificultad string `json:"dificultad"`
}

type wireMultipleChoice struct {
	Pregunta          string   `json:"pregunta"`
	Opciones          []string `json:"opciones"`
	RespuestaCorrecta int      `json:"respuesta_correcta"`
	Explicacion       string   `json:"explicacion"`
}

type wireTrueFalse struct {
	Afirmacion        string `json:"afirmacion"`
	RespuestaCorrecta bool   `json:"respuesta_correcta"`
	Explicacion       string `json:"explicacion"`
}

type wireSummary struct {
	Titulo      string   `json:"titulo"`
	Contenido   string   `json:"contenido"`
	PuntosClave []string `json:"puntos_clave"`
}

type wireFlashcards struct {
	Tarjetas []wireFlashcard `json:"tarjetas"`
}

type wireMultipleChoices struct {
	Preguntas []wireMultipleChoice `json:"preguntas"`
}

type wireTrueFalses struct {
	Preguntas []wireTrueFalse `json:"preguntas"`
}

type wireMixed struct {
	Tarjetas       []wireFlashcard      `json:"tarjetas"`
	OpcionMultiple []wireMultipleChoice `json:"opcion_multiple"`
	VerdaderoFalso []wireTrueFalse      `json:"verdadero_falso"`
}

// ParseActivities validates a raw model response for the given activity type
// and maps it into domain activities. Results past the requested count are
// dropped; fewer than requested is still a valid result.
func (v *ResponseValidator) ParseActivities(activityType domain.ActivityType, raw string, count int) ([]any, error) {
	schema, ok := v.schemas[activityType]
	if !ok {
		return nil, fmt.Errorf("no schema for activity type %s", activityType)
	}
	if _, err := v.validate(schema, raw); err != nil {
		return nil, err
	}
	payload, _ := extractJSON(raw)

	switch activityType {
	case domain.ActivityFlashcard:
		var wire wireFlashcards
		if err := json.Unmarshal([]byte(payload), &wire); err != nil {
			return nil, err
		}
		return mapFlashcards(wire.Tarjetas, count), nil

	case domain.ActivityMultipleChoice:
		var wire wireMultipleChoices
		if err := json.Unmarshal([]byte(payload), &wire); err != nil {
			return nil, err
		}
		return mapMultipleChoice(wire.Preguntas, count)

	case domain.ActivityTrueFalse:
		var wire wireTrueFalses
		if err := json.Unmarshal([]byte(payload), &wire); err != nil {
			return nil, err
		}
		return mapTrueFalse(wire.Preguntas, count), nil

	case domain.ActivitySummary:
		var wire wireSummary
		if err := json.Unmarshal([]byte(payload), &wire); err != nil {
			return nil, err
		}
		return []any{domain.Summary{
			Type:      domain.ActivitySummary,
			Title:     wire.Titulo,
			Content:   wire.Contenido,
			KeyPoints: wire.PuntosClave,
		}}, nil

	case domain.ActivityMixed:
		var wire wireMixed
		if err := json.Unmarshal([]byte(payload), &wire); err != nil {
			return nil, err
		}
		activities := mapFlashcards(wire.Tarjetas, len(wire.Tarjetas))
		mc, err := mapMultipleChoice(wire.OpcionMultiple, len(wire.OpcionMultiple))
		if err != nil {
			return nil, err
		}
		activities = append(activities, mc...)
		activities = append(activities, mapTrueFalse(wire.VerdaderoFalso, len(wire.VerdaderoFalso))...)
		if len(activities) == 0 {
			return nil, fmt.Errorf("mixed response contained no activities")
		}
		return activities, nil

	default:
		return nil, fmt.Errorf("unsupported activity type %s", activityType)
	}
}

// ParseStudyPlan validates a raw study plan response and returns the decoded
// wire object for the study plan service to assemble.
func (v *ResponseValidator) ParseStudyPlan(raw string) (*wireStudyPlan, error) {
	if _, err := v.validate(v.studyPlan, raw); err != nil {
		return nil, err
	}
	payload, _ := extractJSON(raw)
	var wire wireStudyPlan
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, err
	}
	return &wire, nil
}

type wireStudyTopic struct {
	Nombre      string `json:"nombre"`
	Importancia int    `json:"importancia"`
	Dificultad  string `json:"dificultad"`
	Descripcion string `json:"descripcion"`
}

type wireDailyPlan struct {
	Dia            int      `json:"dia"`
	Fecha          string   `json:"fecha"`
	Temas          []string `json:"temas"`
	Acciones       []string `json:"acciones"`
	HorasEstimadas float64  `json:"horas_estimadas"`
}

type wireStudyPlan struct {
	TemasPrincipales         []wireStudyTopic `json:"temas_principales"`
	TemasDificiles           []wireStudyTopic `json:"temas_dificiles"`
	PlanPorDia               []wireDailyPlan  `json:"plan_por_dia"`
	RecomendacionesGenerales []string         `json:"recomendaciones_generales"`
	TecnicasEstudio          []string         `json:"tecnicas_estudio"`
}

func mapFlashcards(cards []wireFlashcard, count int) []any {
	if len(cards) > count {
		cards = cards[:count]
	}
	out := make([]any, 0, len(cards))
	for _, c := range cards {
		out = append(out, domain.Flashcard{
			Type:       domain.ActivityFlashcard,
			Front:      c.Pregunta,
			Back:       c.Respuesta,
			Difficulty: c.Dificultad,
		})
	}
	return out
}

func mapMultipleChoice(questions []wireMultipleChoice, count int) ([]any, error) {
	if len(questions) > count {
		questions = questions[:count]
	}
	out := make([]any, 0, len(questions))
	for _, q := range questions {
		if q.RespuestaCorrecta < 0 || q.RespuestaCorrecta >= len(q.Opciones) {
			return nil, fmt.Errorf("correct answer index %d out of range for %d options", q.RespuestaCorrecta, len(q.Opciones))
		}
		out = append(out, domain.MultipleChoiceQuestion{
			Type:         domain.ActivityMultipleChoice,
			Question:     q.Pregunta,
			Options:      q.Opciones,
			CorrectIndex: q.RespuestaCorrecta,
			Explanation:  q.Explicacion,
		})
	}
	return out, nil
}

func mapTrueFalse(questions []wireTrueFalse, count int) []any {
	if len(questions) > count {
		questions = questions[:count]
	}
	out := make([]any, 0, len(questions))
	for _, q := range questions {
		out = append(out, domain.TrueFalseQuestion{
			Type:        domain.ActivityTrueFalse,
			Statement:   q.Afirmacion,
			Answer:      q.RespuestaCorrecta,
			Explanation: q.Explicacion,
		})
	}
	return out
}
