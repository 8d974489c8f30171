// Package advice asks an OpenAI-compatible chat model to comment on the
// generated training plan.
package advice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avirtanen/gymprogress/internal/trainer"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// DefaultBaseURL points at OpenRouter, which speaks the OpenAI chat API.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModel is a free tier model, good enough for short coaching notes.
	DefaultModel = "meta-llama/llama-3.3-70b-instruct:free"

	maxCompletionTokens = 1024
	temperature         = 0.7
)

// Client implements trainer.Advisor with a single-shot chat completion.
type Client struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

// NewClient builds an advice client. Empty baseURL and model fall back to the
// OpenRouter defaults.
func NewClient(apiKey, baseURL, model string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model:  model,
		logger: logger,
	}
}

// Advise sends the plan and recent history to the model and returns its
// coaching note.
func (c *Client) Advise(ctx context.Context, req trainer.AdviceRequest) (string, error) {
	prompt := buildPrompt(req)

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(maxCompletionTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "received advice completion",
		slog.String("model", c.model),
		slog.Int64("prompt_tokens", completion.Usage.PromptTokens),
		slog.Int64("completion_tokens", completion.Usage.CompletionTokens))

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", c.model)
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("model %s returned an empty message", c.model)
	}
	return content, nil
}

func buildPrompt(req trainer.AdviceRequest) string {
	var b strings.Builder

	b.WriteString("Ты — персональный фитнес-тренер в приложении для трекинга тренировок. ")
	b.WriteString("Пользователь нажал кнопку \"Спросить ИИ\".\n")
	b.WriteString("Дай краткий, полезный совет на русском языке (3-5 предложений). Будь конкретным, опирайся на данные.\n\n")

	fmt.Fprintf(&b, "Цель тренировок: %s\n", goalText(req.Goal))
	fmt.Fprintf(&b, "Программа: %s\n", splitText(req.Settings))
	b.WriteString(historyText(req.RecentEntries))
	b.WriteString("\n\n")
	b.WriteString(recommendationText(req.Recommendation))
	b.WriteString(missingText(req.Recommendation))

	b.WriteString("\n\nПроанализируй данные и дай совет: прогресс, техника, восстановление, или что стоит изменить.\n")
	b.WriteString("Не повторяй данные — пользователь их уже видит. Дай именно совет.")

	return b.String()
}

func goalText(goal trainer.Goal) string {
	switch goal {
	case trainer.GoalStrength:
		return "сила (малое число повторений)"
	case trainer.GoalEndurance:
		return "выносливость (многоповторные подходы)"
	default:
		return "гипертрофия (8-12 повторений)"
	}
}

func splitText(settings trainer.Settings) string {
	switch settings.Split {
	case trainer.SplitUpperLower:
		return "верх/низ"
	case trainer.SplitPushPullLegs:
		return "тяни/толкай/ноги"
	case trainer.SplitCustom:
		return fmt.Sprintf("свой сплит на %d дней", len(settings.CustomSplitDays))
	default:
		return "фулбади"
	}
}

// historyText groups entries of the same date onto one line. The entries
// arrive newest first, so first-seen date order is already newest first.
func historyText(entries []trainer.Entry) string {
	if len(entries) == 0 {
		return "Истории тренировок пока нет."
	}

	var dates []string
	byDate := make(map[string][]trainer.Entry)
	for _, entry := range entries {
		if _, seen := byDate[entry.Date]; !seen {
			dates = append(dates, entry.Date)
		}
		byDate[entry.Date] = append(byDate[entry.Date], entry)
	}

	var b strings.Builder
	b.WriteString("Последние тренировки:")
	for _, date := range dates {
		lines := make([]string, 0, len(byDate[date]))
		for _, entry := range byDate[date] {
			lines = append(lines, fmt.Sprintf("%s: %s кг × %s",
				entry.ExerciseName, trainer.FormatWeight(entry.Weight), entry.Reps))
		}
		fmt.Fprintf(&b, "\n%s: %s", date, strings.Join(lines, "; "))
	}
	return b.String()
}

func recommendationText(rec trainer.Recommendation) string {
	if len(rec.Exercises) == 0 {
		return "Текущая рекомендация: пусто (нет подходящих упражнений)."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Текущая рекомендация тренера на %s:", rec.DayLabel)
	for _, exRec := range rec.Exercises {
		weightStr := "вес не определён"
		workingSets := 0
		for _, set := range exRec.Sets {
			if set.Type != trainer.SetWorking {
				continue
			}
			workingSets++
			if set.Weight != nil {
				weightStr = fmt.Sprintf("%s кг", trainer.FormatWeight(*set.Weight))
			}
		}
		fmt.Fprintf(&b, "\n- %s (%s, %d подходов)", exRec.Exercise.Name, weightStr, workingSets)
		if exRec.Note != "" {
			fmt.Fprintf(&b, " [%s]", exRec.Note)
		}
	}
	return b.String()
}

func missingText(rec trainer.Recommendation) string {
	if len(rec.MissingGroups) == 0 {
		return ""
	}
	names := make([]string, len(rec.MissingGroups))
	for i, group := range rec.MissingGroups {
		names[i] = group.DisplayName()
	}
	return fmt.Sprintf("\nНе хватает упражнений для групп: %s", strings.Join(names, ", "))
}
