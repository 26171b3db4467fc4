package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ai-laborlaw-be/internal/pkg/logger"
	"ai-laborlaw-be/pkg/lawcase"
	"ai-laborlaw-be/pkg/llm"
)

const plannerSystemPrompt = `你是一位专业的劳动法律师，擅长为劳动争议案件制定证据收集方案。
请根据案件情况生成证据需求清单，并按重要程度将每项证据分类为：核心、重要、辅助。
收集难度分为：容易、中等、困难。回答必须是合法的JSON，不要输出JSON以外的内容。`

const plannerUserPromptFormat = `案件情况：
%s

争议类型：%s

请生成该案件的证据需求清单，返回如下结构的JSON：
{
  "evidence_items": [
    {
      "id": "",
      "type": "证据名称",
      "importance": "核心/重要/辅助",
      "description": "该证据能证明什么",
      "collection_method": "如何收集",
      "legal_basis": "相关法律依据",
      "difficulty": "容易/中等/困难",
      "notes": "注意事项"
    }
  ]
}`

// Planner produces the evidence checklist for a case. It asks the model
// first and falls back to the static template for the dispute category when
// the model is unreachable or its reply cannot be parsed, so planning never
// fails outright.
type Planner struct {
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewPlanner(provider llm.LLMProvider, log logger.ILogger) *Planner {
	return &Planner{provider: provider, log: log}
}

// Plan builds the checklist for the profile. The returned items are always
// standardized: non-empty ids, validated importance and difficulty grades,
// and status set to not-collected.
func (p *Planner) Plan(ctx context.Context, profile *lawcase.CaseProfile) []Requirement {
	items, err := p.planWithModel(ctx, profile)
	if err != nil {
		p.log.Warn("evidence", "planner falling back to template checklist", map[string]interface{}{
			"dispute_category": string(profile.DisputeCategory),
			"error":            err.Error(),
		})
		return TemplateChecklist(profile.DisputeCategory)
	}
	p.log.Info("evidence", "checklist planned by model", map[string]interface{}{
		"dispute_category": string(profile.DisputeCategory),
		"item_count":       len(items),
	})
	return items
}

func (p *Planner) planWithModel(ctx context.Context, profile *lawcase.CaseProfile) ([]Requirement, error) {
	if p.provider == nil {
		return nil, fmt.Errorf("no model provider configured")
	}

	prompt := fmt.Sprintf(plannerUserPromptFormat, profile.Summary(), profile.DisputeCategory)
	reply, err := p.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: plannerSystemPrompt},
		{Role: "user", Content: prompt},
	}, llm.WithTemperature(0.3))
	if err != nil {
		return nil, fmt.Errorf("planner chat: %w", err)
	}

	items, err := parseChecklist(reply)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("model returned an empty checklist")
	}
	return items, nil
}

type checklistEnvelope struct {
	EvidenceItems []Requirement `json:"evidence_items"`
}

// parseChecklist extracts the JSON object between the first opening brace
// and the last closing brace, which tolerates the prose models like to wrap
// around their JSON.
func parseChecklist(reply string) ([]Requirement, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var envelope checklistEnvelope
	if err := json.Unmarshal([]byte(reply[start:end+1]), &envelope); err != nil {
		return nil, fmt.Errorf("decode checklist: %w", err)
	}

	items := make([]Requirement, 0, len(envelope.EvidenceItems))
	for _, item := range envelope.EvidenceItems {
		items = append(items, standardize(item))
	}
	return items, nil
}

// standardize fills the defaults every checklist item must carry regardless
// of where it came from.
func standardize(item Requirement) Requirement {
	if item.ID == "" {
		item.ID = "evidence_" + uuid.NewString()[:8]
	}
	if item.Type == "" {
		item.Type = defaultType
	}
	switch item.Importance {
	case ImportanceCore, ImportanceImportant, ImportanceAuxiliary:
	default:
		item.Importance = ImportanceImportant
	}
	switch item.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		item.Difficulty = DifficultyMedium
	}
	item.Status = StatusNotCollected
	return item
}
