package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-laborlaw-be/internal/pkg/logger"
	"ai-laborlaw-be/pkg/llm"
)

const resolverPromptFormat = `用户描述了自己手上已有的证据材料：
%s

请将每一项材料映射为以下类型之一：
contract（劳动合同）、payslip（工资单）、attendance（考勤记录）、injury（伤残鉴定）、recording（录音）、chat（聊天记录）、other（其他）。

返回JSON数组，每个元素形如 {"name": "材料名称", "type": "类型", "description": "一句话描述"}，不要输出JSON以外的内容。`

// Resolver maps the client's free-form description of what they hold into
// typed inventory items. Resolution is best effort: a failed model call or an
// unparseable reply yields an empty inventory rather than an error, and the
// workflow treats an empty inventory as "nothing usable yet".
type Resolver struct {
	provider llm.LLMProvider
	log      logger.ILogger

	// now stamps resolved items; replaceable in tests.
	now func() time.Time
}

func NewResolver(provider llm.LLMProvider, log logger.ILogger) *Resolver {
	return &Resolver{provider: provider, log: log, now: time.Now}
}

// Resolve asks the model to type each described item. Items missing a name or
// a type are dropped, and timestamps always come from the resolver's own
// clock, never from the model.
func (r *Resolver) Resolve(ctx context.Context, description string) []InventoryItem {
	if r.provider == nil {
		return nil
	}

	reply, err := r.provider.Generate(ctx, fmt.Sprintf(resolverPromptFormat, description), llm.WithTemperature(0.1))
	if err != nil {
		r.log.Warn("evidence", "inventory resolution failed", map[string]interface{}{"error": err.Error()})
		return nil
	}

	items, err := parseInventory(reply, r.now())
	if err != nil {
		r.log.Warn("evidence", "inventory reply unusable", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return items
}

type rawInventoryItem struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

func parseInventory(reply string, at time.Time) ([]InventoryItem, error) {
	var raw []rawInventoryItem
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &raw); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}

	items := make([]InventoryItem, 0, len(raw))
	for _, item := range raw {
		if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.Type) == "" {
			continue
		}
		items = append(items, InventoryItem{
			Name:        strings.TrimSpace(item.Name),
			Type:        ParseCategory(item.Type),
			Description: strings.TrimSpace(item.Description),
			AddedTime:   at,
		})
	}
	return items, nil
}

// stripCodeFence removes a surrounding markdown code fence, with or without a
// json language tag.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
