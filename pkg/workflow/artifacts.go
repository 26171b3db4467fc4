package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArtifactStore persists the consultation's data files, one JSON artifact
// per concern, named by session id.
type ArtifactStore struct {
	dir string
}

func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir}
}

type inventoryArtifact struct {
	CaseID      string      `json:"case_id"`
	Inventory   interface{} `json:"inventory"`
	CreatedTime time.Time   `json:"created_time"`
}

type chatArtifact struct {
	CaseID   string    `json:"case_id"`
	Messages []Message `json:"messages"`
}

type resultsArtifact struct {
	CaseID  string      `json:"case_id"`
	Results interface{} `json:"results"`
}

type sharegptArtifact struct {
	Conversations []ShareGPTEntry `json:"conversations"`
}

// SaveAll writes every artifact the session has accumulated. Artifacts for
// state the session never reached are skipped, not written empty.
func (a *ArtifactStore) SaveAll(s *Session) error {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	if s.Profile != nil {
		if err := a.write(s.ID+"_case_info.json", s.Profile); err != nil {
			return err
		}
	}
	if len(s.Checklist) > 0 {
		if err := a.write(s.ID+"_evidence_list.json", s.Checklist); err != nil {
			return err
		}
	}
	if len(s.Inventory) > 0 {
		artifact := inventoryArtifact{CaseID: s.ID, Inventory: s.Inventory, CreatedTime: s.CreatedAt}
		if err := a.write(s.ID+"_evidence_inventory.json", artifact); err != nil {
			return err
		}
	}
	if len(s.Records) > 0 {
		if err := a.write(s.ID+"_analysis_results.json", resultsArtifact{CaseID: s.ID, Results: s.Records}); err != nil {
			return err
		}
	}
	if err := a.write(s.ID+"_chat_history.json", chatArtifact{CaseID: s.ID, Messages: s.Messages}); err != nil {
		return err
	}
	return a.write(s.ID+"_sharegpt_data.json", sharegptArtifact{Conversations: BuildShareGPT(s)})
}

func (a *ArtifactStore) write(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(a.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
