package novelty

import (
	"encoding/json"
	"fmt"
)

// schemaVersion identifies the canonical on-disk document shape.
// Version 2 wraps the folder map and stores every episode entry as a
// {label, filename} object. The original store was an unversioned
// folder map whose episode entries could be bare label strings; those
// are migrated once on load and only the canonical shape is persisted.
const schemaVersion = 2

type stateDocument struct {
	Version int                     `json:"version"`
	Folders map[string]*FolderState `json:"folders"`
}

type legacyFolder struct {
	Episodes []json.RawMessage `json:"episodes"`
	Batch    bool              `json:"batch"`
}

func encodeState(folders map[string]*FolderState) ([]byte, error) {
	return json.MarshalIndent(stateDocument{Version: schemaVersion, Folders: folders}, "", "  ")
}

// decodeState parses either document shape and returns the canonical
// in-memory representation. Unknown folders simply default to "not
// seen" by being absent from the map.
func decodeState(data []byte) (map[string]*FolderState, error) {
	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err == nil && doc.Version >= schemaVersion {
		if doc.Folders == nil {
			doc.Folders = map[string]*FolderState{}
		}
		for _, state := range doc.Folders {
			if state.Episodes == nil {
				state.Episodes = []Entry{}
			}
		}
		return doc.Folders, nil
	}
	return migrateLegacy(data)
}

// migrateLegacy upgrades the unversioned folder map: string episode
// entries become {label, filename: null}, keeping their "already seen"
// label without a dedup key.
func migrateLegacy(data []byte) (map[string]*FolderState, error) {
	var legacy map[string]legacyFolder
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("unrecognized state document: %w", err)
	}

	folders := make(map[string]*FolderState, len(legacy))
	for name, lf := range legacy {
		state := &FolderState{Batch: lf.Batch, Episodes: []Entry{}}
		for _, raw := range lf.Episodes {
			var label string
			if err := json.Unmarshal(raw, &label); err == nil {
				state.Episodes = append(state.Episodes, Entry{Label: label})
				continue
			}
			var entry Entry
			if err := json.Unmarshal(raw, &entry); err != nil {
				return nil, fmt.Errorf("unrecognized episode entry in %q: %w", name, err)
			}
			state.Episodes = append(state.Episodes, entry)
		}
		folders[name] = state
	}
	return folders, nil
}
