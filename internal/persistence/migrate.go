package persistence

import "github.com/julianstephens/boardprep/internal/constants"

// docStep upgrades a raw document by one schema version. Steps must be
// idempotent because stored documents carry no version number and the whole
// chain runs on every load.
type docStep struct {
	version int
	name    string
	apply   func(doc map[string]any) bool
}

var docSteps = []docStep{
	{2, "default-logs", func(doc map[string]any) bool {
		if logs, ok := doc["logs"].(map[string]any); ok && logs != nil {
			return false
		}
		doc["logs"] = map[string]any{}
		return true
	}},
	{3, "default-is-started", func(doc map[string]any) bool {
		if _, ok := doc["isStarted"].(bool); ok {
			return false
		}
		doc["isStarted"] = false
		return true
	}},
	{4, "drop-stale-journey-start", func(doc map[string]any) bool {
		if doc["isStarted"] == true {
			return false
		}
		if _, ok := doc["journeyStartedAt"]; !ok {
			return false
		}
		delete(doc, "journeyStartedAt")
		return true
	}},
	{5, "default-target-days", func(doc map[string]any) bool {
		if n, ok := doc["targetDays"].(float64); ok && n > 0 {
			return false
		}
		doc["targetDays"] = float64(constants.TotalDays)
		return true
	}},
}

// CurrentVersion is the schema version produced by migrateDocument
func CurrentVersion() int {
	return docSteps[len(docSteps)-1].version
}

// migrateDocument runs every step in order and returns the names of the
// steps that changed something.
func migrateDocument(doc map[string]any) []string {
	var applied []string
	for _, step := range docSteps {
		if step.apply(doc) {
			applied = append(applied, step.name)
		}
	}
	return applied
}
