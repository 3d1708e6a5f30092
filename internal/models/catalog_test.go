package models

import (
	"os"
	"path/filepath"
	"testing"
)

const catalogYAML = `
scale_labels: ["Never", "Rarely", "Sometimes", "Often", "Always"]
base:
  - id: m1
    text: "Mood question one"
    domain: mood
  - id: a1
    text: "Anxiety question one"
    domain: anxiety
follow_up_anxiety:
  - id: a3
    text: "Anxiety follow-up"
    domain: anxiety
follow_up_mood:
  - id: m3
    text: "Mood follow-up"
    domain: mood
`

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	if err := os.WriteFile(path, []byte(catalogYAML), 0644); err != nil {
		t.Fatal(err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	if len(catalog.Base) != 2 || len(catalog.FollowUpAnxiety) != 1 || len(catalog.FollowUpMood) != 1 {
		t.Fatalf("unexpected catalog sizes: %d base, %d anxiety, %d mood",
			len(catalog.Base), len(catalog.FollowUpAnxiety), len(catalog.FollowUpMood))
	}

	for _, q := range append(append(catalog.Base, catalog.FollowUpAnxiety...), catalog.FollowUpMood...) {
		if q.Type != "scale" || q.Min != 1 || q.Max != 5 {
			t.Fatalf("question %s missing scale defaults: %+v", q.ID, q)
		}
		if len(q.Labels) != 5 || q.Labels[0] != "Never" || q.Labels[4] != "Always" {
			t.Fatalf("question %s has wrong labels: %v", q.ID, q.Labels)
		}
	}

	if catalog.Base[0].Domain != DomainMood || catalog.Base[1].Domain != DomainAnxiety {
		t.Fatalf("domains not parsed: %+v", catalog.Base)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing catalog file")
	}
}
