package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Question is one entry in the static catalog. Domain is used internally
// for grouping and follow-up selection; it is not part of the wire shape.
type Question struct {
	ID     string   `yaml:"id" json:"id"`
	Text   string   `yaml:"text" json:"text"`
	Domain Domain   `yaml:"domain" json:"-"`
	Type   string   `yaml:"type" json:"type"`
	Min    int      `yaml:"min" json:"min"`
	Max    int      `yaml:"max" json:"max"`
	Labels []string `yaml:"labels" json:"labels"`
}

// Catalog holds the full question bank, split into the always-shown base
// set and the two follow-up pairs surfaced by adaptive branching.
type Catalog struct {
	ScaleLabels     []string   `yaml:"scale_labels"`
	Base            []Question `yaml:"base"`
	FollowUpAnxiety []Question `yaml:"follow_up_anxiety"`
	FollowUpMood    []Question `yaml:"follow_up_mood"`
}

// LoadCatalog reads and parses the questions YAML file. Questions omit the
// scale fields in the file; every question uses the shared 1-5 scale and
// label set, applied here.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question catalog: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to unmarshal question catalog: %w", err)
	}

	applyScale(catalog.Base, catalog.ScaleLabels)
	applyScale(catalog.FollowUpAnxiety, catalog.ScaleLabels)
	applyScale(catalog.FollowUpMood, catalog.ScaleLabels)

	return &catalog, nil
}

func applyScale(questions []Question, labels []string) {
	for i := range questions {
		questions[i].Type = "scale"
		questions[i].Min = 1
		questions[i].Max = len(labels)
		questions[i].Labels = labels
	}
}
