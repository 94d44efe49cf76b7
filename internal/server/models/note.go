package models

import "time"

// Project phases a note can be filed under.
const (
	PhaseFoundations           = "foundations"
	PhaseDataAcquisition       = "data-acquisition"
	PhaseSegmentation          = "segmentation"
	PhaseCTClassification      = "ct-classification"
	PhaseGenomicClassification = "genomic-classification"
	PhaseFusion                = "fusion"
	PhaseExplainability        = "explainability"
	PhaseEvaluation            = "evaluation"
	PhaseDissemination         = "dissemination"
	PhaseGeneral               = "general"
)

var Phases = []string{
	PhaseFoundations, PhaseDataAcquisition, PhaseSegmentation,
	PhaseCTClassification, PhaseGenomicClassification, PhaseFusion,
	PhaseExplainability, PhaseEvaluation, PhaseDissemination, PhaseGeneral,
}

type Note struct {
	ID          string    `json:"id"`
	Author      UserRef   `json:"author"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Phase       string    `json:"phase"`
	Tags        []string  `json:"tags"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ValidPhase(p string) bool {
	for _, phase := range Phases {
		if p == phase {
			return true
		}
	}
	return false
}
