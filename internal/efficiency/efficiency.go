// Package efficiency scores how well a set of recipes shares ingredients.
package efficiency

import (
	"fmt"
	"math"

	"smart-pantry/internal/shopping"
)

// GoodThreshold is the score above which a plan is shown as efficient.
const GoodThreshold = 50

// maxSuggestions caps the single-use names listed as ideas for the next recipe.
const maxSuggestions = 3

// Rating is the presentation bucket for a score.
type Rating string

const (
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs_improvement"
)

// Report is the outcome of scoring a shopping list.
type Report struct {
	// Available is false when no recipe is selected; nothing else is set then.
	Available   bool             `json:"available" yaml:"available"`
	Score       int              `json:"score" yaml:"score"`
	SingleUse   []*shopping.Item `json:"single_use" yaml:"single_use"`
	MultiUse    []*shopping.Item `json:"multi_use" yaml:"multi_use"`
	Tip         *shopping.Item   `json:"tip,omitempty" yaml:"tip,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// Score partitions the list into single- and multi-use items and computes the
// share of multi-use items as a percentage rounded half away from zero.
func Score(list *shopping.List, totalSelected int) Report {
	if totalSelected == 0 {
		return Report{}
	}

	r := Report{Available: true}
	for _, item := range list.Items() {
		switch {
		case len(item.Recipes) == 1:
			r.SingleUse = append(r.SingleUse, item)
		case len(item.Recipes) > 1:
			r.MultiUse = append(r.MultiUse, item)
		}
	}

	if total := list.Len(); total > 0 {
		r.Score = int(math.Round(100 * float64(len(r.MultiUse)) / float64(total)))
	}

	if len(r.SingleUse) > 0 {
		r.Tip = r.SingleUse[0]
	}
	for i, item := range r.SingleUse {
		if i == maxSuggestions {
			break
		}
		r.Suggestions = append(r.Suggestions, item.Name)
	}
	return r
}

// Rating buckets the score for display.
func (r Report) Rating() Rating {
	if r.Score > GoodThreshold {
		return RatingGood
	}
	return RatingNeedsImprovement
}

// TipMessage is the waste-reduction hint for the tip ingredient, or "" when
// every ingredient is already shared.
func (r Report) TipMessage() string {
	if r.Tip == nil {
		return ""
	}
	return fmt.Sprintf("You have %s on your list for just one meal. Try adding another recipe with %s to use it all up!",
		r.Tip.Name, r.Tip.Name)
}
