package ml

import (
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"empowerher/catalog"
)

// Risk labels. The threshold comparison is inclusive on the high side.
const (
	HighRisk = "High risk"
	LowRisk  = "Low risk"
)

// Prediction is the result of one classification.
type Prediction struct {
	Probability float64 `json:"probability"`
	Display     string  `json:"probability_display"`
	Risk        string  `json:"risk"`
	Threshold   float64 `json:"threshold"`
}

// RiskClassifier binds a loaded model to its stored decision threshold.
// It is constructed once at startup and is read-only afterwards, so
// concurrent callers need no locking of their own. Classification is a
// pure function of the selections, which makes the result cache safe.
type RiskClassifier struct {
	model     Model
	threshold float64
	cache     *lru.Cache[string, Prediction]
}

// NewRiskClassifier builds a classifier from loaded artifacts. cacheSize
// <= 0 disables result caching.
func NewRiskClassifier(model Model, threshold float64, cacheSize int) (*RiskClassifier, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("threshold %v is outside [0,1]", threshold)
	}

	c := &RiskClassifier{model: model, threshold: threshold}
	if cacheSize > 0 {
		cache, err := lru.New[string, Prediction](cacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// Classify validates the selections, aligns them to the model's column
// order, scores the row and labels the probability. Schema drift between
// the form fields and the model columns refuses to score rather than
// silently zero-filling.
func (c *RiskClassifier) Classify(sel catalog.Selections) (Prediction, error) {
	if err := catalog.Validate(sel); err != nil {
		return Prediction{}, err
	}

	key := selectionKey(sel)
	if c.cache != nil {
		if cached, ok := c.cache.Get(key); ok {
			return cached, nil
		}
	}

	vector, mismatch := Align(sel, c.model.FeatureNames())
	if mismatch != nil {
		return Prediction{}, mismatch
	}

	prob, err := c.model.PredictProbability(vector)
	if err != nil {
		return Prediction{}, err
	}

	risk := LowRisk
	if prob >= c.threshold {
		risk = HighRisk
	}

	result := Prediction{
		Probability: prob,
		Display:     FormatPercent(prob),
		Risk:        risk,
		Threshold:   c.threshold,
	}
	if c.cache != nil {
		c.cache.Add(key, result)
	}
	return result, nil
}

// Threshold returns the stored decision threshold.
func (c *RiskClassifier) Threshold() float64 {
	return c.threshold
}

// Columns returns the model's declared column order.
func (c *RiskClassifier) Columns() []string {
	return c.model.FeatureNames()
}

var percentPrinter = message.NewPrinter(language.English)

// FormatPercent renders a probability as a one-decimal percent string,
// e.g. 0.85 -> "85.0%".
func FormatPercent(p float64) string {
	return percentPrinter.Sprintf("%v", number.Percent(p, number.Scale(1)))
}

// selectionKey builds a deterministic cache key. Validate has already
// established that every selection name is a catalog field, so iterating
// catalog order covers the whole set.
func selectionKey(sel catalog.Selections) string {
	var b strings.Builder
	for _, name := range catalog.FieldNames() {
		if code, ok := sel[name]; ok {
			fmt.Fprintf(&b, "%s=%d;", name, code)
		}
	}
	return b.String()
}
