package ml

// Model is the scoring contract a loaded classifier artifact exposes.
// FeatureNames declares the exact column order PredictProbability expects.
type Model interface {
	PredictProbability(row []float64) (float64, error)
	FeatureNames() []string
}
