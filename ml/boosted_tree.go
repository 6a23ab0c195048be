package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// TreeNode is one node of a serialized regression tree. Trees are stored
// as flat arrays; children are indexes into the same array.
type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	LeafValue  float64 `json:"leaf_value"`
	IsLeaf     bool    `json:"is_leaf"`
}

type modelArtifact struct {
	FeatureNames []string     `json:"feature_names"`
	BaseScore    float64      `json:"base_score"`
	Trees        [][]TreeNode `json:"trees"`
}

// GradientBoostedTrees is an inference-only boosted-tree binary
// classifier. Leaf values are summed onto the base score as logits and
// squashed with a logistic link; the training-time loss that produced
// the leaf values is not represented here.
type GradientBoostedTrees struct {
	featureNames []string
	baseScore    float64
	trees        [][]TreeNode
}

// LoadModel reads and validates a model artifact. Any read, decode or
// structural failure is returned to the caller; the service treats that
// as fatal at startup.
func LoadModel(path string) (*GradientBoostedTrees, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if len(artifact.FeatureNames) == 0 {
		return nil, errors.New("model artifact declares no feature names")
	}
	if len(artifact.Trees) == 0 {
		return nil, errors.New("model artifact contains no trees")
	}
	for ti, tree := range artifact.Trees {
		if len(tree) == 0 {
			return nil, fmt.Errorf("tree %d is empty", ti)
		}
		for ni, node := range tree {
			if node.IsLeaf {
				continue
			}
			if node.FeatureIdx < 0 || node.FeatureIdx >= len(artifact.FeatureNames) {
				return nil, fmt.Errorf("tree %d node %d: feature index %d out of range", ti, ni, node.FeatureIdx)
			}
			if node.LeftChild <= ni || node.LeftChild >= len(tree) ||
				node.RightChild <= ni || node.RightChild >= len(tree) {
				return nil, fmt.Errorf("tree %d node %d: invalid child index", ti, ni)
			}
		}
	}

	return &GradientBoostedTrees{
		featureNames: artifact.FeatureNames,
		baseScore:    artifact.BaseScore,
		trees:        artifact.Trees,
	}, nil
}

// FeatureNames returns the column order the model was trained on.
func (m *GradientBoostedTrees) FeatureNames() []string {
	return append([]string(nil), m.featureNames...)
}

// PredictProbability scores one row. The row must already be aligned to
// FeatureNames; a wrong width is rejected.
func (m *GradientBoostedTrees) PredictProbability(row []float64) (float64, error) {
	if len(row) != len(m.featureNames) {
		return 0, fmt.Errorf("row width %d does not match %d model columns", len(row), len(m.featureNames))
	}

	score := m.baseScore
	for _, tree := range m.trees {
		leaf, err := walkTree(tree, row)
		if err != nil {
			return 0, err
		}
		score += leaf
	}
	return sigmoid(score), nil
}

func walkTree(tree []TreeNode, row []float64) (float64, error) {
	idx := 0
	for {
		node := tree[idx]
		if node.IsLeaf {
			return node.LeafValue, nil
		}
		if row[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if idx < 0 || idx >= len(tree) {
			return 0, errors.New("invalid tree state")
		}
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
