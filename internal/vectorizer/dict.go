package vectorizer

import (
	"fmt"
	"sort"

	"github.com/happyhackingspace/svmhmm/hmm"
)

// DictVectorizer converts per-token feature dicts to sparse vectors.
//
// Conversion rules:
//   - string value: "key=value" → 1.0
//   - []string value: "key:item" → 1.0 for each item
//   - bool value: "key" → 1.0 if true, absent if false
//   - int/float value: "key" → float64(value)
type DictVectorizer struct {
	FeatureNames []string       `msgpack:"feature_names"`
	FeatureIndex map[string]int `msgpack:"feature_index"`
}

// NewDictVectorizer creates an empty DictVectorizer.
func NewDictVectorizer() *DictVectorizer {
	return &DictVectorizer{}
}

// Fit builds the feature mapping from a list of feature dicts.
func (dv *DictVectorizer) Fit(data []map[string]any) {
	featureSet := make(map[string]bool)
	for _, d := range data {
		for k, v := range d {
			for key := range attributes(k, v) {
				featureSet[key] = true
			}
		}
	}

	dv.FeatureNames = make([]string, 0, len(featureSet))
	for f := range featureSet {
		dv.FeatureNames = append(dv.FeatureNames, f)
	}
	sort.Strings(dv.FeatureNames)

	dv.FeatureIndex = make(map[string]int, len(dv.FeatureNames))
	for i, f := range dv.FeatureNames {
		dv.FeatureIndex[f] = i
	}
}

// FitTransform fits and transforms the data.
func (dv *DictVectorizer) FitTransform(data []map[string]any) []hmm.SparseVector {
	dv.Fit(data)
	result := make([]hmm.SparseVector, len(data))
	for i, d := range data {
		result[i] = dv.Transform(d)
	}
	return result
}

// Transform converts a feature dict to a sparse vector. Features not seen
// during Fit are dropped.
func (dv *DictVectorizer) Transform(d map[string]any) hmm.SparseVector {
	sv := hmm.NewSparseVector(len(dv.FeatureNames))
	for k, v := range d {
		for key, val := range attributes(k, v) {
			if idx, ok := dv.FeatureIndex[key]; ok {
				sv.Set(idx, val)
			}
		}
	}
	sv.Sort()
	return sv
}

// VocabSize returns the number of features.
func (dv *DictVectorizer) VocabSize() int {
	return len(dv.FeatureNames)
}

// attributes expands one name-value pair into feature keys and values.
func attributes(name string, value any) map[string]float64 {
	switch v := value.(type) {
	case string:
		return map[string]float64{fmt.Sprintf("%s=%s", name, v): 1.0}
	case []string:
		out := make(map[string]float64, len(v))
		for _, item := range v {
			out[fmt.Sprintf("%s:%s", name, item)] = 1.0
		}
		return out
	case bool:
		if !v {
			return nil
		}
		return map[string]float64{name: 1.0}
	case int:
		return map[string]float64{name: float64(v)}
	case int64:
		return map[string]float64{name: float64(v)}
	case float64:
		return map[string]float64{name: v}
	default:
		return map[string]float64{name: 1.0}
	}
}
