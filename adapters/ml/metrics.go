package ml

import (
	"math"
	"sort"
)

// RMSE is the root mean squared error
func RMSE(predicted, actual []float64) float64 {
	if len(predicted) == 0 {
		return 0
	}
	sum := 0.0
	for i, p := range predicted {
		d := p - actual[i]
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(predicted)))
}

// MAE is the mean absolute error
func MAE(predicted, actual []float64) float64 {
	if len(predicted) == 0 {
		return 0
	}
	sum := 0.0
	for i, p := range predicted {
		sum += math.Abs(p - actual[i])
	}
	return sum / float64(len(predicted))
}

// R2 is the coefficient of determination
func R2(predicted, actual []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	meanY := 0.0
	for _, v := range actual {
		meanY += v
	}
	meanY /= float64(len(actual))

	ssRes, ssTot := 0.0, 0.0
	for i, p := range predicted {
		ssRes += (actual[i] - p) * (actual[i] - p)
		ssTot += (actual[i] - meanY) * (actual[i] - meanY)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// Accuracy scores binary predictions at a 0.5 probability threshold
func Accuracy(probs, actual []float64) float64 {
	if len(probs) == 0 {
		return 0
	}
	correct := 0
	for i, p := range probs {
		pred := 0.0
		if p >= 0.5 {
			pred = 1
		}
		if pred == actual[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(probs))
}

// AUC computes the area under the ROC curve via the rank statistic: the
// probability a random positive scores above a random negative, ties
// counted half.
func AUC(probs, actual []float64) float64 {
	type scored struct {
		p float64
		y float64
	}
	items := make([]scored, len(probs))
	positives, negatives := 0, 0
	for i := range probs {
		items[i] = scored{probs[i], actual[i]}
		if actual[i] > 0 {
			positives++
		} else {
			negatives++
		}
	}
	if positives == 0 || negatives == 0 {
		return 0.5
	}

	sort.Slice(items, func(a, b int) bool { return items[a].p < items[b].p })

	// average ranks with tie handling
	rankSumPos := 0.0
	for i := 0; i < len(items); {
		j := i
		for j+1 < len(items) && items[j+1].p == items[i].p {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if items[k].y > 0 {
				rankSumPos += avgRank
			}
		}
		i = j + 1
	}

	nPos, nNeg := float64(positives), float64(negatives)
	return (rankSumPos - nPos*(nPos+1)/2) / (nPos * nNeg)
}
