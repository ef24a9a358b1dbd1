package ml

import (
	"context"

	apperrors "riskbook/internal/errors"
	"riskbook/ports"
)

// Trainer implements ports.TrainerPort with the package's baseline models
type Trainer struct {
	TestFraction  float64
	Seed          int64
	LogisticIters int
	LearningRate  float64
}

// NewTrainer creates a trainer with a seeded, reproducible split
func NewTrainer(testFraction float64, seed int64, logisticIters int, learningRate float64) *Trainer {
	if testFraction <= 0 || testFraction >= 1 {
		testFraction = 0.2
	}
	return &Trainer{
		TestFraction:  testFraction,
		Seed:          seed,
		LogisticIters: logisticIters,
		LearningRate:  learningRate,
	}
}

// TrainRegression fits the OLS claim-amount baseline and evaluates on the
// held-out split
func (t *Trainer) TrainRegression(ctx context.Context, table *ports.FeatureTable) (*ports.RegressionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	train, test := trainTestSplit(table, t.TestFraction, t.Seed)

	model, err := FitLinear(train.X, train.Y)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeModelError, err.Error())
	}

	predicted := model.PredictAll(test.X)
	report := &ports.RegressionReport{
		Target:       table.Target,
		TrainSize:    len(train.X),
		TestSize:     len(test.X),
		RMSE:         RMSE(predicted, test.Y),
		MAE:          MAE(predicted, test.Y),
		R2:           R2(predicted, test.Y),
		Intercept:    model.Intercept,
		Coefficients: make(map[string]float64, len(model.Weights)),
	}
	for j, name := range table.FeatureNames {
		report.Coefficients[name] = model.Weights[j]
	}
	return report, nil
}

// TrainClassification fits the logistic claim-occurrence baseline and
// evaluates on the held-out split
func (t *Trainer) TrainClassification(ctx context.Context, table *ports.FeatureTable) (*ports.ClassificationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	train, test := trainTestSplit(table, t.TestFraction, t.Seed)

	model, err := FitLogistic(train.X, train.Y, t.LogisticIters, t.LearningRate)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeModelError, err.Error())
	}

	probs := model.PredictProbaAll(test.X)
	return &ports.ClassificationReport{
		Target:    table.Target,
		TrainSize: len(train.X),
		TestSize:  len(test.X),
		Accuracy:  Accuracy(probs, test.Y),
		AUC:       AUC(probs, test.Y),
	}, nil
}
