package app

import (
	"context"

	"riskbook/adapters/ml"
	"riskbook/domain/policy"
	"riskbook/internal"
	"riskbook/ports"
)

// ModelReport bundles both baseline evaluations
type ModelReport struct {
	Regression     *ports.RegressionReport     `json:"regression"`
	Classification *ports.ClassificationReport `json:"classification"`
}

// ModelService fits the baseline models over a loaded book
type ModelService struct {
	builder *ml.FeatureBuilder
	trainer ports.TrainerPort
	logger  *internal.Logger
}

// NewModelService creates a model service
func NewModelService(trainer ports.TrainerPort, logger *internal.Logger) *ModelService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ModelService{
		builder: ml.NewFeatureBuilder(),
		trainer: trainer,
		logger:  logger,
	}
}

// TrainBaselines fits the claim-amount regression and the claim-occurrence
// classification and reports held-out metrics
func (s *ModelService) TrainBaselines(ctx context.Context, records []*policy.Record) (*ModelReport, error) {
	regTable := s.builder.ClaimAmountTable(records)
	regression, err := s.trainer.TrainRegression(ctx, regTable)
	if err != nil {
		return nil, err
	}
	s.logger.Info("regression baseline: RMSE=%.2f MAE=%.2f R2=%.4f (test n=%d)",
		regression.RMSE, regression.MAE, regression.R2, regression.TestSize)

	clsTable := s.builder.ClaimOccurrenceTable(records)
	classification, err := s.trainer.TrainClassification(ctx, clsTable)
	if err != nil {
		return nil, err
	}
	s.logger.Info("classification baseline: accuracy=%.4f AUC=%.4f (test n=%d)",
		classification.Accuracy, classification.AUC, classification.TestSize)

	return &ModelReport{Regression: regression, Classification: classification}, nil
}
