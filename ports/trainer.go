package ports

import "context"

// FeatureTable is a dense feature matrix with a target column, ready for
// baseline model fitting
type FeatureTable struct {
	FeatureNames []string
	X            [][]float64
	Y            []float64
	Target       string
}

// RegressionReport holds held-out evaluation metrics for a regression baseline
type RegressionReport struct {
	Target       string             `json:"target"`
	TrainSize    int                `json:"train_size"`
	TestSize     int                `json:"test_size"`
	RMSE         float64            `json:"rmse"`
	MAE          float64            `json:"mae"`
	R2           float64            `json:"r2"`
	Coefficients map[string]float64 `json:"coefficients"`
	Intercept    float64            `json:"intercept"`
}

// ClassificationReport holds held-out evaluation metrics for a classification
// baseline
type ClassificationReport struct {
	Target    string  `json:"target"`
	TrainSize int     `json:"train_size"`
	TestSize  int     `json:"test_size"`
	Accuracy  float64 `json:"accuracy"`
	AUC       float64 `json:"auc"`
}

// TrainerPort fits baseline models over a feature table. Standard
// library-driven fitting; only the interface is load-bearing.
type TrainerPort interface {
	TrainRegression(ctx context.Context, table *FeatureTable) (*RegressionReport, error)
	TrainClassification(ctx context.Context, table *FeatureTable) (*ClassificationReport, error)
}
