package app

import (
	"context"
	"testing"

	"riskbook/adapters/ml"
)

func TestModelService_TrainBaselines(t *testing.T) {
	loaded, _ := loadedBook(600)
	trainer := ml.NewTrainer(0.2, 42, 300, 0.2)
	svc := NewModelService(trainer, nil)

	report, err := svc.TrainBaselines(context.Background(), loaded.Records)
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}

	if report.Regression == nil || report.Classification == nil {
		t.Fatal("both baselines should be reported")
	}
	if report.Regression.Target != "TotalClaims" {
		t.Errorf("regression target = %s", report.Regression.Target)
	}
	if report.Classification.Target != "ClaimOccurred" {
		t.Errorf("classification target = %s", report.Classification.Target)
	}
	if report.Classification.AUC < 0 || report.Classification.AUC > 1 {
		t.Errorf("AUC = %v outside [0,1]", report.Classification.AUC)
	}
}
