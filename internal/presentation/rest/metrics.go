package rest

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var decisionsTotal, _ = otel.Meter("credit-approval").Int64Counter(
	"credit_decisions_total",
	metric.WithDescription("Loan eligibility decisions by operation and outcome"),
)

func recordDecision(ctx context.Context, operation string, approved bool) {
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	decisionsTotal.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("outcome", outcome),
		),
	)
}
