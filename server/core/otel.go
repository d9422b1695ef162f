package core

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/automoto/thrustcraft-mp/server/core"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
