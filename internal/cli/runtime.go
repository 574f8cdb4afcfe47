package cli

import (
	"context"
	"log"

	"codyplay/internal/api"
	"codyplay/internal/telemetry"
)

// newClient builds the API client and, when configured, the trace exporter
// behind it. The returned func flushes and stops the exporter.
func (a *app) newClient(ctx context.Context) (*api.Client, func(), error) {
	tp, err := telemetry.New(ctx, a.cfg.Telemetry)
	if err != nil {
		return nil, nil, err
	}
	client := api.New(a.cfg, api.WithTracer(tp.Tracer()))
	if tp.Enabled() {
		log.Printf("[telemetry] exporting traces to %s", a.cfg.Telemetry.Endpoint)
	}
	shutdown := func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("[telemetry] shutdown: %v", err)
		}
	}
	return client, shutdown, nil
}
