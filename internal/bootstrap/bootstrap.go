package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	icmpclient "github.com/GregMSThompson/utools/internal/client/icmp"
	"github.com/GregMSThompson/utools/internal/config"
	"github.com/GregMSThompson/utools/internal/telemetry"
	"github.com/GregMSThompson/utools/pkg/logger"
)

type Bootstrap struct {
	Log      *slog.Logger
	Pinger   *icmpclient.Adapter
	Observer *telemetry.ToolObserver

	shutdownTracing func(context.Context) error
}

func Run(ctx context.Context, cfg *config.Config) (*Bootstrap, error) {
	var err error
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewSeverityHandler)

	bs.shutdownTracing, err = telemetry.InitTracing(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return bs, err
	}
	bs.Observer, err = telemetry.NewGlobalObserver()
	if err != nil {
		return bs, err
	}

	bs.Pinger = icmpclient.NewAdapter(cfg.ICMPPrivileged)
	bs.Log.Info("bootstrap complete",
		"icmp_privileged", cfg.ICMPPrivileged,
		"tracing", cfg.OTLPEndpoint != "")

	return bs, nil
}

// Close flushes telemetry.
func (bs *Bootstrap) Close(ctx context.Context) error {
	var errList []error
	if bs.shutdownTracing != nil {
		errList = append(errList, bs.shutdownTracing(ctx))
	}
	return errors.Join(errList...)
}
