package services

import (
	"context"
	"strings"
	"time"

	icmpclient "github.com/GregMSThompson/utools/internal/client/icmp"
	"github.com/GregMSThompson/utools/internal/dto"
	"github.com/GregMSThompson/utools/internal/errs"
	"github.com/GregMSThompson/utools/pkg/logger"
)

// PingTimeout bounds a single echo, resolution included.
const PingTimeout = 5000 * time.Millisecond

type pinger interface {
	Echo(ctx context.Context, host string, timeout time.Duration) (icmpclient.Reply, error)
}

type networkService struct {
	Pinger pinger
}

func NewNetworkService(p pinger) *networkService {
	return &networkService{Pinger: p}
}

// Ping sends exactly one echo to the trimmed host regardless of
// req.Count. A reply other than success is reported in the response, not as
// an error.
func (s *networkService) Ping(ctx context.Context, req dto.PingRequest) (dto.PingResponse, error) {
	log := logger.FromContext(ctx)

	host := strings.TrimSpace(req.Host)
	if host == "" {
		return dto.PingResponse{}, errs.NewInvalidHostError()
	}

	if req.Count > 1 {
		log.Debug("ping count requested but a single probe is sent", "count", req.Count)
	}

	// the probe outlives a disconnecting client; PingTimeout bounds it
	reply, err := s.Pinger.Echo(context.WithoutCancel(ctx), host, PingTimeout)
	if err != nil {
		log.Warn("ping failed", "host", host, "error", err)
		return dto.PingResponse{}, errs.NewPingFailedError(err)
	}

	if reply.Status != icmpclient.StatusSuccess {
		log.Info("ping answered without success", "host", host, "status", reply.Status)
		return dto.PingResponse{
			RTTMs:   0,
			Success: false,
			Host:    host,
			Error:   string(reply.Status),
		}, nil
	}

	rtt := reply.RTT.Milliseconds()
	log.Info("ping succeeded", "host", host, "addr", reply.Addr.String(), "rtt_ms", rtt)

	return dto.PingResponse{
		RTTMs:   rtt,
		Success: true,
		Host:    host,
	}, nil
}
