package grpc_server

import (
	"context"
	"log"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health entry reported for the HTTP API; "" covers the whole server.
const ServiceName = "learn.v1.API"

// OpsServer exposes grpc.health.v1 and reflection on the ops port.
type OpsServer struct {
	srv    *grpc.Server
	health *health.Server
}

func NewOpsServer() *OpsServer {
	s := grpc.NewServer()
	h := health.NewServer()
	healthpb.RegisterHealthServer(s, h)
	reflection.Register(s)

	h.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &OpsServer{srv: s, health: h}
}

func (s *OpsServer) Serve(lis net.Listener) error {
	return s.srv.Serve(lis)
}

func (s *OpsServer) SetServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// Monitor runs check every interval and flips the serving status until ctx is done.
func (s *OpsServer) Monitor(ctx context.Context, interval time.Duration, check func(context.Context) error) {
	probe := func() {
		cctx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()
		err := check(cctx)
		if err != nil {
			log.Printf("Health check failed: %v", err)
		}
		s.SetServing(err == nil)
	}

	probe()
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			probe()
		}
	}
}

// Stop marks everything NOT_SERVING and drains in-flight calls.
func (s *OpsServer) Stop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}
