package grpcserver

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"impactsTracker/internal/auth"
	"impactsTracker/internal/config"
	"impactsTracker/internal/db"
)

const healthCheckMethod = "/grpc.health.v1.Health/Check"

// ServiceName is the health entry that tracks store reachability.
const ServiceName = "impacts.Tracker"

// Server is a running gRPC listener.
type Server struct {
	srv    *grpc.Server
	health *health.Server
	lis    net.Listener
	log    zerolog.Logger
}

// StartGRPC serves grpc.health.v1 on cfg.GRPC.Address. Every unary method
// except the health check requires a Bearer JWT.
func StartGRPC(cfg *config.Config, log zerolog.Logger, d *db.DB) (*Server, error) {
	if cfg == nil {
		panic("config is required")
	}
	addr := cfg.GRPC.Address
	if addr == "" {
		addr = ":50051"
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		loggingInterceptor(log),
		auth.NewUnaryAuthInterceptor(cfg.Auth.JWTSecret, healthCheckMethod),
	))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	s := &Server{srv: srv, health: hs, lis: lis, log: log}
	s.probeStore(d)

	go func() {
		if err := srv.Serve(lis); err != nil {
			log.Error().Err(err).Msg("grpc serve")
		}
	}()
	return s, nil
}

// probeStore reports SERVING for ServiceName only when the store answers.
func (s *Server) probeStore(d *db.DB) {
	st := healthpb.HealthCheckResponse_SERVING
	if d != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := d.PingContext(ctx); err != nil {
			s.log.Warn().Err(err).Msg("store unreachable at grpc start")
			st = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus(ServiceName, st)
}

func (s *Server) Addr() net.Addr { return s.lis.Addr() }

// Shutdown marks every service NOT_SERVING and stops gracefully, forcing a
// stop when ctx ends first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.Shutdown()
	done := make(chan struct{})
	go func() { s.srv.GracefulStop(); close(done) }()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.srv.Stop()
		return ctx.Err()
	}
}

func loggingInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Debug().
			Str("method", info.FullMethod).
			Str("code", status.Code(err).String()).
			Dur("duration", time.Since(start)).
			Msg("grpc")
		return resp, err
	}
}
