package server

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported through grpc.health.v1 for the pipeline.
const ServiceName = "transcribe.v1.Pipeline"

// Server exposes the standard gRPC health service so orchestrators can probe
// the transcription pipeline without going through HTTP.
type Server struct {
	health *health.Server
}

func NewServerOptions() *Server {
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Server{
		health: hs,
	}
}

func (s *Server) NewServer() (*grpc.Server, error) {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, s.health)
	return srv, nil
}

// Resume marks the pipeline and the overall server as serving.
func (s *Server) Resume() {
	s.health.Resume()
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
}

// Shutdown marks every service as not serving. Later status updates are ignored.
func (s *Server) Shutdown() {
	s.health.Shutdown()
}
