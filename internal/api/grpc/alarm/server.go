package alarm

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	domain "github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/logger"
	"github.com/oshokin/hackatime-alarm/internal/service/alarms"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	List(ctx context.Context) domain.Collection
	Get(ctx context.Context, id string) (domain.Alarm, error)
	Add(ctx context.Context, name string, hours, minutes int) (domain.Alarm, error)
	GenerateInterval(ctx context.Context, stepHours, stepMinutes, count int) ([]domain.Alarm, error)
	ClearInterval(ctx context.Context) (int, error)
	Toggle(ctx context.Context, id string) (domain.Alarm, error)
	ResetTrigger(ctx context.Context, id string) (domain.Alarm, error)
	Remove(ctx context.Context, id string) error
	SetCredential(ctx context.Context, key string) error
}

// StatusFunc reports the current status.
type StatusFunc func(ctx context.Context) alarms.Status

// Server implements AlarmServiceServer.
type Server struct {
	// service provides the business logic for alarm operations.
	service Service
	// status builds GetStatus responses.
	status StatusFunc
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service, statusFn StatusFunc) *Server {
	if statusFn == nil {
		statusFn = func(ctx context.Context) alarms.Status {
			return alarms.Status{Alarms: service.List(ctx)}
		}
	}

	return &Server{
		service: service,
		status:  statusFn,
	}
}

// Register adds the control API and the standard health service to s.
func Register(s *grpc.Server, srv *Server) *health.Server {
	RegisterAlarmServiceServer(s, srv)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)

	return healthServer
}

// ListAlarms returns every alarm.
func (s *Server) ListAlarms(ctx context.Context, _ *emptypb.Empty) (*AlarmsResponse, error) {
	return &AlarmsResponse{Alarms: s.service.List(ctx)}, nil
}

// GetAlarm returns one alarm.
func (s *Server) GetAlarm(ctx context.Context, req *AlarmIDRequest) (*AlarmResponse, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}

	a, err := s.service.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &AlarmResponse{Alarm: a}, nil
}

// AddAlarm creates a manual alarm.
func (s *Server) AddAlarm(ctx context.Context, req *AddAlarmRequest) (*AlarmResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	a, err := s.service.Add(ctx, req.Name, req.TargetHours, req.TargetMinutes)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &AlarmResponse{Alarm: a}, nil
}

// GenerateInterval replaces the interval alarms.
func (s *Server) GenerateInterval(ctx context.Context, req *GenerateIntervalRequest) (*AlarmsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	created, err := s.service.GenerateInterval(ctx, req.StepHours, req.StepMinutes, req.Count)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &AlarmsResponse{Alarms: created}, nil
}

// ClearInterval removes every interval alarm.
func (s *Server) ClearInterval(ctx context.Context, _ *emptypb.Empty) (*ClearIntervalResponse, error) {
	removed, err := s.service.ClearInterval(ctx)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &ClearIntervalResponse{Removed: removed}, nil
}

// ToggleAlarm flips an alarm between enabled and disabled.
func (s *Server) ToggleAlarm(ctx context.Context, req *AlarmIDRequest) (*AlarmResponse, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}

	a, err := s.service.Toggle(ctx, req.ID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &AlarmResponse{Alarm: a}, nil
}

// ResetTrigger clears the trigger state of an alarm.
func (s *Server) ResetTrigger(ctx context.Context, req *AlarmIDRequest) (*AlarmResponse, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}

	a, err := s.service.ResetTrigger(ctx, req.ID)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	return &AlarmResponse{Alarm: a}, nil
}

// RemoveAlarm deletes an alarm.
func (s *Server) RemoveAlarm(ctx context.Context, req *AlarmIDRequest) (*emptypb.Empty, error) {
	if err := requireID(req); err != nil {
		return nil, err
	}

	if err := s.service.Remove(ctx, req.ID); err != nil {
		return nil, toStatus(ctx, err)
	}

	return new(emptypb.Empty), nil
}

// SetCredential stores a new API key.
func (s *Server) SetCredential(ctx context.Context, req *SetCredentialRequest) (*emptypb.Empty, error) {
	if req == nil || strings.TrimSpace(req.APIKey) == "" {
		return nil, status.Error(codes.InvalidArgument, "api key is required")
	}

	if err := s.service.SetCredential(ctx, req.APIKey); err != nil {
		return nil, toStatus(ctx, err)
	}

	return new(emptypb.Empty), nil
}

// GetStatus returns the latest reading and the alarm list.
func (s *Server) GetStatus(ctx context.Context, _ *emptypb.Empty) (*StatusResponse, error) {
	return &StatusResponse{Status: s.status(ctx)}, nil
}

func requireID(req *AlarmIDRequest) error {
	if req == nil || strings.TrimSpace(req.ID) == "" {
		return status.Error(codes.InvalidArgument, "alarm id is required")
	}

	return nil
}

// toStatus maps domain errors to gRPC status codes.
func toStatus(ctx context.Context, err error) error {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
	)

	switch {
	case errors.As(err, &validation):
		return status.Error(codes.InvalidArgument, validation.Error())
	case errors.As(err, &notFound):
		return status.Error(codes.NotFound, notFound.Error())
	default:
		logger.ErrorKV(ctx, "Alarm operation failed", "error", err)

		return status.Error(codes.Internal, "unable to persist alarms")
	}
}
