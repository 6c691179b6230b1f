package alarm

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "hackatime.alarm.v1.AlarmService"

// Method names of the control API.
const (
	MethodListAlarms       = "ListAlarms"
	MethodGetAlarm         = "GetAlarm"
	MethodAddAlarm         = "AddAlarm"
	MethodGenerateInterval = "GenerateInterval"
	MethodClearInterval    = "ClearInterval"
	MethodToggleAlarm      = "ToggleAlarm"
	MethodResetTrigger     = "ResetTrigger"
	MethodRemoveAlarm      = "RemoveAlarm"
	MethodSetCredential    = "SetCredential"
	MethodGetStatus        = "GetStatus"
)

// AlarmServiceServer is the server side of the control API.
type AlarmServiceServer interface {
	ListAlarms(ctx context.Context, req *emptypb.Empty) (*AlarmsResponse, error)
	GetAlarm(ctx context.Context, req *AlarmIDRequest) (*AlarmResponse, error)
	AddAlarm(ctx context.Context, req *AddAlarmRequest) (*AlarmResponse, error)
	GenerateInterval(ctx context.Context, req *GenerateIntervalRequest) (*AlarmsResponse, error)
	ClearInterval(ctx context.Context, req *emptypb.Empty) (*ClearIntervalResponse, error)
	ToggleAlarm(ctx context.Context, req *AlarmIDRequest) (*AlarmResponse, error)
	ResetTrigger(ctx context.Context, req *AlarmIDRequest) (*AlarmResponse, error)
	RemoveAlarm(ctx context.Context, req *AlarmIDRequest) (*emptypb.Empty, error)
	SetCredential(ctx context.Context, req *SetCredentialRequest) (*emptypb.Empty, error)
	GetStatus(ctx context.Context, req *emptypb.Empty) (*StatusResponse, error)
}

// ServiceDesc describes the control API for grpc.Server.RegisterService.
// The contract lives in api/proto/hackatime/alarm/v1/alarm_service.proto.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AlarmServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodListAlarms, AlarmServiceServer.ListAlarms),
		unary(MethodGetAlarm, AlarmServiceServer.GetAlarm),
		unary(MethodAddAlarm, AlarmServiceServer.AddAlarm),
		unary(MethodGenerateInterval, AlarmServiceServer.GenerateInterval),
		unary(MethodClearInterval, AlarmServiceServer.ClearInterval),
		unary(MethodToggleAlarm, AlarmServiceServer.ToggleAlarm),
		unary(MethodResetTrigger, AlarmServiceServer.ResetTrigger),
		unary(MethodRemoveAlarm, AlarmServiceServer.RemoveAlarm),
		unary(MethodSetCredential, AlarmServiceServer.SetCredential),
		unary(MethodGetStatus, AlarmServiceServer.GetStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hackatime/alarm/v1/alarm_service.proto",
}

// RegisterAlarmServiceServer registers srv on s.
func RegisterAlarmServiceServer(s grpc.ServiceRegistrar, srv AlarmServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// fullMethod returns the wire path of a method.
func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unary builds the method descriptor for a request/response call.
func unary[Req, Resp any](
	method string,
	call func(AlarmServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}

			server, _ := srv.(AlarmServiceServer)

			if interceptor == nil {
				return call(server, ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(method),
			}

			handler := func(ctx context.Context, req any) (any, error) {
				typed, _ := req.(*Req)

				return call(server, ctx, typed)
			}

			return interceptor(ctx, in, info, handler)
		},
	}
}
