package alarm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/oshokin/hackatime-alarm/internal/config"
	domain "github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/service/alarms"
)

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Client calls the control API of a running daemon.
type Client struct {
	// conn is the underlying gRPC connection to the daemon.
	conn *grpc.ClientConn
	// actor is sent with every call.
	actor Actor
	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// dialOptions are appended to the defaults when connecting.
	dialOptions []grpc.DialOption
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor sets the identity reported to the daemon.
func WithActor(actor Actor) Option {
	return func(c *Client) {
		c.actor = actor
	}
}

// WithDialOptions adds gRPC dial options, e.g. a custom dialer.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(c *Client) {
		c.dialOptions = append(c.dialOptions, opts...)
	}
}

// Dial prepares a connection to the daemon control API.
// Note: this uses insecure transport credentials; the daemon listens on
// loopback by default.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	client := &Client{
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	dialOptions := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	}, client.dialOptions...)

	conn, err := grpc.NewClient(address, dialOptions...)
	if err != nil {
		return nil, fmt.Errorf("dial alarm daemon: %w", err)
	}

	client.conn = conn

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Ping checks the daemon health service.
func (c *Client) Ping(ctx context.Context) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := healthpb.NewHealthClient(c.conn).Check(callCtx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return fmt.Errorf("check daemon health: %w", err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("check daemon health: status %s", resp.GetStatus())
	}

	return nil
}

// List returns every alarm.
func (c *Client) List(ctx context.Context) (domain.Collection, error) {
	out := new(AlarmsResponse)
	if err := c.invoke(ctx, MethodListAlarms, new(emptypb.Empty), out); err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}

	return out.Alarms, nil
}

// Get returns one alarm.
func (c *Client) Get(ctx context.Context, id string) (domain.Alarm, error) {
	out := new(AlarmResponse)
	if err := c.invoke(ctx, MethodGetAlarm, &AlarmIDRequest{ID: id}, out); err != nil {
		return domain.Alarm{}, fmt.Errorf("get alarm: %w", err)
	}

	return out.Alarm, nil
}

// Add creates a manual alarm.
func (c *Client) Add(ctx context.Context, name string, hours, minutes int) (domain.Alarm, error) {
	in := &AddAlarmRequest{
		Name:          name,
		TargetHours:   hours,
		TargetMinutes: minutes,
	}

	out := new(AlarmResponse)
	if err := c.invoke(ctx, MethodAddAlarm, in, out); err != nil {
		return domain.Alarm{}, fmt.Errorf("add alarm: %w", err)
	}

	return out.Alarm, nil
}

// GenerateInterval replaces the interval alarms.
func (c *Client) GenerateInterval(ctx context.Context, stepHours, stepMinutes, count int) ([]domain.Alarm, error) {
	in := &GenerateIntervalRequest{
		StepHours:   stepHours,
		StepMinutes: stepMinutes,
		Count:       count,
	}

	out := new(AlarmsResponse)
	if err := c.invoke(ctx, MethodGenerateInterval, in, out); err != nil {
		return nil, fmt.Errorf("generate interval alarms: %w", err)
	}

	return out.Alarms, nil
}

// ClearInterval removes every interval alarm.
func (c *Client) ClearInterval(ctx context.Context) (int, error) {
	out := new(ClearIntervalResponse)
	if err := c.invoke(ctx, MethodClearInterval, new(emptypb.Empty), out); err != nil {
		return 0, fmt.Errorf("clear interval alarms: %w", err)
	}

	return out.Removed, nil
}

// Toggle flips an alarm between enabled and disabled.
func (c *Client) Toggle(ctx context.Context, id string) (domain.Alarm, error) {
	out := new(AlarmResponse)
	if err := c.invoke(ctx, MethodToggleAlarm, &AlarmIDRequest{ID: id}, out); err != nil {
		return domain.Alarm{}, fmt.Errorf("toggle alarm: %w", err)
	}

	return out.Alarm, nil
}

// ResetTrigger clears the trigger state of an alarm.
func (c *Client) ResetTrigger(ctx context.Context, id string) (domain.Alarm, error) {
	out := new(AlarmResponse)
	if err := c.invoke(ctx, MethodResetTrigger, &AlarmIDRequest{ID: id}, out); err != nil {
		return domain.Alarm{}, fmt.Errorf("reset alarm: %w", err)
	}

	return out.Alarm, nil
}

// Remove deletes an alarm.
func (c *Client) Remove(ctx context.Context, id string) error {
	if err := c.invoke(ctx, MethodRemoveAlarm, &AlarmIDRequest{ID: id}, new(emptypb.Empty)); err != nil {
		return fmt.Errorf("remove alarm: %w", err)
	}

	return nil
}

// SetCredential stores a new API key.
func (c *Client) SetCredential(ctx context.Context, key string) error {
	if err := c.invoke(ctx, MethodSetCredential, &SetCredentialRequest{APIKey: key}, new(emptypb.Empty)); err != nil {
		return fmt.Errorf("set api key: %w", err)
	}

	return nil
}

// Status returns the daemon status.
func (c *Client) Status(ctx context.Context) (alarms.Status, error) {
	out := new(StatusResponse)
	if err := c.invoke(ctx, MethodGetStatus, new(emptypb.Empty), out); err != nil {
		return alarms.Status{}, fmt.Errorf("get status: %w", err)
	}

	return out.Status, nil
}

func (c *Client) invoke(ctx context.Context, method string, in, out any) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	return c.conn.Invoke(c.actor.outgoing(callCtx), fullMethod(method), in, out)
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
