package alarm

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	domain "github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/service/alarms"
)

var errTestPersist = errors.New("test persist error")

// failingService reports a storage failure for every mutation.
type failingService struct {
	Service
}

func (failingService) ClearInterval(context.Context) (int, error) { return 0, errTestPersist }

func newService(t *testing.T) *alarms.Service {
	t.Helper()

	svc, err := alarms.New(context.Background(), nil)
	require.NoError(t, err)

	return svc
}

// startServer serves srv over an in-memory listener and returns a connected client.
func startServer(t *testing.T, srv *Server, opts ...Option) *Client {
	t.Helper()

	lis := bufconn.Listen(1 << 20)

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor))
	Register(grpcServer, srv)

	go func() {
		_ = grpcServer.Serve(lis)
	}()

	t.Cleanup(grpcServer.Stop)

	dialer := func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}

	opts = append(opts, WithDialOptions(grpc.WithContextDialer(dialer)), WithCallTimeout(3*time.Second))

	client, err := Dial(context.Background(), "passthrough:///bufnet", opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, client.Close())
	})

	return client
}

// TestServer_Validation ensures malformed requests return InvalidArgument errors.
func TestServer_Validation(t *testing.T) {
	t.Parallel()

	s := NewServer(newService(t), nil)
	ctx := context.Background()

	_, err := s.AddAlarm(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.GenerateInterval(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.ToggleAlarm(ctx, &AlarmIDRequest{ID: " "})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.RemoveAlarm(ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SetCredential(ctx, &SetCredentialRequest{})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.AddAlarm(ctx, &AddAlarmRequest{Name: "Late", TargetHours: 24})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.ResetTrigger(ctx, &AlarmIDRequest{ID: "missing"})
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = NewServer(failingService{Service: newService(t)}, nil).ClearInterval(ctx, new(emptypb.Empty))
	require.Equal(t, codes.Internal, status.Code(err))
}

// TestClientServer_Roundtrip exercises every control call over the JSON codec.
func TestClientServer_Roundtrip(t *testing.T) {
	t.Parallel()

	svc := newService(t)
	reading := domain.NewReading(5400, "1 hr 30 mins")

	client := startServer(t, NewServer(svc, func(ctx context.Context) alarms.Status {
		return alarms.Status{
			Today:   "2024-05-01",
			Reading: &reading,
			Alarms:  svc.List(ctx),
		}
	}), WithActor(Actor{Hostname: "test-hostname", Username: "test-user"}))

	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))

	added, err := client.Add(ctx, "Daily goal", 6, 0)
	require.NoError(t, err)
	require.Equal(t, "Daily goal", added.Name)
	require.Equal(t, domain.KindManual, added.Kind)

	generated, err := client.GenerateInterval(ctx, 1, 30, 2)
	require.NoError(t, err)
	require.Len(t, generated, 2)
	require.Equal(t, 3, generated[1].TargetHours)

	listed, err := client.List(ctx)
	require.NoError(t, err)
	require.Equal(t, svc.List(ctx), listed)

	got, err := client.Get(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, added, got)

	toggled, err := client.Toggle(ctx, added.ID)
	require.NoError(t, err)
	require.False(t, toggled.Enabled)

	reset, err := client.ResetTrigger(ctx, added.ID)
	require.NoError(t, err)
	require.False(t, reset.HasTriggered)

	removed, err := client.ClearInterval(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, removed)

	require.NoError(t, client.SetCredential(ctx, "waka_123"))
	require.Equal(t, "waka_123", svc.Credential(ctx))

	st, err := client.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Date("2024-05-01"), st.Today)
	require.NotNil(t, st.Reading)
	require.Equal(t, 1, st.Reading.Hours)
	require.Equal(t, 30, st.Reading.Minutes)
	require.Len(t, st.Alarms, 1)

	require.NoError(t, client.Remove(ctx, added.ID))

	err = client.Remove(ctx, added.ID)
	require.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GenerateInterval(ctx, 0, 0, 3)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

// TestActor_Metadata verifies the actor travels in call metadata.
func TestActor_Metadata(t *testing.T) {
	t.Parallel()

	actor := Actor{Hostname: "host", Username: "user"}
	require.Equal(t, "user@host", actor.String())

	out, ok := metadata.FromOutgoingContext(actor.outgoing(context.Background()))
	require.True(t, ok)

	got, ok := actorFromIncoming(metadata.NewIncomingContext(context.Background(), out))
	require.True(t, ok)
	require.Equal(t, actor, got)

	_, ok = actorFromIncoming(context.Background())
	require.False(t, ok)

	require.Equal(t, context.Background(), Actor{}.outgoing(context.Background()))
}

// TestCodec covers protobuf and plain struct payloads.
func TestCodec(t *testing.T) {
	t.Parallel()

	codec := Codec{}
	require.Equal(t, CodecName, codec.Name())

	data, err := codec.Marshal(new(emptypb.Empty))
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(data))
	require.NoError(t, codec.Unmarshal(data, new(emptypb.Empty)))

	data, err = codec.Marshal(&AddAlarmRequest{Name: "Goal", TargetHours: 2, TargetMinutes: 15})
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"Goal","target_hours":2,"target_minutes":15}`, string(data))

	var decoded AddAlarmRequest
	require.NoError(t, codec.Unmarshal(data, &decoded))
	require.Equal(t, "Goal", decoded.Name)

	require.Error(t, codec.Unmarshal([]byte("{"), &decoded))
}

// TestCodec_Messages pins the wire form of the response messages.
func TestCodec_Messages(t *testing.T) {
	t.Parallel()

	codec := Codec{}
	goal := domain.Alarm{ID: "a1", Name: "Goal", TargetHours: 1, Enabled: true, Kind: domain.KindManual}
	goalJSON := `{"id":"a1","name":"Goal","target_hours":1,"target_minutes":0,` +
		`"enabled":true,"has_triggered":false,"kind":"manual"}`

	tests := []struct {
		name string
		msg  any
		want string
	}{
		{name: "id", msg: &AlarmIDRequest{ID: "a1"}, want: `{"id":"a1"}`},
		{
			name: "interval",
			msg:  &GenerateIntervalRequest{StepHours: 1, StepMinutes: 30, Count: 4},
			want: `{"step_hours":1,"step_minutes":30,"count":4}`,
		},
		{name: "credential", msg: &SetCredentialRequest{APIKey: "waka_0000"}, want: `{"api_key":"waka_0000"}`},
		{name: "alarm", msg: &AlarmResponse{Alarm: goal}, want: `{"alarm":` + goalJSON + `}`},
		{name: "alarms", msg: &AlarmsResponse{Alarms: []domain.Alarm{goal}}, want: `{"alarms":[` + goalJSON + `]}`},
		{name: "no alarms", msg: &AlarmsResponse{}, want: `{"alarms":null}`},
		{name: "removed", msg: &ClearIntervalResponse{Removed: 3}, want: `{"removed":3}`},
		{
			name: "status without reading",
			msg:  &StatusResponse{Status: alarms.Status{Today: "2024-05-01", Alarms: domain.Collection{goal}}},
			want: `{"today":"2024-05-01","alarms":[` + goalJSON + `]}`,
		},
		{
			name: "status with reading",
			msg: &StatusResponse{Status: alarms.Status{
				Today: "2024-05-01",
				Reading: &domain.Reading{
					TotalSeconds: 3600, Hours: 1, Label: "1 hr",
					FetchedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
				},
			}},
			want: `{"today":"2024-05-01","reading":{"total_seconds":3600,"hours":1,"minutes":0,` +
				`"label":"1 hr","fetched_at":"2024-05-01T09:00:00Z"},"alarms":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := codec.Marshal(tt.msg)
			require.NoError(t, err)
			require.JSONEq(t, tt.want, string(data))
		})
	}

	var decoded StatusResponse
	require.NoError(t, codec.Unmarshal([]byte(`{"today":"2024-05-01","alarms":[`+goalJSON+`]}`), &decoded))
	require.Equal(t, domain.Date("2024-05-01"), decoded.Today)
	require.Nil(t, decoded.Reading)
	require.Equal(t, domain.Collection{goal}, decoded.Alarms)
}

// TestDial_ValidatesAddress verifies that Dial rejects empty addresses.
func TestDial_ValidatesAddress(t *testing.T) {
	t.Parallel()

	c, err := Dial(context.Background(), "")
	require.ErrorIs(t, err, errAddressRequired)
	require.Nil(t, c)
}

// TestClient_callContext checks timeout vs cancel-only behavior of callContext.
func TestClient_callContext(t *testing.T) {
	t.Parallel()

	c := &Client{
		callTimeout: 0,
	}

	ctx, cancel := c.callContext(context.Background())
	cancel()

	require.NotNil(t, ctx)

	c.callTimeout = 10 * time.Millisecond

	ctx, cancel = c.callContext(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.WithinDuration(t, time.Now().Add(10*time.Millisecond), deadline, 30*time.Millisecond)
}
