package alarm

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/oshokin/hackatime-alarm/internal/logger"
)

// Metadata keys carrying the caller identity.
const (
	metadataHostname = "x-actor-hostname"
	metadataUsername = "x-actor-username"
)

// Actor identifies who issued a control call.
type Actor struct {
	// Hostname is the caller machine name.
	Hostname string
	// Username is the caller account name.
	Username string
}

// String implements fmt.Stringer.
func (a Actor) String() string {
	return a.Username + "@" + a.Hostname
}

// DetectActor gathers host and user information for the audit trail.
func DetectActor() (Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return Actor{}, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return Actor{}, fmt.Errorf("current user: %w", err)
	}

	return Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}

// outgoing attaches the actor to an outgoing call context.
func (a Actor) outgoing(ctx context.Context) context.Context {
	if a.Hostname == "" && a.Username == "" {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx,
		metadataHostname, a.Hostname,
		metadataUsername, a.Username)
}

// actorFromIncoming reads the actor sent by the client, if any.
func actorFromIncoming(ctx context.Context) (Actor, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return Actor{}, false
	}

	first := func(key string) string {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}

		return ""
	}

	a := Actor{
		Hostname: first(metadataHostname),
		Username: first(metadataUsername),
	}

	return a, a.Hostname != "" || a.Username != ""
}

// LoggingInterceptor names the call in the log context, records the actor
// and logs failed calls.
func LoggingInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	ctx = logger.WithKV(ctx, "method", info.FullMethod)

	if a, ok := actorFromIncoming(ctx); ok {
		ctx = logger.WithKV(ctx, "actor", a.String())
	}

	resp, err := handler(ctx, req)
	if err != nil {
		logger.WarnKV(ctx, "Control call failed", "error", err)
	} else {
		logger.Debug(ctx, "Control call served")
	}

	return resp, err
}
