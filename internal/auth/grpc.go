package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errNoToken = errors.New("missing authorization")

// NewUnaryAuthInterceptor requires a Bearer JWT in the "authorization"
// metadata for every unary method except those in public. The principal is
// stored in the handler context. Rejections use the same messages as the
// HTTP middleware.
func NewUnaryAuthInterceptor(secret string, public ...string) grpc.UnaryServerInterceptor {
	open := make(map[string]bool, len(public))
	for _, m := range public {
		open[m] = true
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if open[info.FullMethod] {
			return handler(ctx, req)
		}
		p, err := ParseFromMD(ctx, secret)
		switch {
		case errors.Is(err, errNoToken):
			return nil, status.Error(codes.Unauthenticated, "No token, authorization denied")
		case err != nil:
			zerolog.Ctx(ctx).Debug().Err(err).Str("method", info.FullMethod).Msg("rejected token")
			return nil, status.Error(codes.Unauthenticated, "Token is not valid")
		}
		return handler(WithPrincipal(ctx, p), req)
	}
}
