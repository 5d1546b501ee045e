package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/towerclimb-backend/internal/logger"
	"github.com/xtding233/towerclimb-backend/internal/player"
	"github.com/xtding233/towerclimb-backend/internal/pricing"
	"github.com/xtding233/towerclimb-backend/internal/reward"
	"github.com/xtding233/towerclimb-backend/internal/shop"
)

// Shop is the service surface exposed over gRPC. *shop.Service implements it.
type Shop interface {
	Open(ctx context.Context, packageID string) (reward.Result, error)
	Purchase(ctx context.Context, playerID, packageID string, qty int) (shop.Receipt, error)
	UseScroll(ctx context.Context, playerID, scrollID string) (shop.ScrollResult, error)
	Player(ctx context.Context, playerID string) (*player.Player, error)
}

// Server adapts a Shop to ShopServer.
type Server struct {
	shop Shop
}

func NewServer(s Shop) *Server { return &Server{shop: s} }

// NewGRPCServer builds a grpc.Server with the shop and health services registered.
func NewGRPCServer(s Shop, log *zap.Logger) *grpc.Server {
	if log == nil {
		log = zap.NewNop()
	}
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(loggingInterceptor(log)))
	RegisterShopServer(gs, NewServer(s))

	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(gs, hs)
	return gs
}

func (s *Server) OpenPackage(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.shop.Open(ctx, str(in, "packageId"))
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(res)
}

func (s *Server) Purchase(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	qty := 1
	if v, ok := in.GetFields()["qty"]; ok {
		qty = int(v.GetNumberValue())
	}
	rc, err := s.shop.Purchase(ctx, str(in, "playerId"), str(in, "packageId"), qty)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(rc)
}

func (s *Server) UseScroll(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	res, err := s.shop.UseScroll(ctx, str(in, "playerId"), str(in, "scrollId"))
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(res)
}

func (s *Server) GetPlayer(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	p, err := s.shop.Player(ctx, str(in, "playerId"))
	if err != nil {
		return nil, toStatus(err)
	}
	return toStruct(p)
}

func str(in *structpb.Struct, key string) string {
	return in.GetFields()[key].GetStringValue()
}

// toStruct converts v through its JSON form so the wire shape matches the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, reward.ErrPackageNotFound), errors.Is(err, pricing.ErrNotForSale):
		code = codes.NotFound
	case errors.Is(err, pricing.ErrInvalidQuantity), errors.Is(err, player.ErrInvalidPlayerID):
		code = codes.InvalidArgument
	case errors.Is(err, shop.ErrInsufficientFunds), errors.Is(err, shop.ErrScrollNotOwned):
		code = codes.FailedPrecondition
	default:
		return status.Error(codes.Internal, fmt.Sprintf("internal error: %v", err))
	}
	return status.Error(code, err.Error())
}

// loggingInterceptor mirrors the HTTP logging middleware: request id from the
// x-request-id metadata key or a fresh one, a scoped logger, one completion line.
func loggingInterceptor(base *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if info.FullMethod == healthpb.Health_Check_FullMethodName {
			return handler(ctx, req)
		}
		id := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("x-request-id"); len(v) > 0 {
				id = v[0]
			}
		}
		if id == "" {
			id = logger.GenerateRequestID()
		}
		ctx = logger.WithRequestID(logger.WithLogger(ctx, base), id)

		resp, err := handler(ctx, req)
		logger.FromContext(ctx).Info("rpc completed",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()))
		return resp, err
	}
}
