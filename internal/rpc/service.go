// Package rpc exposes the shop over gRPC. Messages are google.protobuf.Struct
// values so no generated stubs are needed.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "towerclimb.v1.Shop"

	OpenPackageMethod = "/" + ServiceName + "/OpenPackage"
	PurchaseMethod    = "/" + ServiceName + "/Purchase"
	UseScrollMethod   = "/" + ServiceName + "/UseScroll"
	GetPlayerMethod   = "/" + ServiceName + "/GetPlayer"
)

// ShopServer is the server API for the towerclimb.v1.Shop service.
type ShopServer interface {
	OpenPackage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Purchase(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UseScroll(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPlayer(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterShopServer attaches srv to s.
func RegisterShopServer(s grpc.ServiceRegistrar, srv ShopServer) {
	s.RegisterService(&shopServiceDesc, srv)
}

type unaryCall func(ShopServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ShopServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ShopServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var shopServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShopServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "OpenPackage", Handler: unaryHandler(OpenPackageMethod, ShopServer.OpenPackage)},
		{MethodName: "Purchase", Handler: unaryHandler(PurchaseMethod, ShopServer.Purchase)},
		{MethodName: "UseScroll", Handler: unaryHandler(UseScrollMethod, ShopServer.UseScroll)},
		{MethodName: "GetPlayer", Handler: unaryHandler(GetPlayerMethod, ShopServer.GetPlayer)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "towerclimb/v1/shop.proto",
}

// ShopClient is a thin client for the towerclimb.v1.Shop service.
type ShopClient struct {
	cc grpc.ClientConnInterface
}

func NewShopClient(cc grpc.ClientConnInterface) *ShopClient {
	return &ShopClient{cc: cc}
}

func (c *ShopClient) call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ShopClient) OpenPackage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, OpenPackageMethod, in, opts...)
}

func (c *ShopClient) Purchase(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, PurchaseMethod, in, opts...)
}

func (c *ShopClient) UseScroll(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, UseScrollMethod, in, opts...)
}

func (c *ShopClient) GetPlayer(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, GetPlayerMethod, in, opts...)
}
