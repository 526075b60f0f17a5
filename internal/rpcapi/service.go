// Package rpcapi defines the NoteVault gRPC contract shared by server and
// client: the service descriptor, a client stub and the request/response
// messages. Every message travels as a google.protobuf.Struct.
package rpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "notevault.v1.NoteVault"

// Full method names, as seen by interceptors.
const (
	MethodRegister   = "/" + ServiceName + "/Register"
	MethodLogin      = "/" + ServiceName + "/Login"
	MethodCreateNote = "/" + ServiceName + "/CreateNote"
	MethodGetNote    = "/" + ServiceName + "/GetNote"
	MethodUpdateNote = "/" + ServiceName + "/UpdateNote"
	MethodDeleteNote = "/" + ServiceName + "/DeleteNote"
	MethodListNotes  = "/" + ServiceName + "/ListNotes"
	MethodPing       = "/" + ServiceName + "/Ping"
)

// NoteVaultServer is implemented by the server.
type NoteVaultServer interface {
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteNote(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListNotes(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type serverCall func(NoteVaultServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call serverCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(NoteVaultServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(NoteVaultServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc describes NoteVault for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NoteVaultServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unaryHandler(MethodRegister, NoteVaultServer.Register)},
		{MethodName: "Login", Handler: unaryHandler(MethodLogin, NoteVaultServer.Login)},
		{MethodName: "CreateNote", Handler: unaryHandler(MethodCreateNote, NoteVaultServer.CreateNote)},
		{MethodName: "GetNote", Handler: unaryHandler(MethodGetNote, NoteVaultServer.GetNote)},
		{MethodName: "UpdateNote", Handler: unaryHandler(MethodUpdateNote, NoteVaultServer.UpdateNote)},
		{MethodName: "DeleteNote", Handler: unaryHandler(MethodDeleteNote, NoteVaultServer.DeleteNote)},
		{MethodName: "ListNotes", Handler: unaryHandler(MethodListNotes, NoteVaultServer.ListNotes)},
		{MethodName: "Ping", Handler: unaryHandler(MethodPing, NoteVaultServer.Ping)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notevault/v1/notevault.proto",
}

// RegisterNoteVaultServer registers srv on s.
func RegisterNoteVaultServer(s grpc.ServiceRegistrar, srv NoteVaultServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// NoteVaultClient is a thin stub over a client connection.
type NoteVaultClient struct {
	cc grpc.ClientConnInterface
}

func NewNoteVaultClient(cc grpc.ClientConnInterface) *NoteVaultClient {
	return &NoteVaultClient{cc: cc}
}

// Invoke calls fullMethod with in and returns the response struct.
func (c *NoteVaultClient) Invoke(ctx context.Context, fullMethod string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
