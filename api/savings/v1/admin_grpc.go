package savingsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	AdminService_ListDeposits_FullMethodName  = "/savings.v1.AdminService/ListDeposits"
	AdminService_GetTotal_FullMethodName      = "/savings.v1.AdminService/GetTotal"
	AdminService_DeleteDeposit_FullMethodName = "/savings.v1.AdminService/DeleteDeposit"
	AdminService_ClearLedger_FullMethodName   = "/savings.v1.AdminService/ClearLedger"
	AdminService_ExportLedger_FullMethodName  = "/savings.v1.AdminService/ExportLedger"
	AdminService_ListUsers_FullMethodName     = "/savings.v1.AdminService/ListUsers"
	AdminService_CreateUser_FullMethodName    = "/savings.v1.AdminService/CreateUser"
)

// AdminServiceServer is the server API for AdminService. Ledger and credential management for admins.
type AdminServiceServer interface {
	ListDeposits(context.Context, *ListDepositsRequest) (*ListDepositsResponse, error)
	GetTotal(context.Context, *GetTotalRequest) (*GetTotalResponse, error)
	DeleteDeposit(context.Context, *DeleteDepositRequest) (*DeleteDepositResponse, error)
	ClearLedger(context.Context, *ClearLedgerRequest) (*ClearLedgerResponse, error)
	ExportLedger(context.Context, *ExportLedgerRequest) (*ExportLedgerResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error)
}

// UnimplementedAdminServiceServer can be embedded to have forward compatible implementations.
type UnimplementedAdminServiceServer struct{}

func (UnimplementedAdminServiceServer) ListDeposits(context.Context, *ListDepositsRequest) (*ListDepositsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDeposits not implemented")
}
func (UnimplementedAdminServiceServer) GetTotal(context.Context, *GetTotalRequest) (*GetTotalResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTotal not implemented")
}
func (UnimplementedAdminServiceServer) DeleteDeposit(context.Context, *DeleteDepositRequest) (*DeleteDepositResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteDeposit not implemented")
}
func (UnimplementedAdminServiceServer) ClearLedger(context.Context, *ClearLedgerRequest) (*ClearLedgerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ClearLedger not implemented")
}
func (UnimplementedAdminServiceServer) ExportLedger(context.Context, *ExportLedgerRequest) (*ExportLedgerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportLedger not implemented")
}
func (UnimplementedAdminServiceServer) ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUsers not implemented")
}
func (UnimplementedAdminServiceServer) CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateUser not implemented")
}

// AdminService_ServiceDesc is the grpc.ServiceDesc for AdminService.
var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "savings.v1.AdminService",
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListDeposits", Handler: unaryHandler(AdminService_ListDeposits_FullMethodName, AdminServiceServer.ListDeposits)},
		{MethodName: "GetTotal", Handler: unaryHandler(AdminService_GetTotal_FullMethodName, AdminServiceServer.GetTotal)},
		{MethodName: "DeleteDeposit", Handler: unaryHandler(AdminService_DeleteDeposit_FullMethodName, AdminServiceServer.DeleteDeposit)},
		{MethodName: "ClearLedger", Handler: unaryHandler(AdminService_ClearLedger_FullMethodName, AdminServiceServer.ClearLedger)},
		{MethodName: "ExportLedger", Handler: unaryHandler(AdminService_ExportLedger_FullMethodName, AdminServiceServer.ExportLedger)},
		{MethodName: "ListUsers", Handler: unaryHandler(AdminService_ListUsers_FullMethodName, AdminServiceServer.ListUsers)},
		{MethodName: "CreateUser", Handler: unaryHandler(AdminService_CreateUser_FullMethodName, AdminServiceServer.CreateUser)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "savings/v1/savings.json",
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

// AdminServiceClient is the client API for AdminService.
type AdminServiceClient interface {
	ListDeposits(ctx context.Context, in *ListDepositsRequest, opts ...grpc.CallOption) (*ListDepositsResponse, error)
	GetTotal(ctx context.Context, in *GetTotalRequest, opts ...grpc.CallOption) (*GetTotalResponse, error)
	DeleteDeposit(ctx context.Context, in *DeleteDepositRequest, opts ...grpc.CallOption) (*DeleteDepositResponse, error)
	ClearLedger(ctx context.Context, in *ClearLedgerRequest, opts ...grpc.CallOption) (*ClearLedgerResponse, error)
	ExportLedger(ctx context.Context, in *ExportLedgerRequest, opts ...grpc.CallOption) (*ExportLedgerResponse, error)
	ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error)
	CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error)
}

type adminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) AdminServiceClient {
	return &adminServiceClient{cc: cc}
}

func (c *adminServiceClient) ListDeposits(ctx context.Context, in *ListDepositsRequest, opts ...grpc.CallOption) (*ListDepositsResponse, error) {
	return invoke[ListDepositsResponse](ctx, c.cc, AdminService_ListDeposits_FullMethodName, in, opts)
}

func (c *adminServiceClient) GetTotal(ctx context.Context, in *GetTotalRequest, opts ...grpc.CallOption) (*GetTotalResponse, error) {
	return invoke[GetTotalResponse](ctx, c.cc, AdminService_GetTotal_FullMethodName, in, opts)
}

func (c *adminServiceClient) DeleteDeposit(ctx context.Context, in *DeleteDepositRequest, opts ...grpc.CallOption) (*DeleteDepositResponse, error) {
	return invoke[DeleteDepositResponse](ctx, c.cc, AdminService_DeleteDeposit_FullMethodName, in, opts)
}

func (c *adminServiceClient) ClearLedger(ctx context.Context, in *ClearLedgerRequest, opts ...grpc.CallOption) (*ClearLedgerResponse, error) {
	return invoke[ClearLedgerResponse](ctx, c.cc, AdminService_ClearLedger_FullMethodName, in, opts)
}

func (c *adminServiceClient) ExportLedger(ctx context.Context, in *ExportLedgerRequest, opts ...grpc.CallOption) (*ExportLedgerResponse, error) {
	return invoke[ExportLedgerResponse](ctx, c.cc, AdminService_ExportLedger_FullMethodName, in, opts)
}

func (c *adminServiceClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, AdminService_ListUsers_FullMethodName, in, opts)
}

func (c *adminServiceClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error) {
	return invoke[CreateUserResponse](ctx, c.cc, AdminService_CreateUser_FullMethodName, in, opts)
}
