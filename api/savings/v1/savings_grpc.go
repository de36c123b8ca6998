package savingsv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SavingsService_Deposit_FullMethodName        = "/savings.v1.SavingsService/Deposit"
	SavingsService_GetBalance_FullMethodName     = "/savings.v1.SavingsService/GetBalance"
	SavingsService_ListMyDeposits_FullMethodName = "/savings.v1.SavingsService/ListMyDeposits"
)

// SavingsServiceServer is the server API for SavingsService. Deposits and balances of the calling user.
type SavingsServiceServer interface {
	Deposit(context.Context, *DepositRequest) (*DepositResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	ListMyDeposits(context.Context, *ListMyDepositsRequest) (*ListMyDepositsResponse, error)
}

// UnimplementedSavingsServiceServer can be embedded to have forward compatible implementations.
type UnimplementedSavingsServiceServer struct{}

func (UnimplementedSavingsServiceServer) Deposit(context.Context, *DepositRequest) (*DepositResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Deposit not implemented")
}
func (UnimplementedSavingsServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBalance not implemented")
}
func (UnimplementedSavingsServiceServer) ListMyDeposits(context.Context, *ListMyDepositsRequest) (*ListMyDepositsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMyDeposits not implemented")
}

// SavingsService_ServiceDesc is the grpc.ServiceDesc for SavingsService.
var SavingsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "savings.v1.SavingsService",
	HandlerType: (*SavingsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Deposit", Handler: unaryHandler(SavingsService_Deposit_FullMethodName, SavingsServiceServer.Deposit)},
		{MethodName: "GetBalance", Handler: unaryHandler(SavingsService_GetBalance_FullMethodName, SavingsServiceServer.GetBalance)},
		{MethodName: "ListMyDeposits", Handler: unaryHandler(SavingsService_ListMyDeposits_FullMethodName, SavingsServiceServer.ListMyDeposits)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "savings/v1/savings.json",
}

func RegisterSavingsServiceServer(s grpc.ServiceRegistrar, srv SavingsServiceServer) {
	s.RegisterService(&SavingsService_ServiceDesc, srv)
}

// SavingsServiceClient is the client API for SavingsService.
type SavingsServiceClient interface {
	Deposit(ctx context.Context, in *DepositRequest, opts ...grpc.CallOption) (*DepositResponse, error)
	GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error)
	ListMyDeposits(ctx context.Context, in *ListMyDepositsRequest, opts ...grpc.CallOption) (*ListMyDepositsResponse, error)
}

type savingsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSavingsServiceClient(cc grpc.ClientConnInterface) SavingsServiceClient {
	return &savingsServiceClient{cc: cc}
}

func (c *savingsServiceClient) Deposit(ctx context.Context, in *DepositRequest, opts ...grpc.CallOption) (*DepositResponse, error) {
	return invoke[DepositResponse](ctx, c.cc, SavingsService_Deposit_FullMethodName, in, opts)
}

func (c *savingsServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return invoke[GetBalanceResponse](ctx, c.cc, SavingsService_GetBalance_FullMethodName, in, opts)
}

func (c *savingsServiceClient) ListMyDeposits(ctx context.Context, in *ListMyDepositsRequest, opts ...grpc.CallOption) (*ListMyDepositsResponse, error) {
	return invoke[ListMyDepositsResponse](ctx, c.cc, SavingsService_ListMyDeposits_FullMethodName, in, opts)
}
