// internal/adapters/grpc/service.go
package grpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
)

const serviceName = "rider.RiderService"

// --- messages ---

// Status is the envelope every RiderService response starts with.
type Status struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int32  `json:"code"`
}

type SignupRequest struct {
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone,omitempty"`
	Email        string  `json:"email,omitempty"`
	VehicleType  string  `json:"vehicle_type,omitempty"`
	VehicleBrand string  `json:"vehicle_brand,omitempty"`
	VehiclePlate string  `json:"vehicle_plate,omitempty"`
	BikeCc       int32   `json:"bike_cc,omitempty"`
	CapacityTons float64 `json:"capacity_tons,omitempty"`
	DailyTarget  *int32  `json:"daily_target,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status
	TokenType   string       `json:"token_type,omitempty"`
	AccessToken string       `json:"access_token,omitempty"`
	ExpiresIn   int64        `json:"expires_in,omitempty"`
	Data        *domain.User `json:"data,omitempty"`
}

type Empty struct{}

type UpdateProfileRequest struct {
	Name         string  `json:"name"`
	Phone        string  `json:"phone,omitempty"`
	Email        string  `json:"email,omitempty"`
	VehicleType  string  `json:"vehicle_type,omitempty"`
	VehicleBrand string  `json:"vehicle_brand,omitempty"`
	VehiclePlate string  `json:"vehicle_plate,omitempty"`
	BikeCc       int32   `json:"bike_cc,omitempty"`
	CapacityTons float64 `json:"capacity_tons,omitempty"`
}

type UpdateDailyTargetRequest struct {
	DailyTarget int32 `json:"daily_target"`
}

type UserResponse struct {
	Status
	Data *domain.User `json:"data,omitempty"`
}

type StartDeliveryRequest struct {
	Payload string `json:"payload"`
}

type CompleteDeliveryRequest struct {
	DeliveryId   string `json:"delivery_id"`
	Confirmation string `json:"confirmation"`
}

type CancelDeliveryRequest struct {
	DeliveryId string `json:"delivery_id"`
}

type GetDeliveryRequest struct {
	DeliveryId string `json:"delivery_id"`
}

type DeliveryResponse struct {
	Status
	Data *domain.Delivery `json:"data,omitempty"`
}

type ListDeliveriesRequest struct {
	Limit int64 `json:"limit"`
	Page  int64 `json:"page"`
}

// DeliveriesOnDateRequest takes a YYYY-MM-DD date; empty means today.
type DeliveriesOnDateRequest struct {
	Date string `json:"date"`
}

type DeliveriesData struct {
	Deliveries  []*domain.Delivery `json:"deliveries"`
	Total       int64              `json:"total"`
	CurrentPage int64              `json:"current_page"`
	PerPage     int64              `json:"per_page"`
	TotalInPage int64              `json:"total_in_page"`
	LastPage    int64              `json:"last_page"`
}

type ListDeliveriesResponse struct {
	Status
	Data *DeliveriesData `json:"data,omitempty"`
}

type ProgressResponse struct {
	Status
	Data *domain.ProgressSummary `json:"data,omitempty"`
}

type AchievementsResponse struct {
	Status
	Data []string `json:"data,omitempty"`
}

type MarkAchievementRequest struct {
	Label string `json:"label"`
}

type MarkAchievementResponse struct {
	Status
	Label         string `json:"label,omitempty"`
	NewlyUnlocked bool   `json:"newly_unlocked"`
}

// --- service ---

type RiderServiceServer interface {
	Signup(context.Context, *SignupRequest) (*UserResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Logout(context.Context, *Empty) (*Status, error)
	GetProfile(context.Context, *Empty) (*UserResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UserResponse, error)
	UpdateDailyTarget(context.Context, *UpdateDailyTargetRequest) (*UserResponse, error)
	StartDelivery(context.Context, *StartDeliveryRequest) (*DeliveryResponse, error)
	CompleteDelivery(context.Context, *CompleteDeliveryRequest) (*DeliveryResponse, error)
	CancelDelivery(context.Context, *CancelDeliveryRequest) (*DeliveryResponse, error)
	GetDelivery(context.Context, *GetDeliveryRequest) (*DeliveryResponse, error)
	ListDeliveries(context.Context, *ListDeliveriesRequest) (*ListDeliveriesResponse, error)
	DeliveriesOnDate(context.Context, *DeliveriesOnDateRequest) (*ListDeliveriesResponse, error)
	GetProgress(context.Context, *Empty) (*ProgressResponse, error)
	ListAchievements(context.Context, *Empty) (*AchievementsResponse, error)
	MarkAchievement(context.Context, *MarkAchievementRequest) (*MarkAchievementResponse, error)
}

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

func unaryHandler[Req, Resp any](name string, call func(RiderServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RiderServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(RiderServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var RiderServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RiderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("Signup", RiderServiceServer.Signup),
		unaryHandler("Login", RiderServiceServer.Login),
		unaryHandler("Logout", RiderServiceServer.Logout),
		unaryHandler("GetProfile", RiderServiceServer.GetProfile),
		unaryHandler("UpdateProfile", RiderServiceServer.UpdateProfile),
		unaryHandler("UpdateDailyTarget", RiderServiceServer.UpdateDailyTarget),
		unaryHandler("StartDelivery", RiderServiceServer.StartDelivery),
		unaryHandler("CompleteDelivery", RiderServiceServer.CompleteDelivery),
		unaryHandler("CancelDelivery", RiderServiceServer.CancelDelivery),
		unaryHandler("GetDelivery", RiderServiceServer.GetDelivery),
		unaryHandler("ListDeliveries", RiderServiceServer.ListDeliveries),
		unaryHandler("DeliveriesOnDate", RiderServiceServer.DeliveriesOnDate),
		unaryHandler("GetProgress", RiderServiceServer.GetProgress),
		unaryHandler("ListAchievements", RiderServiceServer.ListAchievements),
		unaryHandler("MarkAchievement", RiderServiceServer.MarkAchievement),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rider.proto",
}

func RegisterRiderServiceServer(s grpc.ServiceRegistrar, srv RiderServiceServer) {
	s.RegisterService(&RiderServiceDesc, srv)
}

// --- client ---

type RiderServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRiderServiceClient(cc grpc.ClientConnInterface) *RiderServiceClient {
	return &RiderServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *RiderServiceClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, "Signup", in, opts)
}

func (c *RiderServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, "Login", in, opts)
}

func (c *RiderServiceClient) Logout(ctx context.Context, opts ...grpc.CallOption) (*Status, error) {
	return invoke[Status](ctx, c.cc, "Logout", &Empty{}, opts)
}

func (c *RiderServiceClient) GetProfile(ctx context.Context, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, "GetProfile", &Empty{}, opts)
}

func (c *RiderServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, "UpdateProfile", in, opts)
}

func (c *RiderServiceClient) UpdateDailyTarget(ctx context.Context, in *UpdateDailyTargetRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, "UpdateDailyTarget", in, opts)
}

func (c *RiderServiceClient) StartDelivery(ctx context.Context, in *StartDeliveryRequest, opts ...grpc.CallOption) (*DeliveryResponse, error) {
	return invoke[DeliveryResponse](ctx, c.cc, "StartDelivery", in, opts)
}

func (c *RiderServiceClient) CompleteDelivery(ctx context.Context, in *CompleteDeliveryRequest, opts ...grpc.CallOption) (*DeliveryResponse, error) {
	return invoke[DeliveryResponse](ctx, c.cc, "CompleteDelivery", in, opts)
}

func (c *RiderServiceClient) CancelDelivery(ctx context.Context, in *CancelDeliveryRequest, opts ...grpc.CallOption) (*DeliveryResponse, error) {
	return invoke[DeliveryResponse](ctx, c.cc, "CancelDelivery", in, opts)
}

func (c *RiderServiceClient) GetDelivery(ctx context.Context, in *GetDeliveryRequest, opts ...grpc.CallOption) (*DeliveryResponse, error) {
	return invoke[DeliveryResponse](ctx, c.cc, "GetDelivery", in, opts)
}

func (c *RiderServiceClient) ListDeliveries(ctx context.Context, in *ListDeliveriesRequest, opts ...grpc.CallOption) (*ListDeliveriesResponse, error) {
	return invoke[ListDeliveriesResponse](ctx, c.cc, "ListDeliveries", in, opts)
}

func (c *RiderServiceClient) DeliveriesOnDate(ctx context.Context, in *DeliveriesOnDateRequest, opts ...grpc.CallOption) (*ListDeliveriesResponse, error) {
	return invoke[ListDeliveriesResponse](ctx, c.cc, "DeliveriesOnDate", in, opts)
}

func (c *RiderServiceClient) GetProgress(ctx context.Context, opts ...grpc.CallOption) (*ProgressResponse, error) {
	return invoke[ProgressResponse](ctx, c.cc, "GetProgress", &Empty{}, opts)
}

func (c *RiderServiceClient) ListAchievements(ctx context.Context, opts ...grpc.CallOption) (*AchievementsResponse, error) {
	return invoke[AchievementsResponse](ctx, c.cc, "ListAchievements", &Empty{}, opts)
}

func (c *RiderServiceClient) MarkAchievement(ctx context.Context, in *MarkAchievementRequest, opts ...grpc.CallOption) (*MarkAchievementResponse, error) {
	return invoke[MarkAchievementResponse](ctx, c.cc, "MarkAchievement", in, opts)
}
