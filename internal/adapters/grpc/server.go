// internal/adapters/grpc/server.go
package grpc

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/application"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/logger"
	"github.com/mahabubulhasibshawon/rider-tracker/pkg/auth"
)

type Server struct {
	store    *application.UserStore
	auth     *application.AuthService
	progress *application.ProgressService
	log      logger.Logger
}

func NewServer(store *application.UserStore, authService *application.AuthService, progress *application.ProgressService, log logger.Logger) *Server {
	return &Server{store: store, auth: authService, progress: progress, log: log}
}

type claimsKey struct{}

func claimsFromContext(ctx context.Context) (*auth.Claims, error) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	if !ok || claims == nil {
		return nil, status.Error(codes.Unauthenticated, "Unauthorized")
	}
	return claims, nil
}

func success(message string) Status {
	return Status{Message: message, Type: "success", Code: 200}
}

// failure maps store errors onto the envelope's HTTP-style code.
func failure(err error) Status {
	code := int32(500)
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidPayload):
		code = 422
	case errors.Is(err, domain.ErrNotFound):
		code = 404
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		code = 409
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrNotAuthenticated):
		code = 401
	}
	message := err.Error()
	if code == 500 {
		message = "internal error"
	}
	return Status{Message: message, Type: "error", Code: code}
}

func (s *Server) fail(method string, err error) Status {
	st := failure(err)
	if st.Code == 500 {
		s.log.Errorf("%s: %v", method, err)
	}
	return st
}

func (s *Server) Signup(ctx context.Context, req *SignupRequest) (*UserResponse, error) {
	signup := &application.SignupRequest{
		Username:     req.Username,
		Password:     req.Password,
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		VehicleType:  req.VehicleType,
		VehicleBrand: req.VehicleBrand,
		VehiclePlate: req.VehiclePlate,
		BikeCC:       int(req.BikeCc),
		CapacityTons: req.CapacityTons,
	}
	if req.DailyTarget != nil {
		target := int(*req.DailyTarget)
		signup.DailyTarget = &target
	}
	user, err := s.auth.Signup(ctx, signup)
	if err != nil {
		return &UserResponse{Status: s.fail("Signup", err)}, nil
	}
	return &UserResponse{Status: success("User registered successfully"), Data: user}, nil
}

func (s *Server) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	token, user, err := s.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return &LoginResponse{Status: s.fail("Login", err)}, nil
	}
	return &LoginResponse{
		Status:      success("Logged in"),
		TokenType:   "Bearer",
		AccessToken: token,
		ExpiresIn:   int64(s.auth.TokenTTL() / time.Second),
		Data:        user,
	}, nil
}

func (s *Server) Logout(ctx context.Context, _ *Empty) (*Status, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.auth.Logout(ctx, claims); err != nil {
		st := s.fail("Logout", err)
		return &st, nil
	}
	st := success("Successfully logged out")
	return &st, nil
}

func (s *Server) GetProfile(ctx context.Context, _ *Empty) (*UserResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		return &UserResponse{Status: s.fail("GetProfile", err)}, nil
	}
	return &UserResponse{Status: success("Profile fetched"), Data: user}, nil
}

func (s *Server) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*UserResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.auth.UpdateProfile(ctx, claims.UserID, &application.UpdateProfileRequest{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		VehicleType:  req.VehicleType,
		VehicleBrand: req.VehicleBrand,
		VehiclePlate: req.VehiclePlate,
		BikeCC:       int(req.BikeCc),
		CapacityTons: req.CapacityTons,
	})
	if err != nil {
		return &UserResponse{Status: s.fail("UpdateProfile", err)}, nil
	}
	return &UserResponse{Status: success("Profile updated"), Data: user}, nil
}

func (s *Server) UpdateDailyTarget(ctx context.Context, req *UpdateDailyTargetRequest) (*UserResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateDailyTarget(ctx, claims.UserID, int(req.DailyTarget)); err != nil {
		return &UserResponse{Status: s.fail("UpdateDailyTarget", err)}, nil
	}
	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		return &UserResponse{Status: s.fail("UpdateDailyTarget", err)}, nil
	}
	return &UserResponse{Status: success("Daily target updated"), Data: user}, nil
}

func (s *Server) StartDelivery(ctx context.Context, req *StartDeliveryRequest) (*DeliveryResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.store.StartDelivery(ctx, claims.UserID, req.Payload)
	if err != nil {
		return &DeliveryResponse{Status: s.fail("StartDelivery", err)}, nil
	}
	return &DeliveryResponse{Status: success("Delivery started"), Data: d}, nil
}

func (s *Server) CompleteDelivery(ctx context.Context, req *CompleteDeliveryRequest) (*DeliveryResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.OwnedDelivery(ctx, claims.UserID, req.DeliveryId); err != nil {
		return &DeliveryResponse{Status: s.fail("CompleteDelivery", err)}, nil
	}
	d, err := s.store.CompleteDelivery(ctx, req.DeliveryId, req.Confirmation)
	if err != nil {
		return &DeliveryResponse{Status: s.fail("CompleteDelivery", err)}, nil
	}
	return &DeliveryResponse{Status: success("Delivery completed"), Data: d}, nil
}

func (s *Server) CancelDelivery(ctx context.Context, req *CancelDeliveryRequest) (*DeliveryResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.OwnedDelivery(ctx, claims.UserID, req.DeliveryId); err != nil {
		return &DeliveryResponse{Status: s.fail("CancelDelivery", err)}, nil
	}
	d, err := s.store.CancelDelivery(ctx, req.DeliveryId)
	if err != nil {
		return &DeliveryResponse{Status: s.fail("CancelDelivery", err)}, nil
	}
	return &DeliveryResponse{Status: success("Delivery cancelled"), Data: d}, nil
}

func (s *Server) GetDelivery(ctx context.Context, req *GetDeliveryRequest) (*DeliveryResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.store.OwnedDelivery(ctx, claims.UserID, req.DeliveryId)
	if err != nil {
		return &DeliveryResponse{Status: s.fail("GetDelivery", err)}, nil
	}
	return &DeliveryResponse{Status: success("Delivery found"), Data: d}, nil
}

func (s *Server) ListDeliveries(ctx context.Context, req *ListDeliveriesRequest) (*ListDeliveriesResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	all, err := s.store.DeliveryHistory(ctx, claims.UserID)
	if err != nil {
		return &ListDeliveriesResponse{Status: s.fail("ListDeliveries", err)}, nil
	}

	p := domain.Paginate(int64(len(all)), req.Page, req.Limit)
	deliveries := all[p.Start:p.End]

	return &ListDeliveriesResponse{
		Status: success("Deliveries successfully fetched."),
		Data: &DeliveriesData{
			Deliveries:  deliveries,
			Total:       p.Total,
			CurrentPage: p.Number,
			PerPage:     p.Size,
			TotalInPage: int64(len(deliveries)),
			LastPage:    p.LastPage,
		},
	}, nil
}

func (s *Server) DeliveriesOnDate(ctx context.Context, req *DeliveriesOnDateRequest) (*ListDeliveriesResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	date := s.store.Now()
	if req.Date != "" {
		date, err = time.Parse(time.DateOnly, req.Date)
		if err != nil {
			return &ListDeliveriesResponse{Status: s.fail("DeliveriesOnDate", domain.NewValidationError("date", "must be YYYY-MM-DD"))}, nil
		}
	}
	deliveries, err := s.store.DeliveriesOnDate(ctx, claims.UserID, date)
	if err != nil {
		return &ListDeliveriesResponse{Status: s.fail("DeliveriesOnDate", err)}, nil
	}
	n := int64(len(deliveries))
	return &ListDeliveriesResponse{
		Status: success("Deliveries successfully fetched."),
		Data:   &DeliveriesData{Deliveries: deliveries, Total: n, CurrentPage: 1, PerPage: n, TotalInPage: n, LastPage: 1},
	}, nil
}

func (s *Server) GetProgress(ctx context.Context, _ *Empty) (*ProgressResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.progress.Summary(ctx, claims.UserID)
	if err != nil {
		return &ProgressResponse{Status: s.fail("GetProgress", err)}, nil
	}
	return &ProgressResponse{Status: success("Progress fetched"), Data: summary}, nil
}

func (s *Server) ListAchievements(ctx context.Context, _ *Empty) (*AchievementsResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	labels, err := s.store.Achievements(ctx, claims.UserID)
	if err != nil {
		return &AchievementsResponse{Status: s.fail("ListAchievements", err)}, nil
	}
	return &AchievementsResponse{Status: success("Achievements fetched"), Data: labels}, nil
}

// MarkAchievement records a rider-claimed unlock. NewlyUnlocked is false when
// the label was already held.
func (s *Server) MarkAchievement(ctx context.Context, req *MarkAchievementRequest) (*MarkAchievementResponse, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	fresh, err := s.store.ClaimAchievement(ctx, claims.UserID, &application.AchievementRequest{Label: req.Label})
	if err != nil {
		return &MarkAchievementResponse{Status: s.fail("MarkAchievement", err)}, nil
	}
	msg := "Achievement already unlocked"
	if fresh {
		msg = "Achievement unlocked"
	}
	return &MarkAchievementResponse{Status: success(msg), Label: strings.TrimSpace(req.Label), NewlyUnlocked: fresh}, nil
}

var publicMethods = map[string]bool{
	fullMethod("Signup"): true,
	fullMethod("Login"):  true,
}

// AuthInterceptor requires a valid, unrevoked bearer token on every
// RiderService call except Signup and Login. Other services pass through.
func (s *Server) AuthInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if publicMethods[info.FullMethod] || !strings.HasPrefix(info.FullMethod, "/"+serviceName+"/") {
		return handler(ctx, req)
	}
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing metadata")
	}
	authHeader := md.Get("authorization")
	if len(authHeader) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing authorization")
	}
	token := strings.TrimPrefix(authHeader[0], "Bearer ")
	claims, err := s.auth.Authorize(ctx, token)
	if errors.Is(err, domain.ErrNotAuthenticated) {
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}
	if err != nil {
		s.log.Errorf("authorize %s: %v", info.FullMethod, err)
		return nil, status.Error(codes.Internal, "authorization unavailable")
	}
	return handler(context.WithValue(ctx, claimsKey{}, claims), req)
}

// RecoveryInterceptor turns a panicking handler into codes.Internal.
func (s *Server) RecoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("panic in %s: %v\n%s", info.FullMethod, r, debug.Stack())
			resp, err = nil, status.Error(codes.Internal, "internal error")
		}
	}()
	return handler(ctx, req)
}

func (s *Server) LoggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.log.Debugf("%s %s code=%s", info.FullMethod, time.Since(start), status.Code(err))
	return resp, err
}
