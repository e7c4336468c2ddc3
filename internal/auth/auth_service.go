package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fmcmkdict/LMA-App/internal/audit"
	autherrors "github.com/fmcmkdict/LMA-App/internal/auth/errors"
	"github.com/fmcmkdict/LMA-App/internal/employee"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// RequestMeta carries the client fingerprint recorded with every
// sign-in attempt.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest, meta RequestMeta) (TokenPairResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (TokenPairResponse, error)
	Me(ctx context.Context, employeeID string) (MeResponse, error)
}

type service struct {
	empRepo employee.Repository
	auditor audit.Service
	logger  *zap.Logger
}

func NewService(empRepo employee.Repository, auditor audit.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{empRepo: empRepo, auditor: auditor, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest, meta RequestMeta) (TokenPairResponse, error) {
	emp, err := s.empRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordAttempt(ctx, nil, req.Username, audit.LoginFailed, meta)
			return TokenPairResponse{}, autherrors.ErrInvalidCredentials
		}
		return TokenPairResponse{}, err
	}

	if !emp.IsActive {
		s.recordAttempt(ctx, &emp.ID, req.Username, audit.LoginBlocked, meta)
		return TokenPairResponse{}, autherrors.ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		s.recordAttempt(ctx, &emp.ID, req.Username, audit.LoginFailed, meta)
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(emp)
	if err != nil {
		return TokenPairResponse{}, err
	}

	s.recordAttempt(ctx, &emp.ID, req.Username, audit.LoginSuccess, meta)
	s.logger.Info("login succeeded",
		zap.String("employee_id", emp.ID.String()),
		zap.String("username", emp.Username),
	)
	return pair, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (TokenPairResponse, error) {
	claims, err := parseToken(req.RefreshToken)
	if err != nil {
		return TokenPairResponse{}, err
	}
	if claims["token_type"] != tokenTypeRefresh {
		return TokenPairResponse{}, autherrors.ErrInvalidTokenType
	}

	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}

	emp, err := s.empRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenPairResponse{}, autherrors.ErrInvalidToken
		}
		return TokenPairResponse{}, err
	}
	if !emp.IsActive {
		return TokenPairResponse{}, autherrors.ErrAccountInactive
	}

	return s.issueTokens(emp)
}

func (s *service) Me(ctx context.Context, employeeID string) (MeResponse, error) {
	emp, err := s.empRepo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return MeResponse{}, autherrors.ErrInvalidToken
		}
		return MeResponse{}, err
	}

	resp := MeResponse{
		ID:           emp.ID.String(),
		Username:     emp.Username,
		SurName:      emp.SurName,
		FirstName:    emp.FirstName,
		FullName:     emp.FullName(),
		Email:        emp.Email,
		Designation:  emp.Designation,
		Capabilities: emp.Capabilities().Strings(),
	}
	if emp.DepartmentID != nil {
		resp.DepartmentID = emp.DepartmentID.String()
	}
	if emp.UnitID != nil {
		resp.UnitID = emp.UnitID.String()
	}
	return resp, nil
}

func (s *service) recordAttempt(ctx context.Context, employeeID *uuid.UUID, username, status string, meta RequestMeta) {
	s.auditor.RecordLoginAttempt(ctx, audit.LoginAttempt{
		EmployeeID: employeeID,
		Username:   username,
		Status:     status,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
	})
}

func (s *service) issueTokens(emp *employee.Employee) (TokenPairResponse, error) {
	now := time.Now().UTC()

	access, err := signToken(emp, tokenTypeAccess, now.Add(accessTokenTTL))
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGeneration
	}
	refresh, err := signToken(emp, tokenTypeRefresh, now.Add(refreshTokenTTL))
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGeneration
	}

	return TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func signToken(emp *employee.Employee, tokenType string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"employee_id":  emp.ID.String(),
		"username":     emp.Username,
		"sur_name":     emp.SurName,
		"first_name":   emp.FirstName,
		"capabilities": emp.Capabilities().Strings(),
		"token_type":   tokenType,
		"iat":          time.Now().UTC().Unix(),
		"exp":          expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func parseToken(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherrors.ErrTokenExpired
		}
		return nil, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, autherrors.ErrInvalidToken
	}
	return claims, nil
}
