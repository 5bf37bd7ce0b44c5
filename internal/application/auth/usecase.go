package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/pkg/jwt"
)

// Áreas protegidas por PIN.
const (
	GateBilling         = "billing"
	GateAnalytics       = "analytics"
	GateStockAdjustment = "stock_adjustment"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// OperatorConfig credenciales del operador único y PINs por área.
type OperatorConfig struct {
	Username     string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	PINs         map[string]string // gate -> PIN
}

// AuditRecorder registra la entrada de bitácora del inicio de sesión.
type AuditRecorder interface {
	Record(ctx context.Context, action, details string, op entity.Operator) error
}

// AuthUseCase inicio de sesión del operador y verificación de PINs.
type AuthUseCase struct {
	operator OperatorConfig
	jwtCfg   JWTConfig
	audit    AuditRecorder
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operator OperatorConfig, jwtCfg JWTConfig, audit AuditRecorder) *AuthUseCase {
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg, audit: audit}
}

// Login verifica usuario/password, genera JWT y registra USER_LOGIN.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.operator.PasswordHash == "" || in.Username != uc.operator.Username {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	op := entity.Operator{Username: uc.operator.Username, Name: uc.operator.Name, Role: uc.operator.Role}

	token, err := jwt.Generate(uc.jwtCfg.Secret, op.Username, op.Name, op.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if uc.audit != nil {
		if err := uc.audit.Record(ctx, entity.AuditUserLogin, "Operator session established.", op); err != nil {
			return nil, fmt.Errorf("auth: registrar inicio de sesión: %w", err)
		}
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Username:  op.Username,
		Name:      op.Name,
		Role:      op.Role,
	}, nil
}

// VerifyPIN compara el PIN del área. Un área desconocida o un PIN distinto devuelven ErrInvalidPIN.
func (uc *AuthUseCase) VerifyPIN(gate, pin string) error {
	expected, ok := uc.operator.PINs[gate]
	if !ok || expected == "" {
		return fmt.Errorf("%w: área %q", domain.ErrInvalidPIN, gate)
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(pin)) != 1 {
		return domain.ErrInvalidPIN
	}
	return nil
}

// HashPassword genera el hash bcrypt para OPERATOR_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
