// Package auth casos de uso de autenticación contra la API: login, registro y
// recuperación de contraseña. La sesión resultante se persiste con session.Manager.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/megastore-web/internal/application/dto"
	"github.com/jhoicas/megastore-web/internal/application/session"
	"github.com/jhoicas/megastore-web/internal/application/validation"
	"github.com/jhoicas/megastore-web/internal/domain"
	"github.com/jhoicas/megastore-web/internal/domain/repository"
)

// Rutas de destino.
const (
	PathHome      = "/"
	PathDashboard = "/dashboard"
	PathLogin     = "/auth/login"
)

const (
	msgLogin     = "Error al iniciar sesión. Por favor, intenta de nuevo."
	msgRegister  = "Error al registrar. Por favor, intenta de nuevo."
	msgSendToken = "No se pudo enviar el token. Verifica el email e intenta nuevamente."
	msgReset     = "No se pudo restablecer la contraseña. Verifica el token e intenta nuevamente."

	// MsgTokenSent confirmación del paso 1 de recuperación.
	MsgTokenSent = "El token ha sido enviado a tu correo."
	// MsgPasswordReset confirmación del paso 2 de recuperación.
	MsgPasswordReset = "Contraseña restablecida con éxito."
)

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	gateway  repository.AuthGateway
	sessions *session.Manager
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(gateway repository.AuthGateway, sessions *session.Manager) *AuthUseCase {
	return &AuthUseCase{gateway: gateway, sessions: sessions}
}

// Login valida el formulario, autentica contra la API y escribe la sesión en store.
// Devuelve la ruta a la que redirigir: /dashboard para ADMIN, / para el resto, o next si es una ruta local segura.
func (uc *AuthUseCase) Login(ctx context.Context, store session.CookieStore, form dto.LoginForm) (string, error) {
	if err := validation.First(form); err != nil {
		return "", err
	}
	res, err := uc.gateway.Login(ctx, strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		return "", fmt.Errorf("auth: login: %w", err)
	}
	s := uc.sessions.New(res.User, res.Token)
	if err := uc.sessions.Write(store, s); err != nil {
		return "", fmt.Errorf("auth: escribir sesión: %w", err)
	}
	return RedirectAfterLogin(s.IsAdmin(), form.Next), nil
}

// LoginMessage mensaje a mostrar si Login falla.
func LoginMessage(err error) string { return domain.UserMessage(err, msgLogin) }

// RedirectAfterLogin elige el destino tras el login.
func RedirectAfterLogin(admin bool, next string) string {
	if SafeNext(next) && (admin || !strings.HasPrefix(next, PathDashboard)) {
		return next
	}
	if admin {
		return PathDashboard
	}
	return PathHome
}

// SafeNext acepta solo rutas locales ("/x"), nunca "//host" ni URLs absolutas.
func SafeNext(next string) bool {
	return strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") &&
		!strings.HasPrefix(next, PathLogin)
}

// Logout borra la sesión.
func (uc *AuthUseCase) Logout(store session.CookieStore) {
	uc.sessions.Clear(store)
}

// Register valida y registra al usuario. Tras el alta se inicia sesión manualmente.
func (uc *AuthUseCase) Register(ctx context.Context, form dto.RegisterForm) error {
	if err := validation.First(form); err != nil {
		return err
	}
	in := repository.RegisterInput{
		Email:                strings.TrimSpace(form.Email),
		FirstName:            strings.TrimSpace(form.FirstName),
		LastName:             strings.TrimSpace(form.LastName),
		Password:             form.Password,
		PasswordConfirmation: form.PasswordConfirmation,
	}
	if err := uc.gateway.Register(ctx, in); err != nil {
		return fmt.Errorf("auth: registro: %w", err)
	}
	return nil
}

// RegisterMessage mensaje a mostrar si Register falla.
func RegisterMessage(err error) string { return domain.UserMessage(err, msgRegister) }

// SendResetToken paso 1: pide a la API que envíe el token al email.
func (uc *AuthUseCase) SendResetToken(ctx context.Context, form dto.ResetRequestForm) error {
	if err := validation.First(form); err != nil {
		return err
	}
	if err := uc.gateway.SendResetToken(ctx, strings.TrimSpace(form.Email)); err != nil {
		return domain.NewValidationError("email", msgSendToken)
	}
	return nil
}

// ResetPassword paso 2: token + nueva contraseña.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, form dto.ResetPasswordForm) error {
	if err := validation.First(form); err != nil {
		return err
	}
	if err := uc.gateway.ResetPassword(ctx, strings.TrimSpace(form.Email), strings.TrimSpace(form.Token), form.NewPassword); err != nil {
		return domain.NewValidationError("token", msgReset)
	}
	return nil
}
