package middleware

import (
	"context"
	"net/http"
	"strings"

	"stockcount/internal/domain"
	apperror "stockcount/internal/errors"
	"stockcount/internal/pkg/logger"
	"stockcount/internal/pkg/respond"
	"stockcount/internal/pkg/token"
)

// ContextKey é o tipo não exportado das chaves de contexto deste pacote.
type ContextKey int

const (
	ActorKey ContextKey = iota
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// ActorLoader resolve o usuário do token para um Actor com os armazéns atribuídos.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID int64) (*domain.Actor, error)
}

// Authenticator agrupa os middlewares de autenticação e autorização.
type Authenticator struct {
	tokens TokenService
	actors ActorLoader
	logger logger.Logger
}

// NewAuthenticator cria o Authenticator.
func NewAuthenticator(tokens TokenService, actors ActorLoader, log logger.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, actors: actors, logger: log}
}

// RequireAuth valida o bearer token, carrega o Actor e o anexa ao contexto.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respond.Error(w, r, a.logger, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
			return
		}

		actor, err := a.resolve(r.Context(), tokenString)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respond.Error(w, r, a.logger, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// OptionalAuth anexa o Actor quando há um token válido e segue sem ele caso contrário.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tokenString, ok := bearerToken(r); ok {
			if actor, err := a.resolve(r.Context(), tokenString); err == nil {
				r = r.WithContext(WithActor(r.Context(), actor))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin bloqueia com 403 qualquer ator que não seja administrador.
// Deve ser encadeado depois de RequireAuth.
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			respond.Error(w, r, a.logger, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
			return
		}
		if !actor.IsAdmin() {
			respond.Error(w, r, a.logger, apperror.NewForbiddenError("É necessário o papel de administrador para esta ação."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) resolve(ctx context.Context, tokenString string) (*domain.Actor, error) {
	claims, err := a.tokens.ValidateToken(tokenString)
	if err != nil {
		a.logger.Debug("Token rejeitado.", map[string]interface{}{"reason": err.Error()})
		return nil, apperror.NewUnauthorizedError("Token inválido ou expirado.")
	}

	actor, err := a.actors.LoadActor(ctx, claims.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorizedError("Usuário do token não existe mais.")
		}
		return nil, err
	}
	return actor, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, tokenString, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
		return "", false
	}
	return strings.TrimSpace(tokenString), true
}

// WithActor devolve um contexto com o Actor anexado.
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// ActorFromContext extrai o Actor anexado pelo middleware.
func ActorFromContext(ctx context.Context) (*domain.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(*domain.Actor)
	return actor, ok && actor != nil
}
