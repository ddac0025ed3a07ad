package service

import (
	"context"
	"log"
	"strings"

	"github.com/jose-valero/xcg-verify-bot/internal/infra/storage"
)

// Tope de caracteres del campo libre antes de mostrarlo en el audit.
const maxAdditionalInfo = 500

// Datos crudos del modal. No se persisten: o se descartan (validación) o se
// convierten en rol + audit.
type Submission struct {
	FullName       string
	CountryCode    string
	Phone          string
	Email          string
	AdditionalInfo string
}

type AuditRecord struct {
	GuildID   string
	GuildName string
	UserID    string
	RoleID    string
	Submission
}

type GrantResult struct {
	RoleID    string
	GuildName string
}

type VerifyService struct {
	store ConfigStore
	gw    GuildGateway

	// Canal global de submissions; vacío => sin audit.
	submissionChannelID string
}

func NewVerifyService(store ConfigStore, gw GuildGateway, submissionChannelID string) *VerifyService {
	return &VerifyService{store: store, gw: gw, submissionChannelID: submissionChannelID}
}

// Configure guarda canal + rol del panel (/setverify).
func (s *VerifyService) Configure(ctx context.Context, guildID, channelID, roleID string) error {
	return s.store.SetVerify(ctx, guildID, channelID, roleID)
}

// PostPanel publica el panel persistente en el canal configurado.
func (s *VerifyService) PostPanel(ctx context.Context, guildID string) error {
	cfg, err := s.store.GetVerify(ctx, guildID)
	if err == storage.ErrNotFound {
		return ErrConfigMissing
	}
	if err != nil {
		return err
	}
	if !s.gw.TextChannelExists(guildID, cfg.ChannelID) || !s.gw.RoleExists(guildID, cfg.RoleID) {
		return ErrResolutionFailed
	}
	return s.gw.PublishPanel(cfg.ChannelID, cfg.RoleID)
}

// Start corre al click del botón. already=true => el usuario ya tiene el rol
// y NO se abre el modal (corte terminal, no es un error).
func (s *VerifyService) Start(ctx context.Context, guildID, userID string) (already bool, err error) {
	cfg, err := s.store.GetVerify(ctx, guildID)
	if err == storage.ErrNotFound {
		return false, ErrConfigMissing
	}
	if err != nil {
		return false, err
	}
	if !s.gw.RoleExists(guildID, cfg.RoleID) {
		return false, ErrRoleMissing
	}
	return s.gw.MemberHasRole(guildID, userID, cfg.RoleID)
}

// Submit valida el formulario, asigna el rol y publica el audit best-effort.
func (s *VerifyService) Submit(ctx context.Context, guildID, userID string, sub Submission) (GrantResult, error) {
	if err := ValidateSubmission(sub); err != nil {
		return GrantResult{}, err
	}

	cfg, err := s.store.GetVerify(ctx, guildID)
	if err == storage.ErrNotFound {
		return GrantResult{}, ErrConfigMissing
	}
	if err != nil {
		return GrantResult{}, err
	}
	if !s.gw.RoleExists(guildID, cfg.RoleID) {
		return GrantResult{}, ErrRoleMissing
	}

	if err := s.gw.GrantRole(guildID, userID, cfg.RoleID); err != nil {
		return GrantResult{}, err
	}

	guildName, _ := s.gw.GuildName(guildID)

	// Audit best-effort: si falla se loguea y listo, la verificación del
	// usuario ya está completa.
	if s.submissionChannelID != "" {
		rec := AuditRecord{
			GuildID:    guildID,
			GuildName:  guildName,
			UserID:     userID,
			RoleID:     cfg.RoleID,
			Submission: sub,
		}
		rec.AdditionalInfo = Truncate(strings.TrimSpace(rec.AdditionalInfo), maxAdditionalInfo)
		if err := s.gw.PublishAudit(s.submissionChannelID, rec); err != nil {
			log.Printf("⚠️ verify: no pude publicar la submission de %s: %v", userID, err)
		}
	}

	return GrantResult{RoleID: cfg.RoleID, GuildName: guildName}, nil
}

// ValidateSubmission corta en el PRIMER error: teléfono → email → código de
// país. Nunca agrega varios errores.
func ValidateSubmission(sub Submission) error {
	if !allDigits(sub.Phone) || len(sub.Phone) < 8 || len(sub.Phone) > 15 {
		return ErrInvalidPhone
	}
	at := strings.LastIndex(sub.Email, "@")
	if at < 0 || !strings.Contains(sub.Email[at+1:], ".") {
		return ErrInvalidEmail
	}
	if !strings.HasPrefix(sub.CountryCode, "+") || !allDigits(sub.CountryCode[1:]) {
		return ErrInvalidCountryCode
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
