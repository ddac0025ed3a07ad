package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jose-valero/xcg-verify-bot/internal/infra/storage"
)

type fakeGateway struct {
	guildName   string
	channels    map[string]bool
	roles       map[string]bool
	memberRoles map[string]bool // userID -> ya tiene el rol

	grantErr error
	granted  []string

	auditErr error
	audits   []AuditRecord

	panelErr error
	panels   []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		guildName:   "XCG",
		channels:    map[string]bool{},
		roles:       map[string]bool{},
		memberRoles: map[string]bool{},
	}
}

func (g *fakeGateway) GuildName(string) (string, bool) { return g.guildName, g.guildName != "" }
func (g *fakeGateway) TextChannelExists(_, channelID string) bool {
	return g.channels[channelID]
}
func (g *fakeGateway) RoleExists(_, roleID string) bool { return g.roles[roleID] }
func (g *fakeGateway) MemberHasRole(_, userID, _ string) (bool, error) {
	return g.memberRoles[userID], nil
}
func (g *fakeGateway) GrantRole(_, userID, _ string) error {
	if g.grantErr != nil {
		return g.grantErr
	}
	g.granted = append(g.granted, userID)
	return nil
}
func (g *fakeGateway) PublishPanel(channelID, _ string) error {
	if g.panelErr != nil {
		return g.panelErr
	}
	g.panels = append(g.panels, channelID)
	return nil
}
func (g *fakeGateway) PublishAudit(_ string, rec AuditRecord) error {
	if g.auditErr != nil {
		return g.auditErr
	}
	g.audits = append(g.audits, rec)
	return nil
}

func validSubmission() Submission {
	return Submission{
		FullName:    "Juan Pérez",
		CountryCode: "+54",
		Phone:       "1234567890",
		Email:       "juan@example.com",
	}
}

func TestValidateSubmission(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Submission)
		want   error
	}{
		{"todo ok", func(*Submission) {}, nil},
		{"teléfono corto", func(s *Submission) { s.Phone = "12345" }, ErrInvalidPhone},
		{"teléfono mínimo", func(s *Submission) { s.Phone = "12345678" }, nil},
		{"teléfono máximo", func(s *Submission) { s.Phone = "123456789012345" }, nil},
		{"teléfono largo", func(s *Submission) { s.Phone = "1234567890123456" }, ErrInvalidPhone},
		{"teléfono con letras", func(s *Submission) { s.Phone = "12345abc" }, ErrInvalidPhone},
		{"teléfono vacío", func(s *Submission) { s.Phone = "" }, ErrInvalidPhone},
		{"email sin punto tras @", func(s *Submission) { s.Email = "a@b" }, ErrInvalidEmail},
		{"email mínimo", func(s *Submission) { s.Email = "a@b.c" }, nil},
		{"email doble arroba", func(s *Submission) { s.Email = "a@@b.c" }, nil},
		{"email sin arroba", func(s *Submission) { s.Email = "ab.c" }, ErrInvalidEmail},
		{"código ok", func(s *Submission) { s.CountryCode = "+977" }, nil},
		{"código sin +", func(s *Submission) { s.CountryCode = "977" }, ErrInvalidCountryCode},
		{"código con letra", func(s *Submission) { s.CountryCode = "+9a7" }, ErrInvalidCountryCode},
		{"código solo +", func(s *Submission) { s.CountryCode = "+" }, ErrInvalidCountryCode},
		// el orden corta en el primer error: teléfono antes que email
		{"teléfono y email malos", func(s *Submission) { s.Phone = "1"; s.Email = "x" }, ErrInvalidPhone},
		{"email y código malos", func(s *Submission) { s.Email = "x"; s.CountryCode = "1" }, ErrInvalidEmail},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			tc.mutate(&sub)
			err := ValidateSubmission(sub)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func setupVerify(t *testing.T) (*VerifyService, *fakeGateway, ConfigStore) {
	t.Helper()
	store := storage.NewStore(nil)
	gw := newFakeGateway()
	svc := NewVerifyService(store, gw, "audit-chan")
	return svc, gw, store
}

func TestStart(t *testing.T) {
	ctx := context.Background()

	t.Run("sin config", func(t *testing.T) {
		svc, _, _ := setupVerify(t)
		_, err := svc.Start(ctx, "g1", "u1")
		assert.ErrorIs(t, err, ErrConfigMissing)
	})

	t.Run("rol borrado", func(t *testing.T) {
		svc, _, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		_, err := svc.Start(ctx, "g1", "u1")
		assert.ErrorIs(t, err, ErrRoleMissing)
	})

	t.Run("abre el form", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.roles["r1"] = true
		already, err := svc.Start(ctx, "g1", "u1")
		require.NoError(t, err)
		assert.False(t, already)
	})

	t.Run("ya verificado corta sin tocar el rol", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.roles["r1"] = true
		gw.memberRoles["u1"] = true
		already, err := svc.Start(ctx, "g1", "u1")
		require.NoError(t, err)
		assert.True(t, already)
		assert.Empty(t, gw.granted)
	})
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("asigna rol y publica audit", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.roles["r1"] = true

		res, err := svc.Submit(ctx, "g1", "u1", validSubmission())
		require.NoError(t, err)
		assert.Equal(t, "r1", res.RoleID)
		assert.Equal(t, "XCG", res.GuildName)
		assert.Equal(t, []string{"u1"}, gw.granted)
		require.Len(t, gw.audits, 1)
		assert.Equal(t, "juan@example.com", gw.audits[0].Email)
	})

	t.Run("info adicional truncada a 500", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.roles["r1"] = true

		sub := validSubmission()
		sub.AdditionalInfo = strings.Repeat("x", 800)
		_, err := svc.Submit(ctx, "g1", "u1", sub)
		require.NoError(t, err)
		require.Len(t, gw.audits, 1)
		assert.Len(t, gw.audits[0].AdditionalInfo, 500)
	})

	t.Run("audit caído no rompe la verificación", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.roles["r1"] = true
		gw.auditErr = errors.New("canal lleno")

		res, err := svc.Submit(ctx, "g1", "u1", validSubmission())
		require.NoError(t, err)
		assert.Equal(t, "r1", res.RoleID)
		assert.Equal(t, []string{"u1"}, gw.granted)
	})

	t.Run("sin canal de audit no publica", func(t *testing.T) {
		store := storage.NewStore(nil)
		gw := newFakeGateway()
		svc := NewVerifyService(store, gw, "")
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.roles["r1"] = true

		_, err := svc.Submit(ctx, "g1", "u1", validSubmission())
		require.NoError(t, err)
		assert.Empty(t, gw.audits)
	})

	t.Run("validación corta antes del rol", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.roles["r1"] = true

		sub := validSubmission()
		sub.Phone = "123"
		_, err := svc.Submit(ctx, "g1", "u1", sub)
		assert.ErrorIs(t, err, ErrInvalidPhone)
		assert.Empty(t, gw.granted)
		assert.Empty(t, gw.audits)
	})

	t.Run("bot sin permisos sobre el rol", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.roles["r1"] = true
		gw.grantErr = ErrPermissionDenied

		_, err := svc.Submit(ctx, "g1", "u1", validSubmission())
		assert.ErrorIs(t, err, ErrPermissionDenied)
		assert.Empty(t, gw.audits)
	})

	// un rechazo no bloquea el siguiente intento
	t.Run("reintento tras rechazo", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.roles["r1"] = true

		bad := validSubmission()
		bad.Email = "nope"
		_, err := svc.Submit(ctx, "g1", "u1", bad)
		assert.ErrorIs(t, err, ErrInvalidEmail)

		_, err = svc.Submit(ctx, "g1", "u1", validSubmission())
		assert.NoError(t, err)
	})
}

func TestPostPanel(t *testing.T) {
	ctx := context.Background()

	t.Run("sin config", func(t *testing.T) {
		svc, _, _ := setupVerify(t)
		assert.ErrorIs(t, svc.PostPanel(ctx, "g1"), ErrConfigMissing)
	})

	t.Run("canal o rol muerto", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.roles["r1"] = true // canal c1 no existe
		assert.ErrorIs(t, svc.PostPanel(ctx, "g1"), ErrResolutionFailed)
	})

	t.Run("sin permiso de escritura", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.channels["c1"] = true
		gw.roles["r1"] = true
		gw.panelErr = ErrPermissionDenied
		assert.ErrorIs(t, svc.PostPanel(ctx, "g1"), ErrPermissionDenied)
	})

	t.Run("publica", func(t *testing.T) {
		svc, gw, store := setupVerify(t)
		require.NoError(t, store.SetVerify(ctx, "g1", "c1", "r1"))
		gw.channels["c1"] = true
		gw.roles["r1"] = true
		require.NoError(t, svc.PostPanel(ctx, "g1"))
		assert.Equal(t, []string{"c1"}, gw.panels)
	})
}
