package service

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Espera tras una desconexión antes de intentar volver, para no spamear
// reconexiones.
const reconnectBackoff = 5 * time.Second

// VoiceService mantiene "el bot conectado al canal 24/7 del guild siempre
// que se pueda": join/leave manuales, barrido al arranque y reconexión
// automática tras caídas.
type VoiceService struct {
	store ConfigStore
	voice VoiceGateway

	backoff time.Duration
	sleep   func(time.Duration) // inyectable en tests
}

func NewVoiceService(store ConfigStore, voice VoiceGateway) *VoiceService {
	return &VoiceService{
		store:   store,
		voice:   voice,
		backoff: reconnectBackoff,
		sleep:   time.Sleep,
	}
}

// Join conecta al canal y recién después persiste la elección: un connect
// fallido nunca deja config apuntando a un canal inalcanzable.
func (s *VoiceService) Join(ctx context.Context, guildID, channelID string) error {
	if _, ok := s.voice.Current(guildID); ok {
		_ = s.voice.Disconnect(guildID)
	}
	if err := s.voice.Connect(guildID, channelID); err != nil {
		return fmt.Errorf("%w: %v", ErrJoinFailed, err)
	}
	return s.store.SetVoice(ctx, guildID, channelID)
}

// Leave es idempotente: sin conexión ni config tampoco falla.
func (s *VoiceService) Leave(ctx context.Context, guildID string) error {
	if _, ok := s.voice.Current(guildID); ok {
		_ = s.voice.Disconnect(guildID)
	}
	return s.store.DeleteVoice(ctx, guildID)
}

// Reconcile corre UNA vez al arranque, antes del régimen de eventos.
// Configs cuyo guild/canal ya no resuelve se borran (self-healing); el
// fallo de un guild no corta el barrido de los demás.
func (s *VoiceService) Reconcile(ctx context.Context) {
	configs, err := s.store.ListVoice(ctx)
	if err != nil {
		log.Printf("⚠️ 24/7: no pude listar configs: %v", err)
		return
	}

	var stale []string
	for _, c := range configs {
		if !s.voice.GuildExists(c.GuildID) || !s.voice.VoiceChannelExists(c.GuildID, c.VoiceChannelID) {
			stale = append(stale, c.GuildID)
			continue
		}
		if cur, ok := s.voice.Current(c.GuildID); ok {
			if cur == c.VoiceChannelID {
				continue // ya estamos donde hay que estar
			}
			_ = s.voice.Disconnect(c.GuildID)
		}
		if err := s.voice.Connect(c.GuildID, c.VoiceChannelID); err != nil {
			log.Printf("⚠️ 24/7: no pude conectar guild=%s canal=%s: %v", c.GuildID, c.VoiceChannelID, err)
			continue
		}
		_ = s.store.TouchVoiceJoined(ctx, c.GuildID)
		log.Printf("✅ 24/7: conectado guild=%s canal=%s", c.GuildID, c.VoiceChannelID)
	}

	if len(stale) > 0 {
		if err := s.store.DeleteVoiceBatch(ctx, stale); err != nil {
			log.Printf("⚠️ 24/7: limpieza de configs muertas: %v", err)
		} else {
			log.Printf("🧹 24/7: %d configs muertas eliminadas", len(stale))
		}
	}
}

// HandleDisconnect corre cuando cae la PROPIA conexión del bot (había canal
// antes, ahora no). Espera el backoff y re-chequea conexión Y config antes
// de volver: un /leave247 emitido durante la espera gana.
func (s *VoiceService) HandleDisconnect(ctx context.Context, guildID, prevChannelID string) {
	if prevChannelID == "" {
		return
	}
	if _, err := s.store.GetVoice(ctx, guildID); err != nil {
		return // desconexión manual de un canal sin 24/7: no se restaura
	}

	s.sleep(s.backoff)

	if _, ok := s.voice.Current(guildID); ok {
		return
	}
	cfg, err := s.store.GetVoice(ctx, guildID)
	if err != nil {
		return
	}
	if err := s.voice.Connect(guildID, cfg.VoiceChannelID); err != nil {
		log.Printf("⚠️ 24/7: reconexión fallida guild=%s canal=%s: %v", guildID, cfg.VoiceChannelID, err)
		return
	}
	_ = s.store.TouchVoiceJoined(ctx, guildID)
	log.Printf("✅ 24/7: reconectado guild=%s canal=%s", guildID, cfg.VoiceChannelID)
}
