package storage

import (
	"context"
	"database/sql"
	"log"
	"sort"
	"sync"
	"time"
)

// Presupuesto por operación contra Postgres.
const opTimeout = 5 * time.Second

type verifyStore interface {
	Get(ctx context.Context, guildID string) (GuildVerifyConfig, error)
	Upsert(ctx context.Context, guildID, channelID, roleID string) error
}

type voiceStore interface {
	Get(ctx context.Context, guildID string) (GuildVoiceConfig, error)
	Upsert(ctx context.Context, guildID, voiceChannelID string) error
	Delete(ctx context.Context, guildID string) error
	DeleteMany(ctx context.Context, guildIDs []string) error
	List(ctx context.Context) ([]GuildVoiceConfig, error)
	TouchJoined(ctx context.Context, guildID string) error
}

// Store es la config por guild con fallback a memoria.
//
// Si una operación remota falla, el Store queda "degradado" para el resto
// del proceso: esa operación y todas las siguientes van contra los mapas en
// memoria. La transición es de una sola vía; no se reintenta el remoto.
type Store struct {
	verify verifyStore
	voice  voiceStore

	mu        sync.Mutex
	degraded  bool
	memVerify map[string]GuildVerifyConfig
	memVoice  map[string]GuildVoiceConfig
}

// NewStore arma el Store sobre Postgres. Con db == nil (sin DATABASE_URL)
// arranca ya degradado y nunca toca el remoto.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		log.Printf("⚠️ storage: sin DATABASE_URL, config solo en memoria")
		s := newStore(nil, nil)
		s.degraded = true
		return s
	}
	return newStore(NewVerifyRepo(db), NewVoiceRepo(db))
}

func newStore(v verifyStore, vo voiceStore) *Store {
	return &Store{
		verify:    v,
		voice:     vo,
		memVerify: map[string]GuildVerifyConfig{},
		memVoice:  map[string]GuildVoiceConfig{},
	}
}

func (s *Store) isDegraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Store) degrade(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.degraded {
		s.degraded = true
		log.Printf("⚠️ storage degradado (%s): %v — seguimos en memoria hasta reiniciar", op, err)
	}
}

// ---------- verificación ----------

func (s *Store) GetVerify(ctx context.Context, guildID string) (GuildVerifyConfig, error) {
	if !s.isDegraded() {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		c, err := s.verify.Get(cctx, guildID)
		cancel()
		if err == nil || err == ErrNotFound {
			return c, err
		}
		s.degrade("get verify", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.memVerify[guildID]
	if !ok {
		return GuildVerifyConfig{}, ErrNotFound
	}
	return c, nil
}

func (s *Store) SetVerify(ctx context.Context, guildID, channelID, roleID string) error {
	if !s.isDegraded() {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		err := s.verify.Upsert(cctx, guildID, channelID, roleID)
		cancel()
		if err == nil {
			return nil
		}
		s.degrade("set verify", err)
	}
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.memVerify[guildID]
	if !ok {
		c = GuildVerifyConfig{GuildID: guildID, CreatedAt: now}
	}
	c.ChannelID, c.RoleID, c.UpdatedAt = channelID, roleID, now
	s.memVerify[guildID] = c
	return nil
}

// ---------- voz 24/7 ----------

func (s *Store) GetVoice(ctx context.Context, guildID string) (GuildVoiceConfig, error) {
	if !s.isDegraded() {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		c, err := s.voice.Get(cctx, guildID)
		cancel()
		if err == nil || err == ErrNotFound {
			return c, err
		}
		s.degrade("get voice", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.memVoice[guildID]
	if !ok {
		return GuildVoiceConfig{}, ErrNotFound
	}
	return c, nil
}

func (s *Store) SetVoice(ctx context.Context, guildID, voiceChannelID string) error {
	if !s.isDegraded() {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		err := s.voice.Upsert(cctx, guildID, voiceChannelID)
		cancel()
		if err == nil {
			return nil
		}
		s.degrade("set voice", err)
	}
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.memVoice[guildID]
	if !ok {
		c = GuildVoiceConfig{GuildID: guildID, CreatedAt: now}
	}
	c.VoiceChannelID, c.LastJoinedAt = voiceChannelID, now
	s.memVoice[guildID] = c
	return nil
}

func (s *Store) DeleteVoice(ctx context.Context, guildID string) error {
	if !s.isDegraded() {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		err := s.voice.Delete(cctx, guildID)
		cancel()
		if err == nil {
			return nil
		}
		s.degrade("delete voice", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.memVoice, guildID)
	return nil
}

func (s *Store) DeleteVoiceBatch(ctx context.Context, guildIDs []string) error {
	if len(guildIDs) == 0 {
		return nil
	}
	if !s.isDegraded() {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		err := s.voice.DeleteMany(cctx, guildIDs)
		cancel()
		if err == nil {
			return nil
		}
		s.degrade("delete voice batch", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range guildIDs {
		delete(s.memVoice, g)
	}
	return nil
}

func (s *Store) ListVoice(ctx context.Context) ([]GuildVoiceConfig, error) {
	if !s.isDegraded() {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		out, err := s.voice.List(cctx)
		cancel()
		if err == nil {
			return out, nil
		}
		s.degrade("list voice", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GuildVoiceConfig, 0, len(s.memVoice))
	for _, c := range s.memVoice {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GuildID < out[j].GuildID })
	return out, nil
}

func (s *Store) TouchVoiceJoined(ctx context.Context, guildID string) error {
	if !s.isDegraded() {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		err := s.voice.TouchJoined(cctx, guildID)
		cancel()
		if err == nil {
			return nil
		}
		s.degrade("touch voice", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.memVoice[guildID]; ok {
		c.LastJoinedAt = time.Now()
		s.memVoice[guildID] = c
	}
	return nil
}
