package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	discordrouter "github.com/jose-valero/xcg-verify-bot/internal/adapters/discord"
	"github.com/jose-valero/xcg-verify-bot/internal/app/service"
	"github.com/jose-valero/xcg-verify-bot/internal/infra/config"
	"github.com/jose-valero/xcg-verify-bot/internal/infra/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// DB (opcional: sin DATABASE_URL el store arranca en modo memoria)
	var store *storage.Store
	if cfg.DatabaseURL == "" {
		store = storage.NewStore(nil)
	} else {
		db, err := storage.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := storage.Migrate(db); err != nil {
			log.Fatal("migrate:", err)
		}
		log.Println("✅ DB lista y migrada")
		store = storage.NewStore(db)
	}

	// Discord session
	auth := cfg.DiscordToken
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(auth)), "bot ") {
		auth = "Bot " + strings.TrimSpace(auth)
	}
	s, err := discordgo.New(auth)
	if err != nil {
		log.Fatal(err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentsGuildVoiceStates
	if err := s.Open(); err != nil {
		log.Fatal(err)
	}
	defer s.Close()
	log.Printf("✅ Conectado como %s (%s)", s.State.User.Username, s.State.User.ID)

	// Services sobre el gateway de discordgo
	gw := discordrouter.NewGateway(s)
	verifySvc := service.NewVerifyService(store, gw, cfg.SubmissionChannelID)
	voiceSvc := service.NewVoiceService(store, gw)

	// Router
	r := discordrouter.NewRouter(s, cfg.DiscordGuild, verifySvc, voiceSvc)
	if err := r.Register(); err != nil {
		log.Fatalf("registrando comandos: %v", err)
	}
	r.Handlers()
	log.Printf("✅ comandos registrados")

	// Barrido 24/7: una sola vez, antes del régimen de eventos
	voiceSvc.Reconcile(context.Background())

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
}
