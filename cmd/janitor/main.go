package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Poda configs 24/7 de guilds donde el bot no logra conectarse hace semanas
// (lo echaron o borraron el canal y el proceso nunca llegó a self-heal).
// Las configs de verificación no se tocan: esas no caducan solas.
func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Sprintf("parse: %v", err), nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Sprintf("pool: %v", err), nil
	}
	defer pool.Close()

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, _ = pool.Exec(cctx, `
DELETE FROM guild_voice WHERE last_joined_at < now() - INTERVAL '30 days';`)

	return "ok", nil
}

func main() { lambda.Start(handler) }
