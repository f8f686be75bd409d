// cmd/seedstaff/main.go — Crea las credenciales iniciales del personal.
// Idempotente: las identidades existentes no se tocan.
//
// Uso:
//
//	SEED_ADMIN_PASSWORD=libreria2026 \
//	SEED_STAFF="F:Flor:f12,V:Vicky:v34" \
//	go run cmd/seedstaff/main.go
//
// SEED_STAFF lista identidad:nombre:pin separados por coma.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"libreria/internal/config"
	"libreria/internal/infra"
	"libreria/internal/repository"
	"libreria/internal/service"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	var entries []service.BootstrapEntry

	if adminPassword := os.Getenv("SEED_ADMIN_PASSWORD"); adminPassword != "" {
		entries = append(entries, service.BootstrapEntry{
			Identidad: service.AdminIdentidad,
			Nombre:    "Administracion",
			Secreto:   adminPassword,
			Tipo:      "admin_password",
		})
	}

	for _, entrada := range strings.Split(os.Getenv("SEED_STAFF"), ",") {
		entrada = strings.TrimSpace(entrada)
		if entrada == "" {
			continue
		}
		parts := strings.SplitN(entrada, ":", 3)
		if len(parts) != 3 {
			log.Fatal().Str("entrada", entrada).Msg("SEED_STAFF espera identidad:nombre:pin")
		}
		entries = append(entries, service.BootstrapEntry{
			Identidad: parts[0],
			Nombre:    parts[1],
			Secreto:   parts[2],
			Tipo:      "pin",
		})
	}

	if len(entries) == 0 {
		log.Fatal().Msg("nada para sembrar: defina SEED_ADMIN_PASSWORD y/o SEED_STAFF")
	}

	repo := repository.NewCredencialRepository(db)
	svc := service.NewCredencialService(repo, cfg.JWTSecret, cfg.JWTExpirationHours)
	if err := svc.Bootstrap(context.Background(), entries); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	fmt.Printf("✅ %d credenciales verificadas/creadas\n", len(entries))
}
