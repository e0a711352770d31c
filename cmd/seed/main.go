// seed crea los datos mínimos para operar: un usuario admin y un catálogo
// base de artículos de TI. Idempotente: si el email/código ya existe, lo
// salta.
//
// Uso: go run ./cmd/seed
// Variables: las mismas de la API (DATABASE_URL o DB_*), más
// SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ActivosTI-api/internal/domain/entity"
	"github.com/jhoicas/ActivosTI-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ActivosTI-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewCatalogItemRepository(pool)

	if err := seedAdmin(userRepo); err != nil {
		fmt.Fprintf(os.Stderr, "seed admin: %v\n", err)
		os.Exit(1)
	}
	if err := seedCatalog(itemRepo); err != nil {
		fmt.Fprintf(os.Stderr, "seed catálogo: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("seed completado")
}

func seedAdmin(repo *postgres.UserRepo) error {
	email := envOr("SEED_ADMIN_EMAIL", "admin@activos-ti.local")
	password := envOr("SEED_ADMIN_PASSWORD", "cambiar-ahora")

	existing, err := repo.FindByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Printf("admin %s ya existe, saltando\n", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Department:   "TI",
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repo.Create(admin); err != nil {
		return err
	}
	fmt.Printf("admin %s creado\n", email)
	return nil
}

func seedCatalog(repo *postgres.CatalogItemRepo) error {
	type seedItem struct {
		code           string
		name           string
		deviceType     string
		classification string
		brand          string
		model          string
		warranty       int
		spec           map[string]any
	}
	items := []seedItem{
		{"IT-001", "Portátil de oficina", entity.DeviceTypeLaptop, entity.ClassificationFixedAsset,
			"Lenovo", "ThinkPad E14", 36,
			map[string]any{"cpu": "Ryzen 5 7530U", "ram_gb": 16, "storage_gb": 512, "screen_inches": 14.0}},
		{"IT-002", "Equipo de escritorio", entity.DeviceTypeDesktop, entity.ClassificationFixedAsset,
			"Dell", "OptiPlex 3000", 36,
			map[string]any{"cpu": "Core i5-12500", "ram_gb": 16, "storage_gb": 512, "monitor_model": "P2422H"}},
		{"IT-003", "Impresora láser", entity.DeviceTypePrinter, entity.ClassificationFixedAsset,
			"HP", "LaserJet M404dn", 12,
			map[string]any{"technology": "laser", "color_support": false, "duplex_print": true}},
		{"IT-004", "UPS 1000VA", entity.DeviceTypeUPS, entity.ClassificationFixedAsset,
			"APC", "BX1000M", 24,
			map[string]any{"capacity_va": 1000, "battery_type": "sellada", "outlets": 6}},
		{"IT-010", "Mouse USB", entity.DeviceTypeOther, entity.ClassificationConsumable,
			"Logitech", "M90", 0, nil},
		{"IT-011", "Teclado USB", entity.DeviceTypeOther, entity.ClassificationConsumable,
			"Logitech", "K120", 0, nil},
		{"IT-012", "Cable de red Cat6 2m", entity.DeviceTypeOther, entity.ClassificationConsumable,
			"", "", 0, nil},
	}

	now := time.Now()
	for _, s := range items {
		existing, err := repo.GetByCode(s.code)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		var payload []byte
		if s.spec != nil {
			payload, err = json.Marshal(s.spec)
			if err != nil {
				return err
			}
		}
		item := &entity.CatalogItem{
			ID:             uuid.New().String(),
			Code:           s.code,
			Name:           s.name,
			DeviceType:     s.deviceType,
			Classification: s.classification,
			Brand:          s.brand,
			Model:          s.model,
			WarrantyMonths: s.warranty,
			SpecPayload:    payload,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := repo.Create(item); err != nil {
			return err
		}
		fmt.Printf("artículo %s creado\n", s.code)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
