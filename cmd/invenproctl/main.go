// invenproctl tareas de operación sobre el almacenamiento configurado.
//
// Uso:
//
//	go run ./cmd/invenproctl hash <password>          imprime el hash bcrypt para OPERATOR_PASSWORD_HASH
//	go run ./cmd/invenproctl import <archivo.csv> [latin1]  importa productos al catálogo
//	go run ./cmd/invenproctl dump <directorio>        escribe las cinco colecciones como JSON
//
// import y dump leen la misma configuración que la API (STORAGE_DRIVER, SQLITE_PATH, DATABASE_URL...),
// incluido JWT_SECRET, que Load exige.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/invenpro-api/internal/application/auth"
	"github.com/jhoicas/invenpro-api/internal/application/inventory"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/memory"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/postgres"
	"github.com/jhoicas/invenpro-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/invenpro-api/pkg/config"
	"github.com/jhoicas/invenpro-api/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		usage()
	}
	var err error
	switch os.Args[1] {
	case "hash":
		err = runHash(os.Args[2])
	case "import":
		err = runImport(os.Args[2], len(os.Args) > 3 && os.Args[3] == "latin1")
	case "dump":
		err = runDump(os.Args[2])
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: invenproctl hash <password> | import <archivo.csv> [latin1] | dump <directorio>")
	os.Exit(2)
}

func runHash(password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func runImport(path string, latin1 bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	// Las hojas exportadas desde Excel en Windows suelen venir en ISO-8859-1
	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}

	ctx := context.Background()
	state, closeFn, cfg, err := openState(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	uc := inventory.NewImportUseCase(state, nil, zerolog.Nop())
	op := entity.Operator{Username: cfg.Auth.Username, Name: cfg.Auth.DisplayName, Role: cfg.Auth.Role}
	res, err := uc.ImportCSV(ctx, op, r)
	if err != nil {
		return err
	}
	fmt.Printf("Importados: %d, omitidos: %d\n", res.Imported, res.Skipped)
	return nil
}

func runDump(dir string) error {
	ctx := context.Background()
	state, closeFn, cfg, err := openState(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	blobs, err := state.Export()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, key := range repository.SnapshotKeys {
		out := filepath.Join(dir, cfg.Storage.Namespace+key+".json")
		if err := os.WriteFile(out, blobs[key], 0o644); err != nil {
			return fmt.Errorf("escribir %s: %w", out, err)
		}
		fmt.Printf("Escrito: %s (%d bytes)\n", out, len(blobs[key]))
	}
	return nil
}

// openState abre el almacenamiento configurado y carga el estado con el catálogo de demostración.
func openState(ctx context.Context) (*memory.State, func(), *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn", Output: os.Stderr})

	var (
		store   repository.SnapshotStore
		closeFn func()
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		pg, err := postgres.NewSnapshotStore(ctx, pool, cfg.Storage.Namespace)
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		store, closeFn = pg, pool.Close
	default:
		lite, err := sqlite.New(cfg.Storage.SQLitePath, cfg.Storage.Namespace)
		if err != nil {
			return nil, nil, nil, err
		}
		store, closeFn = lite, func() { _ = lite.Close() }
	}

	state := memory.NewState(store, log.Zerolog())
	if err := state.Load(ctx, memory.DefaultSeed(time.Now())); err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return state, closeFn, cfg, nil
}
