package ports

import (
	"context"

	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

// TxRunner ejecuta fn sobre los cinco libros como una sola unidad: si fn devuelve
// error no queda ningún cambio visible; si termina bien, todos los cambios se
// publican juntos y se persisten.
type TxRunner interface {
	Run(ctx context.Context, fn func(s repository.Stores) error) error
	// View da acceso de solo lectura al estado confirmado.
	View(ctx context.Context, fn func(s repository.Stores) error) error
}
