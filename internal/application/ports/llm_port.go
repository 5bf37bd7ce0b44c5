package ports

import (
	"context"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

// LLMService define el puerto de salida para los servicios de inteligencia artificial.
// Cualquier adaptador (Gemini, Anthropic, mock) debe implementar esta interfaz.
// El asesor es de solo lectura: recibe copias del catálogo y nunca escribe en los libros.
type LLMService interface {
	// GenerateInsights analiza el catálogo y devuelve observaciones con severidad validada.
	GenerateInsights(ctx context.Context, products []*entity.Product) ([]entity.Insight, error)
	// Chat responde una pregunta libre usando el catálogo como contexto.
	Chat(ctx context.Context, message string, products []*entity.Product) (string, error)
	// DescribeProduct redacta una descripción comercial corta (máx. 2 frases).
	DescribeProduct(ctx context.Context, name, category string) (string, error)
}

// InsightCache caché opcional de insights indexada por huella del catálogo.
type InsightCache interface {
	Get(ctx context.Context, key string) ([]entity.Insight, bool, error)
	Set(ctx context.Context, key string, insights []entity.Insight) error
}
