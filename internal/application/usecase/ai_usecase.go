package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/invenpro-api/internal/application/dto"
	"github.com/jhoicas/invenpro-api/internal/application/ports"
	"github.com/jhoicas/invenpro-api/internal/domain"
	"github.com/jhoicas/invenpro-api/internal/domain/entity"
	"github.com/jhoicas/invenpro-api/internal/domain/repository"
)

const (
	// MaxInsights tope de observaciones devueltas por el asesor.
	MaxInsights = 4
	aiTimeout   = 10 * time.Second
)

// AIUseCase orquesta el asesor de IA. Solo lee el catálogo: nunca abre una
// transacción de escritura. Aplica un timeout de 10 segundos en cada llamada al LLM
// para que la latencia externa no bloquee los goroutines del servidor.
type AIUseCase struct {
	llm   ports.LLMService
	cache ports.InsightCache // opcional
	tx    ports.TxRunner
	log   zerolog.Logger
}

// NewAIUseCase construye el caso de uso. llm nil deja el asesor deshabilitado
// (ErrAIUnavailable); cache nil desactiva el caché de insights.
func NewAIUseCase(llm ports.LLMService, cache ports.InsightCache, tx ports.TxRunner, log zerolog.Logger) *AIUseCase {
	return &AIUseCase{llm: llm, cache: cache, tx: tx, log: log}
}

// GetInsights analiza el catálogo. Un fallo del proveedor no es un error: la respuesta
// trae la lista vacía y el mensaje en Error.
func (uc *AIUseCase) GetInsights(ctx context.Context) (*dto.InsightsResponse, error) {
	if uc.llm == nil {
		return nil, domain.ErrAIUnavailable
	}
	products, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}

	key := Fingerprint(products)
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.log.Warn().Err(err).Msg("ai: lectura de caché fallida")
		} else if ok {
			return &dto.InsightsResponse{Insights: toInsightResponses(cached), Cached: true}, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	raw, err := uc.llm.GenerateInsights(callCtx, products)
	if err != nil {
		uc.log.Warn().Err(err).Msg("ai: insights no disponibles")
		return &dto.InsightsResponse{Insights: []dto.InsightResponse{}, Error: "Unable to generate insights at this time."}, nil
	}
	insights := SanitizeInsights(raw)

	if uc.cache != nil && len(insights) > 0 {
		if err := uc.cache.Set(ctx, key, insights); err != nil {
			uc.log.Warn().Err(err).Msg("ai: escritura de caché fallida")
		}
	}
	return &dto.InsightsResponse{Insights: toInsightResponses(insights)}, nil
}

// Chat responde una pregunta libre con el catálogo como contexto.
func (uc *AIUseCase) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, fmt.Errorf("%w: el mensaje es obligatorio", domain.ErrInvalidInput)
	}
	if uc.llm == nil {
		return nil, domain.ErrAIUnavailable
	}
	products, err := uc.catalog(ctx)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	reply, err := uc.llm.Chat(callCtx, msg, products)
	if err != nil {
		return nil, fmt.Errorf("chat IA: %w", err)
	}
	return &dto.ChatResponse{Reply: strings.TrimSpace(reply)}, nil
}

// DescribeProduct sugiere una descripción comercial para el formulario de producto.
func (uc *AIUseCase) DescribeProduct(ctx context.Context, req dto.DescribeProductRequest) (*dto.DescribeProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	if uc.llm == nil {
		return nil, domain.ErrAIUnavailable
	}

	callCtx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	text, err := uc.llm.DescribeProduct(callCtx, name, strings.TrimSpace(req.Category))
	if err != nil {
		return nil, fmt.Errorf("descripción IA: %w", err)
	}
	return &dto.DescribeProductResponse{Description: strings.TrimSpace(text)}, nil
}

func (uc *AIUseCase) catalog(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	err := uc.tx.View(ctx, func(s repository.Stores) error {
		var err error
		products, err = s.Products.List(repository.ProductFilter{})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("ai: leer catálogo: %w", err)
	}
	return products, nil
}

// SanitizeInsights descarta entradas con severidad desconocida o sin título y corta en MaxInsights.
func SanitizeInsights(in []entity.Insight) []entity.Insight {
	out := make([]entity.Insight, 0, MaxInsights)
	for _, i := range in {
		i.Severity = entity.Severity(strings.ToLower(strings.TrimSpace(string(i.Severity))))
		if !i.Severity.Valid() || strings.TrimSpace(i.Title) == "" {
			continue
		}
		out = append(out, i)
		if len(out) == MaxInsights {
			break
		}
	}
	return out
}

// Fingerprint huella del catálogo usada como clave de caché. Cubre todo campo que viaja en el
// prompt: cualquier alta, baja o cambio de nombre, SKU, categoría, stock o precio la altera.
func Fingerprint(products []*entity.Product) string {
	h := sha256.New()
	for _, p := range products {
		fmt.Fprintf(h, "%s|%q|%q|%q|%d|%d|%d|%s|%s\n",
			p.ID, p.Name, p.SKU, p.Category, p.Quantity, p.MinStock, p.MaxStock,
			p.PurchasePrice.String(), p.SellingPrice.String())
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func toInsightResponses(in []entity.Insight) []dto.InsightResponse {
	out := make([]dto.InsightResponse, 0, len(in))
	for _, i := range in {
		out = append(out, dto.InsightResponse{
			Title:       i.Title,
			Description: i.Description,
			Severity:    string(i.Severity),
			Action:      i.Action,
		})
	}
	return out
}
