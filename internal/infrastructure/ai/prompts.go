package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/invenpro-api/internal/domain/entity"
)

const (
	insightsPrompt = `Eres un gerente de inventario experto. Analiza el inventario y entrega entre 3 y 4 alertas o recomendaciones estratégicas, centradas en necesidades de reposición y sobrestock.
Devuelve ÚNICAMENTE un arreglo JSON (sin markdown) de objetos con esta estructura exacta:
[{"title": "<texto corto>", "description": "<texto>", "severity": "low" | "medium" | "high", "action": "<acción sugerida>"}]`

	chatPromptFmt = `Eres un gerente de inventario experto. Stock actual: %s
Todos los precios y valorizaciones se expresan en rupias indias (₹). Responde de forma concisa sobre niveles de stock, reposición y valorización.`

	describePromptFmt = `Escribe una descripción comercial concisa y profesional (máximo 2 frases) para un producto llamado "%s" de la categoría "%s". Devuelve solo el texto.`

	maxResponseBytes = 64 * 1024
)

// catalogItem vista reducida del producto que se envía al modelo.
type catalogItem struct {
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Qty      int64  `json:"qty"`
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Category string `json:"category"`
	Price    string `json:"price"`
}

func catalogContext(products []*entity.Product) string {
	items := make([]catalogItem, 0, len(products))
	for _, p := range products {
		items = append(items, catalogItem{
			Name: p.Name, SKU: p.SKU, Qty: p.Quantity, Min: p.MinStock, Max: p.MaxStock,
			Category: p.Category, Price: p.SellingPrice.StringFixed(2),
		})
	}
	b, _ := json.Marshal(items)
	return string(b)
}

// insightPayload es el JSON que esperamos recibir del modelo.
type insightPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Action      string `json:"action"`
}

// parseInsights interpreta la respuesta del modelo. Las entradas con severidad
// fuera de low/medium/high se descartan.
func parseInsights(raw string) ([]entity.Insight, error) {
	clean := extractJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON en la respuesta del modelo")
	}
	var payload []insightPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, fmt.Errorf("AI: parsear insights: %w", err)
	}
	out := make([]entity.Insight, 0, len(payload))
	for _, p := range payload {
		sev := entity.Severity(strings.ToLower(strings.TrimSpace(p.Severity)))
		if !sev.Valid() {
			continue
		}
		out = append(out, entity.Insight{Title: p.Title, Description: p.Description, Severity: sev, Action: p.Action})
	}
	return out, nil
}

// jsonBlockRe captura desde el primer '[' o '{' hasta el último cierre.
var jsonBlockRe = regexp.MustCompile(`(?s)[\[{].*[\]}]`)

// extractJSON extrae el bloque JSON de un texto libre:
//  1. Elimina bloques de código markdown (```json … ```).
//  2. Si no empieza por '[' o '{', usa regex para capturar el primer bloque.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "[") || strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
