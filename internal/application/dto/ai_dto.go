package dto

// InsightResponse observación del asesor de IA.
type InsightResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Action      string `json:"action,omitempty"`
}

// InsightsResponse lista acotada de insights. Error viaja en línea: un fallo de IA
// no es un error HTTP.
type InsightsResponse struct {
	Insights []InsightResponse `json:"insights"`
	Error    string            `json:"error,omitempty"`
	Cached   bool              `json:"cached"`
}

// ChatRequest body para POST /api/ai/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatResponse respuesta en texto libre.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// DescribeProductRequest body para POST /api/ai/describe.
type DescribeProductRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Category string `json:"category" validate:"max=100"`
}

// DescribeProductResponse descripción sugerida.
type DescribeProductResponse struct {
	Description string `json:"description"`
}
