// Package legacy integra el servicio histórico de stock (el sistema anterior
// de la comercializadora). Su API devuelve JSON débilmente tipado, con claves
// inconsistentes entre camelCase y snake_case y números que llegan como
// string, float o null; por eso todo campo pasa por pkg/guard antes de tocar
// una entidad.
package legacy

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tu-usuario/acero-erp/internal/domain"
	"github.com/tu-usuario/acero-erp/internal/domain/entity"
	"github.com/tu-usuario/acero-erp/pkg/config"
	"github.com/tu-usuario/acero-erp/pkg/guard"
)

// Client consulta lotes en el servicio legado.
type Client interface {
	// FetchBatches trae todos los lotes de la empresa modificados desde
	// updatedSince (cero = todos). El fallo de red o un status no-2xx se
	// devuelve como error: nunca como lista vacía.
	FetchBatches(ctx context.Context, companyID string, updatedSince time.Time) ([]entity.StockBatch, error)
}

// APIClient implementación de Client sobre resty.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient construye el cliente con la configuración del servicio legado.
func NewClient(cfg config.BatchesConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.LegacyURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("X-Api-Key", cfg.LegacyAPIKey).
		SetTimeout(time.Duration(cfg.LegacyTimeout) * time.Second)

	return &APIClient{httpClient: restyClient}
}

// FetchBatches consulta GET /stock-batches y normaliza cada elemento.
// Los elementos que no son objetos se descartan en silencio (el servicio
// legado a veces intercala nulls en el arreglo).
func (c *APIClient) FetchBatches(ctx context.Context, companyID string, updatedSince time.Time) ([]entity.StockBatch, error) {
	var payload any
	req := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("company_id", companyID).
		SetResult(&payload)
	if !updatedSince.IsZero() {
		req.SetQueryParam("updated_since", updatedSince.UTC().Format(time.RFC3339))
	}

	resp, err := req.Get("/stock-batches")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBatchSourceUnavailable, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: servicio legado respondió %d", domain.ErrBatchSourceUnavailable, resp.StatusCode())
	}

	// El servicio responde a veces {"batches": [...]} y a veces el arreglo
	// directamente. guard.Slice cubre ambos sin reventar.
	items := guard.Slice(payload)
	if m, ok := payload.(map[string]any); ok {
		items = guard.Slice(m["batches"])
	}

	out := make([]entity.StockBatch, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, NormalizeBatch(raw, companyID))
	}
	return out, nil
}
