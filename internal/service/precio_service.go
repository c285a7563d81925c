package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/apierror"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	precioCachePrefix = "precio:"
	precioCacheTTL    = 5 * time.Minute
)

// PrecioService answers the public price check (no auth). Responses are
// cached in redis; the cache is read-through and tolerates redis being down.
type PrecioService interface {
	ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPrecioResponse, error)
}

type precioService struct {
	recetaRepo     repository.RecetaRepository
	inventarioRepo repository.InventarioRepository
	rdb            *redis.Client
}

func NewPrecioService(recetaRepo repository.RecetaRepository, inventarioRepo repository.InventarioRepository, rdb *redis.Client) PrecioService {
	return &precioService{recetaRepo: recetaRepo, inventarioRepo: inventarioRepo, rdb: rdb}
}

func (s *precioService) ConsultarPrecio(ctx context.Context, codigo string) (*dto.ConsultaPrecioResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, precioCachePrefix+codigo).Result(); err == nil {
			var resp dto.ConsultaPrecioResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return &resp, nil
			}
		}
	}

	receta, err := s.recetaRepo.FindByCodigo(ctx, codigo)
	if err != nil || !receta.Activo {
		return nil, apierror.NotFound("receta")
	}

	stock := 0
	inv, err := s.inventarioRepo.FindByNombre(ctx, receta.Nombre)
	switch {
	case err == nil:
		stock = inv.StockActual
	case err == gorm.ErrRecordNotFound:
		// never produced under this name — price still answers
	default:
		return nil, err
	}

	resp := &dto.ConsultaPrecioResponse{
		Codigo:          receta.Codigo,
		Nombre:          receta.Nombre,
		PrecioSugerido:  receta.PrecioVentaSugerido,
		StockDisponible: stock,
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, precioCachePrefix+codigo, data, precioCacheTTL).Err(); err != nil {
				log.Debug().Err(err).Str("codigo", codigo).Msg("cache de precio no disponible")
			}
		}
	}
	return resp, nil
}
