package service

import (
	"context"
	"time"

	"github.com/aluenvelas/Back-aluen/internal/config"
	"github.com/aluenvelas/Back-aluen/internal/dto"
	"github.com/aluenvelas/Back-aluen/internal/infra"
	"github.com/aluenvelas/Back-aluen/internal/repository"
	"github.com/aluenvelas/Back-aluen/internal/worker"

	"github.com/rs/zerolog/log"
)

// ReporteService builds the PDF and Excel reports. PDFs land on disk (the
// handler streams them back); the Excel export is returned as bytes.
type ReporteService interface {
	ReporteVentasPDF(ctx context.Context, desde, hasta time.Time, enviarA string) (string, error)
	ReporteInventarioPDF(ctx context.Context) (string, error)
	ExportInventarioExcel(ctx context.Context) ([]byte, error)
}

type reporteService struct {
	ventaRepo      repository.VentaRepository
	inventarioRepo repository.InventarioRepository
	dispatcher     *worker.Dispatcher
	cfg            *config.Config
}

func NewReporteService(
	ventaRepo repository.VentaRepository,
	inventarioRepo repository.InventarioRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) ReporteService {
	return &reporteService{
		ventaRepo:      ventaRepo,
		inventarioRepo: inventarioRepo,
		dispatcher:     dispatcher,
		cfg:            cfg,
	}
}

func (s *reporteService) ReporteVentasPDF(ctx context.Context, desde, hasta time.Time, enviarA string) (string, error) {
	filter := dto.VentaFilter{
		Estado:      "completada",
		FechaInicio: desde.Format("2006-01-02"),
		FechaFin:    hasta.Format("2006-01-02"),
		Page:        1,
		Limit:       10000,
	}
	ventas, _, err := s.ventaRepo.List(ctx, filter)
	if err != nil {
		return "", err
	}

	path, err := infra.GenerateVentasPDF(ventas, desde, hasta, s.cfg.NombreNegocio, s.cfg.ReportStoragePath)
	if err != nil {
		return "", err
	}

	if enviarA != "" {
		if err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			ToEmail:    enviarA,
			Subject:    "Reporte de ventas " + desde.Format("02/01/2006") + " - " + hasta.Format("02/01/2006"),
			Body:       "Se adjunta el reporte de ventas solicitado.",
			AttachPath: path,
		}); err != nil {
			log.Error().Err(err).Str("to", enviarA).Msg("no se pudo encolar el envío del reporte")
		}
	}
	return path, nil
}

func (s *reporteService) ReporteInventarioPDF(ctx context.Context) (string, error) {
	inventario, err := s.inventarioRepo.List(ctx, dto.InventarioFilter{})
	if err != nil {
		return "", err
	}
	return infra.GenerateInventarioPDF(inventario, s.cfg.NombreNegocio, s.cfg.ReportStoragePath)
}

func (s *reporteService) ExportInventarioExcel(ctx context.Context) ([]byte, error) {
	inventario, err := s.inventarioRepo.List(ctx, dto.InventarioFilter{})
	if err != nil {
		return nil, err
	}
	return infra.GenerateInventarioExcel(inventario)
}
