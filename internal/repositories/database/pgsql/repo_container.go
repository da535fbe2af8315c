package pgsql

import (
	portsrepo "github.com/SscSPs/site_safety_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TenantRepo:     newPgxTenantRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		SiteRepo:       newPgxSiteRepository(dbPool),
		HazardRepo:     newPgxHazardRepository(dbPool),
		IncidentRepo:   newPgxIncidentRepository(dbPool),
		PermitRepo:     newPgxPermitRepository(dbPool),
		TemplateRepo:   newPgxTemplateRepository(dbPool),
		InspectionRepo: newPgxInspectionRepository(dbPool),
		TrainingRepo:   newPgxTrainingRepository(dbPool),
	}
}
