package postgres

import (
	repo "github.com/eventtracker/server/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	Users       repo.Users
	Events      repo.Events
	ShareTokens repo.ShareTokens
	AuditLogs   repo.AuditLogs
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:       &usersRepo{pool},
		Events:      &eventsRepo{pool},
		ShareTokens: &shareTokensRepo{pool},
		AuditLogs:   &auditLogsRepo{pool},
	}
}
