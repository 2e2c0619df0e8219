package repomanager

import (
	"context"
	"database/sql"

	"github.com/akosarev/notekeeper/internal/dbx"
	"github.com/akosarev/notekeeper/internal/server/repositories/notes"
	"github.com/akosarev/notekeeper/internal/server/repositories/refreshtokens"
	"github.com/akosarev/notekeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
