// Package repomanager groups the per-entity repositories behind one
// interface so services and handlers can be wired against fakes in tests.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/rz2606/lab-website-sub002/internal/dbx"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/awards"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/members"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/news"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/publications"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/tools"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	News(db dbx.DBTX) news.Repository
	Publications(db dbx.DBTX) publications.Repository
	Tools(db dbx.DBTX) tools.Repository
	Members(db dbx.DBTX) members.Repository
	Awards(db dbx.DBTX) awards.Repository
}
