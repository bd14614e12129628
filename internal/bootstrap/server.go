package bootstrap

import (
	app "github.com/fairwaygolf/member-import/internal/application/member"
	"github.com/fairwaygolf/member-import/internal/infrastructure/armember"
	"github.com/fairwaygolf/member-import/internal/infrastructure/repository"
	httpecho "github.com/fairwaygolf/member-import/internal/interfaces/http/echo"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Config struct {
	ImportPageSize     int
	ImportPreviewLimit int
}

func NewHTTPServer(db *gorm.DB, memberPool, sourcePool *pgxpool.Pool, cfg Config) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit("1M"))

	memberStore := repository.NewMemberStore(memberPool)
	source := armember.NewSource(sourcePool)
	auditRepo := repository.NewAuditLogRepository(db)
	runRepo := repository.NewImportRunRepository(db)

	runImport := app.NewImportMembers(source, memberStore, auditRepo, runRepo, cfg.ImportPageSize)
	preview := app.NewPreviewImport(source, memberStore, cfg.ImportPreviewLimit)
	importHandler := httpecho.NewImportHandler(runImport, preview)

	memberQueryRepo := repository.NewMemberQueryRepository(db)
	getMember := app.NewGetMemberByUserID(memberQueryRepo)
	memberHandler := httpecho.NewMemberHandler(getMember)

	httpecho.RegisterRoutes(server, importHandler, memberHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
