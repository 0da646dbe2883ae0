package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/docmerge-svc/docmerge-backend/internal/api/http"
	"github.com/docmerge-svc/docmerge-backend/internal/api/http/middleware"
	"github.com/docmerge-svc/docmerge-backend/internal/auth"
	"github.com/docmerge-svc/docmerge-backend/internal/merge/convert"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/cache"
	tmplhttp "github.com/docmerge-svc/docmerge-backend/internal/templates/http"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/repository"
	"github.com/docmerge-svc/docmerge-backend/internal/templates/service"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	DB             *pgxpool.Pool
	Redis          *redis.Client
	Converter      convert.Converter
	RestrictGroups bool
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(auth.WithGroups())

	repo := repository.New(dep.DB, dep.RestrictGroups)
	svc := service.New(repo, cache.New(dep.Redis), dep.Converter)
	handler := tmplhttp.New(svc)
	handler.Register(api.Group("/templates"))
	handler.RegisterDownload(api.Group("/template-files"))

	return r
}
