package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"vaultdrive/jobs"
	"vaultdrive/services"
	"vaultdrive/storage"
)

// B2Config holds the blob store credentials.
type B2Config struct {
	KeyID          string
	ApplicationKey string
	BucketName     string
}

// ServiceContainer holds all services and dependencies.
type ServiceContainer struct {
	JWTSecret string
	Hierarchy *services.HierarchyService
	Paths     *services.PathResolver
	Archives  *services.ArchiveService
	Blobs     storage.BlobStore
	Cleaner   *jobs.ArchiveCleaner
}

// NewServiceContainer wires the Mongo metadata store and B2 blob store into
// the service graph.
func NewServiceContainer(ctx context.Context, db *mongo.Database, jwtSecret string, b2Config B2Config, cleaner *jobs.ArchiveCleaner) (*ServiceContainer, error) {
	blobs, err := storage.NewB2BlobStore(ctx, b2Config.KeyID, b2Config.ApplicationKey, b2Config.BucketName)
	if err != nil {
		return nil, err
	}
	return newContainer(storage.NewMongoStore(db), blobs, jwtSecret, cleaner), nil
}

func newContainer(store storage.HierarchyStore, blobs storage.BlobStore, jwtSecret string, cleaner *jobs.ArchiveCleaner) *ServiceContainer {
	hierarchy := services.NewHierarchyService(store, blobs)
	return &ServiceContainer{
		JWTSecret: jwtSecret,
		Hierarchy: hierarchy,
		Paths:     services.NewPathResolver(store),
		Archives:  services.NewArchiveService(hierarchy, blobs),
		Blobs:     blobs,
		Cleaner:   cleaner,
	}
}

// SetupRoutes registers all route groups on the api group.
func SetupRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	RegisterAuthRoutes(api, container)
	RegisterFolderRoutes(api, container)
	RegisterFileRoutes(api, container)
	RegisterExportRoutes(api, container)
}
