// Package keeper is the persistence coordinator: every image save, load,
// delete and catalog mutation goes through it. It owns the tiered lookup
// path (memory, local file, cache file, cloud) and the single mutation
// queue that serializes all catalog writes.
package keeper

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/platekeeper/platekeeper/internal/logging"
	"github.com/platekeeper/platekeeper/internal/models"
	"github.com/platekeeper/platekeeper/internal/optimizer"
	"github.com/platekeeper/platekeeper/internal/remote"
	"golang.org/x/sync/singleflight"
)

const (
	taskQueueSize      = 64
	cloudDeleteTimeout = 30 * time.Second
	defaultCacheTTL    = 5 * time.Minute
)

// Catalog is the slice of the catalog store the coordinator uses.
type Catalog interface {
	Records(ctx context.Context) ([]models.PlateRecord, error)
	Record(ctx context.Context, id string) (*models.PlateRecord, error)
	UpsertRecord(ctx context.Context, rec *models.PlateRecord) error
	DeleteRecord(ctx context.Context, id string) error
	Transform(ctx context.Context, id string) (*models.ViewTransform, error)
	SetTransform(ctx context.Context, id string, t models.ViewTransform) error
	MigrationCompleted(ctx context.Context) (bool, error)
	SetMigrationCompleted(ctx context.Context) error
}

// Blobs is the local image file store.
type Blobs interface {
	Write(data []byte) (string, error)
	Read(path string) ([]byte, error)
	Remove(path string) error
	Usage() (int, int64, error)
}

// Keeper coordinates the catalog, the local blob store and the cloud tier.
// All catalog writes funnel through its mutation queue; reads and cloud
// transfers run on caller goroutines.
type Keeper struct {
	catalog   Catalog
	blobs     Blobs
	optimizer *optimizer.Optimizer
	cloud     remote.Client
	status    *remote.Status
	logger    logging.Logger

	memcache *cache.Cache
	loads    singleflight.Group

	tasks chan task
	quit  chan struct{}
	done  chan struct{}

	deletes   sync.WaitGroup
	closeOnce sync.Once
}

func New(cat Catalog, blobs Blobs, opt *optimizer.Optimizer, cloud remote.Client, status *remote.Status, cacheTTL time.Duration, logger logging.Logger) *Keeper {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &Keeper{
		catalog:   cat,
		blobs:     blobs,
		optimizer: opt,
		cloud:     cloud,
		status:    status,
		logger:    logger.With("module", "keeper"),
		memcache:  cache.New(cacheTTL, cacheTTL*2),
		tasks:     make(chan task, taskQueueSize),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start launches the mutation loop. ctx is the lifetime context handed to
// every queued task; canceling it aborts in-flight catalog writes, so it
// should outlive the last operation.
func (k *Keeper) Start(ctx context.Context) {
	go k.loop(ctx)
}

// Close stops accepting work, drains the queued tasks and waits for
// background cloud deletes to finish. Safe to call more than once.
func (k *Keeper) Close() {
	k.closeOnce.Do(func() {
		close(k.quit)
		<-k.done
		k.deletes.Wait()
	})
}

// Degraded reports whether the cloud tier is currently gated off.
func (k *Keeper) Degraded() bool {
	return k.status.Degraded()
}

// Usage summarizes what the catalog and the local image store hold.
type Usage struct {
	Records    int
	LocalFiles int
	LocalBytes int64
}

func (k *Keeper) Usage(ctx context.Context) (*Usage, error) {
	recs, err := k.catalog.Records(ctx)
	if err != nil {
		return nil, err
	}
	files, bytes, err := k.blobs.Usage()
	if err != nil {
		return nil, err
	}
	return &Usage{Records: len(recs), LocalFiles: files, LocalBytes: bytes}, nil
}
