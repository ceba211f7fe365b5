// Command build-hashes regenerates the perceptual-hash store (C1) from
// every registered source, per spec §6: "build-hashes (regenerate C1 from
// all sources)". No flags; configuration is read from the environment,
// following the teacher pack's convention (e.g.
// headtomatoes-mangahub/cmd/anilist_sync). Exit 0 on success, non-zero on
// any failure.
package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/philippgille/gokv"
	"github.com/philippgille/gokv/redis"
	"github.com/philippgille/gokv/syncmap"
	"github.com/spf13/afero"

	"github.com/nanoskript/touhou-index/internal/entry"
	"github.com/nanoskript/touhou-index/internal/logger"
	"github.com/nanoskript/touhou-index/internal/manifest"
	"github.com/nanoskript/touhou-index/internal/phashstore"
)

func main() {
	log := logger.New()
	log.SetPrefix("build-hashes")
	log.SetOutput(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Log("shutdown signal received, cancelling")
		cancel()
	}()

	if err := run(ctx, log); err != nil {
		log.Log("failed: %v", err)
		os.Exit(1)
	}
	log.Log("done")
}

func run(ctx context.Context, log *logger.Logger) error {
	kv, err := openHashStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	store := phashstore.New(kv, log)

	fs := afero.NewOsFs()
	dataDir := getEnv("TOUHOU_INDEX_DATA_DIR", "./data")

	sources, err := loadThumbnailSources(fs, dataDir)
	if err != nil {
		return err
	}

	workers := getEnvInt("TOUHOU_INDEX_HASH_WORKERS", 0)
	return store.BuildAll(ctx, sources, workers)
}

// openHashStore selects the gokv backend for the hash store: a shared Redis
// instance when TOUHOU_INDEX_REDIS_ADDR is set (for multi-worker
// deployments, per SPEC_FULL's domain-stack wiring of go-redis/v9), else an
// in-process syncmap store.
func openHashStore() (gokv.Store, error) {
	if addr := os.Getenv("TOUHOU_INDEX_REDIS_ADDR"); addr != "" {
		options := redis.DefaultOptions
		options.Address = addr
		return redis.NewClient(options)
	}
	return syncmap.NewStore(syncmap.DefaultOptions), nil
}

// loadThumbnailSources reads each source's staged JSON manifest from
// dataDir (written by the external scraping collaborators, per spec.md
// §1's "scrapers... remain external collaborators") and applies each
// source's §4.1 filter policy before handing entries to the hash builder.
func loadThumbnailSources(fs afero.Fs, dataDir string) ([]phashstore.ThumbnailSource, error) {
	var sources []phashstore.ThumbnailSource

	eh, err := manifest.Load[entry.EHEntry](fs, dataDir, "eh.json")
	if err != nil {
		return nil, err
	}
	for _, e := range entry.FilterEHEntries(eh) {
		sources = append(sources, e)
	}

	db, err := manifest.Load[entry.DBEntry](fs, dataDir, "db.json")
	if err != nil {
		return nil, err
	}
	for _, e := range entry.FilterDBEntries(db) {
		sources = append(sources, e)
	}

	ds, err := manifest.Load[entry.DSEntry](fs, dataDir, "ds.json")
	if err != nil {
		return nil, err
	}
	for _, e := range entry.FilterDSEntries(ds) {
		sources = append(sources, e)
	}

	md, err := manifest.Load[entry.MDEntry](fs, dataDir, "md.json")
	if err != nil {
		return nil, err
	}
	for _, e := range md {
		sources = append(sources, e)
	}

	org, err := manifest.Load[entry.OrgEntry](fs, dataDir, "org.json")
	if err != nil {
		return nil, err
	}
	for _, e := range entry.FilterOrgEntries(org) {
		sources = append(sources, e)
	}

	cth, err := manifest.Load[entry.CTHEntry](fs, dataDir, "cth.json")
	if err != nil {
		return nil, err
	}
	for _, e := range cth {
		sources = append(sources, e)
	}

	mb, err := manifest.Load[entry.MBEntry](fs, dataDir, "mb.json")
	if err != nil {
		return nil, err
	}
	for _, e := range mb {
		sources = append(sources, e)
	}

	tora, err := manifest.Load[entry.ToraEntry](fs, dataDir, "tora.json")
	if err != nil {
		return nil, err
	}
	for _, e := range tora {
		sources = append(sources, e)
	}

	px, err := manifest.Load[entry.PXEntry](fs, dataDir, "px.json")
	if err != nil {
		return nil, err
	}
	for _, e := range px {
		sources = append(sources, e)
	}

	return sources, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
