// Command build-index performs a full rebuild of the relational index
// (C8), per spec §6: "build-index (full rebuild)". No flags; configuration
// is read from the environment. Exit 0 on success, non-zero on any
// failure.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/philippgille/gokv"
	"github.com/philippgille/gokv/redis"
	"github.com/philippgille/gokv/syncmap"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/afero"

	"github.com/nanoskript/touhou-index/internal/builder"
	"github.com/nanoskript/touhou-index/internal/entry"
	"github.com/nanoskript/touhou-index/internal/indexstore"
	"github.com/nanoskript/touhou-index/internal/logger"
	"github.com/nanoskript/touhou-index/internal/manifest"
	"github.com/nanoskript/touhou-index/internal/phashstore"
	"github.com/nanoskript/touhou-index/internal/wiki"
)

func main() {
	log := logger.New()
	log.SetPrefix("build-index")
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
	hashes := phashstore.New(kv, log)

	fs := afero.NewOsFs()
	dataDir := getEnv("TOUHOU_INDEX_DATA_DIR", "./data")

	sources, err := loadBuilderSources(fs, dataDir)
	if err != nil {
		return err
	}
	for _, e := range sources.MangaDex {
		if _, known := entry.MDLanguageName(e.LanguageCode); !known {
			log.Warn("unknown MangaDex language code %q on %s", e.LanguageCode, e.Key())
		}
	}

	options := builder.DefaultOptions()
	options.Hashes = hashes
	options.Logger = log
	if apiKey := os.Getenv("TOUHOU_INDEX_WIKI_API_KEY"); apiKey != "" {
		wikiOptions := wiki.DefaultOptions()
		wikiOptions.APIKey = apiKey
		wikiOptions.Logger = log
		options.Wiki = wiki.New(wikiOptions)
	}

	result, err := builder.Build(ctx, sources, options)
	if err != nil {
		return err
	}
	log.Log("assembled %d books, %d series, %d entries", result.Books, result.Series, result.Entries)

	store, err := indexstore.Open(ctx, indexstoreOptions(log))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Rebuild(ctx, result.Snapshot); err != nil {
		return err
	}

	if previewURL := os.Getenv("TOUHOU_INDEX_PREVIEW_URL"); previewURL != "" {
		// Dev convenience: opens the freshly rebuilt index's local preview
		// page in the system browser after a successful rebuild.
		if err := open.Run(previewURL); err != nil {
			log.Warn("could not open preview URL: %v", err)
		}
	}
	return nil
}

func indexstoreOptions(log *logger.Logger) indexstore.Options {
	options := indexstore.DefaultOptions()
	options.DatabaseURL = getEnv("TOUHOU_INDEX_DATABASE_URL", "")
	options.Logger = log
	return options
}

func openHashStore() (gokv.Store, error) {
	if addr := os.Getenv("TOUHOU_INDEX_REDIS_ADDR"); addr != "" {
		options := redis.DefaultOptions
		options.Address = addr
		return redis.NewClient(options)
	}
	return syncmap.NewStore(syncmap.DefaultOptions), nil
}

// loadBuilderSources reads every source's staged JSON manifest and applies
// each source's §4.1 filter policy, assembling builder.Sources in the
// fixed declared order (px is omitted: it is linked-only, reached through
// Danbooru's LinkedEntries).
func loadBuilderSources(fs afero.Fs, dataDir string) (builder.Sources, error) {
	eh, err := manifest.Load[entry.EHEntry](fs, dataDir, "eh.json")
	if err != nil {
		return builder.Sources{}, err
	}
	db, err := manifest.Load[entry.DBEntry](fs, dataDir, "db.json")
	if err != nil {
		return builder.Sources{}, err
	}
	ds, err := manifest.Load[entry.DSEntry](fs, dataDir, "ds.json")
	if err != nil {
		return builder.Sources{}, err
	}
	md, err := manifest.Load[entry.MDEntry](fs, dataDir, "md.json")
	if err != nil {
		return builder.Sources{}, err
	}
	org, err := manifest.Load[entry.OrgEntry](fs, dataDir, "org.json")
	if err != nil {
		return builder.Sources{}, err
	}
	cth, err := manifest.Load[entry.CTHEntry](fs, dataDir, "cth.json")
	if err != nil {
		return builder.Sources{}, err
	}
	mb, err := manifest.Load[entry.MBEntry](fs, dataDir, "mb.json")
	if err != nil {
		return builder.Sources{}, err
	}
	tora, err := manifest.Load[entry.ToraEntry](fs, dataDir, "tora.json")
	if err != nil {
		return builder.Sources{}, err
	}

	return builder.Sources{
		EH:         entry.FilterEHEntries(eh),
		Danbooru:   entry.FilterDBEntries(db),
		Dynasty:    entry.FilterDSEntries(ds),
		MangaDex:   md,
		Doujinshi:  entry.FilterOrgEntries(org),
		CTH:        cth,
		Melonbooks: mb,
		Toranoana:  tora,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
