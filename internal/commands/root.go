package commands

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"meetsync/internal/config"
	"meetsync/internal/daemon"
	"meetsync/internal/db"
	"meetsync/internal/granola"
	"meetsync/internal/memory"
	"meetsync/internal/syncer"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "meetsync",
	Short: "Sync meeting transcripts into your work memory",
	Long: `meetsync reads the local recording app's transcript cache, merges split
recordings back into whole meetings, and logs them to a markdown knowledge
store with per-person profiles and interaction history.`,
}

// env bundles everything a command needs to run the pipeline.
type env struct {
	cfg    *config.Config
	loader *granola.Loader
	syncer *syncer.Syncer
	log    *logrus.Logger
}

// setup loads config, opens the sync index, and wires the pipeline.
// Daemon drivers pass logFile=true so their output also lands in the
// memory root's log directory.
func setup(logFile bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := db.Initialize(filepath.Join(cfg.MemoryRoot, "index.db")); err != nil {
		return nil, err
	}

	log := daemon.NewLogger(cfg.MemoryRoot, logFile)
	store := memory.NewStore(cfg.MemoryRoot)
	people := memory.NewPeople(cfg.MemoryRoot)

	return &env{
		cfg:    cfg,
		loader: granola.NewLoader(cfg.CachePath),
		log:    log,
		syncer: &syncer.Syncer{
			Meetings:     store,
			People:       people,
			Interactions: people,
			Daily:        store,
			Index:        indexAdapter{},
			UserEmail:    cfg.UserEmail,
			OrgDomain:    cfg.OrgDomain,
			Log:          log,
		},
	}, nil
}

// indexAdapter exposes the db package's index functions through the
// syncer's interface.
type indexAdapter struct{}

func (indexAdapter) IsSynced(docID string) (bool, error) {
	return db.IsSynced(docID)
}

func (indexAdapter) RecordSynced(docID, identity, path string, wasSplit bool) error {
	return db.RecordSynced(docID, identity, path, wasSplit)
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(listTodayCmd)
	rootCmd.AddCommand(splitsCmd)
	rootCmd.AddCommand(peopleCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("meetsync %s (%s, %s)\n", version, commit, date)
	},
}
