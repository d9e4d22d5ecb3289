// Package cmd implements the alr command line: one subcommand per report of
// the engine, reading the SQLite database of the bookkeeping application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/etnz/alere"
	"github.com/etnz/alere/logging"
	"github.com/etnz/alere/recurrence"
	"github.com/etnz/alere/sqlite"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&ledgerCmd{}, "reports")
	c.Register(&networthCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&cashflowCmd{}, "reports")
	c.Register(&metricsCmd{}, "reports")
	c.Register(&quotesCmd{}, "reports")
	c.Register(&incexpCmd{}, "reports")
	c.Register(&meanCmd{}, "reports")
	c.Register(&topicCmd{}, "help")
}

// Commands lists the registered subcommands by name, for completion.
var Commands = []subcommands.Command{
	&ledgerCmd{}, &networthCmd{}, &historyCmd{}, &cashflowCmd{},
	&metricsCmd{}, &quotesCmd{}, &incexpCmd{}, &meanCmd{}, &topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dbPath      = flag.String("db", "alere.sqlite", "Path to the SQLite database of the ledger")
	currency    = flag.String("currency", "EUR", "ISO code of the reporting currency")
	scenario    = flag.String("scenario", "", "Name or id of the scenario to report on, actuals only when empty")
	cacheSize   = flag.Int("cache-size", recurrence.DefaultCacheSize, "Number of compiled recurrence rules kept in memory")
	poolSize    = flag.Int("pool-size", sqlite.DefaultPoolSize, "Number of database connections")
	Verbose     = flag.Bool("v", false, "Log the queries and the progress of the reports")
	asJSON      = flag.Bool("json", false, "Print the report as JSON instead of markdown")
	query       = flag.String("q", "", "JSONPath expression applied to the JSON report, implies -json")
	occurrences = recurrence.Default
)

func init() {
	flag.Var(&occurrences, "occurrences", "Occurrences expanded per recurring transaction: a number, none, default or all")
}

// Environment variables used as flag defaults. They are also passed to
// extensions.
const (
	EnvDB          = "ALR_DB"
	EnvCurrency    = "ALR_CURRENCY"
	EnvScenario    = "ALR_SCENARIO"
	EnvOccurrences = "ALR_OCCURRENCES"
	EnvCacheSize   = "ALR_CACHE_SIZE"
	EnvPoolSize    = "ALR_POOL_SIZE"
	EnvVerbose     = "ALR_VERBOSE"
)

var envFlags = map[string]string{
	EnvDB:          "db",
	EnvCurrency:    "currency",
	EnvScenario:    "scenario",
	EnvOccurrences: "occurrences",
	EnvCacheSize:   "cache-size",
	EnvPoolSize:    "pool-size",
	EnvVerbose:     "v",
}

// LoadEnv loads the .env file of the working directory, if any, and sets
// the flags of the ALR_* variables. It must be called before the flags are
// parsed so that the command line wins. DATABASE_URL is accepted for -db.
func LoadEnv(flags *flag.FlagSet) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	if url, ok := os.LookupEnv("DATABASE_URL"); ok && flags.Lookup("db") != nil {
		if err := flags.Set("db", url); err != nil {
			return fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
	}
	for env, name := range envFlags {
		v, ok := os.LookupEnv(env)
		if !ok || flags.Lookup(name) == nil {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
	}
	return nil
}

// store is the database a session reads.
type store interface {
	alere.Store
	Close() error
}

// openStore opens the database named by the flags.
var openStore = func() (store, error) {
	return sqlite.Open(*dbPath, sqlite.Options{PoolSize: *poolSize})
}

// session holds what every report needs: the engine and the resolved
// global flags.
type session struct {
	ctx      context.Context
	store    store
	engine   *alere.Engine
	lookup   *lookup
	currency alere.CommodityID
	scenario alere.ScenarioID
}

// start opens the store and resolves the global flags.
func start(ctx context.Context) (*session, error) {
	logger := logging.New()
	if *Verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}
	ctx = logging.WithContext(ctx, logger)

	st, err := openStore()
	if err != nil {
		return nil, err
	}
	s := &session{
		ctx:    ctx,
		store:  st,
		engine: alere.NewEngine(st, recurrence.NewExpander(*cacheSize)),
	}
	if s.lookup, err = loadLookup(ctx, st); err != nil {
		st.Close()
		return nil, err
	}
	if s.currency, err = s.lookup.currency(*currency); err != nil {
		st.Close()
		return nil, err
	}
	if s.scenario, err = s.lookup.scenario(*scenario); err != nil {
		st.Close()
		return nil, err
	}
	logger.Debug().Str("db", *dbPath).Int64("currency", int64(s.currency)).Int64("scenario", int64(s.scenario)).Msg("session started")
	return s, nil
}

func (s *session) Close() error { return s.store.Close() }

// stdout receives the reports.
var stdout io.Writer = os.Stdout

// fail reports err and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

// usage reports a usage error.
func usage(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitUsageError
}
