package main

import (
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	getopt "github.com/pborman/getopt/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chronos-tachyon/crcdriver"
	"github.com/chronos-tachyon/crcdriver/internal/softengine"
)

var (
	flagVersion   = false
	flagDebug     = false
	flagTrace     = false
	flagLogStderr = false

	flagAlgorithm  = AlgorithmFlag{crcdriver.DefaultAlgorithm}
	flagScenario   = ""
	flagMaxLength  = 0
	flagMaxClients = 0
	flagRate       = 0.0
	flagBurst      = 4096
	flagUnitVer    = softengine.DefaultVersion

	flagCPUProfile = ""
)

func init() {
	getopt.SetParameters("[<file>...]")

	getopt.FlagLong(&flagVersion, "version", 'V', "print version and exit")

	getopt.FlagLong(&flagDebug, "verbose", 'v', "enable debug logging")
	getopt.FlagLong(&flagTrace, "debug", 'D', "enable debug and trace logging")
	getopt.FlagLong(&flagLogStderr, "log-stderr", 'L', "log JSON to stderr")

	getopt.FlagLong(&flagCPUProfile, "cpu-profile", 0, "CPU profile output file")

	getopt.FlagLong(&flagAlgorithm, "algorithm", 'a', "algorithm; one of crc32, crc32c, sam4l-16, sam4l-32, or sam4l-32c")
	getopt.FlagLong(&flagScenario, "scenario", 's', "YAML scenario listing the clients to simulate")
	getopt.FlagLong(&flagMaxLength, "max-length", 0, "largest buffer the unit accepts, in bytes; 0 for no limit")
	getopt.FlagLong(&flagMaxClients, "max-clients", 0, "most client records the driver holds; 0 for no limit")
	getopt.FlagLong(&flagRate, "rate", 0, "unit throughput in bytes per second; 0 for no limit")
	getopt.FlagLong(&flagBurst, "burst", 0, "largest chunk the unit consumes at once when --rate is set")
	getopt.FlagLong(&flagUnitVer, "unit-version", 0, "version value the unit reports")
}

func main() {
	getopt.Parse()

	if flagVersion {
		fmt.Println(strings.TrimSpace(version))
		os.Exit(0)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.DurationFieldUnit = time.Second
	zerolog.DurationFieldInteger = false
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if flagDebug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if flagTrace {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	switch {
	case flagLogStderr:
		// do nothing

	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	stdlog.SetFlags(0)
	stdlog.SetOutput(log.Logger)

	if flagMaxLength < 0 || flagMaxClients < 0 || flagRate < 0 || flagBurst <= 0 || flagUnitVer < 0 {
		log.Logger.Fatal().
			Int("maxLength", flagMaxLength).
			Int("maxClients", flagMaxClients).
			Float64("rate", flagRate).
			Int("burst", flagBurst).
			Int("unitVersion", flagUnitVer).
			Msg("invalid flag value")
	}

	if flagCPUProfile != "" {
		f, err := os.OpenFile(flagCPUProfile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
		if err != nil {
			log.Logger.Fatal().
				Str("filename", flagCPUProfile).
				Err(err).
				Msg("os.OpenFile(O_WRONLY|O_CREATE|O_TRUNC) failed")
		}

		defer func() {
			err := f.Close()
			if err != nil {
				log.Logger.Error().
					Str("filename", flagCPUProfile).
					Err(err).
					Msg("failed to Close CPU profiling output file")
			}
		}()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Logger.Fatal().
				Err(err).
				Msg("pprof.StartCPUProfile failed")
		}

		defer pprof.StopCPUProfile()
	}

	jobs := loadJobs()
	if len(jobs) == 0 {
		log.Logger.Fatal().
			Msg("no clients to simulate")
	}

	if !doRun(jobs) {
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

func loadJobs() []job {
	if flagScenario != "" {
		if getopt.NArgs() != 0 {
			log.Logger.Fatal().
				Msg("--scenario does not take file arguments")
		}
		jobs, err := loadScenario(flagScenario, flagAlgorithm.Value)
		if err != nil {
			log.Logger.Fatal().
				Str("filename", flagScenario).
				Err(err).
				Msg("failed to load scenario")
		}
		return jobs
	}

	names := getopt.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}
	jobs, err := loadFiles(names, flagAlgorithm.Value)
	if err != nil {
		log.Logger.Fatal().
			Err(err).
			Msg("failed to read input")
	}
	return jobs
}

func doRun(jobs []job) bool {
	engineOpts := make([]softengine.Option, 3, 4)
	engineOpts[0] = softengine.WithLogger(log.Logger)
	engineOpts[1] = softengine.WithMaxLength(flagMaxLength)
	engineOpts[2] = softengine.WithVersion(uint32(flagUnitVer))
	if flagRate > 0 {
		engineOpts = append(engineOpts, softengine.WithRate(flagRate, flagBurst))
	}

	engine := softengine.New(engineOpts...)
	d := crcdriver.New(
		engine,
		crcdriver.WithTracers(crcdriver.Log(log.Logger)),
		crcdriver.WithMaxClients(uint(flagMaxClients)),
	)
	engine.SetClient(d)

	unitVersion, _ := d.Command(0, crcdriver.VersionCommand, 0)
	log.Logger.Debug().
		Uint("unitVersion", unitVersion).
		Int("clients", len(jobs)).
		Msg("starting")

	outcomes := runJobs(d, jobs)

	err := engine.Close()
	if err != nil {
		log.Logger.Error().
			Err(err).
			Msg("softengine.Engine.Close failed")
	}

	if err := d.Check(); err != nil {
		log.Logger.Error().
			Err(err).
			Msg("crcdriver.Driver.Check failed")
	}

	ok := true
	for _, o := range outcomes {
		switch {
		case errors.Is(o.Err, errTerminated):
			log.Logger.Info().
				Str("name", o.Job.Name).
				Msg("client terminated; result discarded")
		case o.Err != nil:
			ok = false
			log.Logger.Error().
				Str("name", o.Job.Name).
				Stringer("status", o.Status).
				Err(o.Err).
				Msg("request failed")
		case o.Status != crcdriver.SuccessStatus:
			ok = false
			log.Logger.Error().
				Str("name", o.Job.Name).
				Stringer("status", o.Status).
				Msg("computation failed")
		default:
			fmt.Printf("%s  %s  %s\n", o.Result.StringFor(o.Job.Algorithm), o.Job.Algorithm, o.Job.Name)
		}
	}
	return ok
}
