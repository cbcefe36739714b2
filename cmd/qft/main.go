// Command qft runs a Quantum Fourier Transform on a basis state and reports
// how long it took.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/theapemachine/qsim"
)

func main() {
	flags := pflag.NewFlagSet("qft", pflag.ExitOnError)

	configFile := flags.String("config", "", "config file (yaml, toml or json)")
	flags.Int("qubits", 14, "number of qubits")
	flags.Int("workers", runtime.GOMAXPROCS(0), "worker goroutines for parallel gates")
	flags.Int("min-chunk", 1024, "smallest pair range handed to one worker")
	flags.String("log-level", "info", "debug, info, warn or error")
	sequential := flags.Bool("sequential", false, "apply gates on one goroutine")
	basis := flags.Int("basis", 0, "initial basis state")
	bitReverse := flags.Bool("bit-reverse", false, "bit-reverse the input so the output is the natural-order DFT")
	printN := flags.Int("print", 0, "render the first N amplitudes")
	dump := flags.Bool("dump", false, "dump the final amplitudes")

	_ = flags.Parse(os.Args[1:])

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "qft",
	})

	config, err := loadConfig(flags, *configFile)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}

	if *sequential {
		config.Parallel = false
	}

	if err := qsim.SetLogLevel(config.LogLevel); err != nil {
		logger.Fatal("log level", "err", err)
	}
	logger.SetLevel(log.GetLevel())

	size := 1 << config.Qubits
	if *basis < 0 || *basis >= size {
		logger.Fatal("basis state out of range", "basis", *basis, "size", size)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	metrics := qsim.NewMetrics()
	pool := qsim.NewPool(
		ctx,
		config.Workers,
		qsim.WithMinChunk(config.MinChunk),
		qsim.WithPoolMetrics(metrics),
	)
	defer pool.Close()

	states := make([]qsim.C64, size)
	states[*basis] = qsim.NewC64(1, 0)

	if *bitReverse {
		qsim.BitReverse(states)
	}

	kernel := qsim.DetectKernel()
	register := qsim.NewRegister(
		states,
		qsim.WithPool(pool),
		qsim.WithMetrics(metrics),
		qsim.WithKernel(kernel),
		qsim.WithConfig(config),
	)

	start := time.Now()
	register.QuantumFourierTransform(config.Qubits)
	elapsed := time.Since(start)

	logger.Info(
		"qft complete",
		"qubits", config.Qubits,
		"elapsed", elapsed,
		"parallel", config.Parallel,
		"workers", pool.Workers(),
		"kernel", kernel.Name(),
	)

	exported := metrics.ExportMetrics()
	keys := make([]string, 0, len(exported))
	for k := range exported {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		logger.Debug("metric", "name", k, "value", exported[k])
	}

	if *printN > 0 {
		fmt.Println(qsim.RenderRegister(register, *printN))
	}

	if *dump {
		spew.Fdump(os.Stdout, register.Amplitudes())
	}
}

func loadConfig(flags *pflag.FlagSet, path string) (*qsim.Config, error) {
	v := viper.New()

	bindings := map[string]string{
		"qubits":    "qubits",
		"workers":   "workers",
		"min_chunk": "min-chunk",
		"log_level": "log-level",
	}

	for key, flag := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return qsim.LoadConfig(v)
}
