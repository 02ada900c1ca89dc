// Command verkle builds a Verkle tree over a set of data blocks, proves
// membership of one block and verifies the proof. A plain Merkle tree over
// the same blocks is built alongside for comparison.
//
// Usage:
//
//	verkle [flags]
//
// Flags:
//
//	--config       YAML config file (default: built-in defaults)
//	--data         File with one data block per line (default: sample data)
//	--index        Block to prove (default: 11)
//	--group        Prime-order group: ristretto255, p256, p384, p521
//	--exponent     Node width is 2^exponent (default: 2)
//	--basis        Commitment basis: random, hashed (default: random)
//	--parallelism  Concurrent block commitments, 0 = GOMAXPROCS
//	--cache        Proof cache size, 0 disables it
//	--loglevel     debug, info, warn, error (default: info)
//	--metrics      Print collected metrics on exit
//	--version      Print version and exit
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eth2030/verkleipa/config"
	"github.com/eth2030/verkleipa/crypto"
	"github.com/eth2030/verkleipa/log"
	"github.com/eth2030/verkleipa/merkle"
	"github.com/eth2030/verkleipa/metrics"
	"github.com/eth2030/verkleipa/verkle"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

// sampleData is proven when no data file is given.
var sampleData = []string{
	"6m68fxp", "dh15yea", "66xj7yj", "jy80l5n", "84zw7i8", "lwy34ed", "yyip54p", "n5nxd6z",
	"o4r4oc1", "r4wucd8", "kk1trrs", "zpw91dg", "mncp76e", "0iexfpy", "q9hkpa9", "7g1xqad",
}

// options are the settings that only exist on the command line.
type options struct {
	configFile string
	dataFile   string
	index      int
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	return runWith(args, os.Stdout, os.Stderr)
}

func runWith(args []string, stdout, stderr io.Writer) int {
	cfg, opts, exit, code := parseFlags(args, stdout, stderr)
	if exit {
		return code
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	logger := log.NewWriter(stderr, level)
	log.SetDefault(logger)
	cli := logger.Module("cli")

	cli.Info("verkle starting",
		"version", version,
		"config", opts.configFile,
		"group", cfg.Group,
		"exponent", cfg.Exponent,
		"basis", cfg.Basis,
		"parallelism", cfg.Parallelism,
		"cache", cfg.ProofCacheSize,
		"metrics", cfg.Metrics,
	)

	var (
		reg *prometheus.Registry
		m   *metrics.Metrics
	)
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		m = metrics.New(reg)
	}

	ok, err := prove(cfg, opts, logger, m, stdout)
	if err != nil {
		cli.Error("proof run failed", "err", err)
		return 1
	}
	if reg != nil {
		if err := printMetrics(reg, stdout); err != nil {
			cli.Warn("metrics gather failed", "err", err)
		}
	}
	if !ok {
		return 1
	}
	return 0
}

// parseFlags loads the config file named by --config and lays the
// explicitly set flags over it. Returns whether the caller should exit
// immediately, and the exit code.
func parseFlags(args []string, stdout, stderr io.Writer) (config.Config, options, bool, int) {
	var (
		cfg  config.Config
		opts options
	)
	defaults := config.DefaultConfig()
	fs := newCustomFlagSet("verkle")
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configFile, "config", "", "YAML config file")
	fs.StringVar(&opts.dataFile, "data", "", "file with one data block per line")
	fs.IntVar(&opts.index, "index", 11, "index of the block to prove")
	fs.overlayString(&cfg.Group, "group", defaults.Group, "prime-order group (ristretto255, p256, p384, p521)")
	fs.overlayInt(&cfg.Exponent, "exponent", defaults.Exponent, "node width is 2^exponent")
	fs.overlayString(&cfg.Basis, "basis", defaults.Basis, "commitment basis (random, hashed)")
	fs.overlayInt(&cfg.Parallelism, "parallelism", defaults.Parallelism, "concurrent block commitments, 0 = GOMAXPROCS")
	fs.overlayInt(&cfg.ProofCacheSize, "cache", defaults.ProofCacheSize, "proof cache size, 0 disables it")
	fs.overlayString(&cfg.LogLevel, "loglevel", defaults.LogLevel, "log level (debug, info, warn, error)")
	fs.overlayBool(&cfg.Metrics, "metrics", defaults.Metrics, "print collected metrics on exit")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, opts, true, 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "verkle %s (commit %s)\n", version, commit)
		return cfg, opts, true, 0
	}

	loaded, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cfg, opts, true, 1
	}
	cfg = loaded
	fs.apply()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return cfg, opts, true, 1
	}
	return cfg, opts, false, 0
}

// prove builds both trees, proves opts.index in each and writes the
// outcome to w. It reports whether both proofs verified.
func prove(cfg config.Config, opts options, logger *log.Logger, m *metrics.Metrics, w io.Writer) (bool, error) {
	blocks, err := loadBlocks(opts.dataFile)
	if err != nil {
		return false, err
	}
	g, err := crypto.NewGroup(cfg.Group)
	if err != nil {
		return false, err
	}

	tree, err := verkle.Build(g, blocks, cfg.Tree(logger.Module("verkle"), m))
	if err != nil {
		return false, errors.Wrap(err, "build verkle tree")
	}
	datum, chain, err := tree.RequestProof(opts.index)
	if err != nil {
		return false, errors.Wrap(err, "request proof")
	}
	verkleOK := tree.Verifier().VerifyProof(opts.index, datum, chain, tree.Root())

	fmt.Fprintf(w, "verkle root:      %s\n", tree.Root())
	fmt.Fprintf(w, "%-18s%s\n", fmt.Sprintf("data[%d]:", opts.index), datum)
	fmt.Fprintf(w, "verkle levels:    %d (width %d)\n", chain.Depth(), tree.Width())
	fmt.Fprintf(w, "verkle verified:  %v\n", verkleOK)

	mt, err := merkle.New(blocks)
	if err != nil {
		return false, errors.Wrap(err, "build merkle tree")
	}
	block, proof, err := mt.Proof(opts.index)
	if err != nil {
		return false, errors.Wrap(err, "merkle proof")
	}
	merkleOK := merkle.Verify(block, opts.index, proof, mt.Root())

	fmt.Fprintf(w, "merkle root:      %s\n", mt.Root().Hex())
	fmt.Fprintf(w, "merkle siblings:  %d\n", len(proof.Siblings))
	fmt.Fprintf(w, "merkle verified:  %v\n", merkleOK)
	return verkleOK && merkleOK, nil
}

// loadBlocks reads one block per non-empty line of path, or returns the
// sample data when path is empty.
func loadBlocks(path string) ([][]byte, error) {
	if path == "" {
		out := make([][]byte, len(sampleData))
		for i, d := range sampleData {
			out[i] = []byte(d)
		}
		return out, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open data file")
	}
	defer f.Close()

	var out [][]byte
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		out = append(out, append([]byte(nil), line...))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read data file")
	}
	return out, nil
}

// printMetrics writes every counter gathered from reg to w.
func printMetrics(reg *prometheus.Registry, w io.Writer) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			c := metric.GetCounter()
			if c == nil {
				continue
			}
			name := mf.GetName()
			for _, lp := range metric.GetLabel() {
				name += fmt.Sprintf("{%s=%q}", lp.GetName(), lp.GetValue())
			}
			fmt.Fprintf(w, "%s %v\n", name, c.GetValue())
		}
	}
	return nil
}
