package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"blockref.dev/refstore/fault"
	"blockref.dev/refstore/network/netconfig"
	"blockref.dev/refstore/record"
	"blockref.dev/refstore/store"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "store":
		return cmdStore(args[1:], out, errOut)
	case "retrieve":
		return cmdRetrieve(args[1:], out, errOut)
	case "verify":
		return cmdVerify(args[1:], out, errOut)
	case "cost":
		return cmdCost(args[1:], out, errOut)
	case "fund":
		return cmdFund(args[1:], out, errOut)
	case "status":
		return cmdStatus(args[1:], out, errOut)
	case "nft":
		return cmdNFT(args[1:], out, errOut)
	case "summary":
		return cmdSummary(args[1:], out, errOut)
	case "keywords":
		return cmdKeywords(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "blockref: employment-reference permanent storage CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  blockref store [--config <file>] [--retries <n>] [--retry-delay <dur>] <reference.json>")
	fmt.Fprintln(w, "  blockref retrieve [--config <file>] <content-id>")
	fmt.Fprintln(w, "  blockref verify [--config <file>] <content-id>")
	fmt.Fprintln(w, "  blockref cost [--config <file>] <reference.json>")
	fmt.Fprintln(w, "  blockref fund [--config <file>] <amount>")
	fmt.Fprintln(w, "  blockref status [--config <file>]")
	fmt.Fprintln(w, "  blockref nft [--config <file>] <content-id>")
	fmt.Fprintln(w, "  blockref summary [--config <file>] <content-id>")
	fmt.Fprintln(w, "  blockref keywords <reference.json>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - <reference.json> holds the sectioned input: employerInfo, employeeInfo,")
	fmt.Fprintln(w, "    projectInfo, referenceDetails, and optional metadata")
	fmt.Fprintln(w, "  - --config selects the storage backend (local, grpc, http); without it a")
	fmt.Fprintln(w, "    throwaway in-process node is used, useful only for dry runs")
	fmt.Fprintln(w, "  - fund amounts are decimal token units (e.g. 0.01), not atomic units")
	fmt.Fprintln(w, "  - store prints the finalized result as JSON; the contentId inside is the")
	fmt.Fprintln(w, "    permanent retrieval handle")
}

// commonFlags are shared by every subcommand that reaches the network.
type commonFlags struct {
	config string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "TOML backend config file")
}

// openService builds the orchestrator from config. The closer must be called
// when the command is done.
func (c *commonFlags) openService(errOut io.Writer) (*store.Service, func() error, int) {
	var cfg netconfig.Config
	if c.config == "" {
		cfg = netconfig.Default()
	} else {
		var err error
		cfg, err = netconfig.LoadFile(c.config)
		if err != nil {
			fmt.Fprintf(errOut, "config: %v\n", err)
			return nil, nil, 2
		}
	}
	client, closer, err := cfg.Open()
	if err != nil {
		fmt.Fprintf(errOut, "open backend: %v\n", err)
		return nil, nil, 1
	}
	svc := store.New(client, store.Options{
		AppName:    cfg.AppName,
		AppVersion: cfg.AppVersion,
		GatewayURL: cfg.GatewayURL,
	})
	return svc, closer, 0
}

func readRaw(path string, errOut io.Writer) (record.Raw, int) {
	var raw record.Raw
	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", path, err)
		return raw, 1
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		fmt.Fprintf(errOut, "parse %s: %v\n", path, err)
		return raw, 2
	}
	return raw, 0
}

func printJSON(out io.Writer, v any) int {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return 1
	}
	return 0
}

// reportError prints the classified user-facing message plus the underlying
// detail, and picks the exit code: 2 for caller mistakes, 1 for everything
// else.
func reportError(errOut io.Writer, err error) int {
	c := fault.Classify(err)
	fmt.Fprintln(errOut, c.UserMessage)
	fmt.Fprintf(errOut, "  [%s] %v\n", c.Code, err)
	if s := fault.Shortfall(err); s != "" && s != "0" {
		fmt.Fprintf(errOut, "  shortfall: %s atomic units\n", s)
	}
	switch c.Kind {
	case fault.KindStructure, fault.KindValidation, fault.KindArithmetic:
		return 2
	default:
		return 1
	}
}

func cmdStore(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("store", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	common.register(fs)
	var retries int
	var retryDelay time.Duration
	fs.IntVar(&retries, "retries", 0, "Re-attempts after a failed upload (exponential backoff)")
	fs.DurationVar(&retryDelay, "retry-delay", time.Second, "Base delay before the first re-attempt")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blockref store [--config <file>] [--retries <n>] [--retry-delay <dur>] <reference.json>")
		return 2
	}
	raw, code := readRaw(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}

	svc, closer, code := common.openService(errOut)
	if code != 0 {
		return code
	}
	defer closer()

	ctx := context.Background()
	res, err := fault.Retry(ctx, retries, retryDelay, func(ctx context.Context) (*store.StoreResult, error) {
		return svc.Store(ctx, raw)
	})
	if err != nil {
		return reportError(errOut, err)
	}
	return printJSON(out, res)
}

func cmdRetrieve(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("retrieve", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blockref retrieve [--config <file>] <content-id>")
		return 2
	}

	svc, closer, code := common.openService(errOut)
	if code != 0 {
		return code
	}
	defer closer()

	res, err := svc.Retrieve(context.Background(), fs.Arg(0))
	if err != nil {
		return reportError(errOut, err)
	}
	if !res.IsValid {
		fmt.Fprintf(errOut, "warning: stored record fails validation (%d error(s))\n", len(res.Validation.Errors))
	}
	return printJSON(out, res)
}

func cmdVerify(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blockref verify [--config <file>] <content-id>")
		return 2
	}

	svc, closer, code := common.openService(errOut)
	if code != 0 {
		return code
	}
	defer closer()

	res, err := svc.Verify(context.Background(), fs.Arg(0))
	if err != nil {
		return reportError(errOut, err)
	}
	if code := printJSON(out, res); code != 0 {
		return code
	}
	if !res.IsIntegrityValid {
		fmt.Fprintln(errOut, "INTEGRITY FAILURE: stored hash does not match recomputed hash")
		return 1
	}
	return 0
}

func cmdCost(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("cost", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blockref cost [--config <file>] <reference.json>")
		return 2
	}
	raw, code := readRaw(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}

	svc, closer, code := common.openService(errOut)
	if code != 0 {
		return code
	}
	defer closer()

	res, err := svc.EstimateCost(context.Background(), raw)
	if err != nil {
		return reportError(errOut, err)
	}
	return printJSON(out, res)
}

func cmdFund(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("fund", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blockref fund [--config <file>] <amount>")
		return 2
	}

	svc, closer, code := common.openService(errOut)
	if code != 0 {
		return code
	}
	defer closer()

	res, err := svc.Fund(context.Background(), fs.Arg(0))
	if err != nil {
		return reportError(errOut, err)
	}
	return printJSON(out, res)
}

func cmdStatus(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(errOut, "usage: blockref status [--config <file>]")
		return 2
	}

	svc, closer, code := common.openService(errOut)
	if code != 0 {
		return code
	}
	defer closer()

	res, err := svc.AccountStatus(context.Background())
	if err != nil {
		return reportError(errOut, err)
	}
	return printJSON(out, res)
}

func cmdNFT(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("nft", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blockref nft [--config <file>] <content-id>")
		return 2
	}

	svc, closer, code := common.openService(errOut)
	if code != 0 {
		return code
	}
	defer closer()

	meta, err := svc.NFTMetadata(context.Background(), fs.Arg(0))
	if err != nil {
		return reportError(errOut, err)
	}
	return printJSON(out, meta)
}

func cmdSummary(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blockref summary [--config <file>] <content-id>")
		return 2
	}

	svc, closer, code := common.openService(errOut)
	if code != 0 {
		return code
	}
	defer closer()

	res, err := svc.Retrieve(context.Background(), fs.Arg(0))
	if err != nil {
		return reportError(errOut, err)
	}
	return printJSON(out, record.NewSummary(res.Record))
}

// cmdKeywords is offline: it canonicalizes the input and prints the keyword
// set that store would attach, one per line.
func cmdKeywords(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("keywords", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: blockref keywords <reference.json>")
		return 2
	}
	raw, code := readRaw(fs.Arg(0), errOut)
	if code != 0 {
		return code
	}
	rec, err := record.New(raw)
	if err != nil {
		return reportError(errOut, err)
	}
	keywords := record.Keywords(rec)
	if len(keywords) > store.MaxKeywordTags {
		keywords = keywords[:store.MaxKeywordTags]
	}
	fmt.Fprintln(out, strings.Join(keywords, "\n"))
	return 0
}
