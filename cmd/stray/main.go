package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/stray/internal/model"
	"github.com/sadopc/stray/internal/ops"
	"github.com/sadopc/stray/internal/override"
	"github.com/sadopc/stray/internal/remote"
	"github.com/sadopc/stray/internal/scan"
	"github.com/sadopc/stray/internal/scanner"
	"github.com/sadopc/stray/internal/ui"
	"github.com/sadopc/stray/internal/watch"
)

var (
	version = "dev"
)

const defaultSSHPort = 22

type scanTarget struct {
	Remote         bool
	LocalPath      string
	SSHDestination string
	RemotePath     string
}

func main() {
	reportPath := flag.String("report", "", "Write the scan report to a JSON file and exit (use '-' for stdout)")
	loadPath := flag.String("load", "", "Load and browse a previously written report")
	exclude := flag.String("exclude", "", "Comma-separated list of folder names to ignore (added to the config)")
	batchSize := flag.Int("batch", scan.DefaultBatchSize, "Number of candidate files classified per batch")
	showVersion := flag.Bool("version", false, "Show version")
	concurrency := flag.Int("j", 0, "Max concurrent directory walks and file reads (0 = auto: 3x CPU cores)")
	sshPort := flag.Int("ssh-port", defaultSSHPort, "SSH port for remote scans")
	sshBatch := flag.Bool("ssh-batch", false, "Disable SSH password prompts (key/agent auth only)")
	sshTimeout := flag.Int("ssh-timeout", 15, "SSH connection timeout in seconds (default 15)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "stray - find files nothing references\n\n")
		fmt.Fprintf(os.Stderr, "Usage: stray [options] [path|user@host [remote-path]]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  stray .                            Scan the current project\n")
		fmt.Fprintf(os.Stderr, "  stray /srv/site                    Scan /srv/site\n")
		fmt.Fprintf(os.Stderr, "  stray --report unused.json .       Write the report and exit\n")
		fmt.Fprintf(os.Stderr, "  stray --report - . | jq .unused    Report on stdout\n")
		fmt.Fprintf(os.Stderr, "  stray --load unused.json           Browse a saved report\n")
		fmt.Fprintf(os.Stderr, "  stray --exclude dist,coverage .    Ignore extra folders\n")
		fmt.Fprintf(os.Stderr, "  stray deploy@192.168.1.10 /srv/site   Scan over SSH\n")
		fmt.Fprintf(os.Stderr, "  stray --ssh-port 2222 deploy@host /srv/site\n")
		fmt.Fprintf(os.Stderr, "  stray -j 8 .                       Scan with 8 concurrent workers\n")
	}

	flag.Parse()

	// SSH flags only make sense with a remote target; remember whether
	// any were given so that can be checked once the target is known.
	sshFlagSet := false
	flag.Visit(func(f *flag.Flag) {
		if strings.HasPrefix(f.Name, "ssh-") {
			sshFlagSet = true
		}
	})

	if *showVersion {
		fmt.Printf("stray %s\n", version)
		os.Exit(0)
	}

	if *sshPort < 1 || *sshPort > 65535 {
		fmt.Fprintf(os.Stderr, "Error: ssh-port must be between 1 and 65535\n")
		os.Exit(1)
	}
	if *concurrency < 0 {
		fmt.Fprintf(os.Stderr, "Error: concurrency (-j) must be >= 0\n")
		os.Exit(1)
	}
	if *batchSize < 1 {
		fmt.Fprintf(os.Stderr, "Error: batch must be >= 1\n")
		os.Exit(1)
	}

	// Load mode
	if *loadPath != "" {
		if flag.NArg() > 0 {
			fmt.Fprintf(os.Stderr, "Error: --load cannot be used with scan targets\n")
			os.Exit(1)
		}

		if *reportPath != "" {
			// Re-export a loaded report
			rep, err := ops.ReadReport(*loadPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading: %v\n", err)
				os.Exit(1)
			}
			if err := ops.WriteReport(rep, *reportPath); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
				os.Exit(1)
			}
			if *reportPath != "-" {
				fmt.Printf("Report written to %s\n", *reportPath)
			}
			os.Exit(0)
		}

		app := ui.NewAppFromReport(*loadPath)
		app.Version = version
		if err := runTUI(app); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	target, err := resolveScanTarget(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !target.Remote && sshFlagSet {
		fmt.Fprintf(os.Stderr, "Error: ssh options require a remote target\n")
		os.Exit(1)
	}

	opts := scan.DefaultOptions()
	opts.BatchSize = *batchSize
	opts.Workers = *concurrency
	opts.ExtraIgnoreFolders = splitComma(*exclude)

	// A fresh session never inherits pins.
	ov := override.NewStore()
	ov.ResetAll()

	if target.Remote {
		if err := runRemoteScan(target, *sshPort, *sshBatch, *sshTimeout, *reportPath, opts, ov); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	src := scanner.Local{}
	absPath, err := src.Abs(target.LocalPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Verify the project root exists
	info, err := os.Stat(absPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is not a directory\n", absPath)
		os.Exit(1)
	}

	orc := scan.New(src, ov, opts)

	// Headless report mode
	if *reportPath != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := runHeadlessScan(ctx, orc, src, absPath, *reportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Scan error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Interactive TUI mode
	app := ui.NewApp(absPath, src, orc)
	app.ExportPath = "stray-report.json"
	app.Version = version
	app.Watcher = watch.New(src, watch.DefaultInterval)

	if err := runTUI(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(app *ui.App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return app.FatalError()
}

func runHeadlessScan(ctx context.Context, orc *scan.Orchestrator, src scanner.Source, root, reportPath string) error {
	quiet := reportPath == "-"

	progressCh := make(chan scan.Progress, 10)
	orc.SetProgress(func(p scan.Progress) {
		select {
		case progressCh <- p:
		default:
		}
	})

	var progressWg sync.WaitGroup
	progressWg.Add(1)
	go func() {
		defer progressWg.Done()
		for p := range progressCh {
			if quiet {
				continue
			}
			fmt.Fprintf(os.Stderr, "\r%-70s", p.Message)
		}
		if !quiet {
			fmt.Fprintln(os.Stderr)
		}
	}()

	res, err := orc.Scan(ctx, root)
	close(progressCh)
	progressWg.Wait()
	if err != nil {
		return err
	}
	if res.Cancelled {
		return fmt.Errorf("scan interrupted")
	}

	rep := &model.Report{
		Version:     model.ReportVersion,
		Root:        root,
		GeneratedAt: time.Now(),
		Unused:      ops.CollectEntries(src, res.UnusedFiles),
		Duplicates:  orc.Duplicates(),
	}
	if cfg, ok := orc.LastConfig(); ok {
		rep.FileTypes = cfg.FileTypes
	}

	if err := ops.WriteReport(rep, reportPath); err != nil {
		return fmt.Errorf("report error: %w", err)
	}
	if !quiet {
		fmt.Printf("Report written to %s\n", reportPath)
	}
	return nil
}

func runRemoteScan(target scanTarget, sshPort int, sshBatch bool, sshTimeout int, reportPath string, opts scan.Options, ov *override.Store) error {
	cfg := remote.Config{
		Target:    target.SSHDestination,
		Port:      sshPort,
		BatchMode: sshBatch,
		Timeout:   time.Duration(sshTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stderr, "Connecting to %s...\n", target.SSHDestination)
	src, closer, err := remote.Dial(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	absPath, err := src.Abs(target.RemotePath)
	if err != nil {
		return err
	}

	orc := scan.New(src, ov, opts)

	if reportPath != "" {
		return runHeadlessScan(ctx, orc, src, absPath, reportPath)
	}

	// The TUI takes over interrupt handling from here.
	stop()

	app := ui.NewApp(absPath, src, orc)
	app.ExportPath = "stray-report.json"
	app.Version = version
	app.Remote = target.SSHDestination
	return runTUI(app)
}

func resolveScanTarget(args []string) (scanTarget, error) {
	if len(args) == 0 {
		return scanTarget{LocalPath: "."}, nil
	}

	first := args[0]
	if pathExists(first) {
		if len(args) > 1 {
			return scanTarget{}, fmt.Errorf("too many positional arguments for local scan")
		}
		return scanTarget{LocalPath: first}, nil
	}

	if isRemote, err := validateRemoteTarget(first); isRemote {
		if err != nil {
			return scanTarget{}, err
		}
		if len(args) > 2 {
			return scanTarget{}, fmt.Errorf("too many positional arguments for remote scan")
		}

		remotePath := "."
		if len(args) == 2 && strings.TrimSpace(args[1]) != "" {
			remotePath = args[1]
		}

		return scanTarget{
			Remote:         true,
			SSHDestination: first,
			RemotePath:     remotePath,
		}, nil
	}

	if len(args) > 1 {
		return scanTarget{}, fmt.Errorf("too many positional arguments")
	}

	return scanTarget{LocalPath: first}, nil
}

func validateRemoteTarget(raw string) (bool, error) {
	if strings.ContainsAny(raw, `/\\`) {
		return false, nil
	}
	if strings.Count(raw, "@") != 1 {
		return false, nil
	}

	user, host, _ := strings.Cut(raw, "@")
	if user == "" || host == "" {
		return true, fmt.Errorf("invalid remote target %q: expected user@host", raw)
	}
	if strings.HasPrefix(user, "-") || strings.HasPrefix(host, "-") {
		return true, fmt.Errorf("invalid remote target %q", raw)
	}
	if strings.ContainsAny(user, " \t\n\r") || strings.ContainsAny(host, " \t\n\r") {
		return true, fmt.Errorf("invalid remote target %q: spaces are not allowed", raw)
	}
	if strings.HasPrefix(host, "[") {
		end := strings.Index(host, "]")
		if end == -1 {
			return true, fmt.Errorf("invalid remote target %q: malformed bracketed host", raw)
		}
		if end == 1 {
			return true, fmt.Errorf("invalid remote target %q: empty host", raw)
		}
		if end != len(host)-1 {
			rest := host[end+1:]
			if strings.HasPrefix(rest, ":") && isAllDigits(rest[1:]) {
				return true, fmt.Errorf("remote target %q must not include :port; use --ssh-port", raw)
			}
			return true, fmt.Errorf("invalid remote target %q: malformed bracketed host", raw)
		}
	} else if strings.Contains(host, "]") {
		return true, fmt.Errorf("invalid remote target %q: malformed bracketed host", raw)
	}
	if looksLikeHostPort(host) {
		return true, fmt.Errorf("remote target %q must not include :port; use --ssh-port", raw)
	}

	return true, nil
}

func looksLikeHostPort(host string) bool {
	if strings.Count(host, ":") != 1 {
		return false
	}
	_, port, ok := strings.Cut(host, ":")
	if !ok {
		return false
	}
	return isAllDigits(port)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitComma(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
