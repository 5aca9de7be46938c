package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/codewithboateng/namelint/internal/api"
	"github.com/codewithboateng/namelint/internal/debt"
	"github.com/codewithboateng/namelint/internal/ir"
	"github.com/codewithboateng/namelint/internal/parser"
	"github.com/codewithboateng/namelint/internal/reporting"
	"github.com/codewithboateng/namelint/internal/rules"
	"github.com/codewithboateng/namelint/internal/rulesdsl"
	"github.com/codewithboateng/namelint/internal/security"
	"github.com/codewithboateng/namelint/internal/shared"
	"github.com/codewithboateng/namelint/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var code int
	switch os.Args[1] {
	case "analyze":
		code = analyzeCmd(os.Args[2:])
	case "report":
		code = reportCmd(os.Args[2:])
	case "diff":
		code = diffCmd(os.Args[2:])
	case "rules":
		code = rulesCmd(os.Args[2:])
	case "useradd":
		code = useraddCmd(os.Args[2:])
	case "serve":
		code = serveCmd(os.Args[2:])
	case "version":
		fmt.Println("namelint IR:", ir.Version)
	default:
		usage()
		code = 2
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintf(os.Stderr, `namelint – type name analyzer for Go sources

Usage:
  namelint analyze --path <src-dir> [--out ./reports] [--db ./namelint.db] [--config ./namelint.yaml]
                   [--forbidden-name Manager,Helper] [--rules-pack ./naming.yaml] [--fail-on-findings]
  namelint report  --run <run-id> [--out ./reports] [--db ./namelint.db] [--config ./namelint.yaml]
  namelint diff    --base <run-id> --head <run-id> [--out ./reports] [--db ./namelint.db]
  namelint rules   [--config ./namelint.yaml] [--rules-pack ./naming.yaml]
  namelint useradd --user <name> --password <pw> [--role viewer|admin] [--db ./namelint.db]
  namelint serve   [--addr :8080] [--db ./namelint.db] [--config ./namelint.yaml]
  namelint version
`)
}

// loadConfig reads the config file and initialises logging; a malformed file is fatal.
func loadConfig(path string) (shared.Config, bool) {
	cfg, err := shared.LoadConfig(path)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		slog.Error("config error", "err", err)
		return cfg, false
	}
	return cfg, true
}

// applyRuleSettings pushes the config into the rules registry and loads rule packs.
func applyRuleSettings(cfg shared.Config, extraPacks []string) error {
	disabled := map[string]bool{}
	for _, id := range cfg.Analysis.Disabled {
		disabled[strings.ToUpper(strings.TrimSpace(id))] = true
	}
	ruleCfg := map[string]rules.RuleConfig{}
	for id, opts := range cfg.RuleOptions() {
		ruleCfg[id] = rules.RuleConfig(opts)
	}
	rules.SetSettings(rules.Settings{
		Disabled: disabled,
		Rules:    ruleCfg,
		Workers:  cfg.Analysis.Workers,
	})
	for _, p := range append(append([]string{}, cfg.Analysis.RulePacks...), extraPacks...) {
		n, err := rulesdsl.LoadAndRegister(p)
		if err != nil {
			return fmt.Errorf("rules pack %s: %w", p, err)
		}
		slog.Debug("rules pack loaded", "path", p, "rules", n)
	}
	return nil
}

type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(v string) error { *m = append(*m, v); return nil }

func analyzeCmd(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Path to Go source directory or file")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	forbidden := fs.String("forbidden-name", "", "Comma separated forbidden type name fragments (overrides config)")
	failOn := fs.Bool("fail-on-findings", false, "Exit 1 when findings remain after waivers")
	var packs multiFlag
	fs.Var(&packs, "rules-pack", "YAML rules pack (repeatable)")
	_ = fs.Parse(args)

	cfg, ok := loadConfig(*configPath)
	if !ok {
		return 1
	}

	// precedence: flags > env > config > defaults
	if *inPath == "" && len(cfg.Analysis.Sources) > 0 {
		*inPath = cfg.Analysis.Sources[0]
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "forbidden-name" {
			cfg.SetRuleOption(rules.ForbiddenClassNameID, rules.ForbiddenNameKey, *forbidden)
		}
	})

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "analyze: --path (or analysis.sources in config) is required")
		return 2
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "analyze: cannot create out dir:", err)
		return 1
	}
	if err := applyRuleSettings(cfg, packs); err != nil {
		slog.Error("rules setup error", "err", err)
		return 1
	}

	// Parse
	run, diags := parser.Parse(*inPath)
	if len(diags.Warnings) > 0 {
		slog.Warn("parse warnings", "warnings", diags.Warnings)
	}
	run.ID = fmt.Sprintf("run-%d", time.Now().Unix())
	run.StartedAt = time.Now().UTC()
	run.Context.ForbiddenName = cfg.RuleOptions()[rules.ForbiddenClassNameID][rules.ForbiddenNameKey]
	run.Context.DisabledRules = cfg.Analysis.Disabled
	run.Context.RulePacks = append(append([]string{}, cfg.Analysis.RulePacks...), packs...)

	// Rules
	run.Findings = rules.Evaluate(&run)

	// Persist & report
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		return 1
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		return 1
	}
	waivers, err := db.ListWaivers(true)
	if err != nil {
		slog.Error("db waivers error", "err", err)
		return 1
	}
	run.Findings, run.Context.Waived = rules.ApplyWaivers(run.Findings, waivers)

	if err := db.SaveRun(&run); err != nil {
		slog.Error("db save run error", "err", err)
		return 1
	}

	jsonPath, err := reporting.WriteJSON(run.ID, *outDir, &run)
	if err != nil {
		slog.Error("json report error", "err", err)
		return 1
	}
	htmlPath, err := reporting.WriteHTML(run.ID, *outDir, &run)
	if err != nil {
		slog.Error("html report error", "err", err)
		return 1
	}
	slog.Info("analyze complete",
		"run", run.ID,
		"units", len(run.Units),
		"findings", len(run.Findings),
		"waived", run.Context.Waived,
		"debt", debt.Sum(run.Findings).String(),
		"json", jsonPath,
		"html", htmlPath,
		"db", filepath.Clean(*dbPath),
	)
	for _, f := range run.Findings {
		fmt.Printf("%s: %s [%s]\n", f.Entity.Location, f.Message, f.RuleID)
	}
	fmt.Printf("Analyze OK\n  Run: %s\n  Findings: %d (debt %s)\n  JSON: %s\n  HTML: %s\n  DB: %s\n",
		run.ID, len(run.Findings), debt.Sum(run.Findings), jsonPath, htmlPath, filepath.Clean(*dbPath))

	if *failOn && len(run.Findings) > 0 {
		return 1
	}
	return 0
}

func reportCmd(args []string) int {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, ok := loadConfig(*configPath)
	if !ok {
		return 1
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "report: --run is required")
		return 2
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		return 1
	}
	defer db.Close()

	run, err := db.LoadRun(*runID)
	if err != nil {
		slog.Error("load run error", "err", err)
		return 1
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		return 1
	}
	jsonPath, err := reporting.WriteJSON(run.ID, *outDir, &run)
	if err != nil {
		slog.Error("json report error", "err", err)
		return 1
	}
	htmlPath, err := reporting.WriteHTML(run.ID, *outDir, &run)
	if err != nil {
		slog.Error("html report error", "err", err)
		return 1
	}
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
	return 0
}

func diffCmd(args []string) int {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, ok := loadConfig(*configPath)
	if !ok {
		return 1
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		return 2
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		return 1
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		return 1
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		return 1
	}
	path, err := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	if err != nil {
		slog.Error("diff report error", "err", err)
		return 1
	}
	fmt.Printf("Diff OK\n  %s\n", path)
	return 0
}

func rulesCmd(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	var packs multiFlag
	fs.Var(&packs, "rules-pack", "YAML rules pack (repeatable)")
	_ = fs.Parse(args)

	cfg, ok := loadConfig(*configPath)
	if !ok {
		return 1
	}
	if err := applyRuleSettings(cfg, packs); err != nil {
		slog.Error("rules setup error", "err", err)
		return 1
	}
	for _, r := range rules.List() {
		fmt.Printf("%-28s %-10s %-6s %s\n", r.ID, r.Severity, r.Debt, r.Summary)
	}
	return 0
}

func useraddCmd(args []string) int {
	fs := flag.NewFlagSet("useradd", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	user := fs.String("user", "", "Username")
	password := fs.String("password", "", "Password")
	role := fs.String("role", security.RoleViewer, "Role: viewer|admin")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, ok := loadConfig(*configPath)
	if !ok {
		return 1
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *user == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "useradd: --user and --password are required")
		return 2
	}
	hash, err := security.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "useradd:", err)
		return 2
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		return 1
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		return 1
	}
	id, err := db.CreateUser(*user, hash, security.NormalizeRole(*role))
	if err != nil {
		slog.Error("create user error", "err", err)
		return 1
	}
	fmt.Printf("User OK\n  ID: %d\n  Username: %s\n  Role: %s\n", id, *user, security.NormalizeRole(*role))
	return 0
}

func serveCmd(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, ok := loadConfig(*configPath)
	if !ok {
		return 1
	}
	if *addr == "" {
		*addr = cfg.API.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	sessionDur, err := time.ParseDuration(cfg.API.SessionDuration)
	if err != nil {
		slog.Error("bad api.session_duration", "value", cfg.API.SessionDuration, "err", err)
		return 1
	}
	if err := applyRuleSettings(cfg, nil); err != nil {
		slog.Error("rules setup error", "err", err)
		return 1
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		return 1
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		return 1
	}

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Logger:          slog.Default(),
		AllowedOrigins:  cfg.API.AllowedOrigins,
		SessionDuration: sessionDur,
	}
	hs := &http.Server{
		Addr:              *addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	slog.Info("api listening", "addr", *addr, "db", filepath.Clean(*dbPath))
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("api server error", "err", err)
		return 1
	}
	return 0
}
