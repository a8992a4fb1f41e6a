package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"dungeonforge.gg/internal/game/catalogs"
	"dungeonforge.gg/internal/game/tuning"
	"dungeonforge.gg/internal/game/world"
	"dungeonforge.gg/internal/persistence/indexdb"
	persistlog "dungeonforge.gg/internal/persistence/log"
	"dungeonforge.gg/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		seed       = flag.Int64("seed", 0, "rng seed (0 = time-based)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite read-model index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", tp)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}

	_ = os.MkdirAll(*dataDir, 0o755)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	w, err := world.New(world.Config{
		TickRateHz:             tune.TickRateHz,
		MapWidth:               tune.MapWidth,
		MapHeight:              tune.MapHeight,
		TileSize:               tune.TileSize,
		MeleeRangeTiles:        tune.MeleeRangeTiles,
		HealthRegenPerTick:     tune.HealthRegenPerTick,
		ManaRegenMilliPerTick:  tune.ManaRegenMilliPerTick,
		DeathDropPermille:      tune.DeathDropPermille,
		DamageVariancePermille: tune.DamageVariancePermille,
		ChatMaxLen:             tune.ChatMaxLen,
		StarterKit:             tune.StarterKit,
	}, cats, rng)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	// Optional: read-model index (leaderboard). Never read by the simulation.
	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.OpenSQLite(filepath.Join(*dataDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index db: %v", err)
		}
		defer idx.Close()
	}

	combatLog := persistlog.NewCombatLogger(*dataDir)
	sessionLog := persistlog.NewSessionLogger(*dataDir)
	defer combatLog.Close()
	defer sessionLog.Close()
	w.SetCombatLogger(multiCombatLogger{a: combatLog, b: idx})
	w.SetSessionLogger(multiSessionLogger{a: sessionLog, b: idx})

	go func() {
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Printf("world stopped: %v", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(200)
		_, _ = rw.Write([]byte("ok"))
	})
	mux.HandleFunc("/metrics", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; version=0.0.4")

		m := w.Metrics()

		// Minimal Prometheus exposition format.
		fmt.Fprintf(rw, "# HELP dungeonforge_world_tick Current world tick.\n")
		fmt.Fprintf(rw, "# TYPE dungeonforge_world_tick gauge\n")
		fmt.Fprintf(rw, "dungeonforge_world_tick %d\n", m.Tick)

		fmt.Fprintf(rw, "# HELP dungeonforge_world_players Current number of connected players.\n")
		fmt.Fprintf(rw, "# TYPE dungeonforge_world_players gauge\n")
		fmt.Fprintf(rw, "dungeonforge_world_players %d\n", m.Players)

		fmt.Fprintf(rw, "# HELP dungeonforge_world_queue_depth Channel backlog depth.\n")
		fmt.Fprintf(rw, "# TYPE dungeonforge_world_queue_depth gauge\n")
		fmt.Fprintf(rw, "dungeonforge_world_queue_depth{queue=%q} %d\n", "inbox", m.QueueDepths.Inbox)
		fmt.Fprintf(rw, "dungeonforge_world_queue_depth{queue=%q} %d\n", "join", m.QueueDepths.Join)
		fmt.Fprintf(rw, "dungeonforge_world_queue_depth{queue=%q} %d\n", "leave", m.QueueDepths.Leave)

		fmt.Fprintf(rw, "# HELP dungeonforge_world_step_ms Last tick step duration in milliseconds.\n")
		fmt.Fprintf(rw, "# TYPE dungeonforge_world_step_ms gauge\n")
		fmt.Fprintf(rw, "dungeonforge_world_step_ms %.3f\n", m.StepMS)
	})

	enableAdminHTTP := envBool("DF_ENABLE_ADMIN_HTTP", defaultEnableAdminHTTP())
	enablePprofHTTP := envBool("DF_ENABLE_PPROF_HTTP", false)
	if enableAdminHTTP {
		// Local-only admin endpoints (never touch the simulation directly).
		mux.HandleFunc("/admin/v1/state", func(rw http.ResponseWriter, r *http.Request) {
			if !isLoopbackRemote(r.RemoteAddr) {
				http.Error(rw, "forbidden", http.StatusForbidden)
				return
			}
			rw.Header().Set("Content-Type", "application/json")
			resp := struct {
				Tick    uint64             `json:"tick"`
				Metrics world.WorldMetrics `json:"metrics"`
			}{
				Tick:    w.CurrentTick(),
				Metrics: w.Metrics(),
			}
			_ = json.NewEncoder(rw).Encode(resp)
		})
		mux.HandleFunc("/admin/v1/leaderboard", func(rw http.ResponseWriter, r *http.Request) {
			if !isLoopbackRemote(r.RemoteAddr) {
				http.Error(rw, "forbidden", http.StatusForbidden)
				return
			}
			rw.Header().Set("Content-Type", "application/json")
			if idx == nil {
				rw.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(rw).Encode(map[string]any{"error": "index db disabled"})
				return
			}
			limit := 10
			if v := r.URL.Query().Get("limit"); v != "" {
				if n, err := strconv.Atoi(v); err == nil {
					limit = n
				}
			}
			rows, err := idx.TopKillers(r.Context(), limit)
			if err != nil {
				rw.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(rw).Encode(map[string]any{"error": err.Error()})
				return
			}
			_ = json.NewEncoder(rw).Encode(map[string]any{"leaderboard": rows})
		})
	} else {
		logger.Printf("admin endpoints disabled (DF_ENABLE_ADMIN_HTTP=false)")
	}
	if enablePprofHTTP {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	} else {
		logger.Printf("pprof endpoints disabled (DF_ENABLE_PPROF_HTTP=false)")
	}
	mux.HandleFunc("/v1/ws", ws.NewServer(w, tune.SendBuffer, logger).Handler())

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel2()
		_ = srv.Shutdown(ctx2)
	}()

	logger.Printf("listening on %s (seed=%d tick=%dHz)", *addr, rngSeed, tune.TickRateHz)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("ListenAndServe: %v", err)
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func envBool(name string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(name)))
	switch v {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func defaultEnableAdminHTTP() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DEPLOY_ENV"))) {
	case "staging", "production":
		return false
	default:
		return true
	}
}

// multiCombatLogger fans one combat entry out to the JSONL log and, when
// enabled, the sqlite index.
type multiCombatLogger struct {
	a world.CombatLogger
	b *indexdb.SQLiteIndex
}

func (m multiCombatLogger) WriteCombat(entry world.CombatLogEntry) error {
	if m.a != nil {
		_ = m.a.WriteCombat(entry)
	}
	if m.b != nil {
		_ = m.b.WriteCombat(entry)
	}
	return nil
}

type multiSessionLogger struct {
	a world.SessionLogger
	b *indexdb.SQLiteIndex
}

func (m multiSessionLogger) WriteSession(entry world.SessionLogEntry) error {
	if m.a != nil {
		_ = m.a.WriteSession(entry)
	}
	if m.b != nil {
		_ = m.b.WriteSession(entry)
	}
	return nil
}
