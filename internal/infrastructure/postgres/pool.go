package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Clinica-api/pkg/config"
)

// NewPool crea el pool de conexiones, registra el codec de decimal y verifica la conexión con un ping.
func NewPool(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := buildPoolConfig(cfg, log)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

func buildPoolConfig(cfg config.DBConfig, log zerolog.Logger) (*pgxpool.Config, error) {
	dsn := cfg.ConnectionString()
	if cfg.ForceIPv4 {
		dsn = dsnWithIPv4(cfg)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.ForceIPv4 {
		// Supabase puede resolver solo AAAA y Docker suele no tener IPv6.
		poolConfig.ConnConfig.DialFunc = dialIPv4
	}

	// Los reportes agrupan por día en UTC.
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "clinica-api"
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"

	if cfg.LogQueries {
		poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   zerologTracer(log),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC -> shopspring/decimal en todas las conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

// zerologTracer adapta el logger de la app a tracelog; las consultas salen en debug con component=pgx.
func zerologTracer(log zerolog.Logger) tracelog.Logger {
	l := log.With().Str("component", "pgx").Logger()
	return tracelog.LoggerFunc(func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		var lvl zerolog.Level
		switch level {
		case tracelog.LogLevelError:
			lvl = zerolog.ErrorLevel
		case tracelog.LogLevelWarn:
			lvl = zerolog.WarnLevel
		case tracelog.LogLevelInfo, tracelog.LogLevelDebug:
			lvl = zerolog.DebugLevel
		default:
			lvl = zerolog.TraceLevel
		}
		l.WithLevel(lvl).Fields(data).Msg(msg)
	})
}

// dsnWithIPv4 devuelve el DSN con el host reemplazado por su IPv4; si no resuelve, el DSN original.
func dsnWithIPv4(cfg config.DBConfig) string {
	if cfg.DatabaseURL == "" {
		if ip, err := resolveIPv4(cfg.Host); err == nil {
			cfg.Host = ip
		}
		return cfg.DSN()
	}

	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return cfg.DatabaseURL
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ip, err := resolveIPv4(u.Hostname())
	if err != nil {
		return cfg.DatabaseURL
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := resolveIPv4(host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// publicResolver consulta 8.8.8.8 cuando el DNS del contenedor solo devuelve IPv6.
var publicResolver = &net.Resolver{
	PreferGo: true,
	Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "udp", "8.8.8.8:53")
	},
}

func resolveIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, r := range []*net.Resolver{net.DefaultResolver, publicResolver} {
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err != nil {
			continue
		}
		for _, ip := range ips {
			if ip.To4() != nil {
				return ip.String(), nil
			}
		}
	}
	return "", fmt.Errorf("sin IPv4 para %s", host)
}
