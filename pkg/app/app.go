package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/k3s-io/swiftclient/pkg/auth"
	_ "github.com/k3s-io/swiftclient/pkg/auth/keystone"
	"github.com/k3s-io/swiftclient/pkg/container"
	"github.com/k3s-io/swiftclient/pkg/entity"
	"github.com/k3s-io/swiftclient/pkg/metrics"
	"github.com/k3s-io/swiftclient/pkg/version"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// Config holds everything parsed from the global flags.
type Config struct {
	AuthProvider string
	Auth         auth.Config
	AuthRetries  uint
	AuthCacheTTL time.Duration
	Container    string
	EntityKind   string
	Timeout      time.Duration
	LogFormat    string
}

var (
	config        Config
	metricsConfig metrics.Config
)

func New() *cli.App {
	app := cli.NewApp()
	app.Name = version.Program
	app.Usage = "Upload, download and expire objects in a Swift container"
	app.Version = fmt.Sprintf("%s (%s)", version.Version, version.GitCommit)
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "auth-provider",
			Usage:       fmt.Sprintf("Authenticator used to obtain a storage URL and token (valid values are: %s)", strings.Join(auth.Names(), ", ")),
			Destination: &config.AuthProvider,
			Value:       auth.DefaultProvider,
			EnvVars:     []string{"SWIFT_AUTH_PROVIDER"},
		},
		&cli.StringFlag{
			Name:        "auth-url",
			Usage:       "Auth endpoint for the swift provider, eg https://keystone.example.com/v3",
			Destination: &config.Auth.AuthURL,
			EnvVars:     []string{"SWIFT_AUTH_URL", "OS_AUTH_URL"},
		},
		&cli.StringFlag{
			Name:        "user",
			Usage:       "User name for the swift provider",
			Destination: &config.Auth.User,
			EnvVars:     []string{"SWIFT_USER", "OS_USERNAME"},
		},
		&cli.StringFlag{
			Name:        "key",
			Usage:       "API key or password for the swift provider",
			Destination: &config.Auth.Key,
			EnvVars:     []string{"SWIFT_KEY", "OS_PASSWORD"},
		},
		&cli.StringFlag{
			Name:        "user-id",
			Usage:       "User ID, used instead of the user name for v3 auth",
			Destination: &config.Auth.UserID,
			EnvVars:     []string{"SWIFT_USER_ID", "OS_USER_ID"},
		},
		&cli.StringFlag{
			Name:        "domain",
			Usage:       "User domain (v3 auth only)",
			Destination: &config.Auth.Domain,
			EnvVars:     []string{"SWIFT_DOMAIN", "OS_USER_DOMAIN_NAME"},
		},
		&cli.StringFlag{
			Name:        "tenant",
			Usage:       "Tenant or project name (v2/v3 auth only)",
			Destination: &config.Auth.Tenant,
			EnvVars:     []string{"SWIFT_TENANT", "OS_PROJECT_NAME"},
		},
		&cli.StringFlag{
			Name:        "tenant-id",
			Usage:       "Tenant or project ID (v2/v3 auth only)",
			Destination: &config.Auth.TenantID,
			EnvVars:     []string{"SWIFT_TENANT_ID", "OS_PROJECT_ID"},
		},
		&cli.StringFlag{
			Name:        "tenant-domain",
			Usage:       "Project domain, if it differs from the user domain (v3 auth only)",
			Destination: &config.Auth.TenantDomain,
			EnvVars:     []string{"SWIFT_TENANT_DOMAIN", "OS_PROJECT_DOMAIN_NAME"},
		},
		&cli.StringFlag{
			Name:        "region",
			Usage:       "Region to use, defaults to the first one in the catalog (v2/v3 auth only)",
			Destination: &config.Auth.Region,
			EnvVars:     []string{"SWIFT_REGION", "OS_REGION_NAME"},
		},
		&cli.IntFlag{
			Name:        "auth-version",
			Usage:       "Auth version 1, 2 or 3. Default 0 detects it from the auth URL.",
			Destination: &config.Auth.AuthVersion,
			Value:       0,
			EnvVars:     []string{"SWIFT_AUTH_VERSION"},
		},
		&cli.BoolFlag{
			Name:        "internal",
			Usage:       "Use the internal service network endpoint from the catalog",
			Destination: &config.Auth.Internal,
			EnvVars:     []string{"SWIFT_INTERNAL"},
		},
		&cli.StringFlag{
			Name:        "storage-url",
			Usage:       "Storage URL. Required for the static provider, overrides the catalog URL otherwise.",
			Destination: &config.Auth.StorageURL,
			EnvVars:     []string{"SWIFT_STORAGE_URL", "OS_STORAGE_URL"},
		},
		&cli.StringFlag{
			Name:        "auth-token",
			Usage:       "Auth token. Required for the static provider, overrides the issued token otherwise.",
			Destination: &config.Auth.Token,
			EnvVars:     []string{"SWIFT_AUTH_TOKEN", "OS_AUTH_TOKEN"},
		},
		&cli.UintFlag{
			Name:        "auth-retries",
			Usage:       "Number of attempts to obtain a token before giving up. Default 3.",
			Destination: &config.AuthRetries,
			Value:       3,
			EnvVars:     []string{"SWIFT_AUTH_RETRIES"},
		},
		&cli.DurationFlag{
			Name:        "auth-cache-ttl",
			Usage:       "How long a token is reused across operations. Default 5m, set 0 to authenticate for every operation.",
			Destination: &config.AuthCacheTTL,
			Value:       5 * time.Minute,
			EnvVars:     []string{"SWIFT_AUTH_CACHE_TTL"},
		},
		&cli.StringFlag{
			Name:        "container",
			Aliases:     []string{"c"},
			Usage:       "Container holding the objects",
			Destination: &config.Container,
			EnvVars:     []string{"SWIFT_CONTAINER"},
		},
		&cli.StringFlag{
			Name:        "entity-kind",
			Usage:       "Path segment between the storage URL and the container",
			Destination: &config.EntityKind,
			Value:       entity.KindObject,
			EnvVars:     []string{"SWIFT_ENTITY_KIND"},
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Overall timeout for each request including the transfer. Default 0, no timeout.",
			Destination: &config.Timeout,
			Value:       0,
			EnvVars:     []string{"SWIFT_TIMEOUT"},
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format to use. Options are 'plain' or 'json'.",
			Destination: &config.LogFormat,
			Value:       "plain",
			EnvVars:     []string{"SWIFT_LOG_FORMAT"},
		},
		&cli.StringFlag{
			Name:        "metrics-bind-address",
			Usage:       "The address the metric endpoint binds to while a command runs. Default 0, disabled.",
			Destination: &metricsConfig.ServerAddress,
			Value:       "0",
			EnvVars:     []string{"SWIFT_METRICS_BIND_ADDRESS"},
		},
		&cli.BoolFlag{
			Name:    "debug",
			EnvVars: []string{"SWIFT_DEBUG"},
		},
	}
	app.Commands = []*cli.Command{
		putCommand(),
		getCommand(),
		deleteCommand(),
	}
	app.Before = before
	return app
}

func before(c *cli.Context) error {
	if config.LogFormat == "plain" {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		})
	} else if config.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{
			// To align with https://cloud.google.com/logging/docs/structured-logging
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "severity",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		return errors.Errorf("invalid log format: %s", config.LogFormat)
	}

	if c.Bool("debug") {
		logrus.SetLevel(logrus.TraceLevel)
	}

	return nil
}

// newContainer builds the container client for the parsed global flags.
func newContainer(ctx context.Context) (*container.Container, error) {
	if config.Container == "" {
		return nil, errors.New("a container is required, set --container or SWIFT_CONTAINER")
	}

	a, err := auth.New(ctx, config.AuthProvider, config.Auth)
	if err != nil {
		return nil, err
	}
	a = auth.Retrying(a, config.AuthRetries, time.Second)
	if config.AuthCacheTTL > 0 {
		a = auth.Cached(a, config.AuthCacheTTL)
	}

	opts := []container.Option{container.WithEntityKind(config.EntityKind)}
	if config.Timeout > 0 {
		opts = append(opts, container.WithTimeout(config.Timeout))
	}

	return container.New(config.Container, a, opts...), nil
}

// ParseConfig returns the config provided by parsing the provided CLI flags.
func ParseConfig(args []string) Config {
	a := New()
	a.Before = nil
	a.Action = func(*cli.Context) error { return nil }
	_ = a.Run(append([]string{version.Program}, args...))
	return config
}
