// Package commands implements the servicehub command line client.
package commands

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	bookingservice "servicehub/internal/bookings/service"
	"servicehub/internal/directory"
	"servicehub/internal/events"
	profileservice "servicehub/internal/profile/service"
	"servicehub/internal/session"
	"servicehub/pkg/client"
	"servicehub/pkg/config"
	apperrors "servicehub/pkg/errors"
	"servicehub/pkg/logger"
)

const (
	flagAPI      = "api"
	flagTimeout  = "timeout"
	flagStateDir = "state-dir"
	flagLogLevel = "log-level"
)

// runtime is the object graph shared by every command of one invocation.
type runtime struct {
	log       *logger.Logger
	tokens    *session.FileTokenStore
	session   *session.Store
	api       *client.API
	directory *directory.Service
	bookings  *bookingservice.BookingController
	profiles  *profileservice.ProfileService
	out       io.Writer
}

type Option func(*options)

type options struct {
	publisher events.Publisher
	now       func() time.Time
	logOutput io.Writer
}

func WithPublisher(p events.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogOutput redirects diagnostics, which go to stderr by default.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// New builds the CLI. Command output is written to out.
func New(out io.Writer, opts ...Option) *cli.App {
	o := &options{
		publisher: events.Noop{},
		now:       time.Now,
		logOutput: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	rt := &runtime{out: out}

	return &cli.App{
		Name:      "servicehub",
		Usage:     "find local service providers and manage bookings",
		Writer:    out,
		ErrWriter: o.logOutput,
		// Exit codes are applied by the caller.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagAPI,
				Usage:   "base URL of the marketplace API",
				Value:   config.DefaultAPIBaseURL,
				EnvVars: []string{config.EnvAPIBaseURL},
			},
			&cli.DurationFlag{
				Name:    flagTimeout,
				Usage:   "timeout of every API call",
				Value:   config.DefaultAPITimeout,
				EnvVars: []string{config.EnvAPITimeout},
			},
			&cli.StringFlag{
				Name:    flagStateDir,
				Usage:   "directory holding the saved session",
				Value:   config.DefaultStateDir(),
				EnvVars: []string{config.EnvStateDir},
			},
			&cli.StringFlag{
				Name:    flagLogLevel,
				Usage:   "debug, info, warn or error",
				Value:   logger.WARN,
				EnvVars: []string{config.EnvLogLevel},
			},
		},
		Before: func(c *cli.Context) error {
			return rt.init(c, o)
		},
		Commands: []*cli.Command{
			loginCommand(rt),
			registerCommand(rt),
			logoutCommand(rt),
			whoamiCommand(rt),
			providersCommand(rt),
			bookCommand(rt),
			bookingsCommand(rt),
			statusCommand(rt, "accept"),
			statusCommand(rt, "reject"),
			profileCommand(rt),
			statsCommand(rt),
		},
	}
}

func (rt *runtime) init(c *cli.Context, o *options) error {
	rt.log = logger.New(logger.Config{
		Level:   c.String(flagLogLevel),
		Format:  logger.TEXT,
		Output:  o.logOutput,
		Service: "servicehub",
	})

	httpClient := client.NewHttpClient(c.String(flagAPI), c.Duration(flagTimeout))
	rt.tokens = session.NewFileTokenStore(c.String(flagStateDir))
	rt.session = session.New(c.Context, client.NewAuthClient(httpClient), rt.tokens, rt.log,
		session.WithPublisher(o.publisher),
		session.WithClock(o.now),
	)

	rt.api = client.New(httpClient, rt.session.Credential)
	rt.directory = directory.NewService(rt.api.Providers, nil, rt.log)
	rt.bookings = bookingservice.NewBookingController(rt.api.Bookings, rt.directory, rt.session, rt.log,
		bookingservice.WithPublisher(o.publisher),
		bookingservice.WithClock(o.now),
	)
	rt.profiles = profileservice.NewProfileService(rt.api.Providers, rt.session, o.publisher, rt.log)
	return nil
}

// action wraps a command body: auth failures drop the saved session and
// every error becomes a non-zero exit with a readable message.
func (rt *runtime) action(fn func(ctx context.Context, c *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		err := fn(c.Context, c)
		if err == nil {
			return nil
		}
		if apperrors.IsAuth(err) {
			if logoutErr := rt.session.Logout(); logoutErr != nil {
				rt.log.Error("Failed to remove saved session", "error", logoutErr)
			}
		}
		return cli.Exit(describe(err), exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return 2
	case apperrors.IsAuth(err):
		return 3
	case apperrors.IsTransport(err):
		return 4
	case apperrors.IsForbidden(err):
		return 5
	default:
		return 1
	}
}
