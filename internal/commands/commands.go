package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	bookingservice "servicehub/internal/bookings/service"
	apperrors "servicehub/pkg/errors"
	"servicehub/pkg/model"
)

func loginCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in and save the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"SERVICEHUB_PASSWORD"}},
		},
		Action: rt.action(func(ctx context.Context, c *cli.Context) error {
			user, err := rt.session.Login(ctx, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Fprint(rt.out, "logged in as ")
			printUser(rt.out, user)
			return nil
		}),
	}
}

func registerCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and save the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "email"},
			&cli.StringFlag{Name: "password", EnvVars: []string{"SERVICEHUB_PASSWORD"}},
			&cli.StringFlag{Name: "confirm-password"},
			&cli.StringFlag{Name: "role", Value: string(model.RoleCustomer), Usage: "customer or provider"},
			&cli.StringFlag{Name: "phone"},
			&cli.StringFlag{Name: "location"},
			&cli.StringSliceFlag{Name: "service", Usage: "offered service, repeatable (providers)"},
			&cli.Float64Flag{Name: "fare", Usage: "fare per job (providers)"},
			&cli.StringFlag{Name: "description", Usage: "about the business (providers)"},
		},
		Action: rt.action(func(ctx context.Context, c *cli.Context) error {
			role, ok := model.ParseRole(c.String("role"))
			if !ok {
				role = model.Role(c.String("role"))
			}
			data := model.RegisterData{
				Name:            c.String("name"),
				Email:           c.String("email"),
				Password:        c.String("password"),
				ConfirmPassword: c.String("confirm-password"),
				Role:            role,
				Phone:           c.String("phone"),
				Location:        c.String("location"),
				Services:        c.StringSlice("service"),
				Description:     c.String("description"),
			}
			if c.IsSet("fare") {
				fare := c.Float64("fare")
				data.Fare = &fare
			}

			user, err := rt.session.Register(ctx, data)
			if err != nil {
				return err
			}
			fmt.Fprint(rt.out, "registered ")
			printUser(rt.out, user)
			return nil
		}),
	}
}

func logoutCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the saved session",
		Action: rt.action(func(ctx context.Context, c *cli.Context) error {
			if err := rt.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(rt.out, "logged out")
			return nil
		}),
	}
}

func whoamiCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the logged in account",
		Action: rt.action(func(ctx context.Context, c *cli.Context) error {
			user := rt.session.Current()
			if user == nil {
				return apperrors.Unauthorized("not logged in")
			}
			printUser(rt.out, user)
			return nil
		}),
	}
}

func providersCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "list service providers",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "q", Usage: "text in the name or services"},
			&cli.StringFlag{Name: "service", Usage: "exact service"},
			&cli.StringFlag{Name: "location", Usage: "part of the location"},
			&cli.Float64Flag{Name: "max-fare", Usage: "highest acceptable fare"},
			&cli.BoolFlag{Name: "featured", Usage: "only featured providers"},
		},
		Action: rt.action(func(ctx context.Context, c *cli.Context) error {
			if c.Bool("featured") {
				providers, err := rt.directory.Featured(ctx)
				if err != nil {
					return err
				}
				printProviders(rt.out, providers)
				return nil
			}

			if c.Float64("max-fare") < 0 {
				return apperrors.InvalidInput("max-fare must not be negative")
			}
			providers, err := rt.directory.Search(ctx, model.ProviderFilter{
				Text:     c.String("q"),
				Service:  c.String("service"),
				Location: c.String("location"),
				MaxFare:  c.Float64("max-fare"),
			})
			if err != nil {
				return err
			}
			printProviders(rt.out, providers)
			return nil
		}),
	}
}

func bookCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "book",
		Usage: "request a booking with a provider",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "provider", Required: true, Usage: "provider id"},
			&cli.StringFlag{Name: "service", Required: true},
			&cli.StringFlag{Name: "date", Required: true, Usage: "YYYY-MM-DD"},
			&cli.StringFlag{Name: "description"},
		},
		Action: rt.action(func(ctx context.Context, c *cli.Context) error {
			user := rt.session.Current()
			if user == nil {
				return apperrors.Unauthorized("please log in to continue")
			}
			date, err := model.ParseDate(c.String("date"))
			if err != nil {
				return apperrors.Validation("booking request is invalid", []string{err.Error()})
			}

			booking, err := rt.bookings.Create(ctx, user.ID, c.Int64("provider"), c.String("service"), c.String("description"), date)
			if err != nil {
				return err
			}
			printBooking(rt.out, booking)
			return nil
		}),
	}
}

func bookingsCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "bookings",
		Usage: "list your bookings",
		Action: rt.action(func(ctx context.Context, c *cli.Context) error {
			user := rt.session.Current()
			if user == nil {
				return apperrors.Unauthorized("please log in to continue")
			}

			var bookings []model.Booking
			var err error
			if user.IsProvider() {
				bookings, err = rt.bookings.ListForProvider(ctx, user.ID)
			} else {
				bookings, err = rt.bookings.ListForCustomer(ctx, user.ID)
			}
			if err != nil {
				return err
			}
			printBookings(rt.out, bookings)
			return nil
		}),
	}
}

func statusCommand(rt *runtime, verb string) *cli.Command {
	status := model.Accepted
	if verb == "reject" {
		status = model.Rejected
	}
	return &cli.Command{
		Name:      verb,
		Usage:     verb + " a pending booking",
		ArgsUsage: "<booking id>",
		Action: rt.action(func(ctx context.Context, c *cli.Context) error {
			id, err := bookingID(c)
			if err != nil {
				return err
			}
			user, err := rt.session.Require(model.RoleServiceProvider)
			if err != nil {
				return err
			}
			if _, err := rt.bookings.ListForProvider(ctx, user.ID); err != nil {
				rt.log.Warn("Could not load bookings before status change", "id", id, "error", err)
			}

			booking, err := rt.bookings.SetStatus(ctx, id, status)
			if err != nil {
				return err
			}
			printBooking(rt.out, booking)
			return nil
		}),
	}
}

func profileCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "show or edit a provider profile",
		Subcommands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "show a provider profile, yours by default",
				ArgsUsage: "[provider id]",
				Action: rt.action(func(ctx context.Context, c *cli.Context) error {
					var id int64
					if c.Args().Present() {
						parsed, err := strconv.ParseInt(c.Args().First(), 10, 64)
						if err != nil || parsed <= 0 {
							return apperrors.InvalidInput("invalid provider id: " + c.Args().First())
						}
						id = parsed
					} else {
						user, err := rt.session.Require(model.RoleServiceProvider)
						if err != nil {
							return err
						}
						id = user.ID
					}

					profile, err := rt.profiles.Get(ctx, id)
					if err != nil {
						return err
					}
					printProfile(rt.out, profile)
					return nil
				}),
			},
			{
				Name:  "update",
				Usage: "change fields of your profile; unset flags are left alone",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "location"},
					&cli.StringSliceFlag{Name: "service", Usage: "replaces the offered services, repeatable"},
					&cli.Float64Flag{Name: "fare"},
					&cli.StringFlag{Name: "description"},
				},
				Action: rt.action(func(ctx context.Context, c *cli.Context) error {
					user, err := rt.session.Require(model.RoleServiceProvider)
					if err != nil {
						return err
					}

					profile, err := rt.profiles.Update(ctx, user.ID, profilePatch(c))
					if err != nil {
						return err
					}
					printProfile(rt.out, profile)
					return nil
				}),
			},
		},
	}
}

func statsCommand(rt *runtime) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "summarise your bookings (providers)",
		Action: rt.action(func(ctx context.Context, c *cli.Context) error {
			user, err := rt.session.Require(model.RoleServiceProvider)
			if err != nil {
				return err
			}
			bookings, err := rt.bookings.ListForProvider(ctx, user.ID)
			if err != nil {
				return err
			}
			profile, err := rt.profiles.Get(ctx, user.ID)
			if err != nil {
				return err
			}
			printStats(rt.out, bookingservice.Stats(bookings, profile.Rating))
			return nil
		}),
	}
}

func bookingID(c *cli.Context) (int64, error) {
	raw := c.Args().First()
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("invalid booking id: " + raw)
	}
	return id, nil
}

func profilePatch(c *cli.Context) model.ProfileUpdate {
	var patch model.ProfileUpdate
	if c.IsSet("name") {
		v := c.String("name")
		patch.Name = &v
	}
	if c.IsSet("phone") {
		v := c.String("phone")
		patch.Phone = &v
	}
	if c.IsSet("location") {
		v := c.String("location")
		patch.Location = &v
	}
	if c.IsSet("service") {
		v := c.StringSlice("service")
		patch.Services = &v
	}
	if c.IsSet("fare") {
		v := c.Float64("fare")
		patch.Fare = &v
	}
	if c.IsSet("description") {
		v := c.String("description")
		patch.Description = &v
	}
	return patch
}
