// Command gymctl is the command line front end of the WellVantage app.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/client"
	"wellvantage/fitness-app/internal/config"
	"wellvantage/fitness-app/internal/logging"
	"wellvantage/fitness-app/internal/notice"
	"wellvantage/fitness-app/internal/session"
)

const usage = `usage: gymctl [-config dir] <command> [flags]

commands:
  register      -name -email -password
  login         -email -password
  google        -id-token [-name] [-picture]
  logout
  profile
  picture       -file [-type]
  availability  list [-from -to] | add | update <id> | delete <id>
  bookings      list [-availability id] | board [-date] | book <availabilityId> [-date]
                | toggle <bookingId> | cancel <bookingId>
  workouts      list | add | update <id> | delete <id>
  export        [-from -to] [-dir]
`

// errUsage is returned for a malformed command line; main prints the usage.
var errUsage = errors.New("invalid command line")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "gymctl:", err)
		os.Exit(1)
	}
}

// app holds what every command needs.
type app struct {
	client  *client.Client
	notices *notice.Center
	logger  zerolog.Logger
	out     io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("gymctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	configDir := global.String("config", ".", "directory holding gymctl.yaml")
	if err := global.Parse(args); err != nil {
		return errUsage
	}
	if global.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.LoadClientConfig(*configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.Log, "gymctl", stderr)

	a := &app{
		client: client.New(cfg.API, session.NewFileStore(cfg.Session.Path), logger),
		notices: notice.NewCenter(cfg.Notice.Duration, func(n notice.Notice) {
			if n != nil {
				fmt.Fprintf(stderr, "[%s] %s\n", notice.Render(n).Label, n.Message())
			}
		}),
		logger: logger,
		out:    stdout,
	}
	defer a.notices.Dismiss()

	cmd, rest := global.Arg(0), global.Args()[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "google":
		return a.google(ctx, rest)
	case "logout":
		return a.logout()
	case "profile":
		return a.profile(ctx)
	case "picture":
		return a.picture(ctx, rest)
	case "availability":
		return a.availability(ctx, rest)
	case "bookings":
		return a.bookings(ctx, rest)
	case "workouts":
		return a.workouts(ctx, rest)
	case "export":
		return a.export(ctx, rest)
	default:
		return errUsage
	}
}

// fail shows err as an error notice and returns it for the exit status.
func (a *app) fail(err error, fallback string) error {
	a.notices.Show(notice.FromError(err, fallback))
	return err
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse accepts flags before and after positional arguments
// ("update <id> -name x" and "update -name x <id>").
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
