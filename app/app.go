package app

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"time"

	cli "github.com/spf13/cobra"

	"github.com/soocke/pixel-click-go/config"
	"github.com/soocke/pixel-click-go/debug"
	"github.com/soocke/pixel-click-go/domain/action"
	"github.com/soocke/pixel-click-go/domain/capture"
	"github.com/soocke/pixel-click-go/domain/detect"
	"github.com/soocke/pixel-click-go/domain/template"
)

// ErrNotFound marks a run that completed without finding the template.
var ErrNotFound = errors.New("template not found on screen")

// Previewer shows a capture to the user and returns once it is dismissed.
type Previewer func(title string, frame image.Image, box image.Rectangle, found bool, caption string)

// Env carries the collaborators commands run against.
type Env struct {
	Screen    func(backend string) capture.Screen
	Templates template.Source
	Pointer   action.Pointer
	Preview   Previewer
	Logger    func(level slog.Leveler) *slog.Logger
	Sleep     func(time.Duration) // nil uses time.Sleep
}

// ExitCode maps a command error to a process exit status: 0 on success,
// 2 when the template was not found, 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrNotFound):
		return 2
	default:
		return 1
	}
}

// NewRootCommand builds the pixel-click command tree. Each call has its own
// configuration, so trees never share flag state.
func NewRootCommand(env Env) *cli.Command {
	r := &runner{env: env, cfg: config.DefaultConfig()}
	root := &cli.Command{
		Use:           "pixel-click [template]",
		Short:         "Find a template image on screen and move the pointer onto it",
		Args:          cli.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          r.move,
	}
	f := root.PersistentFlags()
	f.StringVarP(&r.cfg.Template, "template", "t", r.cfg.Template, "template image path")
	f.Float64Var(&r.cfg.Threshold, "threshold", r.cfg.Threshold, "minimum correlation score in [0,1]")
	f.DurationVar(&r.cfg.Timeout, "timeout", r.cfg.Timeout, "how long to keep polling the screen")
	f.DurationVar(&r.cfg.PollInterval, "poll", r.cfg.PollInterval, "delay between screen captures")
	f.StringVar(&r.cfg.Backend, "backend", r.cfg.Backend, "capture backend: vova616, kbinani or gdi")
	f.Uint64Var(&r.cfg.Seed, "seed", r.cfg.Seed, "target point seed (0 picks one from the clock)")
	f.BoolVar(&r.cfg.Debug, "debug", r.cfg.Debug, "debug logging and memory stats")

	root.AddCommand(r.commands()...)
	return root
}

// runner holds the configuration one command tree binds its flags to.
type runner struct {
	env Env
	cfg *config.Config
}

// session is the wiring for a single command run.
type session struct {
	cfg      *config.Config
	logger   *slog.Logger
	detector *detect.Detector
	actuator *action.Actuator
}

// session validates the configuration and wires the collaborators.
func (r *runner) session(args []string) (*session, error) {
	if len(args) > 0 {
		r.cfg.Template = args[0]
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	level := slog.LevelInfo
	if r.cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.DiscardHandler)
	if r.env.Logger != nil {
		logger = r.env.Logger(level)
	}

	opts := []detect.Option{detect.WithSleep(r.env.Sleep)}
	if r.cfg.Seed != 0 {
		opts = append(opts, detect.WithSeed(r.cfg.Seed))
	}
	d := detect.NewDetector(r.env.Screen(r.cfg.Backend), r.env.Templates, r.env.Pointer, logger, opts...)
	return &session{
		cfg:      r.cfg,
		logger:   logger,
		detector: d,
		actuator: action.NewActuator(d, r.env.Pointer, logger, r.cfg.PollInterval),
	}, nil
}

// done logs memory usage in debug mode.
func (s *session) done() {
	if s.cfg.Debug {
		debug.LogMemStats(s.logger, "memstats")
	}
}
