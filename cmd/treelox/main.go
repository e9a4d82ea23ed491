package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"treelox/internal"
	"treelox/internal/config"
)

const (
	exitStatic  = 65
	exitRuntime = 70
)

func main() {
	app := &cli.App{
		Name:      "treelox",
		Usage:     "Tree-walking interpreter for the Lox language",
		ArgsUsage: "[script]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath(),
				Usage:   "Path to the YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (panic, fatal, error, warn, info, debug, trace)",
				EnvVars: []string{"TREELOX_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored diagnostics",
			},
		},
		Action: defaultAction,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Run a script",
				ArgsUsage: "FILE",
				Action:    runCommand,
			},
			{
				Name:   "repl",
				Usage:  "Start an interactive session",
				Action: replCommand,
			},
			{
				Name:      "tokens",
				Usage:     "Print the token stream of a script",
				ArgsUsage: "FILE",
				Action:    tokensCommand,
			},
			{
				Name:      "ast",
				Usage:     "Print the syntax tree of a script",
				ArgsUsage: "FILE",
				Action:    astCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type session struct {
	cfg     *config.Config
	logger  *logrus.Logger
	printer stdPrinter
}

func newSession(c *cli.Context) (*session, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if level := c.String("log-level"); level != "" {
		cfg.LogLevel = level
	}
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.Out = os.Stderr
	logger.SetLevel(level)

	colored := cfg.ColorEnabled() && !c.Bool("no-color") && isTerminal(os.Stderr)
	logger.WithFields(logrus.Fields{
		"config": c.String("config"),
		"color":  colored,
	}).Debug("session configured")

	return &session{
		cfg:     cfg,
		logger:  logger,
		printer: newStdPrinter(colored),
	}, nil
}

func (s *session) interpreter(repl bool) *internal.Interpreter {
	return internal.NewInterpreter(s.printer, internal.WithLogger(s.logger), internal.WithREPL(repl))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// defaultAction runs the script given as argument, otherwise a REPL on a
// terminal or the script piped through stdin
func defaultAction(c *cli.Context) error {
	if c.NArg() > 0 {
		return runCommand(c)
	}
	if isTerminal(os.Stdin) {
		return replCommand(c)
	}
	s, err := newSession(c)
	if err != nil {
		return err
	}
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	return s.run(string(source))
}

func readScript(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit("Usage: treelox [run|tokens|ast] FILE", 64)
	}
	source, err := os.ReadFile(c.Args().First())
	if err != nil {
		return "", err
	}
	return string(source), nil
}

func runCommand(c *cli.Context) error {
	source, err := readScript(c)
	if err != nil {
		return err
	}
	s, err := newSession(c)
	if err != nil {
		return err
	}
	return s.run(source)
}

func (s *session) run(source string) error {
	interp := s.interpreter(false)
	status := interp.Run(source)
	interp.PrintErrors()
	switch status {
	case internal.StatusStaticError:
		return cli.Exit("", exitStatic)
	case internal.StatusRuntimeError:
		return cli.Exit("", exitRuntime)
	}
	return nil
}

func tokensCommand(c *cli.Context) error {
	source, err := readScript(c)
	if err != nil {
		return err
	}
	s, err := newSession(c)
	if err != nil {
		return err
	}
	interp := s.interpreter(false)
	tokens, diagnostics := interp.Tokens(source)
	for _, tk := range tokens {
		s.printer.Println(tk)
	}
	if interp.PrintErrors() {
		s.logger.WithField("diagnostics", len(diagnostics)).Debug("scan failed")
		return cli.Exit("", exitStatic)
	}
	return nil
}

func astCommand(c *cli.Context) error {
	source, err := readScript(c)
	if err != nil {
		return err
	}
	s, err := newSession(c)
	if err != nil {
		return err
	}
	interp := s.interpreter(false)
	tree, diagnostics := interp.PrintTree(source)
	fmt.Print(tree)
	if interp.PrintErrors() {
		s.logger.WithField("diagnostics", len(diagnostics)).Debug("parse failed")
		return cli.Exit("", exitStatic)
	}
	return nil
}
