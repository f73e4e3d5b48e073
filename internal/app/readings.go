package app

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"tabstat/internal/domain"
)

// Invocation is the resolved command line of the readings program.
type Invocation struct {
	Action  domain.Action
	Sources []string
	Help    bool
	// Defaulted reports that no action was given, so the first argument
	// was taken as a file name and the action fell back to --mean.
	Defaulted bool
}

// ResolveArgs turns raw arguments into an Invocation.
//
// When the first argument is a known action token it is consumed as the
// action. When it is any other flag-shaped token the call fails with
// ErrUnknownAction. Otherwise the action defaults to --mean and every
// argument, the first one included, is a source.
func ResolveArgs(args []string) (Invocation, error) {
	if len(args) == 0 {
		return Invocation{Help: true}, nil
	}

	first := args[0]
	if first == "-h" || first == "--help" {
		return Invocation{Help: true}, nil
	}

	if action, ok := domain.ParseAction(first); ok {
		return Invocation{Action: action, Sources: args[1:]}, nil
	}

	if strings.HasPrefix(first, "-") && first != "-" {
		return Invocation{}, fmt.Errorf("%w %q: must be one of --min, --mean, --max", domain.ErrUnknownAction, first)
	}

	return Invocation{Action: domain.DefaultAction, Sources: args, Defaulted: true}, nil
}

// Usage returns the help text of the readings program.
func Usage(prog string) string {
	return fmt.Sprintf(`Usage: %s [action] [file...]
  action must be one of --min --mean --max (or -n -m -x);
  if action is omitted, --mean is used and every argument is a file name;
  if no file names are given, input is taken from stdin;
  otherwise, each file in the list of arguments is processed in turn.
`, prog)
}

// Streams bundles the process's standard streams.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type Readings struct {
	logger  *zap.Logger
	reader  domain.TableReader
	writer  domain.TableWriter
	format  domain.FmtFunc
	streams Streams
}

func NewReadings(logger *zap.Logger, reader domain.TableReader, writer domain.TableWriter,
	format domain.FmtFunc, streams Streams) *Readings {
	return &Readings{
		logger:  logger,
		reader:  reader,
		writer:  writer,
		format:  format,
		streams: streams,
	}
}

// Run processes every source of inv in order and returns the exit status:
// 0 when all sources were reduced, 1 when at least one failed.
func (r *Readings) Run(prog string, inv Invocation) int {
	if inv.Help {
		fmt.Fprint(r.streams.Out, Usage(prog))
		return 0
	}

	if inv.Defaulted {
		r.logger.Info("No action has been provided, using default",
			zap.Stringer("action", inv.Action))
	}

	failed := 0
	for _, src := range Sources(inv.Sources, r.streams.In) {
		if err := r.process(src, inv.Action); err != nil {
			// Ошибка одного источника не прерывает обработку остальных
			failed++
			fmt.Fprintln(r.streams.Err, err)
			r.logger.Debug("Source skipped", zap.String("source", src.Name), zap.Error(err))
		}
	}

	if failed > 0 {
		r.logger.Warn("Some sources failed", zap.Int("failed", failed))
		return 1
	}
	return 0
}

func (r *Readings) process(src domain.Source, action domain.Action) error {
	table, err := r.reader.ReadTable(src)
	if err != nil {
		return err
	}

	values := domain.Reduce(table, action)
	r.logger.Info("Source reduced",
		zap.String("source", src.Name),
		zap.Stringer("action", action),
		zap.Int("rows", len(values)))

	if err := r.writer.WriteValues(r.streams.Out, values, r.format); err != nil {
		return fmt.Errorf("%s: write results: %w", src.Name, err)
	}
	return nil
}

// Sources maps file names to sources. No names, or the name "-", stand for
// standard input.
func Sources(names []string, stdin io.Reader) []domain.Source {
	if len(names) == 0 {
		return []domain.Source{domain.StdinSource(stdin)}
	}

	sources := make([]domain.Source, len(names))
	for i, name := range names {
		if name == "-" {
			sources[i] = domain.StdinSource(stdin)
		} else {
			sources[i] = domain.FileSource(name)
		}
	}
	return sources
}
