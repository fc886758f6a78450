package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
)

// Command is one CLI subcommand.
type Command struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Run         func(ctx context.Context, args []string) error
}

// NewFlagSet returns a flag set that reports parse errors instead of exiting.
func (c *Command) NewFlagSet(out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(c.Name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { c.PrintUsage(out) }
	return fs
}

func (c *Command) PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "%s\n\n", c.Description)
	fmt.Fprintf(w, "USAGE:\n    %s\n\n", c.Usage)
	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "EXAMPLES:\n")
		for _, example := range c.Examples {
			fmt.Fprintf(w, "    %s\n", example)
		}
	}
}

// Registry dispatches os.Args to commands.
type Registry struct {
	commands map[string]*Command
	out      io.Writer
}

func NewRegistry(out io.Writer) *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		out:      out,
	}
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
}

func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

func (r *Registry) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		r.PrintHelp(r.out)
		return fmt.Errorf("no command specified")
	}

	switch args[0] {
	case "help", "-h", "--help":
		if len(args) > 1 {
			if cmd, ok := r.commands[args[1]]; ok {
				cmd.PrintUsage(r.out)
				return nil
			}
		}
		r.PrintHelp(r.out)
		return nil
	}

	cmd, ok := r.commands[args[0]]
	if !ok {
		r.PrintHelp(r.out)
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return cmd.Run(ctx, args[1:])
}

func (r *Registry) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "photoshare - browse and share photos from the terminal\n\n")
	fmt.Fprintf(w, "USAGE:\n    photoshare <command> [flags]\n\n")
	fmt.Fprintf(w, "COMMANDS:\n")

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "    %-10s %s\n", name, r.commands[name].Description)
	}
	fmt.Fprintf(w, "\nRun 'photoshare help <command>' for details.\n")
}
