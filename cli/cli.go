package cli

import (
	"errors"
	"fmt"
	flag "github.com/spf13/pflag"
	"regexp"
	"slices"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	HelpPatterns      = []string{"--help", "-h"} // HelpPatterns is a slice of flags that should trigger the output of usage information with the top-level [CommandSet].

	keyCleansePattern = regexp.MustCompile(`\s`)
)

// CommandFunc is a function that may be executed within a [Command].
type CommandFunc = func(flags *flag.FlagSet, printer *Printer) error

// Command is an executable function in a CLI.
// It should be linked to a [CommandSet] to establish a tree of commands available to the user.
type Command struct {
	CommandSet
	flags      *flag.FlagSet
	exec       CommandFunc
	key        string
	parent     string
	shortUsage string
}

func cleanseKey(key string) string {
	return keyCleansePattern.ReplaceAllString(strings.ToLower(key), "")
}

func newCommand(key, parent, shortUsage string, printer *Printer) *Command {
	key = cleanseKey(key)
	fs := flag.NewFlagSet(key, flag.ContinueOnError)
	fs.BoolP("help", "h", false, "Prints this usage information")
	fs.SetInterspersed(false)
	cmd := &Command{flags: fs, key: key, parent: parent, shortUsage: shortUsage}
	cmd.CommandSet.printer = printer
	if len(parent) > 0 {
		cmd.CommandSet.parent = strings.Join([]string{parent, key}, " ")
	} else {
		cmd.CommandSet.parent = key
	}
	cmd.Usage("").Does(func(flags *flag.FlagSet, _ *Printer) error {
		flags.Usage()
		return nil
	})
	return cmd
}

// Does specifies the [CommandFunc] that should be executed by this [Command].
func (c *Command) Does(commandFunc CommandFunc) *Command {
	if commandFunc == nil {
		return c
	}
	c.exec = commandFunc
	return c
}

// Parent retrieves the parent [Command] name.
func (c *Command) Parent() string {
	return c.parent
}

// Flags returns the [flag.FlagSet] for this [Command].
func (c *Command) Flags() *flag.FlagSet {
	return c.flags
}

// Usage allows specifying a longer description of the [Command] that will be output when a [HelpPatterns] flag is passed.
//
// The short description, flag usages, and sub-command usages will be appended to this description.
func (c *Command) Usage(format string, args ...any) *Command {
	text := fmt.Sprintf(format, args...)
	if len(c.Parent()) > 0 && len(text) > 0 {
		text = c.Parent() + " " + text
	}
	if len(text) > 0 {
		text = `USAGE:
` + text
	}
	c.flags.Usage = func() {
		var buf strings.Builder
		if len(text) == 0 {
			buf.WriteString("\n" + c.shortUsage)
		} else {
			if !strings.HasSuffix(text, "\n") {
				text += "\n"
			}
			buf.WriteString(fmt.Sprintf(`%s

%s`, c.shortUsage, text))
		}
		buf.WriteString("\nFLAGS\n")
		buf.WriteString(c.flags.FlagUsages())
		if len(c.CommandSet.commands) > 0 {
			buf.WriteString("\nCOMMANDS\n")
			buf.WriteString(c.CommandUsages())
		}
		c.Printer().Print(buf.String())
	}
	return c
}

// Exec executes the command with given arguments, parsing flags.
// Flag parsing errors are returned as a [UsageError].
// A [UsageError] is printed along with usage information before being returned.
func (c *Command) Exec(args []string) error {
	if err := c.CommandSet.Exec(args); err != nil {
		if !errors.Is(err, ErrUnknownCommand) {
			return err
		}
	} else {
		return nil
	}
	if err := c.flags.Parse(args); err != nil {
		return c.respondError(&UsageError{wrapped: err})
	}
	if MustGet(c.flags.GetBool("help")) {
		c.flags.Usage()
		return nil
	}
	return c.respondError(c.exec(c.flags, c.Printer()))
}

func (c *Command) respondError(err error) error {
	if errors.Is(err, &UsageError{}) {
		c.Printer().Printf("%v\n\n", err)
		c.flags.Usage()
	}
	return err
}

// CommandSet is a group of [Command].
type CommandSet struct {
	commands map[string]*Command
	printer  *Printer
	parent   string
}

// NewCommandSet is used to set up a top level [CommandSet] as the root of a CLI's command structure.
//
// Note: the parent(s) passed to this function will be used to populate sub-command usage information.
// So they should only contain the commands used to invoke this [CommandSet].
func NewCommandSet(parent ...string) *CommandSet {
	return &CommandSet{printer: NewPrinter(), parent: strings.Join(parent, " ")}
}

// Parent retrieves the parent [CommandSet] name.
func (s *CommandSet) Parent() string {
	return s.parent
}

// AddCommand adds a sub-command to this [CommandSet], sharing its [Printer].
// The key parameter will be cleansed to remove spaces, and normalize to lower-case.
func (s *CommandSet) AddCommand(key, shortUsage string) *Command {
	key = cleanseKey(key)
	cmd := newCommand(key, s.parent, shortUsage, s.Printer())
	if s.commands == nil {
		s.commands = map[string]*Command{}
	}
	s.commands[key] = cmd
	return cmd
}

// Printer returns the cached [Printer] for this [CommandSet].
func (s *CommandSet) Printer() *Printer {
	if s.printer == nil {
		s.printer = NewPrinter()
	}
	return s.printer
}

// Exec executes this [CommandSet].
// It's expected that the first 1+ arguments include the key for a sub-command.
func (s *CommandSet) Exec(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: no arguments", ErrUnknownCommand)
	}
	cmd, ok := s.commands[strings.ToLower(args[0])]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return cmd.Exec(args[1:])
}

// RespondUsage will print usage information with this set's [Printer] if one of [HelpPatterns] is the first of args.
// If usage information was printed, then true will be returned.
func (s *CommandSet) RespondUsage(args []string, format string, vals ...any) bool {
	if len(args) == 0 || !slices.Contains(HelpPatterns, args[0]) {
		return false
	}
	text := fmt.Sprintf(format, vals...)
	if len(text) > 0 {
		text = strings.TrimSuffix("\n\n"+text, "\n")
	}
	s.Printer().Printf(`%s%s

COMMANDS:
%s`, s.parent, text, s.CommandUsages())
	return true
}

// CommandUsages returns a string including the usage information for sub-commands in this [CommandSet].
//
// The sub-command keys will be sorted alphabetically before output.
func (s *CommandSet) CommandUsages() string {
	var (
		buf    strings.Builder
		keys   = make([]string, 0, len(s.commands))
		maxLen int
	)
	for key := range s.commands {
		keys = append(keys, key)
		maxLen = max(maxLen, len(key))
	}
	slices.Sort(keys)

	fmtStr := fmt.Sprintf("  %%-%ds\t%%s\n", maxLen)
	for _, key := range keys {
		buf.WriteString(fmt.Sprintf(fmtStr, key, s.commands[key].shortUsage))
	}
	return buf.String()
}
