/*
Package cli provides a small structure for a CLI with sub-commands.

  - User-visible output goes through a [Printer], which writes to STDERR unless redirected.
  - Flags are parsed with [pflag], and are NOT interspersed with arguments.
  - Each [Command] has its own flag set. There are no global flags.

# Invocation

	CLI_NAME [SUB-COMMAND...] [FLAGS...] [ARGS...]

The '-h' and '--help' flags are set up for every [Command], and print usage built from [Command.Usage], the flag usages, and any sub-command usages.
Use [CommandSet.RespondUsage] to print usage from the root [CommandSet]'s perspective.

A [Command] that returns a [UsageError] will print the error followed by its usage. Other errors are returned without usage.

[pflag]: https://github.com/spf13/pflag
*/
package cli
