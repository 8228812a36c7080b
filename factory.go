package cmdfactory

// Args is implemented by record types to enrich command with their field level arguments.
type Args interface {
	AugmentArgs(*Command) *Command
	AugmentArgsForUpdate(*Command) *Command
}

// Subcommand is implemented by enumeration types to enrich command with one branch per variant.
type Subcommand interface {
	AugmentSubcommands(*Command) *Command
	AugmentSubcommandsForUpdate(*Command) *Command
}

// CommandFactory is the contract derived for every annotated type.
type CommandFactory interface {
	// Command returns specification for parsing into a brand new value.
	Command() *Command
	// CommandForUpdate returns relaxed specification for parsing into an existing value.
	CommandForUpdate() *Command
}

// ArgsCommand builds fresh record specification.
func ArgsCommand(name string, a Args) *Command {
	cmd := NewCommand(name)
	return a.AugmentArgs(cmd.delegate(DelegateArgs))
}

// ArgsCommandForUpdate builds update record specification.
func ArgsCommandForUpdate(name string, a Args) *Command {
	cmd := NewCommand(name)
	return a.AugmentArgsForUpdate(cmd.delegate(DelegateArgsForUpdate))
}

// SubcommandCommand builds fresh enumeration specification,
// where choosing a subcommand is mandatory and empty input shows help.
func SubcommandCommand(name string, s Subcommand) *Command {
	cmd := NewCommand(name).
		WithSubcommandRequired(true).
		WithArgRequiredElseHelp(true)
	return s.AugmentSubcommands(cmd.delegate(DelegateSubcommands))
}

// SubcommandCommandForUpdate builds update enumeration specification.
// Neither flag is set so an already chosen branch can be preserved.
func SubcommandCommandForUpdate(name string, s Subcommand) *Command {
	cmd := NewCommand(name)
	return s.AugmentSubcommandsForUpdate(cmd.delegate(DelegateSubcommandsForUpdate))
}
