package cmdfactory

// Delegation names an augmentation step applied to a command specification.
type Delegation string

const (
	DelegateArgs                 Delegation = "args"
	DelegateArgsForUpdate        Delegation = "args_for_update"
	DelegateSubcommands          Delegation = "subcommands"
	DelegateSubcommandsForUpdate Delegation = "subcommands_for_update"
)

// Arg describes a single named argument of a command specification.
type Arg struct {
	ID       string `yaml:"id"`
	Long     string `yaml:"long"`
	Env      string `yaml:"env,omitempty"`
	Help     string `yaml:"help,omitempty"`
	Required bool   `yaml:"required,omitempty"`
}

// Command is a structured description of a command consumed by a parser engine.
type Command struct {
	Name                string       `yaml:"name"`
	SubcommandRequired  bool         `yaml:"subcommand_required,omitempty"`
	ArgRequiredElseHelp bool         `yaml:"arg_required_else_help,omitempty"`
	Delegations         []Delegation `yaml:"delegations,omitempty"`
	Args                []Arg        `yaml:"args,omitempty"`
	Subcommands         []*Command   `yaml:"subcommands,omitempty"`
}

// NewCommand constructs an empty named command specification.
func NewCommand(name string) *Command {
	return &Command{Name: name}
}

func (c *Command) WithSubcommandRequired(required bool) *Command {
	c.SubcommandRequired = required
	return c
}

func (c *Command) WithArgRequiredElseHelp(required bool) *Command {
	c.ArgRequiredElseHelp = required
	return c
}

func (c *Command) AddArg(a Arg) *Command {
	c.Args = append(c.Args, a)
	return c
}

func (c *Command) AddSubcommand(sub *Command) *Command {
	c.Subcommands = append(c.Subcommands, sub)
	return c
}

// FindSubcommand returns direct subcommand by its name.
func (c *Command) FindSubcommand(name string) (*Command, bool) {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub, true
		}
	}
	return nil, false
}

func (c *Command) delegate(d Delegation) *Command {
	c.Delegations = append(c.Delegations, d)
	return c
}
