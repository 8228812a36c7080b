package generators

import (
	"text/template"

	"github.com/1pkg/cmdfactory"
)

const enums = `
// Command returns {{.Type}} specification for parsing into a brand new value,
// one of subcommands has to be chosen.
func (v {{.Receiver}}) Command() *cmdfactory.Command {
	return cmdfactory.SubcommandCommand({{.Quoted}}, &v)
}

// CommandForUpdate returns {{.Type}} specification for parsing into an existing value,
// previously chosen subcommand is kept if none is provided.
func (v {{.Receiver}}) CommandForUpdate() *cmdfactory.Command {
	return cmdfactory.SubcommandCommandForUpdate({{.Quoted}}, &v)
}
{{if .Augment}}
// AugmentSubcommands adds {{.Type}} variants subcommands to the provided command.
func ({{.Receiver}}) AugmentSubcommands(cmd *cmdfactory.Command) *cmdfactory.Command {
	{{.Subcommands false}}
	return cmd
}

// AugmentSubcommandsForUpdate adds {{.Type}} variants subcommands to the provided command.
func ({{.Receiver}}) AugmentSubcommandsForUpdate(cmd *cmdfactory.Command) *cmdfactory.Command {
	{{.Subcommands true}}
	return cmd
}
{{end}}
{{.Assertion "Subcommand"}}
`

var tenums = template.Must(template.New("enums").Parse(enums))

// VisitSubcommand generates subcommand dispatcher specification.
func (b *builder) VisitSubcommand(cmdfactory.Declaration) error {
	if err := b.check(); err != nil {
		return err
	}
	return tenums.Execute(&b.out, view{Item: b.item, args: b.args})
}
