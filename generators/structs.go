package generators

import (
	"text/template"

	"github.com/1pkg/cmdfactory"
)

const structs = `
// Command returns {{.Type}} specification for parsing into a brand new value.
func (v {{.Receiver}}) Command() *cmdfactory.Command {
	return cmdfactory.ArgsCommand({{.Quoted}}, &v)
}

// CommandForUpdate returns {{.Type}} specification for parsing into an existing value.
func (v {{.Receiver}}) CommandForUpdate() *cmdfactory.Command {
	return cmdfactory.ArgsCommandForUpdate({{.Quoted}}, &v)
}
{{if .Augment}}
// AugmentArgs adds {{.Type}} fields arguments to the provided command.
func ({{.Receiver}}) AugmentArgs(cmd *cmdfactory.Command) *cmdfactory.Command {
	{{.Args false}}
	return cmd
}

// AugmentArgsForUpdate adds {{.Type}} fields arguments to the provided command, none of them is required.
func ({{.Receiver}}) AugmentArgsForUpdate(cmd *cmdfactory.Command) *cmdfactory.Command {
	{{.Args true}}
	return cmd
}
{{end}}
{{.Assertion "Args"}}
`

var tstructs = template.Must(template.New("structs").Parse(structs))

// VisitArgs generates plain record specification which never requires a subcommand.
func (b *builder) VisitArgs(cmdfactory.Declaration) error {
	if err := b.check(); err != nil {
		return err
	}
	return tstructs.Execute(&b.out, view{Item: b.item, args: b.args})
}
