package cmdfactory

type Visitor interface {
	VisitArgs(Declaration) error
	VisitSubcommand(Declaration) error
}
