package contracts

type Command struct {
	Executable  string
	Arguments   []string
	Environment []string // KEY=VALUE pairs appended to the parent environment
}

type ProcessRunner interface {
	Execute(command Command) (exitCode int, err error)
}
