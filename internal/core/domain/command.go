package domain

// CommandOp identifies the kind of change a MappingCommand applies.
type CommandOp string

const (
	CommandCreate CommandOp = "create"
	CommandUpdate CommandOp = "update"
	CommandDelete CommandOp = "delete"
	CommandLink   CommandOp = "link"
)

// MappingCommand is one mutation of an account's per-company code mappings.
// Code is ignored for delete and link.
type MappingCommand struct {
	Op        CommandOp `json:"op"`
	CompanyID string    `json:"companyID"`
	Code      string    `json:"code"`
}

// Valid reports whether the op is one of the known variants.
func (c MappingCommand) Valid() bool {
	switch c.Op {
	case CommandCreate, CommandUpdate, CommandDelete, CommandLink:
		return true
	default:
		return false
	}
}

// CreatedCodeFor returns the code of the first create command targeting companyID.
func CreatedCodeFor(commands []MappingCommand, companyID string) (string, bool) {
	for _, cmd := range commands {
		switch cmd.Op {
		case CommandCreate:
			if cmd.CompanyID == companyID {
				return cmd.Code, true
			}
		case CommandUpdate, CommandDelete, CommandLink:
			// only creations can seed the code of a new account
		}
	}
	return "", false
}
