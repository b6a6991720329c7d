package models

import "strings"

// CommandType enumerates supported worker command categories.
type CommandType string

const (
	CommandPond      CommandType = "pond"
	CommandStock     CommandType = "stock"
	CommandMortality CommandType = "mortality"
	CommandAdjust    CommandType = "adjust"
	CommandFeed      CommandType = "feed"
	CommandHarvest   CommandType = "harvest"
	CommandExpense   CommandType = "expense"
	CommandSample    CommandType = "sample"
	CommandPurchase  CommandType = "purchase"
	CommandStatus    CommandType = "status"
	CommandCycles    CommandType = "cycles"
	CommandAppetite  CommandType = "appetite"
	CommandTarget    CommandType = "target"
	CommandHelp      CommandType = "help"
	CommandUnknown   CommandType = "unknown"
)

var commandAliases = map[string]CommandType{
	"pond":      CommandPond,
	"stock":     CommandStock,
	"stocking":  CommandStock,
	"mortality": CommandMortality,
	"dead":      CommandMortality,
	"adjust":    CommandAdjust,
	"feed":      CommandFeed,
	"harvest":   CommandHarvest,
	"expense":   CommandExpense,
	"expenses":  CommandExpense,
	"sample":    CommandSample,
	"purchase":  CommandPurchase,
	"status":    CommandStatus,
	"cycles":    CommandCycles,
	"appetite":  CommandAppetite,
	"target":    CommandTarget,
	"help":      CommandHelp,
}

// Command represents a parsed worker instruction extracted from chat text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// IsSlash reports whether text looks like an explicit command rather than
// free-form conversation.
func IsSlash(message string) bool {
	return strings.HasPrefix(strings.TrimSpace(message), "/")
}

// ParseCommand derives a Command instance from free-form text messages.
func ParseCommand(message string) Command {
	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(message)))
	if len(tokens) == 0 {
		return Command{Type: CommandUnknown, Raw: message}
	}

	cmd := Command{Raw: message, Type: CommandUnknown}
	if t, ok := commandAliases[strings.TrimPrefix(tokens[0], "/")]; ok {
		cmd.Type = t
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
