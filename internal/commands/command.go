// Package commands parses the command palette's slash commands into
// typed requests and dispatches them to configured handlers.
package commands

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeExport Type = "export"
	TypeImport Type = "import"
	TypeClear  Type = "clear"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs captures `add <title> @ <when>`, e.g.
// `add pay rent @ 2026-09-01 09:00`.
type AddArgs struct {
	Title string
	Due   time.Time
}

type ExportArgs struct {
	Path string
}

type ImportArgs struct {
	Path string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Export *ExportArgs
	Import *ImportArgs
}

const dueLayout = "2006-01-02 15:04"

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeExport:
		return parseExport(input, args)
	case TypeImport:
		return parseImport(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	joined := strings.TrimSpace(strings.Join(args, " "))
	title, when, found := strings.Cut(joined, "@")
	if !found {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires `<title> @ <yyyy-mm-dd hh:mm>`"}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	due, err := time.ParseInLocation(dueLayout, strings.TrimSpace(when), time.Local)
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("add: bad due time %q (want yyyy-mm-dd hh:mm)", strings.TrimSpace(when))}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Due: due}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	// Path is optional; the app falls back to the dated default name.
	return Command{Type: TypeExport, Raw: raw, Export: &ExportArgs{Path: strings.TrimSpace(strings.Join(args, " "))}}, nil
}

func parseImport(raw string, args []string) (Command, error) {
	path := strings.TrimSpace(strings.Join(args, " "))
	if path == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "import requires a file path"}
	}
	return Command{Type: TypeImport, Raw: raw, Import: &ImportArgs{Path: path}}, nil
}
