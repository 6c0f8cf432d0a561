// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Catalog entries.
const (
	DefinitionsNotFoundId Id = iota + 1
	DefinitionParseErrorId
	DefinitionInvalidId
	CommandNotFoundId
	SyntaxErrorId
	ConfigLoadFailedId
	LogFileFailedId
)

type (
	// Id identifies a catalog issue.
	Id int

	// MarkdownMsg is the Markdown body of an issue.
	MarkdownMsg string

	// HttpLink is a documentation URL.
	HttpLink string

	// Issue is one page of troubleshooting guidance.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render returns the issue as terminal Markdown in the given glamour style
// ("dark", "light", "notty", "auto" or a style file path).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	definitionsNotFoundIssue = &Issue{
		id: DefinitionsNotFoundId,
		mdMsg: `
# Command definition file not found!

A definition file listed in your configuration does not exist.

## Things you can try:
- Check the ` + "`definitions`" + ` list in your config file:
~~~
$ zowe config show
~~~
- Use an absolute path, or a path relative to the directory you run zowe from`,
		docLinks: []HttpLink{"https://docs.zowe.org/stable/user-guide/cli-using-understanding-core-command-groups"},
	}

	definitionParseErrorIssue = &Issue{
		id: DefinitionParseErrorId,
		mdMsg: `
# Failed to parse command definitions!

The definition file could not be decoded.

## Common issues:
- The file extension does not match its content (.cue, .yaml, .toml, .json)
- Unknown field names (field names are camelCase, e.g. ` + "`conflictsWith`" + `)
- A range that is not a two-element list, e.g. ` + "`numericValueRange: [1, 12]`" + `

## Example option definition:
~~~yaml
commands:
  - name: list
    options:
      - name: max-concurrent-requests
        aliases: [mcr]
        type: number
        numericValueRange: [1, 100]
~~~`,
	}

	definitionInvalidIssue = &Issue{
		id: DefinitionInvalidId,
		mdMsg: `
# Command definitions are inconsistent!

The definitions decoded, but some of them cannot be enforced.

## Common issues:
- ` + "`implies`" + `, ` + "`conflictsWith`" + ` or ` + "`mustSpecifyOne`" + ` name an option that does not exist
- Two options share a name or alias
- A variadic positional (` + "`name...`" + `) is not the last positional
- A positional ` + "`regex`" + ` does not compile

## Things you can try:
~~~
$ zowe definitions validate <file>
~~~`,
	}

	commandNotFoundIssue = &Issue{
		id: CommandNotFoundId,
		mdMsg: `
# Command not found!

No command definition matches what you typed.

## Things you can try:
- List the available groups:
~~~
$ zowe --help
~~~
- Check for typos; every group and command accepts its aliases too`,
	}

	syntaxErrorIssue = &Issue{
		id: SyntaxErrorId,
		mdMsg: `
# Syntax error!

The command was recognized, but its options or positional arguments are not valid.

## Things you can try:
- Read each message above; every one names the option at fault
- Show the accepted options:
~~~
$ zowe <group> <command> --help
~~~
- Values can also come from the environment, e.g. ` + "`ZOWE_OPT_OWNER`" + `; check for stale variables`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your zowe configuration file could not be loaded.

## Things you can try:
- Check the CUE syntax of the file
- Compare it with the defaults:
~~~
$ zowe config show
~~~
- Remove the file to fall back to the defaults`,
	}

	logFileFailedIssue = &Issue{
		id: LogFileFailedId,
		mdMsg: `
# Cannot write the log file!

The file configured as ` + "`log.file`" + ` could not be opened.

## Things you can try:
- Check that the directory exists and is writable
- Unset ` + "`log.file`" + ` to log to standard error`,
	}

	issues = map[Id]*Issue{
		definitionsNotFoundIssue.Id():  definitionsNotFoundIssue,
		definitionParseErrorIssue.Id(): definitionParseErrorIssue,
		definitionInvalidIssue.Id():    definitionInvalidIssue,
		commandNotFoundIssue.Id():      commandNotFoundIssue,
		syntaxErrorIssue.Id():          syntaxErrorIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		logFileFailedIssue.Id():        logFileFailedIssue,
	}
)

// Values returns every catalog issue ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, iss := range issues {
		values = append(values, iss)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

// Catalog returns a copy of the issue table.
func Catalog() map[Id]*Issue {
	return maps.Clone(issues)
}

// Get returns the issue for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
