// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

// Issue catalog IDs. Zero means "no catalog entry".
const (
	FinderFailedId Id = iota + 1
	NoScriptsFoundId
	SelectorFailedId
	NoSelectionMadeId
	OptionNotRecognizedId
	RunnerNotFoundId
	ConfigLoadFailedId
	PickerNeedsTerminalId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is Markdown text rendered for the user.
	MarkdownMsg string

	// HttpLink is an external help URL.
	HttpLink string

	// Issue is a catalog entry: a Markdown help card plus install links.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		extLinks []HttpLink
	}
)

// Id returns the catalog ID.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw Markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// ExtLinks returns a copy of the external links.
func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the help card with the given glamour style ("dark", "light",
// "notty", or a path to a style file).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	finderFailedIssue = &Issue{
		id: FinderFailedId,
		mdMsg: `
# Could not search for package.json files

runpick uses **fd** to list every ` + "`package.json`" + ` below the current
directory (skipping ` + "`node_modules`" + `). The search tool is missing or failed.

## Things you can try
- Install fd:
  - macOS: ` + "`brew install fd`" + `
  - Debian/Ubuntu: ` + "`sudo apt install fd-find`" + ` (the binary may be called ` + "`fdfind`" + `)
- Point runpick at a differently named binary in your config:
~~~cue
finder: command: "fdfind"
~~~`,
		extLinks: []HttpLink{"https://github.com/sharkdp/fd#installation"},
	}

	noScriptsFoundIssue = &Issue{
		id: NoScriptsFoundId,
		mdMsg: `
# No package scripts found

None of the discovered ` + "`package.json`" + ` files declares a ` + "`scripts`" + ` object.

## Things you can try
- Run runpick from the root of your JavaScript project
- Add a script to a manifest:
~~~json
{
  "scripts": { "build": "tsc -p ." }
}
~~~
- Manifests that failed to parse are listed in the warnings above`,
	}

	selectorFailedIssue = &Issue{
		id: SelectorFailedId,
		mdMsg: `
# Could not start the fuzzy selector

runpick hands the list of scripts to **fzf** for interactive selection.

## Things you can try
- Install fzf:
  - macOS: ` + "`brew install fzf`" + `
  - Debian/Ubuntu: ` + "`sudo apt install fzf`" + `
- Or use the built-in picker:
~~~cue
selector: backend: "builtin"
~~~`,
		extLinks: []HttpLink{"https://github.com/junegunn/fzf#installation"},
	}

	noSelectionMadeIssue = &Issue{
		id: NoSelectionMadeId,
		mdMsg: `
# No selection made

The selector was closed without choosing a script, so nothing was run.`,
	}

	optionNotRecognizedIssue = &Issue{
		id: OptionNotRecognizedId,
		mdMsg: `
# Selected option not recognized

The selector returned a line that does not match any listed script.

## Things you can try
- Make sure custom selector options do not alter the printed line
  (for example fzf's ` + "`--print-query`" + ` or ` + "`--expect`" + `)`,
	}

	runnerNotFoundIssue = &Issue{
		id: RunnerNotFoundId,
		mdMsg: `
# Could not start the package script runner

The script was selected, but the runner (**npm** by default) could not be started.

## Things you can try
- Install Node.js and npm
- Use another package manager:
~~~cue
runner: command: "pnpm"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

## Configuration file locations
- Linux: ` + "`~/.config/runpick/config.cue`" + `
- macOS: ` + "`~/Library/Application Support/runpick/config.cue`" + `
- Windows: ` + "`%APPDATA%\\runpick\\config.cue`" + `
- Project: ` + "`./runpick.cue`" + `

## Example configuration
~~~cue
finder:   { command: "fd", exclude: ["node_modules", "dist"] }
selector: { backend: "fzf", command: "fzf --height 40%" }
runner:   { command: "npm" }
ui:       { verbose: false }
~~~`,
	}

	pickerNeedsTerminalIssue = &Issue{
		id: PickerNeedsTerminalId,
		mdMsg: `
# The built-in picker needs a terminal

The built-in picker draws on the terminal attached to standard input, and
standard input is a pipe or a file.

## Things you can try
- Run runpick directly from an interactive shell
- Use fzf, which opens the terminal itself:
~~~cue
selector: backend: "fzf"
~~~`,
	}

	issues = map[Id]*Issue{
		finderFailedIssue.Id():        finderFailedIssue,
		noScriptsFoundIssue.Id():      noScriptsFoundIssue,
		selectorFailedIssue.Id():      selectorFailedIssue,
		noSelectionMadeIssue.Id():     noSelectionMadeIssue,
		optionNotRecognizedIssue.Id(): optionNotRecognizedIssue,
		runnerNotFoundIssue.Id():      runnerNotFoundIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		pickerNeedsTerminalIssue.Id(): pickerNeedsTerminalIssue,
	}
)

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
