// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	OptionFileNotFoundId Id = iota + 1
	OptionFileParseErrorId
	DynamicOptionValueId
	UnknownOptionId
	InvalidOptionValueId
	ConstraintViolationId
	UnsupportedFormatId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

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

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	optionFileNotFoundIssue = &Issue{
		id: OptionFileNotFoundId,
		mdMsg: `
# Option file not found!

Named option files are searched in every directory of ` + "`search_paths`" + `,
trying the extensions ` + "`.py`, `.opts`, `.sh`, `.cue`, `.toml`, `.yaml`, `.yml`, `.hcl`, `.json`" + ` in that order.

## Things you can try:
- Pass a path instead of a name:
~~~
$ swecfg resolve build/options/SWE_gnu_cuda_openGL.py
~~~

- Create an option file from a preset:
~~~
$ swecfg init gnu_cuda_openGL build/options
~~~

- Check the configured search paths:
~~~
$ swecfg config show
~~~`,
	}

	optionFileParseErrorIssue = &Issue{
		id: OptionFileParseErrorId,
		mdMsg: `
# Failed to parse option file!

An option file is a flat list of assignments, one per line:

~~~
# Build options
parallelization='cuda'
solver='fwave'
openGL='yes'
~~~

## Things you can try:
- Quote values that contain spaces
- Assign each key only once
- In CUE, TOML, YAML, JSON or HCL files keep every value a top-level string, bool or number`,
	}

	dynamicOptionValueIssue = &Issue{
		id: DynamicOptionValueId,
		mdMsg: `
# Option files must be declarative!

Option files are read as data and never executed. Commands, variable expansion
(` + "`$HOME`" + `), command substitution and arithmetic are rejected.

## Things you can try:
- Replace computed values with literal strings
- Pass machine-specific values on the command line instead:
~~~
$ swecfg resolve SWE_intel_mpi_vectorized --set netCDFDir=/opt/netcdf
~~~`,
	}

	unknownOptionIssue = &Issue{
		id: UnknownOptionId,
		mdMsg: `
# Unknown option!

The option file sets a key that the SWE build does not recognize. Keys are
case-sensitive (` + "`openGL`, not `opengl`" + `).

## Things you can try:
- List every recognized key with its domain and default:
~~~
$ swecfg schema
~~~`,
	}

	invalidOptionValueIssue = &Issue{
		id: InvalidOptionValueId,
		mdMsg: `
# Invalid option value!

Each option accepts a fixed domain:

- **enumerations** accept exactly one of the listed values (case-sensitive)
- **toggles** accept ` + "`yes/no`, `on/off`, `true/false`, `1/0`" + `
- **paths** accept any non-empty string

## Things you can try:
- Check the allowed values with ` + "`swecfg schema`" + `
- Remove the key to fall back to its default`,
	}

	constraintViolationIssue = &Issue{
		id: ConstraintViolationId,
		mdMsg: `
# Options conflict!

Some options only make sense together, for example:

- ` + "`solver='fwavevec'`" + ` requires ` + "`vectorize='on'`" + `
- ` + "`parallelization='cuda'`" + ` requires ` + "`computeCapability`" + `
- ` + "`openGL='yes'`" + ` requires ` + "`parallelization='cuda'`" + `

## Things you can try:
- Adjust one of the keys named in the error
- List all constraints with ` + "`swecfg schema`",
	}

	unsupportedFormatIssue = &Issue{
		id: UnsupportedFormatId,
		mdMsg: `
# Unsupported format!

Option files are read as shell-style assignments (` + "`.py`, `.opts`, `.sh`" + `),
CUE, TOML, YAML, JSON or HCL. Resolved configurations can be written as
` + "`text`, `scons`, `env`, `json`, `toml`, `yaml` or `cue`" + `.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The swecfg settings file could not be loaded.

## Things you can try:
- Check the CUE syntax of your settings file
- Show where swecfg looks for it:
~~~
$ swecfg config path
~~~
- Recreate the default settings:
~~~
$ swecfg config init
~~~`,
	}

	issues = map[Id]*Issue{
		optionFileNotFoundIssue.Id():   optionFileNotFoundIssue,
		optionFileParseErrorIssue.Id(): optionFileParseErrorIssue,
		dynamicOptionValueIssue.Id():   dynamicOptionValueIssue,
		unknownOptionIssue.Id():        unknownOptionIssue,
		invalidOptionValueIssue.Id():   invalidOptionValueIssue,
		constraintViolationIssue.Id():  constraintViolationIssue,
		unsupportedFormatIssue.Id():    unsupportedFormatIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
