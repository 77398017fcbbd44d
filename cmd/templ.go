package cmd

const HELP_TEMPL = `Usage: {{if .UsageText}}{{.UsageText}}{{else}}{{.HelpName}} {{if .VisibleFlags}}[global options]{{end}}{{if .Commands}} command [command options]{{end}} {{if .ArgsUsage}}{{.ArgsUsage}}{{else}}[arguments...]{{end}}{{end}}
{{.Description}}{{if .VisibleCommands}}
Commands:{{range .VisibleCategories}}{{if .Name}}

{{.Name}}:{{range .VisibleCommands}}
  {{join .Names ", "}}{{"\t"}}{{.Usage}}{{end}}{{else}}{{range .VisibleCommands}}
{{"\t"}}{{index .Names 0}}{{"\t:\t"}}{{.Usage}}{{end}}{{end}}{{end}}{{end}}

Use "{{.HelpName}} help <command>" for more information about any command.

`

const CMD_HELP_TEMPL = `{{if .Description}}{{.Description}}{{else}}{{.HelpName}} - {{.Usage}}

{{end}}Usage:
        {{.HelpName}} {{if .UsageText}}{{.UsageText}}{{else}}[arguments...]{{end}}{{if .VisibleFlags}}

Supported Flags:{{range .VisibleFlags}}
  {{.}}{{end}}{{end}}

`

const DESCRIPTION = `
crumbs lists the cookies your browsers keep, grouped by the site that
set them, and shows what the cleanup rules of the crumbs extension will
do with each of them. It also edits those rules and serves them to the
extension over native messaging.
`

const (
	BrowseDescription = `The browse command reads the cookie stores of the installed
browsers (or the file given with --cookies-from), groups the
cookies by domain and shows the cleanup type of every domain
and cookie. Cookie values are never printed.

Example:
        crumbs browse
        crumbs browse --store firefox --search google
        crumbs browse --cookies-from ~/cookies.txt --flat

`
	RulesDescription = `The rules command manages the cleanup rules. An expression is
a domain pattern where "*" matches any run of characters,
optionally prefixed with a cookie name and "@". Types are
never, startup, leave and instantly.

Example:
        crumbs rules add "*.example.com" never
        crumbs rules add "session@shop.example" startup --temporary
        crumbs rules list

`
	ClassifyDescription = `The classify command shows the cleanup type resolved for a
domain, or for one cookie of it, and the rules that matched.

Example:
        crumbs classify www.example.com
        crumbs classify example.com sessionid

`
	ConfigDescription = `The config command shows and edits the settings stored in
crumbs.env inside the configuration directory. Environment
variables always take precedence over the file.

Example:
        crumbs config show
        crumbs config set CRUMBS_COOKIE_FILE auto

`
)
