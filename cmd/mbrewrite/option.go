package mbrewrite

// Options is the root command that groups sub-commands. The struct tags are
// interpreted by github.com/jessevdk/go-flags.
type Options struct {
	Config string `short:"f" long:"config" description:"config YAML path (defaults to $MBREWRITE_WORKSPACE/config.yaml)"`
	Log    string `long:"log" description:"append JSON event log to the file"`
	Usage  bool   `long:"usage" description:"print token usage after rewriting"`

	Rewrite RewriteCmd `command:"rewrite" description:"Rewrite a message for selected personas"`
	Persona PersonaCmd `command:"persona" description:"Manage personas and the persisted selection"`
	History HistoryCmd `command:"history" description:"Show or clear rewrite history"`
	Key     KeyCmd     `command:"key" description:"Manage the OpenAI API key"`
	Version VersionCmd `command:"version" description:"Print version"`
}
