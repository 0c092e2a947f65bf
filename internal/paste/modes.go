package paste

import "sort"

// Mode is a syntax mode the editor can be switched to, keyed by MIME type.
type Mode struct {
	Mime string
	Name string // syntax name, "null" for plain text
}

// Label is the picker label: the MIME type followed by the syntax name.
func (m Mode) Label() string {
	if m.Name == "" || m.Name == "null" {
		return m.Mime
	}
	return m.Mime + " (" + m.Name + ")"
}

var modes = []Mode{
	{Mime: "text/plain", Name: "null"},
	{Mime: "application/json", Name: "javascript"},
	{Mime: "application/ld+json", Name: "javascript"},
	{Mime: "application/typescript", Name: "javascript"},
	{Mime: "application/x-httpd-php", Name: "php"},
	{Mime: "application/x-sh", Name: "shell"},
	{Mime: "application/xml", Name: "xml"},
	{Mime: "text/css", Name: "css"},
	{Mime: "text/html", Name: "htmlmixed"},
	{Mime: "text/javascript", Name: "javascript"},
	{Mime: "text/x-c++src", Name: "clike"},
	{Mime: "text/x-csharp", Name: "clike"},
	{Mime: "text/x-csrc", Name: "clike"},
	{Mime: "text/x-diff", Name: "diff"},
	{Mime: "text/x-dockerfile", Name: "dockerfile"},
	{Mime: "text/x-erlang", Name: "erlang"},
	{Mime: "text/x-go", Name: "go"},
	{Mime: "text/x-haskell", Name: "haskell"},
	{Mime: "text/x-java", Name: "clike"},
	{Mime: "text/x-kotlin", Name: "clike"},
	{Mime: "text/x-lua", Name: "lua"},
	{Mime: "text/x-markdown", Name: "markdown"},
	{Mime: "text/x-mysql", Name: "sql"},
	{Mime: "text/x-nginx-conf", Name: "nginx"},
	{Mime: "text/x-perl", Name: "perl"},
	{Mime: "text/x-properties", Name: "properties"},
	{Mime: "text/x-python", Name: "python"},
	{Mime: "text/x-ruby", Name: "ruby"},
	{Mime: "text/x-rustsrc", Name: "rust"},
	{Mime: "text/x-scala", Name: "clike"},
	{Mime: "text/x-sh", Name: "shell"},
	{Mime: "text/x-sql", Name: "sql"},
	{Mime: "text/x-swift", Name: "swift"},
	{Mime: "text/x-toml", Name: "toml"},
	{Mime: "text/x-yaml", Name: "yaml"},
}

func init() {
	sort.Slice(modes, func(i, j int) bool { return modes[i].Mime < modes[j].Mime })
}

// Modes returns the mode catalog sorted by MIME type.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// LookupMode finds a mode by MIME type. Unknown types still get a Mode so a
// paste saved by another client keeps its type.
func LookupMode(mime string) (Mode, bool) {
	for _, m := range modes {
		if m.Mime == mime {
			return m, true
		}
	}
	return Mode{Mime: mime}, false
}
