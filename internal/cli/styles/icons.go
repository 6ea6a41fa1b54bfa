package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher

	IconWarning = "\uf071" // warning

	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconTrash    = "\uf1f8" // trash

	// Docking
	IconTree    = "\uf1bb" // tree
	IconTarget  = "\uf140" // bullseye
	IconRestore = "\uf0e2" // rotate-left
)
